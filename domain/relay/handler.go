package relay

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

const maxFormBytes = 1 << 20

// Handler serves POST /api/submit-form.
type Handler struct {
	svc *Service
}

// NewHandler creates a relay handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type submitResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Result  *Result `json:"result,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// SubmitForm forwards the JSON body to the workflow tool.
// @Router /api/submit-form [post]
func (h *Handler) SubmitForm(c echo.Context) error {
	form, err := readForm(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, submitResponse{
			Success: false,
			Message: "Invalid form payload",
			Error:   err.Error(),
		})
	}

	res, err := h.svc.Submit(c.Request().Context(), form)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, submitResponse{
			Success: false,
			Message: "Failed to submit form",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, submitResponse{
		Success: true,
		Message: "Form submitted successfully",
		Result:  res,
	})
}

func readForm(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxFormBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxFormBytes {
		return nil, errors.New("payload too large")
	}
	var form map[string]any
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, errors.New("body must be a JSON object")
	}
	if form == nil {
		return nil, errors.New("body must be a JSON object")
	}
	return form, nil
}
