package imagegen

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/GitDDAN/padel-palms-proposal/pkg/apperror"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Generate creates a branded event post.
// @Router /api/images [post]
func (h *Handler) Generate(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("Request body must be JSON")
	}

	resp, err := h.svc.Generate(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

type optionsResponse struct {
	Available   bool     `json:"available"`
	EventTypes  []Option `json:"eventTypes"`
	PhotoStyles []Option `json:"photoStyles"`
	Sizes       []Size   `json:"sizes"`
}

// Options lists the form choices and whether generation is available.
// @Router /api/images/options [get]
func (h *Handler) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, optionsResponse{
		Available:   h.svc.Available(),
		EventTypes:  EventTypes,
		PhotoStyles: PhotoStyles,
		Sizes:       []Size{Size1K, Size2K, Size4K},
	})
}
