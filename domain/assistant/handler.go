package assistant

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/GitDDAN/padel-palms-proposal/pkg/apperror"
)

// Handler serves the chat endpoint.
type Handler struct {
	svc *Service
}

// NewHandler creates a chat handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Chat answers one guest message.
// @Router /api/chat [post]
func (h *Handler) Chat(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("Request body must be JSON")
	}

	resp, err := h.svc.Reply(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

type greetingResponse struct {
	Greeting     string   `json:"greeting"`
	QuickActions []string `json:"quickActions"`
}

// Greeting returns the opening message and suggested prompts.
// @Router /api/chat/greeting [get]
func (h *Handler) Greeting(c echo.Context) error {
	return c.JSON(http.StatusOK, greetingResponse{Greeting: Greeting, QuickActions: QuickActions})
}
