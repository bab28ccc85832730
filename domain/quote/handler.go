package quote

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/pkg/apperror"
)

type Handler struct {
	cat *catalog.Catalog
}

func NewHandler(cat *catalog.Catalog) *Handler {
	return &Handler{cat: cat}
}

// Catalog returns the service catalog, fixed packages and currencies.
// @Router /api/catalog [get]
func (h *Handler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, NewCatalogView(h.cat))
}

type quoteRequest struct {
	Selection configurator.Selection `json:"selection"`
	Currency  string                 `json:"currency"`
	Package   string                 `json:"package"`
}

// Quote prices a selection as given, without applying toggle rules.
// @Router /api/quote [post]
func (h *Handler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("Request body must be JSON")
	}

	state := configurator.NewState()
	state.Selection = req.Selection
	if req.Currency != "" {
		state.Currency = req.Currency
	}
	if req.Package != "" {
		if _, ok := h.cat.Package(req.Package); !ok {
			return apperror.NewValidation(map[string]string{"package": "Unknown package"})
		}
		state.Package = req.Package
	}

	return c.JSON(http.StatusOK, Build(h.cat, state))
}

type eventRequest struct {
	State *configurator.State `json:"state"`
	Token string              `json:"token"`
	Event configurator.Event  `json:"event"`
}

type eventResponse struct {
	State configurator.State `json:"state"`
	Token string             `json:"token"`
	Quote Quote              `json:"quote"`
}

// Event applies one configurator event and returns the new state with its
// quote. The state may be sent as an object or as an opaque token.
// @Router /api/configurator/events [post]
func (h *Handler) Event(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("Request body must be JSON")
	}

	state := configurator.NewState()
	switch {
	case req.State != nil:
		state = *req.State
		if state.Currency == "" {
			state.Currency = configurator.DefaultCurrency
		}
		if state.Package == "" {
			state.Package = configurator.DefaultPackage
		}
	case req.Token != "":
		decoded, err := configurator.DecodeState(req.Token)
		if err != nil {
			return apperror.NewBadRequest("State token is invalid")
		}
		state = decoded
	}

	next, err := configurator.Apply(h.cat, state, req.Event)
	if err != nil {
		return apperror.NewBadRequest(err.Error())
	}

	token, err := configurator.EncodeState(next)
	if err != nil {
		return apperror.NewInternal("Failed to encode state", err)
	}

	return c.JSON(http.StatusOK, eventResponse{State: next, Token: token, Quote: Build(h.cat, next)})
}
