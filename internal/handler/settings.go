package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/model"
)

// SettingsStore reads and writes the settings singleton.
type SettingsStore interface {
	Get(ctx context.Context) (model.Settings, error)
	Update(ctx context.Context, s model.Settings) (model.Settings, error)
}

type SettingsHandler struct {
	store SettingsStore
}

func NewSettingsHandler(s SettingsStore) *SettingsHandler { return &SettingsHandler{store: s} }

type updateSettingsReq struct {
	SendConfirmationAutomatically *bool `json:"sendConfirmationAutomatically"`
}

// Get is public.
func (h *SettingsHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	s, err := h.store.Get(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load settings failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// Update is admin only; the router applies JWTAuth and RequireRole.
func (h *SettingsHandler) Update(c echo.Context) error {
	var req updateSettingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SendConfirmationAutomatically == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sendConfirmationAutomatically required"})
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	s, err := h.store.Update(ctx, model.Settings{SendConfirmationAutomatically: *req.SendConfirmationAutomatically})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save settings failed"})
	}
	return c.JSON(http.StatusOK, s)
}
