package handler

import (
	"net/http"

	deliverycontext "panel/internal/delivery/context"
	"panel/internal/delivery/http/response"
	"panel/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SettingsHandler holds dependencies for the namespaced settings routes.
type SettingsHandler struct {
	uc usecase.SettingsUsecase
}

// NewSettingsHandler is the constructor for SettingsHandler, injected by Fx.
func NewSettingsHandler(uc usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// UpdateWelcome handles the welcome-namespace settings update.
func (h *SettingsHandler) UpdateWelcome(c echo.Context) error {
	input := new(usecase.UpdateWelcomeInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_SETTINGS", "Invalid welcome settings payload")
	}

	session := deliverycontext.GetSession(c)
	guildID := c.Param("guildId")

	if err := h.uc.UpdateWelcome(c.Request().Context(), session, guildID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Welcome settings saved")
}

// UpdateTickets handles the ticket-namespace settings update.
func (h *SettingsHandler) UpdateTickets(c echo.Context) error {
	input := new(usecase.UpdateTicketsInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_SETTINGS", "Invalid ticket settings payload")
	}

	session := deliverycontext.GetSession(c)
	guildID := c.Param("guildId")

	if err := h.uc.UpdateTickets(c.Request().Context(), session, guildID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Ticket settings saved")
}
