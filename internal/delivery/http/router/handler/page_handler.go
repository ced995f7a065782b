package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"panel/config"
	deliverycontext "panel/internal/delivery/context"
	"panel/internal/domain/entity"
	domainerrors "panel/internal/domain/errors"
	"panel/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PageHandler renders the server-side pages.
type PageHandler struct {
	guildUC       usecase.GuildUsecase
	entitlementUC usecase.EntitlementUsecase
	inviteURL     string
	price         string
	currency      string
	logger        *slog.Logger
}

// NewPageHandler is the constructor for PageHandler, injected by Fx.
func NewPageHandler(guildUC usecase.GuildUsecase, entitlementUC usecase.EntitlementUsecase, cfg *config.Config, logger *slog.Logger) *PageHandler {
	invite := "https://discord.com/api/oauth2/authorize?" + url.Values{
		"client_id":   {cfg.Discord.ClientID},
		"permissions": {"8"},
		"scope":       {"bot"},
	}.Encode()

	return &PageHandler{
		guildUC:       guildUC,
		entitlementUC: entitlementUC,
		inviteURL:     invite,
		price:         cfg.Premium.Price,
		currency:      cfg.Premium.Currency,
		logger:        logger,
	}
}

// Index renders the landing page, or sends an authenticated browser
// straight to the dashboard.
func (h *PageHandler) Index(c echo.Context) error {
	if deliverycontext.GetSession(c) != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	return renderPage(c, "index.html", map[string]any{
		"Error": c.QueryParam("error"),
	})
}

// Dashboard renders the caller's manageable guilds.
func (h *PageHandler) Dashboard(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	guilds, err := h.guildUC.ListManageableGuilds(c.Request().Context(), session)
	if err != nil {
		return errors.WithStack(err)
	}

	return renderPage(c, "dashboard.html", map[string]any{
		"Username":  session.Username,
		"Guilds":    guilds,
		"InviteURL": h.inviteURL,
	})
}

// Manage renders the per-guild management page. A guild the caller cannot
// manage bounces back to the dashboard instead of surfacing an error page.
func (h *PageHandler) Manage(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	guildID := c.Param("guildId")

	view, err := h.guildUC.AssembleManageView(c.Request().Context(), session, guildID)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.ErrorCode() == domainerrors.ErrGuildNotAccessible.ErrorCode() {
			return c.Redirect(http.StatusFound, "/dashboard")
		}

		return errors.WithStack(err)
	}

	var textChannels, categoryChannels []entity.Channel
	for _, ch := range view.Channels {
		switch ch.Type {
		case entity.ChannelTypeText:
			textChannels = append(textChannels, ch)
		case entity.ChannelTypeCategory:
			categoryChannels = append(categoryChannels, ch)
		}
	}

	return renderPage(c, "manage.html", map[string]any{
		"Username":         session.Username,
		"Guild":            view.Guild,
		"Settings":         view.Settings,
		"TextChannels":     textChannels,
		"CategoryChannels": categoryChannels,
		"Roles":            view.Roles,
		"IsVIP":            view.Grade == entity.GradeVIP,
	})
}

// Premium renders the upgrade page with the caller's current tier.
func (h *PageHandler) Premium(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	status, err := h.entitlementUC.Status(c.Request().Context(), session.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	expiresAt := ""
	if status.VIPExpiresAt != nil {
		expiresAt = status.VIPExpiresAt.Format("2006-01-02 15:04 MST")
	}

	return renderPage(c, "premium.html", map[string]any{
		"Username":  session.Username,
		"IsVIP":     status.Grade == entity.GradeVIP,
		"UsedTrial": status.UsedTrial,
		"ExpiresAt": expiresAt,
		"Price":     h.price,
		"Currency":  h.currency,
	})
}

// PaymentSuccess is the provider return URL. It captures the approved order
// synchronously; the webhook delivering the same capture later is absorbed
// by the dedupe, so the user sees success exactly once.
func (h *PageHandler) PaymentSuccess(c echo.Context) error {
	orderID := c.QueryParam("token")

	succeeded := false
	if orderID != "" {
		if err := h.entitlementUC.ConfirmReturn(c.Request().Context(), orderID); err != nil {
			h.logger.Warn("Return-path capture failed, leaving it to the webhook", slog.String("orderID", orderID), slog.Any("error", err))
		} else {
			succeeded = true
		}
	}

	return renderPage(c, "payment_result.html", map[string]any{
		"Succeeded": succeeded,
		"Cancelled": false,
	})
}

// PaymentCancel renders the cancellation page; nothing was charged.
func (h *PageHandler) PaymentCancel(c echo.Context) error {
	return renderPage(c, "payment_result.html", map[string]any{
		"Succeeded": false,
		"Cancelled": true,
	})
}
