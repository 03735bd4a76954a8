package controllers

import (
	"log/slog"
	"net/http"

	"github.com/aibrid/zipo-server/internal/delivery/http/helpers"
	"github.com/aibrid/zipo-server/internal/delivery/http/middleware"
	"github.com/aibrid/zipo-server/internal/domain"
)

type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
}

func NewNotificationController(logger *slog.Logger, svc domain.NotificationService) *NotificationController {
	return &NotificationController{
		Logger:  logger,
		Service: svc,
	}
}

// NotificationFeedResponse is the payload for GET /notifications.
type NotificationFeedResponse struct {
	Notifications []*domain.NotificationWithInitiator `json:"notifications"`
	Page          domain.CursorPage                   `json:"page"`
}

// GetNotifications godoc
// @Summary Get the caller's notification feed
// @Description Returns notifications newest first with cursor pagination and resets the caller's unread counter.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Cursor from the previous page"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} helpers.APIResponse "data contains notifications and page info"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	cursor, limit := helpers.ParseCursor(r)
	items, page, err := c.Service.GetNotifications(r.Context(), userID, cursor, limit)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NotificationFeedResponse{Notifications: items, Page: page})
}
