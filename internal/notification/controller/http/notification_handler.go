package http

import (
	"net/http"
	"strconv"

	"rentdesk/internal/notification/usecase"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"
	"rentdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *logger.Logger
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		logger:              logger,
	}
}

type CreateNotificationRequest struct {
	UserID   string                      `json:"user_id" binding:"required"`
	Type     string                      `json:"type"`
	Title    string                      `json:"title" binding:"required"`
	Message  string                      `json:"message" binding:"required"`
	Link     string                      `json:"link"`
	Priority models.NotificationPriority `json:"priority"`
	Data     models.JSONMap              `json:"data,omitempty"`
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  List notifications for the authenticated user, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unreadOnly query bool false "Only unread notifications"
// @Param        type query string false "Filter by notification type"
// @Param        limit query int false "Page size (max 100, default 50)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, offset := paginationParams(c)
	unreadOnly := c.Query("unreadOnly") == "true"
	notificationType := c.Query("type")

	notifications, total, unread, err := h.notificationUseCase.List(userID, unreadOnly, notificationType, limit, offset)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMeta(notifications, &response.Meta{
		Count:       len(notifications),
		Total:       total,
		UnreadCount: &unread,
		Limit:       limit,
		Offset:      offset,
	}))
}

// GetUnreadCount godoc
// @Summary      Unread notification count
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /notifications/unread/count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetString("user_id")

	count, err := h.notificationUseCase.UnreadCount(userID)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"unread_count": count}))
}

func (h *NotificationHandler) GetNotificationsByType(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationType := c.Param("type")
	limit, offset := paginationParams(c)

	notifications, total, unread, err := h.notificationUseCase.List(userID, false, notificationType, limit, offset)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMeta(notifications, &response.Meta{
		Count:       len(notifications),
		Total:       total,
		UnreadCount: &unread,
		Limit:       limit,
		Offset:      offset,
	}))
}

// MarkAsRead godoc
// @Summary      Mark one notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	if err := h.notificationUseCase.MarkRead(userID, notificationID); err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"read": true}))
}

// MarkAllAsRead godoc
// @Summary      Mark all notifications as read
// @Description  Marks every unread notification of the user in one operation
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetString("user_id")

	affected, err := h.notificationUseCase.MarkAllRead(userID)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMeta(nil, &response.Meta{Affected: &affected}))
}

// DeleteNotification godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	if err := h.notificationUseCase.Delete(userID, notificationID); err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// CreateNotification is used by internal services to push a notification
// to a user directly instead of going through the event queue.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	notification, err := h.notificationUseCase.Create(req.UserID, req.Type, req.Title, req.Message, req.Link, req.Priority, req.Data)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(notification))
}

// paginationParams applies the 50/0 defaults and caps the page size.
// Malformed values are ignored rather than rejected.
func paginationParams(c *gin.Context) (int, int) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}
