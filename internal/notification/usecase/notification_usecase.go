package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"rentdesk/internal/notification/repo/persistent"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"
	"rentdesk/pkg/queue"

	"github.com/redis/go-redis/v9"
)

const unreadCountTTL = 5 * time.Minute

type NotificationUseCase interface {
	Create(userID, notificationType, title, message, link string, priority models.NotificationPriority, data models.JSONMap) (*models.Notification, error)
	List(userID string, unreadOnly bool, notificationType string, limit, offset int) ([]models.Notification, int64, int64, error)
	UnreadCount(userID string) (int64, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) (int64, error)
	Delete(userID, notificationID string) error
	HandleDomainEvent(event map[string]interface{}) error
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	redisClient      *redis.Client
	logger           *logger.Logger
}

func NewNotificationUseCase(notificationRepo persistent.NotificationRepository, redisClient *redis.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
		logger:           logger,
	}
}

func (uc *notificationUseCase) Create(userID, notificationType, title, message, link string, priority models.NotificationPriority, data models.JSONMap) (*models.Notification, error) {
	if userID == "" {
		return nil, apperr.Validation("user_id is required")
	}
	if title == "" || message == "" {
		return nil, apperr.Validation("title and message are required")
	}
	if priority == "" {
		priority = models.PriorityNormal
	}

	notification := &models.Notification{
		UserID:   userID,
		Type:     notificationType,
		Title:    title,
		Message:  message,
		Link:     link,
		Priority: priority,
		Data:     data,
	}

	if err := uc.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	uc.invalidateUnreadCount(userID)
	uc.logger.Info("Notification %s created for user %s: %s", notification.ID, userID, title)
	return notification, nil
}

func (uc *notificationUseCase) List(userID string, unreadOnly bool, notificationType string, limit, offset int) ([]models.Notification, int64, int64, error) {
	notifications, total, err := uc.notificationRepo.ListByUser(userID, unreadOnly, notificationType, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}

	unread, err := uc.UnreadCount(userID)
	if err != nil {
		return nil, 0, 0, err
	}

	return notifications, total, unread, nil
}

// UnreadCount serves from Redis when possible; the database stays
// authoritative and repopulates the cache on a miss.
func (uc *notificationUseCase) UnreadCount(userID string) (int64, error) {
	key := unreadCountKey(userID)

	if uc.redisClient != nil {
		cached, err := uc.redisClient.Get(context.Background(), key).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		} else if err != redis.Nil {
			uc.logger.Warn("Failed to read unread count cache for user %s: %v", userID, err)
		}
	}

	count, err := uc.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, err
	}

	if uc.redisClient != nil {
		if err := uc.redisClient.Set(context.Background(), key, count, unreadCountTTL).Err(); err != nil {
			uc.logger.Warn("Failed to cache unread count for user %s: %v", userID, err)
		}
	}

	return count, nil
}

func (uc *notificationUseCase) MarkRead(userID, notificationID string) error {
	if err := uc.notificationRepo.MarkRead(userID, notificationID); err != nil {
		return err
	}
	uc.invalidateUnreadCount(userID)
	return nil
}

func (uc *notificationUseCase) MarkAllRead(userID string) (int64, error) {
	affected, err := uc.notificationRepo.MarkAllRead(userID)
	if err != nil {
		return 0, err
	}
	uc.invalidateUnreadCount(userID)
	return affected, nil
}

func (uc *notificationUseCase) Delete(userID, notificationID string) error {
	if err := uc.notificationRepo.Delete(userID, notificationID); err != nil {
		return err
	}
	uc.invalidateUnreadCount(userID)
	return nil
}

// HandleDomainEvent turns a domain event from the queue into a
// notification row for the affected user.
func (uc *notificationUseCase) HandleDomainEvent(event map[string]interface{}) error {
	eventType, _ := event["type"].(string)

	switch eventType {
	case queue.EventPaymentRecorded:
		return uc.handlePaymentRecorded(event)
	case queue.EventPaymentStatusChanged:
		return uc.handlePaymentStatusChanged(event)
	case queue.EventTaxReturnSubmitted:
		return uc.handleTaxReturnSubmitted(event)
	default:
		uc.logger.Warn("Ignoring unknown event type: %s", eventType)
		return nil
	}
}

func (uc *notificationUseCase) handlePaymentRecorded(event map[string]interface{}) error {
	tenantID, _ := event["tenant_id"].(string)
	paymentID, _ := event["payment_id"].(string)
	if tenantID == "" || paymentID == "" {
		return fmt.Errorf("invalid payment.recorded event: missing tenant_id or payment_id")
	}

	amount, _ := event["amount"].(float64)

	_, err := uc.Create(
		tenantID,
		"payment_recorded",
		"Payment recorded",
		fmt.Sprintf("A payment of %.2f was recorded on your account", amount),
		"/payments",
		models.PriorityNormal,
		models.JSONMap{"payment_id": paymentID},
	)
	return err
}

func (uc *notificationUseCase) handlePaymentStatusChanged(event map[string]interface{}) error {
	tenantID, _ := event["tenant_id"].(string)
	paymentID, _ := event["payment_id"].(string)
	status, _ := event["status"].(string)
	if tenantID == "" || paymentID == "" || status == "" {
		return fmt.Errorf("invalid payment.status_changed event: missing required fields")
	}

	priority := models.PriorityNormal
	if status == string(models.PaymentOverdue) {
		priority = models.PriorityHigh
	}

	_, err := uc.Create(
		tenantID,
		"payment_status",
		"Payment status updated",
		fmt.Sprintf("Your payment is now %s", status),
		"/payments",
		priority,
		models.JSONMap{"payment_id": paymentID, "status": status},
	)
	return err
}

func (uc *notificationUseCase) handleTaxReturnSubmitted(event map[string]interface{}) error {
	landlordID, _ := event["landlord_id"].(string)
	taxReturnID, _ := event["tax_return_id"].(string)
	if landlordID == "" || taxReturnID == "" {
		return fmt.Errorf("invalid tax_return.submitted event: missing landlord_id or tax_return_id")
	}

	taxYear, _ := event["tax_year"].(float64)

	_, err := uc.Create(
		landlordID,
		"tax_return_submitted",
		"Tax return submitted",
		fmt.Sprintf("Your %d tax return was submitted", int(taxYear)),
		"/tax-returns",
		models.PriorityNormal,
		models.JSONMap{"tax_return_id": taxReturnID},
	)
	return err
}

func (uc *notificationUseCase) invalidateUnreadCount(userID string) {
	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Del(context.Background(), unreadCountKey(userID)).Err(); err != nil {
		uc.logger.Warn("Failed to invalidate unread count cache for user %s: %v", userID, err)
	}
}

func unreadCountKey(userID string) string {
	return fmt.Sprintf("unread_count:%s", userID)
}
