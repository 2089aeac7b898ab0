package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBidReceived     NotificationType = "bid_received"
	NotificationHired           NotificationType = "hired"
	NotificationProjectStarted  NotificationType = "project_started"
	NotificationDelivered       NotificationType = "delivered"
	NotificationPaymentReleased NotificationType = "payment_released"
	NotificationReviewRequested NotificationType = "review_requested"
	NotificationDisputeOpened   NotificationType = "dispute_opened"
	NotificationDisputeResolved NotificationType = "dispute_resolved"
	NotificationRequestDisabled NotificationType = "request_disabled"
	NotificationBookingCreated  NotificationType = "booking_created"
	NotificationBookingApproved NotificationType = "booking_approved"
	NotificationPayoutCompleted NotificationType = "payout_completed"
	NotificationNewMessage      NotificationType = "new_message"
	NotificationReviewReceived  NotificationType = "review_received"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	Type      NotificationType
	Link      string
	RelatedID *uuid.UUID
	IsRead    bool
	CreatedAt time.Time
}

// RequestNotification: уведомление со ссылкой на заявку.
func RequestNotification(t NotificationType, title, message string, requestID uuid.UUID) Notification {
	id := requestID
	return Notification{
		Title:     title,
		Message:   message,
		Type:      t,
		Link:      "/requests/" + requestID.String(),
		RelatedID: &id,
	}
}
