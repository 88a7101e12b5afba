package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeSeller   UserType = "seller"
	UserTypeAdmin    UserType = "admin"
)

type NotificationType string

const (
	NotificationOrderPlaced     NotificationType = "order_placed"
	NotificationOrderReceived   NotificationType = "order_received"
	NotificationPaymentReceived NotificationType = "payment_received"
	NotificationSupportReply    NotificationType = "support_reply"
)

// Notification is append-only; only IsRead ever flips.
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;index" json:"user_id"`
	UserType  UserType         `gorm:"type:varchar(20);index" json:"user_type"`
	Title     string           `gorm:"size:140" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	Type      NotificationType `gorm:"type:varchar(40)" json:"type"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
