package models

import "time"

const (
	ProviderRazorpay = "razorpay"
	ProviderStripe   = "stripe"

	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// PaymentOrder is the durable record of an intended credit purchase. The unique
// (provider, provider_order_id) pair is what makes verification idempotent: an
// order can move from pending to paid exactly once.
type PaymentOrder struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	PlanID          string    `gorm:"type:varchar(50);not null" json:"plan_id"`
	Credits         int       `gorm:"not null" json:"credits"`
	Amount          int64     `gorm:"not null" json:"amount"` // smallest currency unit
	Currency        string    `gorm:"type:varchar(10);not null" json:"currency"`
	Provider        string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_provider_order,priority:1" json:"provider"`
	ProviderOrderID string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_provider_order,priority:2" json:"provider_order_id"`
	PaymentID       string    `gorm:"type:varchar(100)" json:"payment_id"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsPaid reports whether the order has already been settled and credited.
func (o *PaymentOrder) IsPaid() bool {
	return o.Status == OrderStatusPaid
}
