package repository

import (
	"gorm.io/gorm"

	"github.com/adityasampath/Imagify-Project/app/models"
)

// paymentOrderRepository implements the PaymentOrderRepository interface
type paymentOrderRepository struct {
	db *gorm.DB
}

// NewPaymentOrderRepository creates a new payment order repository instance
func NewPaymentOrderRepository(db *gorm.DB) PaymentOrderRepository {
	return &paymentOrderRepository{db: db}
}

// Create persists a new pending checkout order
func (r *paymentOrderRepository) Create(order *models.PaymentOrder) error {
	return r.db.Create(order).Error
}

// GetByProviderOrderID retrieves an order by its gateway-issued id
func (r *paymentOrderRepository) GetByProviderOrderID(provider, providerOrderID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := r.db.Where("provider = ? AND provider_order_id = ?", provider, providerOrderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkPaidAndCredit settles the order and credits the user inside one
// transaction. The status flip is a conditional UPDATE on status = pending;
// when it affects no row the order was already settled and nothing is
// credited again.
func (r *paymentOrderRepository) MarkPaidAndCredit(provider, providerOrderID, paymentID string) (bool, error) {
	credited := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order models.PaymentOrder
		if err := tx.Where("provider = ? AND provider_order_id = ?", provider, providerOrderID).
			First(&order).Error; err != nil {
			return err
		}

		res := tx.Model(&models.PaymentOrder{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":     models.OrderStatusPaid,
				"payment_id": paymentID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already settled; duplicate verification call
			return nil
		}

		credited = true
		return tx.Model(&models.User{}).
			Where("id = ?", order.UserID).
			UpdateColumn("credit_balance", gorm.Expr("credit_balance + ?", order.Credits)).Error
	})
	return credited, err
}

// MarkFailed flags a pending order as failed without touching the balance
func (r *paymentOrderRepository) MarkFailed(provider, providerOrderID string) error {
	return r.db.Model(&models.PaymentOrder{}).
		Where("provider = ? AND provider_order_id = ? AND status = ?", provider, providerOrderID, models.OrderStatusPending).
		Update("status", models.OrderStatusFailed).Error
}
