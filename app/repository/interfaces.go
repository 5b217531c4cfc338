package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adityasampath/Imagify-Project/app/models"
)

// ErrInsufficientCredits is returned when a conditional debit finds no credit
// left to spend. It is the storage layer's answer to two concurrent
// generations racing for the last credit.
var ErrInsufficientCredits = errors.New("insufficient credit balance")

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	// DebitCredit decrements one credit iff the balance is positive, as a
	// single conditional update, and returns the new balance.
	DebitCredit(userID uint) (int, error)
	// AddCredits increments the balance and returns the new balance.
	AddCredits(userID uint, credits int) (int, error)
	Count() (int64, error)
}

// PaymentOrderRepository defines the interface for checkout order persistence
type PaymentOrderRepository interface {
	Create(order *models.PaymentOrder) error
	GetByProviderOrderID(provider, providerOrderID string) (*models.PaymentOrder, error)
	// MarkPaidAndCredit settles a pending order and credits its plan amount to
	// the owning user in one transaction. It reports whether this call did the
	// crediting; a second call for the same order is a no-op.
	MarkPaidAndCredit(provider, providerOrderID, paymentID string) (bool, error)
	MarkFailed(provider, providerOrderID string) error
}

// GenerationRepository defines the interface for generation audit rows
type GenerationRepository interface {
	Create(generation *models.Generation) error
	CountByUserID(userID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	PaymentOrder PaymentOrderRepository
	Generation   GenerationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		PaymentOrder: NewPaymentOrderRepository(db),
		Generation:   NewGenerationRepository(db),
	}
}
