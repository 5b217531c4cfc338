package repository

import (
	"gorm.io/gorm"

	"github.com/adityasampath/Imagify-Project/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// DebitCredit spends one credit. The balance guard and the decrement are the
// same UPDATE statement, so two concurrent debits of a single remaining credit
// resolve to exactly one success.
func (r *userRepository) DebitCredit(userID uint) (int, error) {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND credit_balance > 0", userID).
		UpdateColumn("credit_balance", gorm.Expr("credit_balance - ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrInsufficientCredits
	}

	user, err := r.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.CreditBalance, nil
}

// AddCredits tops up the balance by the given amount
func (r *userRepository) AddCredits(userID uint, credits int) (int, error) {
	res := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("credit_balance", gorm.Expr("credit_balance + ?", credits))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	user, err := r.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.CreditBalance, nil
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
