package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB opens a gorm handle over sqlmock. Default write transactions are
// disabled so expectations only cover the statements the repositories issue
// themselves.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestDebitCreditSpendsExactlyOne(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET `credit_balance`=credit_balance - ?")).
		WithArgs(1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "credit_balance"}).AddRow(1, 4))

	balance, err := repo.DebitCredit(1)
	require.NoError(t, err)
	assert.Equal(t, 4, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDebitCreditEmptyBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	// The conditional update matches no row when the balance is already zero.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET `credit_balance`=credit_balance - ?")).
		WithArgs(1, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.DebitCredit(1)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCredits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET `credit_balance`=credit_balance + ?")).
		WithArgs(100, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "credit_balance"}).AddRow(7, 105))

	balance, err := repo.AddCredits(7, 100)
	require.NoError(t, err)
	assert.Equal(t, 105, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCreditsUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET `credit_balance`=credit_balance + ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.AddCredits(99, 100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "credit_balance"}).
			AddRow(3, "Aditya", "aditya@example.com", 5))

	user, err := repo.GetByEmail("aditya@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)
	assert.Equal(t, 5, user.CreditBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
