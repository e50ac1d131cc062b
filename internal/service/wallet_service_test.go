// internal/service/wallet_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"betledger/internal/domain"
	"betledger/internal/util"
	"betledger/pkg/db"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// walletTestEnv bundles the mocks behind a WalletService instance.
type walletTestEnv struct {
	userRepo    *MockUserRepository
	balanceRepo *MockBalanceRepository
	entryRepo   *MockEntryRepository
	dbBeginner  *MockDBBeginner
	dbExecutor  *MockDBExecutor
	tx          *MockTxController
	service     WalletService
}

func newWalletTestEnv() *walletTestEnv {
	env := &walletTestEnv{
		userRepo:    new(MockUserRepository),
		balanceRepo: new(MockBalanceRepository),
		entryRepo:   new(MockEntryRepository),
		dbBeginner:  new(MockDBBeginner),
		dbExecutor:  new(MockDBExecutor),
		tx:          new(MockTxController),
	}
	env.service = NewWalletService(
		env.dbBeginner,
		env.dbExecutor,
		env.userRepo,
		env.balanceRepo,
		env.entryRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return env.tx, nil
		},
		func(tx db.TxController) error {
			return env.tx.Commit()
		},
		func(tx db.TxController) {
			_ = env.tx.Rollback()
		},
	)
	return env
}

func (env *walletTestEnv) assertExpectations(t *testing.T) {
	mock.AssertExpectationsForObjects(t, env.userRepo, env.balanceRepo, env.entryRepo, env.tx)
}

// TestDeposit tests the Deposit method of WalletService.
func TestDeposit(t *testing.T) {
	userID := int64(1)
	amount := decimal.NewFromFloat(100.00)

	t.Run("SuccessfulDeposit", func(t *testing.T) {
		ctx := context.Background()
		env := newWalletTestEnv()

		initial := &domain.Balance{ID: 1, UserID: userID, Amount: decimal.NewFromFloat(500.00)}
		updated := &domain.Balance{ID: 1, UserID: userID, Amount: decimal.NewFromFloat(600.00)}

		env.balanceRepo.On("GetBalanceByUserID", ctx, mock.Anything, userID).Return(initial, nil).Once()
		env.balanceRepo.On("Credit", ctx, mock.Anything, userID, amount).Return(nil).Once()
		env.entryRepo.On("CreateEntry", ctx, mock.Anything, mock.MatchedBy(func(e *domain.BalanceEntry) bool {
			return e.Kind == domain.EntryKindDeposit && e.Amount.Equal(amount) && e.TicketID == nil
		})).Return(nil).Once()
		env.balanceRepo.On("GetBalanceByUserID", ctx, mock.Anything, userID).Return(updated, nil).Once()
		env.tx.On("Commit").Return(nil).Once()
		env.tx.On("Rollback").Return(nil).Maybe()

		balance, entry, err := env.service.Deposit(ctx, userID, amount)

		assert.NoError(t, err)
		assert.NotNil(t, balance)
		assert.NotNil(t, entry)
		assert.True(t, balance.Amount.Equal(decimal.NewFromFloat(600.00)))
		assert.Equal(t, domain.EntryKindDeposit, entry.Kind)

		env.assertExpectations(t)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		ctx := context.Background()
		env := newWalletTestEnv()

		balance, entry, err := env.service.Deposit(ctx, userID, decimal.NewFromFloat(-10.00))

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, balance)
		assert.Nil(t, entry)
		env.tx.AssertNotCalled(t, "Commit")
		env.tx.AssertNotCalled(t, "Rollback")
		env.assertExpectations(t)
	})

	t.Run("BalanceNotFound", func(t *testing.T) {
		ctx := context.Background()
		env := newWalletTestEnv()

		env.balanceRepo.On("GetBalanceByUserID", ctx, mock.Anything, userID).Return(nil, util.ErrNotFound).Once()
		env.tx.On("Rollback").Return(nil).Once()

		balance, entry, err := env.service.Deposit(ctx, userID, amount)

		assert.ErrorIs(t, err, util.ErrNotFound)
		assert.Nil(t, balance)
		assert.Nil(t, entry)
		env.tx.AssertNotCalled(t, "Commit")
		env.assertExpectations(t)
	})

	t.Run("CreditError", func(t *testing.T) {
		ctx := context.Background()
		env := newWalletTestEnv()

		initial := &domain.Balance{ID: 1, UserID: userID, Amount: decimal.NewFromFloat(500.00)}
		env.balanceRepo.On("GetBalanceByUserID", ctx, mock.Anything, userID).Return(initial, nil).Once()
		env.balanceRepo.On("Credit", ctx, mock.Anything, userID, amount).Return(errors.New("db error")).Once()
		env.tx.On("Rollback").Return(nil).Once()

		balance, entry, err := env.service.Deposit(ctx, userID, amount)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to credit")
		assert.Nil(t, balance)
		assert.Nil(t, entry)
		env.tx.AssertNotCalled(t, "Commit")
		env.assertExpectations(t)
	})
}

// TestWithdraw tests the Withdraw method of WalletService.
func TestWithdraw(t *testing.T) {
	userID := int64(1)
	amount := decimal.NewFromFloat(50.00)

	t.Run("SuccessfulWithdraw", func(t *testing.T) {
		ctx := context.Background()
		env := newWalletTestEnv()

		initial := &domain.Balance{ID: 1, UserID: userID, Amount: decimal.NewFromFloat(500.00)}
		updated := &domain.Balance{ID: 1, UserID: userID, Amount: decimal.NewFromFloat(450.00)}

		env.balanceRepo.On("GetBalanceByUserID", ctx, mock.Anything, userID).Return(initial, nil).Once()
		env.balanceRepo.On("Debit", ctx, mock.Anything, userID, amount).Return(nil).Once()
		env.entryRepo.On("CreateEntry", ctx, mock.Anything, mock.MatchedBy(func(e *domain.BalanceEntry) bool {
			return e.Kind == domain.EntryKindWithdrawal && e.Amount.Equal(amount.Neg())
		})).Return(nil).Once()
		env.balanceRepo.On("GetBalanceByUserID", ctx, mock.Anything, userID).Return(updated, nil).Once()
		env.tx.On("Commit").Return(nil).Once()
		env.tx.On("Rollback").Return(nil).Maybe()

		balance, entry, err := env.service.Withdraw(ctx, userID, amount)

		assert.NoError(t, err)
		assert.True(t, balance.Amount.Equal(decimal.NewFromFloat(450.00)))
		assert.Equal(t, domain.EntryKindWithdrawal, entry.Kind)

		env.assertExpectations(t)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		ctx := context.Background()
		env := newWalletTestEnv()

		initial := &domain.Balance{ID: 1, UserID: userID, Amount: decimal.NewFromFloat(10.00)}
		env.balanceRepo.On("GetBalanceByUserID", ctx, mock.Anything, userID).Return(initial, nil).Once()
		env.balanceRepo.On("Debit", ctx, mock.Anything, userID, amount).Return(util.ErrInsufficientFunds).Once()
		env.tx.On("Rollback").Return(nil).Once()

		balance, entry, err := env.service.Withdraw(ctx, userID, amount)

		assert.ErrorIs(t, err, util.ErrInsufficientFunds)
		assert.Nil(t, balance)
		assert.Nil(t, entry)
		env.entryRepo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
		env.tx.AssertNotCalled(t, "Commit")
		env.assertExpectations(t)
	})
}

// TestCreateUserAndBalance tests user provisioning.
func TestCreateUserAndBalance(t *testing.T) {
	t.Run("SuccessfulCreate", func(t *testing.T) {
		ctx := context.Background()
		env := newWalletTestEnv()

		env.userRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(nil, util.ErrNotFound).Once()
		env.userRepo.On("CreateUser", ctx, mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()
		env.balanceRepo.On("CreateBalance", ctx, mock.Anything, mock.AnythingOfType("*domain.Balance")).Return(nil).Once()
		env.tx.On("Commit").Return(nil).Once()
		env.tx.On("Rollback").Return(nil).Maybe()

		user, balance, err := env.service.CreateUserAndBalance(ctx, "alice")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.True(t, balance.Amount.IsZero())

		env.assertExpectations(t)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		ctx := context.Background()
		env := newWalletTestEnv()

		existing := &domain.User{ID: 1, Username: "alice"}
		env.userRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(existing, nil).Once()
		env.tx.On("Rollback").Return(nil).Once()

		user, balance, err := env.service.CreateUserAndBalance(ctx, "alice")

		assert.ErrorIs(t, err, util.ErrDuplicateEntry)
		assert.Nil(t, user)
		assert.Nil(t, balance)
		env.userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
		env.tx.AssertNotCalled(t, "Commit")
		env.assertExpectations(t)
	})

	t.Run("EmptyUsername", func(t *testing.T) {
		ctx := context.Background()
		env := newWalletTestEnv()

		user, balance, err := env.service.CreateUserAndBalance(ctx, "")

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, user)
		assert.Nil(t, balance)
		env.tx.AssertNotCalled(t, "Commit")
		env.assertExpectations(t)
	})
}
