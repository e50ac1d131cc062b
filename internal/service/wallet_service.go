// internal/service/wallet_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"betledger/internal/domain"
	"betledger/internal/repository"
	"betledger/internal/util"
	"betledger/pkg/db"

	"github.com/shopspring/decimal"
)

// WalletService defines the deposit/withdrawal subsystem. It drives the same
// balance primitives as settlement, under the same transactional discipline.
type WalletService interface {
	CreateUserAndBalance(ctx context.Context, username string) (*domain.User, *domain.Balance, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Balance, *domain.BalanceEntry, error)
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Balance, *domain.BalanceEntry, error)
	GetBalance(ctx context.Context, userID int64) (*domain.Balance, error)
	GetBalanceEntries(ctx context.Context, userID int64, limit, offset int) ([]domain.BalanceEntry, int64, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner  db.DBTxBeginner
	dbExecutor  repository.DBExecutor
	userRepo    repository.UserRepository
	balanceRepo repository.BalanceRepository
	entryRepo   repository.EntryRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	balanceRepo repository.BalanceRepository,
	entryRepo repository.EntryRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WalletService {
	return &walletService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		balanceRepo: balanceRepo,
		entryRepo:   entryRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// CreateUserAndBalance provisions a user together with a zero balance.
func (s *walletService) CreateUserAndBalance(ctx context.Context, username string) (*domain.User, *domain.Balance, error) {
	if username == "" {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("create user and balance: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("create user and balance: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByUsername(ctx, txExecutor, username)
	if err == nil {
		return nil, nil, fmt.Errorf("create user and balance: username '%s': %w", username, util.ErrDuplicateEntry)
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, nil, fmt.Errorf("create user and balance: failed to check existing user: %w", err)
	}

	user := domain.NewUser(username)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, nil, fmt.Errorf("create user and balance: failed to create user: %w", err)
	}

	balance := domain.NewBalance(user.ID)
	if err := s.balanceRepo.CreateBalance(ctx, txExecutor, balance); err != nil {
		return nil, nil, fmt.Errorf("create user and balance: failed to create balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("create user and balance: failed to commit transaction: %w", err)
	}
	return user, balance, nil
}

// Deposit adds money to a user's balance.
func (s *walletService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Balance, *domain.BalanceEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	if _, err := s.balanceRepo.GetBalanceByUserID(ctx, txExecutor, userID); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to get balance for user %d: %w", userID, err)
	}

	if err := s.balanceRepo.Credit(ctx, txExecutor, userID, amount); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to credit user %d: %w", userID, err)
	}

	entry := domain.NewBalanceEntry(userID, nil, amount, domain.EntryKindDeposit)
	if err := s.entryRepo.CreateEntry(ctx, txExecutor, entry); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to create entry: %w", err)
	}

	updated, err := s.balanceRepo.GetBalanceByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to re-fetch balance for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}
	return updated, entry, nil
}

// Withdraw removes money from a user's balance. The funds check is the
// conditional debit itself, so a concurrent placement cannot interleave
// between check and write.
func (s *walletService) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Balance, *domain.BalanceEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("withdraw: transaction controller does not implement DBExecutor")
	}

	if _, err := s.balanceRepo.GetBalanceByUserID(ctx, txExecutor, userID); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to get balance for user %d: %w", userID, err)
	}

	if err := s.balanceRepo.Debit(ctx, txExecutor, userID, amount); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to debit user %d: %w", userID, err)
	}

	entry := domain.NewBalanceEntry(userID, nil, amount.Neg(), domain.EntryKindWithdrawal)
	if err := s.entryRepo.CreateEntry(ctx, txExecutor, entry); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to create entry: %w", err)
	}

	updated, err := s.balanceRepo.GetBalanceByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to re-fetch balance for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to commit transaction: %w", err)
	}
	return updated, entry, nil
}

// GetBalance retrieves a user's balance outside any transaction.
func (s *walletService) GetBalance(ctx context.Context, userID int64) (*domain.Balance, error) {
	balance, err := s.balanceRepo.GetBalanceByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get balance: failed to get balance for user %d: %w", userID, err)
	}
	return balance, nil
}

// GetBalanceEntries retrieves a paginated journal for a user.
func (s *walletService) GetBalanceEntries(ctx context.Context, userID int64, limit, offset int) ([]domain.BalanceEntry, int64, error) {
	if _, err := s.balanceRepo.GetBalanceByUserID(ctx, s.dbExecutor, userID); err != nil {
		return nil, 0, fmt.Errorf("get balance entries: failed to get balance for user %d: %w", userID, err)
	}
	entries, totalCount, err := s.entryRepo.GetEntriesByUserID(ctx, s.dbExecutor, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get balance entries: %w", err)
	}
	return entries, totalCount, nil
}
