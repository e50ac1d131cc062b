// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"betledger/internal/domain"
	"betledger/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. It embeds
// MockDBExecutor so the service can use it as a repository.DBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	args := m.Called(ctx, q, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockBalanceRepository is a mock implementation of repository.BalanceRepository.
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) CreateBalance(ctx context.Context, q repository.DBExecutor, balance *domain.Balance) error {
	args := m.Called(ctx, q, balance)
	return args.Error(0)
}

func (m *MockBalanceRepository) GetBalanceByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Balance, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) Credit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, userID, amount)
	return args.Error(0)
}

func (m *MockBalanceRepository) Debit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, userID, amount)
	return args.Error(0)
}

// MockEntryRepository is a mock implementation of repository.EntryRepository.
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) CreateEntry(ctx context.Context, q repository.DBExecutor, entry *domain.BalanceEntry) error {
	args := m.Called(ctx, q, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) GetEntriesByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit, offset int) ([]domain.BalanceEntry, int64, error) {
	args := m.Called(ctx, q, userID, limit, offset)
	return args.Get(0).([]domain.BalanceEntry), args.Get(1).(int64), args.Error(2)
}

// MockTicketRepository is a mock implementation of repository.TicketRepository.
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) CreateTicket(ctx context.Context, q repository.DBExecutor, ticket *domain.Ticket) error {
	args := m.Called(ctx, q, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetTicketByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) TransitionStatus(ctx context.Context, q repository.DBExecutor, id string, to domain.TicketStatus, settledAt time.Time) (bool, error) {
	args := m.Called(ctx, q, id, to, settledAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketRepository) SetLegStatuses(ctx context.Context, q repository.DBExecutor, ticketID string, status domain.TicketStatus) error {
	args := m.Called(ctx, q, ticketID, status)
	return args.Error(0)
}

func (m *MockTicketRepository) DeleteTicket(ctx context.Context, q repository.DBExecutor, id string) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockTicketRepository) GetTicketsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit, offset int) ([]domain.Ticket, int64, error) {
	args := m.Called(ctx, q, userID, limit, offset)
	return args.Get(0).([]domain.Ticket), args.Get(1).(int64), args.Error(2)
}

// MockEventRepository is a mock implementation of repository.EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) CreateEvent(ctx context.Context, q repository.DBExecutor, event *domain.SportEvent) error {
	args := m.Called(ctx, q, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetEventByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.SportEvent, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SportEvent), args.Error(1)
}

func (m *MockEventRepository) SetEventStatus(ctx context.Context, q repository.DBExecutor, id string, status domain.EventStatus) error {
	args := m.Called(ctx, q, id, status)
	return args.Error(0)
}

func (m *MockEventRepository) GetEvents(ctx context.Context, q repository.DBExecutor, status *domain.EventStatus) ([]domain.SportEvent, error) {
	args := m.Called(ctx, q, status)
	return args.Get(0).([]domain.SportEvent), args.Error(1)
}

// MockOddsRepository is a mock implementation of repository.OddsRepository.
type MockOddsRepository struct {
	mock.Mock
}

func (m *MockOddsRepository) CreateSnapshot(ctx context.Context, q repository.DBExecutor, snapshot *domain.OddsSnapshot) error {
	args := m.Called(ctx, q, snapshot)
	return args.Error(0)
}

func (m *MockOddsRepository) GetSnapshotByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.OddsSnapshot, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OddsSnapshot), args.Error(1)
}

func (m *MockOddsRepository) GetSnapshotsByEventID(ctx context.Context, q repository.DBExecutor, eventID string) ([]domain.OddsSnapshot, error) {
	args := m.Called(ctx, q, eventID)
	return args.Get(0).([]domain.OddsSnapshot), args.Error(1)
}
