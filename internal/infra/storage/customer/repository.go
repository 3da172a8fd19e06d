package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	"github.com/m04kA/TT-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/TT-ReservationService/pkg/txmanager"
)

const pgUniqueViolation = "23505"

var customerColumns = []string{
	"id",
	"first_name",
	"last_name",
	"email",
	"phone",
	"nic",
	"is_guest",
	"created_at",
}

// Repository репозиторий для работы с клиентами
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.NIC,
		&c.IsGuest,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time

	return &c, nil
}

// GetByEmail находит клиента по email (естественный ключ клиента)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"email": email}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.NIC,
		&c.IsGuest,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan customer: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time

	return &c, nil
}

// Create создает нового клиента (в том числе гостевой профиль при
// бронировании без регистрации)
func (r *Repository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns(
			"first_name",
			"last_name",
			"email",
			"phone",
			"nic",
			"is_guest",
		).
		Values(
			c.FirstName,
			c.LastName,
			c.Email,
			c.Phone,
			c.NIC,
			c.IsGuest,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: email=%s", ErrDuplicateIdentity, c.Email)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time

	return c, nil
}
