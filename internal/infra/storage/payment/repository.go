package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	"github.com/m04kA/TT-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/TT-ReservationService/pkg/txmanager"
)

var paymentColumns = []string{
	"id",
	"reservation_id",
	"amount",
	"status",
	"method",
	"payment_date",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись о платеже
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"reservation_id",
			"amount",
			"status",
			"method",
			"payment_date",
		).
		Values(
			p.ReservationID,
			p.Amount,
			p.Status,
			p.Method,
			p.PaymentDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByReservationID получает платеж, связанный с бронированием.
// У бронирования не более одного платежа.
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ReservationID,
		&p.Amount,
		&p.Status,
		&p.Method,
		&p.PaymentDate,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - scan payment: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// UpdateStatus обновляет статус платежа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// RefundByReservationID помечает платеж бронирования как refunded.
// Используется при soft-cancel: отсутствие платежа - не ошибка.
func (r *Repository) RefundByReservationID(ctx context.Context, reservationID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentRefunded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RefundByReservationID - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RefundByReservationID - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// FindExpiredPending возвращает pending-платежи старше cutoff.
// Используется фоновой задачей, переводящей зависшие платежи в failed.
func (r *Repository) FindExpiredPending(ctx context.Context, cutoff time.Time) ([]*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"status": domain.PaymentPending}).
		Where(squirrel.Lt{"payment_date": cutoff}).
		OrderBy("payment_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindExpiredPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindExpiredPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&p.ID,
			&p.ReservationID,
			&p.Amount,
			&p.Status,
			&p.Method,
			&p.PaymentDate,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FindExpiredPending - scan row: %v", ErrScanRow, err)
		}

		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time

		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindExpiredPending - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
