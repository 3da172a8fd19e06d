package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	"github.com/m04kA/TT-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/TT-ReservationService/pkg/txmanager"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var reservationColumns = []string{
	"id",
	"confirmation_code",
	"customer_id",
	"package_id",
	"guide_id",
	"status",
	"start_date",
	"end_date",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте есть активная транзакция, использует её - при создании
// бронирования с проверкой доступности вставка обязана идти в той же
// сериализуемой транзакции, что и проверка пересечений.
func (r *Repository) Create(ctx context.Context, rsv *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"confirmation_code",
			"customer_id",
			"package_id",
			"guide_id",
			"status",
			"start_date",
			"end_date",
		).
		Values(
			rsv.ConfirmationCode,
			rsv.CustomerID,
			rsv.PackageID,
			rsv.GuideID,
			rsv.Status,
			rsv.StartDate,
			rsv.EndDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rsv.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: code=%s", ErrDuplicateConfirmationCode, rsv.ConfirmationCode)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rsv.CreatedAt = createdAt.Time
	rsv.UpdatedAt = updatedAt.Time

	return rsv, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByConfirmationCode получает бронирование по коду подтверждения
func (r *Repository) GetByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"confirmation_code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByConfirmationCode - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByConfirmationCode")
}

// ExistsActiveOverlap проверяет наличие активного бронирования пакета,
// пересекающегося с интервалом [start, end] (включительно с обеих сторон):
// existing.start_date <= end AND existing.end_date >= start.
// Внутри транзакции строки блокируются через FOR UPDATE, чтобы закрыть
// гонку "проверка-вставка" при конкурентном создании бронирований.
func (r *Repository) ExistsActiveOverlap(ctx context.Context, packageID int64, start, end time.Time) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("id").
		From("reservations").
		Where(squirrel.Eq{"package_id": packageID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.GtOrEq{"end_date": start})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveOverlap - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveOverlap - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exists := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("%w: ExistsActiveOverlap - rows error: %v", ErrScanRow, err)
	}

	return exists, nil
}

// List получает бронирования с фильтрацией по клиенту и статусу,
// отсортированные от новых к старым
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("created_at DESC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// AssignGuide прикрепляет гида к бронированию, не меняя статус
func (r *Repository) AssignGuide(ctx context.Context, id int64, guideID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("guide_id", guideID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignGuide - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "AssignGuide")
}

// Delete физически удаляет бронирование.
// При блокировке удаления связанными записями (FK платежа) возвращает
// ErrDeleteConstraint - вызывающий слой деградирует до soft-cancel.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("%w: reservation id=%d", ErrDeleteConstraint, id)
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor txmanager.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Reservation, error) {
	var rsv domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rsv.ID,
		&rsv.ConfirmationCode,
		&rsv.CustomerID,
		&rsv.PackageID,
		&rsv.GuideID,
		&rsv.Status,
		&rsv.StartDate,
		&rsv.EndDate,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}

	rsv.CreatedAt = createdAt.Time
	rsv.UpdatedAt = updatedAt.Time

	return &rsv, nil
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var rsv domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rsv.ID,
			&rsv.ConfirmationCode,
			&rsv.CustomerID,
			&rsv.PackageID,
			&rsv.GuideID,
			&rsv.Status,
			&rsv.StartDate,
			&rsv.EndDate,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		rsv.CreatedAt = createdAt.Time
		rsv.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &rsv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
