package guide

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	"github.com/m04kA/TT-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/TT-ReservationService/pkg/txmanager"
)

// Repository репозиторий для работы с гидами
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория гидов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает гида по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Guide, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"email",
		"phone",
	).
		From("guides").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var g domain.Guide
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&g.ID,
		&g.FirstName,
		&g.LastName,
		&g.Email,
		&g.Phone,
	)

	if err == sql.ErrNoRows {
		return nil, ErrGuideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan guide: %v", ErrScanRow, err)
	}

	return &g, nil
}

// Exists проверяет существование гида по ID
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("guides").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Exists - scan result: %v", ErrScanRow, err)
	}

	return true, nil
}
