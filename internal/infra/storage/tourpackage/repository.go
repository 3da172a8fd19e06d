package tourpackage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	"github.com/m04kA/TT-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/TT-ReservationService/pkg/txmanager"
)

// packageColumns колонки таблицы packages в порядке сканирования,
// должны совпадать со схемой из migrations
var packageColumns = []string{
	"id",
	"title",
	"description",
	"price",
	"duration_day",
}

// Repository репозиторий каталога туристических пакетов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пакетов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пакет по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TourPackage, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.TourPackage
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.DurationDay,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan package: %v", ErrScanRow, err)
	}

	return &p, nil
}
