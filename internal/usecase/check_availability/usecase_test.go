package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	packageRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/tourpackage"
)

type fakeReservationRepo struct {
	overlap bool
	err     error

	gotPackageID int64
	gotStart     time.Time
	gotEnd       time.Time
}

func (f *fakeReservationRepo) ExistsActiveOverlap(_ context.Context, packageID int64, start, end time.Time) (bool, error) {
	f.gotPackageID = packageID
	f.gotStart = start
	f.gotEnd = end
	return f.overlap, f.err
}

type fakePackageCatalog struct {
	pkg *domain.TourPackage
	err error
}

func (f *fakePackageCatalog) GetByID(_ context.Context, _ int64) (*domain.TourPackage, error) {
	return f.pkg, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	require.NoError(t, err)
	return d
}

func TestExecute_AvailableWhenNoOverlap(t *testing.T) {
	repo := &fakeReservationRepo{overlap: false}
	catalog := &fakePackageCatalog{pkg: &domain.TourPackage{ID: 7}}
	uc := NewUseCase(repo, catalog, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		PackageID: 7,
		StartDate: date(t, "2026-07-01"),
		EndDate:   date(t, "2026-07-05"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, int64(7), repo.gotPackageID)
	assert.Equal(t, date(t, "2026-07-01"), repo.gotStart)
	assert.Equal(t, date(t, "2026-07-05"), repo.gotEnd)
}

func TestExecute_UnavailableWhenActiveOverlapExists(t *testing.T) {
	repo := &fakeReservationRepo{overlap: true}
	catalog := &fakePackageCatalog{pkg: &domain.TourPackage{ID: 7}}
	uc := NewUseCase(repo, catalog, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		PackageID: 7,
		StartDate: date(t, "2026-07-03"),
		EndDate:   date(t, "2026-07-08"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestExecute_PackageNotFound(t *testing.T) {
	repo := &fakeReservationRepo{}
	catalog := &fakePackageCatalog{err: packageRepo.ErrPackageNotFound}
	uc := NewUseCase(repo, catalog, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		PackageID: 999,
		StartDate: date(t, "2026-07-01"),
		EndDate:   date(t, "2026-07-05"),
	})

	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakePackageCatalog{pkg: &domain.TourPackage{ID: 1}}, nopLogger{})

	t.Run("end before start", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			PackageID: 1,
			StartDate: date(t, "2026-07-05"),
			EndDate:   date(t, "2026-07-01"),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("missing dates", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{PackageID: 1})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("single-day range is valid", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			PackageID: 1,
			StartDate: date(t, "2026-07-01"),
			EndDate:   date(t, "2026-07-01"),
		})
		require.NoError(t, err)
		assert.True(t, resp.Available)
	})
}

func TestExecute_InvalidPackageID(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakePackageCatalog{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		PackageID: 0,
		StartDate: date(t, "2026-07-01"),
		EndDate:   date(t, "2026-07-05"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
