package create_booking

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	customerRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/customer"
	reservationRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/reservation"
	packageRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/tourpackage"
)

type fakeReservationRepo struct {
	mu sync.Mutex

	overlap    bool
	overlapErr error

	createErrs []error // очередь ошибок Create, nil - успех
	created    []*domain.Reservation

	nextID int64
}

func (f *fakeReservationRepo) ExistsActiveOverlap(_ context.Context, _ int64, _, _ time.Time) (bool, error) {
	return f.overlap, f.overlapErr
}

func (f *fakeReservationRepo) Create(_ context.Context, rsv *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f.nextID++
	out := *rsv
	out.ID = f.nextID
	out.CreatedAt = time.Now()
	f.created = append(f.created, &out)
	return &out, nil
}

type fakeCustomerDirectory struct {
	existing  *domain.Customer
	getErr    error
	createErr error

	createdGuest *domain.Customer
}

func (f *fakeCustomerDirectory) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.existing, nil
}

func (f *fakeCustomerDirectory) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *c
	out.ID = 42
	f.createdGuest = &out
	return &out, nil
}

type fakePackageCatalog struct {
	err error
}

func (f *fakePackageCatalog) GetByID(_ context.Context, id int64) (*domain.TourPackage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TourPackage{ID: id, Title: "Highlands Trek"}, nil
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (f *fakeMetrics) IncReservationCreated() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
}

func (f *fakeMetrics) IncBookingConflict() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts++
}

type stubTime struct {
	t time.Time
}

func (s stubTime) Now() time.Time { return s.t }

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

func validRequest(t *testing.T) *Request {
	return &Request{
		Customer: CustomerInfo{
			FirstName: "Nuwan",
			LastName:  "Perera",
			Email:     "nuwan@example.com",
		},
		PackageID: 3,
		StartDate: date(t, "2026-07-01"),
		EndDate:   date(t, "2026-07-05"),
		Amount:    1250.00,
	}
}

func newTestUseCase(
	repo *fakeReservationRepo,
	customers *fakeCustomerDirectory,
	catalog *fakePackageCatalog,
	tx *fakeTxManager,
	m *fakeMetrics,
) *UseCase {
	uc := NewUseCase(repo, customers, catalog, tx, m, nopLogger{})
	uc.timeProvider = stubTime{t: time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)}
	uc.randInt = func(n int) int { return 1234 }
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeReservationRepo{}
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9, Email: "nuwan@example.com"}}
	m := &fakeMetrics{}
	uc := newTestUseCase(repo, customers, &fakePackageCatalog{}, &fakeTxManager{}, m)

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Equal(t, "TT-20260615-1234", resp.ConfirmationCode)
	assert.Equal(t, int64(9), resp.CustomerID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 1250.00, resp.Amount)
	assert.Equal(t, 1, m.created)
	assert.Equal(t, 0, m.conflicts)
}

func TestExecute_ConfirmationCodeFormat(t *testing.T) {
	repo := &fakeReservationRepo{}
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9}}
	uc := newTestUseCase(repo, customers, &fakePackageCatalog{}, &fakeTxManager{}, &fakeMetrics{})
	uc.randInt = func(n int) int { return 7 } // ведущие нули сохраняются

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TT-\d{8}-\d{4}$`), resp.ConfirmationCode)
	assert.Equal(t, "TT-20260615-0007", resp.ConfirmationCode)
}

func TestExecute_BookingConflict(t *testing.T) {
	repo := &fakeReservationRepo{overlap: true}
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9}}
	m := &fakeMetrics{}
	uc := newTestUseCase(repo, customers, &fakePackageCatalog{}, &fakeTxManager{}, m)

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.Empty(t, repo.created, "no reservation must be inserted on conflict")
	assert.Equal(t, 1, m.conflicts)
	assert.Equal(t, 0, m.created)
}

func TestExecute_SerializationFailureSurfacesAsConflict(t *testing.T) {
	repo := &fakeReservationRepo{}
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9}}
	m := &fakeMetrics{}
	tx := &fakeTxManager{err: errors.New("serialization failure")}
	uc := newTestUseCase(repo, customers, &fakePackageCatalog{}, tx, m)

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.Equal(t, 1, m.conflicts)
}

func TestExecute_PackageNotFound(t *testing.T) {
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9}}
	catalog := &fakePackageCatalog{err: packageRepo.ErrPackageNotFound}
	uc := newTestUseCase(&fakeReservationRepo{}, customers, catalog, &fakeTxManager{}, &fakeMetrics{})

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9}}
	uc := newTestUseCase(&fakeReservationRepo{}, customers, &fakePackageCatalog{}, &fakeTxManager{}, &fakeMetrics{})

	req := validRequest(t)
	req.StartDate, req.EndDate = req.EndDate, req.StartDate

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_InvalidInput(t *testing.T) {
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9}}
	uc := newTestUseCase(&fakeReservationRepo{}, customers, &fakePackageCatalog{}, &fakeTxManager{}, &fakeMetrics{})

	t.Run("missing email", func(t *testing.T) {
		req := validRequest(t)
		req.Customer.Email = "  "
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative amount", func(t *testing.T) {
		req := validRequest(t)
		req.Amount = -10
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_ProvisionsGuestCustomer(t *testing.T) {
	repo := &fakeReservationRepo{}
	customers := &fakeCustomerDirectory{getErr: customerRepo.ErrCustomerNotFound}
	uc := newTestUseCase(repo, customers, &fakePackageCatalog{}, &fakeTxManager{}, &fakeMetrics{})

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	require.NotNil(t, customers.createdGuest)
	assert.Equal(t, int64(42), resp.CustomerID)
	assert.True(t, customers.createdGuest.IsGuest)
	assert.True(t, strings.HasPrefix(customers.createdGuest.NIC, domain.GuestNICPrefix),
		"guest NIC %q must carry the synthetic prefix", customers.createdGuest.NIC)
	assert.Len(t, customers.createdGuest.NIC, len(domain.GuestNICPrefix)+8)
}

func TestExecute_RetriesOnConfirmationCodeCollision(t *testing.T) {
	repo := &fakeReservationRepo{
		createErrs: []error{reservationRepo.ErrDuplicateConfirmationCode, nil},
	}
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9}}
	m := &fakeMetrics{}
	uc := newTestUseCase(repo, customers, &fakePackageCatalog{}, &fakeTxManager{}, m)

	codes := []int{1111, 2222, 3333}
	uc.randInt = func(n int) int {
		code := codes[0]
		codes = codes[1:]
		return code
	}

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Equal(t, "TT-20260615-2222", resp.ConfirmationCode, "retry must use a fresh code")
	assert.Equal(t, 1, m.created)
}

func TestExecute_ConcurrentBookings(t *testing.T) {
	repo := &fakeReservationRepo{}
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9}}

	// намеренно без подмены randInt: проверяем генератор кодов
	// под конкурентными запросами (go test -race)
	uc := NewUseCase(repo, customers, &fakePackageCatalog{}, &fakeTxManager{}, &fakeMetrics{}, nopLogger{})

	req := validRequest(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.created, workers)
	codeFormat := regexp.MustCompile(`^TT-\d{8}-\d{4}$`)
	for _, rsv := range repo.created {
		assert.Regexp(t, codeFormat, rsv.ConfirmationCode)
	}
}

func TestExecute_ConfirmationCodeSpaceExhausted(t *testing.T) {
	repo := &fakeReservationRepo{
		createErrs: []error{
			reservationRepo.ErrDuplicateConfirmationCode,
			reservationRepo.ErrDuplicateConfirmationCode,
			reservationRepo.ErrDuplicateConfirmationCode,
		},
	}
	customers := &fakeCustomerDirectory{existing: &domain.Customer{ID: 9}}
	uc := newTestUseCase(repo, customers, &fakePackageCatalog{}, &fakeTxManager{}, &fakeMetrics{})

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrDuplicateConfirmationCode)
}
