package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	paymentRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/TT-ReservationService/internal/service/payments/models"
)

type fakePaymentRepo struct {
	existing *domain.Payment
	stale    []*domain.Payment

	created        *domain.Payment
	statusUpdates  map[int64]domain.PaymentStatus
	nextID         int64
	updateStatusFn func(id int64) error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{statusUpdates: make(map[int64]domain.PaymentStatus)}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	f.nextID++
	out := *p
	out.ID = f.nextID
	// снимок на момент вставки: вызывающий может менять возвращенный объект
	snapshot := out
	f.created = &snapshot
	return &out, nil
}

func (f *fakePaymentRepo) GetByReservationID(_ context.Context, _ int64) (*domain.Payment, error) {
	if f.existing == nil {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return f.existing, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	if f.updateStatusFn != nil {
		if err := f.updateStatusFn(id); err != nil {
			return err
		}
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakePaymentRepo) FindExpiredPending(_ context.Context, _ time.Time) ([]*domain.Payment, error) {
	return f.stale, nil
}

type fakeReservationRepo struct {
	missing bool
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.missing {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return &domain.Reservation{ID: id, Status: domain.StatusPending}, nil
}

type fakeMetrics struct {
	processed map[string]int
	expired   int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{processed: make(map[string]int)}
}

func (f *fakeMetrics) IncPaymentProcessed(status string) { f.processed[status]++ }
func (f *fakeMetrics) AddExpiredPayments(n int)          { f.expired += n }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakePaymentRepo, rsvRepo *fakeReservationRepo, m *fakeMetrics, roll float64) *Service {
	svc := NewService(repo, rsvRepo, m, nopLogger{})
	svc.roll = func() float64 { return roll }
	return svc
}

func TestProcess_SuccessOutcome(t *testing.T) {
	repo := newFakePaymentRepo()
	m := newFakeMetrics()
	svc := newTestService(repo, &fakeReservationRepo{}, m, 0.1)

	resp, err := svc.Process(context.Background(), 1, &models.ProcessPaymentRequest{
		Method: "credit_card",
		Amount: 1250.00,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentSuccess), resp.Status)
	assert.Equal(t, "credit_card", resp.Method)
	assert.Equal(t, 1250.00, resp.Amount)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.PaymentPending, repo.created.Status, "payment must be created as pending")
	assert.Equal(t, domain.PaymentSuccess, repo.statusUpdates[repo.created.ID])
	assert.Equal(t, 1, m.processed["success"])
}

func TestProcess_FailedOutcome(t *testing.T) {
	repo := newFakePaymentRepo()
	m := newFakeMetrics()
	svc := newTestService(repo, &fakeReservationRepo{}, m, 0.99)

	resp, err := svc.Process(context.Background(), 1, &models.ProcessPaymentRequest{
		Method: "digital_wallet",
		Amount: 500.00,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentFailed), resp.Status)
	assert.Equal(t, domain.PaymentFailed, repo.statusUpdates[repo.created.ID])
	assert.Equal(t, 1, m.processed["failed"])
}

func TestProcess_CashAlwaysSucceeds(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := newTestService(repo, &fakeReservationRepo{}, newFakeMetrics(), 0.999)

	resp, err := svc.Process(context.Background(), 1, &models.ProcessPaymentRequest{
		Method: "cash",
		Amount: 200.00,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentSuccess), resp.Status)
}

func TestProcess_ReservationNotFound(t *testing.T) {
	svc := newTestService(newFakePaymentRepo(), &fakeReservationRepo{missing: true}, newFakeMetrics(), 0.1)

	_, err := svc.Process(context.Background(), 404, &models.ProcessPaymentRequest{
		Method: "cash",
		Amount: 200.00,
	})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestProcess_PaymentAlreadyExists(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.existing = &domain.Payment{ID: 11, ReservationID: 1, Status: domain.PaymentSuccess}
	svc := newTestService(repo, &fakeReservationRepo{}, newFakeMetrics(), 0.1)

	_, err := svc.Process(context.Background(), 1, &models.ProcessPaymentRequest{
		Method: "cash",
		Amount: 200.00,
	})

	assert.ErrorIs(t, err, ErrPaymentAlreadyExists)
	assert.Nil(t, repo.created)
}

func TestProcess_UnsupportedMethod(t *testing.T) {
	svc := newTestService(newFakePaymentRepo(), &fakeReservationRepo{}, newFakeMetrics(), 0.1)

	_, err := svc.Process(context.Background(), 1, &models.ProcessPaymentRequest{
		Method: "barter",
		Amount: 200.00,
	})

	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestProcess_NonPositiveAmount(t *testing.T) {
	svc := newTestService(newFakePaymentRepo(), &fakeReservationRepo{}, newFakeMetrics(), 0.1)

	for _, amount := range []float64{0, -50} {
		_, err := svc.Process(context.Background(), 1, &models.ProcessPaymentRequest{
			Method: "cash",
			Amount: amount,
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "amount %.2f", amount)
	}
}

func TestGetByReservationID(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.existing = &domain.Payment{ID: 11, ReservationID: 1, Status: domain.PaymentSuccess, Amount: 300}
	svc := newTestService(repo, &fakeReservationRepo{}, newFakeMetrics(), 0.1)

	resp, err := svc.GetByReservationID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)

	repo.existing = nil
	_, err = svc.GetByReservationID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestExpireStalePending(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.stale = []*domain.Payment{
		{ID: 21, ReservationID: 1, Status: domain.PaymentPending},
		{ID: 22, ReservationID: 2, Status: domain.PaymentPending},
	}
	m := newFakeMetrics()
	svc := newTestService(repo, &fakeReservationRepo{}, m, 0.1)

	expired, err := svc.ExpireStalePending(context.Background(), 30*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	assert.Equal(t, domain.PaymentFailed, repo.statusUpdates[21])
	assert.Equal(t, domain.PaymentFailed, repo.statusUpdates[22])
	assert.Equal(t, 2, m.expired)
}

func TestExpireStalePending_ContinuesPastFailures(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.stale = []*domain.Payment{
		{ID: 21, ReservationID: 1, Status: domain.PaymentPending},
		{ID: 22, ReservationID: 2, Status: domain.PaymentPending},
	}
	repo.updateStatusFn = func(id int64) error {
		if id == 21 {
			return assert.AnError
		}
		return nil
	}
	m := newFakeMetrics()
	svc := newTestService(repo, &fakeReservationRepo{}, m, 0.1)

	expired, err := svc.ExpireStalePending(context.Background(), 30*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, domain.PaymentFailed, repo.statusUpdates[22])
	assert.Equal(t, 1, m.expired)
}

func TestExpireStalePending_NothingToExpire(t *testing.T) {
	repo := newFakePaymentRepo()
	m := newFakeMetrics()
	svc := newTestService(repo, &fakeReservationRepo{}, m, 0.1)

	expired, err := svc.ExpireStalePending(context.Background(), 30*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	assert.Equal(t, 0, m.expired)
}
