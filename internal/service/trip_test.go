package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/backend/internal/domain"
	"github.com/tripwise/backend/internal/repo"
	"github.com/tripwise/backend/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.
type mockTripRepo struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	update     func(ctx context.Context, userID, tripID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	delete     func(ctx context.Context, userID, tripID uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, tripID)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) Update(ctx context.Context, userID, tripID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	return m.update(ctx, userID, tripID, upd)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		Destination: "Lisbon",
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Budget:      2000,
	}
}

func echoTripRepo() *mockTripRepo {
	// A repo that echoes whatever it receives back — useful for Create/Update
	// tests that only care about validation logic, not what the DB returns.
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, _, _ uuid.UUID, _ domain.TripUpdate) (domain.Trip, error) {
			return domain.Trip{}, nil
		},
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_StampsOwnerAndDefaultsStatus(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())
	owner := uuid.New()

	trip := validTrip()
	trip.UserID = uuid.New() // client-supplied owner must be ignored

	got, err := svc.Create(context.Background(), owner, trip)

	require.NoError(t, err)
	assert.Equal(t, owner, got.UserID, "owner comes from the authenticated identity")
	assert.Equal(t, domain.StatusPlanned, got.Status)
}

func TestTripService_Create_MissingDestination(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Destination = "   " // whitespace-only should be treated as empty

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_EndDateBeforeStartDate(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.EndDate = trip.StartDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_SameDayTripIsValid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.EndDate = trip.StartDate

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_NegativeBudget(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Budget = -1

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_ZeroBudgetIsValid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Budget = 0

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_UnknownStatus(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Status = "cancelled"

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- List tests ------------------------------------------------------------

func TestTripService_List_NilBecomesEmptySlice(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return nil, nil },
	})

	got, err := svc.List(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update tests ----------------------------------------------------------

func TestTripService_Update_PassesOwnershipScope(t *testing.T) {
	owner := uuid.New()
	tripID := uuid.New()
	var gotUser, gotTrip uuid.UUID

	svc := service.NewTripService(&mockTripRepo{
		update: func(_ context.Context, userID, id uuid.UUID, _ domain.TripUpdate) (domain.Trip, error) {
			gotUser, gotTrip = userID, id
			return domain.Trip{ID: id}, nil
		},
	})

	dest := "Porto"
	_, err := svc.Update(context.Background(), owner, tripID, domain.TripUpdate{Destination: &dest})

	require.NoError(t, err)
	assert.Equal(t, owner, gotUser)
	assert.Equal(t, tripID, gotTrip)
}

func TestTripService_Update_EmptyDestination(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	dest := ""
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), domain.TripUpdate{Destination: &dest})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Update_NewEndDateBeforeStoredStartDate(t *testing.T) {
	stored := validTrip()
	svc := service.NewTripService(&mockTripRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) { return stored, nil },
		update: func(_ context.Context, _, _ uuid.UUID, _ domain.TripUpdate) (domain.Trip, error) {
			t.Fatal("update must not run when the date check fails")
			return domain.Trip{}, nil
		},
	})

	bad := stored.StartDate.AddDate(0, 0, -3)
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), domain.TripUpdate{EndDate: &bad})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Update_NotFoundPassesThrough(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		update: func(_ context.Context, _, _ uuid.UUID, _ domain.TripUpdate) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	})

	dest := "Porto"
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), domain.TripUpdate{Destination: &dest})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete_NotFoundPassesThrough(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return domain.ErrNotFound },
	})

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
