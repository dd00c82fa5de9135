package plan

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, p *Plan) error
	findAllFn  func(ctx context.Context, activeOnly bool) ([]Plan, error)
	findByIDFn func(ctx context.Context, id string) (*Plan, error)
	updateFn   func(ctx context.Context, p *Plan) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, p *Plan) error {
	return f.createFn(ctx, p)
}
func (f *fakeRepo) FindAll(ctx context.Context, activeOnly bool) ([]Plan, error) {
	return f.findAllFn(ctx, activeOnly)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Plan, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, p *Plan) error { return f.updateFn(ctx, p) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestService_CreateAndUpdate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Plan
	repo := &fakeRepo{
		createFn: func(ctx context.Context, p *Plan) error { saved = *p; return nil },
		updateFn: func(ctx context.Context, p *Plan) error { saved = *p; return nil },
		findByIDFn: func(ctx context.Context, id string) (*Plan, error) {
			return &saved, nil
		},
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), CreatePlanRequest{
		Name:         "Monthly",
		Price:        49.99,
		DurationDays: 30,
	})
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, 30, created.DurationDays)

	inactive := false
	mock.ExpectBegin()
	mock.ExpectCommit()
	updated, err := svc.Update(context.Background(), created.ID, UpdatePlanRequest{
		Name:         "Monthly",
		Price:        59.99,
		DurationDays: 30,
		Active:       &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.InDelta(t, 59.99, updated.Price, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetAll(t *testing.T) {
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, activeOnly bool) ([]Plan, error) {
			assert.True(t, activeOnly)
			return []Plan{
				{ID: uuid.New(), Name: "Monthly", Price: 49.99, DurationDays: 30, Active: true},
				{ID: uuid.New(), Name: "Annual", Price: 499.99, DurationDays: 365, Active: true},
			}, nil
		},
	}

	svc := NewService(nil, repo, nil)

	resp, err := svc.GetAll(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "Monthly", resp[0].Name)
}
