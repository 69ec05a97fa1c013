package interestrates

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawn-ledger/internal/pkg/store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mockInterestRatesStore struct {
	mock.Mock
}

func (m *mockInterestRatesStore) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document)
	res, _ := args.Get(0).(*mongo.InsertOneResult)
	return res, args.Error(1)
}

func (m *mockInterestRatesStore) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.InterestRate, error) {
	args := m.Called(ctx, filter, opt)
	return args.Get(0).(models.InterestRate), args.Error(1)
}

func (m *mockInterestRatesStore) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InterestRate, error) {
	args := m.Called(ctx, filter, opts)
	res, _ := args.Get(0).([]models.InterestRate)
	return res, args.Error(1)
}

func (m *mockInterestRatesStore) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, upsert bool) (models.InterestRate, error) {
	args := m.Called(ctx, filter, update, upsert)
	return args.Get(0).(models.InterestRate), args.Error(1)
}

func (m *mockInterestRatesStore) Delete(ctx context.Context, filter interface{}) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewInterestRatesRepositoryWithInterface(t *testing.T) {
	store := &mockInterestRatesStore{}
	repo := NewInterestRatesRepositoryWithInterface(store)
	assert.Equal(t, store, repo.repo)
}

func TestListInterestRates(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted newest first", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		rates := []models.InterestRate{{MetalType: "gold"}}

		store.On("Find", ctx, bson.M{}, mock.MatchedBy(func(opts []*options.FindOptions) bool {
			return len(opts) == 1 && assert.ObjectsAreEqual(bson.D{{Key: "date", Value: -1}}, opts[0].Sort)
		})).Return(rates, nil)

		got, err := repo.ListInterestRates(ctx)
		require.NoError(t, err)
		assert.Equal(t, rates, got)
		store.AssertExpectations(t)
	})

	t.Run("error", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("Find", ctx, bson.M{}, mock.Anything).Return(nil, errors.New("down"))

		_, err := repo.ListInterestRates(ctx)
		assert.Error(t, err)
	})
}

func TestListInterestRatesByMetal(t *testing.T) {
	ctx := context.Background()
	store := &mockInterestRatesStore{}
	repo := NewInterestRatesRepositoryWithInterface(store)
	rates := []models.InterestRate{{MetalType: "silver", MinAmount: 1, MaxAmount: 2}}

	store.On("Find", ctx, bson.M{"metalType": "silver"}, mock.Anything).Return(rates, nil)

	got, err := repo.ListInterestRatesByMetal(ctx, "silver")
	require.NoError(t, err)
	assert.Equal(t, rates, got)
}

func TestFindInterestRateByID(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("found", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("FindOne", ctx, bson.M{"_id": id}, (*options.FindOneOptions)(nil)).
			Return(models.InterestRate{ID: id, MetalType: "gold"}, nil)

		got, err := repo.FindInterestRateByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, id, got.ID)
	})

	t.Run("not found is nil", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("FindOne", ctx, bson.M{"_id": id}, mock.Anything).
			Return(models.InterestRate{}, mongo.ErrNoDocuments)

		got, err := repo.FindInterestRateByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("store error", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("FindOne", ctx, bson.M{"_id": id}, mock.Anything).
			Return(models.InterestRate{}, errors.New("down"))

		_, err := repo.FindInterestRateByID(ctx, id)
		assert.Error(t, err)
	})
}

func TestCreateInterestRate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("Create", ctx, mock.AnythingOfType("models.InterestRate")).Return(&mongo.InsertOneResult{}, nil)

		got, err := repo.CreateInterestRate(ctx, models.InterestRate{MetalType: "gold", MinAmount: 100, MaxAmount: 500})
		require.NoError(t, err)
		assert.False(t, got.ID.IsZero())
		assert.Equal(t, 500.0, got.MaxAmount)
	})

	t.Run("error", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("Create", ctx, mock.Anything).Return(nil, errors.New("down"))

		_, err := repo.CreateInterestRate(ctx, models.InterestRate{})
		assert.Error(t, err)
	})
}

func TestUpdateInterestRate(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	now := time.Now().UTC()
	rate := models.InterestRate{ID: id, MetalType: "gold", MinAmount: 1, MaxAmount: 9, Interest: 2, Date: now}

	t.Run("updated", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("FindOneAndUpdate", ctx, bson.M{"_id": id}, mock.Anything, false).Return(rate, nil)

		got, err := repo.UpdateInterestRate(ctx, rate)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rate, *got)
	})

	t.Run("vanished", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("FindOneAndUpdate", ctx, bson.M{"_id": id}, mock.Anything, false).
			Return(models.InterestRate{}, mongo.ErrNoDocuments)

		got, err := repo.UpdateInterestRate(ctx, rate)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestDeleteInterestRate(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("deleted", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("Delete", ctx, bson.M{"_id": id}).Return(int64(1), nil)

		ok, err := repo.DeleteInterestRate(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("absent", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("Delete", ctx, bson.M{"_id": id}).Return(int64(0), nil)

		ok, err := repo.DeleteInterestRate(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("error", func(t *testing.T) {
		store := &mockInterestRatesStore{}
		repo := NewInterestRatesRepositoryWithInterface(store)
		store.On("Delete", ctx, bson.M{"_id": id}).Return(int64(0), errors.New("down"))

		_, err := repo.DeleteInterestRate(ctx, id)
		assert.Error(t, err)
	})
}
