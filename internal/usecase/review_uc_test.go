package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkkart/storefront/internal/domain"
)

func TestReviewAdd(t *testing.T) {
	p := &domain.Product{ID: uuid.New(), Name: "Sparkler"}
	customerID := uuid.New()

	t.Run("recomputes product aggregate", func(t *testing.T) {
		products := newFakeProductRepo(p)
		uc := &ReviewUC{Reviews: newFakeReviewRepo(), Products: products}

		require.NoError(t, uc.Add(context.Background(), &domain.Review{
			ID: uuid.New(), ProductID: p.ID, CustomerID: customerID, Rating: 5,
		}))
		require.NoError(t, uc.Add(context.Background(), &domain.Review{
			ID: uuid.New(), ProductID: p.ID, CustomerID: uuid.New(), Rating: 2,
		}))

		stored, _ := products.FindByID(context.Background(), p.ID)
		assert.InDelta(t, 3.5, stored.AverageRating, 0.001)
		assert.Equal(t, 2, stored.TotalReviews)
	})

	t.Run("one review per customer per product", func(t *testing.T) {
		uc := &ReviewUC{Reviews: newFakeReviewRepo(), Products: newFakeProductRepo(p)}

		require.NoError(t, uc.Add(context.Background(), &domain.Review{
			ID: uuid.New(), ProductID: p.ID, CustomerID: customerID, Rating: 4,
		}))
		err := uc.Add(context.Background(), &domain.Review{
			ID: uuid.New(), ProductID: p.ID, CustomerID: customerID, Rating: 1,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateReview)
	})

	t.Run("unknown product", func(t *testing.T) {
		uc := &ReviewUC{Reviews: newFakeReviewRepo(), Products: newFakeProductRepo()}
		err := uc.Add(context.Background(), &domain.Review{
			ID: uuid.New(), ProductID: uuid.New(), CustomerID: customerID, Rating: 3,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReviewUpdate(t *testing.T) {
	p := &domain.Product{ID: uuid.New(), Name: "Rocket"}
	customerID := uuid.New()
	products := newFakeProductRepo(p)
	reviews := newFakeReviewRepo()
	uc := &ReviewUC{Reviews: reviews, Products: products}

	rv := &domain.Review{ID: uuid.New(), ProductID: p.ID, CustomerID: customerID, Rating: 2}
	require.NoError(t, uc.Add(context.Background(), rv))

	got, err := uc.Update(context.Background(), rv.ID, customerID, 5, "much better")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "much better", got.Comment)

	stored, _ := products.FindByID(context.Background(), p.ID)
	assert.InDelta(t, 5.0, stored.AverageRating, 0.001)

	// another customer's id looks like a missing review
	_, err = uc.Update(context.Background(), rv.ID, uuid.New(), 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewDelete(t *testing.T) {
	p := &domain.Product{ID: uuid.New(), Name: "Fountain"}
	customerID := uuid.New()
	products := newFakeProductRepo(p)
	uc := &ReviewUC{Reviews: newFakeReviewRepo(), Products: products}

	rv := &domain.Review{ID: uuid.New(), ProductID: p.ID, CustomerID: customerID, Rating: 4}
	require.NoError(t, uc.Add(context.Background(), rv))

	require.NoError(t, uc.Delete(context.Background(), rv.ID, customerID))

	stored, _ := products.FindByID(context.Background(), p.ID)
	assert.Zero(t, stored.AverageRating)
	assert.Zero(t, stored.TotalReviews)

	err := uc.Delete(context.Background(), rv.ID, customerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
