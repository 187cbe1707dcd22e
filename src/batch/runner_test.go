package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ledgerlens-server/src/models"
)

func uncategorized(n int) []models.Transaction {
	txs := make([]models.Transaction, n)
	for i := range txs {
		txs[i] = models.Transaction{ID: fmt.Sprintf("tx-%03d", i), Description: "Carrefour", Amount: 10}
	}
	return txs
}

func TestRecategorize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStore(ctrl)
	runner := NewRunner(mockStore, Options{BatchSize: 2, RecategorizeLimit: 500}, zerolog.Nop())
	commits := 0
	runner.OnCommit = func() { commits++ }

	ctx := context.Background()
	txs := append(uncategorized(3), models.Transaction{
		ID: "manual", Description: "Carrefour", Category: "shopping", CategorySource: models.CategorySourceManual,
	})

	mockStore.EXPECT().ListRecentTransactions(ctx, 500).Return(txs, nil)
	gomock.InOrder(
		mockStore.EXPECT().UpdateCategories(ctx, gomock.Len(2)).Return(nil),
		mockStore.EXPECT().UpdateCategories(ctx, gomock.Len(1)).
			DoAndReturn(func(_ context.Context, updates []models.CategoryUpdate) error {
				assert.Equal(t, "tx-002", updates[0].ID)
				assert.Equal(t, "groceries", updates[0].Category)
				assert.Equal(t, models.CategorySourceAutoRule, updates[0].CategorySource)
				return nil
			}),
	)

	result, err := runner.Recategorize(ctx)

	require.NoError(t, err)
	assert.Equal(t, models.BatchResult{Processed: 4, Updated: 3}, result)
	assert.Equal(t, 1, commits)
}

func TestRecategorize_NothingToDo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStore(ctrl)
	runner := NewRunner(mockStore, Options{}, zerolog.Nop())
	runner.OnCommit = func() { t.Fatal("nothing was committed") }

	mockStore.EXPECT().ListRecentTransactions(gomock.Any(), 500).Return([]models.Transaction{}, nil)

	result, err := runner.Recategorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.BatchResult{}, result)
}

func TestRecategorize_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStore(ctrl)
	runner := NewRunner(mockStore, Options{BatchSize: 2}, zerolog.Nop())
	commits := 0
	runner.OnCommit = func() { commits++ }

	writeErr := errors.New("connection reset")
	mockStore.EXPECT().ListRecentTransactions(gomock.Any(), gomock.Any()).Return(uncategorized(5), nil)
	gomock.InOrder(
		mockStore.EXPECT().UpdateCategories(gomock.Any(), gomock.Len(2)).Return(nil),
		mockStore.EXPECT().UpdateCategories(gomock.Any(), gomock.Len(2)).Return(writeErr),
	)

	result, err := runner.Recategorize(context.Background())

	var applyErr *ApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.ErrorIs(t, err, writeErr)
	assert.Equal(t, PassRecategorize, applyErr.Pass)
	assert.Equal(t, 1, applyErr.Batch)
	assert.Equal(t, 2, applyErr.Committed)
	assert.Equal(t, models.BatchResult{Processed: 5, Updated: 2}, result)
	assert.Equal(t, 1, commits)
}

func TestRecategorize_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStore(ctrl)
	runner := NewRunner(mockStore, Options{}, zerolog.Nop())

	mockStore.EXPECT().ListRecentTransactions(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	_, err := runner.Recategorize(context.Background())

	require.Error(t, err)
	var applyErr *ApplyError
	assert.False(t, errors.As(err, &applyErr))
	assert.Contains(t, err.Error(), "failed to fetch transactions")
}

func TestDetectUnusual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	mockStore := NewMockStore(ctrl)
	runner := NewRunner(mockStore, Options{BatchSize: 10}, zerolog.Nop())
	runner.Now = func() time.Time { return now }

	window := []models.Transaction{
		{ID: "recent-high", Amount: 7500, Date: now.AddDate(0, 0, -1)},
		{ID: "recent-small", Amount: 12, Description: "coffee", Date: now.AddDate(0, 0, -3)},
		{ID: "context-only", Amount: 9000, Date: now.AddDate(0, 0, -60)},
	}

	mockStore.EXPECT().ListTransactionsSince(gomock.Any(), now.AddDate(0, 0, -90)).Return(window, nil)
	mockStore.EXPECT().UpdateUnusualFlags(gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ context.Context, updates []models.UnusualUpdate) error {
			assert.Equal(t, "recent-high", updates[0].ID)
			assert.True(t, updates[0].IsUnusual)
			require.NotNil(t, updates[0].UnusualReason)
			assert.Equal(t, "High value transaction (> 5,000)", *updates[0].UnusualReason)
			assert.Equal(t, "recent-small", updates[1].ID)
			assert.False(t, updates[1].IsUnusual)
			assert.Nil(t, updates[1].UnusualReason)
			return nil
		})

	result, err := runner.DetectUnusual(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.BatchResult{Processed: 2, Updated: 2}, result)
}

func TestApplyInBatches_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	committed, err := applyInBatches(ctx, PassDetectUnusual, []int{1, 2, 3}, 2, func(context.Context, []int) error {
		calls++
		return nil
	})

	assert.Zero(t, committed)
	assert.Zero(t, calls)
	assert.ErrorIs(t, err, context.Canceled)
}
