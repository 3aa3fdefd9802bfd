package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopledger/pos-backend/internal/inventory/domain"
	"github.com/shopledger/pos-backend/internal/inventory/repository"
	"github.com/shopledger/pos-backend/internal/inventory/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestInventoryService_AdjustStock(t *testing.T) {
	ctx := context.TODO()
	userID := "33333333-3333-3333-3333-333333333333"

	t.Run("Negative delta decrements and records a ledger entry", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		mockTx := new(mocks.MockDBTX)
		svc := NewInventoryService(mockRepo)

		entry := &domain.LogEntry{
			ID:             "log1",
			ProductID:      "prod1",
			Delta:          -3,
			ResultingStock: 7,
			Reason:         domain.ReasonManualAdjustment,
			UserID:         &userID,
		}
		mockRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockRepo.On("ApplyStockDelta", ctx, mockTx, "prod1", -3, domain.ReasonManualAdjustment, &userID).
			Return(entry, nil).Once()
		mockTx.On("Commit").Return(nil).Once()
		mockTx.On("Rollback").Return(sql.ErrTxDone)

		result, err := svc.AdjustStock(ctx, "prod1", domain.AdjustStockRequest{
			Delta: -3, Reason: domain.ReasonManualAdjustment, UserID: &userID,
		})

		assert.NoError(t, err)
		assert.Equal(t, 7, result.Stock)
		assert.Equal(t, "prod1", result.ProductID)
		assert.Equal(t, -3, result.Entry.Delta)
		mockRepo.AssertExpectations(t)
		mockTx.AssertExpectations(t)
	})

	t.Run("Zero delta is rejected without touching the repository", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)

		result, err := svc.AdjustStock(ctx, "prod1", domain.AdjustStockRequest{
			Delta: 0, Reason: domain.ReasonManualAdjustment,
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidDelta)
		mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("Unknown reason is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)

		result, err := svc.AdjustStock(ctx, "prod1", domain.AdjustStockRequest{
			Delta: 5, Reason: "shrinkage",
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidReason)
		mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("Shortfall passes through with its detail intact", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		mockTx := new(mocks.MockDBTX)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockRepo.On("ApplyStockDelta", ctx, mockTx, "prod1", -10, domain.ReasonManualAdjustment, (*string)(nil)).
			Return(nil, &repository.StockShortfallError{
				ProductID: "prod1", ProductName: "Soap", Available: 4, Requested: 10,
			}).Once()
		mockTx.On("Rollback").Return(nil).Once()

		result, err := svc.AdjustStock(ctx, "prod1", domain.AdjustStockRequest{
			Delta: -10, Reason: domain.ReasonManualAdjustment,
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, repository.ErrInsufficientStock)
		var shortfall *repository.StockShortfallError
		if assert.ErrorAs(t, err, &shortfall) {
			assert.Equal(t, 4, shortfall.Available)
			assert.Equal(t, 10, shortfall.Requested)
		}
		mockTx.AssertNotCalled(t, "Commit")
		mockTx.AssertExpectations(t)
	})

	t.Run("Unknown product passes through", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		mockTx := new(mocks.MockDBTX)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockRepo.On("ApplyStockDelta", ctx, mockTx, "ghost", 5, domain.ReasonSupplierReceipt, (*string)(nil)).
			Return(nil, repository.ErrProductNotFound).Once()
		mockTx.On("Rollback").Return(nil).Once()

		result, err := svc.AdjustStock(ctx, "ghost", domain.AdjustStockRequest{
			Delta: 5, Reason: domain.ReasonSupplierReceipt,
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
		mockTx.AssertNotCalled(t, "Commit")
	})
}

func entriesOverDays(start time.Time, days, perDay int) []domain.LogEntry {
	entries := make([]domain.LogEntry, 0, days*perDay)
	stock := 0
	for d := 0; d < days; d++ {
		for i := 0; i < perDay; i++ {
			stock++
			entries = append(entries, domain.LogEntry{
				ProductID:      "prod1",
				Delta:          1,
				ResultingStock: stock,
				Reason:         domain.ReasonSupplierReceipt,
				CreatedAt:      start.AddDate(0, 0, d).Add(time.Duration(i) * time.Hour),
			})
		}
	}
	return entries
}

func TestInventoryService_History(t *testing.T) {
	ctx := context.TODO()
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Small histories come back one point per entry", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)

		entries := entriesOverDays(start, 3, 2)
		mockRepo.On("ListLogEntries", ctx, "prod1", (*time.Time)(nil), (*time.Time)(nil)).
			Return(entries, nil).Once()

		points, err := svc.History(ctx, "prod1", nil, nil, 0)

		assert.NoError(t, err)
		assert.Len(t, points, 6)
		assert.Equal(t, entries[0].CreatedAt, points[0].Date)
		assert.Equal(t, 1, points[0].Stock)
		assert.Equal(t, 6, points[5].Stock)
	})

	t.Run("Large histories collapse to the last entry of each day", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)

		// 100 days x 5 entries = 500 entries, over the downsample threshold.
		entries := entriesOverDays(start, 100, 5)
		mockRepo.On("ListLogEntries", ctx, "prod1", (*time.Time)(nil), (*time.Time)(nil)).
			Return(entries, nil).Once()

		points, err := svc.History(ctx, "prod1", nil, nil, 0)

		assert.NoError(t, err)
		assert.Len(t, points, 100)
		// Each surviving point is the day's closing stock, not an average.
		assert.Equal(t, 5, points[0].Stock)
		assert.Equal(t, 500, points[99].Stock)
		for i := 1; i < len(points); i++ {
			assert.True(t, points[i].Date.After(points[i-1].Date))
		}
	})

	t.Run("Year-long ranges downsample even with few entries", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)

		from := start
		to := start.AddDate(1, 0, 0)
		entries := []domain.LogEntry{
			{ResultingStock: 3, CreatedAt: start.Add(1 * time.Hour)},
			{ResultingStock: 5, CreatedAt: start.Add(2 * time.Hour)},
			{ResultingStock: 8, CreatedAt: start.AddDate(0, 6, 0)},
		}
		mockRepo.On("ListLogEntries", ctx, "prod1", &from, &to).Return(entries, nil).Once()

		points, err := svc.History(ctx, "prod1", &from, &to, 0)

		assert.NoError(t, err)
		assert.Len(t, points, 2)
		assert.Equal(t, 5, points[0].Stock)
		assert.Equal(t, 8, points[1].Stock)
	})

	t.Run("Limit keeps the most recent entries", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)

		entries := entriesOverDays(start, 5, 1)
		mockRepo.On("ListLogEntries", ctx, "prod1", (*time.Time)(nil), (*time.Time)(nil)).
			Return(entries, nil).Once()

		points, err := svc.History(ctx, "prod1", nil, nil, 2)

		assert.NoError(t, err)
		assert.Len(t, points, 2)
		assert.Equal(t, 4, points[0].Stock)
		assert.Equal(t, 5, points[1].Stock)
	})

	t.Run("No ledger entries falls back to a single current-stock point", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)
		fixedNow := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		svc.(*inventoryServiceImpl).now = func() time.Time { return fixedNow }

		mockRepo.On("ListLogEntries", ctx, "prod1", (*time.Time)(nil), (*time.Time)(nil)).
			Return([]domain.LogEntry{}, nil).Once()
		mockRepo.On("GetProductStock", ctx, "prod1").Return("Soap", 42, nil).Once()

		points, err := svc.History(ctx, "prod1", nil, nil, 0)

		assert.NoError(t, err)
		assert.Len(t, points, 1)
		assert.Equal(t, 42, points[0].Stock)
		assert.Equal(t, fixedNow, points[0].Date)
		assert.Equal(t, 0, points[0].Delta)
	})

	t.Run("Ranged query on a ledgered product returns an empty window", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)

		// Product has entries, just none inside the requested range.
		from := start.AddDate(0, 1, 0)
		to := start.AddDate(0, 2, 0)
		mockRepo.On("ListLogEntries", ctx, "prod1", &from, &to).
			Return([]domain.LogEntry{}, nil).Once()
		mockRepo.On("HasLogEntries", ctx, "prod1").Return(true, nil).Once()

		points, err := svc.History(ctx, "prod1", &from, &to, 0)

		assert.NoError(t, err)
		assert.Empty(t, points)
		mockRepo.AssertNotCalled(t, "GetProductStock", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Ranged query on an unledgered product still falls back", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)
		fixedNow := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		svc.(*inventoryServiceImpl).now = func() time.Time { return fixedNow }

		from := start
		mockRepo.On("ListLogEntries", ctx, "prod1", &from, (*time.Time)(nil)).
			Return([]domain.LogEntry{}, nil).Once()
		mockRepo.On("HasLogEntries", ctx, "prod1").Return(false, nil).Once()
		mockRepo.On("GetProductStock", ctx, "prod1").Return("Soap", 15, nil).Once()

		points, err := svc.History(ctx, "prod1", &from, nil, 0)

		assert.NoError(t, err)
		assert.Len(t, points, 1)
		assert.Equal(t, 15, points[0].Stock)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown product propagates not found", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("ListLogEntries", ctx, "ghost", (*time.Time)(nil), (*time.Time)(nil)).
			Return([]domain.LogEntry{}, nil).Once()
		mockRepo.On("GetProductStock", ctx, "ghost").Return("", 0, repository.ErrProductNotFound).Once()

		points, err := svc.History(ctx, "ghost", nil, nil, 0)

		assert.Nil(t, points)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	t.Run("History reads do not write", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		svc := NewInventoryService(mockRepo)

		entries := entriesOverDays(start, 2, 2)
		mockRepo.On("ListLogEntries", ctx, "prod1", (*time.Time)(nil), (*time.Time)(nil)).
			Return(entries, nil).Twice()

		first, err := svc.History(ctx, "prod1", nil, nil, 0)
		assert.NoError(t, err)
		second, err := svc.History(ctx, "prod1", nil, nil, 0)
		assert.NoError(t, err)

		assert.Equal(t, first, second)
		mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
		mockRepo.AssertNotCalled(t, "ApplyStockDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestConsistencyAuditor_RunOnce(t *testing.T) {
	ctx := context.TODO()

	t.Run("Reports drift without repairing", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		auditor, err := NewConsistencyAuditor(mockRepo, "0 0 3 * * *")
		assert.NoError(t, err)

		drift := []domain.StockDrift{
			{ProductID: "prod1", ProductName: "Soap", Stock: 10, ResultingStock: 8},
		}
		mockRepo.On("ListStockDrift", ctx).Return(drift, nil).Once()

		got, err := auditor.RunOnce(ctx)

		assert.NoError(t, err)
		assert.Equal(t, drift, got)
		mockRepo.AssertNotCalled(t, "ApplyStockDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Clean ledger yields an empty report", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		auditor, err := NewConsistencyAuditor(mockRepo, "0 0 3 * * *")
		assert.NoError(t, err)

		mockRepo.On("ListStockDrift", ctx).Return([]domain.StockDrift{}, nil).Once()

		got, err := auditor.RunOnce(ctx)

		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Rejects a malformed schedule", func(t *testing.T) {
		mockRepo := new(mocks.MockInventoryRepository)
		auditor, err := NewConsistencyAuditor(mockRepo, "not-a-cron-spec")

		assert.Error(t, err)
		assert.Nil(t, auditor)
	})
}

func TestReasonValid(t *testing.T) {
	valid := []domain.Reason{
		domain.ReasonSale, domain.ReasonManualAdjustment, domain.ReasonSupplierReceipt,
		domain.ReasonProduction, domain.ReasonStockCorrection, domain.ReasonReturn,
		domain.ReasonDamage, domain.ReasonOther,
	}
	for _, r := range valid {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, domain.Reason("shrinkage").Valid())
	assert.False(t, domain.Reason("").Valid())
}
