package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopledger/pos-backend/internal/inventory/domain"
	"github.com/shopledger/pos-backend/internal/inventory/repository"
	"github.com/shopledger/pos-backend/internal/platform/logger"
)

var (
	ErrInvalidDelta  = errors.New("invalid delta")
	ErrInvalidReason = errors.New("invalid adjustment reason")
	ErrAdjustFailed  = errors.New("stock adjustment failed")
)

const (
	// History entry count above which same-day entries collapse to the last
	// entry of each day.
	downsampleThreshold = 200
	// Requested spans at least this long always downsample.
	downsampleSpan = 365 * 24 * time.Hour
)

type InventoryService interface {
	AdjustStock(ctx context.Context, productID string, req domain.AdjustStockRequest) (*domain.AdjustStockResult, error)
	History(ctx context.Context, productID string, from, to *time.Time, limit int) ([]domain.HistoryPoint, error)
}

type inventoryServiceImpl struct {
	repo repository.InventoryRepository
	now  func() time.Time
}

func NewInventoryService(repo repository.InventoryRepository) InventoryService {
	return &inventoryServiceImpl{repo: repo, now: time.Now}
}

func (s *inventoryServiceImpl) AdjustStock(ctx context.Context, productID string, req domain.AdjustStockRequest) (*domain.AdjustStockResult, error) {
	if req.Delta == 0 {
		// No-op writes are not logged.
		return nil, ErrInvalidDelta
	}
	if !req.Reason.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReason, req.Reason)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		logger.Error("Svc.AdjustStock: begin tx failed", err)
		return nil, fmt.Errorf("%w: %v", ErrAdjustFailed, err)
	}
	defer tx.Rollback()

	entry, err := s.repo.ApplyStockDelta(ctx, tx, productID, req.Delta, req.Reason, req.UserID)
	if err != nil {
		// ErrProductNotFound and StockShortfallError pass through untouched so
		// the handler can map them.
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Svc.AdjustStock: commit failed", err, map[string]interface{}{"product_id": productID})
		return nil, fmt.Errorf("%w: %v", ErrAdjustFailed, err)
	}

	return &domain.AdjustStockResult{
		ProductID: productID,
		Stock:     entry.ResultingStock,
		Entry:     *entry,
	}, nil
}

func (s *inventoryServiceImpl) History(ctx context.Context, productID string, from, to *time.Time, limit int) ([]domain.HistoryPoint, error) {
	entries, err := s.repo.ListLogEntries(ctx, productID, from, to)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		if from != nil || to != nil {
			has, err := s.repo.HasLogEntries(ctx, productID)
			if err != nil {
				return nil, err
			}
			if has {
				// Entries exist outside the requested range; an empty window
				// is the answer, not a fabricated point.
				return []domain.HistoryPoint{}, nil
			}
		}
		// Products that predate ledger tracking still chart their current stock
		// as a single point at "now".
		_, stock, err := s.repo.GetProductStock(ctx, productID)
		if err != nil {
			return nil, err
		}
		return []domain.HistoryPoint{{Date: s.now(), Stock: stock}}, nil
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	if shouldDownsample(entries, from, to) {
		entries = lastEntryPerDay(entries)
	}

	points := make([]domain.HistoryPoint, len(entries))
	for i, e := range entries {
		points[i] = domain.HistoryPoint{
			Date:   e.CreatedAt,
			Stock:  e.ResultingStock,
			Delta:  e.Delta,
			Reason: e.Reason,
		}
	}
	return points, nil
}

func shouldDownsample(entries []domain.LogEntry, from, to *time.Time) bool {
	if len(entries) > downsampleThreshold {
		return true
	}
	if from != nil && to != nil && to.Sub(*from) >= downsampleSpan {
		return true
	}
	return false
}

// lastEntryPerDay keeps the final entry of each UTC day. Stock is a
// point-in-time quantity, so the day's closing value is the only correct
// collapse; averaging would fabricate levels that never existed.
func lastEntryPerDay(entries []domain.LogEntry) []domain.LogEntry {
	// Entries arrive sorted ascending, so same-day runs are contiguous.
	out := make([]domain.LogEntry, 0, len(entries))
	for i, e := range entries {
		if i+1 < len(entries) && sameUTCDay(e.CreatedAt, entries[i+1].CreatedAt) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
