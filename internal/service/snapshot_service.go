package service

import (
	"context"
	"time"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
)

// SnapshotService persists daily net-worth snapshots and serves the
// net-worth history read path.
//
// The snapshot table is a materialization, never the source of truth: any
// date can be recomputed from the ledger and market data, and the read path
// falls back to recomputation for dates with no stored row.
type SnapshotService struct {
	snapshotRepo   *repository.SnapshotRepository
	historyService *HistoryService
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(snapshotRepo *repository.SnapshotRepository, historyService *HistoryService) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:   snapshotRepo,
		historyService: historyService,
	}
}

// CaptureToday recomputes today's net worth from the ledger and upserts the
// snapshot row. Running it twice on the same date leaves one row with the
// latest value. Used by the scheduled capture cycle and exposed for manual
// refresh.
func (s *SnapshotService) CaptureToday(ctx context.Context) (model.NetWorthSnapshot, error) {
	return s.Capture(ctx, time.Now().UTC())
}

// Capture recomputes the net worth for one date and upserts its snapshot.
func (s *SnapshotService) Capture(ctx context.Context, date time.Time) (model.NetWorthSnapshot, error) {
	days, err := s.historyService.History(ctx, date, date)
	if err != nil {
		return model.NetWorthSnapshot{}, err
	}
	if len(days) == 0 {
		// Cancelled before the single day was walked.
		return model.NetWorthSnapshot{}, ctx.Err()
	}

	day := days[0]
	snapshot := model.NetWorthSnapshot{
		Date:      dateOnly(date),
		Value:     day.Value,
		Breakdown: day.Breakdown,
	}

	if err := s.snapshotRepo.Upsert(snapshot); err != nil {
		return model.NetWorthSnapshot{}, err
	}
	return snapshot, nil
}

// NetWorthHistory returns one entry per calendar day across the inclusive
// range, preferring stored snapshots and reconstructing only the days that
// have none.
//
// Stored and recomputed days are interleaved in date order, so a range that
// predates snapshot capture still comes back complete. Reconstruction runs
// once over each contiguous run of missing days rather than day by day.
func (s *SnapshotService) NetWorthHistory(ctx context.Context, startDate, endDate time.Time) ([]model.DailyNetWorth, error) {
	stored, err := s.snapshotRepo.GetRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]model.NetWorthSnapshot, len(stored))
	for _, snap := range stored {
		byDate[snap.Date.Format("2006-01-02")] = snap
	}

	result := []model.DailyNetWorth{}
	var gapStart time.Time
	inGap := false

	flushGap := func(gapEnd time.Time) error {
		if !inGap {
			return nil
		}
		inGap = false
		recomputed, err := s.historyService.History(ctx, gapStart, gapEnd)
		if err != nil {
			return err
		}
		result = append(result, recomputed...)
		return nil
	}

	for day := dateOnly(startDate); !day.After(dateOnly(endDate)); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		snap, ok := byDate[key]
		if !ok {
			if !inGap {
				gapStart = day
				inGap = true
			}
			continue
		}

		if err := flushGap(day.AddDate(0, 0, -1)); err != nil {
			return nil, err
		}
		result = append(result, model.DailyNetWorth{
			Date:      key,
			Value:     snap.Value,
			Breakdown: snap.Breakdown,
		})
	}

	if err := flushGap(dateOnly(endDate)); err != nil {
		return nil, err
	}

	return result, nil
}

// Latest returns the most recent stored snapshot within the trailing year.
// Returns apperrors.ErrSnapshotNotFound when none exist.
func (s *SnapshotService) Latest() (model.NetWorthSnapshot, error) {
	end := time.Now().UTC()
	stored, err := s.snapshotRepo.GetRange(end.AddDate(-1, 0, 0), end)
	if err != nil {
		return model.NetWorthSnapshot{}, err
	}
	if len(stored) == 0 {
		return model.NetWorthSnapshot{}, apperrors.ErrSnapshotNotFound
	}
	return stored[len(stored)-1], nil
}
