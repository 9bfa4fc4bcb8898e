// Package scheduler runs the periodic refresh cycle: market prices, the FX
// rate, integration balance syncs and the daily net-worth snapshot.
package scheduler

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ymoney/networth-backend/internal/integration"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/service"
)

// Scheduler drives the refresh cycle on a cron schedule. The interval comes
// from the price_update_interval_minutes setting when present, otherwise the
// configured default, and can be changed at runtime via Reschedule.
type Scheduler struct {
	assetService    *service.AssetService
	snapshotService *service.SnapshotService
	settingService  *service.SettingService
	syncService     *integration.SyncService
	defaultMinutes  int

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	minutes int
}

// New creates a Scheduler. Call Start to begin the cycle.
func New(
	assetService *service.AssetService,
	snapshotService *service.SnapshotService,
	settingService *service.SettingService,
	syncService *integration.SyncService,
	defaultMinutes int,
) *Scheduler {
	return &Scheduler{
		assetService:    assetService,
		snapshotService: snapshotService,
		settingService:  settingService,
		syncService:     syncService,
		defaultMinutes:  defaultMinutes,
	}
}

// Start begins the periodic cycle at the persisted interval and runs one
// cycle immediately so a fresh deployment has data without waiting a full
// period.
func (s *Scheduler) Start() {
	minutes := s.intervalMinutes()

	s.mu.Lock()
	s.cron = cron.New()
	s.minutes = minutes
	s.entryID = s.schedule(minutes)
	s.cron.Start()
	s.mu.Unlock()

	go s.runCycle()
}

// Stop halts the cycle, waiting for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
}

// Reschedule changes the cycle interval at runtime and persists it as the
// new setting value. Invalid intervals are rejected silently in favor of the
// current one.
func (s *Scheduler) Reschedule(minutes int) {
	if minutes <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil || minutes == s.minutes {
		return
	}

	s.cron.Remove(s.entryID)
	s.minutes = minutes
	s.entryID = s.schedule(minutes)

	if err := s.settingService.UpsertSetting(model.SettingUpdateInterval, strconv.Itoa(minutes)); err != nil {
		log.Printf("scheduler: failed to persist interval: %v", err)
	}
}

// schedule registers the cycle at the given cadence. Caller holds s.mu.
func (s *Scheduler) schedule(minutes int) cron.EntryID {
	id, err := s.cron.AddFunc("@every "+strconv.Itoa(minutes)+"m", s.runCycle)
	if err != nil {
		// "@every Nm" with N > 0 always parses; reaching this is a bug.
		log.Printf("scheduler: failed to register cycle: %v", err)
	}
	return id
}

// runCycle executes one full refresh: integration syncs first so prices and
// the snapshot see today's balances, then price refresh, then the snapshot
// capture. Each step logs and the cycle continues; a failed fetch must not
// cost the daily snapshot.
func (s *Scheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	started := time.Now()

	s.syncService.SyncAll(ctx)

	updated, err := s.assetService.RefreshPrices(ctx)
	if err != nil {
		log.Printf("scheduler: price refresh failed: %v", err)
	}

	if _, err := s.snapshotService.CaptureToday(ctx); err != nil {
		log.Printf("scheduler: snapshot capture failed: %v", err)
	}

	log.Printf("scheduler: cycle done in %s, %d prices updated", time.Since(started).Round(time.Millisecond), updated)
}

// intervalMinutes resolves the cycle interval from the persisted setting,
// falling back to the configured default.
func (s *Scheduler) intervalMinutes() int {
	setting, err := s.settingService.GetSetting(model.SettingUpdateInterval)
	if err == nil {
		if minutes, err := strconv.Atoi(setting.Value); err == nil && minutes > 0 {
			return minutes
		}
	}
	if s.defaultMinutes > 0 {
		return s.defaultMinutes
	}
	return 60
}
