package service

import (
	"context"
	"log"
	"sync"
	"time"
)

// SchedulerConfig holds configuration for the periodic sync scheduler.
type SchedulerConfig struct {
	// SyncInterval is how often a background sync with Square runs.
	// Default: 1 hour.
	SyncInterval time.Duration

	// StartupDelay is how long to wait after process start before the
	// first background sync. Default: 1 minute.
	StartupDelay time.Duration
}

// SyncScheduler runs periodic catalog synchronization in the
// background, on top of the manual trigger the API exposes.
type SyncScheduler struct {
	syncService *SyncService
	config      SchedulerConfig
	ticker      *time.Ticker
	stopCh      chan struct{}
	stopOnce    sync.Once
	isRunning   bool
	mu          sync.Mutex
}

// NewSyncScheduler creates a new sync scheduler.
func NewSyncScheduler(syncService *SyncService, config SchedulerConfig) *SyncScheduler {
	if config.SyncInterval == 0 {
		config.SyncInterval = time.Hour
	}
	if config.StartupDelay == 0 {
		config.StartupDelay = time.Minute
	}
	return &SyncScheduler{
		syncService: syncService,
		config:      config,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the scheduler.
func (s *SyncScheduler) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.config.SyncInterval)
	s.mu.Unlock()

	log.Printf("[SyncScheduler] Started - Interval: %v", s.config.SyncInterval)

	go func() {
		select {
		case <-time.After(s.config.StartupDelay):
			s.runSync()
		case <-s.stopCh:
		}
	}()

	go s.run()
}

func (s *SyncScheduler) run() {
	for {
		select {
		case <-s.ticker.C:
			s.runSync()
		case <-s.stopCh:
			log.Printf("[SyncScheduler] Stopped")
			return
		}
	}
}

func (s *SyncScheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, _, err := s.syncService.Run(ctx)
	if err != nil {
		log.Printf("[SyncScheduler] Sync attempt failed: %v", err)
		return
	}
	if !result.Success {
		log.Printf("[SyncScheduler] Sync reported failure: %s", result.Message)
		return
	}
	log.Printf("[SyncScheduler] Sync completed: %s", result.Message)
}

// Stop stops the scheduler.
func (s *SyncScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.isRunning = false
	})
}
