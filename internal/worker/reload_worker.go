package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/jearn-categorizer/config"
	"github.com/dustin/jearn-categorizer/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ReloadFunc checks a resource and reloads it when it has changed
type ReloadFunc func() error

// ReloadWorker runs a reload check on a cron schedule
type ReloadWorker struct {
	name           string
	cron           *cron.Cron
	reloadFunc     ReloadFunc
	reloadInterval time.Duration
	logger         *logger.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	lastErr error
	lastRun time.Time
}

// NewReloadWorker creates a cron-scheduled worker with validation and defaults
func NewReloadWorker(cfg *config.WorkerConfig, name string, reloadFunc ReloadFunc, logger *logger.Logger) (*ReloadWorker, error) {
	if reloadFunc == nil {
		return nil, fmt.Errorf("reload function is required for worker '%s'", name)
	}

	var reloadInterval time.Duration = 5 * time.Minute
	if cfg != nil && cfg.ReloadInterval != "" {
		duration, err := time.ParseDuration(cfg.ReloadInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid reload interval '%s': %v", cfg.ReloadInterval, err)
		}
		if duration <= 0 {
			return nil, fmt.Errorf("invalid reload interval '%s': must be positive", cfg.ReloadInterval)
		}
		reloadInterval = duration
	}

	return &ReloadWorker{
		name:           name,
		cron:           cron.New(),
		reloadFunc:     reloadFunc,
		reloadInterval: reloadInterval,
		logger:         logger.WithComponent("reload-worker"),
	}, nil
}

// Start schedules and begins the reload worker
func (w *ReloadWorker) Start() error {
	spec := w.durationToCronExpression(w.reloadInterval)
	w.logger.Info(fmt.Sprintf("Starting reload worker: %s (every %v)", w.name, w.reloadInterval))

	entryID, err := w.cron.AddFunc(spec, w.runOnce)
	if err != nil {
		w.logger.Error("Failed to schedule reload worker " + w.name + ": " + err.Error())
		return err
	}

	w.mu.Lock()
	w.entryID = entryID
	w.mu.Unlock()
	w.cron.Start()

	w.logger.Info("Reload worker started successfully: " + w.name)
	return nil
}

// Stop gracefully shuts down the reload worker
func (w *ReloadWorker) Stop() error {
	w.logger.Info("Stopping reload worker: " + w.name)

	w.mu.Lock()
	if w.entryID > 0 {
		w.cron.Remove(w.entryID)
		w.entryID = 0
	}
	w.mu.Unlock()

	ctx := w.cron.Stop()
	<-ctx.Done() // wait for a running check to finish

	w.logger.Info("Reload worker stopped: " + w.name)
	return nil
}

// IsRunning checks if the worker has active cron entries
func (w *ReloadWorker) IsRunning() bool {
	return len(w.cron.Entries()) > 0
}

// LastRun returns the time and result of the most recent check
func (w *ReloadWorker) LastRun() (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastRun, w.lastErr
}

func (w *ReloadWorker) runOnce() {
	w.logger.Debug("Executing reload check for worker: " + w.name)

	err := w.reloadFunc()
	if err != nil {
		w.logger.Error("Reload check failed for worker " + w.name + ": " + err.Error())
	} else {
		w.logger.Debug("Reload check completed for worker: " + w.name)
	}

	w.mu.Lock()
	w.lastRun = time.Now()
	w.lastErr = err
	w.mu.Unlock()
}

// durationToCronExpression converts duration to cron format with fallback
func (w *ReloadWorker) durationToCronExpression(duration time.Duration) string {
	minutes := int(duration.Minutes())
	hours := int(duration.Hours())

	if hours > 0 && minutes%60 == 0 {
		return fmt.Sprintf("0 */%d * * *", hours)
	} else if minutes > 0 && minutes < 60 {
		return fmt.Sprintf("*/%d * * * *", minutes)
	} else if duration >= time.Second && duration < time.Minute {
		return fmt.Sprintf("@every %s", duration)
	}

	w.logger.Warn(fmt.Sprintf("Unsupported reload interval %v, defaulting to 5 minutes", duration))
	return "*/5 * * * *"
}
