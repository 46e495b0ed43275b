package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var validDays = map[string]bool{
	"MON": true, "TUE": true, "WED": true, "THU": true,
	"FRI": true, "SAT": true, "SUN": true,
}

// CronSpec builds the weekly cron expression for the check-in prompt,
// e.g. day "SUN" hour 18 -> "0 18 * * SUN". An unknown day falls back
// to Sunday.
func CronSpec(day string, hour int) string {
	if !validDays[day] {
		day = "SUN"
	}
	if hour < 0 || hour > 23 {
		hour = 18
	}
	return fmt.Sprintf("0 %d * * %s", hour, day)
}

// Weekly fires the check-in prompt broadcast once a week in the
// configured timezone.
type Weekly struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewWeekly schedules broadcast on the weekly spec. An unknown
// timezone falls back to UTC rather than failing startup.
func NewWeekly(day string, hour int, timezone string, broadcast func(context.Context), logger *zap.Logger) (*Weekly, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("Unknown timezone, scheduling in UTC", zap.String("timezone", timezone), zap.Error(err))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	spec := CronSpec(day, hour)
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		broadcast(ctx)
	}); err != nil {
		return nil, fmt.Errorf("schedule weekly broadcast: %w", err)
	}

	logger.Info("Weekly scheduler configured",
		zap.String("spec", spec), zap.String("timezone", loc.String()))
	return &Weekly{cron: c, logger: logger}, nil
}

// Start launches the cron loop in its own goroutine.
func (w *Weekly) Start() {
	w.cron.Start()
	w.logger.Info("Weekly scheduler started")
}

// Stop halts the cron loop; running jobs finish on their own.
func (w *Weekly) Stop() {
	w.cron.Stop()
	w.logger.Info("Scheduler stopped")
}
