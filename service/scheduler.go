package service

import (
	"context"
	"fmt"

	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/robfig/cron/v3"
)

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	if len(keysAndValues) == 0 {
		logger.SysLog("[CRON] " + msg)
		return
	}
	logger.SysLog(fmt.Sprintf("[CRON] %s %v", msg, keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.SysError(fmt.Sprintf("[CRON] %s: %v %v", msg, err, keysAndValues))
}

// CronScheduler runs jobs on cron specs. A run still in progress makes the next one skip.
type CronScheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

func NewCronScheduler() *CronScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	l := cronLogger{}
	return &CronScheduler{
		cron:   cron.New(cron.WithLogger(l), cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l))),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *CronScheduler) Schedule(name string, spec string, job func(ctx context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		logger.SysLog(fmt.Sprintf("[CRON] running %s", name))
		job(s.ctx)
		logger.SysLog(fmt.Sprintf("[CRON] finished %s", name))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	return nil
}

func (s *CronScheduler) Start() {
	s.cron.Start()
	logger.SysLog("cron scheduler started")
}

// Stop cancels the job context and waits for running jobs to return.
func (s *CronScheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	logger.SysLog("cron scheduler stopped")
}

// RegisterLicenseRevalidation schedules the daily license check.
func RegisterLicenseRevalidation(scheduler Scheduler, gate *LicenseGate, spec string) error {
	return scheduler.Schedule("license revalidation", spec, func(ctx context.Context) {
		if err := gate.Revalidate(ctx); err != nil {
			logger.SysError("license revalidation failed: " + err.Error())
		}
	})
}
