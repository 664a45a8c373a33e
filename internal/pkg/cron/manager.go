package cron

import (
	"Bulletin/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine     *cron.Cron
	cleanupJob *job.ArticleCleanupJob
	refreshJob *job.RefStoreRefreshJob
}

func NewCronManager(cleanupJob *job.ArticleCleanupJob, refreshJob *job.RefStoreRefreshJob) *Manager {
	return &Manager{
		engine:     cron.New(cron.WithSeconds()),
		cleanupJob: cleanupJob,
		refreshJob: refreshJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.cleanupJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.refreshJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
