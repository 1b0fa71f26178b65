package cron

import (
	"blogpessoal/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	orphanPostSpec    string
	orphanPostagemJob *job.OrphanPostagemJob
}

func NewCronManager(orphanPostSpec string, orphanPostagemJob *job.OrphanPostagemJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		orphanPostSpec:    orphanPostSpec,
		orphanPostagemJob: orphanPostagemJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.orphanPostSpec, s.orphanPostagemJob); err != nil {
		return err
	}
	return nil
}

// Launch 注册全部任务并启动引擎
func (s *Manager) Launch() error {
	if err := s.RegisterJobs(); err != nil {
		return err
	}
	s.Start()
	return nil
}

// Entries 已注册任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron Jobs starting...", "orphan_post_spec", s.orphanPostSpec)
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
