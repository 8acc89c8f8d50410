package scheduler

import (
	"context"
	"sync"
	"time"

	"mrmelo_sanctuary/config"
	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/metrics"
	"mrmelo_sanctuary/models"
)

// 将秒数转换为时间间隔
func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// StatsSource 内容统计来源
type StatsSource interface {
	Stats(ctx context.Context) (*models.ContentStats, error)
}

// SlotPruner 清理空闲的展示槽位
type SlotPruner interface {
	Prune(now time.Time) int
}

// 任务类型
type TaskType int

const (
	TaskCatalogProbe TaskType = iota
	TaskSlotPrune
)

// 任务状态
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	Interval    time.Duration
	IsRunning   bool
	Description string
}

// 任务调度器
type Scheduler struct {
	cfg           *config.Config
	stats         StatsSource
	pruner        SlotPruner
	checkInterval time.Duration
	tasks         map[TaskType]*TaskStatus
	mutex         sync.Mutex
	wg            sync.WaitGroup
}

// 创建新的调度器，stats 或 pruner 为nil时不注册对应任务
func NewScheduler(cfg *config.Config, stats StatsSource, pruner SlotPruner) *Scheduler {
	checkInterval := secondsToDuration(cfg.Scheduler.CheckIntervalSec)
	if checkInterval <= 0 {
		checkInterval = 60 * time.Second // 默认值
	}

	s := &Scheduler{
		cfg:           cfg,
		stats:         stats,
		pruner:        pruner,
		checkInterval: checkInterval,
		tasks:         make(map[TaskType]*TaskStatus),
	}
	s.initTasks(time.Now())
	return s
}

// Start 启动主循环，ctx取消后退出
func Start(ctx context.Context, cfg *config.Config, stats StatsSource, pruner SlotPruner) *Scheduler {
	s := NewScheduler(cfg, stats, pruner)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()

	logger.Info("Scheduler started", "check_interval", s.checkInterval.String(), "task_count", len(s.tasks))
	return s
}

// Wait 等待主循环和正在运行的任务结束
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// 初始化任务
func (s *Scheduler) initTasks(now time.Time) {
	if s.stats != nil {
		// 启动后立即探测一次
		s.tasks[TaskCatalogProbe] = &TaskStatus{
			NextRun:     now,
			Interval:    s.checkInterval,
			Description: "catalog probe",
		}
	}

	if s.pruner != nil {
		idle := time.Duration(s.cfg.Explorer.SlotIdleMin) * time.Minute
		if idle <= 0 {
			idle = 30 * time.Minute
		}
		interval := idle / 2
		if interval < s.checkInterval {
			interval = s.checkInterval
		}
		s.tasks[TaskSlotPrune] = &TaskStatus{
			NextRun:     now.Add(interval),
			Interval:    interval,
			Description: "explorer slot pruning",
		}
	}
}

// 主循环
func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	s.checkTasks(ctx, time.Now())
	for {
		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopped")
			return
		case now := <-ticker.C:
			s.checkTasks(ctx, now)
		}
	}
}

// 检查任务
func (s *Scheduler) checkTasks(ctx context.Context, now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		// 如果任务正在运行，跳过
		if status.IsRunning {
			continue
		}

		// 如果到达或超过下次运行时间，执行任务
		if !now.Before(status.NextRun) {
			status.IsRunning = true
			s.wg.Add(1)
			go func(taskType TaskType) {
				defer s.wg.Done()
				s.runTask(ctx, taskType, now)
			}(taskType)
		}
	}
}

// 运行任务
func (s *Scheduler) runTask(ctx context.Context, taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now
		status.NextRun = now.Add(status.Interval)

		logger.Debug("Task finished", "task", status.Description, "next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskCatalogProbe:
		s.probeCatalog(ctx)
	case TaskSlotPrune:
		s.pruner.Prune(now)
	}
}

// probeCatalog 更新已发布内容数量指标
func (s *Scheduler) probeCatalog(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	stats, err := s.stats.Stats(ctx)
	if err != nil {
		logger.Error("Catalog probe failed", "error", err)
		return
	}

	published := 0
	for _, t := range models.AllContentTypes {
		n := stats.Counts[t][models.StatusPublished]
		metrics.PublishedItems.WithLabelValues(string(t)).Set(float64(n))
		published += n
	}
	logger.Info("Catalog probe finished", "published", published, "total", stats.Total)
}

// Status 返回任务状态副本
func (s *Scheduler) Status() map[TaskType]TaskStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make(map[TaskType]TaskStatus, len(s.tasks))
	for t, st := range s.tasks {
		out[t] = *st
	}
	return out
}
