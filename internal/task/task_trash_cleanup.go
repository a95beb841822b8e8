package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-revision-service/global"
	"github.com/haierkeys/note-revision-service/internal/middleware"
	"github.com/haierkeys/note-revision-service/internal/service"
	"github.com/haierkeys/note-revision-service/pkg/util"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// init 自动注册回收站清理任务
func init() {
	Register(NewTrashCleanupTask)
}

// TrashCleanupTask 按计划永久删除超过保留期的回收站笔记
type TrashCleanupTask struct {
	interval time.Duration
	firstRun bool
}

// NewTrashCleanupTask 创建回收站清理任务。
// 保留期为空或计划表达式无效时任务被禁用。
func NewTrashCleanupTask() (Task, error) {
	retentionTimeStr := global.Config.App.SoftDeleteRetentionTime
	if retentionTimeStr == "" {
		return nil, nil
	}
	duration, err := util.ParseDuration(retentionTimeStr)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, nil
	}

	// 调度间隔取自 cron 表达式相邻两次触发的间距
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(global.Config.App.TrashPurgeSchedule)
	if err != nil {
		return nil, err
	}
	first := schedule.Next(time.Now())
	interval := schedule.Next(first).Sub(first)
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	return &TrashCleanupTask{
		interval: interval,
		firstRun: true,
	}, nil
}

// Name 返回任务名称
func (t *TrashCleanupTask) Name() string {
	return "TrashCleanupTask"
}

// Run 执行清理任务
func (t *TrashCleanupTask) Run(ctx context.Context) error {
	svc := service.NewBackground(ctx)

	status := "scheduled"
	if t.firstRun {
		status = "first-run"
		t.firstRun = false
	}

	removed, err := svc.NoteCleanup()
	if err != nil {
		global.Logger.Error(t.Name()+" failed ["+status+"]",
			zap.String("trace-id", middleware.GetTraceID(ctx)),
			zap.Error(err))
		return err
	}

	global.Logger.Info(t.Name()+" completed ["+status+"]",
		zap.String("trace-id", middleware.GetTraceID(ctx)),
		zap.Int64("removed", removed))
	return nil
}

// LoopInterval 返回执行间隔
func (t *TrashCleanupTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *TrashCleanupTask) IsStartupRun() bool {
	return true
}
