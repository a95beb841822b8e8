// Package service 实现业务逻辑层
package service

import (
	"context"

	"github.com/haierkeys/note-revision-service/global"
	"github.com/haierkeys/note-revision-service/internal/dao"
	"github.com/haierkeys/note-revision-service/internal/history"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
)

// sfGroup 进程级共享，跨请求合并同 key 的并发调用
var sfGroup singleflight.Group

type Service struct {
	ctx        *gin.Context
	dao        *dao.Dao
	engine     *history.Engine
	SF         *singleflight.Group
	ClientName string
}

func New(ctx *gin.Context) *Service {

	svc := Service{ctx: ctx}
	svc.dao = dao.New(global.DBEngine, ctx)
	svc.engine = history.NewEngine(global.Config.App.MaxHistory)
	svc.SF = &sfGroup

	return &svc
}

// NewBackground 创建一个用于后台任务的 Service 实例 (gin 上下文为 nil)
func NewBackground(ctx context.Context) *Service {
	svc := Service{ctx: nil}
	svc.dao = dao.New(global.DBEngine, ctx)
	svc.engine = history.NewEngine(global.Config.App.MaxHistory)
	svc.SF = &sfGroup
	return &svc
}

func (svc *Service) WithClientName(clientName string) *Service {
	svc.ClientName = clientName
	return svc
}

func (svc *Service) WithSF(sf *singleflight.Group) *Service {
	svc.SF = sf
	return svc
}

func (svc *Service) Ctx() *gin.Context {
	return svc.ctx
}
