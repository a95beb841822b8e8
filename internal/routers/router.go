// Package routers 注册 HTTP 路由与中间件
package routers

import (
	"time"

	"github.com/haierkeys/note-revision-service/global"
	"github.com/haierkeys/note-revision-service/internal/middleware"
	"github.com/haierkeys/note-revision-service/internal/routers/api_router"
	"github.com/haierkeys/note-revision-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/note",
		FillInterval: time.Second,
		Capacity:     100,
		Quantum:      100,
	},
)

func NewRouter(uni *ut.UniversalTranslator) *gin.Engine {

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddleware())
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(global.Config.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(global.Logger))

		note := api_router.NewNote()

		api.POST("/note", note.Create)
		api.GET("/note", note.Get)
		api.PUT("/note", note.Update)
		api.DELETE("/note", note.Delete)

		api.POST("/note/undo", note.Undo)
		api.POST("/note/redo", note.Redo)
		api.POST("/note/restore", note.Restore)
		api.DELETE("/note/purge", note.Purge)
		api.GET("/note/history", note.History)

		api.GET("/notes", note.List)
		api.GET("/notes/trash", note.TrashList)

		api.GET("/health", api_router.Health)
	}

	r.NoRoute(middleware.NoFound())
	r.NoMethod(middleware.NoFound())

	return r
}
