package api_router

import (
	"time"

	"github.com/haierkeys/note-revision-service/global"
	internalApp "github.com/haierkeys/note-revision-service/internal/app"
	"github.com/haierkeys/note-revision-service/pkg/app"
	"github.com/haierkeys/note-revision-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// startTime 服务启动时间
var startTime = time.Now()

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string  `json:"status"`   // "healthy" 或 "unhealthy"
	Version  string  `json:"version"`  // 服务版本号
	Uptime   float64 `json:"uptime"`   // 运行时间（秒）
	Database string  `json:"database"` // "connected" 或 "error"
}

// Health 健康检查接口，包含数据库连接检查
func Health(c *gin.Context) {
	response := HealthResponse{
		Status:   "healthy",
		Version:  internalApp.Version,
		Uptime:   time.Since(startTime).Seconds(),
		Database: "connected",
	}

	// 检查数据库连接
	if err := global.DBEngine.Raw("SELECT 1").Error; err != nil {
		response.Status = "unhealthy"
		response.Database = "error"
		app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithData(response))
		return
	}

	app.NewResponse(c).ToResponse(code.Success.WithData(response))
}
