package global

import (
	"github.com/haierkeys/note-revision-service/internal/app"

	"gorm.io/gorm"
)

var (
	// Config 全局配置实例
	Config *app.AppConfig
	// DBEngine 全局数据库连接
	DBEngine *gorm.DB
)
