package middleware

import (
	"github.com/haierkeys/note-revision-service/global"
	internalApp "github.com/haierkeys/note-revision-service/internal/app"
	"github.com/haierkeys/note-revision-service/pkg/app"

	"github.com/gin-gonic/gin"
)

func AppInfo() gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", global.Name)
		c.Set("app_version", internalApp.Version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
