package web

import (
	_ "embed"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var indexPage []byte

// NewRouter registers the page and API routes. CORS is enabled only when
// allowedOrigins is non-empty.
func NewRouter(h *Handler, allowedOrigins []string, maxUploadMB int64) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if maxUploadMB > 0 {
		r.MaxMultipartMemory = maxUploadMB << 20
	}

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: allowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.GET("/", h.Index)
	r.POST("/api/narrate", h.Narrate)
	r.GET("/audio/:name", h.Audio)
	r.GET("/healthz", h.Health)
	return r
}
