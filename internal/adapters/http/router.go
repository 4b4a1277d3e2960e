package httpadapter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"svw.info/polygen/web"
)

// NewRouter serves the web page, its static assets and the JSON API.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.SetHTMLTemplate(web.Templates())
	r.StaticFS("/static", web.StaticFS())
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.tmpl", gin.H{})
	})
	h.Register(r)
	return r
}
