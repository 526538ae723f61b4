// Package server 以 HTTP 接口提供单张卡面的即时渲染。
package server

import (
	"bytes"
	"context"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/M4cs/beetlegame-webp/compose"
	"github.com/M4cs/beetlegame-webp/layout"
	"github.com/M4cs/beetlegame-webp/record"
	"github.com/M4cs/beetlegame-webp/renderer"
)

// CardComposer 把一条记录合成为卡面，*compose.Composer 实现了该接口。
type CardComposer interface {
	Compose(ctx context.Context, rec record.Record) (renderer.Surface, error)
}

// Server 持有共享的合成器与生效布局，处理函数只读访问它们。
type Server struct {
	composer CardComposer
	dump     layout.DebugDump
}

// New 创建 Server。
func New(c CardComposer, canvas layout.Canvas, fields layout.CardLayout) *Server {
	return &Server{composer: c, dump: layout.NewDebugDump(canvas, fields)}
}

// RegisterRoutes 在 r 上注册 /api 路由。
func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/layout", s.layout)
		api.POST("/cards/render", s.render)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) layout(c *gin.Context) {
	c.JSON(http.StatusOK, s.dump)
}

// render 接收一条 JSON 记录（字段名 → 字符串），返回 PNG。
func (s *Server) render(c *gin.Context) {
	var rec record.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	surface, err := s.composer.Compose(c.Request.Context(), rec)
	if err != nil {
		compose.Logger().Error("卡片渲染失败", "card", rec.Label(), "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, surface.Image(), imaging.PNG); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
