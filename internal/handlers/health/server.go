package health

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server exposes the liveness endpoints the hosting platform polls
type Server struct {
	engine  *gin.Engine
	started time.Time
}

// New creates a new health server
func New() *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:  gin.New(),
		started: time.Now(),
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/healthz", s.handleHealthz)

	return s
}

// Run serves until the process exits; it is meant to be launched on
// its own goroutine
func (s *Server) Run(addr string) {
	if err := s.engine.Run(addr); err != nil {
		log.Printf("health server stopped: %v", err)
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, "matchday bot is running")
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}
