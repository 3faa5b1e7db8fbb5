// Package api serves the quiz service over HTTP with gin.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/socratai/socratai/internal/auth"
	"github.com/socratai/socratai/internal/logger"
	"github.com/socratai/socratai/internal/service"
)

type RouterConfig struct {
	Service     *service.Service
	Auth        *auth.Service
	Log         *logger.Logger
	CORSOrigins []string

	// MaxMultipartMemory caps the upload bytes gin buffers in memory.
	MaxMultipartMemory int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "api")

	r := gin.New()
	if cfg.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = cfg.MaxMultipartMemory
	}
	r.Use(gin.Recovery(), RequestLogger(log), CORS(cfg.CORSOrigins))

	h := NewHandler(cfg.Service, cfg.Auth, log)

	r.GET("/healthz", h.Health)

	authGroup := r.Group("/auth")
	authGroup.POST("/signup", h.Signup)
	authGroup.POST("/login", h.Login)

	api := r.Group("/api", RequireAuth(cfg.Auth))
	api.GET("/history", h.History)
	api.POST("/upload", h.Upload)
	api.GET("/topics/:session_id", h.Topics)
	api.POST("/generate-quiz", h.GenerateQuiz)
	api.POST("/generate-adaptive-quiz", h.GenerateAdaptiveQuiz)
	api.POST("/submit-quiz", h.SubmitQuiz)
	api.GET("/stats/:session_id", h.Stats)

	return r
}
