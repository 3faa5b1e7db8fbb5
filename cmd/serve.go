package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/socratai/socratai/internal/api"
	"github.com/socratai/socratai/internal/auth"
	"github.com/socratai/socratai/internal/logger"
	"github.com/socratai/socratai/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		log, err := logger.New(cfg.Env)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer log.Sync()

		if cfg.IsProd() {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := buildRuntime(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer rt.Close()

		router := api.NewRouter(api.RouterConfig{
			Service:            rt.Service,
			Auth:               auth.NewService(rt.Store.UserRepo(), cfg.JWTSecret, cfg.JWTTTL, log),
			Log:                log,
			CORSOrigins:        cfg.CORSOrigins,
			MaxMultipartMemory: service.DefaultMaxUploadBytes,
		})

		log.Info("starting api", "addr", cfg.Addr, "env", cfg.Env, "dialect", rt.Store.Dialect(), "generator", cfg.LLM.Provider)
		return api.NewServer(cfg.Addr, router, log).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides SOCRATAI_ADDR)")
}
