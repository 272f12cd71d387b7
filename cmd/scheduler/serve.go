package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/api/handler"
	"github.com/jose-c-campos/usc-scheduler/internal/api/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "以 HTTP 服务方式运行排课引擎",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() {
	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}

	a, err := newApp(cfg)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	h := handler.NewHandler(a.scheduler, a.presenter, cfg.Engine.TopN, a.logger)
	engine := router.Setup(cfg, h, a.logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // 大规模枚举可能耗时较长
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		a.logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	a.logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("服务器关闭异常", zap.Error(err))
	}

	a.logger.Info("服务器已关闭")
}
