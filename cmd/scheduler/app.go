package main

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jose-c-campos/usc-scheduler/config"
	"github.com/jose-c-campos/usc-scheduler/internal/repository"
	"github.com/jose-c-campos/usc-scheduler/internal/service"
	"github.com/jose-c-campos/usc-scheduler/pkg/database"
	applogger "github.com/jose-c-campos/usc-scheduler/pkg/logger"
	"github.com/jose-c-campos/usc-scheduler/pkg/redis"
)

// app 装配完成的应用依赖
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	rdb       *redis.Client
	repo      *repository.Repository
	scheduler service.SchedulerService
	presenter *service.Presenter
}

// newApp 按 配置 → 日志 → 数据库 → 迁移 → Redis → Repository → Service
// 顺序完成依赖注入；Redis 连接失败时降级运行
func newApp(cfg *config.Config) (*app, error) {
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，评分缓存降级为仅查库", zap.Error(err))
			rdb = nil
		}
	}

	repo := repository.NewRepository(db, cfg.Semester, rdb)
	scheduler := service.NewSchedulerService(repo, logger,
		cfg.Engine.ScheduleLimit, cfg.Engine.ParallelThreshold)
	presenter := service.NewPresenter(repo.Catalog, logger)

	return &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		rdb:       rdb,
		repo:      repo,
		scheduler: scheduler,
		presenter: presenter,
	}, nil
}

// close 释放数据库与 Redis 连接
func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil && sqlDB != nil {
		sqlDB.Close()
	}
	if a.rdb != nil {
		a.rdb.Close()
	}
	a.logger.Sync()
}
