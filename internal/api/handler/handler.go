package handler

import (
	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Schedule *ScheduleHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(schedulerSvc service.SchedulerService, presenter *service.Presenter,
	defaultTopN int, logger *zap.Logger) *Handler {

	return &Handler{
		Schedule: NewScheduleHandler(schedulerSvc, presenter, defaultTopN, logger),
	}
}
