package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/dto"
	"github.com/jose-c-campos/usc-scheduler/internal/model"
	"github.com/jose-c-campos/usc-scheduler/internal/service"
)

// ScheduleHandler 排课模块 HTTP 处理器
type ScheduleHandler struct {
	schedulerSvc service.SchedulerService
	presenter    *service.Presenter
	defaultTopN  int
	logger       *zap.Logger
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(schedulerSvc service.SchedulerService, presenter *service.Presenter,
	defaultTopN int, logger *zap.Logger) *ScheduleHandler {

	return &ScheduleHandler{
		schedulerSvc: schedulerSvc,
		presenter:    presenter,
		defaultTopN:  defaultTopN,
		logger:       logger,
	}
}

// BuildSchedules 生成多样化课表
// POST /api/v1/schedules
func (h *ScheduleHandler) BuildSchedules(c *gin.Context) {
	var req dto.BuildScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "class_spots 不能为空"})
		return
	}

	classSpots := model.ParseClassSpots(req.ClassSpots)
	prefs := model.ParsePreferences(req.Preferences)
	topN := req.TopN
	if topN <= 0 {
		topN = h.defaultTopN
	}

	schedules, err := h.schedulerSvc.BuildSchedules(c.Request.Context(), classSpots, prefs, topN)
	if err != nil {
		if errors.Is(err, service.ErrNoValidSchedules) {
			// 无解不是错误：返回空列表
			c.JSON(http.StatusOK, dto.ScheduleListResponse{Schedules: []dto.ScheduleDTO{}})
			return
		}
		h.logger.Error("排课失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.presenter.Render(c.Request.Context(), schedules))
}
