package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/dto"
	"github.com/jose-c-campos/usc-scheduler/internal/model"
	"github.com/jose-c-campos/usc-scheduler/internal/repository"
)

// ════════════════════════════════════════════════════════════
// Presenter — 把打分结果装配为对外响应
// ════════════════════════════════════════════════════════════

// Presenter 输出装配器
type Presenter struct {
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

// NewPresenter 创建 Presenter 实例
func NewPresenter(catalog repository.CatalogRepository, logger *zap.Logger) *Presenter {
	return &Presenter{catalog: catalog, logger: logger}
}

// Render 把多样化后的课表列表装配成响应体，id 从 1 起编号
func (p *Presenter) Render(ctx context.Context, schedules []ScoredSchedule) dto.ScheduleListResponse {
	resp := dto.ScheduleListResponse{Schedules: make([]dto.ScheduleDTO, 0, len(schedules))}
	cache := make(RatingCache)

	for i, scored := range schedules {
		resp.Schedules = append(resp.Schedules, p.renderOne(ctx, i+1, scored, cache))
	}
	return resp
}

func (p *Presenter) renderOne(ctx context.Context, id int, scored ScoredSchedule, cache RatingCache) dto.ScheduleDTO {
	out := dto.ScheduleDTO{
		ID:      id,
		Score:   scored.Score,
		Classes: make([]dto.ClassDTO, 0, len(scored.Schedule)),
	}

	// 讲课班次的评分均值（仅统计有可用讲师且 quality > 0 的讲课班次）
	var sumRating, sumDifficulty float64
	rated := 0

	for _, item := range scored.Schedule {
		class := dto.ClassDTO{
			Code:     item.ClassCode,
			Sections: make([]dto.SectionDTO, 0, len(item.Sections)),
		}

		for si := range item.Sections {
			sec := &item.Sections[si]
			rating := p.sectionRating(ctx, cache, sec, item.ClassCode)

			if sec.Type == "Lecture" && model.UsableInstructor(sec.Instructor) && rating.Quality > 0 {
				sumRating += rating.Quality
				sumDifficulty += rating.Difficulty
				rated++
			}

			class.Sections = append(class.Sections, dto.SectionDTO{
				Type:            sec.Type,
				Days:            strings.Join(sec.MeetingDays, ", "),
				Time:            formatTimeRange(sec),
				Instructor:      model.CleanInstructorName(sec.Instructor),
				SectionNumber:   sec.SectionNumber,
				Location:        displayOrTBA(sec.Location),
				SeatsRegistered: sec.NumRegistered,
				SeatsTotal:      sec.NumSeats,
				Ratings: dto.RatingsDTO{
					Quality:          rating.Quality,
					Difficulty:       rating.Difficulty,
					WouldTakeAgain:   rating.WouldTakeAgain,
					CourseQuality:    rating.CourseSpecificQuality,
					CourseDifficulty: rating.CourseSpecificDifficulty,
				},
			})
		}
		out.Classes = append(out.Classes, class)
	}

	if rated > 0 {
		out.AvgProfRating = sumRating / float64(rated)
		out.AvgDifficulty = sumDifficulty / float64(rated)
	}
	return out
}

// sectionRating 查询班次讲师的评分；无可用讲师名时为零值
func (p *Presenter) sectionRating(ctx context.Context, cache RatingCache,
	sec *model.Section, classCode string) model.Rating {

	if !model.UsableInstructor(sec.Instructor) {
		return model.Rating{}
	}
	professor := model.CleanInstructorName(sec.Instructor)

	key := ratingKey{Professor: professor, Course: classCode}
	if r, ok := cache[key]; ok {
		return r
	}

	rating, err := p.catalog.ProfessorRating(ctx, professor, classCode)
	if err != nil {
		p.logger.Warn("装配阶段评分查询失败",
			zap.String("professor", professor), zap.Error(err))
		rating = model.Rating{}
	}
	cache[key] = rating
	return rating
}

// RenderText 人类可读输出（--json 未开启时使用）
func (p *Presenter) RenderText(resp dto.ScheduleListResponse) string {
	var sb strings.Builder

	for _, sched := range resp.Schedules {
		fmt.Fprintf(&sb, "课表 #%d  综合分 %.2f", sched.ID, sched.Score)
		if sched.AvgProfRating > 0 {
			fmt.Fprintf(&sb, "  教授均分 %.2f  难度均值 %.2f", sched.AvgProfRating, sched.AvgDifficulty)
		}
		sb.WriteString("\n")

		for _, class := range sched.Classes {
			fmt.Fprintf(&sb, "  %s\n", class.Code)
			for _, sec := range class.Sections {
				fmt.Fprintf(&sb, "    %-10s %-12s %-18s %-20s %s (%d/%d)\n",
					sec.Type, sec.Days, sec.Time,
					displayOrTBA(sec.Instructor), sec.Location,
					sec.SeatsRegistered, sec.SeatsTotal)
			}
		}
		sb.WriteString("\n")
	}
	if len(resp.Schedules) == 0 {
		sb.WriteString("没有满足条件的课表\n")
	}
	return sb.String()
}

func formatTimeRange(sec *model.Section) string {
	if !sec.HasTimes() {
		return "TBA"
	}
	return sec.StartTime + "-" + sec.EndTime
}

func displayOrTBA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "TBA"
	}
	return s
}
