package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
	"github.com/jose-c-campos/usc-scheduler/internal/repository"
	"github.com/jose-c-campos/usc-scheduler/internal/timeutil"
)

// EmptyScheduleScore 空课表的哨兵分数
const EmptyScheduleScore = -999

// ratingKey 评分缓存键：(教授, 课程码)
type ratingKey struct {
	Professor string
	Course    string
}

// RatingCache 评分查询缓存
// 每个评分 worker 持有独立实例，worker 间不共享，故无需加锁
type RatingCache map[ratingKey]model.Rating

// ════════════════════════════════════════════════════════════
// Evaluator — 课表四束打分
// ════════════════════════════════════════════════════════════
//
// 原始总分为四束之和（0–100）：
//   教授束 0–40：评分质量、课程口碑、再选率、难度反转
//   休息日束 0–20：每个被占用的期望休息日扣 5
//   时段束 0–20：每个起始时刻偏离偏好时段的班次扣 5
//   杂项束 0–20：讲课时长偏好 0–10 + 实验/讨论课回避 0–10
// 对外展示分数经 Normalize 映射到 0–10。

// Evaluator 课表评分器
type Evaluator struct {
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

// NewEvaluator 创建 Evaluator 实例
func NewEvaluator(catalog repository.CatalogRepository, logger *zap.Logger) *Evaluator {
	return &Evaluator{catalog: catalog, logger: logger}
}

// Evaluate 计算课表原始总分（0–100），空课表返回哨兵值
// cache 由调用方创建并持有（评分 worker 各自一份）
func (e *Evaluator) Evaluate(ctx context.Context, sched model.Schedule,
	prefs model.Preferences, cache RatingCache) float64 {

	if len(sched) == 0 {
		return EmptyScheduleScore
	}

	return e.professorBundle(ctx, sched, cache) +
		dayBundle(sched, prefs) +
		timeBundle(sched, prefs) +
		miscBundle(sched, prefs)
}

// ScoreBreakdown 返回各束得分（诊断用途）
func (e *Evaluator) ScoreBreakdown(ctx context.Context, sched model.Schedule,
	prefs model.Preferences) map[string]float64 {

	cache := make(RatingCache)
	return map[string]float64{
		"professor": e.professorBundle(ctx, sched, cache),
		"days":      dayBundle(sched, prefs),
		"times":     timeBundle(sched, prefs),
		"misc":      miscBundle(sched, prefs),
	}
}

// lookupRating 经缓存查询评分；查询失败按零评分处理
func (e *Evaluator) lookupRating(ctx context.Context, cache RatingCache,
	professor, course string) model.Rating {

	key := ratingKey{Professor: professor, Course: course}
	if cache != nil {
		if r, ok := cache[key]; ok {
			return r
		}
	}

	rating, err := e.catalog.ProfessorRating(ctx, professor, course)
	if err != nil {
		e.logger.Warn("教授评分查询失败，按零评分处理",
			zap.String("professor", professor), zap.String("course", course), zap.Error(err))
		rating = model.Rating{}
	}
	if cache != nil {
		cache[key] = rating
	}
	return rating
}

// professorBundle 教授束（0–40）
// 只统计有可用讲师名的班次；quality 与课程口碑皆为零的评分忽略。
// 四项平均值之和落在 0–20，乘 2 拉伸到 0–40。
func (e *Evaluator) professorBundle(ctx context.Context, sched model.Schedule, cache RatingCache) float64 {
	var sumOverall, sumCourse, sumWTA, sumDiff float64
	count := 0

	sched.EachSection(func(classCode string, sec *model.Section) {
		if !model.UsableInstructor(sec.Instructor) {
			return
		}
		professor := model.CleanInstructorName(sec.Instructor)

		r := e.lookupRating(ctx, cache, professor, classCode)
		if r.Quality <= 0 && r.CourseSpecificQuality <= 0 {
			return
		}

		sumOverall += r.Quality
		if r.CourseSpecificQuality > 0 {
			sumCourse += r.CourseSpecificQuality
		} else {
			sumCourse += r.Quality // 无课程级数据时退回总体质量
		}
		sumWTA += r.WouldTakeAgain / 20.0 // RMP 百分比压缩到 0–5
		sumDiff += r.Difficulty
		count++
	})

	if count == 0 {
		return 0
	}

	n := float64(count)
	avgOverall := sumOverall / n
	avgCourse := sumCourse / n
	avgWTA := sumWTA / n
	avgDiff := sumDiff / n

	// 难度越低越好，反转
	invDiff := 5.0 - clamp(avgDiff, 0, 5)

	return (avgOverall + avgCourse + avgWTA + invDiff) * 2.0
}

// dayBundle 休息日束（0–20）：每个被占用的期望休息日扣 5
func dayBundle(sched model.Schedule, prefs model.Preferences) float64 {
	if len(prefs.DaysOff) == 0 {
		return 0 // 无偏好
	}

	used := sched.DayBitsUsed()
	score := 20.0
	for _, day := range prefs.DaysOff {
		if used&timeutil.DayBits([]string{day}) != 0 {
			score -= 5.0
		}
	}
	return max(score, 0)
}

// timeBundle 时段束（0–20）：每个起始时刻在偏好时段之外的班次扣 5
func timeBundle(sched model.Schedule, prefs model.Preferences) float64 {
	if prefs.TimeOfDay == model.TimeOfDayNone {
		return 0 // 无偏好
	}

	score := 20.0
	any := false
	sched.EachSection(func(_ string, sec *model.Section) {
		startHour, _, _ := sec.TimeInfo()
		if startHour < 0 {
			return
		}
		any = true
		if !prefs.TimeOfDay.InZone(startHour) {
			score -= 5.0
		}
	})
	if !any {
		return 0 // 全部班次无有效时刻
	}
	return max(score, 0)
}

// miscBundle 杂项束（0–20）：讲课时长 0–10 + 实验/讨论课回避 0–10
func miscBundle(sched model.Schedule, prefs model.Preferences) float64 {
	var score float64

	// 讲课时长
	if prefs.LectureLength != model.LectureLengthNone {
		var sum float64
		count := 0
		sched.EachSection(func(_ string, sec *model.Section) {
			if sec.Type != "Lecture" {
				return
			}
			_, _, duration := sec.TimeInfo()
			if duration > 0 {
				sum += duration
				count++
			}
		})
		if count > 0 {
			avg := sum / float64(count)
			if prefs.LectureLength == model.LectureLengthShorter {
				// 0–1.5h → 10 分，1.5–3h → 0 分
				score += clamp(1.5-avg, 0, 1.5) / 1.5 * 10.0
			} else {
				// 3h+ → 10 分，1.5h → 0 分
				score += clamp(avg-1.5, 0, 1.5) / 1.5 * 10.0
			}
		}
	}

	// 实验 / 讨论课回避
	if prefs.AvoidLabs || prefs.AvoidDiscussions {
		bad := 0
		sched.EachSection(func(_ string, sec *model.Section) {
			isLab := sec.Type == "Lab"
			isDisc := sec.Type == "Discussion" || sec.Type == "Quiz"
			if (isLab && prefs.AvoidLabs) || (isDisc && prefs.AvoidDiscussions) {
				bad++
			}
		})
		score += float64(max(2-bad, 0)) * 5.0 // 0 / 5 / 10
	}

	return score
}

// Normalize 将原始总分映射到对外展示的 0–10 区间
// 基准抬升 40 后走分段曲线（下限 6.0 为产品层校准，勿随意调整）
func Normalize(raw float64) float64 {
	boosted := raw + 40.0

	var normalized float64
	switch {
	case boosted >= 60:
		normalized = 8.5 + (boosted-60)*1.5/40.0
	case boosted >= 45:
		normalized = 7.5 + (boosted-45)/15.0
	default:
		normalized = 6.0 + boosted/45.0*1.5
	}
	return clamp(normalized, 0, 10)
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
