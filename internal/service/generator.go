package service

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
)

// ════════════════════════════════════════════════════════════
// Generator — 候选课表的广度优先笛卡尔展开
// ════════════════════════════════════════════════════════════
//
// 前沿从 spot 0 的选项播种，逐 spot 扩展；扩展前预计算
// 前沿 × 选项的兼容矩阵（课程重复或班次冲突即不兼容）。
// 前沿规模超过 parallelThreshold 且机器多核时分块并行扩展，
// 扩展为纯函数，合并无需协调。候选总量由 limit 硬性封顶，
// 触顶只告警不报错。

// Generator 课表枚举器
type Generator struct {
	logger *zap.Logger
	// limit 幸存候选数量上限
	limit int
	// parallelThreshold 启用并行扩展的前沿规模阈值
	parallelThreshold int
}

// NewGenerator 创建 Generator 实例
func NewGenerator(logger *zap.Logger, limit, parallelThreshold int) *Generator {
	if limit <= 0 {
		limit = 10_000_000
	}
	if parallelThreshold <= 0 {
		parallelThreshold = 5000
	}
	return &Generator{logger: logger, limit: limit, parallelThreshold: parallelThreshold}
}

// Generate 枚举全部完整且无冲突的课表
// spotOptions 为物化阶段的输出；requiredTypes 用于末端完整性过滤
func (g *Generator) Generate(ctx context.Context, classSpots [][]string,
	spotOptions [][]model.ScheduleItem,
	requiredTypes map[string]map[string]struct{}) []model.Schedule {

	if len(spotOptions) == 0 || len(spotOptions[0]) == 0 {
		g.logger.Warn("第一个 spot 没有任何有效班次组合")
		return nil
	}

	// 播种：spot 0 的每个选项各成一张单项课表
	frontier := make([]model.Schedule, 0, min(g.limit, len(spotOptions[0])))
	for _, option := range spotOptions[0] {
		frontier = append(frontier, model.Schedule{option})
		if len(frontier) >= g.limit {
			g.logger.Warn("第一个 spot 选项过多，已截断", zap.Int("limit", g.limit))
			break
		}
	}

	for spotIdx := 1; spotIdx < len(spotOptions); spotIdx++ {
		if err := ctx.Err(); err != nil {
			g.logger.Warn("枚举被取消", zap.Error(err))
			return nil
		}

		options := spotOptions[spotIdx]
		var next []model.Schedule

		workers := min(runtime.NumCPU(), len(frontier)/1000+1)
		if workers > 1 && len(frontier) > g.parallelThreshold {
			next = g.extendParallel(frontier, options, workers)
		} else {
			next = g.extend(frontier, options, g.limit)
		}

		frontier = next
		g.logger.Debug("spot 扩展完成",
			zap.Int("spot", spotIdx), zap.Int("frontier", len(frontier)))

		if len(frontier) == 0 {
			// 前沿耗尽：无可行课表
			return nil
		}
		if len(frontier) >= g.limit {
			g.logger.Warn("候选课表触及上限，已截断", zap.Int("limit", g.limit))
			frontier = frontier[:g.limit]
		}
	}

	// 末端过滤：只保留填满全部 spot 且各课程班次类型齐备的课表
	valid := make([]model.Schedule, 0, len(frontier))
	for _, sched := range frontier {
		if isCompleteSchedule(sched, classSpots, requiredTypes) {
			valid = append(valid, sched)
			if len(valid) >= g.limit {
				break
			}
		}
	}
	return valid
}

// extend 将前沿逐项与下一 spot 的选项拼接，result 封顶 limit
func (g *Generator) extend(frontier []model.Schedule, options []model.ScheduleItem, limit int) []model.Schedule {
	matrix := compatibilityMatrix(frontier, options)

	estimated := min(limit, len(frontier)*len(options)/4)
	result := make([]model.Schedule, 0, max(estimated, 0))

	for i, sched := range frontier {
		if len(result) >= limit {
			return result
		}
		for j := range options {
			if matrix[i][j] {
				result = append(result, sched.Extend(options[j]))
			}
		}
	}
	return result
}

// extendParallel 分块并行扩展后串行合并
// 每个 worker 分得 limit/workers 的配额，合并时再整体封顶
func (g *Generator) extendParallel(frontier []model.Schedule, options []model.ScheduleItem, workers int) []model.Schedule {
	chunkSize := len(frontier) / workers
	results := make([][]model.Schedule, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := (w + 1) * chunkSize
		if w == workers-1 {
			end = len(frontier)
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			results[w] = g.extend(frontier[start:end], options, g.limit/workers)
		}(w, start, end)
	}
	wg.Wait()

	var merged []model.Schedule
	for _, chunk := range results {
		merged = append(merged, chunk...)
		if len(merged) >= g.limit {
			merged = merged[:g.limit]
			break
		}
	}
	return merged
}

// compatibilityMatrix 预计算前沿与选项的兼容矩阵
// matrix[i][j] 为 true 表示 frontier[i] 可以拼接 options[j]：
// 课程码不重复，且选项班次组合与课表内任何组合都不冲突
func compatibilityMatrix(frontier []model.Schedule, options []model.ScheduleItem) [][]bool {
	matrix := make([][]bool, len(frontier))
	for i, sched := range frontier {
		row := make([]bool, len(options))
		for j := range options {
			// 课程重复优先判定，免去冲突检查
			if sched.HasClass(options[j].ClassCode) {
				continue
			}
			row[j] = !sched.ConflictsWith(options[j].Sections)
		}
		matrix[i] = row
	}
	return matrix
}

// isCompleteSchedule 完整性判定：
//  1. 课表项数等于 spot 数，且各项课程属于对应 spot 的候选集
//  2. 每项的班次类型集合覆盖该课程的必修类型集合
func isCompleteSchedule(sched model.Schedule, classSpots [][]string,
	requiredTypes map[string]map[string]struct{}) bool {

	if len(sched) != len(classSpots) {
		return false
	}
	for _, item := range sched {
		if item.SpotIdx < 0 || item.SpotIdx >= len(classSpots) {
			return false
		}
		found := false
		for _, code := range classSpots[item.SpotIdx] {
			if code == item.ClassCode {
				found = true
				break
			}
		}
		if !found {
			return false
		}

		present := make(map[string]struct{}, len(item.Sections))
		for i := range item.Sections {
			present[item.Sections[i].Type] = struct{}{}
		}
		for required := range requiredTypes[item.ClassCode] {
			if _, ok := present[required]; !ok {
				return false
			}
		}
	}
	return true
}
