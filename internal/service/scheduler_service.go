package service

import (
	"container/heap"
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
	"github.com/jose-c-campos/usc-scheduler/internal/repository"
)

// ErrNoValidSchedules 没有任何可行课表
var ErrNoValidSchedules = errors.New("没有满足条件的课表")

// ════════════════════════════════════════════════════════════
// SchedulerService — 排课流水线编排
// ════════════════════════════════════════════════════════════
//
// 物化 → 枚举 → 并行打分 → 多样化截取。
// 打分 worker 数取 min(核数, 候选数/1000+1)，下限 2；
// 各 worker 私有一份评分缓存，Top-K 累积用互斥锁保护的
// 有界小顶堆：未满直接入堆，满了仅当分数高于堆顶才替换。

// SchedulerService 排课服务接口
type SchedulerService interface {
	// BuildSchedules 为给定 spot 列表与偏好生成最多 topN 张多样化课表
	BuildSchedules(ctx context.Context, classSpots [][]string, prefs model.Preferences, topN int) ([]ScoredSchedule, error)
}

type schedulerService struct {
	builder   *SpotOptionsBuilder
	generator *Generator
	evaluator *Evaluator
	logger    *zap.Logger
}

// NewSchedulerService 创建 SchedulerService 实例
func NewSchedulerService(repo *repository.Repository, logger *zap.Logger, limit, parallelThreshold int) SchedulerService {
	return &schedulerService{
		builder:   NewSpotOptionsBuilder(repo.Catalog, logger),
		generator: NewGenerator(logger, limit, parallelThreshold),
		evaluator: NewEvaluator(repo.Catalog, logger),
		logger:    logger,
	}
}

func (s *schedulerService) BuildSchedules(ctx context.Context, classSpots [][]string,
	prefs model.Preferences, topN int) ([]ScoredSchedule, error) {

	if topN <= 0 {
		topN = 10
	}

	// 空 spot（字面量 NONE）不参与流水线
	spots := make([][]string, 0, len(classSpots))
	for _, spot := range classSpots {
		if len(spot) > 0 {
			spots = append(spots, spot)
		}
	}
	if len(spots) == 0 {
		return nil, ErrNoValidSchedules
	}

	spotOptions, requiredTypes, err := s.builder.Build(ctx, spots, prefs)
	if err != nil {
		return nil, err
	}
	if len(spotOptions) < len(spots) {
		// 某个 spot 的候选课程全部无班次可用，不可能拼出完整课表
		s.logger.Warn("存在无任何选项的 spot",
			zap.Int("spots", len(spots)), zap.Int("materialized", len(spotOptions)))
		return nil, ErrNoValidSchedules
	}

	schedules := s.generator.Generate(ctx, spots, spotOptions, requiredTypes)
	if len(schedules) == 0 {
		return nil, ErrNoValidSchedules
	}
	s.logger.Info("候选课表枚举完成", zap.Int("count", len(schedules)))

	top := s.scoreTopK(ctx, schedules, prefs, topN)

	diversified := Diversify(top, topN)
	if len(diversified) == 0 {
		return nil, ErrNoValidSchedules
	}
	return diversified, nil
}

// scoreTopK 并行打分并保留分数最高的 k 张
// 保留数量放宽到 4k，给多样化阶段留出挑选余地
func (s *schedulerService) scoreTopK(ctx context.Context, schedules []model.Schedule,
	prefs model.Preferences, k int) []ScoredSchedule {

	keep := k * 4

	workers := max(2, min(runtime.NumCPU(), len(schedules)/1000+1))
	chunkSize := (len(schedules) + workers - 1) / workers

	acc := newTopKAccumulator(keep)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, len(schedules))
		if start >= end {
			break
		}

		wg.Add(1)
		go func(chunk []model.Schedule) {
			defer wg.Done()
			cache := make(RatingCache) // worker 私有，不跨 goroutine 共享
			for i := range chunk {
				if ctx.Err() != nil {
					return
				}
				raw := s.evaluator.Evaluate(ctx, chunk[i], prefs, cache)
				if raw <= EmptyScheduleScore {
					continue
				}
				acc.offer(ScoredSchedule{
					Schedule: chunk[i],
					Raw:      raw,
					Score:    Normalize(raw),
				})
			}
		}(schedules[start:end])
	}
	wg.Wait()

	result := acc.drain()
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

// ── Top-K 累积器：互斥锁 + 有界小顶堆 ──

type scoredHeap []ScoredSchedule

func (h scoredHeap) Len() int            { return len(h) }
func (h scoredHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h scoredHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *scoredHeap) Push(x interface{}) { *h = append(*h, x.(ScoredSchedule)) }
func (h *scoredHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type topKAccumulator struct {
	mu   sync.Mutex
	heap scoredHeap
	cap  int
}

func newTopKAccumulator(capacity int) *topKAccumulator {
	return &topKAccumulator{heap: make(scoredHeap, 0, capacity), cap: capacity}
}

// offer 未满直接入堆；满了仅当分数高于当前最低分才替换堆顶
func (a *topKAccumulator) offer(s ScoredSchedule) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.heap.Len() < a.cap {
		heap.Push(&a.heap, s)
		return
	}
	if s.Score > a.heap[0].Score {
		a.heap[0] = s
		heap.Fix(&a.heap, 0)
	}
}

func (a *topKAccumulator) drain() []ScoredSchedule {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]ScoredSchedule, len(a.heap))
	copy(out, a.heap)
	a.heap = a.heap[:0]
	return out
}
