package service

import (
	"sort"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
)

// ════════════════════════════════════════════════════════════
// Diversifier — 从高分候选中贪心挑出互不相似的前 K 张
// ════════════════════════════════════════════════════════════
//
// 候选先按分数降序排序，首位直接入选；此后每轮在未入选者中
// 挑"到已入选集合的最小距离 + 教授多样性加成"最大的一张，
// 同分取排序位置靠前者。与已入选课表完全同选的候选直接跳过。

// ScoredSchedule 打分后的候选课表
type ScoredSchedule struct {
	Schedule model.Schedule
	// Raw 四束原始总分
	Raw float64
	// Score 归一化后的对外分数（0–10）
	Score float64
}

// Diversify 贪心多样化选择，最多返回 k 张课表
func Diversify(candidates []ScoredSchedule, k int) []ScoredSchedule {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	sorted := make([]ScoredSchedule, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	chosen := make([]ScoredSchedule, 0, k)
	chosen = append(chosen, sorted[0])
	used := map[int]struct{}{0: {}}

	// freq 已入选课表中各教授（规范化姓名）的出现次数
	freq := make(map[string]int)
	countProfessors(sorted[0].Schedule, freq)

	for len(chosen) < k && len(used) < len(sorted) {
		bestIdx := -1
		bestGain := 0.0

		for i := 1; i < len(sorted); i++ {
			if _, ok := used[i]; ok {
				continue
			}
			if isDuplicate(sorted[i].Schedule, chosen) {
				used[i] = struct{}{}
				continue
			}

			minDist := minDistanceTo(sorted[i].Schedule, chosen)
			gain := minDist + professorBonus(sorted[i].Schedule, freq)
			// 同分取排序靠前者，故严格大于才替换
			if bestIdx < 0 || gain > bestGain {
				bestIdx = i
				bestGain = gain
			}
		}
		if bestIdx < 0 {
			break
		}

		used[bestIdx] = struct{}{}
		chosen = append(chosen, sorted[bestIdx])
		countProfessors(sorted[bestIdx].Schedule, freq)
	}

	return chosen
}

// minDistanceTo 候选到已入选集合的最小距离
func minDistanceTo(sched model.Schedule, chosen []ScoredSchedule) float64 {
	minDist := 1.0
	for i := range chosen {
		d := 1.0 - similarity(sched, chosen[i].Schedule)
		if d < minDist {
			minDist = d
		}
	}
	return minDist
}

// similarity 两张课表的相似度：同课程同班次号的班次占比
func similarity(a, b model.Schedule) float64 {
	// 课程码 → 班次号集合
	bSections := make(map[string]map[string]struct{}, len(b))
	for i := range b {
		set := make(map[string]struct{}, len(b[i].Sections))
		for j := range b[i].Sections {
			set[b[i].Sections[j].SectionNumber] = struct{}{}
		}
		bSections[b[i].ClassCode] = set
	}

	total := 0
	matched := 0
	for i := range a {
		set := bSections[a[i].ClassCode]
		for j := range a[i].Sections {
			total++
			if set != nil {
				if _, ok := set[a[i].Sections[j].SectionNumber]; ok {
					matched++
				}
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

// professorBonus 教授多样性加成：没见过的教授 +0.1，见过的按频次衰减
func professorBonus(sched model.Schedule, freq map[string]int) float64 {
	bonus := 0.0
	sched.EachSection(func(_ string, sec *model.Section) {
		if !model.UsableInstructor(sec.Instructor) {
			return
		}
		name := model.CanonicalName(model.CleanInstructorName(sec.Instructor))
		if n := freq[name]; n > 0 {
			bonus += 0.1 / float64(n+1)
		} else {
			bonus += 0.1
		}
	})
	return bonus
}

// countProfessors 把课表中的教授计入频次表
func countProfessors(sched model.Schedule, freq map[string]int) {
	sched.EachSection(func(_ string, sec *model.Section) {
		if !model.UsableInstructor(sec.Instructor) {
			return
		}
		freq[model.CanonicalName(model.CleanInstructorName(sec.Instructor))]++
	})
}

// isDuplicate 判断候选是否与任一已入选课表完全同选
func isDuplicate(sched model.Schedule, chosen []ScoredSchedule) bool {
	for i := range chosen {
		if sched.SameSelection(chosen[i].Schedule) {
			return true
		}
	}
	return false
}
