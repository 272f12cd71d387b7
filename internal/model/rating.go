package model

import "strings"

// Rating 教授评分聚合
// CourseSpecific* 来自 prof_course_ratings，其余来自 professors 汇总行；
// 查不到的字段保持零值
type Rating struct {
	Quality                  float64 `json:"quality"`
	Difficulty               float64 `json:"difficulty"`
	WouldTakeAgain           float64 `json:"would_take_again"`
	CourseSpecificQuality    float64 `json:"course_quality"`
	CourseSpecificDifficulty float64 `json:"course_difficulty"`
}

// IsZero 判断是否完全无评分数据
func (r Rating) IsZero() bool {
	return r.Quality == 0 && r.Difficulty == 0 && r.WouldTakeAgain == 0 &&
		r.CourseSpecificQuality == 0 && r.CourseSpecificDifficulty == 0
}

// CleanInstructorName 去掉目录数据中混入的花括号与引号
// （instructors 字段以 PostgreSQL 数组文本形式到达，形如 {"Jane Doe"}）
func CleanInstructorName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '{', '}', '"':
			return -1
		}
		return r
	}, name)
}

// CanonicalName 姓名/课程码规范化：去掉所有非字母数字字符后转小写
// 与目录库评分查询里的 regexp_replace 保持同一规则
func CanonicalName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r >= 'A' && r <= 'Z' {
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// UsableInstructor 判断讲师名是否可用于评分查询
// 空串、"TBA"、清洗后为空的花括号占位都不可用
func UsableInstructor(name string) bool {
	if name == "" || name == "TBA" || name == "{}" {
		return false
	}
	return CleanInstructorName(name) != ""
}
