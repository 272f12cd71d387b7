package dto

// RatingsDTO 单个班次讲师的评分明细
type RatingsDTO struct {
	Quality          float64 `json:"quality"`
	Difficulty       float64 `json:"difficulty"`
	WouldTakeAgain   float64 `json:"would_take_again"`
	CourseQuality    float64 `json:"course_quality"`
	CourseDifficulty float64 `json:"course_difficulty"`
}

// SectionDTO 对外输出的单个班次
type SectionDTO struct {
	Type            string     `json:"type"`
	Days            string     `json:"days"`
	Time            string     `json:"time"`
	Instructor      string     `json:"instructor"`
	SectionNumber   string     `json:"section_number"`
	Location        string     `json:"location"`
	SeatsRegistered int        `json:"seats_registered"`
	SeatsTotal      int        `json:"seats_total"`
	Ratings         RatingsDTO `json:"ratings"`
}

// ClassDTO 课表中的一门课程及其班次组合
type ClassDTO struct {
	Code     string       `json:"code"`
	Sections []SectionDTO `json:"sections"`
}

// ScheduleDTO 单张课表
type ScheduleDTO struct {
	ID            int        `json:"id"`
	Score         float64    `json:"score"`
	AvgProfRating float64    `json:"avgProfRating"`
	AvgDifficulty float64    `json:"avgDifficulty"`
	Classes       []ClassDTO `json:"classes"`
}

// ScheduleListResponse 排课结果响应体
type ScheduleListResponse struct {
	Schedules []ScheduleDTO `json:"schedules"`
}

// ErrorResponse 致命错误响应体
type ErrorResponse struct {
	Error string `json:"error"`
}

// BuildScheduleRequest HTTP 排课请求体
// 字段格式与 CLI 标志一致：spot 间 "|"、spot 内 ","、NONE 为空 spot
type BuildScheduleRequest struct {
	ClassSpots  string `json:"class_spots" binding:"required"`
	Preferences string `json:"preferences"`
	TopN        int    `json:"top_n"`
}
