package model

// Course 课程表 — 对应 courses
type Course struct {
	ID       int64  `gorm:"primaryKey"          json:"id"`
	Code     string `gorm:"type:varchar(32);not null" json:"code"`
	Semester string `gorm:"type:varchar(16);not null" json:"semester"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// CourseSection 班次表 — 对应 sections
// days_of_week 为原始文本（可能带花括号与逗号），由 Section 归一化
type CourseSection struct {
	ID                  int64  `gorm:"primaryKey"                 json:"id"`
	CourseID            int64  `gorm:"not null"                   json:"course_id"`
	Type                string `gorm:"type:varchar(32);not null"  json:"type"`
	DaysOfWeek          string `gorm:"type:text;not null"         json:"days_of_week"`
	StartTime           string `gorm:"type:varchar(16);not null"  json:"start_time"`
	EndTime             string `gorm:"type:varchar(16);not null"  json:"end_time"`
	Location            string `gorm:"type:text;not null"         json:"location"`
	NumStudentsEnrolled int    `gorm:"not null"                   json:"num_students_enrolled"`
	NumSeats            int    `gorm:"not null"                   json:"num_seats"`
	Instructors         string `gorm:"type:text;not null"         json:"instructors"`
	SectionNumber       string `gorm:"type:varchar(16);not null"  json:"section_number"`
	ParentSectionID     *int64 `json:"parent_section_id,omitempty"`
}

// TableName 指定表名
func (CourseSection) TableName() string { return "sections" }

// Professor 教授表 — 对应 professors
type Professor struct {
	ID                    int64    `gorm:"primaryKey" json:"id"`
	Name                  string   `gorm:"type:text;not null" json:"name"`
	AvgRating             *float64 `json:"avg_rating,omitempty"`
	AvgDifficulty         *float64 `json:"avg_difficulty,omitempty"`
	WouldTakeAgainPercent *float64 `json:"would_take_again_percent,omitempty"`
}

// TableName 指定表名
func (Professor) TableName() string { return "professors" }

// ProfCourseRating 教授课程评分表 — 对应 prof_course_ratings
type ProfCourseRating struct {
	ID            int64    `gorm:"primaryKey" json:"id"`
	ProfessorID   int64    `gorm:"not null"   json:"professor_id"`
	CourseCode    string   `gorm:"type:varchar(32);not null" json:"course_code"`
	AvgQuality    *float64 `json:"avg_quality,omitempty"`
	AvgDifficulty *float64 `json:"avg_difficulty,omitempty"`
	NumReviews    int      `gorm:"not null" json:"num_reviews"`
}

// TableName 指定表名
func (ProfCourseRating) TableName() string { return "prof_course_ratings" }
