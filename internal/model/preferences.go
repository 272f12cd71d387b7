package model

import "strings"

// TimeOfDay 上课时段偏好
type TimeOfDay int

const (
	TimeOfDayNone TimeOfDay = iota
	TimeOfDayMorning
	TimeOfDayAfternoon
	TimeOfDayEvening
)

// InZone 判断十进制小时是否落在偏好时段内
// 早晨 [8,11.5)、下午 [11.5,16)、傍晚 [16,21]
func (t TimeOfDay) InZone(hour float64) bool {
	switch t {
	case TimeOfDayMorning:
		return hour >= 8 && hour < 11.5
	case TimeOfDayAfternoon:
		return hour >= 11.5 && hour < 16
	case TimeOfDayEvening:
		return hour >= 16 && hour <= 21
	}
	return false
}

// LectureLength 讲课时长偏好
type LectureLength int

const (
	LectureLengthNone LectureLength = iota
	LectureLengthShorter
	LectureLengthLonger
)

// Preferences 用户排课偏好
type Preferences struct {
	TimeOfDay           TimeOfDay
	DaysOff             []string
	LectureLength       LectureLength
	AvoidLabs           bool
	AvoidDiscussions    bool
	ExcludeFullSections bool
}

// DefaultPreferences 返回默认偏好（仅排除满员班次）
func DefaultPreferences() Preferences {
	return Preferences{ExcludeFullSections: true}
}

// ParsePreferences 解析管道分隔的偏好串：
//
//	time_of_day | days_off_csv | lecture_length | avoid_labs_01 | avoid_discussions_01 | exclude_full_01
//
// 缺失的尾部字段按空处理；无法识别的取值退回默认值
func ParsePreferences(s string) Preferences {
	prefs := DefaultPreferences()

	fields := strings.Split(s, "|")
	for len(fields) < 6 {
		fields = append(fields, "")
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	switch fields[0] {
	case "morning":
		prefs.TimeOfDay = TimeOfDayMorning
	case "afternoon":
		prefs.TimeOfDay = TimeOfDayAfternoon
	case "evening":
		prefs.TimeOfDay = TimeOfDayEvening
	default:
		prefs.TimeOfDay = TimeOfDayNone
	}

	if fields[1] != "" && fields[1] != "none" {
		for _, day := range strings.Split(fields[1], ",") {
			day = strings.TrimSpace(day)
			if day != "" {
				prefs.DaysOff = append(prefs.DaysOff, day)
			}
		}
	}

	switch fields[2] {
	case "shorter":
		prefs.LectureLength = LectureLengthShorter
	case "longer":
		prefs.LectureLength = LectureLengthLonger
	default:
		prefs.LectureLength = LectureLengthNone
	}

	prefs.AvoidLabs = fields[3] == "1"
	prefs.AvoidDiscussions = fields[4] == "1"
	// 第 6 个字段缺省时保留默认的"排除满员班次"
	if fields[5] != "" {
		prefs.ExcludeFullSections = fields[5] == "1"
	}

	return prefs
}

// ParseClassSpots 解析 spot 列表串：spot 之间以 "|" 分隔，
// spot 内候选课程以 "," 分隔，字面量 NONE 表示空 spot。
// 课程码两侧空白会被裁剪。
func ParseClassSpots(s string) [][]string {
	var spots [][]string
	if s == "" {
		return spots
	}
	for _, group := range strings.Split(s, "|") {
		var spot []string
		if strings.TrimSpace(group) != "NONE" {
			for _, code := range strings.Split(group, ",") {
				code = strings.TrimSpace(code)
				if code != "" {
					spot = append(spot, code)
				}
			}
		}
		spots = append(spots, spot)
	}
	return spots
}
