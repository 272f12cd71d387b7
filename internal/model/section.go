package model

import (
	"fmt"
	"strings"

	"github.com/jose-c-campos/usc-scheduler/internal/timeutil"
)

// Section 一门课程的单个班次（一次周会面）
// MeetingDays 在构造时已归一化；DayBits 为派生的 7 位星期掩码
type Section struct {
	Type                string   `json:"type"`
	MeetingDays         []string `json:"meeting_days"`
	StartTime           string   `json:"start_time"`
	EndTime             string   `json:"end_time"`
	Location            string   `json:"location"`
	Instructor          string   `json:"instructor"`
	NumRegistered       int      `json:"num_registered"`
	NumSeats            int      `json:"num_seats"`
	SectionNumber       string   `json:"section_number"`
	ParentSectionNumber string   `json:"parent_section_number"`

	dayBits uint8
}

// NewSection 构造班次并归一化星期列表
// 目录数据的 days_of_week 可能是花括号包裹的逗号分隔串（{Mon, Wed}），
// 也可能是空格分隔的多个 token；两种形式都拆成单个星期 token
func NewSection(sectionType string, meetingDays []string, startTime, endTime,
	location string, numRegistered, numSeats int,
	instructor, sectionNumber, parentSectionNumber string) Section {

	var normalized []string
	for _, raw := range meetingDays {
		day := strings.NewReplacer("{", "", "}", "").Replace(raw)
		for _, token := range strings.Split(day, ",") {
			token = strings.TrimSpace(token)
			if token != "" {
				normalized = append(normalized, token)
			}
		}
	}

	return Section{
		Type:                sectionType,
		MeetingDays:         normalized,
		StartTime:           startTime,
		EndTime:             endTime,
		Location:            location,
		Instructor:          instructor,
		NumRegistered:       numRegistered,
		NumSeats:            numSeats,
		SectionNumber:       sectionNumber,
		ParentSectionNumber: parentSectionNumber,
		dayBits:             timeutil.DayBits(normalized),
	}
}

// DayBits 返回归一化后的星期掩码
func (s *Section) DayBits() uint8 { return s.dayBits }

// IsFull 判断是否已满员
func (s *Section) IsFull() bool { return s.NumRegistered >= s.NumSeats }

// HasTimes 判断是否携带有效的起止时刻
func (s *Section) HasTimes() bool {
	return s.StartTime != "" && s.EndTime != "" &&
		s.StartTime != "TBA" && s.EndTime != "TBA"
}

// ConflictsWith 判断两个班次是否冲突
// 任一方无星期或无时刻信息时不冲突；星期掩码无交集时不冲突；
// 否则比较时刻区间是否重叠
func (s *Section) ConflictsWith(other *Section) bool {
	if s.dayBits == 0 || other.dayBits == 0 {
		return false
	}
	if s.dayBits&other.dayBits == 0 {
		return false
	}
	if !s.HasTimes() || !other.HasTimes() {
		return false
	}
	return timeutil.TimesOverlap(s.StartTime, s.EndTime, other.StartTime, other.EndTime)
}

// StartHour / EndHour / Duration 返回班次的时刻信息（十进制小时）
// 任一端点非法时三者均为 timeutil.InvalidHour
func (s *Section) TimeInfo() (startHour, endHour, duration float64) {
	if !s.HasTimes() {
		return timeutil.InvalidHour, timeutil.InvalidHour, timeutil.InvalidHour
	}
	sh := timeutil.HourFromClock(s.StartTime)
	eh := timeutil.HourFromClock(s.EndTime)
	if sh < 0 || eh < 0 {
		return timeutil.InvalidHour, timeutil.InvalidHour, timeutil.InvalidHour
	}
	dur := eh - sh
	if dur < 0 {
		dur += 24.0 // 跨午夜
	}
	return sh, eh, dur
}

// String 调试输出
func (s *Section) String() string {
	instructor := s.Instructor
	if instructor == "" {
		instructor = "None"
	}
	return fmt.Sprintf("Section(%s: %s %s-%s, %s)",
		s.SectionNumber, strings.Join(s.MeetingDays, ""), s.StartTime, s.EndTime, instructor)
}

// Package 一门课程的完整班次组合：锚点班次加每种必修类型各一个
type Package []Section

// PackagesConflict 判断两个班次组合之间是否存在任何一对冲突班次
// 先做整包星期掩码粗筛，再逐对精查
func PackagesConflict(pkg1, pkg2 Package) bool {
	if len(pkg1) == 0 || len(pkg2) == 0 {
		return false
	}

	var days1, days2 uint8
	for i := range pkg1 {
		days1 |= pkg1[i].DayBits()
	}
	for i := range pkg2 {
		days2 |= pkg2[i].DayBits()
	}
	if days1&days2 == 0 {
		return false
	}

	for i := range pkg1 {
		for j := range pkg2 {
			if pkg1[i].ConflictsWith(&pkg2[j]) {
				return true
			}
		}
	}
	return false
}
