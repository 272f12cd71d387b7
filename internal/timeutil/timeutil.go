// Package timeutil 处理课程目录中的 "h:mm am/pm" 时刻字符串与星期掩码。
// 目录数据质量参差（空串、"TBA"、跨午夜班次），所有函数对非法输入
// 返回哨兵值而不是错误，由上层按"无时间信息"处理。
package timeutil

import (
	"strconv"
	"strings"
)

// InvalidHour 非法或未知时刻的哨兵值
const InvalidHour = -1.0

// 星期位：Mon=1 … Sun=64
const (
	BitMon = 1 << iota
	BitTue
	BitWed
	BitThu
	BitFri
	BitSat
	BitSun
)

// dayTokenBits 目录中出现过的星期写法全集（含缩写与全称）
var dayTokenBits = map[string]uint8{
	"Mon": BitMon, "Monday": BitMon,
	"Tue": BitTue, "Tues": BitTue, "Tu": BitTue, "Tuesday": BitTue,
	"Wed": BitWed, "Wednesday": BitWed,
	"Thu": BitThu, "Thur": BitThu, "Thurs": BitThu, "Th": BitThu, "Thursday": BitThu,
	"Fri": BitFri, "Friday": BitFri,
	"Sat": BitSat, "Saturday": BitSat,
	"Sun": BitSun, "Sunday": BitSun,
}

// canonicalDays 位序对应的规范缩写
var canonicalDays = []struct {
	bit  uint8
	name string
}{
	{BitMon, "Mon"}, {BitTue, "Tue"}, {BitWed, "Wed"},
	{BitThu, "Thu"}, {BitFri, "Fri"}, {BitSat, "Sat"}, {BitSun, "Sun"},
}

// HourFromClock 将 "h:mm am" / "h:mm pm" 解析为 [0,24) 区间的十进制小时。
// "12 am" → 0，"12 pm" → 12，"1 pm" → 13。
// 空串、"TBA" 或任何不合语法的输入返回 InvalidHour。
func HourFromClock(clock string) float64 {
	if clock == "" || clock == "TBA" {
		return InvalidHour
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return InvalidHour
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return InvalidHour
	}

	minAMPM := strings.Split(parts[1], " ")
	if len(minAMPM) != 2 {
		return InvalidHour
	}

	minute, err := strconv.Atoi(minAMPM[0])
	if err != nil {
		return InvalidHour
	}

	switch minAMPM[1] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	default:
		return InvalidHour
	}

	return float64(hour) + float64(minute)/60.0
}

// TimesOverlap 判断两个时刻区间是否重叠。
// 任一端点非法则视为不重叠；end < start 视为跨午夜，end 加 24 小时。
func TimesOverlap(start1, end1, start2, end2 string) bool {
	s1 := HourFromClock(start1)
	e1 := HourFromClock(end1)
	s2 := HourFromClock(start2)
	e2 := HourFromClock(end2)

	if s1 < 0 || e1 < 0 || s2 < 0 || e2 < 0 {
		return false
	}

	if e1 < s1 {
		e1 += 24.0
	}
	if e2 < s2 {
		e2 += 24.0
	}

	return s1 < e2 && s2 < e1
}

// MinutesBetween 返回两时刻之间的分钟数，非法输入返回 -1。
// 跨午夜时按次日计算。
func MinutesBetween(start, end string) int {
	sh := HourFromClock(start)
	eh := HourFromClock(end)
	if sh < 0 || eh < 0 {
		return -1
	}
	if eh < sh {
		eh += 24.0
	}
	return int((eh - sh) * 60.0)
}

// DayBits 将星期 token 列表折叠为 7 位掩码。
// token 允许携带空白；未识别的 token 不贡献任何位。
func DayBits(days []string) uint8 {
	var bits uint8
	for _, day := range days {
		if b, ok := dayTokenBits[strings.TrimSpace(day)]; ok {
			bits |= b
		}
	}
	return bits
}

// DaysFromBits 将掩码展开为规范缩写列表（Mon…Sun 顺序）
func DaysFromBits(bits uint8) []string {
	var days []string
	for _, d := range canonicalDays {
		if bits&d.bit != 0 {
			days = append(days, d.name)
		}
	}
	return days
}
