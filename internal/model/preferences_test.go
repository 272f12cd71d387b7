package model

import "testing"

// ── ParsePreferences 测试 ──

func TestParsePreferences_Full(t *testing.T) {
	prefs := ParsePreferences("morning|Fri,Mon|shorter|1|0|1")

	if prefs.TimeOfDay != TimeOfDayMorning {
		t.Errorf("期望 morning，实际 %v", prefs.TimeOfDay)
	}
	if len(prefs.DaysOff) != 2 || prefs.DaysOff[0] != "Fri" || prefs.DaysOff[1] != "Mon" {
		t.Errorf("休息日解析错误: %v", prefs.DaysOff)
	}
	if prefs.LectureLength != LectureLengthShorter {
		t.Errorf("期望 shorter，实际 %v", prefs.LectureLength)
	}
	if !prefs.AvoidLabs || prefs.AvoidDiscussions {
		t.Error("avoid 标志解析错误")
	}
	if !prefs.ExcludeFullSections {
		t.Error("期望排除满员班次")
	}
}

func TestParsePreferences_Empty(t *testing.T) {
	prefs := ParsePreferences("")

	if prefs.TimeOfDay != TimeOfDayNone || prefs.LectureLength != LectureLengthNone {
		t.Error("空串应返回无偏好")
	}
	if len(prefs.DaysOff) != 0 {
		t.Errorf("空串不应有休息日: %v", prefs.DaysOff)
	}
	// 缺失的第 6 个字段保留默认值：排除满员班次
	if !prefs.ExcludeFullSections {
		t.Error("缺省时应排除满员班次")
	}
}

func TestParsePreferences_ExplicitIncludeFull(t *testing.T) {
	prefs := ParsePreferences("|||||0")
	if prefs.ExcludeFullSections {
		t.Error("显式 0 应允许满员班次")
	}
}

func TestParsePreferences_MalformedTokens(t *testing.T) {
	prefs := ParsePreferences("midnight|none|huge|x|y")
	if prefs.TimeOfDay != TimeOfDayNone || prefs.LectureLength != LectureLengthNone {
		t.Error("无法识别的取值应退回默认值")
	}
	if prefs.AvoidLabs || prefs.AvoidDiscussions {
		t.Error("非 1 取值不应开启 avoid")
	}
}

// ── ParseClassSpots 测试 ──

func TestParseClassSpots(t *testing.T) {
	spots := ParseClassSpots("CSCI 103,CSCI 104 | WRIT 150 | NONE | CSCI 170")

	if len(spots) != 4 {
		t.Fatalf("期望 4 个 spot，实际 %d", len(spots))
	}
	if len(spots[0]) != 2 || spots[0][0] != "CSCI 103" || spots[0][1] != "CSCI 104" {
		t.Errorf("spot 0 解析错误: %v", spots[0])
	}
	if len(spots[1]) != 1 || spots[1][0] != "WRIT 150" {
		t.Errorf("spot 1 解析错误: %v", spots[1])
	}
	if len(spots[2]) != 0 {
		t.Errorf("NONE 应为空 spot: %v", spots[2])
	}
	if len(spots[3]) != 1 || spots[3][0] != "CSCI 170" {
		t.Errorf("spot 3 解析错误: %v", spots[3])
	}
}

func TestParseClassSpots_Empty(t *testing.T) {
	if spots := ParseClassSpots(""); len(spots) != 0 {
		t.Errorf("空串应返回空列表: %v", spots)
	}
}

// ── InZone 测试 ──

func TestTimeOfDayInZone(t *testing.T) {
	cases := []struct {
		zone TimeOfDay
		hour float64
		want bool
	}{
		{TimeOfDayMorning, 8.0, true},
		{TimeOfDayMorning, 11.5, false}, // 右开
		{TimeOfDayAfternoon, 11.5, true},
		{TimeOfDayAfternoon, 16.0, false},
		{TimeOfDayEvening, 16.0, true},
		{TimeOfDayEvening, 21.0, true}, // 右闭
		{TimeOfDayEvening, 21.5, false},
		{TimeOfDayNone, 10.0, false},
	}
	for _, c := range cases {
		if got := c.zone.InZone(c.hour); got != c.want {
			t.Errorf("InZone(%v, %v) 期望 %v，实际 %v", c.zone, c.hour, c.want, got)
		}
	}
}
