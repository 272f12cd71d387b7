package timeutil

import (
	"math"
	"testing"
)

// ── HourFromClock 测试 ──

func TestHourFromClock_Basic(t *testing.T) {
	cases := []struct {
		clock string
		want  float64
	}{
		{"10:00 am", 10.0},
		{"10:30 am", 10.5},
		{"1:00 pm", 13.0},
		{"12:00 pm", 12.0}, // 正午
		{"12:00 am", 0.0},  // 午夜
		{"11:45 pm", 23.75},
		{"9:20 am", 9.0 + 20.0/60.0},
	}
	for _, c := range cases {
		got := HourFromClock(c.clock)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("HourFromClock(%q) 期望 %v，实际 %v", c.clock, c.want, got)
		}
	}
}

func TestHourFromClock_Invalid(t *testing.T) {
	for _, clock := range []string{"", "TBA", "10:00", "10:00am", "10:00 xm", "abc", "10:xx am", "x:00 am"} {
		if got := HourFromClock(clock); got != InvalidHour {
			t.Errorf("HourFromClock(%q) 应返回 InvalidHour，实际 %v", clock, got)
		}
	}
}

// ── TimesOverlap 测试 ──

func TestTimesOverlap(t *testing.T) {
	cases := []struct {
		name                   string
		s1, e1, s2, e2         string
		want                   bool
	}{
		{"部分重叠", "10:00 am", "11:20 am", "11:00 am", "12:00 pm", true},
		{"完全包含", "9:00 am", "5:00 pm", "10:00 am", "11:00 am", true},
		{"首尾相接不算重叠", "10:00 am", "11:00 am", "11:00 am", "12:00 pm", false},
		{"完全分离", "8:00 am", "9:00 am", "2:00 pm", "3:00 pm", false},
		{"非法时刻不冲突", "TBA", "11:00 am", "10:00 am", "12:00 pm", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := TimesOverlap(c.s1, c.e1, c.s2, c.e2); got != c.want {
				t.Errorf("期望 %v，实际 %v", c.want, got)
			}
		})
	}
}

func TestTimesOverlap_Overnight(t *testing.T) {
	// 跨午夜班次（10pm-1am）与次日凌晨前的晚班重叠
	if !TimesOverlap("10:00 pm", "1:00 am", "11:00 pm", "11:30 pm") {
		t.Error("跨午夜区间应与当晚区间重叠")
	}
	if TimesOverlap("10:00 pm", "1:00 am", "8:00 am", "9:00 am") {
		t.Error("跨午夜区间不应与次日早晨重叠")
	}
}

// ── MinutesBetween 测试 ──

func TestMinutesBetween(t *testing.T) {
	if got := MinutesBetween("10:00 am", "11:20 am"); got != 80 {
		t.Errorf("期望 80 分钟，实际 %d", got)
	}
	if got := MinutesBetween("11:00 pm", "1:00 am"); got != 120 {
		t.Errorf("跨午夜期望 120 分钟，实际 %d", got)
	}
	if got := MinutesBetween("TBA", "11:00 am"); got != -1 {
		t.Errorf("非法时刻期望 -1，实际 %d", got)
	}
}

// ── DayBits 测试 ──

func TestDayBits_AllTokenForms(t *testing.T) {
	cases := []struct {
		days []string
		want uint8
	}{
		{[]string{"Mon"}, BitMon},
		{[]string{"Monday"}, BitMon},
		{[]string{"Tu", "Tues", "Tuesday"}, BitTue},
		{[]string{"Th", "Thur", "Thurs", "Thursday"}, BitThu},
		{[]string{"Mon", "Wed", "Fri"}, BitMon | BitWed | BitFri},
		{[]string{" Sat ", "Sun"}, BitSat | BitSun},
		{[]string{"Xyz"}, 0},
		{nil, 0},
	}
	for _, c := range cases {
		if got := DayBits(c.days); got != c.want {
			t.Errorf("DayBits(%v) 期望 %b，实际 %b", c.days, c.want, got)
		}
	}
}

func TestDayBits_RoundTrip(t *testing.T) {
	days := []string{"Mon", "Wed", "Fri"}
	got := DaysFromBits(DayBits(days))
	if len(got) != 3 || got[0] != "Mon" || got[1] != "Wed" || got[2] != "Fri" {
		t.Errorf("规范缩写应能往返，实际 %v", got)
	}
}
