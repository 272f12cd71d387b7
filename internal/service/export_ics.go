package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
	"github.com/jose-c-campos/usc-scheduler/internal/timeutil"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptySchedule = errors.New("课表为空，无可导出内容")
	ErrExportGenerateFail  = errors.New("生成导出文件失败")
)

// weekdayBits 星期位与 RFC 5545 BYDAY 代码，按 Mon…Sun 位序排列
// （保证事件输出顺序确定）
var weekdayBits = []struct {
	bit     uint8
	weekday time.Weekday
	rrule   string
}{
	{timeutil.BitMon, time.Monday, "MO"},
	{timeutil.BitTue, time.Tuesday, "TU"},
	{timeutil.BitWed, time.Wednesday, "WE"},
	{timeutil.BitThu, time.Thursday, "TH"},
	{timeutil.BitFri, time.Friday, "FR"},
	{timeutil.BitSat, time.Saturday, "SA"},
	{timeutil.BitSun, time.Sunday, "SU"},
}

// ═══════════════════════════════════════════════════════════
// ExportICS — 课表导出为 iCalendar (RFC 5545)
// ═══════════════════════════════════════════════════════════
//
// 每个班次的每个上课日生成一条周重复 VEVENT：
//   - DTSTART 锚定在 anchor 之后该星期的第一次出现
//   - RRULE FREQ=WEEKLY;BYDAY=<code>
//   - 无有效时刻或无上课日的班次跳过（TBA 班次不进日历）

// ExportICS 把课表序列化为 ICS 文本
func ExportICS(sched model.Schedule, anchor time.Time) (string, error) {
	if len(sched) == 0 {
		return "", ErrExportEmptySchedule
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//usc-scheduler//schedule export//EN")

	now := time.Now()
	count := 0
	sched.EachSection(func(classCode string, sec *model.Section) {
		startHour, endHour, _ := sec.TimeInfo()
		if startHour < 0 || sec.DayBits() == 0 {
			return
		}

		for _, wd := range weekdayBits {
			if sec.DayBits()&wd.bit == 0 {
				continue
			}

			day := nextWeekday(anchor, wd.weekday)
			event := cal.AddEvent(uuid.NewString())
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetStartAt(atHour(day, startHour))
			event.SetEndAt(atHour(day, endHour))
			event.SetSummary(fmt.Sprintf("%s %s", classCode, sec.Type))
			if sec.Location != "" && sec.Location != "TBA" {
				event.SetLocation(sec.Location)
			}
			if model.UsableInstructor(sec.Instructor) {
				event.SetDescription("Instructor: " + model.CleanInstructorName(sec.Instructor))
			}
			event.AddRrule("FREQ=WEEKLY;BYDAY=" + wd.rrule)
			count++
		}
	})
	if count == 0 {
		return "", ErrExportEmptySchedule
	}

	return cal.Serialize(), nil
}

// nextWeekday base 当天或之后第一个指定星期的日期（零点）
func nextWeekday(base time.Time, weekday time.Weekday) time.Time {
	day := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
	offset := (int(weekday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// atHour 把十进制小时落到具体日期上；跨午夜的结束时刻顺延到次日
func atHour(day time.Time, hour float64) time.Time {
	if hour >= 24 {
		day = day.AddDate(0, 0, 1)
		hour -= 24
	}
	h := int(hour)
	m := int(math.Round((hour - float64(h)) * 60))
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}
