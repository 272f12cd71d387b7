package service

import (
	"context"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
)

// ── 响应装配测试 ──

func TestPresenter_Render(t *testing.T) {
	catalog := newMockCatalog()
	catalog.ratings["Jane Doe|CSCI 103"] = model.Rating{
		Quality: 4.2, Difficulty: 3.1, WouldTakeAgain: 88,
		CourseSpecificQuality: 4.3, CourseSpecificDifficulty: 3.0,
	}
	presenter := NewPresenter(catalog, zap.NewNop())

	sched := model.Schedule{{
		SpotIdx: 0, ClassCode: "CSCI 103",
		Sections: model.Package{
			model.NewSection("Lecture", []string{"Mon", "Wed"}, "10:00 am", "11:20 am",
				"", 120, 140, `{"Jane Doe"}`, "29905", ""),
		},
	}}
	resp := presenter.Render(context.Background(),
		[]ScoredSchedule{{Schedule: sched, Raw: 30, Score: 8.9}})

	if len(resp.Schedules) != 1 {
		t.Fatalf("期望 1 张课表，实际 %d", len(resp.Schedules))
	}
	out := resp.Schedules[0]
	if out.ID != 1 || out.Score != 8.9 {
		t.Errorf("id/score 装配错误: %+v", out)
	}

	sec := out.Classes[0].Sections[0]
	if sec.Days != "Mon, Wed" {
		t.Errorf("星期串期望 %q，实际 %q", "Mon, Wed", sec.Days)
	}
	if sec.Time != "10:00 am-11:20 am" {
		t.Errorf("时间串期望 %q，实际 %q", "10:00 am-11:20 am", sec.Time)
	}
	if sec.Instructor != "Jane Doe" {
		t.Errorf("讲师名应去掉花括号引号，实际 %q", sec.Instructor)
	}
	if sec.Location != "TBA" {
		t.Errorf("空地点应显示 TBA，实际 %q", sec.Location)
	}
	if sec.SeatsRegistered != 120 || sec.SeatsTotal != 140 {
		t.Errorf("名额装配错误: %d/%d", sec.SeatsRegistered, sec.SeatsTotal)
	}
	if sec.Ratings.Quality != 4.2 || sec.Ratings.CourseQuality != 4.3 {
		t.Errorf("评分明细装配错误: %+v", sec.Ratings)
	}

	// 讲座均分：唯一有评分的讲座
	if math.Abs(out.AvgProfRating-4.2) > 1e-9 || math.Abs(out.AvgDifficulty-3.1) > 1e-9 {
		t.Errorf("讲座均分期望 (4.2, 3.1)，实际 (%v, %v)", out.AvgProfRating, out.AvgDifficulty)
	}
}

func TestPresenter_AvgSkipsNonLectureAndUnrated(t *testing.T) {
	catalog := newMockCatalog()
	catalog.ratings["Jane Doe|X"] = model.Rating{Quality: 4.0, Difficulty: 2.0}
	presenter := NewPresenter(catalog, zap.NewNop())

	sched := model.Schedule{{
		SpotIdx: 0, ClassCode: "X",
		Sections: model.Package{
			lecture("L1", []string{"Mon"}, "10:00 am", "11:00 am", "Jane Doe"),
			lecture("L2", []string{"Wed"}, "10:00 am", "11:00 am", "Nobody Known"), // 无评分
			lab("B1", []string{"Fri"}, "2:00 pm", "4:00 pm"),                      // 非讲座
		},
	}}
	resp := presenter.Render(context.Background(), []ScoredSchedule{{Schedule: sched}})

	out := resp.Schedules[0]
	if math.Abs(out.AvgProfRating-4.0) > 1e-9 {
		t.Errorf("均分只计入有评分的讲座，期望 4.0，实际 %v", out.AvgProfRating)
	}
}

func TestPresenter_RenderText_Empty(t *testing.T) {
	presenter := NewPresenter(newMockCatalog(), zap.NewNop())
	text := presenter.RenderText(presenter.Render(context.Background(), nil))
	if !strings.Contains(text, "没有满足条件的课表") {
		t.Errorf("空结果应提示无课表，实际输出: %q", text)
	}
}
