package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
)

func setupBuilder() (*SpotOptionsBuilder, *mockCatalog) {
	catalog := newMockCatalog()
	return NewSpotOptionsBuilder(catalog, zap.NewNop()), catalog
}

// ── 基本物化测试 ──

func TestSpotOptionsBuilder_SingleSectionCourse(t *testing.T) {
	builder, catalog := setupBuilder()
	catalog.setCourse("CSCI 103",
		[]model.Section{lecture("29905", []string{"Mon"}, "10:00 am", "11:00 am", "")},
	)

	options, required, err := builder.Build(context.Background(),
		[][]string{{"CSCI 103"}}, model.DefaultPreferences())
	if err != nil {
		t.Fatalf("Build 应成功: %v", err)
	}

	if len(options) != 1 || len(options[0]) != 1 {
		t.Fatalf("单班次课程应恰好产出一个组合，实际 %v", options)
	}
	item := options[0][0]
	if item.ClassCode != "CSCI 103" || item.SpotIdx != 0 || len(item.Sections) != 1 {
		t.Errorf("组合内容错误: %+v", item)
	}
	if _, ok := required["CSCI 103"]["Lecture"]; !ok {
		t.Error("必修类型集合应包含 Lecture")
	}
}

// ── 父班次锁测试 ──

func TestSpotOptionsBuilder_ParentLock(t *testing.T) {
	builder, catalog := setupBuilder()
	catalog.setCourse("CSCI 104",
		[]model.Section{
			discussion("D1", []string{"Fri"}, "1:00 pm", "2:00 pm", "L1"),
			discussion("D2", []string{"Fri"}, "3:00 pm", "4:00 pm", "L2"),
		},
		[]model.Section{
			lecture("L1", []string{"Mon"}, "10:00 am", "11:20 am", ""),
			lecture("L2", []string{"Tue"}, "10:00 am", "11:20 am", ""),
		},
	)

	options, _, err := builder.Build(context.Background(),
		[][]string{{"CSCI 104"}}, model.DefaultPreferences())
	if err != nil {
		t.Fatalf("Build 应成功: %v", err)
	}

	if len(options[0]) != 2 {
		t.Fatalf("父班次锁应只产出 {L1,D1} 与 {L2,D2}，实际 %d 个组合", len(options[0]))
	}
	for _, item := range options[0] {
		var anchorNum, discParent string
		for i := range item.Sections {
			switch item.Sections[i].Type {
			case "Lecture":
				anchorNum = item.Sections[i].SectionNumber
			case "Discussion":
				discParent = item.Sections[i].ParentSectionNumber
			}
		}
		if anchorNum != discParent {
			t.Errorf("讨论课父班次 %q 与锚点 %q 不匹配", discParent, anchorNum)
		}
	}
}

func TestSpotOptionsBuilder_UnlockedPartnerPairsWithAnyAnchor(t *testing.T) {
	builder, catalog := setupBuilder()
	// 讨论课未标父班次：两个锚点都可搭配
	catalog.setCourse("MATH 126",
		[]model.Section{discussion("D1", []string{"Fri"}, "1:00 pm", "2:00 pm", "")},
		[]model.Section{
			lecture("L1", []string{"Mon"}, "10:00 am", "11:20 am", ""),
			lecture("L2", []string{"Tue"}, "10:00 am", "11:20 am", ""),
		},
	)

	options, _, err := builder.Build(context.Background(),
		[][]string{{"MATH 126"}}, model.DefaultPreferences())
	if err != nil {
		t.Fatalf("Build 应成功: %v", err)
	}
	if len(options[0]) != 2 {
		t.Errorf("未加锁的讨论课应与两个锚点各配一次，实际 %d", len(options[0]))
	}
}

// ── 满员过滤测试 ──

func TestSpotOptionsBuilder_AllFullSkipsCourse(t *testing.T) {
	builder, catalog := setupBuilder()
	catalog.setCourse("BISC 120",
		[]model.Section{fullLecture("F1", []string{"Mon"}, "10:00 am", "11:00 am")},
	)
	catalog.setCourse("MATH 126",
		[]model.Section{lecture("M1", []string{"Tue"}, "10:00 am", "11:00 am", "")},
	)

	options, _, err := builder.Build(context.Background(),
		[][]string{{"BISC 120", "MATH 126"}}, model.DefaultPreferences())
	if err != nil {
		t.Fatalf("Build 应成功: %v", err)
	}

	if len(options) != 1 || len(options[0]) != 1 {
		t.Fatalf("满员课程应被跳过，spot 仍有替代课程: %v", options)
	}
	if options[0][0].ClassCode != "MATH 126" {
		t.Errorf("期望 MATH 126，实际 %s", options[0][0].ClassCode)
	}
}

func TestSpotOptionsBuilder_IncludeFullWhenAllowed(t *testing.T) {
	builder, catalog := setupBuilder()
	catalog.setCourse("BISC 120",
		[]model.Section{fullLecture("F1", []string{"Mon"}, "10:00 am", "11:00 am")},
	)

	prefs := model.DefaultPreferences()
	prefs.ExcludeFullSections = false

	options, _, err := builder.Build(context.Background(),
		[][]string{{"BISC 120"}}, prefs)
	if err != nil {
		t.Fatalf("Build 应成功: %v", err)
	}
	if len(options) != 1 || len(options[0]) != 1 {
		t.Errorf("允许满员时应保留组合: %v", options)
	}
}

// ── 错误传播测试 ──

func TestSpotOptionsBuilder_StoreErrorPropagates(t *testing.T) {
	builder, catalog := setupBuilder()
	catalog.sectionErr = errors.New("连接中断")

	_, _, err := builder.Build(context.Background(),
		[][]string{{"CSCI 103"}}, model.DefaultPreferences())
	if err == nil {
		t.Fatal("目录查询错误应向上传播")
	}
}

func TestSpotOptionsBuilder_UnknownCourseSkipped(t *testing.T) {
	builder, catalog := setupBuilder()
	catalog.setCourse("CSCI 170",
		[]model.Section{lecture("C1", []string{"Wed"}, "2:00 pm", "3:20 pm", "")},
	)

	options, _, err := builder.Build(context.Background(),
		[][]string{{"NOPE 999", "CSCI 170"}}, model.DefaultPreferences())
	if err != nil {
		t.Fatalf("无班次课程应跳过而非报错: %v", err)
	}
	if len(options) != 1 || options[0][0].ClassCode != "CSCI 170" {
		t.Errorf("期望仅保留 CSCI 170: %v", options)
	}
}
