package service

import (
	"context"
	"sync"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
)

// ── Mock CatalogRepository ──

type mockCatalog struct {
	mu       sync.Mutex
	groups   map[string][][]model.Section
	required map[string]map[string]struct{}
	ratings  map[string]model.Rating // "prof|course" → rating

	sectionErr   error
	ratingCalls  int
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		groups:   make(map[string][][]model.Section),
		required: make(map[string]map[string]struct{}),
		ratings:  make(map[string]model.Rating),
	}
}

func (m *mockCatalog) SectionGroups(_ context.Context, classCode string) ([][]model.Section, error) {
	if m.sectionErr != nil {
		return nil, m.sectionErr
	}
	return m.groups[classCode], nil
}

func (m *mockCatalog) RequiredSectionTypes(_ context.Context, classCode string) (map[string]struct{}, error) {
	if r, ok := m.required[classCode]; ok {
		return r, nil
	}
	return map[string]struct{}{"Lecture": {}}, nil
}

func (m *mockCatalog) ProfessorRating(_ context.Context, professorName, courseCode string) (model.Rating, error) {
	m.mu.Lock()
	m.ratingCalls++
	m.mu.Unlock()
	return m.ratings[professorName+"|"+courseCode], nil
}

// setCourse 注册一门课程的班次分组与必修类型
func (m *mockCatalog) setCourse(code string, groups ...[]model.Section) {
	m.groups[code] = groups
	required := make(map[string]struct{})
	for _, g := range groups {
		if len(g) > 0 {
			required[g[0].Type] = struct{}{}
		}
	}
	m.required[code] = required
}

// ── 班次构造辅助 ──

func lecture(number string, days []string, start, end, instructor string) model.Section {
	return model.NewSection("Lecture", days, start, end, "TBA", 0, 30, instructor, number, "")
}

func discussion(number string, days []string, start, end, parent string) model.Section {
	return model.NewSection("Discussion", days, start, end, "TBA", 0, 30, "", number, parent)
}

func lab(number string, days []string, start, end string) model.Section {
	return model.NewSection("Lab", days, start, end, "TBA", 0, 30, "", number, "")
}

func fullLecture(number string, days []string, start, end string) model.Section {
	return model.NewSection("Lecture", days, start, end, "TBA", 30, 30, "", number, "")
}
