package model

import "testing"

// ── 讲师名处理测试 ──

func TestCleanInstructorName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"Jane Doe"}`, "Jane Doe"},
		{"Jane Doe", "Jane Doe"},
		{"{}", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanInstructorName(c.in); got != c.want {
			t.Errorf("CleanInstructorName(%q) 期望 %q，实际 %q", c.in, c.want, got)
		}
	}
}

func TestCanonicalName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "janedoe"},
		{"O'Brien, M.", "obrienm"},
		{"CSCI 103", "csci103"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CanonicalName(c.in); got != c.want {
			t.Errorf("CanonicalName(%q) 期望 %q，实际 %q", c.in, c.want, got)
		}
	}
}

func TestUsableInstructor(t *testing.T) {
	usable := []string{`{"Jane Doe"}`, "Jane Doe"}
	unusable := []string{"", "TBA", "{}", `{""}`}

	for _, name := range usable {
		if !UsableInstructor(name) {
			t.Errorf("%q 应判定为可用讲师名", name)
		}
	}
	for _, name := range unusable {
		if UsableInstructor(name) {
			t.Errorf("%q 不应判定为可用讲师名", name)
		}
	}
}

func TestRatingIsZero(t *testing.T) {
	if !(Rating{}).IsZero() {
		t.Error("零值评分应判定 IsZero")
	}
	if (Rating{Quality: 4.2}).IsZero() {
		t.Error("有数据的评分不应判定 IsZero")
	}
}
