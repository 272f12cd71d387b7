package model

// ScheduleItem 一个 spot 的实例化结果：选定课程的一个班次组合
type ScheduleItem struct {
	SpotIdx   int     `json:"spot_idx"`
	ClassCode string  `json:"class_code"`
	PkgIdx    int     `json:"pkg_idx"`
	Sections  Package `json:"sections"`
}

// Schedule 按 spot 顺序排列的候选课表
type Schedule []ScheduleItem

// HasClass 判断课表中是否已包含某课程
func (s Schedule) HasClass(classCode string) bool {
	for i := range s {
		if s[i].ClassCode == classCode {
			return true
		}
	}
	return false
}

// ConflictsWith 判断候选班次组合与课表中任何已有组合是否冲突
func (s Schedule) ConflictsWith(pkg Package) bool {
	for i := range s {
		if PackagesConflict(s[i].Sections, pkg) {
			return true
		}
	}
	return false
}

// Extend 复制出追加了一项的新课表（原课表保持不变，供兄弟分支复用）
func (s Schedule) Extend(item ScheduleItem) Schedule {
	next := make(Schedule, len(s), len(s)+1)
	copy(next, s)
	return append(next, item)
}

// DayBitsUsed 课表全部班次的星期掩码并集
func (s Schedule) DayBitsUsed() uint8 {
	var bits uint8
	for i := range s {
		for j := range s[i].Sections {
			bits |= s[i].Sections[j].DayBits()
		}
	}
	return bits
}

// EachSection 依次回调课表中的每个班次及其课程码
func (s Schedule) EachSection(fn func(classCode string, sec *Section)) {
	for i := range s {
		for j := range s[i].Sections {
			fn(s[i].ClassCode, &s[i].Sections[j])
		}
	}
}

// SameSelection 判断两个课表是否选择了完全相同的班次组合
func (s Schedule) SameSelection(other Schedule) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].ClassCode != other[i].ClassCode || s[i].PkgIdx != other[i].PkgIdx {
			return false
		}
	}
	return true
}
