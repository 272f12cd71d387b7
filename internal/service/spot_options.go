package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
	"github.com/jose-c-campos/usc-scheduler/internal/repository"
)

// ════════════════════════════════════════════════════════════
// SpotOptionsBuilder — 把 spot 候选课程物化为班次组合列表
// ════════════════════════════════════════════════════════════
//
// 每个 spot 的每门候选课程展开为若干 Package：
//  1. 班次按类型分组，可选地剔除满员班次
//  2. 锚点组优先取类型名包含 "Lecture" 的第一组，否则取第一非空组
//  3. 对每个锚点班次，其余各组按父班次锁过滤
//     （parent_section_number 为空或等于锚点班次号才可搭配）；
//     任何一组过滤后为空则整个锚点弃用
//  4. 锚点与各组过滤结果做笛卡尔积，逐组进位（里程计顺序）

// SpotOptionsBuilder spot 选项物化器
type SpotOptionsBuilder struct {
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

// NewSpotOptionsBuilder 创建 SpotOptionsBuilder 实例
func NewSpotOptionsBuilder(catalog repository.CatalogRepository, logger *zap.Logger) *SpotOptionsBuilder {
	return &SpotOptionsBuilder{catalog: catalog, logger: logger}
}

// Build 物化全部 spot 的选项列表，并一并返回各课程的必修班次类型集合。
// 无任何班次的课程仅跳过（spot 可能还有其他候选课程）；目录查询错误向上传播。
func (b *SpotOptionsBuilder) Build(ctx context.Context, classSpots [][]string, prefs model.Preferences) (
	[][]model.ScheduleItem, map[string]map[string]struct{}, error) {

	var result [][]model.ScheduleItem
	requiredTypes := make(map[string]map[string]struct{})

	for spotIdx, spot := range classSpots {
		var spotOptions []model.ScheduleItem

		for _, rawCode := range spot {
			code := strings.TrimSpace(rawCode)
			if code == "" {
				continue
			}

			groups, err := b.catalog.SectionGroups(ctx, code)
			if err != nil {
				return nil, nil, err
			}
			if len(groups) == 0 {
				b.logger.Warn("课程在本学期无任何班次，跳过",
					zap.String("class", code), zap.Int("spot", spotIdx))
				continue
			}

			if _, ok := requiredTypes[code]; !ok {
				required, err := b.catalog.RequiredSectionTypes(ctx, code)
				if err != nil {
					return nil, nil, err
				}
				requiredTypes[code] = required
			}

			// 按偏好剔除满员班次
			if prefs.ExcludeFullSections {
				for gi := range groups {
					groups[gi] = lo.Filter(groups[gi], func(s model.Section, _ int) bool {
						return !s.IsFull()
					})
				}
			}
			if lo.EveryBy(groups, func(g []model.Section) bool { return len(g) == 0 }) {
				b.logger.Warn("课程全部班次均满员，跳过", zap.String("class", code))
				continue
			}

			packages := buildPackages(groups)
			for _, pkg := range packages {
				spotOptions = append(spotOptions, model.ScheduleItem{
					SpotIdx:   spotIdx,
					ClassCode: code,
					PkgIdx:    len(spotOptions),
					Sections:  pkg,
				})
			}
		}

		if len(spotOptions) > 0 {
			result = append(result, spotOptions)
		}
	}

	return result, requiredTypes, nil
}

// buildPackages 按锚点展开一门课程的全部有效班次组合
func buildPackages(groups [][]model.Section) []model.Package {
	anchorGroup := chooseAnchorGroup(groups)
	if anchorGroup < 0 {
		return nil
	}

	var packages []model.Package
	for _, anchor := range groups[anchorGroup] {
		partnerLists := make([][]model.Section, 0, len(groups)-1)
		skipAnchor := false

		for gi, group := range groups {
			if gi == anchorGroup {
				continue
			}
			filtered := lo.Filter(group, func(s model.Section, _ int) bool {
				// 父班次锁（宽松式）：未标父班次的可搭任意锚点
				if s.ParentSectionNumber == "" || anchor.SectionNumber == "" {
					return true
				}
				return s.ParentSectionNumber == anchor.SectionNumber
			})
			if len(filtered) == 0 {
				// 该锚点配不出完整组合
				skipAnchor = true
				break
			}
			partnerLists = append(partnerLists, filtered)
		}
		if skipAnchor {
			continue
		}

		if len(partnerLists) == 0 {
			// 课程只开一种班次类型：每个锚点单独成包
			packages = append(packages, model.Package{anchor})
			continue
		}

		// 里程计式笛卡尔积
		idx := make([]int, len(partnerLists))
		for {
			pkg := make(model.Package, 0, 1+len(partnerLists))
			pkg = append(pkg, anchor)
			for k, list := range partnerLists {
				pkg = append(pkg, list[idx[k]])
			}
			packages = append(packages, pkg)

			k := 0
			for ; k < len(idx); k++ {
				idx[k]++
				if idx[k] < len(partnerLists[k]) {
					break
				}
				idx[k] = 0
			}
			if k == len(idx) {
				break
			}
		}
	}

	return packages
}

// chooseAnchorGroup 选锚点组：优先类型名包含 "Lecture" 的第一组，否则第一非空组
func chooseAnchorGroup(groups [][]model.Section) int {
	for gi, group := range groups {
		if len(group) > 0 && strings.Contains(group[0].Type, "Lecture") {
			return gi
		}
	}
	for gi, group := range groups {
		if len(group) > 0 {
			return gi
		}
	}
	return -1
}
