package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jose-c-campos/usc-scheduler/internal/dto"
)

// ═══════════════════════════════════════════════════════════
// ExportXLSX — 排课结果导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 每张课表一个 Sheet（"课表1" / "课表2" …）
//   - 首行：综合分与教授均分
//   - 表头：课程 | 类型 | 星期 | 时间 | 讲师 | 班次号 | 地点 | 名额
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

// ExportXLSX 把排课结果写成 xlsx 文件内容
func ExportXLSX(resp dto.ScheduleListResponse, semester string) (*bytes.Buffer, string, error) {
	if len(resp.Schedules) == 0 {
		return nil, "", ErrExportEmptySchedule
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#990000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"课程", "类型", "星期", "时间", "讲师", "班次号", "地点", "名额"}
	widths := []float64{12, 12, 14, 20, 22, 10, 16, 10}

	for _, sched := range resp.Schedules {
		sheetName := fmt.Sprintf("课表%d", sched.ID)
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, "", ErrExportGenerateFail
		}

		for i, w := range widths {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetColWidth(sheetName, col, col, w)
		}

		// 首行：分数摘要
		f.SetCellValue(sheetName, "A1",
			fmt.Sprintf("综合分 %.2f  教授均分 %.2f  难度均值 %.2f",
				sched.Score, sched.AvgProfRating, sched.AvgDifficulty))
		f.MergeCell(sheetName, "A1", cellRef(len(headers), 1))

		// 表头
		for i, h := range headers {
			f.SetCellValue(sheetName, cellRef(i+1, 2), h)
		}
		f.SetCellStyle(sheetName, "A2", cellRef(len(headers), 2), headerStyle)

		row := 3
		for _, class := range sched.Classes {
			for _, sec := range class.Sections {
				f.SetCellValue(sheetName, cellRef(1, row), class.Code)
				f.SetCellValue(sheetName, cellRef(2, row), sec.Type)
				f.SetCellValue(sheetName, cellRef(3, row), sec.Days)
				f.SetCellValue(sheetName, cellRef(4, row), sec.Time)
				f.SetCellValue(sheetName, cellRef(5, row), sec.Instructor)
				f.SetCellValue(sheetName, cellRef(6, row), sec.SectionNumber)
				f.SetCellValue(sheetName, cellRef(7, row), sec.Location)
				f.SetCellValue(sheetName, cellRef(8, row),
					fmt.Sprintf("%d/%d", sec.SeatsRegistered, sec.SeatsTotal))
				row++
			}
		}
	}

	// 删除默认 Sheet1，激活第一张课表
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("课表1"); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedules_%s.xlsx", semester)
	return buf, filename, nil
}

func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
