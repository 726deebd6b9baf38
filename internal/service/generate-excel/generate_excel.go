package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"patrol-inspection/internal/layout"
	"patrol-inspection/internal/storage"
)

const sheet = "Inspection Report"

type GenerateExcelStorage interface {
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
}

type GenerateExcelService struct {
	storage GenerateExcelStorage
}

func NewGenerateService(storage GenerateExcelStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

// GenerateExcel exports one report: header, item tables and the schedule
// rows as they are printed.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, id int64) ([]byte, error) {
	const op = "service.generate-excel.GenerateExcel"

	rep, err := g.storage.GetReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch report: %w", op, err)
	}

	data, err := Build(rep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

// Build renders rep as an xlsx workbook.
func Build(rep *storage.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}

	// шапка отчета
	f.SetCellValue(sheet, "A1", "SETUP & PATROL INSPECTION REPORT")
	f.MergeCell(sheet, "A1", "H1")
	f.SetCellStyle(sheet, "A1", "H1", titleStyle)

	info := [][2]string{
		{"Doc No", rep.DocNo},
		{"Revision No", rep.RevisionNo},
		{"Date", layout.DisplayDate(rep.Date)},
		{"Part Name", rep.PartName},
		{"Part Number", rep.PartNumber},
		{"Operation", rep.OperationName},
		{"Customer", rep.CustomerName},
		{"Prepared By", rep.PreparedBy},
		{"Approved By", rep.ApprovedBy},
	}
	row := 3
	for _, kv := range info {
		f.SetCellValue(sheet, cellName(1, row), kv[0])
		f.SetCellValue(sheet, cellName(2, row), kv[1])
		f.SetCellStyle(sheet, cellName(1, row), cellName(1, row), headerStyle)
		row++
	}

	// таблица параметров
	row++
	itemHeaders := []string{"Sr No", "Item", "Special Char", "Spec", "Tolerance", "Inst"}
	for i, name := range itemHeaders {
		f.SetCellValue(sheet, cellName(i+1, row), name)
	}
	f.SetCellStyle(sheet, cellName(1, row), cellName(len(itemHeaders), row), headerStyle)
	row++

	for _, it := range rep.Items {
		f.SetCellValue(sheet, cellName(1, row), it.SrNo)
		f.SetCellValue(sheet, cellName(2, row), it.Item)
		f.SetCellValue(sheet, cellName(3, row), it.SpecialChar)
		f.SetCellValue(sheet, cellName(4, row), it.Spec)
		f.SetCellValue(sheet, cellName(5, row), it.Tolerance)
		f.SetCellValue(sheet, cellName(6, row), it.Inst)
		row++
	}

	// расписание замеров
	row++
	labels := layout.ColumnLabels(rep.Items)
	scheduleHeaders := append([]string{"Date", "Operator", "M/C No", "Time", "Row"}, labels...)
	for i, name := range scheduleHeaders {
		f.SetCellValue(sheet, cellName(i+1, row), name)
	}
	f.SetCellStyle(sheet, cellName(1, row), cellName(len(scheduleHeaders), row), headerStyle)
	headerRow := row
	row++

	for _, g := range layout.PrintGroups(rep.ScheduleEntries) {
		for _, pr := range g.Rows {
			f.SetCellValue(sheet, cellName(1, row), g.Date)
			f.SetCellValue(sheet, cellName(2, row), g.Operator)
			f.SetCellValue(sheet, cellName(3, row), g.MachineNo)
			f.SetCellValue(sheet, cellName(4, row), pr.Time)
			f.SetCellValue(sheet, cellName(5, row), rowName(pr.RowOrder))
			for i := range labels {
				f.SetCellValue(sheet, cellName(6+i, row), pr.Values[i])
			}
			row++
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: cellName(1, headerRow+1),
		ActivePane:  "bottomLeft",
	})
	f.SetColWidth(sheet, "A", "F", 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func rowName(order int) string {
	if order == 0 {
		return "UP"
	}
	return "DOWN"
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
