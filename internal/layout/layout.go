// Package layout sizes the one-page print view of a report.
package layout

import (
	"fmt"
	"math"
	"sort"

	"patrol-inspection/internal/items"
	"patrol-inspection/internal/storage"
)

// Budget is measured in CSS pixels of an A4 landscape page with 6mm margins.
type Budget struct {
	Page            float64 `json:"page"`
	Chrome          float64 `json:"chrome"` // header, fleet info, footer and gaps
	ScheduleHead    float64 `json:"schedule_head"`
	ScheduleRow     float64 `json:"schedule_row"`
	InspectionHead  float64 `json:"inspection_head"`
	InspectionRows  int     `json:"inspection_rows"`
	MinInspRow      float64 `json:"min_inspection_row"`
	DataColumnShare float64 `json:"data_column_share"` // percent of table width
}

var A4Landscape = Budget{
	Page:            749,
	Chrome:          67 + 60 + 40 + 10,
	ScheduleHead:    22,
	ScheduleRow:     26,
	InspectionHead:  26,
	InspectionRows:  10,
	MinInspRow:      18,
	DataColumnShare: 75,
}

const epsilon = 1e-6

func (b Budget) Usable() float64 {
	return b.Page - b.Chrome
}

type Layout struct {
	ScheduleRows        int     `json:"schedule_rows"`
	ScheduleHeight      float64 `json:"schedule_height"`
	InspectionRowHeight float64 `json:"inspection_row_height"`
	InspectionHeight    float64 `json:"inspection_height"`
	Columns             int     `json:"columns"`
	ColumnWidthPct      float64 `json:"column_width_pct"`
	Overflow            bool    `json:"overflow"`
}

// Compute gives schedule rows a fixed height and spreads what is left over
// the inspection rows, never below the minimum row height.
func Compute(b Budget, productCount, processCount, scheduleRows int) Layout {
	schedH := b.ScheduleHead + float64(scheduleRows)*b.ScheduleRow
	available := b.Usable() - schedH - b.InspectionHead
	rowH := math.Max(b.MinInspRow, available/float64(b.InspectionRows))
	inspH := b.InspectionHead + float64(b.InspectionRows)*rowH

	cols := ColumnCount(productCount, processCount)

	return Layout{
		ScheduleRows:        scheduleRows,
		ScheduleHeight:      schedH,
		InspectionRowHeight: rowH,
		InspectionHeight:    inspH,
		Columns:             cols,
		ColumnWidthPct:      ColumnWidthPct(b, cols),
		Overflow:            schedH+inspH > b.Usable()+epsilon,
	}
}

// ColumnCount is the number of schedule data columns, capped at 20.
func ColumnCount(productCount, processCount int) int {
	n := productCount + processCount
	if n > items.MaxColumns {
		return items.MaxColumns
	}
	if n < 0 {
		return 0
	}
	return n
}

func ColumnWidthPct(b Budget, columns int) float64 {
	return b.DataColumnShare / float64(max(columns, 1))
}

// CountNamed counts product and process items with a non-blank name.
func CountNamed(list []storage.InspectionItem) (product, process int) {
	for _, it := range list {
		if it.Item == "" {
			continue
		}
		switch {
		case it.IsProduct():
			product++
		case it.IsProcess():
			process++
		}
	}
	return product, process
}

// ColumnLabels names the schedule columns "<sr_no>. <item>": named product
// items, then named process items, capped like ColumnCount.
func ColumnLabels(list []storage.InspectionItem) []string {
	sorted := append([]storage.InspectionItem(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SrNo < sorted[j].SrNo })

	out := make([]string, 0, items.MaxColumns)
	for _, it := range sorted {
		if it.Item == "" || !(it.IsProduct() || it.IsProcess()) {
			continue
		}
		if len(out) == items.MaxColumns {
			break
		}
		out = append(out, fmt.Sprintf("%d. %s", it.SrNo, it.Item))
	}
	return out
}

// ForReport lays out a stored report using its print rows.
func ForReport(b Budget, r *storage.Report) (Layout, []Group) {
	groups := PrintGroups(r.ScheduleEntries)
	rows := 0
	for _, g := range groups {
		rows += len(g.Rows)
	}
	product, process := CountNamed(r.Items)
	return Compute(b, product, process, rows), groups
}
