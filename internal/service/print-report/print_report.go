// Package printreport draws the one-page A4 landscape inspection report.
package printreport

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"patrol-inspection/internal/items"
	"patrol-inspection/internal/layout"
	"patrol-inspection/internal/storage"
)

const (
	pageW  = 297.0
	pageH  = 210.0
	margin = 6.0

	headerPx = 67.0
	fleetPx  = 60.0
	footerPx = 40.0
	gapPx    = 10.0

	font = "Arial"
)

var inspectionCols = []struct {
	title string
	share float64
}{
	{"SR", 0.06}, {"ITEM", 0.30}, {"SPL. CHAR", 0.12}, {"SPEC", 0.18}, {"TOL", 0.16}, {"INST", 0.18},
}

type Renderer struct {
	budget layout.Budget
}

func New(b layout.Budget) *Renderer {
	return &Renderer{budget: b}
}

type page struct {
	pdf    *gofpdf.Fpdf
	budget layout.Budget
	tr     func(string) string
	scale  float64 // mm per layout pixel
	width  float64
	y      float64
}

func (p *page) px(v float64) float64 { return v * p.scale }

func (p *page) cell(x, y, w, h float64, text, align string, fill bool) {
	p.pdf.SetXY(x, y)
	p.pdf.CellFormat(w, h, p.tr(text), "1", 0, align, fill, 0, "")
}

// Render writes the PDF of rep to w and returns the layout it used.
func (r *Renderer) Render(w io.Writer, rep *storage.Report) (layout.Layout, error) {
	const op = "service.print-report.Render"

	lay, groups := layout.ForReport(r.budget, rep)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("Inspection report %d", rep.ID), true)
	pdf.AddPage()

	p := &page{
		pdf:    pdf,
		budget: r.budget,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		scale:  (pageH - 2*margin) / r.budget.Page,
		width:  pageW - 2*margin,
		y:      margin,
	}

	p.header(rep)
	p.fleet(rep)
	p.inspection(rep.Items, lay)
	p.schedule(rep.Items, groups, lay)
	p.footer(rep)

	if err := pdf.Output(w); err != nil {
		return lay, fmt.Errorf("%s: %w", op, err)
	}

	return lay, nil
}

func (p *page) header(rep *storage.Report) {
	h := p.px(headerPx)
	side := p.width * 0.2

	p.pdf.SetFillColor(240, 240, 240)
	p.pdf.SetFont(font, "B", 14)
	p.cell(margin, p.y, p.width-side, h, "SETUP & PATROL INSPECTION REPORT", "C", true)

	p.pdf.SetFont(font, "", 8)
	x := margin + p.width - side
	row := h / 3
	p.cell(x, p.y, side, row, "DOC NO: "+rep.DocNo, "L", false)
	p.cell(x, p.y+row, side, row, "REV NO: "+rep.RevisionNo, "L", false)
	p.cell(x, p.y+2*row, side, row, "DATE: "+layout.DisplayDate(rep.Date), "L", false)

	p.y += h
}

func (p *page) fleet(rep *storage.Report) {
	h := p.px(fleetPx) / 2
	w := p.width / 4

	pairs := [][2]string{
		{"PART NAME", rep.PartName},
		{"PART NUMBER", rep.PartNumber},
		{"OPERATION", rep.OperationName},
		{"CUSTOMER", rep.CustomerName},
	}

	p.pdf.SetFillColor(245, 245, 245)
	for i, kv := range pairs {
		x := margin + float64(i)*w
		p.pdf.SetFont(font, "B", 7)
		p.cell(x, p.y, w, h, kv[0], "C", true)
		p.pdf.SetFont(font, "", 9)
		p.cell(x, p.y+h, w, h, kv[1], "C", false)
	}

	p.y += 2*h + p.px(gapPx)/2
}

// inspection draws product items on the left and process items on the right.
func (p *page) inspection(list []storage.InspectionItem, lay layout.Layout) {
	half := p.width / 2
	head := p.px(p.budget.InspectionHead)
	rowH := p.px(lay.InspectionRowHeight)

	bySr := make(map[int]storage.InspectionItem, len(list))
	for _, it := range list {
		bySr[it.SrNo] = it
	}

	for side, base := range []int{1, items.ProcessBase} {
		x0 := margin + float64(side)*half

		p.pdf.SetFont(font, "B", 7)
		p.pdf.SetFillColor(230, 230, 230)
		x := x0
		for _, c := range inspectionCols {
			title := c.title
			if c.title == "ITEM" {
				title = "PRODUCT"
				if side == 1 {
					title = "PROCESS"
				}
			}
			p.cell(x, p.y, half*c.share, head, title, "C", true)
			x += half * c.share
		}

		p.pdf.SetFont(font, "", 7)
		for i := 0; i < p.budget.InspectionRows; i++ {
			sr := base + i
			it := bySr[sr]
			values := []string{fmt.Sprint(sr), it.Item, it.SpecialChar, it.Spec, it.Tolerance, it.Inst}
			x := x0
			for j, c := range inspectionCols {
				align := "L"
				if j == 0 {
					align = "C"
				}
				p.cell(x, p.y+head+float64(i)*rowH, half*c.share, rowH, values[j], align, false)
				x += half * c.share
			}
		}
	}

	p.y += p.px(lay.InspectionHeight)
}

// schedule draws the grouped print rows: date, operator and machine span a
// whole group, the time label spans an UP/DOWN pair.
func (p *page) schedule(list []storage.InspectionItem, groups []layout.Group, lay layout.Layout) {
	fixedW := p.width * (100 - p.budget.DataColumnShare) / 100
	infoW := fixedW / 4
	colW := p.width * lay.ColumnWidthPct / 100
	head := p.px(p.budget.ScheduleHead)
	rowH := p.px(p.budget.ScheduleRow)

	labels := layout.ColumnLabels(list)

	p.pdf.SetFont(font, "B", 6)
	p.pdf.SetFillColor(230, 230, 230)
	for i, title := range []string{"DATE", "OPERATOR", "M/C NO", "TIME"} {
		p.cell(margin+float64(i)*infoW, p.y, infoW, head, title, "C", true)
	}
	x := margin + fixedW
	for i := 0; i < lay.Columns; i++ {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		p.cell(x, p.y, colW, head, label, "C", true)
		x += colW
	}
	if lay.Columns == 0 {
		p.cell(x, p.y, p.width-fixedW, head, "", "C", true)
	}

	y := p.y + head
	p.pdf.SetFont(font, "", 7)
	for _, g := range groups {
		span := float64(len(g.Rows)) * rowH
		p.cell(margin, y, infoW, span, g.Date, "C", false)
		p.cell(margin+infoW, y, infoW, span, g.Operator, "C", false)
		p.cell(margin+2*infoW, y, infoW, span, g.MachineNo, "C", false)

		for _, row := range g.Rows {
			if row.TimeSpan > 0 {
				p.cell(margin+3*infoW, y, infoW, float64(row.TimeSpan)*rowH, row.Time, "C", false)
			}
			x := margin + fixedW
			for i := 0; i < lay.Columns; i++ {
				p.cell(x, y, colW, rowH, row.Values[i], "C", false)
				x += colW
			}
			if lay.Columns == 0 {
				p.cell(x, y, p.width-fixedW, rowH, "", "C", false)
			}
			y += rowH
		}
	}

	p.y = y + p.px(gapPx)/2
}

func (p *page) footer(rep *storage.Report) {
	h := p.px(footerPx)
	y := pageH - margin - h
	if p.y > y {
		y = p.y
	}
	w := p.width / 2

	p.pdf.SetFont(font, "", 9)
	p.cell(margin, y, w, h, "PREPARED BY: "+rep.PreparedBy, "L", false)
	p.cell(margin+w, y, w, h, "APPROVED BY: "+rep.ApprovedBy, "L", false)
}
