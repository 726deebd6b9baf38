// Package items keeps the product and process inspection rows of a form.
package items

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"patrol-inspection/internal/storage"
)

const (
	MaxPerCategory = 10
	MaxColumns     = 2 * MaxPerCategory
	// ProcessBase is the sr_no of the first process item.
	ProcessBase = storage.ProcessSrMin

	tolerancePrefix = "± "
)

type Category int

const (
	Product Category = iota
	Process
)

func (c Category) String() string {
	if c == Process {
		return storage.CategoryProcess
	}
	return storage.CategoryProduct
}

func ParseCategory(s string) (Category, error) {
	switch s {
	case storage.CategoryProduct:
		return Product, nil
	case storage.CategoryProcess:
		return Process, nil
	}
	return Product, fmt.Errorf("unknown category %q", s)
}

type Field string

const (
	FieldName      Field = "name"
	FieldSpec      Field = "spec"
	FieldTolerance Field = "tolerance"
	FieldInst      Field = "inst"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrRowRange     = errors.New("row index out of range")
)

type Row struct {
	Name      string `json:"name"`
	Spec      string `json:"spec"`
	Tolerance string `json:"tolerance"`
	Inst      string `json:"inst"`
}

// Complete reports whether all four fields are filled.
func (r Row) Complete() bool {
	return r.Name != "" && r.Spec != "" && r.Tolerance != "" && r.Inst != ""
}

func (r *Row) set(f Field, v string) error {
	switch f {
	case FieldName:
		r.Name = v
	case FieldSpec:
		r.Spec = v
	case FieldTolerance:
		r.Tolerance = v
	case FieldInst:
		r.Inst = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return nil
}

// Editor holds two bounded lists. Each list always has at least one row; a
// trailing blank row is appended when the last row becomes complete.
type Editor struct {
	rows [2][]Row
}

func NewEditor() *Editor {
	return &Editor{rows: [2][]Row{{{}}, {{}}}}
}

// FromItems splits stored items by sr_no range. Product tolerances lose
// their "± " prefix for editing.
func FromItems(stored []storage.InspectionItem) *Editor {
	sorted := append([]storage.InspectionItem(nil), stored...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SrNo < sorted[j].SrNo })

	var product, process []Row
	for _, it := range sorted {
		row := Row{Name: it.Item, Spec: it.Spec, Tolerance: it.Tolerance, Inst: it.Inst}
		switch {
		case it.IsProduct():
			row.Tolerance = strings.TrimPrefix(row.Tolerance, tolerancePrefix)
			product = append(product, row)
		case it.IsProcess():
			process = append(process, row)
		}
	}
	return FromRows(product, process)
}

// FromRows builds an editor from rows kept by the client, capping each list
// and restoring the trailing blank row.
func FromRows(product, process []Row) *Editor {
	e := &Editor{}
	e.rows[Product] = normalize(product)
	e.rows[Process] = normalize(process)
	return e
}

func normalize(in []Row) []Row {
	out := make([]Row, 0, MaxPerCategory)
	for _, r := range in {
		if len(out) == MaxPerCategory {
			break
		}
		out = append(out, r)
	}
	if len(out) == 0 || (out[len(out)-1].Complete() && len(out) < MaxPerCategory) {
		out = append(out, Row{})
	}
	return out
}

func (e *Editor) Rows(c Category) []Row {
	return append([]Row(nil), e.rows[c]...)
}

// UpdateField sets one field. When the edited row is the last one and is
// now complete, a blank row is appended unless the list is full.
func (e *Editor) UpdateField(c Category, index int, f Field, value string) error {
	rows := e.rows[c]
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("%s row %d: %w", c, index, ErrRowRange)
	}
	if err := rows[index].set(f, value); err != nil {
		return err
	}

	if index == len(rows)-1 && rows[index].Complete() && len(rows) < MaxPerCategory {
		rows = append(rows, Row{})
	}
	e.rows[c] = rows
	return nil
}

// RemoveRow deletes a row; an emptied list is reset to one blank row.
func (e *Editor) RemoveRow(c Category, index int) error {
	rows := e.rows[c]
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("%s row %d: %w", c, index, ErrRowRange)
	}
	rows = append(rows[:index], rows[index+1:]...)
	if len(rows) == 0 {
		rows = []Row{{}}
	}
	e.rows[c] = rows
	return nil
}

// Filled returns the complete rows of a category, the only ones saved.
func (e *Editor) Filled(c Category) []Row {
	out := make([]Row, 0, len(e.rows[c]))
	for _, r := range e.rows[c] {
		if r.Complete() {
			out = append(out, r)
		}
	}
	return out
}

// Items numbers product rows 1..N and process rows from ProcessBase.
func (e *Editor) Items() []storage.InspectionItem {
	product := e.Filled(Product)
	process := e.Filled(Process)

	out := make([]storage.InspectionItem, 0, len(product)+len(process))
	for i, r := range product {
		out = append(out, storage.InspectionItem{
			SrNo:      i + 1,
			Item:      r.Name,
			Spec:      r.Spec,
			Tolerance: withPrefix(r.Tolerance),
			Inst:      r.Inst,
		})
	}
	for i, r := range process {
		out = append(out, storage.InspectionItem{
			SrNo:      ProcessBase + i,
			Item:      r.Name,
			Spec:      r.Spec,
			Tolerance: r.Tolerance,
			Inst:      r.Inst,
		})
	}
	return out
}

func withPrefix(tol string) string {
	if tol == "" || strings.HasPrefix(tol, tolerancePrefix) {
		return tol
	}
	return tolerancePrefix + tol
}

type Column struct {
	Index int    `json:"idx"`
	SrNo  int    `json:"sr_no"`
	Label string `json:"label"`
}

// Columns labels the schedule grid columns: filled product rows then
// filled process rows, at most MaxColumns.
func (e *Editor) Columns() []Column {
	product := e.Filled(Product)
	process := e.Filled(Process)

	cols := make([]Column, 0, MaxColumns)
	for i, r := range product {
		cols = append(cols, Column{Index: len(cols), SrNo: i + 1, Label: fmt.Sprintf("%d. %s", i+1, r.Name)})
	}
	for i, r := range process {
		sr := ProcessBase + i
		cols = append(cols, Column{Index: len(cols), SrNo: sr, Label: fmt.Sprintf("%d. %s", sr, r.Name)})
	}
	if len(cols) > MaxColumns {
		cols = cols[:MaxColumns]
	}
	return cols
}
