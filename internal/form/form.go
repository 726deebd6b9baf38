// Package form is the data model of the three-step report wizard: the
// header, the item editor and the schedule grid, plus the current step.
package form

import (
	"strings"
	"time"

	"patrol-inspection/internal/constants"
	"patrol-inspection/internal/items"
	"patrol-inspection/internal/schedule"
	"patrol-inspection/internal/storage"
)

type Mode string

const (
	ModeNew  Mode = "new"
	ModeEdit Mode = "edit"
)

type Header struct {
	DocNo         string `json:"doc_no"`
	RevisionNo    string `json:"revision_no"`
	Date          string `json:"date"`
	PartName      string `json:"part_name"`
	PartNumber    string `json:"part_number"`
	OperationName string `json:"operation_name"`
	CustomerName  string `json:"customer_name"`
	PreparedBy    string `json:"prepared_by"`
	ApprovedBy    string `json:"approved_by"`
}

// Missing lists the required header fields that are blank.
func (h Header) Missing() []string {
	var out []string
	if strings.TrimSpace(h.PartName) == "" {
		out = append(out, "part_name")
	}
	if strings.TrimSpace(h.PartNumber) == "" {
		out = append(out, "part_number")
	}
	if strings.TrimSpace(h.OperationName) == "" {
		out = append(out, "operation_name")
	}
	if strings.TrimSpace(h.CustomerName) == "" {
		out = append(out, "customer_name")
	}
	return out
}

func HeaderOf(r *storage.Report) Header {
	return Header{
		DocNo:         r.DocNo,
		RevisionNo:    r.RevisionNo,
		Date:          r.Date,
		PartName:      r.PartName,
		PartNumber:    r.PartNumber,
		OperationName: r.OperationName,
		CustomerName:  r.CustomerName,
		PreparedBy:    r.PreparedBy,
		ApprovedBy:    r.ApprovedBy,
	}
}

type State struct {
	Mode         Mode             `json:"mode"`
	ReportID     int64            `json:"report_id,omitempty"`
	Step         Step             `json:"step"`
	Header       Header           `json:"header"`
	Product      []items.Row      `json:"product"`
	Process      []items.Row      `json:"process"`
	Session      schedule.Session `json:"session"`
	Slots        []schedule.Slot  `json:"slots"`
	ActiveSlotID int              `json:"active_slot_id"`
}

// New is a blank form dated today with the default slots.
func New(now time.Time) *State {
	today := storage.Today(now)
	ed := items.NewEditor()
	slots := schedule.DefaultSlots()

	return &State{
		Mode: ModeNew,
		Step: StepReport,
		Header: Header{
			DocNo:      constants.DefaultDocNo,
			RevisionNo: constants.DefaultRevisionNo,
			Date:       today,
		},
		Product:      ed.Rows(items.Product),
		Process:      ed.Rows(items.Process),
		Session:      schedule.Session{Date: today},
		Slots:        slots,
		ActiveSlotID: slots[0].ID,
	}
}

// FromReport fills the form from a stored report for editing.
func FromReport(r *storage.Report) *State {
	ed := items.FromItems(r.Items)
	slots, first := schedule.Load(r.ScheduleEntries)

	session := schedule.SessionOf(r.ScheduleEntries)
	if session.Date == "" {
		session.Date = r.Date
	}

	return &State{
		Mode:         ModeEdit,
		ReportID:     r.ID,
		Step:         StepReport,
		Header:       HeaderOf(r),
		Product:      ed.Rows(items.Product),
		Process:      ed.Rows(items.Process),
		Session:      session,
		Slots:        slots,
		ActiveSlotID: first,
	}
}

func (st *State) editor() *items.Editor {
	return items.FromRows(st.Product, st.Process)
}

// Grid returns the schedule grid of the form.
func (st *State) Grid() *schedule.Grid {
	return schedule.FromSlots(st.Slots, st.ActiveSlotID)
}

// Columns labels the schedule columns from the filled items.
func (st *State) Columns() []items.Column {
	return st.editor().Columns()
}

// Report builds the payload saved by the orchestrator. Only complete item
// rows are kept.
func (st *State) Report() *storage.Report {
	h := st.Header
	return &storage.Report{
		ID:              st.ReportID,
		DocNo:           h.DocNo,
		RevisionNo:      h.RevisionNo,
		Date:            h.Date,
		PartName:        h.PartName,
		PartNumber:      h.PartNumber,
		OperationName:   h.OperationName,
		CustomerName:    h.CustomerName,
		PreparedBy:      h.PreparedBy,
		ApprovedBy:      h.ApprovedBy,
		Items:           st.editor().Items(),
		ScheduleEntries: st.Grid().Entries(st.Session),
	}
}

// View is what the wizard renders: the state with its derived columns and
// step progress.
type View struct {
	*State
	Columns    []items.Column `json:"columns"`
	Progress   []StepStatus   `json:"progress"`
	ActiveSlot *schedule.Slot `json:"active_slot"`
	PhysRows   int            `json:"physical_rows"`
}

func (st *State) View() View {
	v := View{State: st, Columns: st.Columns(), Progress: st.Progress()}
	g := st.Grid()
	if s, ok := g.Active(); ok {
		v.ActiveSlot = &s
	}
	v.PhysRows = g.PhysicalRows()
	return v
}
