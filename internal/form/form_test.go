package form

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patrol-inspection/internal/items"
	"patrol-inspection/internal/storage"
)

func filledHeader() Header {
	return Header{
		Date:          "2026-04-09",
		PartName:      "BRACKET",
		PartNumber:    "68P00-S310050",
		OperationName: "BLANKING",
		CustomerName:  "FIG",
	}
}

func TestNew_Defaults(t *testing.T) {
	st := New(time.Date(2026, 4, 9, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, ModeNew, st.Mode)
	assert.Equal(t, StepReport, st.Step)
	assert.Equal(t, "KGTL-QCL-01", st.Header.DocNo)
	assert.Equal(t, "01", st.Header.RevisionNo)
	assert.Equal(t, "2026-04-09", st.Header.Date)
	assert.Equal(t, "2026-04-09", st.Session.Date)
	assert.Len(t, st.Product, 1)
	assert.Len(t, st.Process, 1)
	require.Len(t, st.Slots, 3)
	assert.Equal(t, 1, st.ActiveSlotID)
}

func TestAdvance_GatesEachStep(t *testing.T) {
	st := New(time.Now())

	err := st.Advance()
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StepReport, se.Step)
	assert.Contains(t, se.Reason, "part_name")
	assert.Equal(t, StepReport, st.Step)

	st.Header = filledHeader()
	require.NoError(t, st.Advance())
	assert.Equal(t, StepInspection, st.Step)

	st.Product = []items.Row{{Name: "WIDTH", Spec: "25"}}
	require.Error(t, st.Advance())

	st.Product = []items.Row{{Name: "WIDTH", Spec: "25", Tolerance: "0.1", Inst: "VERNIER"}}
	require.NoError(t, st.Advance())
	assert.Equal(t, StepSchedule, st.Step)

	assert.ErrorIs(t, st.Advance(), ErrLastStep)
}

func TestDone_Schedule(t *testing.T) {
	st := New(time.Now())
	st.Session.Date = ""

	err := st.Done(StepSchedule)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date, operator, machine_no")

	st.Session = scheduleSession()
	assert.NoError(t, st.Done(StepSchedule))

	st.Slots = nil
	assert.Error(t, st.Done(StepSchedule))
}

func TestBack(t *testing.T) {
	st := New(time.Now())
	assert.ErrorIs(t, st.Back(), ErrFirstStep)

	st.Step = StepSchedule
	require.NoError(t, st.Back())
	assert.Equal(t, StepInspection, st.Step)
}

func TestReport_KeepsOnlyCompleteRows(t *testing.T) {
	st := New(time.Now())
	st.Header = filledHeader()
	st.Session = scheduleSession()
	st.Product = []items.Row{
		{Name: "WIDTH", Spec: "25", Tolerance: "0.1", Inst: "VERNIER"},
		{Name: "HALF"},
	}
	st.Process = []items.Row{{Name: "SHUT HEIGHT", Spec: "300", Tolerance: "MIN", Inst: "DIGITAL"}}

	r := st.Report()

	require.Len(t, r.Items, 2)
	assert.Equal(t, 1, r.Items[0].SrNo)
	assert.Equal(t, "± 0.1", r.Items[0].Tolerance)
	assert.Equal(t, 11, r.Items[1].SrNo)
	assert.Equal(t, "MIN", r.Items[1].Tolerance)

	require.Len(t, r.ScheduleEntries, 3)
	assert.Equal(t, "ALEX", r.ScheduleEntries[0].Operator)
	assert.Equal(t, "SETUP", r.ScheduleEntries[0].TimeType)
}

func TestFromReport_RoundTrip(t *testing.T) {
	st := New(time.Now())
	st.Header = filledHeader()
	st.Session = scheduleSession()
	st.Product = []items.Row{{Name: "WIDTH", Spec: "25", Tolerance: "0.1", Inst: "VERNIER"}}
	st.Slots[1].SingleRow = false
	st.Slots[1].DownVals[0] = "25.02"

	r := st.Report()
	r.ID = 42

	back := FromReport(r)
	assert.Equal(t, ModeEdit, back.Mode)
	assert.Equal(t, int64(42), back.ReportID)
	assert.Equal(t, st.Header, back.Header)
	assert.Equal(t, st.Session, back.Session)
	assert.Equal(t, "0.1", back.Product[0].Tolerance)
	require.Len(t, back.Slots, 3)
	assert.False(t, back.Slots[1].SingleRow)
	assert.Equal(t, "25.02", back.Slots[1].DownVals[0])
}

func TestFromReport_SessionFallsBackToReportDate(t *testing.T) {
	st := FromReport(&storage.Report{ID: 1, Date: "2026-02-02"})
	assert.Equal(t, "2026-02-02", st.Session.Date)
	assert.Len(t, st.Slots, 3)
}

func TestView_JSON(t *testing.T) {
	st := New(time.Now())
	st.Header = filledHeader()

	data, err := json.Marshal(st.View())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "report", got["step"])
	assert.Equal(t, "new", got["mode"])
	assert.Contains(t, got, "columns")

	progress := got["progress"].([]any)
	require.Len(t, progress, 3)
	assert.Equal(t, true, progress[0].(map[string]any)["done"])
	assert.Equal(t, false, progress[1].(map[string]any)["done"])
}

func TestStep_UnmarshalRejectsUnknown(t *testing.T) {
	var st State
	err := json.Unmarshal([]byte(`{"step":"review"}`), &st)
	assert.ErrorIs(t, err, ErrUnknownStep)
}
