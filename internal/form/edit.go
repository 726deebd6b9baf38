package form

import (
	"errors"
	"fmt"
	"strings"

	"patrol-inspection/internal/items"
	"patrol-inspection/internal/schedule"
)

type EditOp string

const (
	OpUpdateField EditOp = "update_field"
	OpRemoveRow   EditOp = "remove_row"
	OpAddSlot     EditOp = "add_slot"
	OpRemoveSlot  EditOp = "remove_slot"
	OpSetType     EditOp = "set_type"
	OpToggleRows  EditOp = "toggle_rows"
	OpSetValue    EditOp = "set_value"
	OpSelect      EditOp = "select"
)

var (
	ErrUnknownEdit = errors.New("unknown edit operation")
	ErrUnknownRow  = errors.New("row must be UP or DOWN")
)

// Edit is one change made in the wizard. Item ops use Category, Index,
// Field and Value; slot ops use SlotID, TimeType, Row, Column and Value.
type Edit struct {
	Op       EditOp      `json:"op"`
	Category string      `json:"category,omitempty"`
	Index    int         `json:"index"`
	Field    items.Field `json:"field,omitempty"`
	Value    string      `json:"value"`
	SlotID   int         `json:"slot_id,omitempty"`
	TimeType string      `json:"time_type,omitempty"`
	Row      string      `json:"row,omitempty"`
	Column   int         `json:"column"`
}

// Apply changes the state in place. On error the state is left as it was.
func (st *State) Apply(e Edit) error {
	switch e.Op {
	case OpUpdateField, OpRemoveRow:
		return st.applyItems(e)
	case OpAddSlot, OpRemoveSlot, OpSetType, OpToggleRows, OpSetValue, OpSelect:
		return st.applySlots(e)
	}
	return fmt.Errorf("%w: %q", ErrUnknownEdit, e.Op)
}

func (st *State) applyItems(e Edit) error {
	c, err := items.ParseCategory(e.Category)
	if err != nil {
		return err
	}

	ed := st.editor()
	if e.Op == OpUpdateField {
		err = ed.UpdateField(c, e.Index, e.Field, e.Value)
	} else {
		err = ed.RemoveRow(c, e.Index)
	}
	if err != nil {
		return err
	}

	st.Product = ed.Rows(items.Product)
	st.Process = ed.Rows(items.Process)
	return nil
}

func (st *State) applySlots(e Edit) error {
	// сетка работает на копии, чтобы ошибка не задела состояние
	g := st.Grid()
	g.Slots = append([]schedule.Slot(nil), g.Slots...)

	var err error
	switch e.Op {
	case OpAddSlot:
		_, err = g.AddSlot(e.TimeType)
	case OpRemoveSlot:
		err = g.RemoveSlot(e.SlotID)
	case OpSetType:
		err = g.SetType(e.SlotID, e.TimeType)
	case OpToggleRows:
		err = g.ToggleRows(e.SlotID)
	case OpSetValue:
		var row schedule.Row
		row, err = parseRow(e.Row)
		if err == nil {
			err = g.SetValue(e.SlotID, row, e.Column, e.Value)
		}
	case OpSelect:
		err = g.Select(e.SlotID)
	}
	if err != nil {
		return err
	}

	st.Slots = g.Slots
	st.ActiveSlotID = g.ActiveID
	return nil
}

func parseRow(s string) (schedule.Row, error) {
	switch strings.ToUpper(s) {
	case "", "UP":
		return schedule.RowUp, nil
	case "DOWN":
		return schedule.RowDown, nil
	}
	return schedule.RowUp, fmt.Errorf("%w: %q", ErrUnknownRow, s)
}
