// Package schedule converts between the flat schedule entries stored per
// report and the slot grid edited in the form.
package schedule

import (
	"errors"
	"fmt"

	"patrol-inspection/internal/storage"
)

const Columns = storage.ValueColumns

const (
	TypeSetup = "SETUP"
	Type2Hrs  = "2HRS"
	Type4Hrs  = "4HRS"
	TypeLast  = "LAST"
)

var (
	TimeTypes    = []string{TypeSetup, Type2Hrs, Type4Hrs, TypeLast}
	DefaultTypes = []string{TypeSetup, Type4Hrs, TypeLast}
)

func ValidTimeType(t string) bool {
	for _, v := range TimeTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Row int

const (
	RowUp Row = iota
	RowDown
)

func (r Row) String() string {
	if r == RowDown {
		return "DOWN"
	}
	return "UP"
}

type Slot struct {
	ID        int             `json:"id"`
	Type      string          `json:"type"`
	SingleRow bool            `json:"singleRow"`
	UpVals    [Columns]string `json:"upVals"`
	DownVals  [Columns]string `json:"downVals"`
	// Date overrides the session date for this slot when set.
	Date string `json:"date,omitempty"`
}

func NewSlot(id int, typ string) Slot {
	return Slot{ID: id, Type: typ, SingleRow: true}
}

func DefaultSlots() []Slot {
	slots := make([]Slot, 0, len(DefaultTypes))
	for i, t := range DefaultTypes {
		slots = append(slots, NewSlot(i+1, t))
	}
	return slots
}

// PhysicalRows is the number of printed table rows the slot takes.
func (s Slot) PhysicalRows() int {
	if s.SingleRow {
		return 1
	}
	return 2
}

// Filled counts non-blank cells that would be saved.
func (s Slot) Filled() int {
	n := countFilled(s.UpVals)
	if !s.SingleRow {
		n += countFilled(s.DownVals)
	}
	return n
}

func countFilled(vals [Columns]string) int {
	n := 0
	for _, v := range vals {
		if v != "" {
			n++
		}
	}
	return n
}

var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrLastSlot        = errors.New("cannot remove the only slot")
	ErrInvalidTimeType = errors.New("invalid time type")
	ErrColumnRange     = fmt.Errorf("column must be within 0..%d", Columns-1)
	ErrSingleRowDown   = errors.New("slot has no DOWN row")
)
