package schedule

import (
	"fmt"

	"patrol-inspection/internal/storage"
)

// Grid is the editable slot list of one form, with the selected slot.
type Grid struct {
	Slots    []Slot `json:"slots"`
	NextID   int    `json:"next_id"`
	ActiveID int    `json:"active_id"`
}

func NewGrid(entries []storage.ScheduleEntry) *Grid {
	slots, first := Load(entries)
	return FromSlots(slots, first)
}

// FromSlots rebuilds a grid from slots kept by the client.
func FromSlots(slots []Slot, activeID int) *Grid {
	if len(slots) == 0 {
		slots = DefaultSlots()
		activeID = slots[0].ID
	}
	next := 1
	for _, s := range slots {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return &Grid{Slots: slots, NextID: next, ActiveID: activeID}
}

func (g *Grid) index(id int) int {
	for i, s := range g.Slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Active returns the selected slot.
func (g *Grid) Active() (Slot, bool) {
	i := g.index(g.ActiveID)
	if i < 0 {
		return Slot{}, false
	}
	return g.Slots[i], true
}

func (g *Grid) Select(id int) error {
	if g.index(id) < 0 {
		return fmt.Errorf("select %d: %w", id, ErrSlotNotFound)
	}
	g.ActiveID = id
	return nil
}

// AddSlot inserts a SETUP slot after the last SETUP slot and appends any
// other type. The new slot becomes active.
func (g *Grid) AddSlot(typ string) (int, error) {
	if !ValidTimeType(typ) {
		return 0, fmt.Errorf("add slot %q: %w", typ, ErrInvalidTimeType)
	}

	id := g.NextID
	slot := NewSlot(id, typ)

	if typ == TypeSetup {
		at := 0
		for i, s := range g.Slots {
			if s.Type == TypeSetup {
				at = i + 1
			}
		}
		g.Slots = append(g.Slots, Slot{})
		copy(g.Slots[at+1:], g.Slots[at:])
		g.Slots[at] = slot
	} else {
		g.Slots = append(g.Slots, slot)
	}

	g.NextID++
	g.ActiveID = id

	return id, nil
}

func (g *Grid) RemoveSlot(id int) error {
	i := g.index(id)
	if i < 0 {
		return fmt.Errorf("remove %d: %w", id, ErrSlotNotFound)
	}
	if len(g.Slots) == 1 {
		return ErrLastSlot
	}

	g.Slots = append(g.Slots[:i], g.Slots[i+1:]...)
	if g.ActiveID == id {
		g.ActiveID = 0
	}
	return nil
}

func (g *Grid) SetType(id int, typ string) error {
	if !ValidTimeType(typ) {
		return fmt.Errorf("set type %q: %w", typ, ErrInvalidTimeType)
	}
	i := g.index(id)
	if i < 0 {
		return fmt.Errorf("set type on %d: %w", id, ErrSlotNotFound)
	}
	g.Slots[i].Type = typ
	return nil
}

// ToggleRows switches a slot between single and UP/DOWN rows. DOWN values
// are kept while hidden; they are only saved for two-row slots.
func (g *Grid) ToggleRows(id int) error {
	i := g.index(id)
	if i < 0 {
		return fmt.Errorf("toggle %d: %w", id, ErrSlotNotFound)
	}
	g.Slots[i].SingleRow = !g.Slots[i].SingleRow
	return nil
}

// SetValue writes one cell. An empty value clears it.
func (g *Grid) SetValue(id int, row Row, col int, val string) error {
	if col < 0 || col >= Columns {
		return fmt.Errorf("set value col %d: %w", col, ErrColumnRange)
	}
	i := g.index(id)
	if i < 0 {
		return fmt.Errorf("set value on %d: %w", id, ErrSlotNotFound)
	}

	if row == RowDown {
		if g.Slots[i].SingleRow {
			return fmt.Errorf("set value on %d: %w", id, ErrSingleRowDown)
		}
		g.Slots[i].DownVals[col] = val
		return nil
	}
	g.Slots[i].UpVals[col] = val
	return nil
}

// PhysicalRows sums printed rows over all slots.
func (g *Grid) PhysicalRows() int {
	return PhysicalRows(g.Slots)
}

func PhysicalRows(slots []Slot) int {
	n := 0
	for _, s := range slots {
		n += s.PhysicalRows()
	}
	return n
}

func (g *Grid) Entries(session Session) []storage.ScheduleEntry {
	return Flatten(g.Slots, session)
}
