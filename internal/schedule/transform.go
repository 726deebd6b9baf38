package schedule

import (
	"sort"

	"patrol-inspection/internal/storage"
)

// Session holds the values shared by every entry of one save.
type Session struct {
	Operator  string `json:"operator"`
	MachineNo string `json:"machine_no"`
	Date      string `json:"date"`
}

// SessionOf takes operator, machine and date from the first entry.
func SessionOf(entries []storage.ScheduleEntry) Session {
	if len(entries) == 0 {
		return Session{}
	}
	first := entries[0]
	return Session{Operator: first.Operator, MachineNo: first.MachineNo, Date: first.Date}
}

// Load groups entries by slot_index into slots ordered by index. It returns
// the id of the first slot, which the form selects by default. An empty input
// yields DefaultSlots.
func Load(entries []storage.ScheduleEntry) ([]Slot, int) {
	if len(entries) == 0 {
		slots := DefaultSlots()
		return slots, slots[0].ID
	}

	session := SessionOf(entries)
	groups := make(map[int]*Slot)

	for _, e := range entries {
		key := e.SlotIndex
		slot, ok := groups[key]
		if !ok {
			s := NewSlot(key+1, e.TimeType)
			if e.Date != "" && e.Date != session.Date {
				s.Date = e.Date
			}
			slot = &s
			groups[key] = slot
		}

		if e.RowOrder == 0 {
			slot.UpVals = e.Values
		} else {
			slot.DownVals = e.Values
			slot.SingleRow = false
		}
	}

	slots := make([]Slot, 0, len(groups))
	for _, s := range groups {
		slots = append(slots, *s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })

	if len(slots) == 0 {
		slots = DefaultSlots()
	}

	return slots, slots[0].ID
}

// Flatten renumbers slots by display position and emits one UP entry per
// slot plus a DOWN entry for two-row slots.
func Flatten(slots []Slot, session Session) []storage.ScheduleEntry {
	entries := make([]storage.ScheduleEntry, 0, len(slots)*2)

	for idx, slot := range slots {
		date := session.Date
		if slot.Date != "" {
			date = slot.Date
		}

		base := storage.ScheduleEntry{
			Sr:        1,
			TimeType:  slot.Type,
			SlotIndex: idx,
			Operator:  session.Operator,
			MachineNo: session.MachineNo,
			Date:      date,
		}

		up := base
		up.RowOrder = 0
		up.Values = slot.UpVals
		entries = append(entries, up)

		if !slot.SingleRow {
			down := base
			down.RowOrder = 1
			down.Values = slot.DownVals
			entries = append(entries, down)
		}
	}

	return entries
}
