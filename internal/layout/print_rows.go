package layout

import (
	"sort"
	"strings"

	"patrol-inspection/internal/schedule"
	"patrol-inspection/internal/storage"
)

type PrintRow struct {
	Time     string                       `json:"time"`
	RowOrder int                          `json:"row_order"`
	Values   [storage.ValueColumns]string `json:"values"`
	// TimeSpan is how many rows the time cell covers: 2 for an UP row
	// followed by its DOWN row, 1 for a lone row, 0 for a DOWN row.
	TimeSpan int `json:"time_span"`
}

// Group is one SR block of the printed schedule.
type Group struct {
	Sr        int        `json:"sr"`
	Date      string     `json:"date"`
	Operator  string     `json:"operator"`
	MachineNo string     `json:"machine_no"`
	Rows      []PrintRow `json:"rows"`
}

type printSlot struct {
	timeType string
	up       *[storage.ValueColumns]string
	down     *[storage.ValueColumns]string
}

// PrintGroups groups entries by sr and then slot_index. A DOWN row is
// printed only when it holds at least one value. Without entries a single
// blank SETUP/4HRS/LAST block is returned.
func PrintGroups(entries []storage.ScheduleEntry) []Group {
	if len(entries) == 0 {
		g := Group{Sr: 1}
		for _, t := range schedule.DefaultTypes {
			g.Rows = append(g.Rows, PrintRow{Time: t, TimeSpan: 1})
		}
		return []Group{g}
	}

	var order []int
	bySr := make(map[int][]storage.ScheduleEntry)
	for _, e := range entries {
		sr := e.Sr
		if sr == 0 {
			sr = 1
		}
		if _, ok := bySr[sr]; !ok {
			order = append(order, sr)
		}
		bySr[sr] = append(bySr[sr], e)
	}

	groups := make([]Group, 0, len(order))
	for _, sr := range order {
		raw := bySr[sr]
		sort.SliceStable(raw, func(i, j int) bool {
			if raw[i].SlotIndex != raw[j].SlotIndex {
				return raw[i].SlotIndex < raw[j].SlotIndex
			}
			return raw[i].RowOrder < raw[j].RowOrder
		})

		first := raw[0]
		g := Group{
			Sr:        sr,
			Date:      DisplayDate(first.Date),
			Operator:  first.Operator,
			MachineNo: first.MachineNo,
		}

		var keys []int
		slots := make(map[int]*printSlot)
		for _, e := range raw {
			s, ok := slots[e.SlotIndex]
			if !ok {
				s = &printSlot{timeType: e.TimeType}
				slots[e.SlotIndex] = s
				keys = append(keys, e.SlotIndex)
			}
			vals := e.Values
			if e.RowOrder == 0 {
				s.up = &vals
			} else {
				s.down = &vals
			}
		}

		for _, k := range keys {
			s := slots[k]
			up := PrintRow{Time: s.timeType, RowOrder: 0, TimeSpan: 1}
			if s.up != nil {
				up.Values = *s.up
			}
			if s.down != nil && hasAny(*s.down) {
				up.TimeSpan = 2
				g.Rows = append(g.Rows, up, PrintRow{Time: s.timeType, RowOrder: 1, Values: *s.down})
				continue
			}
			g.Rows = append(g.Rows, up)
		}

		groups = append(groups, g)
	}

	return groups
}

func hasAny(vals [storage.ValueColumns]string) bool {
	for _, v := range vals {
		if v != "" {
			return true
		}
	}
	return false
}

// DisplayDate turns YYYY-MM-DD into DD/MM/YYYY; anything else is returned as is.
func DisplayDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
