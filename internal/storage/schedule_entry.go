package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueColumns is the number of value_N fields carried by a schedule entry.
const ValueColumns = 20

// ScheduleEntry is one persisted row of the schedule grid. Values are sent
// as flat value_1..value_20 fields.
type ScheduleEntry struct {
	ID        int64
	Sr        int
	TimeType  string
	RowOrder  int
	SlotIndex int
	Operator  string
	MachineNo string
	Date      string
	Values    [ValueColumns]string
	Judgment  string
	Signature string
	FilledAt  *time.Time
}

type scheduleEntryFields struct {
	ID        int64      `json:"id,omitempty"`
	Sr        int        `json:"sr"`
	TimeType  string     `json:"time_type"`
	RowOrder  int        `json:"row_order"`
	SlotIndex int        `json:"slot_index"`
	Operator  string     `json:"operator"`
	MachineNo string     `json:"machine_no"`
	Date      *string    `json:"date"`
	Judgment  string     `json:"judgment"`
	Signature string     `json:"signature"`
	FilledAt  *time.Time `json:"filled_at"`
}

func ValueKey(i int) string {
	return "value_" + strconv.Itoa(i+1)
}

func (e ScheduleEntry) MarshalJSON() ([]byte, error) {
	fields := scheduleEntryFields{
		ID:        e.ID,
		Sr:        e.Sr,
		TimeType:  e.TimeType,
		RowOrder:  e.RowOrder,
		SlotIndex: e.SlotIndex,
		Operator:  e.Operator,
		MachineNo: e.MachineNo,
		Judgment:  e.Judgment,
		Signature: e.Signature,
		FilledAt:  e.FilledAt,
	}
	if e.Date != "" {
		date := e.Date
		fields.Date = &date
	}

	head, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(head[:len(head)-1])
	for i, v := range e.Values {
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, `,"%s":`, ValueKey(i))
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (e *ScheduleEntry) UnmarshalJSON(data []byte) error {
	var fields scheduleEntryFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = ScheduleEntry{
		ID:        fields.ID,
		Sr:        fields.Sr,
		TimeType:  fields.TimeType,
		RowOrder:  fields.RowOrder,
		SlotIndex: fields.SlotIndex,
		Operator:  fields.Operator,
		MachineNo: fields.MachineNo,
		Judgment:  fields.Judgment,
		Signature: fields.Signature,
		FilledAt:  fields.FilledAt,
	}
	if fields.Date != nil {
		e.Date = *fields.Date
	}

	for i := 0; i < ValueColumns; i++ {
		msg, ok := raw[ValueKey(i)]
		if !ok {
			continue
		}
		v, err := decodeValue(msg)
		if err != nil {
			return fmt.Errorf("%s: %w", ValueKey(i), err)
		}
		e.Values[i] = v
	}

	return nil
}

// decodeValue accepts a string, null, or a bare number kept as its literal text.
func decodeValue(msg json.RawMessage) (string, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return "", nil
	}
	if msg[0] == '"' {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(msg, &n); err != nil {
		return "", fmt.Errorf("unsupported value %s", string(msg))
	}
	return n.String(), nil
}

// HasValues reports whether any value column is non-blank.
func (e ScheduleEntry) HasValues() bool {
	for _, v := range e.Values {
		if v != "" {
			return true
		}
	}
	return false
}
