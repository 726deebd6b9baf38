package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLengths(t *testing.T) {
	r := &Report{
		PartName: strings.Repeat("Ж", MaxPartName),
		Items:    []InspectionItem{{SrNo: 1, Item: "WIDTH", Tolerance: "± 0.1"}},
	}
	e := ScheduleEntry{TimeType: "SETUP", Operator: "ALEX"}
	e.Values[3] = strings.Repeat("9", MaxValue)
	r.ScheduleEntries = []ScheduleEntry{e}

	// ширина считается в символах, а не в байтах
	require.NoError(t, r.CheckLengths())

	r.ScheduleEntries[0].Values[3] += "9"
	err := r.CheckLengths()
	require.ErrorIs(t, err, ErrValueTooLong)
	assert.Contains(t, err.Error(), "schedule entry 0: value_4")

	r.ScheduleEntries[0].Values[3] = ""
	r.Items[0].Tolerance = strings.Repeat("1", MaxTolerance+1)
	err = r.CheckLengths()
	require.ErrorIs(t, err, ErrValueTooLong)
	assert.Contains(t, err.Error(), "item sr_no 1: tolerance")

	r.Items[0].Tolerance = ""
	r.RevisionNo = "01234567890"
	assert.ErrorIs(t, r.CheckLengths(), ErrValueTooLong)
}
