package storage

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var ErrValueTooLong = errors.New("value too long")

// Column widths of schema.sql, in characters.
const (
	MaxDocNo      = 50
	MaxRevisionNo = 10
	MaxPartName   = 200
	MaxPartNumber = 100
	MaxOperation  = 200
	MaxCustomer   = 200
	MaxPerson     = 100

	MaxItem        = 200
	MaxSpecialChar = 100
	MaxSpec        = 100
	MaxTolerance   = 50
	MaxInst        = 100

	MaxOperator  = 100
	MaxMachineNo = 50
	MaxValue     = 50
	MaxJudgment  = 50
	MaxSignature = 100
)

type fieldLimit struct {
	name  string
	value string
	max   int
}

func checkLimits(prefix string, limits []fieldLimit) error {
	for _, l := range limits {
		if n := utf8.RuneCountInString(l.value); n > l.max {
			return fmt.Errorf("%w: %s%s has %d characters, max %d", ErrValueTooLong, prefix, l.name, n, l.max)
		}
	}
	return nil
}

// CheckLengths reports the first field that does not fit its column.
func (r *Report) CheckLengths() error {
	err := checkLimits("", []fieldLimit{
		{"doc_no", r.DocNo, MaxDocNo},
		{"revision_no", r.RevisionNo, MaxRevisionNo},
		{"part_name", r.PartName, MaxPartName},
		{"part_number", r.PartNumber, MaxPartNumber},
		{"operation_name", r.OperationName, MaxOperation},
		{"customer_name", r.CustomerName, MaxCustomer},
		{"prepared_by", r.PreparedBy, MaxPerson},
		{"approved_by", r.ApprovedBy, MaxPerson},
	})
	if err != nil {
		return err
	}

	for _, it := range r.Items {
		err := checkLimits(fmt.Sprintf("item sr_no %d: ", it.SrNo), []fieldLimit{
			{"item", it.Item, MaxItem},
			{"special_char", it.SpecialChar, MaxSpecialChar},
			{"spec", it.Spec, MaxSpec},
			{"tolerance", it.Tolerance, MaxTolerance},
			{"inst", it.Inst, MaxInst},
		})
		if err != nil {
			return err
		}
	}

	for i, e := range r.ScheduleEntries {
		prefix := fmt.Sprintf("schedule entry %d: ", i)
		limits := []fieldLimit{
			{"operator", e.Operator, MaxOperator},
			{"machine_no", e.MachineNo, MaxMachineNo},
			{"judgment", e.Judgment, MaxJudgment},
			{"signature", e.Signature, MaxSignature},
		}
		for c, v := range e.Values {
			limits = append(limits, fieldLimit{ValueKey(c), v, MaxValue})
		}
		if err := checkLimits(prefix, limits); err != nil {
			return err
		}
	}

	return nil
}
