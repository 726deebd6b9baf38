package form

import (
	"errors"
	"fmt"
	"strings"
)

type Step int

const (
	StepReport Step = iota
	StepInspection
	StepSchedule
)

var Steps = []Step{StepReport, StepInspection, StepSchedule}

var (
	ErrUnknownStep = errors.New("unknown step")
	ErrLastStep    = errors.New("already at the last step")
	ErrFirstStep   = errors.New("already at the first step")
)

func (s Step) String() string {
	switch s {
	case StepReport:
		return "report"
	case StepInspection:
		return "inspection"
	case StepSchedule:
		return "schedule"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func ParseStep(v string) (Step, error) {
	for _, s := range Steps {
		if s.String() == v {
			return s, nil
		}
	}
	return StepReport, fmt.Errorf("%w: %q", ErrUnknownStep, v)
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = StepReport
		return nil
	}
	v, err := ParseStep(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// StepError tells which requirement keeps a step from being done.
type StepError struct {
	Step   Step
	Reason string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s is not complete: %s", e.Step, e.Reason)
}

// Done returns nil when the step's requirements are met, a *StepError otherwise.
func (st *State) Done(step Step) error {
	switch step {
	case StepReport:
		if missing := st.Header.Missing(); len(missing) > 0 {
			return &StepError{Step: step, Reason: "missing " + strings.Join(missing, ", ")}
		}
	case StepInspection:
		ed := st.editor()
		if len(ed.Items()) == 0 {
			return &StepError{Step: step, Reason: "at least one complete inspection item is required"}
		}
	case StepSchedule:
		var missing []string
		if st.Session.Date == "" {
			missing = append(missing, "date")
		}
		if st.Session.Operator == "" {
			missing = append(missing, "operator")
		}
		if st.Session.MachineNo == "" {
			missing = append(missing, "machine_no")
		}
		if len(missing) > 0 {
			return &StepError{Step: step, Reason: "missing " + strings.Join(missing, ", ")}
		}
		if len(st.Slots) == 0 {
			return &StepError{Step: step, Reason: "at least one time slot is required"}
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStep, int(step))
	}
	return nil
}

// Advance moves to the next step when the current one is done.
func (st *State) Advance() error {
	if st.Step >= StepSchedule {
		return ErrLastStep
	}
	if err := st.Done(st.Step); err != nil {
		return err
	}
	st.Step++
	return nil
}

func (st *State) Back() error {
	if st.Step <= StepReport {
		return ErrFirstStep
	}
	st.Step--
	return nil
}

type StepStatus struct {
	Step   Step   `json:"step"`
	Done   bool   `json:"done"`
	Reason string `json:"reason,omitempty"`
}

func (st *State) Progress() []StepStatus {
	out := make([]StepStatus, 0, len(Steps))
	for _, s := range Steps {
		status := StepStatus{Step: s, Done: true}
		if err := st.Done(s); err != nil {
			status.Done = false
			var se *StepError
			if errors.As(err, &se) {
				status.Reason = se.Reason
			}
		}
		out = append(out, status)
	}
	return out
}
