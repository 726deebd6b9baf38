package form

import "patrol-inspection/internal/schedule"

func scheduleSession() schedule.Session {
	return schedule.Session{Operator: "ALEX", MachineNo: "M-07", Date: "2026-04-09"}
}
