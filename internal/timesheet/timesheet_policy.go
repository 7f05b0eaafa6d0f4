package timesheet

import (
	"os"
	"strconv"
)

// Policy carries the overtime rules applied when a week's totals are
// recomputed and when payroll prices the overtime hours.
type Policy struct {
	WeeklyOvertimeThresholdHours float64
	OvertimeMultiplier           float64
}

func DefaultPolicy() Policy {
	return Policy{
		WeeklyOvertimeThresholdHours: 40,
		OvertimeMultiplier:           1.5,
	}
}

func PolicyFromEnv() Policy {
	p := DefaultPolicy()
	if v, err := strconv.ParseFloat(os.Getenv("OVERTIME_WEEKLY_THRESHOLD_HOURS"), 64); err == nil && v > 0 {
		p.WeeklyOvertimeThresholdHours = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("OVERTIME_MULTIPLIER"), 64); err == nil && v >= 1 {
		p.OvertimeMultiplier = v
	}
	return p
}

// EntryLine is the slice of a time entry that totals care about.
type EntryLine struct {
	Hours float64
	Type  string
}

type Totals struct {
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
}

// ComputeTotals derives a week's totals from its full entry set. PTO hours
// count toward the total but never toward the overtime threshold.
func ComputeTotals(entries []EntryLine, policy Policy) Totals {
	var total, worked float64
	for _, e := range entries {
		total += e.Hours
		if e.Type != "PTO" {
			worked += e.Hours
		}
	}

	regular := worked
	var overtime float64
	if worked > policy.WeeklyOvertimeThresholdHours {
		regular = policy.WeeklyOvertimeThresholdHours
		overtime = worked - policy.WeeklyOvertimeThresholdHours
	}

	return Totals{
		TotalHours:    total,
		RegularHours:  regular,
		OvertimeHours: overtime,
	}
}
