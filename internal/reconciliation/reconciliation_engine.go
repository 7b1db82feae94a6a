package reconciliation

import (
	"time"

	"github.com/google/uuid"
)

// Period is an inclusive range of calendar days.
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodStrategy decides which leave requests belong to a month.
type PeriodStrategy interface {
	Name() string
	Window(year int, month time.Month) Period
}

type startsWithinMonth struct{}

// StartsWithinMonth attributes a request to the month its start date falls
// in. A request spanning two months is billed entirely in the first.
var StartsWithinMonth PeriodStrategy = startsWithinMonth{}

func (startsWithinMonth) Name() string { return "starts_within_month" }

func (startsWithinMonth) Window(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// ReportRow is one contractor's billing line for a month.
type ReportRow struct {
	UserID             uuid.UUID
	FullName           string
	VendorID           *string
	IsActive           bool
	TotalWorkingDays   int
	DaysWorked         float64
	ChargeableLeave    float64
	NonChargeableLeave float64
	TotalBillableDays  float64
}

// Compute builds one row per contractor in input order. Leaves of users not
// in contractors are ignored. Chargeable leave does not reduce the bill;
// non-chargeable leave does.
func Compute(contractors []Contractor, leaves []ApprovedLeave, workingDays int) []ReportRow {
	type sums struct{ chargeable, nonChargeable float64 }
	byUser := make(map[uuid.UUID]*sums, len(contractors))
	for _, c := range contractors {
		byUser[c.ID] = &sums{}
	}
	for _, l := range leaves {
		s, ok := byUser[l.UserID]
		if !ok {
			continue
		}
		if l.Chargeable {
			s.chargeable += l.TotalDays
		} else {
			s.nonChargeable += l.TotalDays
		}
	}

	rows := make([]ReportRow, 0, len(contractors))
	wd := float64(workingDays)
	for _, c := range contractors {
		s := byUser[c.ID]
		rows = append(rows, ReportRow{
			UserID:             c.ID,
			FullName:           c.FullName,
			VendorID:           c.VendorID,
			IsActive:           c.IsActive,
			TotalWorkingDays:   workingDays,
			DaysWorked:         wd - (s.chargeable + s.nonChargeable),
			ChargeableLeave:    s.chargeable,
			NonChargeableLeave: s.nonChargeable,
			TotalBillableDays:  wd - s.nonChargeable,
		})
	}
	return rows
}
