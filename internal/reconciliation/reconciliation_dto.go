package reconciliation

type ReconciliationQuery struct {
	Year        int     `form:"year" binding:"required"`
	Month       int     `form:"month" binding:"required"`
	WorkingDays *int    `form:"working_days"`
	VendorID    *string `form:"vendor_id"`
}

type ExportQuery struct {
	ReconciliationQuery
	Format string `form:"format"`
}

type ReportRowResponse struct {
	UserID             string  `json:"user_id"`
	FullName           string  `json:"full_name"`
	VendorID           *string `json:"vendor_id"`
	IsActive           bool    `json:"is_active"`
	TotalWorkingDays   int     `json:"total_working_days"`
	DaysWorked         float64 `json:"days_worked"`
	ChargeableLeave    float64 `json:"chargeable_leave"`
	NonChargeableLeave float64 `json:"non_chargeable_leave"`
	TotalBillableDays  float64 `json:"total_billable_days"`
}

type TotalsResponse struct {
	Contractors        int     `json:"contractors"`
	ChargeableLeave    float64 `json:"chargeable_leave"`
	NonChargeableLeave float64 `json:"non_chargeable_leave"`
	TotalBillableDays  float64 `json:"total_billable_days"`
}

type SummaryResponse struct {
	ReportMonth string              `json:"report_month"`
	WorkingDays int                 `json:"working_days"`
	Attribution string              `json:"attribution"`
	Rows        []ReportRowResponse `json:"rows"`
	Totals      TotalsResponse      `json:"totals"`
}

// Export is a rendered report file.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

func mapRow(r ReportRow) ReportRowResponse {
	return ReportRowResponse{
		UserID:             r.UserID.String(),
		FullName:           r.FullName,
		VendorID:           r.VendorID,
		IsActive:           r.IsActive,
		TotalWorkingDays:   r.TotalWorkingDays,
		DaysWorked:         r.DaysWorked,
		ChargeableLeave:    r.ChargeableLeave,
		NonChargeableLeave: r.NonChargeableLeave,
		TotalBillableDays:  r.TotalBillableDays,
	}
}
