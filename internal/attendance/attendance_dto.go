package attendance

import (
	"encoding/json"
	"time"
)

type CheckInRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

type CheckOutRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

type ScanQRRequest struct {
	// QRData is either the token object itself or a JSON string
	// containing it, depending on the scanning client.
	QRData json.RawMessage `json:"qrData" binding:"required"`
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	BranchID       string   `json:"branchId"`
	MemberID       string   `json:"memberId"`
	MemberName     string   `json:"memberName,omitempty"`
	StaffID        *string  `json:"staffId,omitempty"`
	AttendanceDate string   `json:"attendanceDate"`
	CheckIn        string   `json:"checkIn"`
	CheckOut       *string  `json:"checkOut,omitempty"`
	TotalHours     *float64 `json:"totalHours,omitempty"`
	Status         string   `json:"status"`
	Source         string   `json:"source"`
}

// CheckResult is the outcome of a check-in, check-out or scan.
// Success=false with a populated Attendance is an expected state
// conflict (already checked in / no active session), not an error.
type CheckResult struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

type StatusResponse struct {
	CheckedIn  bool                `json:"checkedIn"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

type StatisticsResponse struct {
	TotalVisits      int     `json:"totalVisits"`
	UniqueMembers    int     `json:"uniqueMembers"`
	AvgHoursPerVisit float64 `json:"avgHoursPerVisit"`
	TotalHours       float64 `json:"totalHours"`
}

type ListFilter struct {
	BranchID string
	MemberID string
	Status   string
	Date     *time.Time
	Limit    int
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		BranchID:       a.BranchID.String(),
		MemberID:       a.MemberID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		CheckIn:        a.CheckIn.Format(time.RFC3339),
		TotalHours:     a.TotalHours,
		Status:         a.Status,
		Source:         a.Source,
	}
	if a.StaffID != nil {
		v := a.StaffID.String()
		resp.StaffID = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if a.Member != nil {
		resp.MemberName = a.Member.FullName()
	}
	return resp
}
