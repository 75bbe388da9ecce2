package types

import (
	"fmt"
	"time"
)

// Resource names as they appear in REST paths and cache invalidation tags.
const (
	ResourceAcademicYears = "academic_years"
	ResourceGrades        = "grades"
	ResourceDivisions     = "divisions"
	ResourceFeeCategories = "fee_categories"
	ResourceComplaints    = "complaints"
	ResourceAttendance    = "attendance"
	ResourceRoles         = "roles"
	ResourceStaffWallets  = "staff_wallets"
	ResourceSyllabus      = "syllabus"
	ResourceVisions       = "visions"
	ResourceSettings      = "settings"
	ResourceBackups       = "backups"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// AcademicYear is a school year with fixed boundaries. Exactly one year is
// the default at any time; the default cannot be deleted.
type AcademicYear struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	IsDefault IntBool `json:"is_default"`
}

// DisplayName returns the name shown in pickers and report headers: the
// explicit name when present, otherwise "YYYY-YYYY" derived from the year
// boundaries.
func (y AcademicYear) DisplayName() string {
	if y.Name != "" {
		return y.Name
	}
	start, err1 := time.Parse(DateLayout, y.StartDate)
	end, err2 := time.Parse(DateLayout, y.EndDate)
	if err1 != nil || err2 != nil {
		return fmt.Sprintf("year %d", y.ID)
	}
	return fmt.Sprintf("%d-%d", start.Year(), end.Year())
}

// CanDelete reports whether deleting this year is allowed client-side.
// The default year is protected; the server enforces the same rule.
func (y AcademicYear) CanDelete() error {
	if y.IsDefault {
		return ErrProtectedDefault
	}
	return nil
}

// Grade is a class level (e.g. "Grade 5").
type Grade struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	SortOrder    int     `json:"sort_order"`
	HasDivisions IntBool `json:"has_divisions"`
}

// CanDelete rejects deletion while divisions still reference the grade.
func (g Grade) CanDelete() error {
	if g.HasDivisions {
		return ErrRecordInUse
	}
	return nil
}

// Division is a section within a grade.
type Division struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	GradeID   int64  `json:"grade_id"`
	GradeName string `json:"grade_name"`
}

// FeeCategory is a billable fee type with a fixed amount.
type FeeCategory struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	InUse  IntBool `json:"in_use"`
}

// CanDelete rejects deletion while fee records reference the category.
func (c FeeCategory) CanDelete() error {
	if c.InUse {
		return ErrRecordInUse
	}
	return nil
}

// Complaint is a reported issue moving through the complaint lifecycle.
type Complaint struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assigned_to"`
	Note        string `json:"note"`
	CreatedAt   string `json:"created_at"`
}

// AttendanceRecord is one student's presence mark for a division and date.
type AttendanceRecord struct {
	ID          int64   `json:"id"`
	StudentID   int64   `json:"student_id"`
	StudentName string  `json:"student_name"`
	DivisionID  int64   `json:"division_id"`
	Date        string  `json:"date"`
	Present     IntBool `json:"present"`
}

// Role is a named permission set.
type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// StaffWallet tracks a staff member's balance. Balance changes go through
// the wallet credit/debit transitions, never through Update.
type StaffWallet struct {
	ID        int64   `json:"id"`
	StaffID   int64   `json:"staff_id"`
	StaffName string  `json:"staff_name"`
	Balance   float64 `json:"balance"`
}

// WalletChange is the body of a wallet credit or debit transition.
type WalletChange struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

// SyllabusEntry describes course material for a grade and subject. The file
// itself is uploaded elsewhere; only the reference is managed here.
type SyllabusEntry struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	GradeID int64  `json:"grade_id"`
	Subject string `json:"subject"`
	FileURL string `json:"file_url"`
}

// Vision is a published vision statement.
type Vision struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Statement string  `json:"statement"`
	Active    IntBool `json:"active"`
}

// Setting is one key/value system setting. Settings are updated in place,
// never created or deleted from the client.
type Setting struct {
	ID    int64  `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// Backup is a server-side database backup available for download.
type Backup struct {
	ID        int64  `json:"id"`
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
}

// FeeCollectionRow is one line of the fee-collection report.
type FeeCollectionRow struct {
	StudentName string  `json:"student_name"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	PaidOn      string  `json:"paid_on"`
}
