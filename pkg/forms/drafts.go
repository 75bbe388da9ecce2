package forms

import "github.com/webdekho/schoolctl/pkg/types"

// Draft shapes for each resource's create/edit form. JSON tags are the wire
// field names and double as the keys of Form.FieldErrors. Checkbox fields
// use types.IntBool so they serialize as the 0/1 integers the backend
// expects.

// AcademicYearDraft creates or edits an academic year.
type AcademicYearDraft struct {
	Name      string        `json:"name" validate:"required,max=100"`
	StartDate string        `json:"start_date" validate:"required,dateonly"`
	EndDate   string        `json:"end_date" validate:"required,dateonly,dateafter=StartDate"`
	IsDefault types.IntBool `json:"is_default"`
}

// GradeDraft creates or edits a grade.
type GradeDraft struct {
	Name      string `json:"name" validate:"required,max=50"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

// DivisionDraft creates or edits a division within a grade.
type DivisionDraft struct {
	Name    string `json:"name" validate:"required,max=50"`
	GradeID int64  `json:"grade_id" validate:"required,gt=0"`
}

// FeeCategoryDraft creates or edits a fee category.
type FeeCategoryDraft struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// ComplaintDraft files a new complaint.
type ComplaintDraft struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description" validate:"required,max=2000"`
}

// AttendanceMarkDraft records presence marks for one division and date.
type AttendanceMarkDraft struct {
	DivisionID int64                 `json:"division_id" validate:"required,gt=0"`
	Date       string                `json:"date" validate:"required,dateonly"`
	Marks      []AttendanceMarkEntry `json:"marks" validate:"required,min=1,dive"`
}

// AttendanceMarkEntry is one student's mark inside a bulk attendance draft.
type AttendanceMarkEntry struct {
	StudentID int64         `json:"student_id" validate:"required,gt=0"`
	Present   types.IntBool `json:"present"`
}

// RoleDraft creates or edits a role and its permission set.
type RoleDraft struct {
	Name        string   `json:"name" validate:"required,max=50"`
	Permissions []string `json:"permissions" validate:"dive,required"`
}

// WalletChangeDraft credits or debits a staff wallet.
type WalletChangeDraft struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Note   string  `json:"note" validate:"max=255"`
}

// SyllabusDraft creates or edits a syllabus entry.
type SyllabusDraft struct {
	Title   string `json:"title" validate:"required,max=150"`
	GradeID int64  `json:"grade_id" validate:"required,gt=0"`
	Subject string `json:"subject" validate:"required,max=100"`
	FileURL string `json:"file_url" validate:"omitempty,url"`
}

// VisionDraft creates or edits a vision statement.
type VisionDraft struct {
	Title     string        `json:"title" validate:"required,max=150"`
	Statement string        `json:"statement" validate:"required,max=1000"`
	Active    types.IntBool `json:"active"`
}

// SettingDraft updates one system setting's value.
type SettingDraft struct {
	Value string `json:"value" validate:"required,max=500"`
}

// ComplaintResolveDraft carries the resolution note for the resolve
// transition.
type ComplaintResolveDraft struct {
	Note string `json:"note" validate:"required,max=1000"`
}

// ComplaintAssignDraft names the staff member a complaint is assigned to.
type ComplaintAssignDraft struct {
	AssignedTo string `json:"assigned_to" validate:"required,max=100"`
}
