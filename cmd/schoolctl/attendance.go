// Attendance commands: bulk marking and date/division listing.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/forms"
	"github.com/webdekho/schoolctl/pkg/types"
)

var (
	attendanceDivision int64
	attendanceDate     string
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Manage attendance records",
}

var attendanceMarkCmd = &cobra.Command{
	Use:   "mark <json>",
	Short: "Record attendance marks for a division and date",
	Long: `Mark posts presence marks for one division and date in a single call.

Example:
  schoolctl attendance mark '{"division_id": 3, "date": "2026-08-31",
    "marks": [{"student_id": 101, "present": 1}, {"student_id": 102, "present": 0}]}'`,
	Args: cobra.ExactArgs(1),
	RunE: runAttendanceMark,
}

var attendanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List attendance records",
	Long: `List shows attendance records filtered by division and date.

Example:
  schoolctl attendance list --division 3 --date 2026-08-31`,
	RunE: runAttendanceList,
}

func init() {
	attendanceListCmd.Flags().Int64Var(&attendanceDivision, "division", 0, "division ID filter")
	attendanceListCmd.Flags().StringVar(&attendanceDate, "date", "", "date filter (YYYY-MM-DD)")

	attendanceCmd.AddCommand(attendanceMarkCmd)
	attendanceCmd.AddCommand(attendanceListCmd)
}

func runAttendanceMark(cmd *cobra.Command, args []string) error {
	draft, err := checkDraft[forms.AttendanceMarkDraft]([]byte(args[0]))
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	raw, err := s.manager.Create(cmd.Context(), types.ResourceAttendance, draft)
	if err != nil {
		return err
	}
	if flags.jsonMode && len(raw) > 0 {
		fmt.Println(string(raw))
	}
	return nil
}

func runAttendanceList(cmd *cobra.Command, args []string) error {
	query := types.ListQuery{Page: 1, PageSize: types.DefaultPageSize}
	if attendanceDivision > 0 {
		query = query.WithFilter("division_id", strconv.FormatInt(attendanceDivision, 10))
	}
	if attendanceDate != "" {
		query = query.WithFilter("date", attendanceDate)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	page, err := s.manager.Query(cmd.Context(), types.ResourceAttendance, query)
	if err != nil {
		return err
	}
	return printListPage(types.ResourceAttendance, page, query.Normalize())
}
