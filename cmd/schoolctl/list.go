// List command queries one page of any resource with search and filters.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/types"
)

var (
	listPage     int
	listPageSize int
	listSearch   string
	listFilters  []string
)

var listCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "List records of a resource",
	Long: `List fetches one page of the named resource and displays it.

Valid resources: ` + types.ResourceNamesString() + `

Example:
  schoolctl list grades
  schoolctl list divisions --filter grade_id=3
  schoolctl list complaints --search library --page 2
  schoolctl list fee_categories --json`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number (1-based)")
	listCmd.Flags().IntVar(&listPageSize, "page-size", types.DefaultPageSize, "records per page")
	listCmd.Flags().StringVar(&listSearch, "search", "", "search term")
	listCmd.Flags().StringArrayVar(&listFilters, "filter", nil, "filter as name=value (repeatable)")
}

func runList(cmd *cobra.Command, args []string) error {
	resourceName := args[0]
	if !types.KnownResource(resourceName) {
		return fmt.Errorf("unknown resource %q (valid: %s)", resourceName, types.ResourceNamesString())
	}

	query, err := buildListQuery()
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	page, err := s.manager.Query(cmd.Context(), resourceName, query)
	if err != nil {
		return err
	}

	return printListPage(resourceName, page, query.Normalize())
}

// buildListQuery assembles the ListQuery from the list flags.
func buildListQuery() (types.ListQuery, error) {
	query := types.ListQuery{
		Page:     listPage,
		PageSize: listPageSize,
		Search:   listSearch,
	}
	for _, f := range listFilters {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return types.ListQuery{}, fmt.Errorf("invalid filter %q (expected name=value)", f)
		}
		query = query.WithFilter(name, value)
	}
	return query, nil
}

// printListPage renders a fetched page as JSON or a table.
func printListPage(resourceName string, page *types.ListPage[json.RawMessage], query types.ListQuery) error {
	if flags.jsonMode {
		return printJSON(page)
	}

	headers, rows, err := tableFor(resourceName, page.Items)
	if err != nil {
		return err
	}
	renderTable(headers, rows, page.Total, query)
	return nil
}

// tableFor maps a page of raw records to display columns for the resource.
// Status and flag fields render as badge labels.
func tableFor(resourceName string, items []json.RawMessage) ([]string, [][]string, error) {
	rows := make([][]string, 0, len(items))
	var headers []string

	for _, raw := range items {
		record, err := types.DecodeRecord(resourceName, raw)
		if err != nil {
			return nil, nil, err
		}

		switch r := record.(type) {
		case *types.AcademicYear:
			headers = []string{"ID", "NAME", "START", "END", "DEFAULT"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), r.DisplayName(), r.StartDate, r.EndDate,
				types.FlagBadge(r.IsDefault, "default", "-").Label,
			})
		case *types.Grade:
			headers = []string{"ID", "NAME", "ORDER", "DIVISIONS"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), r.Name, strconv.Itoa(r.SortOrder),
				types.FlagBadge(r.HasDivisions, "yes", "no").Label,
			})
		case *types.Division:
			headers = []string{"ID", "NAME", "GRADE"}
			grade := r.GradeName
			if grade == "" {
				grade = strconv.FormatInt(r.GradeID, 10)
			}
			rows = append(rows, []string{strconv.FormatInt(r.ID, 10), r.Name, grade})
		case *types.FeeCategory:
			headers = []string{"ID", "NAME", "AMOUNT", "IN USE"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), r.Name, formatAmount(r.Amount),
				types.FlagBadge(r.InUse, "yes", "no").Label,
			})
		case *types.Complaint:
			headers = []string{"ID", "TITLE", "STATUS", "ASSIGNED TO", "CREATED"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), truncate(r.Title, 40),
				types.ComplaintBadge(r.Status).Label, r.AssignedTo, r.CreatedAt,
			})
		case *types.AttendanceRecord:
			headers = []string{"ID", "STUDENT", "DATE", "PRESENT"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), r.StudentName, r.Date,
				types.FlagBadge(r.Present, "present", "absent").Label,
			})
		case *types.Role:
			headers = []string{"ID", "NAME", "PERMISSIONS"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), r.Name, truncate(strings.Join(r.Permissions, ","), 60),
			})
		case *types.StaffWallet:
			headers = []string{"ID", "STAFF", "BALANCE"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), r.StaffName, formatAmount(r.Balance),
			})
		case *types.SyllabusEntry:
			headers = []string{"ID", "TITLE", "GRADE", "SUBJECT"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), truncate(r.Title, 40),
				strconv.FormatInt(r.GradeID, 10), r.Subject,
			})
		case *types.Vision:
			headers = []string{"ID", "TITLE", "ACTIVE"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), truncate(r.Title, 40),
				types.FlagBadge(r.Active, "active", "inactive").Label,
			})
		case *types.Setting:
			headers = []string{"ID", "KEY", "VALUE"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), r.Key, truncate(r.Value, 60),
			})
		case *types.Backup:
			headers = []string{"ID", "FILE", "SIZE", "CREATED"}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10), r.FileName,
				strconv.FormatInt(r.SizeBytes, 10), r.CreatedAt,
			})
		default:
			return nil, nil, fmt.Errorf("%w: %q", types.ErrResourceUnknown, resourceName)
		}
	}

	if headers == nil {
		headers = []string{"(empty)"}
	}
	return headers, rows, nil
}
