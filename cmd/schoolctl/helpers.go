// Shared helpers for schoolctl commands: session wiring, draft validation,
// and output rendering.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/webdekho/schoolctl/internal/cachedb"
	"github.com/webdekho/schoolctl/internal/rest"
	"github.com/webdekho/schoolctl/pkg/forms"
	"github.com/webdekho/schoolctl/pkg/resource"
	"github.com/webdekho/schoolctl/pkg/types"
)

// session bundles the manager and its collaborators for one command run.
// The caller must defer session.close().
type session struct {
	client  *rest.Client
	manager *resource.Manager
	cache   resource.Cache
	config  types.Config
}

func (s *session) close() {
	_ = s.cache.Close()
}

// newSession builds the API client, the query cache (persistent unless
// --no-cache), and the manager wired to a stderr notifier.
func newSession() (*session, error) {
	cfg, err := resolveClientConfig()
	if err != nil {
		return nil, err
	}

	var opts []rest.Option
	if flags.verbose {
		opts = append(opts, rest.WithLogger(log.New(os.Stderr, "schoolctl: ", log.LstdFlags)))
	}
	client, err := rest.NewClient(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	var cache resource.Cache
	if flags.noCache || cfg.CacheDir == "" {
		cache = resource.NewMemoryCache()
	} else {
		store, err := cachedb.Open(cfg.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("open query cache: %w", err)
		}
		cache = store
	}

	return &session{
		client:  client,
		manager: resource.NewManager(client, cache, stderrNotifier{}),
		cache:   cache,
		config:  cfg,
	}, nil
}

// stderrNotifier prints the one-per-mutation notification to stderr so it
// never mixes with record output on stdout.
type stderrNotifier struct{}

func (stderrNotifier) Success(message string) { fmt.Fprintln(os.Stderr, message) }
func (stderrNotifier) Failure(message string) { fmt.Fprintln(os.Stderr, "error:", message) }

// checkDraft unmarshals payload into the draft type, validates it, and
// returns the draft ready for the wire. Validation failures list every field
// error and never reach the network.
func checkDraft[T any](payload []byte) (any, error) {
	var draft T
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	form := forms.Edit(draft)
	if !form.Validate() {
		return nil, fieldErrorsError(form.FieldErrors())
	}
	return form.Draft(), nil
}

// fieldErrorsError formats per-field validation messages into one error,
// fields sorted for stable output.
func fieldErrorsError(fieldErrors map[string]string) error {
	names := make([]string, 0, len(fieldErrors))
	for name := range fieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("invalid input:")
	for _, name := range names {
		fmt.Fprintf(&sb, "\n  %s: %s", name, fieldErrors[name])
	}
	return fmt.Errorf("%s", sb.String())
}

// validateDraftJSON validates payload against the named resource's form
// rules. Settings and backups have no create form; their commands handle
// them separately.
func validateDraftJSON(resourceName string, payload []byte) (any, error) {
	switch resourceName {
	case types.ResourceAcademicYears:
		return checkDraft[forms.AcademicYearDraft](payload)
	case types.ResourceGrades:
		return checkDraft[forms.GradeDraft](payload)
	case types.ResourceDivisions:
		return checkDraft[forms.DivisionDraft](payload)
	case types.ResourceFeeCategories:
		return checkDraft[forms.FeeCategoryDraft](payload)
	case types.ResourceComplaints:
		return checkDraft[forms.ComplaintDraft](payload)
	case types.ResourceAttendance:
		return checkDraft[forms.AttendanceMarkDraft](payload)
	case types.ResourceRoles:
		return checkDraft[forms.RoleDraft](payload)
	case types.ResourceSyllabus:
		return checkDraft[forms.SyllabusDraft](payload)
	case types.ResourceVisions:
		return checkDraft[forms.VisionDraft](payload)
	default:
		return nil, fmt.Errorf("%w: %q has no create/update form (valid: %s)",
			types.ErrResourceUnknown, resourceName, types.ResourceNamesString())
	}
}

// deleteGuard returns the client-side pre-check for deleting the given
// record, or nil when the resource has no guard.
func deleteGuard(record any) resource.Guard {
	switch r := record.(type) {
	case *types.AcademicYear:
		return r.CanDelete
	case *types.Grade:
		return r.CanDelete
	case *types.FeeCategory:
		return r.CanDelete
	default:
		return nil
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printRecord outputs one raw record: JSON verbatim in --json mode,
// otherwise decoded and pretty-printed.
func printRecord(resourceName string, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	if flags.jsonMode {
		fmt.Println(string(raw))
		return nil
	}
	record, err := types.DecodeRecord(resourceName, raw)
	if err != nil {
		return err
	}
	return printJSON(record)
}

// renderTable prints rows through a tabwriter: headers, dashes, rows,
// trailing page/total line.
func renderTable(headers []string, rows [][]string, total int, query types.ListQuery) {
	if len(rows) == 0 {
		fmt.Println("No records found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(dashes, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	// Print output, trimming trailing whitespace from each line.
	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	pages := resource.TotalPages(total, query.PageSize)
	fmt.Printf("Page %d/%d, total %d record(s)\n", query.Page, pages, total)
}

// truncate shortens s for table cells.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// formatAmount renders a currency amount with two decimals.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
