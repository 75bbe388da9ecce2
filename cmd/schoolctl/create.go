// Create command validates a draft and posts a new record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/types"
)

var createCmd = &cobra.Command{
	Use:   "create <resource> <json>",
	Short: "Create a record",
	Long: `Create validates the JSON draft against the resource's form rules and
posts it. Validation failures are reported per field and nothing is sent.

Example:
  schoolctl create grades '{"name": "Grade 5", "sort_order": 5}'
  schoolctl create academic_years '{"name": "2025-2026", "start_date": "2025-06-01", "end_date": "2026-03-31"}'`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	resourceName, payload := args[0], args[1]
	if !types.KnownResource(resourceName) {
		return fmt.Errorf("unknown resource %q (valid: %s)", resourceName, types.ResourceNamesString())
	}

	draft, err := validateDraftJSON(resourceName, []byte(payload))
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	raw, err := s.manager.Create(cmd.Context(), resourceName, draft)
	if err != nil {
		return err
	}
	return printRecord(resourceName, raw)
}
