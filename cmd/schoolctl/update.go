// Update command validates a draft and replaces an existing record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/types"
)

var updateCmd = &cobra.Command{
	Use:   "update <resource> <id> <json>",
	Short: "Update a record",
	Long: `Update validates the JSON draft against the resource's form rules and
replaces the record with the given ID.

Example:
  schoolctl update grades 12 '{"name": "Grade 5A", "sort_order": 5}'`,
	Args: cobra.ExactArgs(3),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	resourceName, id, payload := args[0], args[1], args[2]
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

	raw, err := s.manager.Update(cmd.Context(), resourceName, id, draft)
	if err != nil {
		return err
	}
	return printRecord(resourceName, raw)
}
