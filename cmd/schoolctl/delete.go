// Delete command removes a record after the client-side guard check.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/resource"
	"github.com/webdekho/schoolctl/pkg/types"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <resource> <id>",
	Short: "Delete a record",
	Long: `Delete removes the record with the given ID. Protected records (the
default academic year, grades with divisions, fee categories in use) are
rejected before any request is sent; the server enforces the same rules.

Example:
  schoolctl delete grades 12`,
	Args: cobra.ExactArgs(2),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	resourceName, id := args[0], args[1]
	if !types.KnownResource(resourceName) {
		return fmt.Errorf("unknown resource %q (valid: %s)", resourceName, types.ResourceNamesString())
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	// Fetch the record first so the guard can inspect its flags.
	var guards []resource.Guard
	raw, err := s.manager.Get(cmd.Context(), resourceName, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("record %q not found in %q", id, resourceName)
		}
		return fmt.Errorf("get record: %w", err)
	}
	record, err := types.DecodeRecord(resourceName, raw)
	if err != nil {
		return err
	}
	if guard := deleteGuard(record); guard != nil {
		guards = append(guards, guard)
	}

	return s.manager.Delete(cmd.Context(), resourceName, id, guards...)
}
