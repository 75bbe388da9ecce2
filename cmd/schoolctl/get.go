// Get command retrieves a single record by ID.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/types"
)

var getCmd = &cobra.Command{
	Use:   "get <resource> <id>",
	Short: "Get a record by ID",
	Long: `Get retrieves a record from the named resource by its ID.

Valid resources: ` + types.ResourceNamesString() + `

Example:
  schoolctl get grades 12
  schoolctl get complaints 407`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	resourceName, id := args[0], args[1]
	if !types.KnownResource(resourceName) {
		return fmt.Errorf("unknown resource %q (valid: %s)", resourceName, types.ResourceNamesString())
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	raw, err := s.manager.Get(cmd.Context(), resourceName, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("record %q not found in %q", id, resourceName)
		}
		return fmt.Errorf("get record: %w", err)
	}

	return printRecord(resourceName, raw)
}
