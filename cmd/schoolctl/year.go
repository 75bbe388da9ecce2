// Academic year commands beyond generic CRUD.
package main

import (
	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/types"
)

var yearCmd = &cobra.Command{
	Use:   "year",
	Short: "Manage academic years",
}

var yearSetDefaultCmd = &cobra.Command{
	Use:   "set-default <id>",
	Short: "Make an academic year the default",
	Long: `Set-default marks the given academic year as the school-wide default.
The server clears the flag on the previous default in the same call.

Example:
  schoolctl year set-default 7`,
	Args: cobra.ExactArgs(1),
	RunE: runYearSetDefault,
}

func init() {
	yearCmd.AddCommand(yearSetDefaultCmd)
}

func runYearSetDefault(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	raw, err := s.manager.Transition(cmd.Context(), types.TransitionSetDefaultYear, args[0], nil)
	if err != nil {
		return err
	}
	return printRecord(types.ResourceAcademicYears, raw)
}
