// Settings commands. Settings are updated in place; there is no create or
// delete.
package main

import (
	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/forms"
	"github.com/webdekho/schoolctl/pkg/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and update system settings",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List system settings",
	RunE:  runSettingsList,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <id> <value>",
	Short: "Update one setting's value",
	Long: `Set replaces the value of the setting with the given ID.

Example:
  schoolctl settings set 4 "Mon-Fri 08:00-15:30"`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	query := types.ListQuery{Page: 1, PageSize: types.MaxPageSize}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	page, err := s.manager.Query(cmd.Context(), types.ResourceSettings, query)
	if err != nil {
		return err
	}
	return printListPage(types.ResourceSettings, page, query.Normalize())
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	form := forms.Edit(forms.SettingDraft{Value: args[1]})
	if !form.Validate() {
		return fieldErrorsError(form.FieldErrors())
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	raw, err := s.manager.Update(cmd.Context(), types.ResourceSettings, args[0], form.Draft())
	if err != nil {
		return err
	}
	return printRecord(types.ResourceSettings, raw)
}
