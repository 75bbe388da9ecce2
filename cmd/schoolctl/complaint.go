// Complaint lifecycle commands. Each transition is its own server call; the
// server decides which transitions are legal.
package main

import (
	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/forms"
	"github.com/webdekho/schoolctl/pkg/types"
)

var complaintCmd = &cobra.Command{
	Use:   "complaint",
	Short: "Manage complaints",
}

var complaintAssignCmd = &cobra.Command{
	Use:   "assign <id> <staff>",
	Short: "Assign a complaint to a staff member",
	Long: `Assign hands the complaint to the named staff member and moves it to
in_progress on the server.

Example:
  schoolctl complaint assign 407 "A. Deshmukh"`,
	Args: cobra.ExactArgs(2),
	RunE: runComplaintAssign,
}

var complaintResolveCmd = &cobra.Command{
	Use:   "resolve <id> <note>",
	Short: "Resolve a complaint with a note",
	Long: `Resolve closes out the investigation with a resolution note.

Example:
  schoolctl complaint resolve 407 "Replaced the broken bench"`,
	Args: cobra.ExactArgs(2),
	RunE: runComplaintResolve,
}

var complaintCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a resolved complaint",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplaintClose,
}

func init() {
	complaintCmd.AddCommand(complaintAssignCmd)
	complaintCmd.AddCommand(complaintResolveCmd)
	complaintCmd.AddCommand(complaintCloseCmd)
}

func runComplaintAssign(cmd *cobra.Command, args []string) error {
	draft := forms.ComplaintAssignDraft{AssignedTo: args[1]}
	form := forms.Edit(draft)
	if !form.Validate() {
		return fieldErrorsError(form.FieldErrors())
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	raw, err := s.manager.Transition(cmd.Context(), types.TransitionAssign, args[0], form.Draft())
	if err != nil {
		return err
	}
	return printRecord(types.ResourceComplaints, raw)
}

func runComplaintResolve(cmd *cobra.Command, args []string) error {
	draft := forms.ComplaintResolveDraft{Note: args[1]}
	form := forms.Edit(draft)
	if !form.Validate() {
		return fieldErrorsError(form.FieldErrors())
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	raw, err := s.manager.Transition(cmd.Context(), types.TransitionResolve, args[0], form.Draft())
	if err != nil {
		return err
	}
	return printRecord(types.ResourceComplaints, raw)
}

func runComplaintClose(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	raw, err := s.manager.Transition(cmd.Context(), types.TransitionClose, args[0], nil)
	if err != nil {
		return err
	}
	return printRecord(types.ResourceComplaints, raw)
}
