// Staff wallet commands. Balance changes go through the credit/debit
// transitions, never through a plain update.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/forms"
	"github.com/webdekho/schoolctl/pkg/types"
)

var walletNote string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage staff wallets",
}

var walletCreditCmd = &cobra.Command{
	Use:   "credit <id> <amount>",
	Short: "Credit a staff wallet",
	Long: `Credit adds the amount to the wallet balance.

Example:
  schoolctl wallet credit 9 1500 --note "August reimbursement"`,
	Args: cobra.ExactArgs(2),
	RunE: runWalletChange(types.TransitionWalletCredit),
}

var walletDebitCmd = &cobra.Command{
	Use:   "debit <id> <amount>",
	Short: "Debit a staff wallet",
	Args:  cobra.ExactArgs(2),
	RunE:  runWalletChange(types.TransitionWalletDebit),
}

func init() {
	walletCmd.PersistentFlags().StringVar(&walletNote, "note", "", "note attached to the wallet entry")

	walletCmd.AddCommand(walletCreditCmd)
	walletCmd.AddCommand(walletDebitCmd)
}

// runWalletChange builds the shared credit/debit runner for a transition.
func runWalletChange(transition types.Transition) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}

		form := forms.Edit(forms.WalletChangeDraft{Amount: amount, Note: walletNote})
		if !form.Validate() {
			return fieldErrorsError(form.FieldErrors())
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()

		raw, err := s.manager.Transition(cmd.Context(), transition, args[0], form.Draft())
		if err != nil {
			return err
		}
		return printRecord(types.ResourceStaffWallets, raw)
	}
}
