package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/monetr-client/internal/cli"
	"github.com/Veraticus/monetr-client/internal/common"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List bank accounts",
		Long: `List bank accounts. The selected account (marked ▸) is the one the other commands
show; change it with --select.`,
		RunE: runAccounts,
	}

	cmd.Flags().Uint64("select", 0, "select the bank account with this id")

	return cmd
}

func runAccounts(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := startApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(a)

	if selectID, _ := cmd.Flags().GetUint64("select"); selectID != 0 {
		if !a.Store.Snapshot().BankAccounts.Has(selectID) {
			return common.NewUserError(fmt.Sprintf("No bank account with id %d.", selectID), common.ErrNotFound)
		}
		if err := a.SelectBankAccount(ctx, selectID); err != nil {
			return err
		}
	}

	state := a.Store.Snapshot()
	return cli.RenderBankAccounts(cmd.OutOrStdout(), state.BankAccounts.Slice(), a.Selectors.SelectedBankAccountID(state))
}
