package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/monetr-client/internal/app"
	"github.com/Veraticus/monetr-client/internal/cli"
	"github.com/Veraticus/monetr-client/internal/common"
	"github.com/Veraticus/monetr-client/internal/fetch"
	"github.com/Veraticus/monetr-client/internal/monetr"
	"github.com/Veraticus/monetr-client/internal/store"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List the selected bank account's transactions",
		RunE:  runTransactions,
	}

	cmd.Flags().Int("limit", fetch.InitialTransactionLimit, fmt.Sprintf("transactions per page (max %d)", monetr.MaxTransactionsPerPage))
	cmd.Flags().Int("page", 1, "page to show")
	cmd.Flags().Uint64("account", 0, "show this bank account instead of the selected one")
	cmd.Flags().Uint64("select", 0, "highlight the transaction with this id")

	return cmd
}

func runTransactions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	page, _ := cmd.Flags().GetInt("page")
	selectID, _ := cmd.Flags().GetUint64("select")
	accountID, _ := cmd.Flags().GetUint64("account")
	if page < 1 {
		return common.NewUserError("--page must be at least 1.", common.ErrInvalidInput)
	}

	a, err := startApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(a)

	switchAccount := accountID != 0 && accountID != a.Selectors.SelectedBankAccountID(a.Store.Snapshot())
	if switchAccount {
		if !a.Store.Snapshot().BankAccounts.Has(accountID) {
			return common.NewUserError(fmt.Sprintf("No bank account with id %d.", accountID), common.ErrNotFound)
		}
		a.Fetcher.SelectBankAccount(accountID)
	}

	// The partition holds the first page followed by the requested one.
	if switchAccount || limit != fetch.InitialTransactionLimit || page > 1 {
		if err := a.Fetcher.FetchTransactions(ctx, limit, 0); err != nil {
			return err
		}
	}
	skip := 0
	if page > 1 {
		skip = a.Selectors.Transactions(a.Store.Snapshot()).Len()
		if err := a.Fetcher.FetchTransactions(ctx, limit, (page-1)*limit); err != nil {
			return err
		}
	}
	if selectID != 0 {
		a.Fetcher.SelectTransaction(selectID)
	}

	rows := transactionRows(a, a.Store.Snapshot())
	return cli.RenderTransactions(cmd.OutOrStdout(), rows[min(skip, len(rows)):])
}

func transactionRows(a *app.App, state *store.State) []cli.TransactionRow {
	transactions := a.Selectors.Transactions(state)
	rows := make([]cli.TransactionRow, 0, transactions.Len())
	for txn := range transactions.All() {
		rows = append(rows, cli.TransactionRow{
			Transaction: txn,
			SpentFrom:   a.Selectors.SpentFromLabel(state, txn),
			Selected:    a.Selectors.TransactionIsSelected(state, txn.TransactionID),
		})
	}
	return rows
}

func spendFromCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spend-from <transactionId> <spendingId|safe>",
		Short: "Choose what a transaction was spent from",
		Long: `Assign a transaction of the selected bank account to an expense or goal, or back to
Safe-To-Spend with "safe".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			transactionID, err := parseID(args[0], "transaction")
			if err != nil {
				return err
			}
			spendingID, err := parseSpendingRef(args[1])
			if err != nil {
				return err
			}

			a, err := startApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(a)

			updated, err := a.Fetcher.SpendFrom(cmd.Context(), transactionID, spendingID)
			if err != nil {
				return common.NewUserError("Failed to update transaction: "+common.UserMessage(err), err)
			}

			a.Fetcher.SelectTransaction(updated.TransactionID)
			state := a.Store.Snapshot()
			msg := fmt.Sprintf("%s is now spent from %s", updated.GetTitle(), a.Selectors.SpentFromLabel(state, updated))
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg)); err != nil {
				return err
			}
			return cli.RenderTransactions(cmd.OutOrStdout(), transactionRows(a, state))
		},
	}
}
