package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/monetr-client/internal/app"
	"github.com/Veraticus/monetr-client/internal/cli"
	"github.com/Veraticus/monetr-client/internal/common"
	"github.com/Veraticus/monetr-client/internal/model"
	"github.com/Veraticus/monetr-client/internal/selectors"
	"github.com/Veraticus/monetr-client/internal/store"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List the selected bank account's expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := startApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(a)

			if selectID, _ := cmd.Flags().GetUint64("select"); selectID != 0 {
				a.Fetcher.SelectExpense(selectID)
			}
			state := a.Store.Snapshot()
			selected, _ := a.Selectors.SelectedExpense(state)
			return cli.RenderExpenses(cmd.OutOrStdout(), a.Selectors.Expenses(state).Slice(), selected.SpendingID)
		},
	}

	cmd.Flags().Uint64("select", 0, "highlight the expense with this id")

	return cmd
}

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "List the selected bank account's goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := startApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(a)

			if selectID, _ := cmd.Flags().GetUint64("select"); selectID != 0 {
				a.Fetcher.SelectGoal(selectID)
			}
			state := a.Store.Snapshot()
			selected, _ := a.Selectors.SelectedGoal(state)
			return cli.RenderGoals(cmd.OutOrStdout(), a.Selectors.Goals(state).Slice(), selected.SpendingID)
		},
	}

	cmd.Flags().Uint64("select", 0, "highlight the goal with this id")

	return cmd
}

func schedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "List the selected bank account's funding schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := startApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(a)

			state := a.Store.Snapshot()
			return cli.RenderFundingSchedules(cmd.OutOrStdout(), a.Selectors.FundingSchedules(state).Slice())
		},
	}
}

func transferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer <amount>",
		Short: "Move money between Safe-To-Spend, expenses and goals",
		Long: `Move an amount such as 12.50 between spending objects of the selected bank account.
--from and --to take a spending id or "safe" for Safe-To-Spend, which is the default.`,
		Args: cobra.ExactArgs(1),
		RunE: runTransfer,
	}

	cmd.Flags().String("from", "safe", "spending id to take the money from")
	cmd.Flags().String("to", "safe", "spending id to give the money to")

	return cmd
}

func runTransfer(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	if amount == 0 {
		return common.NewUserError("The amount must be more than zero.", common.ErrInvalidInput)
	}

	fromArg, _ := cmd.Flags().GetString("from")
	toArg, _ := cmd.Flags().GetString("to")
	from, err := parseSpendingRef(fromArg)
	if err != nil {
		return err
	}
	to, err := parseSpendingRef(toArg)
	if err != nil {
		return err
	}
	if from == nil && to == nil {
		return common.NewUserError("Pass --from or --to with an expense or goal id.", common.ErrInvalidInput)
	}

	a, err := startApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(a)

	state := a.Store.Snapshot()
	fromName, err := spendingName(a, state, from)
	if err != nil {
		return err
	}
	toName, err := spendingName(a, state, to)
	if err != nil {
		return err
	}

	if err := a.Fetcher.Transfer(cmd.Context(), from, to, amount); err != nil {
		return common.NewUserError("Transfer failed: "+common.UserMessage(err), err)
	}

	out := cmd.OutOrStdout()
	msg := fmt.Sprintf("Moved %s from %s to %s", model.FormatAmount(amount), fromName, toName)
	if _, err := fmt.Fprintln(out, cli.FormatSuccess(msg)); err != nil {
		return err
	}

	state = a.Store.Snapshot()
	account, _ := a.Selectors.SelectedBankAccount(state)
	if balance, ok := a.Selectors.Balance(state); ok {
		return cli.RenderBalance(out, account, balance)
	}
	return nil
}

func spendingName(a *app.App, state *store.State, id *uint64) (string, error) {
	if id == nil {
		return selectors.SafeToSpendLabel, nil
	}
	spending, ok := a.Selectors.SpendingByID(state, *id)
	if !ok {
		return "", common.NewUserError(fmt.Sprintf("No expense or goal with id %d.", *id), common.ErrNotFound)
	}
	return spending.Name, nil
}
