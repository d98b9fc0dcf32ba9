package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/monetr-client/internal/model"
)

const dateLayout = "Jan 2, 2006"

// TransactionRow is a transaction with the name of what it was spent from.
type TransactionRow struct {
	SpentFrom   string
	Transaction model.Transaction
	Selected    bool
}

// table renders rows as left aligned columns sized to their widest cell.
func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = lipgloss.Width(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		rendered := make([]string, len(cells))
		for i, cell := range cells {
			rendered[i] = lipgloss.NewStyle().Width(widths[i] + 2).Render(style.Render(cell))
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, rendered...), " ")
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, render(header, TableHeaderStyle))
	for _, row := range rows {
		lines = append(lines, render(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

func marker(selected bool) string {
	if selected {
		return SelectedStyle.Render(SelectedIcon)
	}
	return " "
}

// RenderBankAccounts writes the bank accounts, marking the selected one.
func RenderBankAccounts(w io.Writer, accounts []model.BankAccount, selectedID uint64) error {
	if len(accounts) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No bank accounts yet."))
		return err
	}

	rows := make([][]string, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, []string{
			marker(account.BankAccountID == selectedID),
			fmt.Sprint(account.BankAccountID),
			account.GetName(),
			account.Mask,
			account.GetAvailableBalanceString(),
			account.GetCurrentBalanceString(),
		})
	}
	_, err := fmt.Fprintln(w, table([]string{"", "ID", "Name", "Mask", "Available", "Current"}, rows))
	return err
}

// RenderTransactions writes transactions newest first as the API returned them.
func RenderTransactions(w io.Writer, rows []TransactionRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No transactions."))
		return err
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		txn := row.Transaction
		name := txn.GetTitle()
		if txn.IsPending {
			name = PendingIcon + " " + name
		}
		cells = append(cells, []string{
			marker(row.Selected),
			fmt.Sprint(txn.TransactionID),
			txn.Date.Format(dateLayout),
			name,
			FormatAmount(txn.GetAmountString(), txn.GetIsAddition()),
			SubtleStyle.Render(row.SpentFrom),
		})
	}
	_, err := fmt.Fprintln(w, table([]string{"", "ID", "Date", "Name", "Amount", "Spent From"}, cells))
	return err
}

// RenderExpenses writes expenses with their next recurrence.
func RenderExpenses(w io.Writer, expenses []model.Spending, selectedID uint64) error {
	if len(expenses) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No expenses."))
		return err
	}

	rows := make([][]string, 0, len(expenses))
	for _, expense := range expenses {
		status := ""
		switch {
		case expense.IsPaused:
			status = SubtleStyle.Render("paused")
		case expense.IsBehind:
			status = WarningStyle.Render("behind")
		}
		rows = append(rows, []string{
			marker(expense.SpendingID == selectedID),
			fmt.Sprint(expense.SpendingID),
			expense.Name,
			expense.GetCurrentAmountString() + " / " + expense.GetTargetAmountString(),
			expense.NextRecurrence.Format(dateLayout),
			status,
		})
	}
	_, err := fmt.Fprintln(w, table([]string{"", "ID", "Name", "Allocated", "Next", ""}, rows))
	return err
}

// RenderGoals writes goals with their progress.
func RenderGoals(w io.Writer, goals []model.Spending, selectedID uint64) error {
	if len(goals) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No goals."))
		return err
	}

	rows := make([][]string, 0, len(goals))
	for _, goal := range goals {
		progress := model.FormatAmount(goal.GetProgressAmount()) + " / " + goal.GetTargetAmountString()
		if goal.GetIsComplete() {
			progress = SuccessStyle.Render(progress)
		}
		rows = append(rows, []string{
			marker(goal.SpendingID == selectedID),
			fmt.Sprint(goal.SpendingID),
			goal.Name,
			progress,
			goal.NextRecurrence.Format(dateLayout),
		})
	}
	_, err := fmt.Fprintln(w, table([]string{"", "ID", "Name", "Progress", "Target Date"}, rows))
	return err
}

// RenderFundingSchedules writes funding schedules with their next occurrence.
func RenderFundingSchedules(w io.Writer, schedules []model.FundingSchedule) error {
	if len(schedules) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No funding schedules."))
		return err
	}

	rows := make([][]string, 0, len(schedules))
	for _, schedule := range schedules {
		rows = append(rows, []string{
			fmt.Sprint(schedule.FundingScheduleID),
			schedule.Name,
			schedule.GetNextOccurrenceString(),
			schedule.Description,
		})
	}
	_, err := fmt.Fprintln(w, table([]string{"ID", "Name", "Next", "Description"}, rows))
	return err
}

// RenderBalance writes the balance summary of a bank account.
func RenderBalance(w io.Writer, account model.BankAccount, balance model.Balance) error {
	content := strings.Join([]string{
		fmt.Sprintf("%s  %s", BoldStyle.Render("Safe-To-Spend"), balance.GetSafeToSpendString()),
		fmt.Sprintf("Expenses       %s", balance.GetExpensesString()),
		fmt.Sprintf("Goals          %s", balance.GetGoalsString()),
		fmt.Sprintf("Available      %s", balance.GetAvailableString()),
		fmt.Sprintf("Current        %s", balance.GetCurrentString()),
	}, "\n")
	_, err := fmt.Fprintln(w, RenderBox(account.GetName(), content))
	return err
}
