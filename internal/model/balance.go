package model

// Balance summarizes a bank account: what is safe to spend and how much is set aside.
type Balance struct {
	BankAccountID uint64 `json:"bankAccountId"`
	Current       int64  `json:"current"`
	Available     int64  `json:"available"`
	Safe          int64  `json:"safe"`
	Expenses      int64  `json:"expenses"`
	Goals         int64  `json:"goals"`
}

// ID returns the id of the bank account the balance describes.
func (b Balance) ID() uint64 { return b.BankAccountID }

// GetSafeToSpendString formats the Safe-To-Spend amount.
func (b Balance) GetSafeToSpendString() string { return FormatAmount(b.Safe) }

// GetExpensesString formats the amount allocated to expenses.
func (b Balance) GetExpensesString() string { return FormatAmount(b.Expenses) }

// GetGoalsString formats the amount allocated to goals.
func (b Balance) GetGoalsString() string { return FormatAmount(b.Goals) }

// GetCurrentString formats the current balance.
func (b Balance) GetCurrentString() string { return FormatAmount(b.Current) }

// GetAvailableString formats the available balance.
func (b Balance) GetAvailableString() string { return FormatAmount(b.Available) }
