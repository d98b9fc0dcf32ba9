package model

import "time"

// SpendingType distinguishes expenses from goals.
type SpendingType uint8

// Spending types, as encoded by the API.
const (
	SpendingTypeExpense SpendingType = iota
	SpendingTypeGoal
)

// String returns the human readable name of the spending type.
func (s SpendingType) String() string {
	switch s {
	case SpendingTypeExpense:
		return "expense"
	case SpendingTypeGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Spending is an expense or a goal belonging to a bank account. Transactions can be spent
// from a Spending object instead of from Safe-To-Spend.
type Spending struct {
	NextRecurrence         time.Time    `json:"nextRecurrence"`
	DateCreated            time.Time    `json:"dateCreated"`
	LastRecurrence         *time.Time   `json:"lastRecurrence"`
	RecurrenceRule         string       `json:"recurrenceRule,omitempty"`
	Name                   string       `json:"name"`
	Description            string       `json:"description,omitempty"`
	SpendingID             uint64       `json:"spendingId"`
	BankAccountID          uint64       `json:"bankAccountId"`
	FundingScheduleID      uint64       `json:"fundingScheduleId"`
	TargetAmount           int64        `json:"targetAmount"`
	CurrentAmount          int64        `json:"currentAmount"`
	UsedAmount             int64        `json:"usedAmount"`
	NextContributionAmount int64        `json:"nextContributionAmount"`
	SpendingType           SpendingType `json:"spendingType"`
	IsBehind               bool         `json:"isBehind"`
	IsPaused               bool         `json:"isPaused"`
}

// ID returns the spending object's id.
func (s Spending) ID() uint64 { return s.SpendingID }

// PartitionID returns the id of the bank account the spending object belongs to.
func (s Spending) PartitionID() uint64 { return s.BankAccountID }

// IsExpense reports whether this is an expense.
func (s Spending) IsExpense() bool { return s.SpendingType == SpendingTypeExpense }

// IsGoal reports whether this is a goal.
func (s Spending) IsGoal() bool { return s.SpendingType == SpendingTypeGoal }

// GetProgressAmount returns how far along the spending object is. Goals keep progress for
// money already spent from them, so their used amount counts as progress.
func (s Spending) GetProgressAmount() int64 {
	if s.IsGoal() {
		return s.CurrentAmount + s.UsedAmount
	}
	return s.CurrentAmount
}

// GetIsComplete reports whether the target amount has been reached.
func (s Spending) GetIsComplete() bool {
	return s.GetProgressAmount() >= s.TargetAmount
}

// GetTargetAmountString formats the target amount.
func (s Spending) GetTargetAmountString() string {
	return FormatAmount(s.TargetAmount)
}

// GetCurrentAmountString formats the currently allocated amount.
func (s Spending) GetCurrentAmountString() string {
	return FormatAmount(s.CurrentAmount)
}

// GetUsedAmountString formats the amount already spent from a goal.
func (s Spending) GetUsedAmountString() string {
	return FormatAmount(s.UsedAmount)
}

// GetNextContributionAmountString formats the amount allocated on the next funding.
func (s Spending) GetNextContributionAmountString() string {
	return FormatAmount(s.NextContributionAmount)
}
