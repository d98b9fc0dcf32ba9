package model

import (
	"slices"
	"time"
)

// Transaction represents a single transaction within a bank account.
//
// Amount is signed in minor units: positive values are additions (deposits),
// negative values are expenses.
type Transaction struct {
	Date                 time.Time  `json:"date"`
	AuthorizedDate       *time.Time `json:"authorizedDate"`
	CreatedAt            time.Time  `json:"createdAt"`
	SpendingID           *uint64    `json:"spendingId"`
	SpendingAmount       *int64     `json:"spendingAmount,omitempty"`
	Name                 string     `json:"name,omitempty"`
	OriginalName         string     `json:"originalName"`
	MerchantName         string     `json:"merchantName,omitempty"`
	OriginalMerchantName string     `json:"originalMerchantName"`
	Categories           []string   `json:"categories"`
	OriginalCategories   []string   `json:"originalCategories"`
	TransactionID        uint64     `json:"transactionId"`
	BankAccountID        uint64     `json:"bankAccountId"`
	Amount               int64      `json:"amount"`
	IsPending            bool       `json:"isPending"`
}

// ID returns the transaction's id.
func (t Transaction) ID() uint64 { return t.TransactionID }

// PartitionID returns the id of the bank account the transaction belongs to.
func (t Transaction) PartitionID() uint64 { return t.BankAccountID }

// GetIsAddition reports whether the transaction added money to the account.
func (t Transaction) GetIsAddition() bool {
	return t.Amount > 0
}

// GetAmountString formats the magnitude of the transaction, the sign is conveyed by GetIsAddition.
func (t Transaction) GetAmountString() string {
	return FormatAbsAmount(t.Amount)
}

// GetTitle returns the name the user assigned, falling back to the provider's original name.
func (t Transaction) GetTitle() string {
	if t.Name != "" {
		return t.Name
	}
	return t.OriginalName
}

// GetMerchantName returns the user's merchant name when present, otherwise the original one.
func (t Transaction) GetMerchantName() string {
	if t.MerchantName != "" {
		return t.MerchantName
	}
	return t.OriginalMerchantName
}

// HasSpending reports whether the transaction was spent from an expense or goal.
func (t Transaction) HasSpending() bool {
	return t.SpendingID != nil && *t.SpendingID != 0
}

// WithSpending returns a copy of the transaction spent from the given spending object.
// A nil id moves the transaction back to Safe-To-Spend.
func (t Transaction) WithSpending(spendingID *uint64) Transaction {
	next := t.clone()
	if spendingID == nil || *spendingID == 0 {
		next.SpendingID = nil
		next.SpendingAmount = nil
		return next
	}
	id := *spendingID
	next.SpendingID = &id
	return next
}

func (t Transaction) clone() Transaction {
	next := t
	next.Categories = slices.Clone(t.Categories)
	next.OriginalCategories = slices.Clone(t.OriginalCategories)
	if t.SpendingID != nil {
		id := *t.SpendingID
		next.SpendingID = &id
	}
	if t.SpendingAmount != nil {
		amount := *t.SpendingAmount
		next.SpendingAmount = &amount
	}
	if t.AuthorizedDate != nil {
		date := *t.AuthorizedDate
		next.AuthorizedDate = &date
	}
	return next
}
