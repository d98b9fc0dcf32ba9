package store

import (
	"github.com/Veraticus/monetr-client/internal/model"
)

// Resource names a slice of server state that is fetched as a unit.
type Resource string

// Resources tracked by the store.
const (
	ResourceLinks            Resource = "links"
	ResourceBankAccounts     Resource = "bankAccounts"
	ResourceTransactions     Resource = "transactions"
	ResourceSpending         Resource = "spending"
	ResourceFundingSchedules Resource = "fundingSchedules"
	ResourceBalances         Resource = "balances"
)

// Phase is the request lifecycle of a resource.
type Phase uint8

// Request phases.
const (
	PhaseIdle Phase = iota
	PhaseRequested
	PhaseSucceeded
	PhaseFailed
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRequested:
		return "requested"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Selection is the transient UI selection the selectors read. Zero means nothing selected.
type Selection struct {
	BankAccountID uint64
	TransactionID uint64
	ExpenseID     uint64
	GoalID        uint64
}

// State is an immutable snapshot of the store. Callers must treat every field as read-only.
type State struct {
	BankAccounts     *Collection[model.BankAccount]
	Links            *Collection[model.Link]
	Balances         *Collection[model.Balance]
	Transactions     *Partitioned[model.Transaction]
	Spending         *Partitioned[model.Spending]
	FundingSchedules *Partitioned[model.FundingSchedule]
	phases           map[Resource]Phase
	Selection        Selection
	epoch            uint64
}

// Epoch identifies the store generation the state belongs to. It advances on Clear.
func (s *State) Epoch() uint64 {
	return s.epoch
}

// Phase returns the request phase of a resource.
func (s *State) Phase(resource Resource) Phase {
	return s.phases[resource]
}

// MismatchedSpendingRefs returns the ids of the bank account's transactions whose spending id
// does not resolve to a spending object of that same bank account. The store accepts such
// transactions as the API returned them; this only reports them.
func (s *State) MismatchedSpendingRefs(bankAccountID uint64) []uint64 {
	if !s.Spending.Has(bankAccountID) {
		return nil
	}
	spending := s.Spending.Get(bankAccountID)
	var mismatched []uint64
	for txn := range s.Transactions.Get(bankAccountID).All() {
		if txn.HasSpending() && !spending.Has(*txn.SpendingID) {
			mismatched = append(mismatched, txn.TransactionID)
		}
	}
	return mismatched
}
