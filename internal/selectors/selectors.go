// Package selectors derives view-ready values from store snapshots.
//
// Every selector is a pure function of a *store.State. Selectors that build new values memoize
// on their inputs and return the previous result unchanged while those inputs are the same.
package selectors

import (
	"github.com/Veraticus/monetr-client/internal/model"
	"github.com/Veraticus/monetr-client/internal/store"
)

// SafeToSpendLabel is shown for transactions that were not spent from an expense or goal.
const SafeToSpendLabel = "Safe-To-Spend"

type bankAccountKey struct {
	accounts *store.Collection[model.BankAccount]
	selected uint64
}

type partitionKey[T store.PartitionedEntity] struct {
	parts         *store.Partitioned[T]
	bankAccountID uint64
}

type spendingCollection = *store.Collection[model.Spending]

// Selectors holds the memoization state of every selector. Each instance is independent, so
// tests and separate stores never share cached results.
type Selectors struct {
	selectedBankAccountID *memo[bankAccountKey, uint64]
	transactions          *memo[partitionKey[model.Transaction], *store.Collection[model.Transaction]]
	spending              *memo[partitionKey[model.Spending], spendingCollection]
	fundingSchedules      *memo[partitionKey[model.FundingSchedule], *store.Collection[model.FundingSchedule]]
	expenses              *memo[spendingCollection, spendingCollection]
	goals                 *memo[spendingCollection, spendingCollection]
	expenseIDs            *memo[spendingCollection, []uint64]
	goalIDs               *memo[spendingCollection, []uint64]
}

// New creates a set of selectors with empty caches.
func New() *Selectors {
	return &Selectors{
		selectedBankAccountID: newMemo(resolveBankAccountID),
		transactions:          newMemo(partition[model.Transaction]),
		spending:              newMemo(partition[model.Spending]),
		fundingSchedules:      newMemo(partition[model.FundingSchedule]),
		expenses:              newMemo(filterSpending(model.Spending.IsExpense)),
		goals:                 newMemo(filterSpending(model.Spending.IsGoal)),
		expenseIDs:            newMemo(filterSpendingIDs(model.Spending.IsExpense)),
		goalIDs:               newMemo(filterSpendingIDs(model.Spending.IsGoal)),
	}
}

func resolveBankAccountID(key bankAccountKey) uint64 {
	if key.selected != 0 && key.accounts.Has(key.selected) {
		return key.selected
	}
	first, ok := key.accounts.First()
	if !ok {
		return 0
	}
	return first.BankAccountID
}

func partition[T store.PartitionedEntity](key partitionKey[T]) *store.Collection[T] {
	return key.parts.Get(key.bankAccountID)
}

func filterSpending(keep func(model.Spending) bool) func(spendingCollection) spendingCollection {
	return func(spending spendingCollection) spendingCollection {
		return spending.Filter(keep)
	}
}

func filterSpendingIDs(keep func(model.Spending) bool) func(spendingCollection) []uint64 {
	return func(spending spendingCollection) []uint64 {
		ids := make([]uint64, 0, spending.Len())
		for item := range spending.All() {
			if keep(item) {
				ids = append(ids, item.SpendingID)
			}
		}
		return ids
	}
}

// SelectedBankAccountID returns the selected bank account, or the first known bank account when
// the selection is unset or no longer exists. Zero when there are no bank accounts.
func (s *Selectors) SelectedBankAccountID(state *store.State) uint64 {
	return s.selectedBankAccountID.get(bankAccountKey{
		accounts: state.BankAccounts,
		selected: state.Selection.BankAccountID,
	})
}

// SelectedBankAccount returns the bank account SelectedBankAccountID resolves to.
func (s *Selectors) SelectedBankAccount(state *store.State) (model.BankAccount, bool) {
	return state.BankAccounts.Get(s.SelectedBankAccountID(state))
}

// Transactions returns the transactions of the selected bank account in the order the API
// returned them. Nil when that partition was never loaded.
func (s *Selectors) Transactions(state *store.State) *store.Collection[model.Transaction] {
	return s.transactions.get(partitionKey[model.Transaction]{
		parts:         state.Transactions,
		bankAccountID: s.SelectedBankAccountID(state),
	})
}

// TransactionByID looks a transaction up within the selected bank account.
func (s *Selectors) TransactionByID(state *store.State, transactionID uint64) (model.Transaction, bool) {
	return s.Transactions(state).Get(transactionID)
}

// SelectedTransaction returns the selected transaction when one is selected and still present.
func (s *Selectors) SelectedTransaction(state *store.State) (model.Transaction, bool) {
	if state.Selection.TransactionID == 0 {
		return model.Transaction{}, false
	}
	return s.TransactionByID(state, state.Selection.TransactionID)
}

// TransactionIsSelected reports whether transactionID is the selected transaction.
func (s *Selectors) TransactionIsSelected(state *store.State, transactionID uint64) bool {
	return transactionID != 0 && state.Selection.TransactionID == transactionID
}

// Spending returns the expenses and goals of the selected bank account.
func (s *Selectors) Spending(state *store.State) spendingCollection {
	return s.spending.get(partitionKey[model.Spending]{
		parts:         state.Spending,
		bankAccountID: s.SelectedBankAccountID(state),
	})
}

// SpendingByID looks a spending object up within the selected bank account.
func (s *Selectors) SpendingByID(state *store.State, spendingID uint64) (model.Spending, bool) {
	return s.Spending(state).Get(spendingID)
}

// SpendingForTransaction returns the spending object a transaction was spent from. A
// transaction without a spending id has none.
func (s *Selectors) SpendingForTransaction(state *store.State, txn model.Transaction) (model.Spending, bool) {
	if !txn.HasSpending() {
		return model.Spending{}, false
	}
	return s.SpendingByID(state, *txn.SpendingID)
}

// SpentFromLabel returns the name of what the transaction was spent from, Safe-To-Spend when
// it is unassigned or its spending object is unknown.
func (s *Selectors) SpentFromLabel(state *store.State, txn model.Transaction) string {
	spending, ok := s.SpendingForTransaction(state, txn)
	if !ok {
		return SafeToSpendLabel
	}
	return spending.Name
}

// Expenses returns the expenses of the selected bank account.
func (s *Selectors) Expenses(state *store.State) spendingCollection {
	return s.expenses.get(s.Spending(state))
}

// Goals returns the goals of the selected bank account.
func (s *Selectors) Goals(state *store.State) spendingCollection {
	return s.goals.get(s.Spending(state))
}

// ExpenseIDs returns the ids of the selected bank account's expenses.
func (s *Selectors) ExpenseIDs(state *store.State) []uint64 {
	return s.expenseIDs.get(s.Spending(state))
}

// GoalIDs returns the ids of the selected bank account's goals.
func (s *Selectors) GoalIDs(state *store.State) []uint64 {
	return s.goalIDs.get(s.Spending(state))
}

// SelectedExpense returns the selected expense when it exists in the selected bank account.
func (s *Selectors) SelectedExpense(state *store.State) (model.Spending, bool) {
	spending, ok := s.SpendingByID(state, state.Selection.ExpenseID)
	if !ok || !spending.IsExpense() {
		return model.Spending{}, false
	}
	return spending, true
}

// SelectedGoal returns the selected goal when it exists in the selected bank account.
func (s *Selectors) SelectedGoal(state *store.State) (model.Spending, bool) {
	spending, ok := s.SpendingByID(state, state.Selection.GoalID)
	if !ok || !spending.IsGoal() {
		return model.Spending{}, false
	}
	return spending, true
}

// FundingSchedules returns the funding schedules of the selected bank account.
func (s *Selectors) FundingSchedules(state *store.State) *store.Collection[model.FundingSchedule] {
	return s.fundingSchedules.get(partitionKey[model.FundingSchedule]{
		parts:         state.FundingSchedules,
		bankAccountID: s.SelectedBankAccountID(state),
	})
}

// FundingScheduleByID looks a funding schedule up within the selected bank account.
func (s *Selectors) FundingScheduleByID(state *store.State, fundingScheduleID uint64) (model.FundingSchedule, bool) {
	return s.FundingSchedules(state).Get(fundingScheduleID)
}

// Balance returns the balance of the selected bank account.
func (s *Selectors) Balance(state *store.State) (model.Balance, bool) {
	return state.Balances.Get(s.SelectedBankAccountID(state))
}

// HasAnyLinks reports whether the user has connected at least one institution. It decides
// between the setup flow and the main application.
func (s *Selectors) HasAnyLinks(state *store.State) bool {
	return state.Links.Len() > 0
}

// IsLoading reports whether a request for the resource is in flight.
func (s *Selectors) IsLoading(state *store.State, resource store.Resource) bool {
	return state.Phase(resource) == store.PhaseRequested
}
