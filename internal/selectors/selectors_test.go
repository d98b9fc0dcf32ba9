package selectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/monetr-client/internal/model"
	"github.com/Veraticus/monetr-client/internal/store"
)

func uint64Ptr(v uint64) *uint64 { return &v }

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	s.Update(func(tx *store.Tx) {
		tx.ReplaceBankAccounts([]model.BankAccount{
			{BankAccountID: 100, Name: "Checking"},
			{BankAccountID: 200, Name: "Savings"},
		})
		tx.ReplaceTransactions(100, []model.Transaction{
			{TransactionID: 1, BankAccountID: 100, Amount: -2550, SpendingID: uint64Ptr(10)},
			{TransactionID: 2, BankAccountID: 100, Amount: 500},
		})
		tx.ReplaceTransactions(200, []model.Transaction{
			{TransactionID: 3, BankAccountID: 200, Amount: -100},
		})
		tx.ReplaceSpending(100, []model.Spending{
			{SpendingID: 10, BankAccountID: 100, Name: "Rent", SpendingType: model.SpendingTypeExpense},
			{SpendingID: 11, BankAccountID: 100, Name: "Vacation", SpendingType: model.SpendingTypeGoal},
			{SpendingID: 12, BankAccountID: 100, Name: "Power", SpendingType: model.SpendingTypeExpense},
		})
		tx.ReplaceFundingSchedules(100, []model.FundingSchedule{
			{FundingScheduleID: 5, BankAccountID: 100, Name: "Payday"},
		})
		tx.ReplaceBalances([]model.Balance{{BankAccountID: 100, Safe: 1234}})
	})
	return s
}

func TestSelectedBankAccountID(t *testing.T) {
	sel := New()

	empty := store.New()
	assert.Equal(t, uint64(0), sel.SelectedBankAccountID(empty.Snapshot()))
	_, ok := sel.SelectedBankAccount(empty.Snapshot())
	assert.False(t, ok)

	s := seededStore(t)
	assert.Equal(t, uint64(100), sel.SelectedBankAccountID(s.Snapshot()), "defaults to the first account")

	s.Update(func(tx *store.Tx) { tx.SelectBankAccount(200) })
	assert.Equal(t, uint64(200), sel.SelectedBankAccountID(s.Snapshot()))

	account, ok := sel.SelectedBankAccount(s.Snapshot())
	require.True(t, ok)
	assert.Equal(t, "Savings", account.GetName())

	s.Update(func(tx *store.Tx) { tx.SelectBankAccount(999) })
	assert.Equal(t, uint64(100), sel.SelectedBankAccountID(s.Snapshot()), "unknown selection falls back to the first account")
}

func TestTransactions_ReferenceStableWithoutMutation(t *testing.T) {
	sel := New()
	s := seededStore(t)

	first := sel.Transactions(s.Snapshot())
	second := sel.Transactions(s.Snapshot())
	assert.Same(t, first, second)

	// Unrelated updates replace the state but not the transaction partition.
	s.Update(func(tx *store.Tx) { tx.SelectTransaction(1) })
	assert.Same(t, first, sel.Transactions(s.Snapshot()))
}

func TestTransactions_SwitchingAccountRecomputes(t *testing.T) {
	sel := New()
	s := seededStore(t)

	assert.Equal(t, []uint64{1, 2}, sel.Transactions(s.Snapshot()).IDs())

	s.Update(func(tx *store.Tx) { tx.SelectBankAccount(200) })
	assert.Equal(t, []uint64{3}, sel.Transactions(s.Snapshot()).IDs())

	s.Update(func(tx *store.Tx) { tx.SelectBankAccount(100) })
	assert.Equal(t, []uint64{1, 2}, sel.Transactions(s.Snapshot()).IDs())
}

func TestTransactions_UnloadedPartitionIsEmpty(t *testing.T) {
	sel := New()
	s := store.New()
	s.Update(func(tx *store.Tx) {
		tx.ReplaceBankAccounts([]model.BankAccount{{BankAccountID: 1}})
	})

	assert.Equal(t, 0, sel.Transactions(s.Snapshot()).Len())
	assert.Equal(t, 0, sel.Spending(s.Snapshot()).Len())
	assert.Equal(t, 0, sel.FundingSchedules(s.Snapshot()).Len())
	assert.Empty(t, sel.ExpenseIDs(s.Snapshot()))
	assert.Empty(t, sel.GoalIDs(s.Snapshot()))
	_, ok := sel.Balance(s.Snapshot())
	assert.False(t, ok)
}

func TestTransactionByID(t *testing.T) {
	sel := New()
	s := seededStore(t)

	got, ok := sel.TransactionByID(s.Snapshot(), 2)
	require.True(t, ok)
	assert.Equal(t, int64(500), got.Amount)

	_, ok = sel.TransactionByID(s.Snapshot(), 3)
	assert.False(t, ok, "transaction of another account is not in the selected partition")

	_, ok = sel.TransactionByID(s.Snapshot(), 404)
	assert.False(t, ok)
}

func TestTransactionByID_AfterUpsert(t *testing.T) {
	sel := New()
	s := seededStore(t)

	updated := model.Transaction{TransactionID: 2, BankAccountID: 100, Amount: 500, Name: "Paycheck", SpendingID: uint64Ptr(12)}
	s.Update(func(tx *store.Tx) { tx.UpsertTransaction(updated) })

	got, ok := sel.TransactionByID(s.Snapshot(), 2)
	require.True(t, ok)
	assert.Equal(t, updated, got)

	sibling, ok := sel.TransactionByID(s.Snapshot(), 1)
	require.True(t, ok)
	assert.Equal(t, int64(-2550), sibling.Amount)
}

func TestSelectedTransaction(t *testing.T) {
	sel := New()
	s := seededStore(t)

	_, ok := sel.SelectedTransaction(s.Snapshot())
	assert.False(t, ok)

	s.Update(func(tx *store.Tx) { tx.SelectTransaction(1) })
	got, ok := sel.SelectedTransaction(s.Snapshot())
	require.True(t, ok)
	assert.Equal(t, uint64(1), got.TransactionID)
	assert.True(t, sel.TransactionIsSelected(s.Snapshot(), 1))
	assert.False(t, sel.TransactionIsSelected(s.Snapshot(), 2))

	s.Update(func(tx *store.Tx) { tx.SelectTransaction(3) })
	_, ok = sel.SelectedTransaction(s.Snapshot())
	assert.False(t, ok, "selection outside the current partition resolves to nothing")

	s.Update(func(tx *store.Tx) { tx.SelectBankAccount(200) })
	_, ok = sel.SelectedTransaction(s.Snapshot())
	assert.False(t, ok, "switching accounts clears the selected transaction")
}

func TestSpendingForTransaction(t *testing.T) {
	sel := New()
	s := seededStore(t)
	state := s.Snapshot()

	spent, _ := sel.TransactionByID(state, 1)
	spending, ok := sel.SpendingForTransaction(state, spent)
	require.True(t, ok)
	assert.Equal(t, "Rent", spending.Name)
	assert.Equal(t, "Rent", sel.SpentFromLabel(state, spent))

	unassigned, _ := sel.TransactionByID(state, 2)
	_, ok = sel.SpendingForTransaction(state, unassigned)
	assert.False(t, ok)
	assert.Equal(t, "Safe-To-Spend", sel.SpentFromLabel(state, unassigned))

	dangling := model.Transaction{TransactionID: 9, BankAccountID: 100, SpendingID: uint64Ptr(999)}
	assert.Equal(t, SafeToSpendLabel, sel.SpentFromLabel(state, dangling))

	_, ok = sel.SpendingByID(state, 404)
	assert.False(t, ok)
}

func TestExpensesAndGoals(t *testing.T) {
	sel := New()
	s := seededStore(t)
	state := s.Snapshot()

	assert.Equal(t, []uint64{10, 12}, sel.ExpenseIDs(state))
	assert.Equal(t, []uint64{11}, sel.GoalIDs(state))
	assert.Equal(t, []uint64{10, 12}, sel.Expenses(state).IDs())
	assert.Equal(t, []uint64{11}, sel.Goals(state).IDs())

	assert.Same(t, sel.Expenses(state), sel.Expenses(state))
	first := sel.ExpenseIDs(state)
	second := sel.ExpenseIDs(s.Snapshot())
	assert.Same(t, &first[0], &second[0], "memoized ids are returned unchanged")

	s.Update(func(tx *store.Tx) {
		tx.UpsertSpending(model.Spending{SpendingID: 13, BankAccountID: 100, SpendingType: model.SpendingTypeGoal})
	})
	assert.Equal(t, []uint64{11, 13}, sel.GoalIDs(s.Snapshot()))
}

func TestSelectedExpenseAndGoal(t *testing.T) {
	sel := New()
	s := seededStore(t)

	_, ok := sel.SelectedExpense(s.Snapshot())
	assert.False(t, ok)

	s.Update(func(tx *store.Tx) {
		tx.SelectExpense(10)
		tx.SelectGoal(11)
	})
	expense, ok := sel.SelectedExpense(s.Snapshot())
	require.True(t, ok)
	assert.Equal(t, "Rent", expense.Name)

	goal, ok := sel.SelectedGoal(s.Snapshot())
	require.True(t, ok)
	assert.Equal(t, "Vacation", goal.Name)

	s.Update(func(tx *store.Tx) { tx.SelectExpense(11) })
	_, ok = sel.SelectedExpense(s.Snapshot())
	assert.False(t, ok, "a goal id is not a selected expense")
}

func TestFundingSchedulesAndBalance(t *testing.T) {
	sel := New()
	s := seededStore(t)

	schedule, ok := sel.FundingScheduleByID(s.Snapshot(), 5)
	require.True(t, ok)
	assert.Equal(t, "Payday", schedule.Name)

	balance, ok := sel.Balance(s.Snapshot())
	require.True(t, ok)
	assert.Equal(t, "$12.34", balance.GetSafeToSpendString())

	s.Update(func(tx *store.Tx) { tx.SelectBankAccount(200) })
	assert.Equal(t, 0, sel.FundingSchedules(s.Snapshot()).Len())
	_, ok = sel.Balance(s.Snapshot())
	assert.False(t, ok)
}

func TestHasAnyLinksAndLoading(t *testing.T) {
	sel := New()
	s := store.New()
	assert.False(t, sel.HasAnyLinks(s.Snapshot()))

	s.Update(func(tx *store.Tx) {
		tx.ReplaceLinks([]model.Link{{LinkID: 1, InstitutionName: "US Bank"}})
		tx.SetPhase(store.ResourceTransactions, store.PhaseRequested)
	})
	assert.True(t, sel.HasAnyLinks(s.Snapshot()))
	assert.True(t, sel.IsLoading(s.Snapshot(), store.ResourceTransactions))
	assert.False(t, sel.IsLoading(s.Snapshot(), store.ResourceSpending))
}

func TestSelectorsDoNotShareCaches(t *testing.T) {
	a, b := New(), New()
	first := seededStore(t)
	second := store.New()
	second.Update(func(tx *store.Tx) {
		tx.ReplaceBankAccounts([]model.BankAccount{{BankAccountID: 7}})
	})

	assert.Equal(t, uint64(100), a.SelectedBankAccountID(first.Snapshot()))
	assert.Equal(t, uint64(7), b.SelectedBankAccountID(second.Snapshot()))
	assert.Equal(t, uint64(100), a.SelectedBankAccountID(first.Snapshot()))
}
