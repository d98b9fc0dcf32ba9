package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/monetr-client/internal/common"
	"github.com/Veraticus/monetr-client/internal/model"
	"github.com/Veraticus/monetr-client/internal/selectors"
	"github.com/Veraticus/monetr-client/internal/store"
)

var errBoom = errors.New("boom")

func newTestFetcher(api *fakeAPI) (*Fetcher, *store.Store, *selectors.Selectors) {
	st := store.New()
	sel := selectors.New()
	return New(api, st, sel), st, sel
}

func TestFetchBankAccounts(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	f, st, sel := newTestFetcher(api)

	require.NoError(t, f.FetchBankAccounts(ctx))
	state := st.Snapshot()
	assert.Equal(t, 2, state.BankAccounts.Len())
	assert.Equal(t, store.PhaseSucceeded, state.Phase(store.ResourceBankAccounts))
	assert.Equal(t, uint64(100), sel.SelectedBankAccountID(state))

	before := st.Snapshot().BankAccounts
	api.bankAccountsErr = errBoom
	err := f.FetchBankAccounts(ctx)
	require.ErrorIs(t, err, errBoom)

	state = st.Snapshot()
	assert.Same(t, before, state.BankAccounts)
	assert.Equal(t, store.PhaseFailed, state.Phase(store.ResourceBankAccounts))
}

func TestFetchPerAccount_NoBankAccount(t *testing.T) {
	ctx := context.Background()
	f, _, _ := newTestFetcher(newFakeAPI())

	tests := []struct {
		fetch func(context.Context) error
		name  string
	}{
		{name: "transactions", fetch: func(ctx context.Context) error { return f.FetchTransactions(ctx, 25, 0) }},
		{name: "spending", fetch: f.FetchSpending},
		{name: "funding schedules", fetch: f.FetchFundingSchedules},
		{name: "balances", fetch: f.FetchBalances},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fetch(ctx), common.ErrNoBankAccount)
		})
	}
}

func TestFetchTransactions_ReplaceAndAppend(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	f, st, sel := newTestFetcher(api)
	require.NoError(t, f.FetchBankAccounts(ctx))

	require.NoError(t, f.FetchTransactions(ctx, 25, 0))
	assert.Equal(t, []uint64{1, 2}, sel.Transactions(st.Snapshot()).IDs())

	api.transactions[100] = []model.Transaction{{TransactionID: 7, BankAccountID: 100}}
	require.NoError(t, f.FetchTransactions(ctx, 25, 25))
	assert.Equal(t, []uint64{1, 2, 7}, sel.Transactions(st.Snapshot()).IDs())

	api.transactions[100] = []model.Transaction{{TransactionID: 8, BankAccountID: 100}}
	require.NoError(t, f.FetchTransactions(ctx, 25, 0))
	assert.Equal(t, []uint64{8}, sel.Transactions(st.Snapshot()).IDs())
}

func TestFetchTransactions_PageWithoutBankAccountID(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	f, st, sel := newTestFetcher(api)
	require.NoError(t, f.FetchBankAccounts(ctx))
	require.NoError(t, f.FetchTransactions(ctx, 25, 0))

	api.transactions[100] = []model.Transaction{{TransactionID: 7, Amount: -300}}
	require.NoError(t, f.FetchTransactions(ctx, 25, 25))

	state := st.Snapshot()
	assert.Equal(t, []uint64{1, 2, 7}, sel.Transactions(state).IDs())
	assert.False(t, state.Transactions.Has(0))

	txn, ok := sel.TransactionByID(state, 7)
	require.True(t, ok)
	assert.Equal(t, uint64(100), txn.BankAccountID)
}

func TestFetchTransactions_LaterPageLoadsFirstPage(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	f, st, sel := newTestFetcher(api)
	require.NoError(t, f.FetchBankAccounts(ctx))

	require.NoError(t, f.FetchTransactions(ctx, 25, 25))
	assert.Equal(t, 2, api.count("transactions"))
	assert.Equal(t, []uint64{1, 2}, sel.Transactions(st.Snapshot()).IDs())

	require.NoError(t, f.FetchInitialTransactionsIfNeeded(ctx))
	assert.Equal(t, 2, api.count("transactions"))
}

func TestFetchInitialTransactionsIfNeeded(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	f, st, sel := newTestFetcher(api)

	require.NoError(t, f.FetchInitialTransactionsIfNeeded(ctx))
	assert.Equal(t, 0, api.count("transactions"), "no bank account yet")

	require.NoError(t, f.FetchBankAccounts(ctx))
	require.NoError(t, f.FetchInitialTransactionsIfNeeded(ctx))
	require.NoError(t, f.FetchInitialTransactionsIfNeeded(ctx))
	assert.Equal(t, 1, api.count("transactions"))

	f.SelectBankAccount(200)
	require.NoError(t, f.FetchInitialTransactionsIfNeeded(ctx))
	assert.Equal(t, 2, api.count("transactions"))
	assert.Equal(t, []uint64{3}, sel.Transactions(st.Snapshot()).IDs())
}

func TestFetch_ResultAfterClearIsDropped(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	f, st, _ := newTestFetcher(api)
	require.NoError(t, f.FetchBankAccounts(ctx))

	api.beforeReturn = func(call string) {
		if call == "spending" {
			st.Clear()
		}
	}

	require.NoError(t, f.FetchSpending(ctx))

	state := st.Snapshot()
	assert.Zero(t, state.Spending.Len())
	assert.Zero(t, state.BankAccounts.Len())
	assert.Equal(t, store.PhaseIdle, state.Phase(store.ResourceSpending))
}

func TestFetch_FailureAfterClearIsReturned(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	f, st, _ := newTestFetcher(api)
	require.NoError(t, f.FetchBankAccounts(ctx))

	api.balancesErr = errBoom
	api.beforeReturn = func(call string) {
		if call == "balances" {
			st.Clear()
		}
	}

	assert.ErrorIs(t, f.FetchBalances(ctx), errBoom)
	assert.Equal(t, store.PhaseIdle, st.Snapshot().Phase(store.ResourceBalances))
}

func TestFetchSpending_MismatchedReferencesAreKept(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	spendingID := uint64(404)
	api.transactions[100] = []model.Transaction{{TransactionID: 1, BankAccountID: 100, SpendingID: &spendingID}}
	f, st, sel := newTestFetcher(api)

	require.NoError(t, f.FetchBankAccounts(ctx))
	require.NoError(t, f.FetchTransactions(ctx, 25, 0))
	require.NoError(t, f.FetchSpending(ctx))

	state := st.Snapshot()
	assert.Equal(t, []uint64{1}, state.MismatchedSpendingRefs(100))
	txn, ok := sel.TransactionByID(state, 1)
	require.True(t, ok)
	assert.Equal(t, selectors.SafeToSpendLabel, sel.SpentFromLabel(state, txn))
}
