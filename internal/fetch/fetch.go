// Package fetch implements the operations that load server state into the store and the
// mutations that change it.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/monetr-client/internal/common"
	"github.com/Veraticus/monetr-client/internal/model"
	"github.com/Veraticus/monetr-client/internal/monetr"
	"github.com/Veraticus/monetr-client/internal/selectors"
	"github.com/Veraticus/monetr-client/internal/store"
)

// InitialTransactionLimit is the size of the first transaction page loaded for an account.
const InitialTransactionLimit = 25

// API is the part of the monetr API the fetch operations use.
type API interface {
	GetLinks(ctx context.Context) ([]model.Link, error)
	GetBankAccounts(ctx context.Context) ([]model.BankAccount, error)
	GetTransactions(ctx context.Context, bankAccountID uint64, limit, offset int) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, transaction model.Transaction) (monetr.TransactionUpdate, error)
	GetSpending(ctx context.Context, bankAccountID uint64) ([]model.Spending, error)
	CreateSpending(ctx context.Context, spending model.Spending) (model.Spending, error)
	TransferSpending(ctx context.Context, bankAccountID uint64, request monetr.TransferRequest) (monetr.TransferResult, error)
	GetFundingSchedules(ctx context.Context, bankAccountID uint64) ([]model.FundingSchedule, error)
	GetBalances(ctx context.Context, bankAccountID uint64) (model.Balance, error)
}

// Fetcher runs fetch and mutation operations against one store.
type Fetcher struct {
	api       API
	store     *store.Store
	selectors *selectors.Selectors
	logger    *slog.Logger
}

// New creates a fetcher writing into st. Per-account operations act on the bank account sel
// resolves as selected.
func New(api API, st *store.Store, sel *selectors.Selectors) *Fetcher {
	return &Fetcher{
		api:       api,
		store:     st,
		selectors: sel,
		logger:    slog.Default().With("component", "fetch"),
	}
}

// run records the request phases of resource around call. A successful call's write is applied
// together with the Succeeded phase. When the store was cleared while call was in flight its
// result is dropped; a failure is still returned to the caller.
func (f *Fetcher) run(ctx context.Context, resource store.Resource, call func(ctx context.Context) (func(tx *store.Tx), error)) error {
	epoch := f.store.Epoch()
	if _, err := f.store.UpdateAt(epoch, func(tx *store.Tx) {
		tx.SetPhase(resource, store.PhaseRequested)
	}); err != nil {
		return err
	}

	write, err := call(ctx)
	if err != nil {
		if _, staleErr := f.store.UpdateAt(epoch, func(tx *store.Tx) {
			tx.SetPhase(resource, store.PhaseFailed)
		}); staleErr != nil {
			f.logger.Debug("store reset during failed request", "resource", resource)
		}
		return err
	}

	_, err = f.store.UpdateAt(epoch, func(tx *store.Tx) {
		write(tx)
		tx.SetPhase(resource, store.PhaseSucceeded)
	})
	if errors.Is(err, store.ErrStale) {
		f.logger.Debug("discarding result received after store reset", "resource", resource)
		return nil
	}
	return err
}

// selectedBankAccount returns the bank account per-account operations act on.
func (f *Fetcher) selectedBankAccount() (uint64, error) {
	bankAccountID := f.selectors.SelectedBankAccountID(f.store.Snapshot())
	if bankAccountID == 0 {
		return 0, common.ErrNoBankAccount
	}
	return bankAccountID, nil
}

// FetchLinks replaces the link collection.
func (f *Fetcher) FetchLinks(ctx context.Context) error {
	return f.run(ctx, store.ResourceLinks, func(ctx context.Context) (func(tx *store.Tx), error) {
		links, err := f.api.GetLinks(ctx)
		if err != nil {
			return nil, err
		}
		return func(tx *store.Tx) { tx.ReplaceLinks(links) }, nil
	})
}

// FetchBankAccounts replaces the bank account collection.
func (f *Fetcher) FetchBankAccounts(ctx context.Context) error {
	return f.run(ctx, store.ResourceBankAccounts, func(ctx context.Context) (func(tx *store.Tx), error) {
		accounts, err := f.api.GetBankAccounts(ctx)
		if err != nil {
			return nil, err
		}
		return func(tx *store.Tx) { tx.ReplaceBankAccounts(accounts) }, nil
	})
}

// FetchTransactions loads a page of the selected bank account's transactions. The first page
// replaces the partition, later pages are appended to it. A later page for an account whose
// first page never loaded fetches the first page before it.
func (f *Fetcher) FetchTransactions(ctx context.Context, limit, offset int) error {
	bankAccountID, err := f.selectedBankAccount()
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}
	if offset > 0 && !f.store.Snapshot().Transactions.Has(bankAccountID) {
		if err := f.FetchTransactions(ctx, limit, 0); err != nil {
			return err
		}
	}

	return f.run(ctx, store.ResourceTransactions, func(ctx context.Context) (func(tx *store.Tx), error) {
		transactions, err := f.api.GetTransactions(ctx, bankAccountID, limit, offset)
		if err != nil {
			return nil, err
		}
		for i := range transactions {
			transactions[i].BankAccountID = bankAccountID
		}
		return func(tx *store.Tx) {
			if offset > 0 {
				transactions = append(tx.State().Transactions.Get(bankAccountID).Slice(), transactions...)
			}
			tx.ReplaceTransactions(bankAccountID, transactions)
			f.warnMismatchedSpending(tx.State(), bankAccountID)
		}, nil
	})
}

// FetchInitialTransactionsIfNeeded loads the first page of transactions unless the selected
// bank account already has them or a request is in flight.
func (f *Fetcher) FetchInitialTransactionsIfNeeded(ctx context.Context) error {
	_, err := f.fetchInitialTransactions(ctx)
	return err
}

// fetchInitialTransactions reports whether a request was made.
func (f *Fetcher) fetchInitialTransactions(ctx context.Context) (bool, error) {
	state := f.store.Snapshot()
	bankAccountID := f.selectors.SelectedBankAccountID(state)
	if bankAccountID == 0 {
		return false, nil
	}
	if state.Transactions.Has(bankAccountID) || f.selectors.IsLoading(state, store.ResourceTransactions) {
		return false, nil
	}
	return true, f.FetchTransactions(ctx, InitialTransactionLimit, 0)
}

// FetchSpending replaces the selected bank account's expenses and goals.
func (f *Fetcher) FetchSpending(ctx context.Context) error {
	bankAccountID, err := f.selectedBankAccount()
	if err != nil {
		return fmt.Errorf("failed to fetch spending: %w", err)
	}

	return f.run(ctx, store.ResourceSpending, func(ctx context.Context) (func(tx *store.Tx), error) {
		spending, err := f.api.GetSpending(ctx, bankAccountID)
		if err != nil {
			return nil, err
		}
		return func(tx *store.Tx) {
			tx.ReplaceSpending(bankAccountID, spending)
			f.warnMismatchedSpending(tx.State(), bankAccountID)
		}, nil
	})
}

// FetchFundingSchedules replaces the selected bank account's funding schedules.
func (f *Fetcher) FetchFundingSchedules(ctx context.Context) error {
	bankAccountID, err := f.selectedBankAccount()
	if err != nil {
		return fmt.Errorf("failed to fetch funding schedules: %w", err)
	}

	return f.run(ctx, store.ResourceFundingSchedules, func(ctx context.Context) (func(tx *store.Tx), error) {
		schedules, err := f.api.GetFundingSchedules(ctx, bankAccountID)
		if err != nil {
			return nil, err
		}
		return func(tx *store.Tx) { tx.ReplaceFundingSchedules(bankAccountID, schedules) }, nil
	})
}

// FetchBalances sets the selected bank account's balance.
func (f *Fetcher) FetchBalances(ctx context.Context) error {
	bankAccountID, err := f.selectedBankAccount()
	if err != nil {
		return fmt.Errorf("failed to fetch balances: %w", err)
	}

	return f.run(ctx, store.ResourceBalances, func(ctx context.Context) (func(tx *store.Tx), error) {
		balance, err := f.api.GetBalances(ctx, bankAccountID)
		if err != nil {
			return nil, err
		}
		return func(tx *store.Tx) { tx.UpsertBalance(balance) }, nil
	})
}

func (f *Fetcher) warnMismatchedSpending(state *store.State, bankAccountID uint64) {
	if mismatched := state.MismatchedSpendingRefs(bankAccountID); len(mismatched) > 0 {
		f.logger.Warn("transactions reference spending outside their bank account",
			"bank_account_id", bankAccountID,
			"transaction_ids", mismatched)
	}
}
