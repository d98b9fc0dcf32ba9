package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/monetr-client/internal/common"
	"github.com/Veraticus/monetr-client/internal/model"
	"github.com/Veraticus/monetr-client/internal/monetr"
	"github.com/Veraticus/monetr-client/internal/store"
)

// mutate applies the write of a successful mutation, unless the store was cleared while the
// request was in flight.
func (f *Fetcher) mutate(epoch uint64, operation string, write func(tx *store.Tx)) {
	if _, err := f.store.UpdateAt(epoch, write); errors.Is(err, store.ErrStale) {
		f.logger.Debug("discarding mutation result received after store reset", "operation", operation)
	}
}

// UpdateTransaction sends a changed transaction. On success the returned transaction, and any
// spending objects the server changed with it, are upserted in one write. On failure the store
// keeps its previous values.
func (f *Fetcher) UpdateTransaction(ctx context.Context, transaction model.Transaction) (model.Transaction, error) {
	epoch := f.store.Epoch()

	result, err := f.api.UpdateTransaction(ctx, transaction)
	if err != nil {
		return model.Transaction{}, err
	}

	f.mutate(epoch, "update_transaction", func(tx *store.Tx) {
		tx.UpsertTransaction(result.Transaction)
		for _, spending := range result.Spending {
			tx.UpsertSpending(spending)
		}
	})
	return result.Transaction, nil
}

// SpendFrom assigns a transaction of the selected bank account to a spending object. A nil
// spending id spends it from Safe-To-Spend.
func (f *Fetcher) SpendFrom(ctx context.Context, transactionID uint64, spendingID *uint64) (model.Transaction, error) {
	state := f.store.Snapshot()
	transaction, ok := f.selectors.TransactionByID(state, transactionID)
	if !ok {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", transactionID, common.ErrNotFound)
	}
	if spendingID != nil && *spendingID != 0 {
		if _, ok := f.selectors.SpendingByID(state, *spendingID); !ok {
			return model.Transaction{}, fmt.Errorf("spending %d: %w", *spendingID, common.ErrNotFound)
		}
	}
	return f.UpdateTransaction(ctx, transaction.WithSpending(spendingID))
}

// CreateSpending creates an expense or goal in the selected bank account and upserts it.
func (f *Fetcher) CreateSpending(ctx context.Context, spending model.Spending) (model.Spending, error) {
	if spending.BankAccountID == 0 {
		bankAccountID, err := f.selectedBankAccount()
		if err != nil {
			return model.Spending{}, fmt.Errorf("failed to create spending: %w", err)
		}
		spending.BankAccountID = bankAccountID
	}
	epoch := f.store.Epoch()

	created, err := f.api.CreateSpending(ctx, spending)
	if err != nil {
		return model.Spending{}, err
	}

	f.mutate(epoch, "create_spending", func(tx *store.Tx) {
		tx.UpsertSpending(created)
	})
	return created, nil
}

// Transfer moves amount between two spending objects of the selected bank account. A nil id on
// either side means Safe-To-Spend. The updated balance and spending objects are upserted in one
// write.
func (f *Fetcher) Transfer(ctx context.Context, from, to *uint64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: transfer amount must be positive", common.ErrInvalidInput)
	}
	if from == nil && to == nil {
		return fmt.Errorf("%w: transfer needs a spending object on at least one side", common.ErrInvalidInput)
	}
	bankAccountID, err := f.selectedBankAccount()
	if err != nil {
		return fmt.Errorf("failed to transfer: %w", err)
	}
	epoch := f.store.Epoch()

	result, err := f.api.TransferSpending(ctx, bankAccountID, monetr.TransferRequest{
		FromSpendingID: from,
		ToSpendingID:   to,
		Amount:         amount,
	})
	if err != nil {
		return err
	}

	f.mutate(epoch, "transfer", func(tx *store.Tx) {
		if result.Balance.BankAccountID == 0 {
			result.Balance.BankAccountID = bankAccountID
		}
		tx.UpsertBalance(result.Balance)
		for _, spending := range result.Spending {
			tx.UpsertSpending(spending)
		}
	})
	return nil
}

// SelectBankAccount changes the selected bank account. The transaction, expense and goal
// selections are reset when the account changes.
func (f *Fetcher) SelectBankAccount(bankAccountID uint64) {
	f.store.Update(func(tx *store.Tx) { tx.SelectBankAccount(bankAccountID) })
}

// SelectTransaction changes the selected transaction, zero clears it.
func (f *Fetcher) SelectTransaction(transactionID uint64) {
	f.store.Update(func(tx *store.Tx) { tx.SelectTransaction(transactionID) })
}

// SelectExpense changes the selected expense, zero clears it.
func (f *Fetcher) SelectExpense(spendingID uint64) {
	f.store.Update(func(tx *store.Tx) { tx.SelectExpense(spendingID) })
}

// SelectGoal changes the selected goal, zero clears it.
func (f *Fetcher) SelectGoal(spendingID uint64) {
	f.store.Update(func(tx *store.Tx) { tx.SelectGoal(spendingID) })
}
