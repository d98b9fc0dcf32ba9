package store

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/monetr-client/internal/model"
)

func txn(id, bankAccountID uint64, amount int64) model.Transaction {
	return model.Transaction{TransactionID: id, BankAccountID: bankAccountID, Amount: amount}
}

func TestNewCollection_KeepsOrderAndReplacesDuplicates(t *testing.T) {
	c := NewCollection([]model.Transaction{
		txn(3, 1, -100),
		txn(1, 1, -200),
		txn(3, 1, -300),
	})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []uint64{3, 1}, c.IDs())

	got, ok := c.Get(3)
	require.True(t, ok)
	assert.Equal(t, int64(-300), got.Amount)

	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, uint64(3), first.TransactionID)
}

func TestCollection_NilIsEmpty(t *testing.T) {
	var c *Collection[model.Transaction]

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Has(1))
	assert.Nil(t, c.IDs())
	assert.Empty(t, c.Slice())

	_, ok := c.First()
	assert.False(t, ok)

	next := c.With(txn(1, 1, 10))
	assert.Equal(t, 1, next.Len())
}

func TestCollection_WithDoesNotModifyOriginal(t *testing.T) {
	original := NewCollection([]model.Transaction{txn(1, 1, -100), txn(2, 1, -200)})

	updated := original.With(txn(1, 1, -999))
	added := original.With(txn(3, 1, 50))

	before, _ := original.Get(1)
	after, _ := updated.Get(1)
	assert.Equal(t, int64(-100), before.Amount)
	assert.Equal(t, int64(-999), after.Amount)
	assert.Equal(t, []uint64{1, 2}, updated.IDs(), "replaced entity keeps its position")
	assert.Equal(t, []uint64{1, 2, 3}, added.IDs())
	assert.Equal(t, 2, original.Len())
}

func TestCollection_AllStopsEarly(t *testing.T) {
	c := NewCollection([]model.Transaction{txn(1, 1, 1), txn(2, 1, 2), txn(3, 1, 3)})

	var seen []uint64
	for item := range c.All() {
		seen = append(seen, item.TransactionID)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []uint64{1, 2}, seen)
}

func TestCollection_Filter(t *testing.T) {
	c := NewCollection([]model.Transaction{txn(1, 1, -1), txn(2, 1, 2), txn(3, 1, -3)})

	expenses := c.Filter(func(item model.Transaction) bool { return !item.GetIsAddition() })
	assert.Equal(t, []uint64{1, 3}, expenses.IDs())
}

func TestPartitioned_ReplaceDiscardsPreviousContent(t *testing.T) {
	var p *Partitioned[model.Transaction]

	p = p.Replace(1, []model.Transaction{txn(1, 1, -1), txn(2, 1, -2)})
	p = p.Replace(2, []model.Transaction{txn(3, 2, -3)})
	other := p.Get(2)

	p = p.Replace(1, []model.Transaction{txn(4, 1, -4)})

	assert.Equal(t, []uint64{4}, p.Get(1).IDs())
	assert.Same(t, other, p.Get(2), "untouched partitions keep their identity")
	assert.Equal(t, 2, p.Len())
}

func TestPartitioned_ReplaceWithNothingMarksLoaded(t *testing.T) {
	var p *Partitioned[model.Transaction]
	assert.False(t, p.Has(1))

	p = p.Replace(1, nil)
	assert.True(t, p.Has(1))
	assert.Equal(t, 0, p.Get(1).Len())
}

func TestPartitioned_UpsertTargetsOwningPartition(t *testing.T) {
	var p *Partitioned[model.Transaction]
	p = p.Replace(1, []model.Transaction{txn(1, 1, -1), txn(2, 1, -2)})
	p = p.Replace(2, []model.Transaction{txn(3, 2, -3)})

	p = p.Upsert(txn(2, 1, -22))
	p = p.Upsert(txn(5, 3, 7))

	got, ok := p.Get(1).Get(2)
	require.True(t, ok)
	assert.Equal(t, int64(-22), got.Amount)

	sibling, ok := p.Get(1).Get(1)
	require.True(t, ok)
	assert.Equal(t, int64(-1), sibling.Amount)

	assert.True(t, p.Has(3))

	found, ok := p.Find(3)
	require.True(t, ok)
	assert.Equal(t, uint64(2), found.BankAccountID)

	_, ok = p.Find(42)
	assert.False(t, ok)
}

func TestPartitioned_ReplaceSequenceLeavesOnlyLastCall(t *testing.T) {
	calls := [][]model.Transaction{
		{txn(1, 9, 1), txn(2, 9, 2), txn(3, 9, 3)},
		{txn(2, 9, 20)},
		{txn(5, 9, 5), txn(6, 9, 6)},
	}

	var p *Partitioned[model.Transaction]
	for _, call := range calls {
		p = p.Replace(9, call)
	}

	last := calls[len(calls)-1]
	assert.Equal(t, last, p.Get(9).Slice())
	assert.False(t, slices.Contains(p.Get(9).IDs(), 2))
}
