package store

import (
	"errors"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/Veraticus/monetr-client/internal/model"
)

// ErrStale is returned by UpdateAt when the store was cleared after the epoch was read.
var ErrStale = errors.New("store was reset since the update started")

// Store owns the current State. Writers are serialized and every write installs a complete new
// State, so readers see either the state before or after a write, never a partial one.
type Store struct {
	state       atomic.Pointer[State]
	subscribers map[int]func(*State)
	mu          sync.Mutex
	nextSubID   int
}

// New creates an empty store.
func New() *Store {
	s := &Store{subscribers: make(map[int]func(*State))}
	s.state.Store(&State{})
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() *State {
	return s.state.Load()
}

// Epoch returns the current store generation.
func (s *Store) Epoch() uint64 {
	return s.Snapshot().epoch
}

// Update applies fn to a copy of the current state and installs the result.
func (s *Store) Update(fn func(tx *Tx)) *State {
	s.mu.Lock()
	next := s.apply(fn)
	subs := s.subscriberList()
	s.mu.Unlock()

	s.notify(subs, next)
	return next
}

// UpdateAt is Update guarded by an epoch: when the store was cleared since epoch was read the
// write is dropped and ErrStale returned.
func (s *Store) UpdateAt(epoch uint64, fn func(tx *Tx)) (*State, error) {
	s.mu.Lock()
	if s.state.Load().epoch != epoch {
		s.mu.Unlock()
		return nil, ErrStale
	}
	next := s.apply(fn)
	subs := s.subscriberList()
	s.mu.Unlock()

	s.notify(subs, next)
	return next, nil
}

// Clear resets every entity collection, the selection and the request phases, and starts a
// new epoch. Used on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	next := &State{epoch: s.state.Load().epoch + 1}
	s.state.Store(next)
	subs := s.subscriberList()
	s.mu.Unlock()

	s.notify(subs, next)
}

// Subscribe registers fn to be called with every newly installed state. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(*State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) apply(fn func(tx *Tx)) *State {
	tx := &Tx{next: *s.state.Load()}
	fn(tx)
	next := tx.next
	s.state.Store(&next)
	return &next
}

func (s *Store) subscriberList() []func(*State) {
	subs := make([]func(*State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func (s *Store) notify(subs []func(*State), state *State) {
	for _, fn := range subs {
		fn(state)
	}
}

// Tx is a pending write. Its methods replace or upsert slices of the state being built.
type Tx struct {
	next         State
	phasesCopied bool
}

// State returns the state as built so far.
func (tx *Tx) State() *State {
	return &tx.next
}

// ReplaceBankAccounts installs accounts as the whole bank account collection.
func (tx *Tx) ReplaceBankAccounts(accounts []model.BankAccount) {
	tx.next.BankAccounts = NewCollection(accounts)
}

// ReplaceLinks installs links as the whole link collection.
func (tx *Tx) ReplaceLinks(links []model.Link) {
	tx.next.Links = NewCollection(links)
}

// ReplaceBalances installs balances as the whole balance collection.
func (tx *Tx) ReplaceBalances(balances []model.Balance) {
	tx.next.Balances = NewCollection(balances)
}

// ReplaceTransactions installs transactions as the partition of bankAccountID.
func (tx *Tx) ReplaceTransactions(bankAccountID uint64, transactions []model.Transaction) {
	tx.next.Transactions = tx.next.Transactions.Replace(bankAccountID, transactions)
}

// ReplaceSpending installs spending as the partition of bankAccountID.
func (tx *Tx) ReplaceSpending(bankAccountID uint64, spending []model.Spending) {
	tx.next.Spending = tx.next.Spending.Replace(bankAccountID, spending)
}

// ReplaceFundingSchedules installs schedules as the partition of bankAccountID.
func (tx *Tx) ReplaceFundingSchedules(bankAccountID uint64, schedules []model.FundingSchedule) {
	tx.next.FundingSchedules = tx.next.FundingSchedules.Replace(bankAccountID, schedules)
}

// UpsertBankAccount sets one bank account.
func (tx *Tx) UpsertBankAccount(account model.BankAccount) {
	tx.next.BankAccounts = tx.next.BankAccounts.With(account)
}

// UpsertBalance sets the balance of one bank account.
func (tx *Tx) UpsertBalance(balance model.Balance) {
	tx.next.Balances = tx.next.Balances.With(balance)
}

// UpsertTransaction sets one transaction within its bank account's partition.
func (tx *Tx) UpsertTransaction(transaction model.Transaction) {
	tx.next.Transactions = tx.next.Transactions.Upsert(transaction)
}

// UpsertSpending sets one spending object within its bank account's partition.
func (tx *Tx) UpsertSpending(spending model.Spending) {
	tx.next.Spending = tx.next.Spending.Upsert(spending)
}

// UpsertFundingSchedule sets one funding schedule within its bank account's partition.
func (tx *Tx) UpsertFundingSchedule(schedule model.FundingSchedule) {
	tx.next.FundingSchedules = tx.next.FundingSchedules.Upsert(schedule)
}

// SelectBankAccount changes the selected bank account. Selections scoped to the previous
// account are reset.
func (tx *Tx) SelectBankAccount(bankAccountID uint64) {
	if tx.next.Selection.BankAccountID == bankAccountID {
		return
	}
	tx.next.Selection = Selection{BankAccountID: bankAccountID}
}

// SelectTransaction changes the selected transaction, zero clears it.
func (tx *Tx) SelectTransaction(transactionID uint64) {
	tx.next.Selection.TransactionID = transactionID
}

// SelectExpense changes the selected expense, zero clears it.
func (tx *Tx) SelectExpense(spendingID uint64) {
	tx.next.Selection.ExpenseID = spendingID
}

// SelectGoal changes the selected goal, zero clears it.
func (tx *Tx) SelectGoal(spendingID uint64) {
	tx.next.Selection.GoalID = spendingID
}

// SetPhase records the request phase of a resource.
func (tx *Tx) SetPhase(resource Resource, phase Phase) {
	if !tx.phasesCopied {
		tx.next.phases = maps.Clone(tx.next.phases)
		if tx.next.phases == nil {
			tx.next.phases = make(map[Resource]Phase)
		}
		tx.phasesCopied = true
	}
	tx.next.phases[resource] = phase
}
