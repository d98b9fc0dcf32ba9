package fetch

import (
	"context"
	"sync"

	"github.com/Veraticus/monetr-client/internal/model"
	"github.com/Veraticus/monetr-client/internal/monetr"
)

// fakeAPI serves canned data. Setting an error field makes that call fail.
type fakeAPI struct {
	updateErr        error
	bankAccountsErr  error
	transactionsErr  error
	spendingErr      error
	schedulesErr     error
	balancesErr      error
	linksErr         error
	createErr        error
	transferErr      error
	beforeReturn     func(call string)
	transactions     map[uint64][]model.Transaction
	spending         map[uint64][]model.Spending
	schedules        map[uint64][]model.FundingSchedule
	balances         map[uint64]model.Balance
	calls            map[string]int
	updateResult     *monetr.TransactionUpdate
	transferResult   monetr.TransferResult
	links            []model.Link
	bankAccounts     []model.BankAccount
	lastTransaction  model.Transaction
	lastTransfer     monetr.TransferRequest
	lastTransferBank uint64
	mu               sync.Mutex
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		links:        []model.Link{{LinkID: 1, InstitutionName: "Chase"}},
		bankAccounts: []model.BankAccount{{BankAccountID: 100, LinkID: 1, Name: "Checking"}, {BankAccountID: 200, LinkID: 1, Name: "Savings"}},
		transactions: map[uint64][]model.Transaction{
			100: {{TransactionID: 1, BankAccountID: 100, Amount: -2550}, {TransactionID: 2, BankAccountID: 100, Amount: 500}},
			200: {{TransactionID: 3, BankAccountID: 200, Amount: -100}},
		},
		spending: map[uint64][]model.Spending{
			100: {
				{SpendingID: 10, BankAccountID: 100, Name: "Rent", SpendingType: model.SpendingTypeExpense},
				{SpendingID: 11, BankAccountID: 100, Name: "Vacation", SpendingType: model.SpendingTypeGoal},
			},
		},
		schedules: map[uint64][]model.FundingSchedule{
			100: {{FundingScheduleID: 5, BankAccountID: 100, Name: "Payday"}},
		},
		balances: map[uint64]model.Balance{
			100: {BankAccountID: 100, Safe: 1234},
		},
		calls: make(map[string]int),
	}
}

func (f *fakeAPI) called(call string) {
	f.mu.Lock()
	f.calls[call]++
	hook := f.beforeReturn
	f.mu.Unlock()
	if hook != nil {
		hook(call)
	}
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

func (f *fakeAPI) GetLinks(_ context.Context) ([]model.Link, error) {
	f.called("links")
	return f.links, f.linksErr
}

func (f *fakeAPI) GetBankAccounts(_ context.Context) ([]model.BankAccount, error) {
	f.called("bankAccounts")
	return f.bankAccounts, f.bankAccountsErr
}

func (f *fakeAPI) GetTransactions(_ context.Context, bankAccountID uint64, _, _ int) ([]model.Transaction, error) {
	f.called("transactions")
	return f.transactions[bankAccountID], f.transactionsErr
}

func (f *fakeAPI) UpdateTransaction(_ context.Context, transaction model.Transaction) (monetr.TransactionUpdate, error) {
	f.called("updateTransaction")
	f.mu.Lock()
	f.lastTransaction = transaction
	f.mu.Unlock()
	if f.updateErr != nil {
		return monetr.TransactionUpdate{}, f.updateErr
	}
	if f.updateResult != nil {
		return *f.updateResult, nil
	}
	return monetr.TransactionUpdate{Transaction: transaction}, nil
}

func (f *fakeAPI) GetSpending(_ context.Context, bankAccountID uint64) ([]model.Spending, error) {
	f.called("spending")
	return f.spending[bankAccountID], f.spendingErr
}

func (f *fakeAPI) CreateSpending(_ context.Context, spending model.Spending) (model.Spending, error) {
	f.called("createSpending")
	if f.createErr != nil {
		return model.Spending{}, f.createErr
	}
	spending.SpendingID = 99
	return spending, nil
}

func (f *fakeAPI) TransferSpending(_ context.Context, bankAccountID uint64, request monetr.TransferRequest) (monetr.TransferResult, error) {
	f.called("transfer")
	f.mu.Lock()
	f.lastTransfer = request
	f.lastTransferBank = bankAccountID
	f.mu.Unlock()
	return f.transferResult, f.transferErr
}

func (f *fakeAPI) GetFundingSchedules(_ context.Context, bankAccountID uint64) ([]model.FundingSchedule, error) {
	f.called("fundingSchedules")
	return f.schedules[bankAccountID], f.schedulesErr
}

func (f *fakeAPI) GetBalances(_ context.Context, bankAccountID uint64) (model.Balance, error) {
	f.called("balances")
	return f.balances[bankAccountID], f.balancesErr
}
