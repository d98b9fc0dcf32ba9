package monetr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Veraticus/monetr-client/internal/model"
)

// MaxTransactionsPerPage is the largest page the API serves.
const MaxTransactionsPerPage = 100

// LoginRequest are the credentials posted to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Captcha  string `json:"captcha,omitempty"`
	TOTP     string `json:"totp,omitempty"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User     *model.User `json:"user,omitempty"`
	Token    string      `json:"token"`
	NextURL  string      `json:"nextUrl,omitempty"`
	IsActive bool        `json:"isActive"`
}

// TransactionUpdate is the result of updating a transaction. Spending objects whose balances
// changed because of the update are returned with it.
type TransactionUpdate struct {
	Transaction model.Transaction `json:"transaction"`
	Spending    []model.Spending  `json:"spending"`
}

// TransferRequest moves an amount between two spending objects. A nil id means Safe-To-Spend.
type TransferRequest struct {
	FromSpendingID *uint64 `json:"fromSpendingId"`
	ToSpendingID   *uint64 `json:"toSpendingId"`
	Amount         int64   `json:"amount"`
}

// TransferResult holds the balance and spending objects changed by a transfer.
type TransferResult struct {
	Spending []model.Spending `json:"spending"`
	Balance  model.Balance    `json:"balance"`
}

// GetConfig fetches the public application configuration.
func (c *Client) GetConfig(ctx context.Context) (model.BootstrapState, error) {
	var config model.BootstrapState
	if err := c.do(ctx, http.MethodGet, "/api/config", nil, nil, &config); err != nil {
		return model.BootstrapState{}, fmt.Errorf("failed to fetch config: %w", err)
	}
	return config, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, request LoginRequest) (LoginResponse, error) {
	var result LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/authentication/login", nil, request, &result); err != nil {
		return LoginResponse{}, fmt.Errorf("failed to login: %w", err)
	}
	return result, nil
}

// GetMe fetches the authenticated user.
func (c *Client) GetMe(ctx context.Context) (model.User, error) {
	var result struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &result); err != nil {
		return model.User{}, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return result.User, nil
}

// GetLinks fetches every link of the account.
func (c *Client) GetLinks(ctx context.Context) ([]model.Link, error) {
	var links []model.Link
	if err := c.do(ctx, http.MethodGet, "/api/links", nil, nil, &links); err != nil {
		return nil, fmt.Errorf("failed to fetch links: %w", err)
	}
	return links, nil
}

// GetBankAccounts fetches every bank account of the account.
func (c *Client) GetBankAccounts(ctx context.Context) ([]model.BankAccount, error) {
	var accounts []model.BankAccount
	if err := c.do(ctx, http.MethodGet, "/api/bank_accounts", nil, nil, &accounts); err != nil {
		return nil, fmt.Errorf("failed to fetch bank accounts: %w", err)
	}
	return accounts, nil
}

// GetTransactions fetches a page of a bank account's transactions, newest first.
func (c *Client) GetTransactions(ctx context.Context, bankAccountID uint64, limit, offset int) ([]model.Transaction, error) {
	if limit <= 0 || limit > MaxTransactionsPerPage {
		limit = MaxTransactionsPerPage
	}
	if offset < 0 {
		offset = 0
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var transactions []model.Transaction
	if err := c.do(ctx, http.MethodGet, bankAccountPath(bankAccountID, "transactions"), query, nil, &transactions); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return transactions, nil
}

// UpdateTransaction sends the changed transaction.
func (c *Client) UpdateTransaction(ctx context.Context, transaction model.Transaction) (TransactionUpdate, error) {
	path := bankAccountPath(transaction.BankAccountID, "transactions", strconv.FormatUint(transaction.TransactionID, 10))

	var result TransactionUpdate
	if err := c.do(ctx, http.MethodPut, path, nil, transaction, &result); err != nil {
		return TransactionUpdate{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	return result, nil
}

// GetSpending fetches the expenses and goals of a bank account.
func (c *Client) GetSpending(ctx context.Context, bankAccountID uint64) ([]model.Spending, error) {
	var spending []model.Spending
	if err := c.do(ctx, http.MethodGet, bankAccountPath(bankAccountID, "spending"), nil, nil, &spending); err != nil {
		return nil, fmt.Errorf("failed to fetch spending: %w", err)
	}
	return spending, nil
}

// CreateSpending creates an expense or goal.
func (c *Client) CreateSpending(ctx context.Context, spending model.Spending) (model.Spending, error) {
	var created model.Spending
	if err := c.do(ctx, http.MethodPost, bankAccountPath(spending.BankAccountID, "spending"), nil, spending, &created); err != nil {
		return model.Spending{}, fmt.Errorf("failed to create spending: %w", err)
	}
	return created, nil
}

// TransferSpending moves allocated money between spending objects of a bank account.
func (c *Client) TransferSpending(ctx context.Context, bankAccountID uint64, request TransferRequest) (TransferResult, error) {
	var result TransferResult
	if err := c.do(ctx, http.MethodPost, bankAccountPath(bankAccountID, "spending", "transfer"), nil, request, &result); err != nil {
		return TransferResult{}, fmt.Errorf("failed to transfer: %w", err)
	}
	return result, nil
}

// GetFundingSchedules fetches the funding schedules of a bank account.
func (c *Client) GetFundingSchedules(ctx context.Context, bankAccountID uint64) ([]model.FundingSchedule, error) {
	var schedules []model.FundingSchedule
	if err := c.do(ctx, http.MethodGet, bankAccountPath(bankAccountID, "funding_schedules"), nil, nil, &schedules); err != nil {
		return nil, fmt.Errorf("failed to fetch funding schedules: %w", err)
	}
	return schedules, nil
}

// GetBalances fetches the balance of a bank account.
func (c *Client) GetBalances(ctx context.Context, bankAccountID uint64) (model.Balance, error) {
	var balance model.Balance
	if err := c.do(ctx, http.MethodGet, bankAccountPath(bankAccountID, "balances"), nil, nil, &balance); err != nil {
		return model.Balance{}, fmt.Errorf("failed to fetch balances: %w", err)
	}
	if balance.BankAccountID == 0 {
		balance.BankAccountID = bankAccountID
	}
	return balance, nil
}

func bankAccountPath(bankAccountID uint64, elem ...string) string {
	path := "/api/bank_accounts/" + strconv.FormatUint(bankAccountID, 10)
	for _, e := range elem {
		path += "/" + e
	}
	return path
}
