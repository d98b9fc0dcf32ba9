package model

// BankAccount is a single account at a financial institution, reached through a Link.
type BankAccount struct {
	Mask             string `json:"mask,omitempty"`
	Name             string `json:"name,omitempty"`
	OriginalName     string `json:"originalName"`
	OfficialName     string `json:"officialName,omitempty"`
	Type             string `json:"accountType"`
	SubType          string `json:"accountSubType"`
	BankAccountID    uint64 `json:"bankAccountId"`
	LinkID           uint64 `json:"linkId"`
	AvailableBalance int64  `json:"availableBalance"`
	CurrentBalance   int64  `json:"currentBalance"`
}

// ID returns the bank account's id.
func (b BankAccount) ID() uint64 { return b.BankAccountID }

// GetName prefers the user-assigned name over the name provided by the institution.
func (b BankAccount) GetName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.OriginalName
}

// GetAvailableBalanceString formats the available balance.
func (b BankAccount) GetAvailableBalanceString() string {
	return FormatAmount(b.AvailableBalance)
}

// GetCurrentBalanceString formats the current balance.
func (b BankAccount) GetCurrentBalanceString() string {
	return FormatAmount(b.CurrentBalance)
}
