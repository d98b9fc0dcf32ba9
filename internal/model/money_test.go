package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$25.50", FormatAmount(2550))
	assert.Equal(t, "-$25.50", FormatAmount(-2550))
	assert.Equal(t, "$1,234.56", FormatAmount(123456))
	assert.Equal(t, "$25.50", FormatAbsAmount(-2550))
}

func TestBankAccount_Display(t *testing.T) {
	account := BankAccount{
		OriginalName:     "Checking Account #1",
		AvailableBalance: 102356,
		CurrentBalance:   -500,
	}
	assert.Equal(t, "Checking Account #1", account.GetName())
	assert.Equal(t, "$1,023.56", account.GetAvailableBalanceString())
	assert.Equal(t, "-$5.00", account.GetCurrentBalanceString())

	account.Name = "Checking"
	assert.Equal(t, "Checking", account.GetName())
}

func TestSpending_Progress(t *testing.T) {
	tests := []struct {
		name         string
		spending     Spending
		wantProgress int64
		wantComplete bool
	}{
		{
			name:         "expense counts current amount",
			spending:     Spending{SpendingType: SpendingTypeExpense, TargetAmount: 1000, CurrentAmount: 400, UsedAmount: 600},
			wantProgress: 400,
		},
		{
			name:         "goal counts used amount",
			spending:     Spending{SpendingType: SpendingTypeGoal, TargetAmount: 1000, CurrentAmount: 400, UsedAmount: 600},
			wantProgress: 1000,
			wantComplete: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantProgress, tt.spending.GetProgressAmount())
			assert.Equal(t, tt.wantComplete, tt.spending.GetIsComplete())
		})
	}

	assert.Equal(t, "expense", SpendingTypeExpense.String())
	assert.Equal(t, "goal", SpendingTypeGoal.String())
}

func TestLink_GetName(t *testing.T) {
	assert.Equal(t, "US Bank", Link{InstitutionName: "US Bank"}.GetName())
	assert.Equal(t, "Mine", Link{InstitutionName: "US Bank", CustomInstitutionName: "Mine"}.GetName())
	assert.True(t, Link{LinkType: LinkTypeManual}.GetIsManual())
}

func TestUser_GetDisplayName(t *testing.T) {
	assert.Equal(t, "", User{}.GetDisplayName())
	assert.Equal(t, "Jane Doe", User{Login: &Login{FirstName: "Jane", LastName: "Doe"}}.GetDisplayName())
	assert.Equal(t, "jane@example.com", User{Login: &Login{Email: "jane@example.com"}}.GetDisplayName())
}
