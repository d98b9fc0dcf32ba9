package model

import "time"

// FundingSchedule describes when money is allocated to expenses and goals, usually paydays.
type FundingSchedule struct {
	NextOccurrence    time.Time  `json:"nextOccurrence"`
	LastOccurrence    *time.Time `json:"lastOccurrence"`
	EstimatedDeposit  *int64     `json:"estimatedDeposit"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Rule              string     `json:"rule"`
	FundingScheduleID uint64     `json:"fundingScheduleId"`
	BankAccountID     uint64     `json:"bankAccountId"`
	ExcludeWeekends   bool       `json:"excludeWeekends"`
	WaitForDeposit    bool       `json:"waitForDeposit"`
}

// ID returns the funding schedule's id.
func (f FundingSchedule) ID() uint64 { return f.FundingScheduleID }

// PartitionID returns the id of the bank account the funding schedule belongs to.
func (f FundingSchedule) PartitionID() uint64 { return f.BankAccountID }

// GetNextOccurrenceString formats the next occurrence as a date.
func (f FundingSchedule) GetNextOccurrenceString() string {
	if f.NextOccurrence.IsZero() {
		return ""
	}
	return f.NextOccurrence.Format("Jan 2, 2006")
}
