package model

import "strings"

// Login is the credential identity of a user.
type Login struct {
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	LoginID         uint64 `json:"loginId"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	IsPhoneVerified bool   `json:"isPhoneVerified"`
}

// User is the authenticated user within an account.
type User struct {
	Login     *Login `json:"login,omitempty"`
	UserID    uint64 `json:"userId"`
	LoginID   uint64 `json:"loginId"`
	AccountID uint64 `json:"accountId"`
}

// GetDisplayName returns the user's full name, or the email when no name is known.
func (u User) GetDisplayName() string {
	if u.Login == nil {
		return ""
	}
	name := strings.TrimSpace(u.Login.FirstName + " " + u.Login.LastName)
	if name != "" {
		return name
	}
	return u.Login.Email
}
