package model

// LinkType identifies how a link's data reaches monetr.
type LinkType uint8

// Link types, as encoded by the API.
const (
	LinkTypeUnknown LinkType = iota
	LinkTypePlaid
	LinkTypeManual
)

// Link is a connection to a financial institution that owns one or more bank accounts.
type Link struct {
	InstitutionName       string   `json:"institutionName"`
	CustomInstitutionName string   `json:"customInstitutionName,omitempty"`
	PlaidInstitutionID    string   `json:"plaidInstitutionId,omitempty"`
	LinkID                uint64   `json:"linkId"`
	LinkType              LinkType `json:"linkType"`
	LinkStatus            uint8    `json:"linkStatus"`
}

// ID returns the link's id.
func (l Link) ID() uint64 { return l.LinkID }

// GetName prefers the custom institution name the user entered.
func (l Link) GetName() string {
	if l.CustomInstitutionName != "" {
		return l.CustomInstitutionName
	}
	return l.InstitutionName
}

// GetIsManual reports whether the link is maintained by hand rather than by Plaid.
func (l Link) GetIsManual() bool {
	return l.LinkType == LinkTypeManual
}
