package domain

// Capability is a permission checked before any ledger or tax operation.
type Capability string

const (
	CapLedgerView   Capability = "ledger.view"
	CapLedgerCreate Capability = "ledger.create"
	CapLedgerEdit   Capability = "ledger.edit"
	CapLedgerPost   Capability = "ledger.post"
	CapLedgerDelete Capability = "ledger.delete"
	CapTaxesView    Capability = "taxes.view"
	CapTaxesFile    Capability = "taxes.file"
)

// MemberRole is a user's role within an organization.
type MemberRole string

const (
	RoleAdmin      MemberRole = "ADMIN"
	RoleAccountant MemberRole = "ACCOUNTANT"
	RoleReadOnly   MemberRole = "READONLY"
)

var allCapabilities = []Capability{
	CapLedgerView, CapLedgerCreate, CapLedgerEdit, CapLedgerPost, CapLedgerDelete,
	CapTaxesView, CapTaxesFile,
}

var roleCapabilities = map[MemberRole][]Capability{
	RoleAdmin:      allCapabilities,
	RoleAccountant: allCapabilities,
	RoleReadOnly:   {CapLedgerView, CapTaxesView},
}

// Grants reports whether the role carries the capability.
func (r MemberRole) Grants(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

// OrganizationMember links a user to an organization with a role.
type OrganizationMember struct {
	OrganizationID string     `json:"organizationID"`
	UserID         string     `json:"userID"`
	Role           MemberRole `json:"role"`
}
