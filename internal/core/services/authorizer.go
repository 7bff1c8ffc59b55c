package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
)

// membershipAuthorizer grants capabilities from the user's role in the organization.
type membershipAuthorizer struct {
	BaseService
	members portsrepo.MembershipReader
}

// NewAuthorizer creates an Authorizer backed by organization memberships.
func NewAuthorizer(members portsrepo.MembershipReader) portssvc.Authorizer {
	return &membershipAuthorizer{members: members}
}

var _ portssvc.Authorizer = (*membershipAuthorizer)(nil)

func (a *membershipAuthorizer) Authorize(ctx context.Context, userID, orgID string, capability domain.Capability) error {
	if userID == "" {
		return fmt.Errorf("%w: no acting user", apperrors.ErrForbidden)
	}
	role, err := a.members.FindMemberRole(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s is not a member of organization %s", apperrors.ErrForbidden, userID, orgID)
		}
		a.LogError(ctx, err, "Failed to find member role",
			slog.String("user_id", userID),
			slog.String("org_id", orgID))
		return err
	}
	if !role.Grants(capability) {
		return fmt.Errorf("%w: role %s lacks %s", apperrors.ErrForbidden, role, capability)
	}
	return nil
}
