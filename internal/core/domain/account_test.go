package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func chart() *domain.AccountTree {
	return domain.NewAccountTree([]domain.Account{
		{AccountID: "assets", Code: "1"},
		{AccountID: "current", Code: "11", ParentID: strPtr("assets")},
		{AccountID: "cash", Code: "1101", ParentID: strPtr("current")},
		{AccountID: "revenue", Code: "5"},
	})
}

func TestAccountTree_CheckParent(t *testing.T) {
	tree := chart()

	assert.NoError(t, tree.CheckParent("", "cash"), "new account under a leaf")
	assert.NoError(t, tree.CheckParent("revenue", "assets"), "re-parenting an unrelated root")

	err := tree.CheckParent("assets", "cash")
	assert.ErrorIs(t, err, apperrors.ErrValidation, "ancestor under its own descendant")

	err = tree.CheckParent("cash", "cash")
	assert.ErrorIs(t, err, apperrors.ErrValidation, "self parent")

	err = tree.CheckParent("cash", "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountTree_Depth(t *testing.T) {
	tree := chart()
	assert.Equal(t, 0, tree.Depth("assets"))
	assert.Equal(t, 1, tree.Depth("current"))
	assert.Equal(t, 2, tree.Depth("cash"))
	assert.Equal(t, 0, tree.Depth("missing"))
}

func TestValidateCodes(t *testing.T) {
	assert.NoError(t, domain.ValidateCode("1101"))
	assert.ErrorIs(t, domain.ValidateCode(""), apperrors.ErrValidation)
	assert.ErrorIs(t, domain.ValidateCode("11-01"), apperrors.ErrValidation)

	assert.NoError(t, domain.ValidateChildCode("11", "1101"))
	assert.ErrorIs(t, domain.ValidateChildCode("11", "11"), apperrors.ErrValidation)
	assert.ErrorIs(t, domain.ValidateChildCode("11", "1201"), apperrors.ErrValidation)
}
