package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
	"github.com/SscSPs/ledger_tax_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccount(ctx context.Context, orgID, accountID, userID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, orgID, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, orgID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, orgID, accountID, userID string) error {
	args := m.Called(ctx, orgID, accountID, userID)
	return args.Error(0)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, orgID, accountID, userID string) (bool, error) {
	args := m.Called(ctx, orgID, accountID, userID)
	return args.Bool(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
	orgID              string
	userID             string
}

func (suite *AccountHandlerTestSuite) SetupSuite() {
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockAccountService = new(MockAccountService)
	suite.router = newTestRouter(suite.jwtSecret, &portssvc.ServiceContainer{Account: suite.mockAccountService})
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return performOrgRequest(suite.T(), suite.router, suite.jwtSecret, suite.userID, suite.orgID, method, path, body)
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1101", Name: "Cash", AccountType: domain.Asset}
	created := &domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.orgID, Code: "1101", Name: "Cash", AccountType: domain.Asset, IsActive: true}

	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.orgID, req, suite.userID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("1101", resp.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BindingErrors() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing code", map[string]any{"name": "Cash", "accountType": "ASSET"}},
		{"non numeric code", map[string]any{"code": "11A", "name": "Cash", "accountType": "ASSET"}},
		{"unknown type", map[string]any{"code": "1101", "name": "Cash", "accountType": "CONTRA"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/accounts", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ServiceErrors() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: code must extend parent", apperrors.ErrValidation), http.StatusBadRequest},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"parent missing", apperrors.ErrNotFound, http.StatusNotFound},
		{"duplicate code", apperrors.ErrDuplicate, http.StatusConflict},
		{"store failure", apperrors.NewAppError(500, "insert failed", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			req := dto.CreateAccountRequest{Code: "1101", Name: "Cash", AccountType: domain.Asset}
			suite.mockAccountService.On("CreateAccount", mock.Anything, suite.orgID, req, suite.userID).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/accounts", req)

			suite.Equal(tt.wantStatus, w.Code)
			suite.mockAccountService.AssertExpectations(suite.T())
		})
	}
}

func (suite *AccountHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/organizations/"+suite.orgID+"/accounts", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListAccounts() {
	parent := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: parent, Code: "11", Name: "Current assets", AccountType: domain.Asset, IsActive: true, Depth: 1},
		{AccountID: uuid.NewString(), Code: "1101", Name: "Cash", AccountType: domain.Asset, ParentID: &parent, IsActive: true, Depth: 2},
	}
	suite.mockAccountService.On("ListAccounts", mock.Anything, suite.orgID, suite.userID).Return(accounts, nil).Once()

	w := suite.do(http.MethodGet, "/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Accounts, 2)
	suite.Equal(2, resp.Accounts[1].Depth)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("GetAccount", mock.Anything, suite.orgID, accountID, suite.userID).
		Return(nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)).Once()

	w := suite.do(http.MethodGet, "/accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_ReferencedIsDeactivated() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("DeleteAccount", mock.Anything, suite.orgID, accountID, suite.userID).Return(false, nil).Once()

	w := suite.do(http.MethodDelete, "/accounts/"+accountID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DeleteAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Deleted)
	suite.True(resp.Deactivated)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("DeactivateAccount", mock.Anything, suite.orgID, accountID, suite.userID).Return(nil).Once()

	w := suite.do(http.MethodPost, "/accounts/"+accountID+"/deactivate", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
