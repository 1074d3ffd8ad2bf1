package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/core/services"
	"github.com/zivabsuite/contable/internal/dto"
)

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindCompanyByRFC(ctx context.Context, rfc string) (*domain.Company, error) {
	args := m.Called(ctx, rfc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompany, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCompany), args.Error(1)
}

func (m *MockCompanyRepository) CountActiveUsers(ctx context.Context, companyID string) (int, error) {
	args := m.Called(ctx, companyID)
	return args.Int(0), args.Error(1)
}

func (m *MockCompanyRepository) CountActiveOwners(ctx context.Context, companyID string) (int, error) {
	args := m.Called(ctx, companyID)
	return args.Int(0), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, owner domain.UserCompany) error {
	args := m.Called(ctx, company, owner)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) SaveUserCompany(ctx context.Context, link domain.UserCompany) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateUserCompanyRole(ctx context.Context, userID string, companyID string, role domain.UserCompanyRole, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, companyID, role, updatedBy, now)
	return args.Error(0)
}

func (m *MockCompanyRepository) DeactivateUserCompany(ctx context.Context, userID string, companyID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, companyID, updatedBy, now)
	return args.Error(0)
}

func (m *MockCompanyRepository) DeactivateCompany(ctx context.Context, companyID string, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type CompanyServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockCompanyRepository
	service   portssvc.CompanySvcFacade
	companyID string
	userID    string
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCompanyRepository)
	suite.service = services.NewCompanyService(suite.mockRepo)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CompanyServiceTestSuite) membership(role domain.UserCompanyRole, active bool) *domain.UserCompany {
	return &domain.UserCompany{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      role,
		IsActive:  active,
	}
}

// --- CreateCompany ---

func (suite *CompanyServiceTestSuite) TestCreateCompany_Success() {
	ctx := context.Background()
	req := dto.CreateCompanyRequest{
		Name: "Ferretería El Tornillo SA de CV",
		RFC:  "fet990101ab1", // lowercase on purpose, should be normalized
	}

	suite.mockRepo.On("FindCompanyByRFC", ctx, "FET990101AB1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCompany", ctx, mock.AnythingOfType("domain.Company"), mock.AnythingOfType("domain.UserCompany")).Return(nil).Once()

	company, err := suite.service.CreateCompany(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(company)
	suite.NotEmpty(company.CompanyID)
	suite.Equal("FET990101AB1", company.RFC)
	suite.Equal(5, company.UserLimit) // default when unset
	suite.True(company.IsActive)
	suite.Equal(suite.userID, company.CreatedBy)

	savedOwner := suite.mockRepo.Calls[1].Arguments.Get(2).(domain.UserCompany)
	suite.Equal(domain.RoleOwner, savedOwner.Role)
	suite.Equal(suite.userID, savedOwner.UserID)
	suite.True(savedOwner.IsDefault)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_InvalidRFC() {
	ctx := context.Background()
	req := dto.CreateCompanyRequest{Name: "Bad RFC Co", RFC: "NOT-AN-RFC"}

	_, err := suite.service.CreateCompany(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidRFC)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCompany", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_GenericRFCRejected() {
	ctx := context.Background()
	req := dto.CreateCompanyRequest{Name: "Público en General", RFC: "XAXX010101000"}

	_, err := suite.service.CreateCompany(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidRFC)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_DuplicateRFC() {
	ctx := context.Background()
	req := dto.CreateCompanyRequest{Name: "Copycat SA", RFC: "FET990101AB1"}
	existing := &domain.Company{CompanyID: uuid.NewString(), RFC: "FET990101AB1"}

	suite.mockRepo.On("FindCompanyByRFC", ctx, "FET990101AB1").Return(existing, nil).Once()

	_, err := suite.service.CreateCompany(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCompany", mock.Anything, mock.Anything, mock.Anything)
}

// --- AuthorizeUserForCompany ---

func (suite *CompanyServiceTestSuite) TestAuthorize_NoMembershipHidesCompany() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthorizeUserForCompany(ctx, suite.userID, suite.companyID, domain.RoleReadOnly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CompanyServiceTestSuite) TestAuthorize_InactiveMembershipHidesCompany() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(suite.membership(domain.RoleAdmin, false), nil).Once()

	_, err := suite.service.AuthorizeUserForCompany(ctx, suite.userID, suite.companyID, domain.RoleReadOnly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CompanyServiceTestSuite) TestAuthorize_WeakRoleForbidden() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(suite.membership(domain.RoleReadOnly, true), nil).Once()

	_, err := suite.service.AuthorizeUserForCompany(ctx, suite.userID, suite.companyID, domain.RoleAccountant)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestAuthorize_SufficientRole() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(suite.membership(domain.RoleOwner, true), nil).Once()

	link, err := suite.service.AuthorizeUserForCompany(ctx, suite.userID, suite.companyID, domain.RoleAdmin)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleOwner, link.Role)
}

// --- AddUserToCompany ---

func (suite *CompanyServiceTestSuite) TestAddUser_UserLimitReached() {
	ctx := context.Background()
	newUserID := uuid.NewString()
	req := dto.AddUserToCompanyRequest{UserID: newUserID, Role: domain.RoleAssistant}
	company := &domain.Company{CompanyID: suite.companyID, UserLimit: 2, IsActive: true}

	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(suite.membership(domain.RoleAdmin, true), nil).Once()
	suite.mockRepo.On("FindCompanyByID", ctx, suite.companyID).Return(company, nil).Once()
	suite.mockRepo.On("CountActiveUsers", ctx, suite.companyID).Return(2, nil).Once()

	_, err := suite.service.AddUserToCompany(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUserLimitReached)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUserCompany", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestAddUser_Success() {
	ctx := context.Background()
	newUserID := uuid.NewString()
	req := dto.AddUserToCompanyRequest{UserID: newUserID, Role: domain.RoleAccountant}
	company := &domain.Company{CompanyID: suite.companyID, UserLimit: 5, IsActive: true}

	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(suite.membership(domain.RoleAdmin, true), nil).Once()
	suite.mockRepo.On("FindCompanyByID", ctx, suite.companyID).Return(company, nil).Once()
	suite.mockRepo.On("CountActiveUsers", ctx, suite.companyID).Return(3, nil).Once()
	suite.mockRepo.On("FindUserCompanyRole", ctx, newUserID, suite.companyID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUserCompany", ctx, mock.AnythingOfType("domain.UserCompany")).Return(nil).Once()

	link, err := suite.service.AddUserToCompany(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAccountant, link.Role)
	suite.Equal(newUserID, link.UserID)
	suite.True(link.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestAddUser_AlreadyMember() {
	ctx := context.Background()
	newUserID := uuid.NewString()
	req := dto.AddUserToCompanyRequest{UserID: newUserID, Role: domain.RoleAssistant}
	company := &domain.Company{CompanyID: suite.companyID, UserLimit: 5, IsActive: true}
	existing := &domain.UserCompany{UserID: newUserID, CompanyID: suite.companyID, Role: domain.RoleAssistant, IsActive: true}

	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(suite.membership(domain.RoleAdmin, true), nil).Once()
	suite.mockRepo.On("FindCompanyByID", ctx, suite.companyID).Return(company, nil).Once()
	suite.mockRepo.On("CountActiveUsers", ctx, suite.companyID).Return(3, nil).Once()
	suite.mockRepo.On("FindUserCompanyRole", ctx, newUserID, suite.companyID).Return(existing, nil).Once()

	_, err := suite.service.AddUserToCompany(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- UpdateUserRole / RemoveUserFromCompany ---

func (suite *CompanyServiceTestSuite) TestUpdateUserRole_GrantOwnerRequiresOwner() {
	ctx := context.Background()
	targetID := uuid.NewString()
	req := dto.UpdateUserCompanyRoleRequest{Role: domain.RoleOwner}

	// Requesting user is only ADMIN, so granting OWNER is forbidden.
	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(suite.membership(domain.RoleAdmin, true), nil).Once()

	err := suite.service.UpdateUserRole(ctx, suite.companyID, targetID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUserCompanyRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestUpdateUserRole_DemoteLastOwner() {
	ctx := context.Background()
	req := dto.UpdateUserCompanyRoleRequest{Role: domain.RoleAdmin}
	target := &domain.UserCompany{UserID: suite.userID, CompanyID: suite.companyID, Role: domain.RoleOwner, IsActive: true}

	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(target, nil).Twice()
	suite.mockRepo.On("CountActiveOwners", ctx, suite.companyID).Return(1, nil).Once()

	err := suite.service.UpdateUserRole(ctx, suite.companyID, suite.userID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLastOwner)
}

func (suite *CompanyServiceTestSuite) TestRemoveUser_LastOwnerStays() {
	ctx := context.Background()
	target := &domain.UserCompany{UserID: suite.userID, CompanyID: suite.companyID, Role: domain.RoleOwner, IsActive: true}

	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(target, nil).Twice()
	suite.mockRepo.On("CountActiveOwners", ctx, suite.companyID).Return(1, nil).Once()

	err := suite.service.RemoveUserFromCompany(ctx, suite.companyID, suite.userID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLastOwner)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateUserCompany", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestRemoveUser_SecondOwnerRemoved() {
	ctx := context.Background()
	targetID := uuid.NewString()
	target := &domain.UserCompany{UserID: targetID, CompanyID: suite.companyID, Role: domain.RoleOwner, IsActive: true}

	suite.mockRepo.On("FindUserCompanyRole", ctx, suite.userID, suite.companyID).Return(suite.membership(domain.RoleOwner, true), nil).Once()
	suite.mockRepo.On("FindUserCompanyRole", ctx, targetID, suite.companyID).Return(target, nil).Once()
	suite.mockRepo.On("CountActiveOwners", ctx, suite.companyID).Return(2, nil).Once()
	suite.mockRepo.On("DeactivateUserCompany", ctx, targetID, suite.companyID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.RemoveUserFromCompany(ctx, suite.companyID, targetID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
