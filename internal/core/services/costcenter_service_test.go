package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/core/services"
	"github.com/zivabsuite/contable/internal/dto"
)

type CostCenterServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockCostCenterRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.CostCenterSvcFacade
	companyID      string
	userID         string
}

func (suite *CostCenterServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCostCenterRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewCostCenterService(suite.mockRepo, services.WithCCCompanyAuthorizer(suite.mockAuthorizer))
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CostCenterServiceTestSuite) authorize() {
	link := &domain.UserCompany{UserID: suite.userID, CompanyID: suite.companyID, Role: domain.RoleAccountant, IsActive: true}
	suite.mockAuthorizer.On("AuthorizeUserForCompany", mock.Anything, suite.userID, suite.companyID, mock.AnythingOfType("domain.UserCompanyRole")).Return(link, nil)
}

func (suite *CostCenterServiceTestSuite) costCenter(code string, level int) *domain.CostCenter {
	return &domain.CostCenter{
		CostCenterID:    uuid.NewString(),
		CompanyID:       suite.companyID,
		Code:            code,
		Name:            "CC " + code,
		Level:           level,
		AllowsMovements: true,
		IsActive:        true,
	}
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_ChildDerivesLevel() {
	ctx := context.Background()
	parent := suite.costCenter("VEN", 1)
	req := dto.CreateCostCenterRequest{Code: "VEN-NTE", Name: "Ventas Norte", ParentID: &parent.CostCenterID, AllowsMovements: true}

	suite.authorize()
	suite.mockRepo.On("FindCostCenterByID", ctx, parent.CostCenterID).Return(parent, nil).Once()
	suite.mockRepo.On("SaveCostCenter", ctx, mock.AnythingOfType("domain.CostCenter")).Return(nil).Once()

	cc, err := suite.service.CreateCostCenter(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, cc.Level)
	suite.True(cc.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_ForeignParentRejected() {
	ctx := context.Background()
	parent := suite.costCenter("ADM", 1)
	parent.CompanyID = uuid.NewString()
	req := dto.CreateCostCenterRequest{Code: "ADM-01", Name: "Administración", ParentID: &parent.CostCenterID}

	suite.authorize()
	suite.mockRepo.On("FindCostCenterByID", ctx, parent.CostCenterID).Return(parent, nil).Once()

	_, err := suite.service.CreateCostCenter(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrCrossCompanyReference)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCostCenter", mock.Anything, mock.Anything)
}

func (suite *CostCenterServiceTestSuite) TestGetCostCenter_OtherCompanyHidden() {
	ctx := context.Background()
	cc := suite.costCenter("VEN", 1)
	cc.CompanyID = uuid.NewString()

	suite.authorize()
	suite.mockRepo.On("FindCostCenterByID", ctx, cc.CostCenterID).Return(cc, nil).Once()

	_, err := suite.service.GetCostCenterByID(ctx, suite.companyID, cc.CostCenterID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CostCenterServiceTestSuite) TestDeactivateCostCenter_Success() {
	ctx := context.Background()
	cc := suite.costCenter("VEN", 1)

	suite.authorize()
	suite.mockRepo.On("FindCostCenterByID", ctx, cc.CostCenterID).Return(cc, nil).Once()
	suite.mockRepo.On("DeactivateCostCenter", ctx, cc.CostCenterID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateCostCenter(ctx, suite.companyID, cc.CostCenterID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CostCenterServiceTestSuite) TestCreateProject_StartsInPlanning() {
	ctx := context.Background()
	cc := suite.costCenter("VEN", 1)
	req := dto.CreateProjectRequest{Code: "PRJ-01", Name: "Expansión Bajío", CostCenterID: &cc.CostCenterID}

	suite.authorize()
	suite.mockRepo.On("FindCostCenterByID", ctx, cc.CostCenterID).Return(cc, nil).Once()
	suite.mockRepo.On("SaveProject", ctx, mock.AnythingOfType("domain.Project")).Return(nil).Once()

	p, err := suite.service.CreateProject(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ProjectPlanning, p.Status)
	suite.True(p.IsActive)
}

func (suite *CostCenterServiceTestSuite) TestUpdateProject_ReopenClosedRejected() {
	ctx := context.Background()
	p := &domain.Project{
		ProjectID: uuid.NewString(),
		CompanyID: suite.companyID,
		Code:      "PRJ-01",
		Name:      "Expansión Bajío",
		Status:    domain.ProjectClosed,
		IsActive:  true,
	}
	active := domain.ProjectActive

	suite.authorize()
	suite.mockRepo.On("FindProjectByID", ctx, p.ProjectID).Return(p, nil).Once()

	req := dto.UpdateProjectRequest{Status: &active}
	_, err := suite.service.UpdateProject(ctx, suite.companyID, p.ProjectID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrProjectClosed)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateProject", mock.Anything, mock.Anything)
}

func (suite *CostCenterServiceTestSuite) TestUpdateProject_StatusTransition() {
	ctx := context.Background()
	p := &domain.Project{
		ProjectID: uuid.NewString(),
		CompanyID: suite.companyID,
		Code:      "PRJ-02",
		Name:      "Nave industrial",
		Status:    domain.ProjectPlanning,
		IsActive:  true,
	}
	active := domain.ProjectActive

	suite.authorize()
	suite.mockRepo.On("FindProjectByID", ctx, p.ProjectID).Return(p, nil).Once()
	suite.mockRepo.On("UpdateProject", ctx, mock.AnythingOfType("domain.Project")).Return(nil).Once()

	req := dto.UpdateProjectRequest{Status: &active}
	updated, err := suite.service.UpdateProject(ctx, suite.companyID, p.ProjectID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ProjectActive, updated.Status)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func TestCostCenterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CostCenterServiceTestSuite))
}
