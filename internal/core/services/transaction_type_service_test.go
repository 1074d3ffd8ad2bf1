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

type TransactionTypeServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockTransactionTypeRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.TransactionTypeSvcFacade
	companyID      string
	userID         string
}

func (suite *TransactionTypeServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionTypeRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewTransactionTypeService(suite.mockRepo, services.WithTypeCompanyAuthorizer(suite.mockAuthorizer))
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TransactionTypeServiceTestSuite) authorize() {
	link := &domain.UserCompany{UserID: suite.userID, CompanyID: suite.companyID, Role: domain.RoleAccountant, IsActive: true}
	suite.mockAuthorizer.On("AuthorizeUserForCompany", mock.Anything, suite.userID, suite.companyID, mock.AnythingOfType("domain.UserCompanyRole")).Return(link, nil)
}

func (suite *TransactionTypeServiceTestSuite) folioSeries(code string) *domain.TransactionType {
	return &domain.TransactionType{
		TransactionTypeID: uuid.NewString(),
		CompanyID:         suite.companyID,
		Code:              code,
		Name:              "Serie " + code,
		Prefix:            code + "-",
		NumberLength:      6,
		LastFolio:         41,
		AllowsEditing:     true,
		IsActive:          true,
	}
}

func (suite *TransactionTypeServiceTestSuite) TestCreateTransactionType_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionTypeRequest{
		Code:               "CHQ",
		Name:               "Cheques",
		Prefix:             "CHQ-",
		NumberLength:       6,
		RequiresValidation: true,
	}

	suite.authorize()
	suite.mockRepo.On("FindTransactionTypeByCode", ctx, suite.companyID, "CHQ").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveTransactionType", ctx, mock.AnythingOfType("domain.TransactionType")).Return(nil).Once()

	tt, err := suite.service.CreateTransactionType(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, tt.LastFolio)
	suite.True(tt.IsActive)
	suite.Equal(suite.userID, tt.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionTypeServiceTestSuite) TestCreateTransactionType_DuplicateCode() {
	ctx := context.Background()
	existing := suite.folioSeries("CHQ")
	req := dto.CreateTransactionTypeRequest{Code: "CHQ", Name: "Cheques", NumberLength: 6}

	suite.authorize()
	suite.mockRepo.On("FindTransactionTypeByCode", ctx, suite.companyID, "CHQ").Return(existing, nil).Once()

	_, err := suite.service.CreateTransactionType(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactionType", mock.Anything, mock.Anything)
}

func (suite *TransactionTypeServiceTestSuite) TestUpdateTransactionType_SeriesShapeFrozen() {
	ctx := context.Background()
	tt := suite.folioSeries("ING")
	name := "Ingresos renombrado"
	inactive := false

	suite.authorize()
	suite.mockRepo.On("FindTransactionTypeByID", ctx, tt.TransactionTypeID).Return(tt, nil).Once()
	suite.mockRepo.On("UpdateTransactionType", ctx, mock.AnythingOfType("domain.TransactionType")).Return(nil).Once()

	req := dto.UpdateTransactionTypeRequest{Name: &name, IsActive: &inactive}
	updated, err := suite.service.UpdateTransactionType(ctx, suite.companyID, tt.TransactionTypeID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Ingresos renombrado", updated.Name)
	suite.False(updated.IsActive)
	// prefix, suffix and number length stay as issued folios were printed
	suite.Equal("ING-", updated.Prefix)
	suite.Equal(6, updated.NumberLength)
	suite.Equal(41, updated.LastFolio)
}

func (suite *TransactionTypeServiceTestSuite) TestGetTransactionType_OtherCompanyHidden() {
	ctx := context.Background()
	tt := suite.folioSeries("EGR")
	tt.CompanyID = uuid.NewString()

	suite.authorize()
	suite.mockRepo.On("FindTransactionTypeByID", ctx, tt.TransactionTypeID).Return(tt, nil).Once()

	_, err := suite.service.GetTransactionTypeByID(ctx, suite.companyID, tt.TransactionTypeID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionTypeServiceTestSuite) TestListTransactionTypes() {
	ctx := context.Background()
	series := []domain.TransactionType{*suite.folioSeries("ING"), *suite.folioSeries("EGR")}

	suite.authorize()
	suite.mockRepo.On("ListTransactionTypes", ctx, suite.companyID).Return(series, nil).Once()

	got, err := suite.service.ListTransactionTypes(ctx, suite.companyID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestTransactionTypeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTypeServiceTestSuite))
}
