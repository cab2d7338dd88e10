package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/pension_management_app/internal/core/ports/services"
	"github.com/SscSPs/pension_management_app/internal/core/services"
	"github.com/SscSPs/pension_management_app/internal/dto"
	"github.com/SscSPs/pension_management_app/internal/platform/config"
	"github.com/SscSPs/pension_management_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	cfg      *config.Config
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.cfg = &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "test"}
	suite.service = services.NewUserService(suite.mockRepo, suite.cfg)
}

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	now := time.Now()
	req := dto.RegisterRequest{Email: " Ada@Example.com ", Password: "correct-horse", FullName: "Ada", DateOfBirth: "1985-04-12"}

	suite.mockRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ada@example.com" && u.Role == domain.RoleMember && u.PasswordHash != "correct-horse" && u.DateOfBirth != nil
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req, now)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(user.UserID, user.CreatedBy)
	suite.True(utils.CheckPasswordHash("correct-horse", user.PasswordHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_Duplicate() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(&domain.User{UserID: "u1"}, nil).Once()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{Email: "ada@example.com", Password: "correct-horse", FullName: "Ada"}, time.Now())

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestLogin() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	suite.mockRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(&domain.User{UserID: "u1", PasswordHash: hash}, nil)
	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound)

	now := time.Now()
	res, err := suite.service.Login(ctx, dto.LoginRequest{Email: "ADA@example.com", Password: "correct-horse"}, now)
	suite.Require().NoError(err)
	claims, err := utils.ParseAndValidateJWT(res.Token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal("u1", claims.Subject)
	suite.Equal(now.Add(time.Hour), res.ExpiresAt)

	_, err = suite.service.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: "wrong"}, now)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "x"}, now)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, "missing")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
