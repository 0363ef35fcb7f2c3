package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service  usecase.AccountUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
	tokenSvc *mockSvc.MockTokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)

	service := NewAccountService(AccountServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       newTestLogger(),
	})

	return accountServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)

	fx.hasher.EXPECT().
		Hash(input.Password).
		Return("$2a$10$hash", nil)

	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	output, err := fx.service.Register(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, input.Name, output.User.Name)
	assert.Equal(t, "$2a$10$hash", output.User.PasswordHash)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existing := &entity.User{ID: uuid.New(), Email: "alice@example.com"}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, existing.Email).
		Return(existing, nil)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Alice",
		Email:    existing.Email,
		Password: "whatever",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAccountService_Register_LookupError(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(nil, errors.New("connection refused"))

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "whatever",
	})
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "failed to check existing email")
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, user.Email).
		Return(user, nil)

	fx.hasher.EXPECT().
		Check("correct horse battery", user.PasswordHash).
		Return(true)

	fx.tokenSvc.EXPECT().
		GenerateToken(user.ID).
		Return("signed.jwt.token", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    user.Email,
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.AccessToken)
	assert.Equal(t, user, output.User)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, user.Email).
		Return(user, nil)

	fx.hasher.EXPECT().
		Check("not the password", user.PasswordHash).
		Return(false)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    user.Email,
		Password: "not the password",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
