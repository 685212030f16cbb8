package iam

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mentcare/records/pkg/config"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/types"
)

// MockUserRepository is a mock implementation of repository.UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetAll() []*types.User {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*types.User)
}

func (m *MockUserRepository) FindByID(id string) (*types.User, bool) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*types.User), args.Bool(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*types.User, bool) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*types.User), args.Bool(1)
}

func (m *MockUserRepository) Save(user *types.User) {
	m.Called(user)
}

func (m *MockUserRepository) Delete(id string) {
	m.Called(id)
}

func (m *MockUserRepository) Authenticate(username, password string) (*types.User, bool) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*types.User), args.Bool(1)
}

func setupTestService(t *testing.T) (*Service, *MockUserRepository) {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "test-secret-key",
			AccessTokenTTL: 3600,
			Issuer:         "mentcare-records",
			Audience:       "mentcare-users",
		},
	}

	repo := new(MockUserRepository)
	return NewService(cfg, logger.New("error"), repo), repo
}

func TestLoginSuccess(t *testing.T) {
	service, repo := setupTestService(t)

	user := types.NewUser("USER001", "doctor1", "password123", types.RoleClinicalStaff, "Dr. John Smith")
	repo.On("Authenticate", "doctor1", "password123").Return(user, true)

	token, loggedIn, err := service.Login(&types.Credentials{Username: "doctor1", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "USER001", loggedIn.ID)

	repo.AssertExpectations(t)
}

func TestLoginInvalidCredentials(t *testing.T) {
	service, repo := setupTestService(t)

	repo.On("Authenticate", "doctor1", "wrong").Return(nil, false)

	token, user, err := service.Login(&types.Credentials{Username: "doctor1", Password: "wrong"})
	require.Error(t, err)
	assert.Nil(t, token)
	assert.Nil(t, user)

	var mentcareErr *types.MentcareError
	require.True(t, errors.As(err, &mentcareErr))
	assert.Equal(t, types.ErrorTypeAuthentication, mentcareErr.Type)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	service, repo := setupTestService(t)

	user := types.NewUser("USER001", "doctor1", "password123", types.RoleClinicalStaff, "Dr. John Smith")
	repo.On("Authenticate", "doctor1", "password123").Return(user, true)

	token, _, err := service.Login(&types.Credentials{Username: "doctor1", Password: "password123"})
	require.NoError(t, err)

	claims, err := service.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "USER001", claims.Subject)
	assert.Equal(t, "doctor1", claims.Username)
	assert.Equal(t, types.RoleClinicalStaff, claims.Role)
	assert.Contains(t, claims.Permissions, PermViewPatients)
	assert.Contains(t, claims.Permissions, PermPrescribeMedication)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service, _ := setupTestService(t)

	_, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	service, repo := setupTestService(t)

	user := types.NewUser("USER001", "doctor1", "password123", types.RoleClinicalStaff, "Dr. John Smith")
	repo.On("Authenticate", "doctor1", "password123").Return(user, true)

	token, _, err := service.Login(&types.Credentials{Username: "doctor1", Password: "password123"})
	require.NoError(t, err)

	other, _ := setupTestService(t)
	other.config.JWT.SecretKey = "a-different-secret"

	_, err = other.ValidateToken(token.AccessToken)
	assert.Error(t, err)
}

func TestGetUser(t *testing.T) {
	service, repo := setupTestService(t)

	user := types.NewUser("USER001", "doctor1", "password123", types.RoleClinicalStaff, "Dr. John Smith")
	repo.On("FindByID", "USER001").Return(user, true)
	repo.On("FindByID", "USER999").Return(nil, false)

	found, err := service.GetUser("USER001")
	require.NoError(t, err)
	assert.Equal(t, "doctor1", found.Username)

	_, err = service.GetUser("USER999")
	require.Error(t, err)

	var mentcareErr *types.MentcareError
	require.True(t, errors.As(err, &mentcareErr))
	assert.Equal(t, types.ErrorTypeNotFound, mentcareErr.Type)
}
