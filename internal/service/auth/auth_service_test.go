package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/travelwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) AppendBooking(ctx context.Context, userID, bookingID string) error {
	args := m.Called(ctx, userID, bookingID)
	return args.Error(0)
}

func newService(users *MockUserRepository) *AuthService {
	return NewAuthService(users, "test-secret", 24*time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	users := &MockUserRepository{}
	svc := newService(users)

	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			u.ID = "user-1"
		}).
		Return(nil)

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ann",
		Email:    "  Ann@X.com ",
		Password: "secret1",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "user-1", result.User.ID)
	assert.Equal(t, "Ann", result.User.Name)
	assert.Equal(t, "ann@x.com", result.User.Email)

	created := users.Calls[0].Arguments.Get(1).(*domain.User)
	assert.Equal(t, "ann@x.com", created.Email)
	assert.NotEqual(t, "secret1", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))

	users.AssertExpectations(t)
}

func TestAuthService_Register_Validation(t *testing.T) {
	users := &MockUserRepository{}
	svc := newService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "", Email: "a@b.co", Password: "secret1"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Register(ctx, RegisterInput{Name: "Ann", Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, RegisterInput{Name: "Ann", Email: "a@b.co", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := &MockUserRepository{}
	svc := newService(users)

	users.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailTaken)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "secret1",
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_RegisterThenLogin_SameUser(t *testing.T) {
	users := &MockUserRepository{}
	svc := newService(users)
	ctx := context.Background()

	var saved *domain.User
	users.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.User)
			saved.ID = "user-1"
		}).
		Return(nil)

	registered, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	assert.NoError(t, err)

	users.On("GetByEmail", mock.Anything, "ann@x.com").Return(saved, nil)
	users.On("GetByID", mock.Anything, "user-1").Return(saved, nil)

	loggedIn, err := svc.Login(ctx, LoginInput{Email: "ANN@x.com", Password: "secret1"})
	assert.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	// Both tokens verify back to the same user.
	fromRegister, err := svc.Verify(ctx, registered.Token)
	assert.NoError(t, err)
	fromLogin, err := svc.Verify(ctx, loggedIn.Token)
	assert.NoError(t, err)
	assert.Equal(t, fromRegister.ID, fromLogin.ID)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	users := &MockUserRepository{}
	svc := newService(users)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "ann@x.com").Return(&domain.User{ID: "user-1", PasswordHash: string(hash)}, nil)
	users.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrUserNotFound)

	_, wrongPassword := svc.Login(ctx, LoginInput{Email: "ann@x.com", Password: "wrong-pass"})
	_, unknownEmail := svc.Login(ctx, LoginInput{Email: "ghost@x.com", Password: "secret1"})

	// Identical error for both failure modes; no account enumeration.
	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Verify_InvalidToken(t *testing.T) {
	users := &MockUserRepository{}
	svc := newService(users)
	ctx := context.Background()

	_, err := svc.Verify(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Verify(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Signed with a different secret.
	other := NewAuthService(users, "other-secret", time.Hour)
	result, err := other.issue(&domain.User{ID: "user-1"})
	assert.NoError(t, err)
	_, err = svc.Verify(ctx, result.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Tampered payload invalidates the signature.
	good, err := svc.issue(&domain.User{ID: "user-1"})
	assert.NoError(t, err)
	_, err = svc.Verify(ctx, good.Token+"x")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_Verify_ExpiredToken(t *testing.T) {
	users := &MockUserRepository{}
	svc := NewAuthService(users, "test-secret", -time.Hour)

	result, err := svc.issue(&domain.User{ID: "user-1"})
	assert.NoError(t, err)

	_, err = svc.Verify(context.Background(), result.Token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	// Expiry stays a sub-case of Unauthenticated.
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestAuthService_ResolveOptional(t *testing.T) {
	users := &MockUserRepository{}
	svc := newService(users)
	ctx := context.Background()

	assert.Nil(t, svc.ResolveOptional(ctx, ""))
	assert.Nil(t, svc.ResolveOptional(ctx, "garbage"))

	user := &domain.User{ID: "user-1"}
	users.On("GetByID", mock.Anything, "user-1").Return(user, nil)
	result, err := svc.issue(user)
	assert.NoError(t, err)

	resolved := svc.ResolveOptional(ctx, result.Token)
	assert.NotNil(t, resolved)
	assert.Equal(t, "user-1", resolved.ID)
}
