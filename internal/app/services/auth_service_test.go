package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
	"github.com/zhangjiang/campuswall/internal/pkg/auth"
)

type stubUserStore struct {
	byEmail     map[string]*models.Account
	nextID      int64
	createCalls int
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byEmail: make(map[string]*models.Account), nextID: 1}
}

func (s *stubUserStore) CreateWithProfile(_ context.Context, account *models.Account) error {
	s.createCalls++
	if _, ok := s.byEmail[account.User.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	for _, existing := range s.byEmail {
		if existing.Profile.StudentID == account.Profile.StudentID {
			return apperrors.ErrStudentIDAlreadyExists
		}
	}
	account.User.ID = s.nextID
	account.Profile.ID = s.nextID
	s.nextID++
	copied := *account
	s.byEmail[account.User.Email] = &copied
	return nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	account, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *stubUserStore) GetByID(_ context.Context, id int64) (*models.Account, error) {
	for _, account := range s.byEmail {
		if account.User.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserStore) StudentIDExists(_ context.Context, studentID string) (bool, error) {
	for _, account := range s.byEmail {
		if account.Profile.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubUserStore) SetEmailVerified(_ context.Context, userID int64) error {
	for _, account := range s.byEmail {
		if account.User.ID == userID {
			account.User.EmailVerified = true
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

type stubTokenStore struct {
	byToken map[string]*models.VerificationToken
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{byToken: make(map[string]*models.VerificationToken)}
}

func (s *stubTokenStore) Upsert(_ context.Context, identifier, token string, expires time.Time) error {
	for existing, record := range s.byToken {
		if record.Identifier == identifier {
			delete(s.byToken, existing)
		}
	}
	s.byToken[token] = &models.VerificationToken{Identifier: identifier, Token: token, Expires: expires}
	return nil
}

func (s *stubTokenStore) GetByToken(_ context.Context, token string) (*models.VerificationToken, error) {
	record, ok := s.byToken[token]
	if !ok {
		return nil, apperrors.ErrInvalidEmailToken
	}
	return record, nil
}

func (s *stubTokenStore) Delete(_ context.Context, _, token string) error {
	delete(s.byToken, token)
	return nil
}

func (s *stubTokenStore) tokenFor(identifier string) string {
	for token, record := range s.byToken {
		if record.Identifier == identifier {
			return token
		}
	}
	return ""
}

type stubEmailService struct {
	verificationSent int
	welcomeSent      int
	sendErr          error
}

func (s *stubEmailService) SendVerificationEmail(_, _, _ string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.verificationSent++
	return nil
}

func (s *stubEmailService) SendWelcomeEmail(_, _ string) error {
	s.welcomeSent++
	return nil
}

func newTestAuthService() (*AuthService, *stubUserStore, *stubTokenStore, *stubEmailService) {
	users := newStubUserStore()
	tokens := newStubTokenStore()
	mailer := &stubEmailService{}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "campuswall.test",
	})
	svc := NewAuthService(users, tokens, mailer, jwtService, zerolog.Nop())
	return svc, users, tokens, mailer
}

func validSignup() *dto.SignupRequest {
	return &dto.SignupRequest{
		Email:     "student@example.edu.cn",
		Password:  "s3cretpass",
		StudentID: "123456789",
		RealName:  "张三",
	}
}

func TestRegister(t *testing.T) {
	svc, _, tokens, mailer := newTestAuthService()

	account, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)
	assert.NotZero(t, account.User.ID)
	assert.False(t, account.User.EmailVerified)
	assert.False(t, account.Profile.IsVerified)
	assert.Equal(t, 1, mailer.verificationSent)
	assert.NotEmpty(t, tokens.tokenFor("student@example.edu.cn"))
}

func TestRegisterMinimalFields(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	// No minimum length applies to password or name, only presence.
	account, err := svc.Register(context.Background(), &dto.SignupRequest{
		Email:     "a@x.cn",
		Password:  "secret1",
		StudentID: "123456789",
		RealName:  "A",
	})
	require.NoError(t, err)
	assert.Equal(t, "A", account.Profile.RealName)
	assert.False(t, account.User.EmailVerified)
	assert.False(t, account.Profile.IsVerified)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	req := validSignup()
	req.StudentID = "987654321"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterDuplicateStudentID(t *testing.T) {
	svc, users, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	req := validSignup()
	req.Email = "other@example.edu.cn"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrStudentIDAlreadyExists)

	// The pre-check rejects before any insert is attempted.
	assert.Equal(t, 1, users.createCalls)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	tests := []struct {
		name    string
		mutate  func(*dto.SignupRequest)
		wantErr error
	}{
		{"bad email", func(r *dto.SignupRequest) { r.Email = "not-an-email" }, apperrors.ErrInvalidEmail},
		{"empty password", func(r *dto.SignupRequest) { r.Password = "" }, apperrors.ErrInvalidPassword},
		{"short student id", func(r *dto.SignupRequest) { r.StudentID = "12345" }, apperrors.ErrInvalidStudentID},
		{"non numeric student id", func(r *dto.SignupRequest) { r.StudentID = "12345678a" }, apperrors.ErrInvalidStudentID},
		{"empty name", func(r *dto.SignupRequest) { r.RealName = " " }, apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(req)
			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterSurvivesEmailFailure(t *testing.T) {
	svc, users, _, mailer := newTestAuthService()
	mailer.sendErr = errors.New("smtp down")

	account, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), account.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "student@example.edu.cn", stored.User.Email)
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.edu.cn",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.edu.cn",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.edu.cn",
		Password: "s3cretpass",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestVerifyEmail(t *testing.T) {
	svc, users, tokens, mailer := newTestAuthService()

	account, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	token := tokens.tokenFor("student@example.edu.cn")
	require.NotEmpty(t, token)

	require.NoError(t, svc.VerifyEmail(context.Background(), token))

	stored, err := users.GetByID(context.Background(), account.User.ID)
	require.NoError(t, err)
	assert.True(t, stored.User.EmailVerified)
	assert.Equal(t, 1, mailer.welcomeSent)

	// The token is single use.
	err = svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	svc, _, tokens, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	token := tokens.tokenFor("student@example.edu.cn")
	tokens.byToken[token].Expires = time.Now().Add(-time.Minute)

	err = svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
	assert.Empty(t, tokens.tokenFor("student@example.edu.cn"))
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	err := svc.VerifyEmail(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
}

func TestResendVerification(t *testing.T) {
	svc, _, tokens, mailer := newTestAuthService()

	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)
	first := tokens.tokenFor("student@example.edu.cn")

	require.NoError(t, svc.ResendVerification(context.Background(), "student@example.edu.cn"))
	second := tokens.tokenFor("student@example.edu.cn")

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, mailer.verificationSent)

	// The replaced token no longer verifies.
	err = svc.VerifyEmail(context.Background(), first)
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	svc, _, tokens, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(context.Background(), tokens.tokenFor("student@example.edu.cn")))

	err = svc.ResendVerification(context.Background(), "student@example.edu.cn")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyVerified)
}

func TestGetProfile(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	account, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), account.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "123456789", profile.StudentID)
	assert.Equal(t, "张三", profile.RealName)
	assert.False(t, profile.IsAdmin)

	_, err = svc.GetProfile(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
