package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
	"github.com/zhangjiang/campuswall/internal/pkg/auth"
	"github.com/zhangjiang/campuswall/internal/pkg/email"
	"github.com/zhangjiang/campuswall/internal/pkg/validation"
)

// VerificationTokenTTL is how long an email verification token stays valid.
const VerificationTokenTTL = 24 * time.Hour

// UserStore is the persistence surface AuthService needs.
type UserStore interface {
	CreateWithProfile(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	StudentIDExists(ctx context.Context, studentID string) (bool, error)
	SetEmailVerified(ctx context.Context, userID int64) error
}

// TokenStore is the verification token persistence surface.
type TokenStore interface {
	Upsert(ctx context.Context, identifier, token string, expires time.Time) error
	GetByToken(ctx context.Context, token string) (*models.VerificationToken, error)
	Delete(ctx context.Context, identifier, token string) error
}

// AuthService handles signup, login and email verification
type AuthService struct {
	userRepo     UserStore
	tokenRepo    TokenStore
	emailService email.EmailService
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo TokenStore,
	emailService email.EmailService,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		emailService: emailService,
		jwtService:   jwtService,
		logger:       logger,
	}
}

func (s *AuthService) validateSignup(req *dto.SignupRequest) error {
	if !validation.IsValidEmail(req.Email) {
		return apperrors.ErrInvalidEmail
	}
	if req.Password == "" {
		return apperrors.ErrInvalidPassword
	}
	if !validation.IsValidStudentID(req.StudentID) {
		return apperrors.ErrInvalidStudentID
	}
	if strings.TrimSpace(req.RealName) == "" {
		return apperrors.ErrValidationFailed
	}
	return nil
}

// Register creates a new account with its profile, issues an email
// verification token and mails it. A failed email send does not undo the
// registration; the user can request a resend.
func (s *AuthService) Register(ctx context.Context, req *dto.SignupRequest) (*models.Account, error) {
	if err := s.validateSignup(req); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.StudentIDExists(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrStudentIDAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		User: models.User{
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: hash,
		},
		Profile: models.Profile{
			StudentID: req.StudentID,
			RealName:  strings.TrimSpace(req.RealName),
		},
	}

	if err := s.userRepo.CreateWithProfile(ctx, account); err != nil {
		return nil, err
	}

	if err := s.issueVerificationToken(ctx, account.User.Email, account.Profile.RealName); err != nil {
		// Signup itself succeeded. Leave recovery to the resend endpoint.
		s.logger.Warn().Err(err).
			Int64("userID", account.User.ID).
			Msg("Failed to send verification email after signup")
	}

	return account, nil
}

func (s *AuthService) issueVerificationToken(ctx context.Context, toEmail, toName string) error {
	token, err := email.GenerateVerificationToken()
	if err != nil {
		return err
	}

	expires := time.Now().Add(VerificationTokenTTL)
	if err := s.tokenRepo.Upsert(ctx, toEmail, token, expires); err != nil {
		return err
	}

	return s.emailService.SendVerificationEmail(toEmail, toName, token)
}

// Login checks credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	account, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Same answer whether the account exists or the password is wrong.
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(account.User.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(auth.SessionIdentity{
		UserID:     account.User.ID,
		StudentID:  account.Profile.StudentID,
		IsVerified: account.Profile.IsVerified,
		IsAdmin:    account.Profile.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// VerifyEmail consumes a verification token and marks the account's email
// verified. Tokens are single use; expired or unknown tokens are rejected.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	record, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		return err
	}

	if record.IsExpired() {
		_ = s.tokenRepo.Delete(ctx, record.Identifier, record.Token)
		return apperrors.ErrInvalidEmailToken
	}

	account, err := s.userRepo.GetByEmail(ctx, record.Identifier)
	if err != nil {
		return err
	}

	if account.User.EmailVerified {
		_ = s.tokenRepo.Delete(ctx, record.Identifier, record.Token)
		return apperrors.ErrEmailAlreadyVerified
	}

	if err := s.userRepo.SetEmailVerified(ctx, account.User.ID); err != nil {
		return err
	}

	if err := s.tokenRepo.Delete(ctx, record.Identifier, record.Token); err != nil {
		s.logger.Warn().Err(err).Str("email", record.Identifier).Msg("Failed to delete consumed verification token")
	}

	if err := s.emailService.SendWelcomeEmail(account.User.Email, account.Profile.RealName); err != nil {
		s.logger.Warn().Err(err).Str("email", account.User.Email).Msg("Failed to send welcome email")
	}

	return nil
}

// ResendVerification issues a fresh verification token for an unverified
// account, invalidating any earlier one.
func (s *AuthService) ResendVerification(ctx context.Context, reqEmail string) error {
	account, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(reqEmail)))
	if err != nil {
		return err
	}

	if account.User.EmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	return s.issueVerificationToken(ctx, account.User.Email, account.Profile.RealName)
}

// GetProfile returns the account and profile of the given user
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		ID:            account.User.ID,
		Email:         account.User.Email,
		EmailVerified: account.User.EmailVerified,
		StudentID:     account.Profile.StudentID,
		RealName:      account.Profile.RealName,
		IsVerified:    account.Profile.IsVerified,
		IsAdmin:       account.Profile.IsAdmin,
	}, nil
}
