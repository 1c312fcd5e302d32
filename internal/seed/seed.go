package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/zhangjiang/campuswall/internal/app/models"
	appRepos "github.com/zhangjiang/campuswall/internal/app/repositories"
	"github.com/zhangjiang/campuswall/internal/config"
	"github.com/zhangjiang/campuswall/internal/pkg/auth"
)

// CreateDefaultAdmin creates the configured admin account if it does not
// exist yet. The admin is born verified so it can moderate immediately.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		lgr.Info().Msg("No admin account configured, skipping seed")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, cfg.Admin.Email)
	if err != nil {
		return fmt.Errorf("error checking for admin account: %w", err)
	}
	if exists {
		lgr.Info().Str("email", cfg.Admin.Email).Msg("Admin account already exists, skipping seed")
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	account := &appModels.Account{
		User: appModels.User{
			Email:         cfg.Admin.Email,
			PasswordHash:  hashedPassword,
			EmailVerified: true,
		},
		Profile: appModels.Profile{
			StudentID:  cfg.Admin.StudentID,
			RealName:   cfg.Admin.RealName,
			IsVerified: true,
			IsAdmin:    true,
		},
	}

	if err := userRepo.CreateWithProfile(ctx, account); err != nil {
		return fmt.Errorf("error creating admin account: %w", err)
	}

	lgr.Info().Int64("userID", account.User.ID).Str("email", cfg.Admin.Email).
		Msg("Default admin account created")
	return nil
}
