package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"petlove/internal/errs"
	"petlove/internal/metrics"
	"petlove/internal/models"
	"petlove/internal/repositories"
	"petlove/internal/utils"
)

const (
	resetCodeLength = 6
	resetCodeTTL    = 15 * time.Minute
)

var errInvalidResetCode = fmt.Errorf("%w: invalid or expired reset code", errs.ErrInvalidInput)

// PasswordResetService mails single-use codes and swaps the password once a
// valid code comes back.
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *models.ResetPassword) error
}

type passwordResetService struct {
	userRepo  repositories.UserRepository
	resetRepo repositories.PasswordResetRepository
	email     EmailService
	now       func() time.Time
}

func NewPasswordResetService(userRepo repositories.UserRepository, resetRepo repositories.PasswordResetRepository, email EmailService) PasswordResetService {
	return &passwordResetService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		email:     email,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RequestReset answers nil for unknown addresses so callers cannot enumerate
// which emails are registered.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Info().Str("email", email).Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	code, err := utils.GenerateSecureOTP(resetCodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	now := s.now()
	if err := s.resetRepo.InvalidateForUser(ctx, user.ID, now); err != nil {
		return err
	}

	reset := &models.PasswordReset{
		Base:      models.NewBase(),
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: now.Add(resetCodeTTL),
	}
	if _, err := s.resetRepo.Create(ctx, reset); err != nil {
		return err
	}
	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()

	body := fmt.Sprintf("<p>Your PetLove password reset code is <b>%s</b>.</p><p>It expires in %d minutes.</p>",
		code, int(resetCodeTTL.Minutes()))
	if err := s.email.SendEmail(user.Email, "Your PetLove password reset code", body); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Failed to send password reset email")
		return fmt.Errorf("failed to send reset code: %w", err)
	}

	log.Info().Str("user_id", user.ID.Hex()).Msg("Password reset code issued")
	return nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, req *models.ResetPassword) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
			return errInvalidResetCode
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	now := s.now()
	reset, err := s.resetRepo.FindActive(ctx, user.ID, req.Code, now)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Warn().Str("user_id", user.ID.Hex()).Msg("Rejected password reset code")
			metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
			if err := s.resetRepo.RecordFailedAttempt(ctx, user.ID, now); err != nil {
				return err
			}
			return errInvalidResetCode
		}
		return err
	}

	consumed, err := s.resetRepo.MarkUsed(ctx, reset.ID, now)
	if err != nil {
		return err
	}
	if !consumed {
		metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		return errInvalidResetCode
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	result, err := s.userRepo.Update(ctx, user.ID, bson.M{"password": string(hashed)})
	if err != nil {
		return err
	}
	if err := matchedOrNotFound(result, "user"); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	log.Info().Str("user_id", user.ID.Hex()).Msg("Password reset completed")
	return nil
}
