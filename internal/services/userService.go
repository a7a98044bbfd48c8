package services

import (
	"context"
	"errors"
	"fmt"
	"html"
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

const bcryptCost = 10

// UserService defines the interface for user-related business logic.
type UserService interface {
	RegisterUser(ctx context.Context, user *models.User) (*models.User, error)
	LoginUser(ctx context.Context, creds *models.Login) (string, error)
	GetUser(ctx context.Context, userID models.ID) (*models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter, page models.Pagination) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, userID models.ID, updatePayload *models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, userID models.ID) error
}

type userService struct {
	userRepo  repositories.UserRepository
	email     EmailService
	jwtSecret string
	jwtTTL    time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, email EmailService, jwtSecret string, jwtTTL time.Duration) UserService {
	return &userService{
		userRepo:  userRepo,
		email:     email,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *userService) refreshTotalUsers(ctx context.Context) {
	if count, err := s.userRepo.Count(ctx, bson.M{}); err == nil {
		metrics.TotalUsers.Set(float64(count))
	}
}

func (s *userService) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	log.Debug().Str("email", user.Email).Msg("Attempting to register user")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password during registration")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Base = models.NewBase()
	user.Password = string(hashedPassword)
	user.Role = models.RoleCustomer

	createdUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn().Str("email", user.Email).Msg("Email already exists during user insertion")
			return nil, fmt.Errorf("email %w", errs.ErrAlreadyExists)
		}
		return nil, err
	}

	createdUser.Password = ""
	log.Info().Str("user_id", createdUser.ID.Hex()).Str("email", createdUser.Email).Msg("User registered successfully")
	metrics.NewUsersTotal.Inc()
	s.refreshTotalUsers(ctx)

	body := fmt.Sprintf("<p>Hi %s,</p><p>Welcome to PetLove! Your account is ready.</p>", html.EscapeString(createdUser.Name))
	if err := s.email.SendEmail(createdUser.Email, "Welcome to PetLove", body); err != nil {
		log.Warn().Err(err).Str("user_id", createdUser.ID.Hex()).Msg("Failed to send welcome email")
	}
	return createdUser, nil
}

func (s *userService) LoginUser(ctx context.Context, creds *models.Login) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	log.Debug().Str("email", email).Msg("Attempting user login")

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Warn().Str("email", email).Msg("Invalid credentials during login attempt")
			metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
			return "", errs.ErrInvalidCredentials
		}
		log.Error().Err(err).Str("email", email).Msg("Error finding user for login")
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		log.Warn().Str("email", email).Msg("Invalid credentials (password mismatch) during login attempt")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return "", errs.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Could not generate token for user")
		return "", fmt.Errorf("could not generate token: %w", err)
	}

	log.Info().Str("user_id", user.ID.Hex()).Msg("User logged in successfully")
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return token, nil
}

func (s *userService) GetUser(ctx context.Context, userID models.ID) (*models.User, error) {
	log.Debug().Str("user_id", userID.Hex()).Msg("Attempting to retrieve user")
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Warn().Str("user_id", userID.Hex()).Msg("User not found")
			return nil, fmt.Errorf("user %w", errs.ErrNotFound)
		}
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to fetch user")
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	user.Password = ""
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, filter models.UserFilter, page models.Pagination) ([]models.User, int64, error) {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.Email != "" {
		query["email"] = strings.ToLower(filter.Email)
	}

	users, err := s.userRepo.Find(ctx, query, page)
	if err != nil {
		log.Error().Err(err).Msg("Error listing users")
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	for i := range users {
		users[i].Password = ""
	}
	log.Debug().Int("count", len(users)).Int64("total", total).Msg("Successfully listed users")
	return users, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID models.ID, updatePayload *models.UserUpdate) (*models.User, error) {
	log.Debug().Str("user_id", userID.Hex()).Msg("Attempting to update user")
	updateFields := bson.M{}
	if updatePayload.Name != nil {
		updateFields["name"] = *updatePayload.Name
	}
	if updatePayload.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*updatePayload.Email))
		existingUser, err := s.userRepo.FindByEmail(ctx, email)
		if err == nil && existingUser.ID != userID {
			log.Warn().Str("email", email).Msg("Email already in use by another account")
			return nil, fmt.Errorf("email %w", errs.ErrAlreadyExists)
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			log.Error().Err(err).Str("email", email).Msg("Failed to check email availability")
			return nil, fmt.Errorf("failed to check email availability: %w", err)
		}
		updateFields["email"] = email
	}
	if updatePayload.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*updatePayload.Password), bcryptCost)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to hash new password")
			return nil, fmt.Errorf("failed to hash new password: %w", err)
		}
		updateFields["password"] = string(hashedPassword)
	}
	if updatePayload.Phone != nil {
		updateFields["phone"] = *updatePayload.Phone
	}
	if updatePayload.Address != nil {
		updateFields["address"] = *updatePayload.Address
	}
	if updatePayload.Role != nil {
		updateFields["role"] = *updatePayload.Role
	}

	if len(updateFields) == 0 {
		log.Warn().Str("user_id", userID.Hex()).Msg("No valid fields provided for user update")
		return nil, errs.ErrNoFieldsToUpdate
	}

	result, err := s.userRepo.Update(ctx, userID, updateFields)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("email %w", errs.ErrAlreadyExists)
		}
		return nil, err
	}
	if result.MatchedCount == 0 {
		log.Warn().Str("user_id", userID.Hex()).Msg("User not found for update")
		return nil, fmt.Errorf("user %w", errs.ErrNotFound)
	}

	log.Info().Str("user_id", userID.Hex()).Msg("User updated successfully")
	return s.GetUser(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID models.ID) error {
	log.Debug().Str("user_id", userID.Hex()).Msg("Attempting to delete user account")
	result, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		log.Warn().Str("user_id", userID.Hex()).Msg("User account not found")
		return fmt.Errorf("user %w", errs.ErrNotFound)
	}

	log.Info().Str("user_id", userID.Hex()).Msg("User account deleted successfully")
	s.refreshTotalUsers(ctx)
	return nil
}
