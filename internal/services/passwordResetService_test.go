package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"petlove/internal/errs"
	"petlove/internal/models"
)

func newTestPasswordResetService() (*passwordResetService, *fakeUserRepo, *fakePasswordResetRepo, *fakeEmailService) {
	users := newFakeUserRepo()
	resets := newFakePasswordResetRepo()
	email := &fakeEmailService{}
	svc := NewPasswordResetService(users, resets, email).(*passwordResetService)
	return svc, users, resets, email
}

func openReset(t *testing.T, resets *fakePasswordResetRepo) models.PasswordReset {
	t.Helper()
	for _, p := range resets.all() {
		if p.UsedAt == nil {
			return p
		}
	}
	t.Fatal("no open reset code")
	return models.PasswordReset{}
}

func TestRequestReset(t *testing.T) {
	svc, users, resets, email := newTestPasswordResetService()
	ctx := context.Background()
	user := seedUser(users, "ana@example.com")

	require.NoError(t, svc.RequestReset(ctx, "ANA@example.com"))
	first := openReset(t, resets)
	assert.Equal(t, user.ID, first.UserID)
	assert.Len(t, first.Code, 6)
	assert.Equal(t, "ana@example.com", email.last().to)
	assert.Contains(t, email.last().body, first.Code)

	require.NoError(t, svc.RequestReset(ctx, "ana@example.com"))
	assert.Len(t, resets.all(), 2)
	second := openReset(t, resets)
	assert.NotEqual(t, first.ID, second.ID, "a new request supersedes the previous code")
}

func TestRequestResetUnknownEmail(t *testing.T) {
	svc, _, resets, email := newTestPasswordResetService()

	require.NoError(t, svc.RequestReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, resets.all())
	assert.Empty(t, email.sent)
}

func TestResetPassword(t *testing.T) {
	svc, users, resets, _ := newTestPasswordResetService()
	ctx := context.Background()
	user := seedUser(users, "ana@example.com")
	require.NoError(t, svc.RequestReset(ctx, user.Email))
	code := openReset(t, resets).Code

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	err := svc.ResetPassword(ctx, &models.ResetPassword{Email: user.Email, Code: wrong, NewPassword: "brand-new"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	require.NoError(t, svc.ResetPassword(ctx, &models.ResetPassword{Email: user.Email, Code: code, NewPassword: "brand-new"}))
	stored, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("brand-new")))

	err = svc.ResetPassword(ctx, &models.ResetPassword{Email: user.Email, Code: code, NewPassword: "again-new"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput, "codes are single use")
}

func TestResetPasswordExpired(t *testing.T) {
	svc, users, resets, _ := newTestPasswordResetService()
	ctx := context.Background()
	user := seedUser(users, "ana@example.com")
	require.NoError(t, svc.RequestReset(ctx, user.Email))
	code := openReset(t, resets).Code

	svc.now = func() time.Time { return time.Now().UTC().Add(resetCodeTTL + time.Minute) }
	err := svc.ResetPassword(ctx, &models.ResetPassword{Email: user.Email, Code: code, NewPassword: "brand-new"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	err = svc.ResetPassword(ctx, &models.ResetPassword{Email: "nobody@example.com", Code: code, NewPassword: "brand-new"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestResetPasswordLocksAfterRepeatedWrongCodes(t *testing.T) {
	svc, users, resets, _ := newTestPasswordResetService()
	ctx := context.Background()
	user := seedUser(users, "ana@example.com")
	require.NoError(t, svc.RequestReset(ctx, user.Email))
	code := openReset(t, resets).Code

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	for i := 0; i < models.MaxResetAttempts; i++ {
		err := svc.ResetPassword(ctx, &models.ResetPassword{Email: user.Email, Code: wrong, NewPassword: "brand-new"})
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	}
	assert.Equal(t, models.MaxResetAttempts, openReset(t, resets).Attempts)

	err := svc.ResetPassword(ctx, &models.ResetPassword{Email: user.Email, Code: code, NewPassword: "brand-new"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput, "the right code is refused once the reset is locked")

	require.NoError(t, svc.RequestReset(ctx, user.Email))
	fresh := openReset(t, resets)
	assert.Zero(t, fresh.Attempts)
	require.NoError(t, svc.ResetPassword(ctx, &models.ResetPassword{Email: user.Email, Code: fresh.Code, NewPassword: "brand-new"}))
}
