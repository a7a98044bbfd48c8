package models

import "time"

// MaxResetAttempts is how many wrong codes a user may submit before their
// open reset stops accepting any code.
const MaxResetAttempts = 5

// PasswordReset is a single-use code mailed to a user who forgot their
// password. Documents expire through a TTL index on expires_at.
type PasswordReset struct {
	Base      `bson:",inline"`
	UserID    ID         `json:"user_id" bson:"user_id"`
	Code      string     `json:"-" bson:"code"`
	ExpiresAt time.Time  `json:"expires_at" bson:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty" bson:"used_at,omitempty"`
	Attempts  int        `json:"attempts" bson:"attempts"`
}

func (p *PasswordReset) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

func (p *PasswordReset) Locked() bool {
	return p.Attempts >= MaxResetAttempts
}

type ForgotPassword struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPassword struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}
