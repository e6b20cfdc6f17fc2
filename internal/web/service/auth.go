package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	"github.com/bluebirdlabs/lyrictype/pkg/cryptox"
	"github.com/bluebirdlabs/lyrictype/pkg/idx"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

// dummyHash keeps credential verification constant-time when the email
// is unknown: argon2 still runs against this throwaway hash.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$P4kgnZnDCGKVlRqhSCPIH1bUu7uVnkan7qh+rCJSOnc"

// AuthService verifies credentials and registers accounts. Session
// binding happens at the HTTP layer via session.Manager once these
// operations succeed.
type AuthService struct {
	Store store.Store
}

// NormalizeEmail applies the login-identifier normalization: trimmed and
// lower-cased. Every store lookup and write goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login authenticates an email/password pair and returns the matching
// user. Unknown email and wrong password are both ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up user", slog.Any("error", err))
		return domain.User{}, err
	}

	// Verify against a dummy hash when the user does not exist so the
	// response time does not leak which emails are registered.
	hash := dummyHash
	if err == nil {
		hash = user.PasswordHash
	}
	verifyErr := cryptox.VerifyPassword(password, hash)

	if err != nil || verifyErr != nil {
		log.Debug("login rejected", slog.String("email", NormalizeEmail(email)))
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// SignupInput carries the raw signup form fields.
type SignupInput struct {
	Email     string
	Password1 string
	Password2 string
	FirstName string
	LastName  string
	Avatar    string
}

// Signup validates and registers a new account. Validation rules run in
// order and the first failure wins:
//  1. all required fields present
//  2. passwords match
//  3. password long enough
//  4. trimmed fields non-blank
//  5. email not already registered (case/whitespace-insensitive)
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if in.Email == "" || in.FirstName == "" || in.LastName == "" || in.Password1 == "" || in.Password2 == "" {
		return domain.User{}, ErrFieldsRequired
	}
	if in.Password1 != in.Password2 {
		return domain.User{}, ErrPasswordMismatch
	}
	if len(in.Password1) < MinPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}

	email := NormalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if email == "" || firstName == "" || lastName == "" {
		return domain.User{}, ErrFieldsInvalid
	}

	hash, err := cryptox.HashPassword(in.Password1)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	avatar := in.Avatar
	if avatar == "" {
		avatar = domain.DefaultAvatar
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Avatar:       avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The uniqueness check and the insert run in one transaction so two
	// concurrent signups for the same email cannot both pass the check.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmailTaken) {
			log.Error("failed to create user", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}
