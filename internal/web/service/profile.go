package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	"github.com/bluebirdlabs/lyrictype/pkg/cryptox"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

// ProfileService applies validated changes to a user's own attributes.
// Sensitive operations (password change, account deletion) re-verify the
// current password before touching anything.
type ProfileService struct {
	Store store.Store

	// Sessions is the session repository, which may live outside the main
	// store (redis backend). Account deletion sweeps it.
	Sessions store.Sessions
}

// ChangePassword rotates the stored credential. Checks run in order:
// old password verifies, new pair matches, new differs from old, new is
// long enough.
func (s *ProfileService) ChangePassword(ctx context.Context, user domain.User, oldPassword, newPassword1, newPassword2 string) error {
	log := slogx.FromContext(ctx)

	if err := cryptox.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrWrongOldPassword
		}
		log.Error("failed to verify old password", slog.Any("error", err))
		return err
	}
	if newPassword1 != newPassword2 {
		return ErrPasswordMismatch
	}
	if oldPassword == newPassword1 {
		return ErrPasswordUnchanged
	}
	if len(newPassword1) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := cryptox.HashPassword(newPassword1)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		log.Error("failed to update password hash", slog.Any("error", err))
		return err
	}

	log.Info("password changed", slog.String("user_id", user.ID))
	return nil
}

// EditInfoInput carries the optional profile fields; empty means "leave
// unchanged".
type EditInfoInput struct {
	FirstName string
	LastName  string
	Email     string
}

// EditInfo applies the supplied profile changes all-or-nothing. When the
// new email belongs to a different user nothing is written. A call that
// changes nothing does not touch the row at all.
func (s *ProfileService) EditInfo(ctx context.Context, user domain.User, in EditInfoInput) error {
	log := slogx.FromContext(ctx)

	firstName := user.FirstName
	if strings.TrimSpace(in.FirstName) != "" {
		firstName = strings.TrimSpace(in.FirstName)
	}
	lastName := user.LastName
	if strings.TrimSpace(in.LastName) != "" {
		lastName = strings.TrimSpace(in.LastName)
	}
	email := user.Email
	if strings.TrimSpace(in.Email) != "" {
		email = NormalizeEmail(in.Email)
	}

	if firstName == user.FirstName && lastName == user.LastName && email == user.Email {
		return nil // nothing to do, leave the row untouched
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if email != user.Email {
			existing, err := tx.Users().GetUserByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return ErrEmailTaken
			}
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		if err := tx.Users().UpdateProfile(ctx, user.ID, firstName, lastName, email); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmailTaken) {
			log.Error("failed to update profile", slog.Any("error", err))
		}
		return err
	}

	log.Info("profile updated", slog.String("user_id", user.ID))
	return nil
}

// ChangeAvatar sets the avatar reference.
func (s *ProfileService) ChangeAvatar(ctx context.Context, user domain.User, avatar string) error {
	if avatar == "" {
		return ErrAvatarRequired
	}

	if err := s.Store.Users().UpdateAvatar(ctx, user.ID, avatar); err != nil {
		slogx.FromContext(ctx).Error("failed to update avatar", slog.Any("error", err))
		return err
	}
	return nil
}

// DeleteAccount permanently removes the user after re-authentication.
// The row delete is transactional; sessions bound to the user are swept
// afterwards (the sqlite backend already cascades them inside the same
// transaction).
func (s *ProfileService) DeleteAccount(ctx context.Context, user domain.User, confirmPassword string) error {
	log := slogx.FromContext(ctx)

	if confirmPassword == "" {
		return ErrPasswordRequired
	}
	if err := cryptox.VerifyPassword(confirmPassword, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrPasswordMismatch
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().DeleteUser(ctx, user.ID)
	})
	if err != nil {
		log.Error("failed to delete user", slog.String("user_id", user.ID), slog.Any("error", err))
		return err
	}

	// A session bound to a missing user already behaves as anonymous, so
	// a failed sweep here is not a security hole, just litter.
	if err := s.Sessions.DeleteUserSessions(ctx, user.ID); err != nil {
		log.Warn("failed to sweep sessions of deleted user",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	log.Info("account deleted", slog.String("user_id", user.ID))
	return nil
}
