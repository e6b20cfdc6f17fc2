package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

// ThemeService persists per-session display preferences. Preferences are
// session-scoped, not account-scoped: an anonymous visitor can set them
// and they survive login and logout alike.
type ThemeService struct {
	Sessions store.Sessions
}

// SetTheme normalizes and stores the font preferences on the session.
// Blank inputs fall back to the defaults, and a bare number is accepted
// for the size ("14" becomes "14px").
func (s *ThemeService) SetTheme(ctx context.Context, sess *domain.Session, fontFamily, fontSize string) error {
	fontFamily = strings.TrimSpace(fontFamily)
	if fontFamily == "" {
		fontFamily = domain.DefaultFontFamily
	}
	sess.FontFamily = fontFamily
	sess.FontSize = normalizeFontSize(fontSize)

	if err := s.Sessions.UpdateSession(ctx, *sess); err != nil {
		slogx.FromContext(ctx).Error("failed to save theme preferences", slog.Any("error", err))
		return err
	}
	return nil
}

func normalizeFontSize(size string) string {
	size = strings.TrimSpace(size)
	if size == "" {
		return domain.DefaultFontSize
	}
	if n, err := strconv.Atoi(strings.TrimSuffix(size, "px")); err == nil && n > 0 {
		return strconv.Itoa(n) + "px"
	}
	return domain.DefaultFontSize
}
