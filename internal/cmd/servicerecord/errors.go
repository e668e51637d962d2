package servicerecord

import (
	"errors"
	"strings"

	apperrors "github.com/louisbranch/servicerecord/internal/platform/errors"
	"github.com/louisbranch/servicerecord/internal/platform/errors/i18n"
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr usageError
	if errors.As(err, &usageErr) {
		return apperrors.ExitInvalidInput
	}
	return apperrors.CodeOf(err).ExitCode()
}

// Message renders err for the user in locale. Errors without a domain code
// are printed as is.
func Message(err error, locale string) string {
	if err == nil {
		return ""
	}
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown {
		return err.Error()
	}
	return i18n.GetCatalog(normalizeLocale(locale)).Format(string(code), apperrors.MetadataOf(err))
}

// normalizeLocale turns POSIX locale names such as "pt_BR.UTF-8" into BCP 47
// tags.
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return i18n.BaseLocale
	}
	return strings.ReplaceAll(locale, "_", "-")
}
