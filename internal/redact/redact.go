// Package redact removes credentials from diagnostics before they reach
// logs or wrapped errors. Telegram embeds the bot token in request URLs,
// so transport errors would otherwise leak it.
package redact

import (
	"errors"
	"strings"
)

// Value is the replacement string for redacted credentials.
const Value = "[REDACTED]"

// String replaces every occurrence of secret in s with Value.
// An empty secret leaves s unchanged.
func String(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, Value)
}

// Error returns an error whose message has secret redacted. When nothing
// needs redacting the original error is returned unchanged; otherwise the
// chain is flattened, since wrapped errors could re-expose the secret.
func Error(err error, secret string) error {
	if err == nil {
		return nil
	}
	redacted := String(err.Error(), secret)
	if redacted == err.Error() {
		return err
	}
	return errors.New(redacted)
}
