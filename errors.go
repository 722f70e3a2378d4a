package telereport

import "errors"

// Sentinel errors for construction-time validation failures. These are the
// only errors this package lets escape to its caller; everything after
// construction is logged and swallowed. All can be checked with errors.Is().
var (
	// ErrMissingToken indicates the Telegram bot token was empty.
	ErrMissingToken = errors.New("telegram bot token is required")

	// ErrMissingChatID indicates the destination chat id was empty.
	ErrMissingChatID = errors.New("telegram chat id is required")
)
