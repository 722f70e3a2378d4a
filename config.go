package telereport

import (
	"github.com/rs/zerolog"

	"github.com/mrz1836/go-telereport/report"
)

// SendPolicy controls whether a finished report is delivered for a given
// run outcome.
type SendPolicy string

// Send policies.
const (
	// SendAlways delivers the report regardless of outcome. Unrecognized
	// policy values behave like SendAlways.
	SendAlways SendPolicy = "always"

	// SendOnFailure delivers only when the run did not pass.
	SendOnFailure SendPolicy = "failure"

	// SendOnSuccess delivers only when the run passed.
	SendOnSuccess SendPolicy = "success"
)

// Config holds the reporter's construction-time options. It is validated
// once in New and read-only afterward.
type Config struct {
	// Token is the Telegram bot token used for delivery. Required.
	Token string

	// ChatID is the destination chat identifier. Required.
	ChatID string

	// Style selects the built-in report rendering.
	// Defaults to report.StyleSummary.
	Style report.Style

	// SendPolicy gates delivery on the run outcome. Defaults to SendAlways.
	SendPolicy SendPolicy

	// Format, when set, fully overrides the built-in styles and title
	// resolution. Its return value is delivered verbatim, subject only to
	// the transport length clamp.
	Format report.FormatFunc

	// Title is a literal report title, used regardless of outcome.
	Title string

	// TitleFunc derives the title from the overall outcome. Consulted only
	// when Title is empty.
	TitleFunc report.TitleFunc

	// TestFormat is the per-test line template for the detailed style.
	// Defaults to report.DefaultTestFormat.
	TestFormat string

	// Logger receives diagnostics. The zero value discards everything.
	Logger zerolog.Logger
}

// Validate checks that the required credentials are present. It returns
// the first validation failure found; all other options are optional.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if c.ChatID == "" {
		return ErrMissingChatID
	}
	return nil
}

// applyDefaults fills unset options with their defaults.
func (c *Config) applyDefaults() {
	if c.Style == "" {
		c.Style = report.StyleSummary
	}
	if c.SendPolicy == "" {
		c.SendPolicy = SendAlways
	}
	if c.TestFormat == "" {
		c.TestFormat = report.DefaultTestFormat
	}
}
