// Package telegram delivers report messages through the Telegram Bot API.
//
// The client makes exactly one sendMessage attempt per call: no retries,
// no batching, no rate-limit awareness. Messages longer than the API
// ceiling are clamped before sending.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/go-telereport/internal/redact"
)

// DefaultBaseURL is the production Telegram Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// MaxMessageLength is the sendMessage text ceiling, in characters.
const MaxMessageLength = 4096

// truncationSuffix is appended when a message is clamped. It is 50
// characters long, so clamped payloads land exactly on MaxMessageLength.
const truncationSuffix = "...\n\n[Message truncated to fit the Telegram limit]"

// defaultTimeout bounds the single delivery attempt.
const defaultTimeout = 30 * time.Second

// ErrSendFailed indicates the Telegram API rejected a sendMessage call.
var ErrSendFailed = errors.New("telegram send failed")

// Doer abstracts the HTTP client so tests can stub transport behavior.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// sendMessageRequest is the JSON body for the sendMessage method.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Client performs one-shot, best-effort message delivery to a single chat.
type Client struct {
	token      string
	chatID     string
	baseURL    string
	httpClient Doer
	logger     zerolog.Logger
}

// NewClient creates a client for the production Telegram API.
func NewClient(token, chatID string, logger zerolog.Logger) *Client {
	return NewClientWithDeps(token, chatID, logger, &http.Client{Timeout: defaultTimeout}, DefaultBaseURL)
}

// NewClientWithDeps creates a client with a custom HTTP doer and base URL.
// This is used for testing.
func NewClientWithDeps(token, chatID string, logger zerolog.Logger, httpClient Doer, baseURL string) *Client {
	return &Client{
		token:      token,
		chatID:     chatID,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// SendMessage posts text to the configured chat with HTML parse mode.
// Text longer than MaxMessageLength is clamped first. Failures are logged
// with their diagnostics and returned; the bot token never appears in
// either.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	text = Truncate(text)

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sendMessage body: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create sendMessage request: %w", redact.Error(err, c.token))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = redact.Error(err, c.token)
		c.logger.Error().
			Err(err).
			Str("chat_id", c.chatID).
			Msg("telegram request failed")
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Response body is read purely for diagnostics.
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("chat_id", c.chatID).
			Str("response", redact.String(string(respBody), c.token)).
			Msg("telegram rejected message")
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, redact.String(string(respBody), c.token))
	}

	c.logger.Debug().
		Str("chat_id", c.chatID).
		Int("text_len", len([]rune(text))).
		Msg("message sent")
	return nil
}

// Truncate clamps text to MaxMessageLength characters. Oversized text is
// cut and truncationSuffix appended so the result is exactly
// MaxMessageLength characters long. The clamp counts runes, not bytes, so
// multi-byte glyphs are never split.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxMessageLength {
		return text
	}
	keep := MaxMessageLength - len([]rune(truncationSuffix))
	return string(runes[:keep]) + truncationSuffix
}
