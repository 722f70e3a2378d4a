package telereport

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/go-telereport/report"
)

// MockSender implements Sender for testing.
type MockSender struct {
	SendMessageFn func(ctx context.Context, text string) error
	Sent          []string
}

func (m *MockSender) SendMessage(ctx context.Context, text string) error {
	m.Sent = append(m.Sent, text)
	if m.SendMessageFn != nil {
		return m.SendMessageFn(ctx, text)
	}
	return nil
}

// MockSuite implements Suite for testing.
type MockSuite struct {
	Tests []*report.Test
}

func (m *MockSuite) AllTests() []*report.Test {
	return m.Tests
}

// MockClock returns preset times in sequence, repeating the last one.
type MockClock struct {
	Times []time.Time
	calls int
}

func (m *MockClock) Now() time.Time {
	i := m.calls
	if i >= len(m.Times) {
		i = len(m.Times) - 1
	}
	m.calls++
	return m.Times[i]
}

func passedSuite() *MockSuite {
	return &MockSuite{Tests: []*report.Test{
		{
			TitlePath: []string{"chromium", "login.spec.ts", "Auth", "logs in"},
			Browser:   "chromium",
			File:      "login.spec.ts",
			Attempts:  []report.Attempt{{Outcome: report.OutcomePassed, DurationMs: 1234}},
		},
	}}
}

func newTestReporter(t *testing.T, cfg Config, sender Sender) *Reporter {
	t.Helper()

	start := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	clk := &MockClock{Times: []time.Time{start, start.Add(90 * time.Second)}}

	r, err := NewWithDeps(cfg, sender, clk)
	require.NoError(t, err)
	return r
}

func TestNew_MissingCredentials(t *testing.T) {
	t.Parallel()

	_, err := New(Config{ChatID: "42"})
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = New(Config{Token: "123:abc"})
	assert.ErrorIs(t, err, ErrMissingChatID)
}

func TestNew_ValidConfig(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Token: "123:abc", ChatID: "42"})

	require.NoError(t, err)
	assert.NotNil(t, r)
	assert.Equal(t, report.StyleSummary, r.cfg.Style)
	assert.Equal(t, SendAlways, r.cfg.SendPolicy)
}

func TestReporter_OnRunEnd_DeliversSummary(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	r := newTestReporter(t, Config{Token: "123:abc", ChatID: "42"}, sender)

	r.OnRunBegin(passedSuite())
	r.OnRunEnd(context.Background(), RunResult{Status: report.StatusPassed})

	require.Len(t, sender.Sent, 1)
	assert.Contains(t, sender.Sent[0], "Status: PASSED")
	assert.Contains(t, sender.Sent[0], "Total: 1")
}

func TestReporter_OnRunEnd_DurationFromClock(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	r := newTestReporter(t, Config{Token: "123:abc", ChatID: "42"}, sender)

	r.OnRunBegin(passedSuite())
	r.OnRunEnd(context.Background(), RunResult{Status: report.StatusPassed})

	require.Len(t, sender.Sent, 1)
	assert.Contains(t, sender.Sent[0], "Duration: 90.00s")
}

func TestReporter_OnRunEnd_WithoutBeginSkipsDelivery(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	sender := &MockSender{}
	r := newTestReporter(t, Config{
		Token:  "123:abc",
		ChatID: "42",
		Logger: zerolog.New(&logBuf),
	}, sender)

	r.OnRunEnd(context.Background(), RunResult{Status: report.StatusFailed})

	assert.Empty(t, sender.Sent)
	assert.Contains(t, logBuf.String(), "without run begin")
}

func TestReporter_OnRunEnd_PolicySuppressesDelivery(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	r := newTestReporter(t, Config{
		Token:      "123:abc",
		ChatID:     "42",
		SendPolicy: SendOnFailure,
	}, sender)

	r.OnRunBegin(passedSuite())
	r.OnRunEnd(context.Background(), RunResult{Status: report.StatusPassed})

	assert.Empty(t, sender.Sent)
}

func TestReporter_OnRunEnd_PolicyPermitsDelivery(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	r := newTestReporter(t, Config{
		Token:      "123:abc",
		ChatID:     "42",
		SendPolicy: SendOnFailure,
	}, sender)

	r.OnRunBegin(passedSuite())
	r.OnRunEnd(context.Background(), RunResult{Status: report.StatusTimedOut})

	require.Len(t, sender.Sent, 1)
	assert.Contains(t, sender.Sent[0], "Status: TIMEDOUT")
}

func TestReporter_OnRunEnd_CustomFormatterOverridesEverything(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	r := newTestReporter(t, Config{
		Token:  "123:abc",
		ChatID: "42",
		Style:  report.StyleDetailed,
		Title:  "ignored",
		Format: func(snap *report.Snapshot) string {
			return "custom: " + string(snap.Status)
		},
	}, sender)

	r.OnRunBegin(passedSuite())
	r.OnRunEnd(context.Background(), RunResult{Status: report.StatusFailed})

	require.Len(t, sender.Sent, 1)
	assert.Equal(t, "custom: failed", sender.Sent[0])
}

func TestReporter_OnRunEnd_DeliveryFailureIsSwallowedAndLogged(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	sender := &MockSender{
		SendMessageFn: func(_ context.Context, _ string) error {
			return errors.New("telegram is down")
		},
	}
	r := newTestReporter(t, Config{
		Token:  "123:abc",
		ChatID: "42",
		Logger: zerolog.New(&logBuf),
	}, sender)

	r.OnRunBegin(passedSuite())

	assert.NotPanics(t, func() {
		r.OnRunEnd(context.Background(), RunResult{Status: report.StatusPassed})
	})
	assert.Contains(t, logBuf.String(), "report delivery failed")
	assert.Contains(t, logBuf.String(), "telegram is down")
}

func TestReporter_OnRunEnd_ConfiguredStyleIsUsed(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	r := newTestReporter(t, Config{
		Token:  "123:abc",
		ChatID: "42",
		Style:  report.StyleSimple,
	}, sender)

	r.OnRunBegin(passedSuite())
	r.OnRunEnd(context.Background(), RunResult{Status: report.StatusPassed})

	require.Len(t, sender.Sent, 1)
	assert.Equal(t, "✅ Test Run Report\n\nStatus: PASSED", sender.Sent[0])
}

func TestReporter_OnRunBegin_AssignsRunID(t *testing.T) {
	t.Parallel()

	r := newTestReporter(t, Config{Token: "123:abc", ChatID: "42"}, &MockSender{})

	r.OnRunBegin(passedSuite())

	assert.NotEmpty(t, r.runID)
}
