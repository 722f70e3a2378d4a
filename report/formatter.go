package report

import (
	"fmt"
	"path"
	"strings"
)

// Style selects one of the built-in report renderings.
type Style string

// Built-in rendering styles.
const (
	StyleSimple   Style = "simple"
	StyleSummary  Style = "summary"
	StyleDetailed Style = "detailed"
)

// FormatFunc is a caller-supplied formatter that fully replaces the
// built-in styles and title resolution. Its return value is delivered
// verbatim, subject only to the transport length clamp.
type FormatFunc func(snap *Snapshot) string

// TitleFunc produces a report title from the overall outcome.
type TitleFunc func(passed bool) string

// DefaultTestFormat is the per-test line template used when none is
// configured. Templates may reference {GROUP}, {TEST}, {BROWSER},
// {FILENAME} and {TIME}; every occurrence of each token is substituted.
const DefaultTestFormat = "{GROUP} › {TEST} ({TIME})"

// defaultTitleLabel is the product label used for synthesized titles.
const defaultTitleLabel = "Test Run Report"

// groupSeparator joins title-path segments in the {GROUP} value.
const groupSeparator = " › "

// errorIndent is the continuation indent for wrapped error lines.
const errorIndent = "    "

// maxErrorLines caps how many lines of an error description are shown
// for a failed test.
const maxErrorLines = 3

// Renderer renders a Snapshot into a display string according to a style,
// an optional title and a per-test line template. The zero value renders
// the summary style with a synthesized title and DefaultTestFormat.
type Renderer struct {
	Style Style

	// Title, when non-empty, is used verbatim regardless of the outcome.
	Title string

	// TitleFunc is consulted when Title is empty.
	TitleFunc TitleFunc

	// TestFormat is the per-test line template used by the detailed style.
	TestFormat string
}

// Render produces the report for snap. It never fails: missing values
// render as empty strings or "N/A".
func (r Renderer) Render(snap *Snapshot) string {
	switch r.Style {
	case StyleSimple:
		return r.renderSimple(snap)
	case StyleDetailed:
		return r.renderDetailed(snap)
	default:
		return r.renderSummary(snap)
	}
}

func (r Renderer) renderSimple(snap *Snapshot) string {
	var sb strings.Builder
	sb.WriteString(r.title(snap.Status.Passed()))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Status: %s", strings.ToUpper(string(snap.Status)))
	return sb.String()
}

func (r Renderer) renderSummary(snap *Snapshot) string {
	var sb strings.Builder
	r.writeSummary(&sb, snap)
	return sb.String()
}

func (r Renderer) renderDetailed(snap *Snapshot) string {
	var sb strings.Builder
	r.writeSummary(&sb, snap)

	b := snap.Buckets()
	r.writeSection(&sb, "Failed", b.Failed, r.failedLine)
	r.writeSection(&sb, "Timed Out", b.TimedOut, r.timedLine)
	r.writeSection(&sb, "Skipped", b.Skipped, r.skippedLine)
	r.writeSection(&sb, "Passed", b.Passed, r.timedLine)

	return sb.String()
}

// writeSummary emits the shared header and count block. The block ends
// without a trailing newline so detailed sections can attach cleanly.
func (r Renderer) writeSummary(sb *strings.Builder, snap *Snapshot) {
	b := snap.Buckets()

	sb.WriteString(r.title(snap.Status.Passed()))
	sb.WriteString("\n\n")
	fmt.Fprintf(sb, "Status: %s\n", strings.ToUpper(string(snap.Status)))
	fmt.Fprintf(sb, "Duration: %.2fs\n", snap.Duration.Seconds())
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Total: %d\n", len(snap.Tests))
	fmt.Fprintf(sb, "Passed: %d\n", len(b.Passed))
	fmt.Fprintf(sb, "Failed: %d\n", len(b.Failed))
	fmt.Fprintf(sb, "Skipped: %d", len(b.Skipped))
	if n := len(b.TimedOut); n > 0 {
		fmt.Fprintf(sb, "\nTimed Out: %d", n)
	}
}

// writeSection emits one outcome bucket. Empty buckets produce no output.
func (r Renderer) writeSection(sb *strings.Builder, name string, tests []*Test, line func(*Test) string) {
	if len(tests) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n\n%s (%d):", name, len(tests))
	for _, t := range tests {
		sb.WriteString("\n")
		sb.WriteString(line(t))
	}
}

// failedLine renders a failed test with up to maxErrorLines of its error.
func (r Renderer) failedLine(t *Test) string {
	line := r.testLine(t, attemptDuration(t.FirstAttempt()))
	a := t.FirstAttempt()
	if a == nil || a.Error == "" {
		return line
	}
	return line + "\n" + formatError(a.Error)
}

// timedLine renders a test line with its first-attempt duration.
func (r Renderer) timedLine(t *Test) string {
	return r.testLine(t, attemptDuration(t.FirstAttempt()))
}

// skippedLine renders a test line with a literal "N/A" duration; skipped
// tests have no meaningful elapsed time.
func (r Renderer) skippedLine(t *Test) string {
	return r.testLine(t, "N/A")
}

// title resolves the report title: a literal title wins, then TitleFunc,
// then a synthesized glyph + label default.
func (r Renderer) title(passed bool) string {
	if r.Title != "" {
		return r.Title
	}
	if r.TitleFunc != nil {
		return r.TitleFunc(passed)
	}
	if passed {
		return "✅ " + defaultTitleLabel
	}
	return "❌ " + defaultTitleLabel
}

// testLine expands the per-test template for t with the supplied TIME
// value. Tokens outside the known set are left untouched.
func (r Renderer) testLine(t *Test, timeValue string) string {
	format := r.TestFormat
	if format == "" {
		format = DefaultTestFormat
	}
	return strings.NewReplacer(
		"{GROUP}", groupFor(t),
		"{TEST}", testName(t),
		"{BROWSER}", t.Browser,
		"{FILENAME}", fileName(t.File),
		"{TIME}", timeValue,
	).Replace(format)
}

// groupFor joins the title-path segments that describe the test's group:
// everything except the browser label, the file-derived segment, and the
// final segment (the test name itself).
func groupFor(t *Test) string {
	if len(t.TitlePath) == 0 {
		return ""
	}
	base := fileName(t.File)
	var parts []string
	for _, seg := range t.TitlePath[:len(t.TitlePath)-1] {
		if seg == "" || seg == t.Browser || seg == base {
			continue
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, groupSeparator)
}

// testName returns the final title-path segment, or "" for an empty path.
func testName(t *Test) string {
	if len(t.TitlePath) == 0 {
		return ""
	}
	return t.TitlePath[len(t.TitlePath)-1]
}

// fileName returns the last path component of a source file identifier.
func fileName(file string) string {
	if file == "" {
		return ""
	}
	return path.Base(file)
}

// FormatDuration renders a millisecond duration as seconds with two
// decimals, e.g. 1234 → "1.23s". Negative durations are unknown and
// render as "N/A".
func FormatDuration(ms int64) string {
	if ms < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}

func attemptDuration(a *Attempt) string {
	if a == nil {
		return "N/A"
	}
	return FormatDuration(a.DurationMs)
}

// formatError renders at most the first maxErrorLines lines of msg under
// an "Error:" label, continuation lines indented.
func formatError(msg string) string {
	lines := strings.Split(msg, "\n")
	if len(lines) > maxErrorLines {
		lines = lines[:maxErrorLines]
	}
	return "Error: " + strings.Join(lines, "\n"+errorIndent)
}
