package telereport

import "github.com/mrz1836/go-telereport/report"

// shouldSend decides whether a report is delivered for the given run
// outcome. The decision is pure: it depends only on the policy and the
// status. Unrecognized policies fail open and send.
func shouldSend(policy SendPolicy, status report.Status) bool {
	switch policy {
	case SendOnFailure:
		return !status.Passed()
	case SendOnSuccess:
		return status.Passed()
	default:
		return true
	}
}
