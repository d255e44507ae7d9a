// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// EventKind discriminates ProgressEvent values.
type EventKind int

const (
	// EventStatus carries a human-readable status line in Text.
	EventStatus EventKind = iota + 1

	// EventPercent carries a completion percentage in Percent.
	EventPercent
)

// PercentDone is the Percent sentinel meaning every file has been processed.
// Observers display it as 100 and mark the run complete.
const PercentDone = -1

// ProgressEvent is one notification published by the batch runner.
type ProgressEvent struct {
	Kind    EventKind
	Text    string
	Percent int
}

// StatusEvent returns an EventStatus event.
func StatusEvent(text string) ProgressEvent {
	return ProgressEvent{Kind: EventStatus, Text: text}
}

// PercentEvent returns an EventPercent event.
func PercentEvent(p int) ProgressEvent {
	return ProgressEvent{Kind: EventPercent, Percent: p}
}

// Completed reports whether the event is the all-files-complete sentinel.
func (e ProgressEvent) Completed() bool {
	return e.Kind == EventPercent && e.Percent == PercentDone
}

// DisplayPercent maps the sentinel to 100 and returns other percentages as-is.
func (e ProgressEvent) DisplayPercent() int {
	if e.Completed() {
		return 100
	}
	return e.Percent
}

func (e ProgressEvent) String() string {
	switch e.Kind {
	case EventStatus:
		return "status: " + e.Text
	case EventPercent:
		return fmt.Sprintf("percent: %d", e.Percent)
	default:
		return "unknown event"
	}
}
