package ui

import (
	"time"

	"weathersearch/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerMsg reports the outcome of an external pager session
type pagerMsg struct {
	what    string
	content string
	err     error
}

// clearStatusMsg clears the status line once its timer fires
type clearStatusMsg struct {
	setAt time.Time
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
