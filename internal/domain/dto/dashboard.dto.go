package dto

import "time"

// Dashboard events pushed over the WebSocket hub. Delivery is
// fire-and-forget; an undelivered event never affects call handling.

const (
	EventCallStarted = "call_started"
	EventCallUpdated = "call_updated"
	EventCallEnded   = "call_ended"
)

type CallStartedEvent struct {
	Type       string    `json:"type"`
	CallSID    string    `json:"call_sid"`
	FromNumber string    `json:"from_number"`
	Timestamp  time.Time `json:"timestamp"`
}

type CallUpdatedEvent struct {
	Type      string    `json:"type"`
	CallSID   string    `json:"call_sid"`
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type CallEndedEvent struct {
	Type    string `json:"type"`
	CallSID string `json:"call_sid"`
}
