package entities

import "time"

// Speaker identifies who produced a turn in a call transcript.
type Speaker string

const (
	SpeakerCaller Speaker = "Caller"
	SpeakerAgent  Speaker = "Agent"
	SpeakerSystem Speaker = "System"
)

// CallStatus tracks the lifecycle of an active call session.
type CallStatus string

const (
	StatusActive    CallStatus = "active"
	StatusEscalated CallStatus = "escalated"
	StatusEnded     CallStatus = "ended"
)

// Turn is a single utterance within a call. Turns are immutable once
// appended; their insertion order is the conversational order.
type Turn struct {
	Speaker   Speaker   `json:"speaker" bson:"speaker"`
	Message   string    `json:"message" bson:"message"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// CallRecord is the durable artifact persisted once per call when the
// session is finalized. Re-saving the same CallSID overwrites the prior
// record.
type CallRecord struct {
	CallSID    string    `json:"call_sid" bson:"call_sid"`
	FromNumber string    `json:"from_number" bson:"from_number"`
	StartTime  time.Time `json:"start_time" bson:"start_time"`
	EndTime    time.Time `json:"end_time" bson:"end_time"`
	Transcript string    `json:"transcript" bson:"transcript"`
	Summary    string    `json:"summary" bson:"summary"`
}
