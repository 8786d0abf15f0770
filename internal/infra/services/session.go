package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ai-receptionist/internal/domain/entities"
	"ai-receptionist/internal/domain/interfaces/repository"
	Iservices "ai-receptionist/internal/domain/interfaces/services"
	"ai-receptionist/internal/infra/logger"
)

var (
	// ErrSessionNotActive is returned when a turn arrives for a session
	// that has already been escalated or ended.
	ErrSessionNotActive = errors.New("call session is not active")

	// ErrSessionEnded is returned when Finalize is called on a session
	// that was already finalized. Storage-level re-saves are idempotent,
	// but finalizing twice is a caller error and is surfaced as such.
	ErrSessionEnded = errors.New("call session already finalized")
)

// transferNotice is the System turn logged when a call is escalated.
const transferNotice = "Transferred to human"

// TurnResult is the session's answer to one caller utterance: either
// reply text to speak and keep listening, or a transfer directive.
type TurnResult struct {
	Transfer bool
	Text     string
}

// CallSession owns one call's transcript and drives each turn through
// the escalation classifier and the responder. One webhook request is
// in flight per call at a time, but the session still guards its state
// so a straggling retry cannot corrupt the transcript.
type CallSession struct {
	CallSID    string
	FromNumber string
	StartTime  time.Time

	mu         sync.Mutex
	status     entities.CallStatus
	transcript *TranscriptStore
	escalation Iservices.IEscalationService
	responder  Iservices.IResponderService
	observer   Iservices.ICallObserver
	logger     *logger.Logger
}

func NewCallSession(callSID, fromNumber string, escalation Iservices.IEscalationService, responder Iservices.IResponderService, observer Iservices.ICallObserver, log *logger.Logger) *CallSession {
	return &CallSession{
		CallSID:    callSID,
		FromNumber: fromNumber,
		StartTime:  time.Now(),
		status:     entities.StatusActive,
		transcript: NewTranscriptStore(DefaultContextWindow),
		escalation: escalation,
		responder:  responder,
		observer:   observer,
		logger:     log,
	}
}

// Status returns the session's current lifecycle state.
func (s *CallSession) Status() entities.CallStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Transcript returns a copy of the full turn log so far.
func (s *CallSession) Transcript() []entities.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Turns()
}

// HandleUtterance processes one caller utterance: append it, classify
// the full transcript, then either mark the call escalated or generate
// and append a reply. The utterance is durably logged on both branches;
// on the escalation branch no reply is generated for it.
func (s *CallSession) HandleUtterance(ctx context.Context, text string) (TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != entities.StatusActive {
		return TurnResult{}, fmt.Errorf("call %s: %w", s.CallSID, ErrSessionNotActive)
	}

	s.appendTurn(entities.SpeakerCaller, text)

	// Escalation evaluates the entire transcript, not the trailing
	// window: urgency signals can appear early in a call.
	if s.escalation.ShouldEscalate(ctx, s.transcript.Turns()) {
		s.appendTurn(entities.SpeakerSystem, transferNotice)
		s.status = entities.StatusEscalated
		return TurnResult{Transfer: true}, nil
	}

	reply := s.responder.GenerateReply(ctx, s.transcript.WindowedContext())
	s.appendTurn(entities.SpeakerAgent, reply)
	return TurnResult{Text: reply}, nil
}

// Finalize summarizes the call, persists the record, and marks the
// session ended. A failed store write is logged and swallowed: the call
// proceeds and the record may be lost, which is within the durability
// promise. Callable from Active or Escalated; calling it again returns
// ErrSessionEnded.
func (s *CallSession) Finalize(ctx context.Context, store repository.RecordStore) (entities.CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == entities.StatusEnded {
		return entities.CallRecord{}, fmt.Errorf("call %s: %w", s.CallSID, ErrSessionEnded)
	}

	turns := s.transcript.Turns()
	summary := s.responder.GenerateSummary(ctx, turns)

	serialized, err := json.Marshal(turns)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to serialize transcript for call %s: %v", s.CallSID, err))
		serialized = []byte("[]")
	}

	record := entities.CallRecord{
		CallSID:    s.CallSID,
		FromNumber: s.FromNumber,
		StartTime:  s.StartTime,
		EndTime:    time.Now(),
		Transcript: string(serialized),
		Summary:    summary,
	}

	if err := store.Save(ctx, record); err != nil {
		s.logger.Error(fmt.Sprintf("Error saving call log for %s: %v", s.CallSID, err))
	}

	s.status = entities.StatusEnded
	return record, nil
}

func (s *CallSession) appendTurn(speaker entities.Speaker, message string) {
	turn := s.transcript.Append(speaker, message)
	if s.observer != nil {
		s.observer.TurnLogged(s.CallSID, turn)
	}
}
