package services

import (
	"time"

	"ai-receptionist/internal/domain/entities"
)

// DefaultContextWindow is the number of trailing conversational turns
// fed to the model for reply generation. Together with the persona
// system message that caps the prompt at eleven messages. Escalation
// checks and summaries always read the full transcript.
const DefaultContextWindow = 10

// TranscriptStore is the append-only turn log for exactly one call. It
// is owned by a single CallSession, which serializes access; the store
// itself holds no lock.
type TranscriptStore struct {
	turns      []entities.Turn
	windowSize int
}

func NewTranscriptStore(windowSize int) *TranscriptStore {
	if windowSize <= 0 {
		windowSize = DefaultContextWindow
	}
	return &TranscriptStore{windowSize: windowSize}
}

// Append records a turn with the current timestamp. Empty messages are
// permitted; callers decide what is worth logging.
func (t *TranscriptStore) Append(speaker entities.Speaker, message string) entities.Turn {
	turn := entities.Turn{
		Speaker:   speaker,
		Message:   message,
		Timestamp: time.Now(),
	}
	t.turns = append(t.turns, turn)
	return turn
}

// Turns returns a copy of the full transcript in conversational order.
func (t *TranscriptStore) Turns() []entities.Turn {
	out := make([]entities.Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// WindowedContext returns at most the last windowSize turns. Calls can
// run arbitrarily long; the trailing window keeps model cost and
// latency bounded regardless of call length.
func (t *TranscriptStore) WindowedContext() []entities.Turn {
	turns := t.turns
	if len(turns) > t.windowSize {
		turns = turns[len(turns)-t.windowSize:]
	}
	out := make([]entities.Turn, len(turns))
	copy(out, turns)
	return out
}

func (t *TranscriptStore) Len() int {
	return len(t.turns)
}
