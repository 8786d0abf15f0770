package Iservices

import (
	"context"

	"ai-receptionist/internal/domain/entities"
)

// IEscalationService decides whether a call should be handed to a human.
// The transcript passed in already includes the caller's latest
// utterance. Classifier failures must resolve to false (keep the bot on
// the call), never to an error.
type IEscalationService interface {
	ShouldEscalate(ctx context.Context, transcript []entities.Turn) bool
}
