package Iservices

import (
	"time"

	"ai-receptionist/internal/domain/entities"
)

// ICallObserver receives fire-and-forget notifications about live call
// activity (the dashboard hub implements this). Implementations must
// never block the calling turn.
type ICallObserver interface {
	CallStarted(callSID, fromNumber string, at time.Time)
	TurnLogged(callSID string, turn entities.Turn)
	CallEnded(callSID string)
}
