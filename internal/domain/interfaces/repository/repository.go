package repository

import (
	"context"

	"ai-receptionist/internal/domain/entities"
)

// RecordStore persists finalized call records keyed by call SID with
// overwrite-on-duplicate semantics.
type RecordStore interface {
	Save(ctx context.Context, record entities.CallRecord) error
	FindByCallSID(ctx context.Context, callSID string) (entities.CallRecord, error)
	FindAll(ctx context.Context) ([]entities.CallRecord, error)
}
