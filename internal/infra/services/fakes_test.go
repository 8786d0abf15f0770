package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-receptionist/internal/domain/dto"
	"ai-receptionist/internal/domain/entities"
)

// fakeCompletionClient stands in for the OpenAI client. It records
// every request so tests can assert call counts and prompt contents.
type fakeCompletionClient struct {
	reply string
	err   error

	calls        int
	lastMessages []dto.ChatMessage
	lastOpts     dto.CompletionOptions
}

func (f *fakeCompletionClient) CreateCompletion(_ context.Context, messages []dto.ChatMessage, opts dto.CompletionOptions) (string, error) {
	f.calls++
	f.lastMessages = messages
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// memoryRecordStore is an in-memory RecordStore for session tests.
type memoryRecordStore struct {
	mu      sync.Mutex
	records map[string]entities.CallRecord
	saves   int
	saveErr error
}

func newMemoryRecordStore() *memoryRecordStore {
	return &memoryRecordStore{records: make(map[string]entities.CallRecord)}
}

func (m *memoryRecordStore) Save(_ context.Context, record entities.CallRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[record.CallSID] = record
	return nil
}

func (m *memoryRecordStore) FindByCallSID(_ context.Context, callSID string) (entities.CallRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[callSID]
	if !ok {
		return entities.CallRecord{}, errors.New("record not found")
	}
	return record, nil
}

func (m *memoryRecordStore) FindAll(_ context.Context) ([]entities.CallRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.CallRecord, 0, len(m.records))
	for _, record := range m.records {
		out = append(out, record)
	}
	return out, nil
}

// recordingObserver captures dashboard notifications.
type recordingObserver struct {
	mu    sync.Mutex
	turns []entities.Turn
}

func (o *recordingObserver) CallStarted(string, string, time.Time) {}

func (o *recordingObserver) TurnLogged(_ string, turn entities.Turn) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.turns = append(o.turns, turn)
}

func (o *recordingObserver) CallEnded(string) {}
