package repository

import (
	"context"
	"database/sql"
	"time"

	"ai-receptionist/internal/domain/entities"

	_ "modernc.org/sqlite"
)

// SQLiteRecordStore is the default local record store used when no
// MongoDB URI is configured.
type SQLiteRecordStore struct {
	db *sql.DB
}

func OpenSQLiteRecordStore(path string) (*SQLiteRecordStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &SQLiteRecordStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteRecordStore) Close() error { return s.db.Close() }

func (s *SQLiteRecordStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS call_logs (
		call_sid TEXT PRIMARY KEY,
		from_number TEXT,
		start_time TEXT,
		end_time TEXT,
		conversation TEXT,
		summary TEXT
	);`)
	return err
}

// Save inserts or replaces the record for the call SID.
func (s *SQLiteRecordStore) Save(ctx context.Context, record entities.CallRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO call_logs
		(call_sid, from_number, start_time, end_time, conversation, summary)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(call_sid) DO UPDATE SET
			from_number = excluded.from_number,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			conversation = excluded.conversation,
			summary = excluded.summary`,
		record.CallSID,
		record.FromNumber,
		record.StartTime.UTC().Format(time.RFC3339Nano),
		record.EndTime.UTC().Format(time.RFC3339Nano),
		record.Transcript,
		record.Summary,
	)
	return err
}

func (s *SQLiteRecordStore) FindByCallSID(ctx context.Context, callSID string) (entities.CallRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT call_sid, from_number, start_time, end_time, conversation, summary
		FROM call_logs WHERE call_sid = ?`, callSID)
	return scanRecord(row)
}

func (s *SQLiteRecordStore) FindAll(ctx context.Context) ([]entities.CallRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT call_sid, from_number, start_time, end_time, conversation, summary
		FROM call_logs ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.CallRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (entities.CallRecord, error) {
	var record entities.CallRecord
	var startTime, endTime string
	if err := row.Scan(&record.CallSID, &record.FromNumber, &startTime, &endTime, &record.Transcript, &record.Summary); err != nil {
		return entities.CallRecord{}, err
	}
	var err error
	if record.StartTime, err = time.Parse(time.RFC3339Nano, startTime); err != nil {
		return entities.CallRecord{}, err
	}
	if record.EndTime, err = time.Parse(time.RFC3339Nano, endTime); err != nil {
		return entities.CallRecord{}, err
	}
	return record, nil
}
