package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	chat_id     INTEGER PRIMARY KEY,
	medications TEXT NOT NULL DEFAULT '[]',
	symptoms    TEXT NOT NULL DEFAULT '[]',
	quiz_score  INTEGER NOT NULL DEFAULT 0,
	quiz_index  INTEGER NOT NULL DEFAULT 0,
	quiz_state  TEXT NOT NULL DEFAULT 'not_started',
	quiz_order  TEXT NOT NULL DEFAULT '[]'
);
`

// SQLiteStore persists user records so they survive a restart.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(chatID int64) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(chatID)
}

func (s *SQLiteStore) Update(chatID int64, fn func(*UserRecord)) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(chatID)
	if err != nil {
		return UserRecord{}, err
	}
	fn(&rec)
	if err := s.save(chatID, rec); err != nil {
		return UserRecord{}, err
	}
	return rec, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) load(chatID int64) (UserRecord, error) {
	rec := UserRecord{QuizState: QuizNotStarted}

	var meds, symptoms, order string
	row := s.db.QueryRow(
		`SELECT medications, symptoms, quiz_score, quiz_index, quiz_state, quiz_order
		 FROM users WHERE chat_id = ?`, chatID)
	err := row.Scan(&meds, &symptoms, &rec.QuizScore, &rec.QuizIndex, &rec.QuizState, &order)
	if err == sql.ErrNoRows {
		return rec, nil
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("load user %d: %w", chatID, err)
	}

	if err := json.Unmarshal([]byte(meds), &rec.Medications); err != nil {
		return UserRecord{}, fmt.Errorf("decode medications for %d: %w", chatID, err)
	}
	if err := json.Unmarshal([]byte(symptoms), &rec.Symptoms); err != nil {
		return UserRecord{}, fmt.Errorf("decode symptoms for %d: %w", chatID, err)
	}
	if err := json.Unmarshal([]byte(order), &rec.QuizOrder); err != nil {
		return UserRecord{}, fmt.Errorf("decode quiz order for %d: %w", chatID, err)
	}
	return rec, nil
}

func (s *SQLiteStore) save(chatID int64, rec UserRecord) error {
	meds, err := json.Marshal(rec.Medications)
	if err != nil {
		return err
	}
	symptoms, err := json.Marshal(rec.Symptoms)
	if err != nil {
		return err
	}
	order, err := json.Marshal(rec.QuizOrder)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO users (chat_id, medications, symptoms, quiz_score, quiz_index, quiz_state, quiz_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(chat_id) DO UPDATE SET
			medications = excluded.medications,
			symptoms    = excluded.symptoms,
			quiz_score  = excluded.quiz_score,
			quiz_index  = excluded.quiz_index,
			quiz_state  = excluded.quiz_state,
			quiz_order  = excluded.quiz_order`,
		chatID, string(meds), string(symptoms), rec.QuizScore, rec.QuizIndex, string(rec.QuizState), string(order))
	if err != nil {
		return fmt.Errorf("save user %d: %w", chatID, err)
	}
	return nil
}
