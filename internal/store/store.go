package store

import "sync"

// QuizState tracks where a user is in the quiz flow.
type QuizState string

const (
	QuizNotStarted QuizState = "not_started"
	// QuizAsking means the next question is queued but not yet shown;
	// answers arriving in this window are ignored.
	QuizAsking   QuizState = "asking"
	QuizAwaiting QuizState = "awaiting_answer"
)

// UserRecord holds everything the bot knows about one chat.
// Created lazily on first contact and mutated only through Store.Update.
type UserRecord struct {
	Medications []string  `json:"medications"`
	Symptoms    []string  `json:"symptoms"`
	QuizScore   int       `json:"quiz_score"`
	QuizIndex   int       `json:"quiz_index"`
	QuizState   QuizState `json:"quiz_state"`
	// QuizOrder maps session question positions to indexes in the
	// configured question list, so a shuffled session grades against
	// its own order.
	QuizOrder []int `json:"quiz_order"`
}

// Store is the user-record backend. Update runs fn under the store's
// lock, so each user's record mutates atomically with respect to that
// user's handler invocation.
type Store interface {
	Get(chatID int64) (UserRecord, error)
	Update(chatID int64, fn func(*UserRecord)) (UserRecord, error)
	Close() error
}

// MemoryStore keeps records in a map. Data is lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	users map[int64]*UserRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]*UserRecord)}
}

func (ms *MemoryStore) Get(chatID int64) (UserRecord, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return copyRecord(ms.getOrCreate(chatID)), nil
}

func (ms *MemoryStore) Update(chatID int64, fn func(*UserRecord)) (UserRecord, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	rec := ms.getOrCreate(chatID)
	fn(rec)
	return copyRecord(rec), nil
}

func (ms *MemoryStore) Close() error { return nil }

func (ms *MemoryStore) getOrCreate(chatID int64) *UserRecord {
	rec, ok := ms.users[chatID]
	if !ok {
		rec = &UserRecord{QuizState: QuizNotStarted}
		ms.users[chatID] = rec
	}
	return rec
}

func copyRecord(rec *UserRecord) UserRecord {
	out := *rec
	out.Medications = append([]string(nil), rec.Medications...)
	out.Symptoms = append([]string(nil), rec.Symptoms...)
	out.QuizOrder = append([]int(nil), rec.QuizOrder...)
	return out
}
