// =============================================================================
// Daily Sales - Session Storage
// =============================================================================
//
// Durable storage holds two named values, written and read as a unit:
//   - "records" : the ordered sale records, as JSON
//   - "day"     : the calendar-day string the records belong to
//
// FILE FORMAT:
//   {
//     "day": "10/19/2026",
//     "records": [ { "id": "...", "productId": "P1", ... } ]
//   }
//
// The file is replaced atomically on every save, so a crash can never leave a
// new "records" value paired with an old "day" value.
//
// =============================================================================

package session

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/ginjaninja78/daily-sales/internal/sale"
	"github.com/ginjaninja78/daily-sales/pkg/utils"
)

var (
	// ErrNoState means nothing has been persisted yet.
	ErrNoState = errors.New("no persisted session state")

	// ErrCorruptState means persisted data exists but cannot be decoded.
	ErrCorruptState = errors.New("corrupt session state")
)

// Storage persists a session as one unit.
type Storage interface {
	// Load returns the persisted session, ErrNoState when there is none, or an
	// error wrapping ErrCorruptState when it cannot be decoded.
	Load() (Session, error)

	// Save overwrites any previously persisted session.
	Save(s Session) error
}

// storedState is the on-disk document.
type storedState struct {
	Day     string        `json:"day"`
	Records []sale.Record `json:"records"`
}

func encodeState(s Session) ([]byte, error) {
	records := s.Records
	if records == nil {
		records = []sale.Record{}
	}
	data, err := json.MarshalIndent(storedState{Day: s.Day, Records: records}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode session state")
	}
	return data, nil
}

func decodeState(data []byte) (Session, error) {
	var st storedState
	if err := json.Unmarshal(data, &st); err != nil {
		return Session{}, errors.Mark(errors.Wrap(err, "decode session state"), ErrCorruptState)
	}
	if st.Day == "" {
		return Session{}, errors.Wrap(ErrCorruptState, "missing day")
	}
	return Session{Day: st.Day, Records: st.Records}, nil
}

// =============================================================================
// FILE STORAGE
// =============================================================================

// FileStorage keeps the session in a single JSON file.
type FileStorage struct {
	path string
}

// NewFileStorage returns a storage backed by the file at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the state file location.
func (f *FileStorage) Path() string {
	return f.path
}

// Load implements Storage.
func (f *FileStorage) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNoState
		}
		return Session{}, errors.Wrapf(err, "read %s", f.path)
	}
	return decodeState(data)
}

// Save implements Storage.
func (f *FileStorage) Save(s Session) error {
	data, err := encodeState(s)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(f.path, data, 0644); err != nil {
		return errors.Wrap(err, "save session state")
	}
	return nil
}

// =============================================================================
// MEMORY STORAGE
// =============================================================================

// MemoryStorage keeps the encoded session in memory. It goes through the same
// codec as FileStorage so round trips behave identically.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte

	// SaveErr, when set, makes every Save fail with it.
	SaveErr error

	// Saves counts successful saves.
	Saves int
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// SetRaw replaces the stored bytes, e.g. to simulate corrupt data.
func (m *MemoryStorage) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// Load implements Storage.
func (m *MemoryStorage) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return Session{}, ErrNoState
	}
	return decodeState(m.data)
}

// Save implements Storage.
func (m *MemoryStorage) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := encodeState(s)
	if err != nil {
		return err
	}
	m.data = data
	m.Saves++
	return nil
}
