// =============================================================================
// Daily Sales - Session Store
// =============================================================================
//
// The store owns the sales of "today". It is the single holder of the current
// Session value; every mutation produces a new value instead of changing the
// old one in place.
//
// LIFECYCLE:
//   1. Initialize restores the persisted session.
//   2. If nothing usable was persisted, or the persisted day is not today,
//      the session starts empty for today.
//   3. Append adds one record and persists the whole session before returning.
//
// There is no edit or delete: the records of a day only disappear when the
// day changes.
//
// =============================================================================

package session

import (
	"github.com/cockroachdb/errors"

	"github.com/ginjaninja78/daily-sales/internal/sale"
	"github.com/ginjaninja78/daily-sales/pkg/logger"
)

var (
	// ErrNotInitialized is returned by Append before Initialize ran.
	ErrNotInitialized = errors.New("session store not initialized")

	// ErrDayMismatch is returned when a record belongs to another day.
	ErrDayMismatch = errors.New("record day does not match session day")
)

// =============================================================================
// SESSION VALUE
// =============================================================================

// Session is the sales of one calendar day in registration order.
// Every record has Date == Day.
type Session struct {
	Day     string
	Records []sale.Record
}

// Len returns the number of recorded sales.
func (s Session) Len() int {
	return len(s.Records)
}

// Empty reports whether nothing was sold yet.
func (s Session) Empty() bool {
	return len(s.Records) == 0
}

// RecordsFor returns the records paid with method, in registration order.
func (s Session) RecordsFor(method sale.PaymentMethod) []sale.Record {
	var out []sale.Record
	for _, rec := range s.Records {
		if rec.PaymentMethod == method {
			out = append(out, rec)
		}
	}
	return out
}

// withRecord returns a copy of s with rec appended. The backing array is never
// shared with s.
func (s Session) withRecord(rec sale.Record) Session {
	records := make([]sale.Record, len(s.Records), len(s.Records)+1)
	copy(records, s.Records)
	return Session{Day: s.Day, Records: append(records, rec)}
}

// =============================================================================
// STORE
// =============================================================================

// Store keeps the current session and persists it on every change.
type Store struct {
	storage Storage
	days    DaySource
	log     *logger.Logger

	current     Session
	initialized bool
}

// NewStore creates a Store. Call Initialize before Append.
func NewStore(storage Storage, days DaySource, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		storage: storage,
		days:    days,
		log:     log.With("session"),
	}
}

// Initialize restores the persisted session and applies the day-boundary
// rule. It never fails: unreadable state is treated as no state.
func (s *Store) Initialize() Session {
	today := s.days.Today()

	restored, err := s.storage.Load()
	switch {
	case errors.Is(err, ErrNoState):
		s.log.Debug().Str("day", today).Msg("no previous session, starting fresh")

	case err != nil:
		s.log.Warn().Err(err).Str("day", today).Msg("discarding unreadable session state")

	case restored.Day != today:
		s.log.Info().
			Str("previous_day", restored.Day).
			Str("day", today).
			Int("discarded", restored.Len()).
			Msg("day changed, starting a new session")

	default:
		s.current = sanitize(restored, s.log)
		s.initialized = true
		s.log.Debug().Str("day", today).Int("records", s.current.Len()).Msg("session restored")
		return s.current
	}

	s.current = Session{Day: today, Records: []sale.Record{}}
	s.initialized = true

	// The fresh day is written right away so the stale records are gone even if
	// nothing is sold today.
	if err := s.Persist(s.current); err != nil {
		s.log.Warn().Err(err).Msg("could not persist new session")
	}

	return s.current
}

// Current returns the session as of the last Initialize or Append.
func (s *Store) Current() Session {
	return s.current
}

// Append adds rec at the end of the session and persists the result. A
// persistence failure is logged; the in-memory session stays authoritative
// for the rest of the process.
func (s *Store) Append(rec sale.Record) (Session, error) {
	if !s.initialized {
		return s.current, ErrNotInitialized
	}
	if rec.Date != s.current.Day {
		return s.current, errors.Wrapf(ErrDayMismatch, "record %q, session %q", rec.Date, s.current.Day)
	}

	next := s.current.withRecord(rec)
	s.current = next

	if err := s.Persist(next); err != nil {
		s.log.Warn().Err(err).Str("record", rec.ID).Msg("sale kept in memory but not persisted")
	}

	return next, nil
}

// Persist writes the session, overwriting any previous value.
func (s *Store) Persist(sess Session) error {
	if err := s.storage.Save(sess); err != nil {
		return errors.Wrap(err, "persist session")
	}
	return nil
}

// sanitize drops restored records that belong to another day, carry an
// unknown payment method or a negative price. Such records only exist when the
// state file was edited by hand.
func sanitize(sess Session, log *logger.Logger) Session {
	records := make([]sale.Record, 0, len(sess.Records))
	for _, rec := range sess.Records {
		switch {
		case rec.Date != sess.Day:
			log.Warn().Str("record", rec.ID).Str("date", rec.Date).Msg("dropping record from another day")
			continue
		case !rec.PaymentMethod.Valid():
			log.Warn().Str("record", rec.ID).Str("payment", string(rec.PaymentMethod)).Msg("dropping record with unknown payment method")
			continue
		case rec.Price < 0:
			log.Warn().Str("record", rec.ID).Int64("price", rec.Price).Msg("dropping record with negative price")
			continue
		}
		records = append(records, rec)
	}
	return Session{Day: sess.Day, Records: records}
}
