// Package session holds the per-user exam state that survives between
// interactions: the extracted word list in its current order and the per-day
// counts. The interaction layer owns sessions; the domain packages stay pure.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/domain/extract"
)

// ErrSessionNotFound is returned when a session does not exist or has expired.
var ErrSessionNotFound = errors.New("session not found")

// Session is the exam state of one user.
type Session struct {
	ID          uuid.UUID          `json:"id"`
	TargetDay   int                `json:"target_day"`
	Mode        extract.Mode       `json:"mode"`
	WordsPerDay int                `json:"words_per_day,omitempty"`
	Exam        domain.ExamWordSet `json:"exam"`
	Message     string             `json:"message,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// New returns a session for an exam extracted at now.
func New(targetDay int, mode extract.Mode, wordsPerDay int, exam domain.ExamWordSet, now time.Time) *Session {
	return &Session{
		ID:          uuid.New(),
		TargetDay:   targetDay,
		Mode:        mode,
		WordsPerDay: wordsPerDay,
		Exam:        exam,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Exam = s.Exam.Clone()
	c.Warnings = append([]string(nil), s.Warnings...)
	return &c
}

// Store keeps sessions between interactions.
//
// Implementations hand out copies: mutating a returned session has no effect
// until it is written back with Replace, which swaps the whole state at once.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, s *Session) error

	// Get returns the session with id, or ErrSessionNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)

	// Replace overwrites an existing session, or returns ErrSessionNotFound.
	Replace(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
