// Package session tracks per-user conversation data: the chosen language and
// the most recently submitted download link.
package session

import (
	"context"
	"errors"
)

var (
	// ErrUnknownLanguage is returned when a language code outside the
	// enumerated set is stored.
	ErrUnknownLanguage = errors.New("session: unknown language")
	// ErrNoPendingURL is returned when a download is requested before any
	// link was submitted.
	ErrNoPendingURL = errors.New("session: no pending url")
)

// Store keeps per-user session state. Implementations are safe for
// concurrent use. Entries are never evicted; a user's pending link stays
// available for repeated downloads until overwritten.
type Store interface {
	// Language returns the user's chosen language, or the configured
	// default when the user has not picked one yet.
	Language(ctx context.Context, userID int64) (string, error)

	// SetLanguage records the user's language choice.
	// Returns ErrUnknownLanguage for codes outside the enumerated set.
	SetLanguage(ctx context.Context, userID int64, code string) error

	// SetPendingURL stores the link to be downloaded, replacing any
	// previous one (last write wins).
	SetPendingURL(ctx context.Context, userID int64, url string) error

	// PendingURL returns the stored link, or ErrNoPendingURL when the
	// user has not submitted one.
	PendingURL(ctx context.Context, userID int64) (string, error)

	// Count reports the number of known sessions.
	Count(ctx context.Context) (int, error)
}
