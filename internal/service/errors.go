package service

import "errors"

// Aggregate-level failure conditions surfaced to callers. Individual
// upstream item/batch failures never reach here — they degrade to partial
// data inside the fetcher.
var (
	// ErrNoValidIDs means the entire input set was empty or unparseable.
	ErrNoValidIDs = errors.New("no valid video ids found")

	// ErrEmptyQuery means a search was requested without a keyword.
	ErrEmptyQuery = errors.New("search keyword is empty")

	// ErrNoResults means the post-filter result set is empty — a
	// user-facing "not found", not a crash.
	ErrNoResults = errors.New("no videos matched the given filters")
)
