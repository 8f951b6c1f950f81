package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrCacheMiss will throw if the requested key is not in the cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrNetwork will throw if a call to an upstream service fails at the
	// transport level
	ErrNetwork = errors.New("upstream request failed")
	// ErrNoArtworksFound will throw when every fetch strategy is exhausted
	// without producing a single displayable artwork
	ErrNoArtworksFound = errors.New("no artworks found")
	// ErrConfirmationRequired will throw when unliking an artwork from a
	// context that needs an explicit user confirmation first
	ErrConfirmationRequired = errors.New("removing a liked artwork requires confirmation")
	// ErrInvalidComment will throw when a comment submission fails local
	// validation; nothing is sent to the backend in that case
	ErrInvalidComment = errors.New("comment submission is not valid")
)
