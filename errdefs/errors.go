// Package errdefs defines the sentinel errors returned by the public API,
// mirroring the error taxonomy of the original C library (spec §7).
package errdefs

import "errors"

var (
	// ErrHTTPLibraryFail indicates the HTTP transport could not be
	// constructed (bad TLS material, malformed collector URL), in which
	// case Initialize returns it and no agent is built, or that a
	// collector POST failed at the HTTP level.
	ErrHTTPLibraryFail = errors.New("http transport initialization failed")

	// ErrBadJSONFormat indicates the collector response could not be
	// tokenized or its structure did not match the expected command
	// list shape. The command list is rejected in its entirety.
	ErrBadJSONFormat = errors.New("malformed collector response json")

	// ErrJSONKeyNotFound indicates a best-effort metadata lookup did not
	// contain an expected key; callers fall back to defaults.
	ErrJSONKeyNotFound = errors.New("expected json key not found")

	// ErrNoMetadata indicates the identity metadata service is not
	// configured, could not be reached, or did not answer 200 OK.
	ErrNoMetadata = errors.New("metadata service unavailable")

	// ErrBadMetadata indicates the metadata service responded but the
	// body was not valid JSON.
	ErrBadMetadata = errors.New("metadata service returned malformed json")

	// ErrEventBufferFull indicates the ring buffer was at capacity when
	// PostEvent was called. The caller's event is freed by the library.
	ErrEventBufferFull = errors.New("event ring buffer is full")

	// ErrEventHandlerInactive indicates PostEvent was called before Run
	// or after Terminate/RequestTerminate. The caller's event is freed
	// by the library.
	ErrEventHandlerInactive = errors.New("event handler is not active")
)

// Status is the numeric status-code shape of the original C API's error
// taxonomy (spec §7), kept as a thin adapter over the wrapped sentinels
// for callers migrating from that API. StatusOutOfMemory exists only
// for enum parity: Go surfaces allocation failure as an ordinary error,
// so no sentinel maps to it.
type Status int

const (
	StatusSuccess Status = iota
	StatusOutOfMemory
	StatusHTTPLibraryFail
	StatusBadJSONFormat
	StatusJSONKeyNotFound
	StatusNoMetadata
	StatusBadMetadata
	StatusEventBufferFull
	StatusEventHandlerInactive
	StatusUnknown
)

var statusStrings = map[Status]string{
	StatusSuccess:              "Success",
	StatusOutOfMemory:          "Out of memory",
	StatusHTTPLibraryFail:      "HTTP library initialization failed",
	StatusBadJSONFormat:        "Bad JSON format",
	StatusJSONKeyNotFound:      "JSON key not found",
	StatusNoMetadata:           "No metadata available",
	StatusBadMetadata:          "Bad metadata",
	StatusEventBufferFull:      "Event buffer full",
	StatusEventHandlerInactive: "Event handler inactive",
}

var statusOf = []struct {
	sentinel error
	status   Status
}{
	{ErrHTTPLibraryFail, StatusHTTPLibraryFail},
	{ErrBadJSONFormat, StatusBadJSONFormat},
	{ErrJSONKeyNotFound, StatusJSONKeyNotFound},
	{ErrNoMetadata, StatusNoMetadata},
	{ErrBadMetadata, StatusBadMetadata},
	{ErrEventBufferFull, StatusEventBufferFull},
	{ErrEventHandlerInactive, StatusEventHandlerInactive},
}

// StatusOf maps err onto the Status taxonomy via errors.Is over the
// wrapped sentinel. A nil err is StatusSuccess; an error wrapping no
// sentinel is StatusUnknown.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	for _, m := range statusOf {
		if errors.Is(err, m.sentinel) {
			return m.status
		}
	}
	return StatusUnknown
}

// StatusString returns the human-readable string for s, the analogue of
// the original API's error_string() accessor (spec §7).
func StatusString(s Status) string {
	if msg, ok := statusStrings[s]; ok {
		return msg
	}
	return "Unknown error"
}

// String makes Status self-describing in logs and %v formatting.
func (s Status) String() string { return StatusString(s) }

func Is(err error, target error) bool {
	return errors.Is(err, target)
}

func IsEventBufferFull(err error) bool { return errors.Is(err, ErrEventBufferFull) }

func IsEventHandlerInactive(err error) bool { return errors.Is(err, ErrEventHandlerInactive) }

func IsBadJSONFormat(err error) bool { return errors.Is(err, ErrBadJSONFormat) }

func IsHTTPLibraryFail(err error) bool { return errors.Is(err, ErrHTTPLibraryFail) }
