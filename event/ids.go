package event

import "github.com/google/uuid"

// GenerateID returns a prefix-<uuid> identifier suitable as a default
// eventId or correlator when a reporter doesn't maintain its own
// domain-specific sequence string (SPEC_FULL.md §B, matching the
// teacher's direct github.com/google/uuid dependency). Callers that do
// maintain a meaningful sequence (e.g. "heartbeat000000001") should
// prefer that over GenerateID.
func GenerateID(prefix string) string {
	id := uuid.New().String()
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
