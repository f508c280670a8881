package errdefs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOfMapsWrappedSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want Status
	}{
		{nil, StatusSuccess},
		{fmt.Errorf("agent: %w", ErrEventBufferFull), StatusEventBufferFull},
		{fmt.Errorf("agent: %w", ErrEventHandlerInactive), StatusEventHandlerInactive},
		{fmt.Errorf("transport: %w", ErrHTTPLibraryFail), StatusHTTPLibraryFail},
		{fmt.Errorf("command: %w: bad nesting", ErrBadJSONFormat), StatusBadJSONFormat},
		{ErrNoMetadata, StatusNoMetadata},
		{ErrBadMetadata, StatusBadMetadata},
		{ErrJSONKeyNotFound, StatusJSONKeyNotFound},
		{errors.New("something else entirely"), StatusUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusOf(tc.err))
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Success", StatusString(StatusSuccess))
	assert.Equal(t, "Event buffer full", StatusString(StatusEventBufferFull))
	assert.Equal(t, "Unknown error", StatusString(Status(999)))
	assert.Equal(t, "Event handler inactive", StatusEventHandlerInactive.String())
}
