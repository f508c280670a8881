package jsonbuf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicObjectEncoding(t *testing.T) {
	b := New(0, nil)
	b.OpenObject()
	b.EncKVString("domain", "heartbeat")
	b.EncKVInt("sequence", 1)
	b.CloseObject()

	var got map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, "heartbeat", got["domain"])
	assert.Equal(t, float64(1), got["sequence"])
}

func TestEncVersion(t *testing.T) {
	b := New(0, nil)
	b.OpenObject()
	b.EncVersion("version", 3, 0)
	b.EncVersion("minorVersion", 4, 1)
	b.CloseObject()

	var got map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, float64(3), got["version"])
	assert.Equal(t, float64(4.1), got["minorVersion"])
}

type fakeThrottle struct {
	suppressedFields map[string]bool
	suppressedNV     map[string]map[string]bool
}

func (f *fakeThrottle) SuppressField(field string) bool {
	return f.suppressedFields[field]
}

func (f *fakeThrottle) SuppressNVPair(containingField, name string) bool {
	return f.suppressedNV[containingField][name]
}

func TestOptNamedListRewindsWhenEmpty(t *testing.T) {
	throttle := &fakeThrottle{
		suppressedNV: map[string]map[string]bool{
			"cpuUsageArray": {"cpu1": true, "cpu2": true},
		},
	}
	b := New(0, throttle)
	b.OpenObject()
	b.EncKVString("eventName", "Measurement")

	if ok := b.OpenOptNamedList("cpuUsageArray"); ok {
		for _, id := range []string{"cpu1", "cpu2"} {
			if b.SuppressNVPair("cpuUsageArray", id) {
				continue
			}
			b.OpenObject()
			b.EncKVString("cpuIdentifier", id)
			b.CloseObject()
		}
		b.CloseOpt()
	}
	b.CloseObject()

	out := string(b.Bytes())
	assert.NotContains(t, out, "cpuUsageArray")

	var got map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, "Measurement", got["eventName"])
}

func TestOptNamedObjectOmittedWhenFieldSuppressed(t *testing.T) {
	throttle := &fakeThrottle{suppressedFields: map[string]bool{"alarmInterfaceA": true}}
	b := New(0, throttle)
	b.OpenObject()
	ok := b.OpenOptNamedObject("alarmInterfaceA")
	assert.False(t, ok)
	b.EncKVString("specificProblem", "link down")
	b.CloseObject()

	assert.NotContains(t, string(b.Bytes()), "alarmInterfaceA")
}

func TestOptNamedListSurvivesWhenNonEmpty(t *testing.T) {
	throttle := &fakeThrottle{
		suppressedNV: map[string]map[string]bool{"cpuUsageArray": {"cpu2": true}},
	}
	b := New(0, throttle)
	b.OpenObject()
	if ok := b.OpenOptNamedList("cpuUsageArray"); ok {
		for _, id := range []string{"cpu1", "cpu2"} {
			if b.SuppressNVPair("cpuUsageArray", id) {
				continue
			}
			b.OpenObject()
			b.EncKVString("cpuIdentifier", id)
			b.CloseObject()
		}
		b.CloseOpt()
	}
	b.CloseObject()

	var got map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	arr, ok := got["cpuUsageArray"].([]any)
	require.True(t, ok)
	require.Len(t, arr, 1)
}

func TestCheckpointRewindManual(t *testing.T) {
	b := New(0, nil)
	b.OpenObject()
	b.EncKVString("a", "1")
	cp := b.Checkpoint()
	b.EncKVString("b", "2")
	b.Rewind(cp)
	b.EncKVString("c", "3")
	b.CloseObject()

	var got map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, "1", got["a"])
	assert.Equal(t, "3", got["c"])
	_, hasB := got["b"]
	assert.False(t, hasB)
}

func TestOverflowTruncatesAndLogsWithoutPanicking(t *testing.T) {
	b := New(16, nil)
	b.OpenObject()
	b.EncKVString("name", "this value is definitely too long for 16 bytes")
	assert.NotPanics(t, func() { b.CloseObject() })
}
