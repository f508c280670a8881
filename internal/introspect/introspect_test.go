package introspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/att-ves/vesagent/dispatcher"
	"github.com/att-ves/vesagent/event"
	"github.com/att-ves/vesagent/ringbuffer"
	"github.com/att-ves/vesagent/throttle"
)

type fakeSource struct {
	state    dispatcher.State
	queue    *ringbuffer.Buffer
	throttle *throttle.Store
	interval int
}

func (f *fakeSource) State() dispatcher.State   { return f.state }
func (f *fakeSource) Queue() *ringbuffer.Buffer { return f.queue }
func (f *fakeSource) Throttle() *throttle.Store { return f.throttle }
func (f *fakeSource) MeasurementInterval() int  { return f.interval }

func newFakeSource() *fakeSource {
	return &fakeSource{
		state:    dispatcher.StateActive,
		queue:    ringbuffer.New(10),
		throttle: throttle.NewStore(),
		interval: 60,
	}
}

func TestStatusEndpoint(t *testing.T) {
	src := newFakeSource()
	src.queue.Write(event.NewHeartbeat("Heartbeat_test", "hb-1"))

	srv := New(src)
	ts := httptest.NewServer(srv.Engine())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Active", body.DispatcherState)
	assert.Equal(t, 1, body.QueueDepth)
	assert.Equal(t, 60, body.MeasurementInterval)
}

func TestThrottleEndpoint(t *testing.T) {
	src := newFakeSource()
	spec := &throttle.Spec{SuppressedFieldNames: []string{"alarmInterfaceA"}}
	spec.Finalize()
	src.throttle.Set(int(event.DomainFault), spec)

	srv := New(src)
	ts := httptest.NewServer(srv.Engine())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/throttle")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	domains := body["throttledDomains"].([]any)
	require.Len(t, domains, 1)
	entry := domains[0].(map[string]any)
	assert.Equal(t, "fault", entry["domain"])
}
