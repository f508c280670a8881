package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/att-ves/vesagent/throttle"
)

func measurementFields(t *testing.T, m *Measurement, spec *throttle.Spec) map[string]any {
	t.Helper()
	doc := encodeToMap(t, m, spec)
	return domainFields(t, doc, "measurementsForVfScalingFields")
}

func TestMeasurementEncodesScalarFields(t *testing.T) {
	m := NewMeasurement("measurement-test", "ms-10", 300)
	m.SetConcurrentSessions(42)
	m.SetConfiguredEntities(7)
	m.SetMeanRequestLatency(12.25)
	m.SetRequestRate(100)
	m.SetMediaPortsInUse(16)
	m.SetVNFCScalingMetric(3)

	mf := measurementFields(t, m, nil)
	assert.EqualValues(t, 300, mf["measurementInterval"])
	assert.EqualValues(t, 42, mf["concurrentSessions"])
	assert.EqualValues(t, 7, mf["configuredEntities"])
	assert.EqualValues(t, 12.25, mf["meanRequestLatency"])
	assert.EqualValues(t, 100, mf["requestRate"])
	assert.EqualValues(t, 16, mf["numberOfMediaPortsInUse"])
	assert.EqualValues(t, 3, mf["vnfcScalingMetric"])
	assert.EqualValues(t, 2.1, mf["measurementsForVfScalingVersion"])
}

func TestMeasurementScalarSettersAreSingleShot(t *testing.T) {
	m := NewMeasurement("measurement-test", "ms-11", 300)
	m.SetRequestRate(100)
	m.SetRequestRate(999)

	mf := measurementFields(t, m, nil)
	assert.EqualValues(t, 100, mf["requestRate"])
}

func TestMeasurementCPUBreakdownFields(t *testing.T) {
	m := NewMeasurement("measurement-test", "ms-12", 300)
	c := m.AddCPUUse("cpu0", 37.5)
	c.Idle.Set(50.0)
	c.UsageSystem.Set(10.0)
	c.UsageUser.Set(27.5)

	mf := measurementFields(t, m, nil)
	arr, ok := mf["cpuUsageArray"].([]any)
	require.True(t, ok)
	require.Len(t, arr, 1)
	entry := arr[0].(map[string]any)
	assert.Equal(t, "cpu0", entry["cpuIdentifier"])
	assert.EqualValues(t, 37.5, entry["percentUsage"])
	assert.EqualValues(t, 50.0, entry["cpuIdle"])
	assert.EqualValues(t, 10.0, entry["cpuUsageSystem"])
	assert.EqualValues(t, 27.5, entry["cpuUsageUser"])
	_, hasWait := entry["cpuWait"]
	assert.False(t, hasWait, "unset breakdown fields must be omitted")
}

func TestMeasurementDiskUseOmitsUnsetMetrics(t *testing.T) {
	m := NewMeasurement("measurement-test", "ms-13", 300)
	var d DiskUse
	d.Identifier = "sda"
	d.OctetsReadLast.Set(4096)
	d.OctetsWriteLast.Set(8192)
	m.AddDiskUse(d)

	mf := measurementFields(t, m, nil)
	arr := mf["diskUsageArray"].([]any)
	require.Len(t, arr, 1)
	entry := arr[0].(map[string]any)
	assert.Equal(t, "sda", entry["diskIdentifier"])
	assert.EqualValues(t, 4096, entry["diskOctetsReadLast"])
	assert.EqualValues(t, 8192, entry["diskOctetsWriteLast"])
	_, hasAvg := entry["diskOctetsReadAvg"]
	assert.False(t, hasAvg)
}

func TestMeasurementMemoryUseKeys(t *testing.T) {
	m := NewMeasurement("measurement-test", "ms-14", 300)
	var mu MemoryUse
	mu.VMIdentifier = "vm-1"
	mu.Buffered = 512
	mu.Free.Set(2048)
	mu.Used.Set(6144)
	m.AddMemoryUse(mu)

	mf := measurementFields(t, m, nil)
	arr := mf["memoryUsageArray"].([]any)
	require.Len(t, arr, 1)
	entry := arr[0].(map[string]any)
	assert.Equal(t, "vm-1", entry["vmIdentifier"])
	assert.EqualValues(t, 512, entry["memoryBuffered"])
	assert.EqualValues(t, 2048, entry["memoryFree"])
	assert.EqualValues(t, 6144, entry["memoryUsed"])
}

func TestMeasurementVNicUsageAccumulatedAndDeltaKeys(t *testing.T) {
	m := NewMeasurement("measurement-test", "ms-15", 300)
	m.AddVNicUse(VNicPerformance{
		VNicID:      "eth0",
		Accumulated: VNicCounters{OctetsRx: 1000, OctetsTx: 2000},
		Delta:       VNicCounters{OctetsRx: 10, OctetsTx: 20},
	})

	mf := measurementFields(t, m, nil)
	arr := mf["vNicUsageArray"].([]any)
	require.Len(t, arr, 1)
	entry := arr[0].(map[string]any)
	assert.Equal(t, "eth0", entry["vNicIdentifier"])
	assert.Equal(t, "false", entry["valuesAreSuspect"])
	assert.EqualValues(t, 1000, entry["receivedOctetsAccumulated"])
	assert.EqualValues(t, 2000, entry["transmittedOctetsAccumulated"])
	assert.EqualValues(t, 10, entry["receivedOctetsDelta"])
	assert.EqualValues(t, 20, entry["transmittedOctetsDelta"])
}

func TestMeasurementLatencyBucketKeys(t *testing.T) {
	m := NewMeasurement("measurement-test", "ms-16", 300)
	var lb LatencyBucket
	lb.LowEndMicrosec.Set(0)
	lb.HighEndMicrosec.Set(500)
	lb.CountInBucket = 12
	m.AddLatencyBucket(lb)

	var open LatencyBucket // open-ended upper bucket
	open.LowEndMicrosec.Set(500)
	open.CountInBucket = 3
	m.AddLatencyBucket(open)

	mf := measurementFields(t, m, nil)
	arr := mf["latencyDistribution"].([]any)
	require.Len(t, arr, 2)
	first := arr[0].(map[string]any)
	assert.EqualValues(t, 0, first["lowEndOfLatencyBucket"])
	assert.EqualValues(t, 500, first["highEndOfLatencyBucket"])
	assert.EqualValues(t, 12, first["countsInTheBucket"])
	second := arr[1].(map[string]any)
	_, hasHigh := second["highEndOfLatencyBucket"]
	assert.False(t, hasHigh)
}

func TestMeasurementErrorsBlock(t *testing.T) {
	m := NewMeasurement("measurement-test", "ms-17", 300)
	m.SetErrors(ErrorCounters{ReceiveDiscards: 1, ReceiveErrors: 2, TransmitDiscards: 3, TransmitErrors: 4})
	// second call must not overwrite
	m.SetErrors(ErrorCounters{ReceiveDiscards: 99})

	mf := measurementFields(t, m, nil)
	errs := mf["errors"].(map[string]any)
	assert.EqualValues(t, 1, errs["receiveDiscards"])
	assert.EqualValues(t, 2, errs["receiveErrors"])
	assert.EqualValues(t, 3, errs["transmitDiscards"])
	assert.EqualValues(t, 4, errs["transmitErrors"])
}

func TestMeasurementCustomGroupsSerializeUnderAdditionalMeasurements(t *testing.T) {
	m := NewMeasurement("measurement-test", "ms-18", 300)
	g := CustomMeasurementGroup{Name: "licenses"}
	g.Fields.Add("inUse", "12")
	g.Fields.Add("limit", "100")
	m.AddCustomGroup(g)

	mf := measurementFields(t, m, nil)
	arr := mf["additionalMeasurements"].([]any)
	require.Len(t, arr, 1)
	group := arr[0].(map[string]any)
	assert.Equal(t, "licenses", group["name"])
	fields := group["arrayOfFields"].([]any)
	require.Len(t, fields, 2)
	assert.Equal(t, "inUse", fields[0].(map[string]any)["name"])
}

func TestMeasurementSuppressedCustomGroupOmitsKey(t *testing.T) {
	spec := &throttle.Spec{
		SuppressedNVPairs: []throttle.NVPairs{
			{FieldName: "additionalMeasurements", SuppressedNames: []string{"licenses"}},
		},
	}
	spec.Finalize()

	m := NewMeasurement("measurement-test", "ms-19", 300)
	g := CustomMeasurementGroup{Name: "licenses"}
	g.Fields.Add("inUse", "12")
	m.AddCustomGroup(g)

	mf := measurementFields(t, m, spec)
	_, present := mf["additionalMeasurements"]
	assert.False(t, present, "a fully-suppressed group list must rewind away")
}
