package event

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/att-ves/vesagent/jsonbuf"
	"github.com/att-ves/vesagent/throttle"
)

func encodeToMap(t *testing.T, ev Event, spec *throttle.Spec) map[string]any {
	t.Helper()
	var tq jsonbuf.ThrottleQuery
	if spec != nil {
		tq = spec
	}
	buf := jsonbuf.New(0, tq)
	ev.Encode(buf)
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func domainFields(t *testing.T, doc map[string]any, key string) map[string]any {
	t.Helper()
	event, ok := doc["event"].(map[string]any)
	require.True(t, ok, "missing event envelope")
	fields, ok := event[key].(map[string]any)
	require.True(t, ok, "missing %s section", key)
	return fields
}

func TestHeartbeatEncodesIntervalAndAdditionalFields(t *testing.T) {
	SetNextSequence(1)
	hb := NewHeartbeat("heartbeat-test", "hb-0")
	hb.SetIntervalSeconds(60)
	hb.AddAdditionalField("k1", "v1")

	doc := encodeToMap(t, hb, nil)
	hdr := domainFields(t, doc, "commonEventHeader")
	assert.Equal(t, "heartbeat", hdr["domain"])
	assert.Equal(t, "hb-0", hdr["eventId"])

	hf := domainFields(t, doc, "heartbeatFields")
	assert.EqualValues(t, 60, hf["heartbeatInterval"])
	assert.Len(t, hf["additionalFields"], 1)
}

// TestHeaderVersionIsFixedAcrossDomains is spec scenario S1: the
// commonEventHeader's "version" is always HeaderMajorVersion.
// HeaderMinorVersion ("3.0"), regardless of how far a domain's own
// <domain>FieldsVersion constant diverges from it (fault is "4.0",
// heartbeatFields is "1.1", etc.) — the two are independent.
func TestHeaderVersionIsFixedAcrossDomains(t *testing.T) {
	SetNextSequence(1)
	hb := NewHeartbeat("Heartbeat_vHeartbeat", "heartbeat000000001")
	doc := encodeToMap(t, hb, nil)
	hdr := domainFields(t, doc, "commonEventHeader")
	assert.Equal(t, "3", fmt.Sprint(hdr["version"]))

	f := NewFault("fault-test", "flt-0", "linkDown", "ethernet link down",
		SeverityCritical, SourceTypeRouter, VFStatusActive)
	fdoc := encodeToMap(t, f, nil)
	fhdr := domainFields(t, fdoc, "commonEventHeader")
	assert.Equal(t, "3", fmt.Sprint(fhdr["version"]))
	ff := domainFields(t, fdoc, "faultFields")
	assert.Equal(t, "4", fmt.Sprint(ff["faultFieldsVersion"]))
}

func TestFaultScenarioS2SuppressesScalarField(t *testing.T) {
	// S2: suppressedFieldNames: ["alarmInterfaceA"] omits the key entirely,
	// even though it's a plain optional scalar, not a list/object section.
	spec := &throttle.Spec{SuppressedFieldNames: []string{"alarmInterfaceA"}}
	spec.Finalize()

	f := NewFault("fault-test", "flt-0", "linkDown", "ethernet link down",
		SeverityCritical, SourceTypeRouter, VFStatusActive)
	f.SetInterfaceName("eth0")
	f.SetCategory("connectivity")

	doc := encodeToMap(t, f, spec)
	ff := domainFields(t, doc, "faultFields")
	_, present := ff["alarmInterfaceA"]
	assert.False(t, present, "alarmInterfaceA must be omitted when suppressed")
	assert.Equal(t, "connectivity", ff["category"])
	assert.Equal(t, "Critical", ff["eventSeverity"])
}

func TestMeasurementScenarioS3EmptyArrayKeyOmitted(t *testing.T) {
	// S3: every cpuUsageArray entry suppressed via an nv-pair rule leaves
	// the whole cpuUsageArray key out of the document.
	spec := &throttle.Spec{
		SuppressedNVPairs: []throttle.NVPairs{
			{FieldName: "cpuUsageArray", SuppressedNames: []string{"cpu0", "cpu1"}},
		},
	}
	spec.Finalize()

	m := NewMeasurement("measurement-test", "ms-0", 300)
	m.AddCPUUse("cpu0", 12.5)
	m.AddCPUUse("cpu1", 7.0)

	doc := encodeToMap(t, m, spec)
	mf := domainFields(t, doc, "measurementsForVfScalingFields")
	_, present := mf["cpuUsageArray"]
	assert.False(t, present, "cpuUsageArray must be omitted when every entry is suppressed")
}

func TestMeasurementKeepsArrayWhenSomeEntriesSurvive(t *testing.T) {
	spec := &throttle.Spec{
		SuppressedNVPairs: []throttle.NVPairs{
			{FieldName: "cpuUsageArray", SuppressedNames: []string{"cpu0"}},
		},
	}
	spec.Finalize()

	m := NewMeasurement("measurement-test", "ms-1", 300)
	m.AddCPUUse("cpu0", 12.5)
	m.AddCPUUse("cpu1", 7.0)

	doc := encodeToMap(t, m, spec)
	mf := domainFields(t, doc, "measurementsForVfScalingFields")
	arr, ok := mf["cpuUsageArray"].([]any)
	require.True(t, ok, "cpuUsageArray must survive when at least one entry is kept")
	assert.Len(t, arr, 1)
}

func TestOptStringSetOnceThenIgnoresLaterSets(t *testing.T) {
	var o OptString
	o.Init("example")
	o.Set("first")
	o.Set("second")
	assert.True(t, o.IsSet)
	assert.Equal(t, "first", o.Value)

	o.ForceSet("forced")
	assert.Equal(t, "forced", o.Value)

	o.Free()
	assert.False(t, o.IsSet)
	assert.Empty(t, o.Value)
}

func TestDomainStringRoundTrip(t *testing.T) {
	for d := DomainHeartbeat; d < domainCount; d++ {
		s := d.String()
		require.NotEqual(t, "unknown", s)
		parsed, err := ParseDomain(s)
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}

func TestParseDomainRejectsUnknownString(t *testing.T) {
	_, err := ParseDomain("notADomain")
	assert.Error(t, err)
}

func TestSignalingEncodesVendorVnfNameFields(t *testing.T) {
	s := NewSignaling("sig-test", "sig-0", "corr-1", "AcmeVendor")
	s.SetVNFName("acme-vnf-1")
	s.SetLocalAddress("10.0.0.1", "5060")

	doc := encodeToMap(t, s, nil)
	sf := domainFields(t, doc, "signalingFields")
	assert.Equal(t, "corr-1", sf["correlator"])
	vn, ok := sf["vendorVnfNameFields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "AcmeVendor", vn["vendorName"])
	assert.Equal(t, "acme-vnf-1", vn["vnfName"])
}

func TestVoiceQualityClampsMosAndRFactor(t *testing.T) {
	vq := NewVoiceQuality("vq-test", "vq-0", "corr-2", "G.711", "G.729", "AcmeVendor")
	vq.SetEndOfCallMetrics("adj-1", "endpoint-1", 7.5, 250)

	doc := encodeToMap(t, vq, nil)
	vf := domainFields(t, doc, "voiceQualityFields")
	eoc, ok := vf["endOfCallVqmSummaries"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 5, eoc["mosCqe"])
	assert.EqualValues(t, 100, eoc["rFactor"])
}

func TestBareHeartbeatIsNakedHeader(t *testing.T) {
	hb := NewHeartbeat("heartbeat-bare", "hb-9")
	doc := encodeToMap(t, hb, nil)
	ev := doc["event"].(map[string]any)
	_, present := ev["heartbeatFields"]
	assert.False(t, present, "a heartbeat with nothing set is just the common header")
}

func TestHeartbeatFieldEncodesIntervalUnderHeartbeatField(t *testing.T) {
	hf := NewHeartbeatField("heartbeat-field-test", "hbf-0", 30)
	hf.AddAdditionalField("stage", "steady")

	doc := encodeToMap(t, hf, nil)
	hdr := domainFields(t, doc, "commonEventHeader")
	assert.Equal(t, "heartbeatField", hdr["domain"])
	fields := domainFields(t, doc, "heartbeatField")
	assert.EqualValues(t, 30, fields["heartbeatInterval"])
	add := fields["additionalFields"].([]any)
	require.Len(t, add, 1)
}

func TestGenericDomainsOmitAdditionalFieldsWhenEmpty(t *testing.T) {
	o := NewOther("other-test", "oth-0")
	doc := encodeToMap(t, o, nil)
	of := domainFields(t, doc, "otherFields")
	_, present := of["additionalFields"]
	assert.False(t, present)
}
