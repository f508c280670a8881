package event

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceQualityEncodesVendorAndRtcp(t *testing.T) {
	vq := NewVoiceQuality("vq-test", "vq-1", "corr-9", "G.711", "G.729", "AcmeVendor")
	vq.SetVNFName("acme-sbc-1")
	vq.SetPhoneNumber("+15551234567")
	vq.SetMidCallRTCP([]byte{0x80, 0xc8, 0x00, 0x06})

	doc := encodeToMap(t, vq, nil)
	vf := domainFields(t, doc, "voiceQualityFields")
	assert.Equal(t, "G.711", vf["calleeSideCodec"])
	assert.Equal(t, "G.729", vf["callerSideCodec"])
	assert.Equal(t, "corr-9", vf["correlator"])
	assert.Equal(t, "+15551234567", vf["phoneNumber"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x80, 0xc8, 0x00, 0x06}), vf["midCallRtcp"])

	vn, ok := vf["vendorVnfNameFields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "AcmeVendor", vn["vendorName"])
	assert.Equal(t, "acme-sbc-1", vn["vnfName"])
}

func TestVoiceQualityEndOfCallCounters(t *testing.T) {
	vq := NewVoiceQuality("vq-test", "vq-2", "corr-10", "G.711", "G.711", "AcmeVendor")
	vq.SetEndOfCallMetrics("adj-1", "endpoint-1", 4.2, 86)
	vq.SetJitterAndDelay(12, 9, 40)
	vq.SetEndpointRtpCounters(64000, 63500, 10, 400, 396, 1)
	vq.SetLocalRtpCounters(63900, 64000, 0, 399, 400, 0)
	vq.SetPacketLoss(5, 1.25)

	doc := encodeToMap(t, vq, nil)
	vf := domainFields(t, doc, "voiceQualityFields")
	eoc, ok := vf["endOfCallVqmSummaries"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "adj-1", eoc["adjacencyName"])
	assert.Equal(t, "endpoint-1", eoc["endpointDescription"])
	assert.EqualValues(t, 12, eoc["endpointJitter"])
	assert.EqualValues(t, 9, eoc["localJitter"])
	assert.EqualValues(t, 40, eoc["roundTripDelay"])
	assert.EqualValues(t, 64000, eoc["endpointRtpOctetsSent"])
	assert.EqualValues(t, 396, eoc["endpointRtpPacketsReceived"])
	assert.EqualValues(t, 63900, eoc["localRtpOctetsSent"])
	assert.EqualValues(t, 400, eoc["localRtpPacketsReceived"])
	assert.EqualValues(t, 4.2, eoc["mosCqe"])
	assert.EqualValues(t, 86, eoc["rFactor"])
	assert.EqualValues(t, 5, eoc["packetsLost"])
	assert.EqualValues(t, 1.25, eoc["packetLossPercent"])
}

func TestVoiceQualityOmitsEndOfCallWhenNeverSet(t *testing.T) {
	vq := NewVoiceQuality("vq-test", "vq-3", "corr-11", "G.722", "G.722", "AcmeVendor")
	doc := encodeToMap(t, vq, nil)
	vf := domainFields(t, doc, "voiceQualityFields")
	_, present := vf["endOfCallVqmSummaries"]
	assert.False(t, present)
}
