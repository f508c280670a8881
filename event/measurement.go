package event

import (
	"strconv"

	"github.com/att-ves/vesagent/jsonbuf"
)

const (
	measurementMajorVersion = 2
	measurementMinorVersion = 1
)

// CPUUse is one entry of the measurement event's per-CPU usage list
// (spec §3.4). PercentUsage is mandatory; the per-mode breakdown fields
// are optional and omitted unless set.
type CPUUse struct {
	CPUIdentifier string
	PercentUsage  float64

	Idle           OptDouble
	UsageInterrupt OptDouble
	UsageNice      OptDouble
	UsageSoftIRQ   OptDouble
	UsageSteal     OptDouble
	UsageSystem    OptDouble
	UsageUser      OptDouble
	Wait           OptDouble
}

// DiskUse is one entry of the per-disk usage list. Every metric is
// optional; reporters typically fill only the avg/last columns their
// collection command produces.
type DiskUse struct {
	Identifier string

	IoTimeAvg  OptDouble
	IoTimeLast OptDouble
	IoTimeMax  OptDouble
	IoTimeMin  OptDouble

	MergedReadAvg  OptDouble
	MergedReadLast OptDouble
	MergedReadMax  OptDouble
	MergedReadMin  OptDouble

	MergedWriteAvg  OptDouble
	MergedWriteLast OptDouble
	MergedWriteMax  OptDouble
	MergedWriteMin  OptDouble

	OctetsReadAvg  OptDouble
	OctetsReadLast OptDouble
	OctetsReadMax  OptDouble
	OctetsReadMin  OptDouble

	OctetsWriteAvg  OptDouble
	OctetsWriteLast OptDouble
	OctetsWriteMax  OptDouble
	OctetsWriteMin  OptDouble

	OpsReadAvg  OptDouble
	OpsReadLast OptDouble
	OpsReadMax  OptDouble
	OpsReadMin  OptDouble

	OpsWriteAvg  OptDouble
	OpsWriteLast OptDouble
	OpsWriteMax  OptDouble
	OpsWriteMin  OptDouble

	PendingOpsAvg  OptDouble
	PendingOpsLast OptDouble
	PendingOpsMax  OptDouble
	PendingOpsMin  OptDouble

	TimeReadAvg  OptDouble
	TimeReadLast OptDouble
	TimeReadMax  OptDouble
	TimeReadMin  OptDouble

	TimeWriteAvg  OptDouble
	TimeWriteLast OptDouble
	TimeWriteMax  OptDouble
	TimeWriteMin  OptDouble
}

// MemoryUse is one entry of the per-memory usage list. Buffered and the
// VM identifier are mandatory; the remaining breakdown is optional.
type MemoryUse struct {
	VMIdentifier string
	Buffered     float64

	Cached     OptDouble
	Configured OptDouble
	Free       OptDouble
	SlabRecl   OptDouble
	SlabUnrecl OptDouble
	Used       OptDouble
}

// FilesystemUse is one entry of the filesystem usage list. All counters
// are mandatory.
type FilesystemUse struct {
	FilesystemName      string
	BlockConfigured     float64
	BlockIops           float64
	BlockUsed           float64
	EphemeralConfigured float64
	EphemeralIops       float64
	EphemeralUsed       float64
}

// VNicCounters holds one set (accumulated since reset, or delta since
// the last measurement interval) of the rx/tx counters a vNIC usage
// entry carries (spec §3.4).
type VNicCounters struct {
	BroadcastPacketsRx uint64
	BroadcastPacketsTx uint64
	MulticastPacketsRx uint64
	MulticastPacketsTx uint64
	UnicastPacketsRx   uint64
	UnicastPacketsTx   uint64
	TotalPacketsRx     uint64
	TotalPacketsTx     uint64
	DiscardedPacketsRx uint64
	DiscardedPacketsTx uint64
	ErrorPacketsRx     uint64
	ErrorPacketsTx     uint64
	OctetsRx           uint64
	OctetsTx           uint64
}

// VNicPerformance is one entry of the vNIC usage list: the accumulated
// counters since interface reset and the delta since the last
// measurement interval. ValuesAreSuspect marks entries collected across
// a counter reset or clock discontinuity.
type VNicPerformance struct {
	VNicID           string
	ValuesAreSuspect bool
	Accumulated      VNicCounters
	Delta            VNicCounters
}

// LatencyBucket is one entry of the latency-bucket distribution. The
// count is mandatory; an open-ended bucket leaves the corresponding
// boundary unset.
type LatencyBucket struct {
	LowEndMicrosec  OptDouble
	HighEndMicrosec OptDouble
	CountInBucket   int
}

// CodecUse is one entry of the codec usage list.
type CodecUse struct {
	CodecIdentifier string
	NumberInUse     int
}

// FeatureUse is one entry of the feature usage list.
type FeatureUse struct {
	FeatureIdentifier  string
	FeatureUtilization int
}

// CustomMeasurementGroup is one named group of name/value pairs (spec
// §3.4 "custom measurement groups: name -> list of name/value pairs"),
// serialized under additionalMeasurements.
type CustomMeasurementGroup struct {
	Name   string
	Fields NameValuePairs
}

// ErrorCounters is the measurement event's errors block (spec §3.4).
// All four counters are mandatory once the block is attached.
type ErrorCounters struct {
	ReceiveDiscards  int
	ReceiveErrors    int
	TransmitDiscards int
	TransmitErrors   int
}

// Measurement is a periodic resource/performance measurement event
// (spec §3.4), the richest domain in the model.
type Measurement struct {
	hdr Header

	IntervalSeconds int

	ConcurrentSessions OptInt
	ConfiguredEntities OptInt
	MeanRequestLatency OptDouble
	RequestRate        OptInt
	MediaPortsInUse    OptInt
	VNFCScalingMetric  OptInt

	CPUUsage         []CPUUse
	DiskUsage        []DiskUse
	MemoryUsage      []MemoryUse
	FilesystemUsage  []FilesystemUse
	VNicUsage        []VNicPerformance
	LatencyBuckets   []LatencyBucket
	CodecUsage       []CodecUse
	FeatureUsage     []FeatureUse
	CustomGroups     []CustomMeasurementGroup
	AdditionalFields NameValuePairs

	Errors    ErrorCounters
	hasErrors bool
}

var _ Event = (*Measurement)(nil)

// NewMeasurement constructs a measurement event with the mandatory
// measurement interval (spec §3.4).
func NewMeasurement(eventName, eventID string, intervalSeconds int) *Measurement {
	m := &Measurement{
		hdr:             NewHeader(DomainMeasurement, eventName, eventID),
		IntervalSeconds: intervalSeconds,
	}
	m.hdr.Priority = PriorityNormal
	m.ConcurrentSessions.Init("concurrentSessions")
	m.ConfiguredEntities.Init("configuredEntities")
	m.MeanRequestLatency.Init("meanRequestLatency")
	m.RequestRate.Init("requestRate")
	m.MediaPortsInUse.Init("numberOfMediaPortsInUse")
	m.VNFCScalingMetric.Init("vnfcScalingMetric")
	return m
}

func (m *Measurement) Domain() Domain  { return DomainMeasurement }
func (m *Measurement) Header() *Header { return &m.hdr }

func (m *Measurement) SetConcurrentSessions(v int)     { m.ConcurrentSessions.Set(v) }
func (m *Measurement) SetConfiguredEntities(v int)     { m.ConfiguredEntities.Set(v) }
func (m *Measurement) SetMeanRequestLatency(v float64) { m.MeanRequestLatency.Set(v) }
func (m *Measurement) SetRequestRate(v int)            { m.RequestRate.Set(v) }
func (m *Measurement) SetMediaPortsInUse(v int)        { m.MediaPortsInUse.Set(v) }
func (m *Measurement) SetVNFCScalingMetric(v int)      { m.VNFCScalingMetric.Set(v) }

// AddCPUUse appends a per-CPU entry and returns it so the caller can
// fill the optional per-mode breakdown before posting. The returned
// pointer is invalidated by the next AddCPUUse call.
func (m *Measurement) AddCPUUse(id string, percentUsage float64) *CPUUse {
	m.CPUUsage = append(m.CPUUsage, CPUUse{CPUIdentifier: id, PercentUsage: percentUsage})
	return &m.CPUUsage[len(m.CPUUsage)-1]
}

func (m *Measurement) AddDiskUse(d DiskUse) { m.DiskUsage = append(m.DiskUsage, d) }

func (m *Measurement) AddMemoryUse(mu MemoryUse) { m.MemoryUsage = append(m.MemoryUsage, mu) }

func (m *Measurement) AddFilesystemUse(fu FilesystemUse) {
	m.FilesystemUsage = append(m.FilesystemUsage, fu)
}

func (m *Measurement) AddVNicUse(v VNicPerformance) { m.VNicUsage = append(m.VNicUsage, v) }

func (m *Measurement) AddLatencyBucket(lb LatencyBucket) {
	m.LatencyBuckets = append(m.LatencyBuckets, lb)
}

func (m *Measurement) AddCodecUse(c CodecUse) { m.CodecUsage = append(m.CodecUsage, c) }

func (m *Measurement) AddFeatureUse(f FeatureUse) { m.FeatureUsage = append(m.FeatureUsage, f) }

func (m *Measurement) AddCustomGroup(g CustomMeasurementGroup) {
	m.CustomGroups = append(m.CustomGroups, g)
}

func (m *Measurement) AddAdditionalField(name, value string) {
	m.AdditionalFields.Add(name, value)
}

// SetErrors is a single-shot setter for the errors block.
func (m *Measurement) SetErrors(e ErrorCounters) {
	if m.hasErrors {
		return
	}
	m.Errors = e
	m.hasErrors = true
}

// encodeVNicCounters writes one of the two rx/tx counter blocks a vNIC
// usage entry carries, with suffix "Accumulated" (since interface reset)
// or "Delta" (since the last measurement interval) appended to each key
// (spec §3.4).
func encodeVNicCounters(buf *jsonbuf.Buffer, suffix string, c VNicCounters) {
	buf.EncKVULL("receivedBroadcastPackets"+suffix, c.BroadcastPacketsRx)
	buf.EncKVULL("transmittedBroadcastPackets"+suffix, c.BroadcastPacketsTx)
	buf.EncKVULL("receivedMulticastPackets"+suffix, c.MulticastPacketsRx)
	buf.EncKVULL("transmittedMulticastPackets"+suffix, c.MulticastPacketsTx)
	buf.EncKVULL("receivedUnicastPackets"+suffix, c.UnicastPacketsRx)
	buf.EncKVULL("transmittedUnicastPackets"+suffix, c.UnicastPacketsTx)
	buf.EncKVULL("receivedTotalPackets"+suffix, c.TotalPacketsRx)
	buf.EncKVULL("transmittedTotalPackets"+suffix, c.TotalPacketsTx)
	buf.EncKVULL("receivedDiscardedPackets"+suffix, c.DiscardedPacketsRx)
	buf.EncKVULL("transmittedDiscardedPackets"+suffix, c.DiscardedPacketsTx)
	buf.EncKVULL("receivedErrorPackets"+suffix, c.ErrorPacketsRx)
	buf.EncKVULL("transmittedErrorPackets"+suffix, c.ErrorPacketsTx)
	buf.EncKVULL("receivedOctets"+suffix, c.OctetsRx)
	buf.EncKVULL("transmittedOctets"+suffix, c.OctetsTx)
}

func encodeDiskUse(buf *jsonbuf.Buffer, d *DiskUse) {
	buf.EncKVString("diskIdentifier", d.Identifier)
	buf.EncKVOptDouble("diskIoTimeAvg", d.IoTimeAvg.IsSet, d.IoTimeAvg.Value)
	buf.EncKVOptDouble("diskIoTimeLast", d.IoTimeLast.IsSet, d.IoTimeLast.Value)
	buf.EncKVOptDouble("diskIoTimeMax", d.IoTimeMax.IsSet, d.IoTimeMax.Value)
	buf.EncKVOptDouble("diskIoTimeMin", d.IoTimeMin.IsSet, d.IoTimeMin.Value)
	buf.EncKVOptDouble("diskMergedReadAvg", d.MergedReadAvg.IsSet, d.MergedReadAvg.Value)
	buf.EncKVOptDouble("diskMergedReadLast", d.MergedReadLast.IsSet, d.MergedReadLast.Value)
	buf.EncKVOptDouble("diskMergedReadMax", d.MergedReadMax.IsSet, d.MergedReadMax.Value)
	buf.EncKVOptDouble("diskMergedReadMin", d.MergedReadMin.IsSet, d.MergedReadMin.Value)
	buf.EncKVOptDouble("diskMergedWriteAvg", d.MergedWriteAvg.IsSet, d.MergedWriteAvg.Value)
	buf.EncKVOptDouble("diskMergedWriteLast", d.MergedWriteLast.IsSet, d.MergedWriteLast.Value)
	buf.EncKVOptDouble("diskMergedWriteMax", d.MergedWriteMax.IsSet, d.MergedWriteMax.Value)
	buf.EncKVOptDouble("diskMergedWriteMin", d.MergedWriteMin.IsSet, d.MergedWriteMin.Value)
	buf.EncKVOptDouble("diskOctetsReadAvg", d.OctetsReadAvg.IsSet, d.OctetsReadAvg.Value)
	buf.EncKVOptDouble("diskOctetsReadLast", d.OctetsReadLast.IsSet, d.OctetsReadLast.Value)
	buf.EncKVOptDouble("diskOctetsReadMax", d.OctetsReadMax.IsSet, d.OctetsReadMax.Value)
	buf.EncKVOptDouble("diskOctetsReadMin", d.OctetsReadMin.IsSet, d.OctetsReadMin.Value)
	buf.EncKVOptDouble("diskOctetsWriteAvg", d.OctetsWriteAvg.IsSet, d.OctetsWriteAvg.Value)
	buf.EncKVOptDouble("diskOctetsWriteLast", d.OctetsWriteLast.IsSet, d.OctetsWriteLast.Value)
	buf.EncKVOptDouble("diskOctetsWriteMax", d.OctetsWriteMax.IsSet, d.OctetsWriteMax.Value)
	buf.EncKVOptDouble("diskOctetsWriteMin", d.OctetsWriteMin.IsSet, d.OctetsWriteMin.Value)
	buf.EncKVOptDouble("diskOpsReadAvg", d.OpsReadAvg.IsSet, d.OpsReadAvg.Value)
	buf.EncKVOptDouble("diskOpsReadLast", d.OpsReadLast.IsSet, d.OpsReadLast.Value)
	buf.EncKVOptDouble("diskOpsReadMax", d.OpsReadMax.IsSet, d.OpsReadMax.Value)
	buf.EncKVOptDouble("diskOpsReadMin", d.OpsReadMin.IsSet, d.OpsReadMin.Value)
	buf.EncKVOptDouble("diskOpsWriteAvg", d.OpsWriteAvg.IsSet, d.OpsWriteAvg.Value)
	buf.EncKVOptDouble("diskOpsWriteLast", d.OpsWriteLast.IsSet, d.OpsWriteLast.Value)
	buf.EncKVOptDouble("diskOpsWriteMax", d.OpsWriteMax.IsSet, d.OpsWriteMax.Value)
	buf.EncKVOptDouble("diskOpsWriteMin", d.OpsWriteMin.IsSet, d.OpsWriteMin.Value)
	buf.EncKVOptDouble("diskPendingOperationsAvg", d.PendingOpsAvg.IsSet, d.PendingOpsAvg.Value)
	buf.EncKVOptDouble("diskPendingOperationsLast", d.PendingOpsLast.IsSet, d.PendingOpsLast.Value)
	buf.EncKVOptDouble("diskPendingOperationsMax", d.PendingOpsMax.IsSet, d.PendingOpsMax.Value)
	buf.EncKVOptDouble("diskPendingOperationsMin", d.PendingOpsMin.IsSet, d.PendingOpsMin.Value)
	buf.EncKVOptDouble("diskTimeReadAvg", d.TimeReadAvg.IsSet, d.TimeReadAvg.Value)
	buf.EncKVOptDouble("diskTimeReadLast", d.TimeReadLast.IsSet, d.TimeReadLast.Value)
	buf.EncKVOptDouble("diskTimeReadMax", d.TimeReadMax.IsSet, d.TimeReadMax.Value)
	buf.EncKVOptDouble("diskTimeReadMin", d.TimeReadMin.IsSet, d.TimeReadMin.Value)
	buf.EncKVOptDouble("diskTimeWriteAvg", d.TimeWriteAvg.IsSet, d.TimeWriteAvg.Value)
	buf.EncKVOptDouble("diskTimeWriteLast", d.TimeWriteLast.IsSet, d.TimeWriteLast.Value)
	buf.EncKVOptDouble("diskTimeWriteMax", d.TimeWriteMax.IsSet, d.TimeWriteMax.Value)
	buf.EncKVOptDouble("diskTimeWriteMin", d.TimeWriteMin.IsSet, d.TimeWriteMin.Value)
}

func (m *Measurement) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &m.hdr, func() {
		buf.OpenNamedObject("measurementsForVfScalingFields")
		buf.EncKVInt("measurementInterval", m.IntervalSeconds)

		m.AdditionalFields.EncodeOpt(buf, "additionalFields")

		buf.EncKVOptInt("concurrentSessions", m.ConcurrentSessions.IsSet, m.ConcurrentSessions.Value)
		buf.EncKVOptInt("configuredEntities", m.ConfiguredEntities.IsSet, m.ConfiguredEntities.Value)

		if ok := buf.OpenOptNamedList("cpuUsageArray"); ok {
			for i := range m.CPUUsage {
				c := &m.CPUUsage[i]
				if buf.SuppressNVPair("cpuUsageArray", c.CPUIdentifier) {
					continue
				}
				buf.OpenObject()
				buf.EncKVString("cpuIdentifier", c.CPUIdentifier)
				buf.EncKVOptDouble("cpuIdle", c.Idle.IsSet, c.Idle.Value)
				buf.EncKVOptDouble("cpuUsageInterrupt", c.UsageInterrupt.IsSet, c.UsageInterrupt.Value)
				buf.EncKVOptDouble("cpuUsageNice", c.UsageNice.IsSet, c.UsageNice.Value)
				buf.EncKVOptDouble("cpuUsageSoftIrq", c.UsageSoftIRQ.IsSet, c.UsageSoftIRQ.Value)
				buf.EncKVOptDouble("cpuUsageSteal", c.UsageSteal.IsSet, c.UsageSteal.Value)
				buf.EncKVOptDouble("cpuUsageSystem", c.UsageSystem.IsSet, c.UsageSystem.Value)
				buf.EncKVOptDouble("cpuUsageUser", c.UsageUser.IsSet, c.UsageUser.Value)
				buf.EncKVOptDouble("cpuWait", c.Wait.IsSet, c.Wait.Value)
				buf.EncKVDouble("percentUsage", c.PercentUsage)
				buf.CloseObject()
			}
			buf.CloseOpt()
		}

		if ok := buf.OpenOptNamedList("diskUsageArray"); ok {
			for i := range m.DiskUsage {
				d := &m.DiskUsage[i]
				if buf.SuppressNVPair("diskUsageArray", d.Identifier) {
					continue
				}
				buf.OpenObject()
				encodeDiskUse(buf, d)
				buf.CloseObject()
			}
			buf.CloseOpt()
		}

		if ok := buf.OpenOptNamedList("filesystemUsageArray"); ok {
			for _, fu := range m.FilesystemUsage {
				if buf.SuppressNVPair("filesystemUsageArray", fu.FilesystemName) {
					continue
				}
				buf.OpenObject()
				buf.EncKVString("filesystemName", fu.FilesystemName)
				buf.EncKVDouble("blockConfigured", fu.BlockConfigured)
				buf.EncKVDouble("blockIops", fu.BlockIops)
				buf.EncKVDouble("blockUsed", fu.BlockUsed)
				buf.EncKVDouble("ephemeralConfigured", fu.EphemeralConfigured)
				buf.EncKVDouble("ephemeralIops", fu.EphemeralIops)
				buf.EncKVDouble("ephemeralUsed", fu.EphemeralUsed)
				buf.CloseObject()
			}
			buf.CloseOpt()
		}

		if ok := buf.OpenOptNamedList("latencyDistribution"); ok {
			for _, lb := range m.LatencyBuckets {
				buf.OpenObject()
				buf.EncKVOptDouble("lowEndOfLatencyBucket", lb.LowEndMicrosec.IsSet, lb.LowEndMicrosec.Value)
				buf.EncKVOptDouble("highEndOfLatencyBucket", lb.HighEndMicrosec.IsSet, lb.HighEndMicrosec.Value)
				buf.EncKVInt("countsInTheBucket", lb.CountInBucket)
				buf.CloseObject()
			}
			buf.CloseOpt()
		}

		buf.EncKVOptDouble("meanRequestLatency", m.MeanRequestLatency.IsSet, m.MeanRequestLatency.Value)
		buf.EncKVOptInt("requestRate", m.RequestRate.IsSet, m.RequestRate.Value)

		if ok := buf.OpenOptNamedList("vNicUsageArray"); ok {
			for _, v := range m.VNicUsage {
				if buf.SuppressNVPair("vNicUsageArray", v.VNicID) {
					continue
				}
				buf.OpenObject()
				encodeVNicCounters(buf, "Accumulated", v.Accumulated)
				encodeVNicCounters(buf, "Delta", v.Delta)
				buf.EncKVString("valuesAreSuspect", strconv.FormatBool(v.ValuesAreSuspect))
				buf.EncKVString("vNicIdentifier", v.VNicID)
				buf.CloseObject()
			}
			buf.CloseOpt()
		}

		if ok := buf.OpenOptNamedList("memoryUsageArray"); ok {
			for i := range m.MemoryUsage {
				mu := &m.MemoryUsage[i]
				if buf.SuppressNVPair("memoryUsageArray", mu.VMIdentifier) {
					continue
				}
				buf.OpenObject()
				buf.EncKVDouble("memoryBuffered", mu.Buffered)
				buf.EncKVOptDouble("memoryCached", mu.Cached.IsSet, mu.Cached.Value)
				buf.EncKVOptDouble("memoryConfigured", mu.Configured.IsSet, mu.Configured.Value)
				buf.EncKVOptDouble("memoryFree", mu.Free.IsSet, mu.Free.Value)
				buf.EncKVOptDouble("memorySlabRecl", mu.SlabRecl.IsSet, mu.SlabRecl.Value)
				buf.EncKVOptDouble("memorySlabUnrecl", mu.SlabUnrecl.IsSet, mu.SlabUnrecl.Value)
				buf.EncKVOptDouble("memoryUsed", mu.Used.IsSet, mu.Used.Value)
				buf.EncKVString("vmIdentifier", mu.VMIdentifier)
				buf.CloseObject()
			}
			buf.CloseOpt()
		}

		buf.EncKVOptInt("numberOfMediaPortsInUse", m.MediaPortsInUse.IsSet, m.MediaPortsInUse.Value)
		buf.EncKVOptInt("vnfcScalingMetric", m.VNFCScalingMetric.IsSet, m.VNFCScalingMetric.Value)

		if m.hasErrors {
			if buf.OpenOptNamedObject("errors") {
				buf.EncKVInt("receiveDiscards", m.Errors.ReceiveDiscards)
				buf.EncKVInt("receiveErrors", m.Errors.ReceiveErrors)
				buf.EncKVInt("transmitDiscards", m.Errors.TransmitDiscards)
				buf.EncKVInt("transmitErrors", m.Errors.TransmitErrors)
				buf.CloseOpt()
			}
		}

		if ok := buf.OpenOptNamedList("featureUsageArray"); ok {
			for _, f := range m.FeatureUsage {
				if buf.SuppressNVPair("featureUsageArray", f.FeatureIdentifier) {
					continue
				}
				buf.OpenObject()
				buf.EncKVString("featureIdentifier", f.FeatureIdentifier)
				buf.EncKVInt("featureUtilization", f.FeatureUtilization)
				buf.CloseObject()
			}
			buf.CloseOpt()
		}

		if ok := buf.OpenOptNamedList("codecUsageArray"); ok {
			for _, c := range m.CodecUsage {
				if buf.SuppressNVPair("codecUsageArray", c.CodecIdentifier) {
					continue
				}
				buf.OpenObject()
				buf.EncKVString("codecIdentifier", c.CodecIdentifier)
				buf.EncKVInt("numberInUse", c.NumberInUse)
				buf.CloseObject()
			}
			buf.CloseOpt()
		}

		if ok := buf.OpenOptNamedList("additionalMeasurements"); ok {
			for _, g := range m.CustomGroups {
				if buf.SuppressNVPair("additionalMeasurements", g.Name) {
					continue
				}
				buf.OpenObject()
				buf.EncKVString("name", g.Name)
				g.Fields.EncodeOpt(buf, "arrayOfFields")
				buf.CloseObject()
			}
			buf.CloseOpt()
		}

		buf.EncVersion("measurementsForVfScalingVersion", measurementMajorVersion, measurementMinorVersion)
		buf.CloseObject()
	})
}
