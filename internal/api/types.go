package api

import "time"

// Status is the server-computed liveness classification of a device.
// The server derives it from last_seen: active within 10 minutes, warning
// within an hour, inactive beyond that.
type Status string

const (
	StatusActive   Status = "active"
	StatusWarning  Status = "warning"
	StatusInactive Status = "inactive"
)

// Snapshot is one full pull of dashboard state from GET /api/dashboard/.
// It is treated as immutable: consumed by one reconciliation cycle, then
// discarded.
type Snapshot struct {
	Statistics     Statistics  `json:"statistics"`
	AggregateChart ChartSeries `json:"system_average_temperature_chart"`
	Devices        []Device    `json:"devices"`
}

// DeviceIDs returns the reconciliation keys of the snapshot's devices in
// wire order. The device's IP address is its stable identity.
func (s *Snapshot) DeviceIDs() []string {
	ids := make([]string, 0, len(s.Devices))
	for _, d := range s.Devices {
		ids = append(ids, d.IPAddress)
	}
	return ids
}

// Statistics holds the fleet-wide KPI values shown on the stats cards.
// RecentDOSIP is nil when no throttling event has been recorded.
type Statistics struct {
	TotalDevices    int     `json:"total_devices"`
	ActiveDevices   int     `json:"active_devices"`
	ReadingsLast24h int     `json:"readings_last_24h"`
	RecentDOSIP     *string `json:"recent_dos_ip"`
}

// Device is one roster entry. Two records with the same IPAddress in
// consecutive snapshots refer to the same logical device.
type Device struct {
	IPAddress     string   `json:"ip_address"`
	LastSeen      time.Time `json:"last_seen"`
	Status        Status   `json:"status"`
	LatestReading *Reading `json:"latest_reading"`
}

// Reading is a single temperature sample. Either channel may be absent.
type Reading struct {
	Timestamp      time.Time `json:"timestamp"`
	ContactTemp    *float64  `json:"contact_temp"`
	NonContactTemp *float64  `json:"non_contact_temp"`
}

// ChartSeries is the wire format of the fleet-average chart: parallel
// label/value arrays where a value may be null for an hour bucket with no
// usable readings.
type ChartSeries struct {
	Labels []time.Time `json:"labels"`
	Data   []*float64  `json:"data"`
}

// SeriesPoint is one concrete (timestamp, value) chart sample.
type SeriesPoint struct {
	Timestamp time.Time
	Value     float64
}

// Points pairs labels with values, dropping null values and any surplus
// entries when the wire arrays disagree in length. Absent values are
// filtered, never interpolated.
func (c ChartSeries) Points() []SeriesPoint {
	n := len(c.Labels)
	if len(c.Data) < n {
		n = len(c.Data)
	}
	pts := make([]SeriesPoint, 0, n)
	for i := 0; i < n; i++ {
		if c.Data[i] == nil {
			continue
		}
		pts = append(pts, SeriesPoint{Timestamp: c.Labels[i], Value: *c.Data[i]})
	}
	return pts
}

// SensorConfig is the fleet-wide sensor configuration from
// GET /api/sensor/config/. Period is the expected send cadence in seconds.
type SensorConfig struct {
	Period int `json:"period"`
}
