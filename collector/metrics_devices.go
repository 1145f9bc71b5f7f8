package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/swoga/tplink-exporter/model"
)

var deviceLabels = []string{"mac", "hostname", "ip", "connection_type"}

// AddMetricsDevices registers the per-device metrics. The packet counters
// are created fresh for this render and set once to the router-reported
// cumulative totals, so the exposition always carries the absolute values.
func AddMetricsDevices(registry prometheus.Registerer, devices []model.Device) {
	activeGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "device_active",
		Help: "Device active state (1 = active, 0 = inactive)",
	}, deviceLabels)
	registry.MustRegister(activeGaugeVec)

	signalGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "device_signal_dbm",
		Help: "Device WiFi signal strength in dBm",
	}, deviceLabels)
	registry.MustRegister(signalGaugeVec)

	downSpeedGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "device_download_speed_bytes",
		Help: "Device current download speed in bytes/s",
	}, deviceLabels)
	registry.MustRegister(downSpeedGaugeVec)

	upSpeedGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "device_upload_speed_bytes",
		Help: "Device current upload speed in bytes/s",
	}, deviceLabels)
	registry.MustRegister(upSpeedGaugeVec)

	packetsSentCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "device_packets_sent_total",
		Help: "Total packets sent by device",
	}, deviceLabels)
	registry.MustRegister(packetsSentCounterVec)

	packetsReceivedCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "device_packets_received_total",
		Help: "Total packets received by device",
	}, deviceLabels)
	registry.MustRegister(packetsReceivedCounterVec)

	for _, device := range devices {
		labels := deviceLabelValues(device)

		activeGaugeVec.WithLabelValues(labels...).Set(boolValue(device.Active))
		signalGaugeVec.WithLabelValues(labels...).Set(device.Signal)
		downSpeedGaugeVec.WithLabelValues(labels...).Set(device.DownSpeed)
		upSpeedGaugeVec.WithLabelValues(labels...).Set(device.UpSpeed)
		packetsSentCounterVec.WithLabelValues(labels...).Add(device.PacketsSent)
		packetsReceivedCounterVec.WithLabelValues(labels...).Add(device.PacketsReceived)
	}
}

func deviceLabelValues(device model.Device) []string {
	return []string{
		orUnknown(device.MAC),
		orUnknown(device.Hostname),
		orUnknown(device.IP),
		device.Type.Label(),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
