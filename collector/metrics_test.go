package collector

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/swoga/tplink-exporter/model"
)

func boolPtr(b bool) *bool { return &b }

func TestAddMetricsRouter(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	status := &model.RouterStatus{
		WANIPv4:          "203.0.113.5",
		LANIPv4:          "192.168.0.1",
		ConnType:         "dhcp",
		CPUUsage:         0.45,
		MemUsage:         0.3,
		ClientsTotal:     5,
		WiFiClientsTotal: 3,
		WiredTotal:       2,
	}
	AddMetricsRouter(prometheus.WrapRegistererWithPrefix("tplink_", registry), status)

	expected := `
# HELP tplink_router_info Router information
# TYPE tplink_router_info gauge
tplink_router_info{connection_type="dhcp",lan_ip="192.168.0.1",wan_ip="203.0.113.5"} 1
# HELP tplink_cpu_usage_ratio Router CPU usage (0-1)
# TYPE tplink_cpu_usage_ratio gauge
tplink_cpu_usage_ratio 0.45
# HELP tplink_memory_usage_ratio Router memory usage (0-1)
# TYPE tplink_memory_usage_ratio gauge
tplink_memory_usage_ratio 0.3
# HELP tplink_clients_total Total number of connected clients
# TYPE tplink_clients_total gauge
tplink_clients_total 5
# HELP tplink_wifi_clients_total Number of WiFi clients
# TYPE tplink_wifi_clients_total gauge
tplink_wifi_clients_total 3
# HELP tplink_wired_clients_total Number of wired clients
# TYPE tplink_wired_clients_total gauge
tplink_wired_clients_total 2
# HELP tplink_guest_clients_total Number of guest network clients
# TYPE tplink_guest_clients_total gauge
tplink_guest_clients_total 0
# HELP tplink_iot_clients_total Number of IoT network clients
# TYPE tplink_iot_clients_total gauge
tplink_iot_clients_total 0
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"tplink_router_info", "tplink_cpu_usage_ratio", "tplink_memory_usage_ratio",
		"tplink_clients_total", "tplink_wifi_clients_total", "tplink_wired_clients_total",
		"tplink_guest_clients_total", "tplink_iot_clients_total"))
}

func TestAddMetricsRouterEmptyInfoLabels(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	AddMetricsRouter(prometheus.WrapRegistererWithPrefix("tplink_", registry), &model.RouterStatus{})

	expected := `
# HELP tplink_router_info Router information
# TYPE tplink_router_info gauge
tplink_router_info{connection_type="",lan_ip="",wan_ip=""} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "tplink_router_info"))
}

func TestAddMetricsWiFiBands(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	status := &model.RouterStatus{
		WiFi2GEnable:  true,
		WiFi5GEnable:  boolPtr(true),
		Guest5GEnable: boolPtr(false),
		IoT2GEnable:   boolPtr(true),
	}
	AddMetricsRouter(prometheus.WrapRegistererWithPrefix("tplink_", registry), status)

	// Absent bands (6 GHz here) must not produce a row.
	expected := `
# HELP tplink_wifi_enabled WiFi network enabled state (1 = enabled, 0 = disabled)
# TYPE tplink_wifi_enabled gauge
tplink_wifi_enabled{band="2.4ghz",network_type="guest"} 0
tplink_wifi_enabled{band="2.4ghz",network_type="host"} 1
tplink_wifi_enabled{band="2.4ghz",network_type="iot"} 1
tplink_wifi_enabled{band="5ghz",network_type="guest"} 0
tplink_wifi_enabled{band="5ghz",network_type="host"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "tplink_wifi_enabled"))
}

func TestAddMetricsDevices(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	devices := []model.Device{
		{
			MAC: "AA:BB:CC:DD:EE:FF", Hostname: "laptop", IP: "192.168.0.10",
			Type: model.ConnectionWiFi5G, Active: true, Signal: -52,
			DownSpeed: 1024, UpSpeed: 256, PacketsSent: 12345, PacketsReceived: 67890,
		},
		{MAC: "11:22:33:44:55:66", Type: model.ConnectionWired},
	}
	AddMetricsDevices(prometheus.WrapRegistererWithPrefix("tplink_", registry), devices)

	// Unreported fields render as zeros with "unknown" label placeholders.
	expected := `
# HELP tplink_device_active Device active state (1 = active, 0 = inactive)
# TYPE tplink_device_active gauge
tplink_device_active{connection_type="wifi_5g",hostname="laptop",ip="192.168.0.10",mac="AA:BB:CC:DD:EE:FF"} 1
tplink_device_active{connection_type="wired",hostname="unknown",ip="unknown",mac="11:22:33:44:55:66"} 0
# HELP tplink_device_signal_dbm Device WiFi signal strength in dBm
# TYPE tplink_device_signal_dbm gauge
tplink_device_signal_dbm{connection_type="wifi_5g",hostname="laptop",ip="192.168.0.10",mac="AA:BB:CC:DD:EE:FF"} -52
tplink_device_signal_dbm{connection_type="wired",hostname="unknown",ip="unknown",mac="11:22:33:44:55:66"} 0
# HELP tplink_device_download_speed_bytes Device current download speed in bytes/s
# TYPE tplink_device_download_speed_bytes gauge
tplink_device_download_speed_bytes{connection_type="wifi_5g",hostname="laptop",ip="192.168.0.10",mac="AA:BB:CC:DD:EE:FF"} 1024
tplink_device_download_speed_bytes{connection_type="wired",hostname="unknown",ip="unknown",mac="11:22:33:44:55:66"} 0
# HELP tplink_device_packets_sent_total Total packets sent by device
# TYPE tplink_device_packets_sent_total counter
tplink_device_packets_sent_total{connection_type="wifi_5g",hostname="laptop",ip="192.168.0.10",mac="AA:BB:CC:DD:EE:FF"} 12345
tplink_device_packets_sent_total{connection_type="wired",hostname="unknown",ip="unknown",mac="11:22:33:44:55:66"} 0
# HELP tplink_device_packets_received_total Total packets received by device
# TYPE tplink_device_packets_received_total counter
tplink_device_packets_received_total{connection_type="wifi_5g",hostname="laptop",ip="192.168.0.10",mac="AA:BB:CC:DD:EE:FF"} 67890
tplink_device_packets_received_total{connection_type="wired",hostname="unknown",ip="unknown",mac="11:22:33:44:55:66"} 0
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"tplink_device_active", "tplink_device_signal_dbm", "tplink_device_download_speed_bytes",
		"tplink_device_packets_sent_total", "tplink_device_packets_received_total"))
}

// A fresh render after the router reports a higher total exposes exactly the
// new total, never the sum of renders.
func TestCountersAreAbsolute(t *testing.T) {
	render := func(sent float64) prometheus.Gatherer {
		registry := prometheus.NewPedanticRegistry()
		AddMetricsDevices(prometheus.WrapRegistererWithPrefix("tplink_", registry), []model.Device{
			{MAC: "AA:BB:CC:DD:EE:FF", Hostname: "laptop", IP: "192.168.0.10",
				Type: model.ConnectionWiFi5G, PacketsSent: sent},
		})
		return registry
	}

	render(12345)

	expected := `
# HELP tplink_device_packets_sent_total Total packets sent by device
# TYPE tplink_device_packets_sent_total counter
tplink_device_packets_sent_total{connection_type="wifi_5g",hostname="laptop",ip="192.168.0.10",mac="AA:BB:CC:DD:EE:FF"} 12400
`
	require.NoError(t, testutil.GatherAndCompare(render(12400), strings.NewReader(expected),
		"tplink_device_packets_sent_total"))
}

func TestAddMetricsOutcome(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	AddMetricsOutcome(prometheus.WrapRegistererWithPrefix("tplink_", registry), model.ScrapeOutcome{
		Success:  true,
		Duration: 1500 * time.Millisecond,
	})

	expected := `
# HELP tplink_scrape_success Whether the last scrape was successful (1 = success, 0 = failure)
# TYPE tplink_scrape_success gauge
tplink_scrape_success 1
# HELP tplink_scrape_duration_seconds Duration of the last scrape in seconds
# TYPE tplink_scrape_duration_seconds gauge
tplink_scrape_duration_seconds 1.5
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected)))
}
