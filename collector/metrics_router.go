package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/swoga/tplink-exporter/model"
)

// AddMetricsRouter registers the router-level metrics on a per-render
// registry and sets them from the retained status.
func AddMetricsRouter(registry prometheus.Registerer, status *model.RouterStatus) {
	infoGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "router_info",
		Help: "Router information",
	}, []string{"wan_ip", "lan_ip", "connection_type"})
	registry.MustRegister(infoGaugeVec)
	infoGaugeVec.WithLabelValues(status.WANIPv4, status.LANIPv4, status.ConnType).Set(1)

	cpuGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cpu_usage_ratio",
		Help: "Router CPU usage (0-1)",
	})
	registry.MustRegister(cpuGauge)
	cpuGauge.Set(status.CPUUsage)

	memGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "memory_usage_ratio",
		Help: "Router memory usage (0-1)",
	})
	registry.MustRegister(memGauge)
	memGauge.Set(status.MemUsage)

	// client counts
	clientsGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "clients_total",
		Help: "Total number of connected clients",
	})
	registry.MustRegister(clientsGauge)
	clientsGauge.Set(float64(status.ClientsTotal))

	wifiClientsGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wifi_clients_total",
		Help: "Number of WiFi clients",
	})
	registry.MustRegister(wifiClientsGauge)
	wifiClientsGauge.Set(float64(status.WiFiClientsTotal))

	wiredClientsGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wired_clients_total",
		Help: "Number of wired clients",
	})
	registry.MustRegister(wiredClientsGauge)
	wiredClientsGauge.Set(float64(status.WiredTotal))

	guestClientsGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "guest_clients_total",
		Help: "Number of guest network clients",
	})
	registry.MustRegister(guestClientsGauge)
	guestClientsGauge.Set(float64(status.GuestClientsTotal))

	iotClientsGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "iot_clients_total",
		Help: "Number of IoT network clients",
	})
	registry.MustRegister(iotClientsGauge)
	iotClientsGauge.Set(float64(status.IoTClientsTotal))

	addMetricsWiFi(registry, status)
}

func addMetricsWiFi(registry prometheus.Registerer, status *model.RouterStatus) {
	wifiEnabledGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wifi_enabled",
		Help: "WiFi network enabled state (1 = enabled, 0 = disabled)",
	}, []string{"band", "network_type"})
	registry.MustRegister(wifiEnabledGaugeVec)

	set := func(band, network string, enabled bool) {
		wifiEnabledGaugeVec.WithLabelValues(band, network).Set(boolValue(enabled))
	}

	// every supported model has a 2.4 GHz radio, other bands only produce
	// a row when the router reports them
	set("2.4ghz", "host", status.WiFi2GEnable)
	if status.WiFi5GEnable != nil {
		set("5ghz", "host", *status.WiFi5GEnable)
	}
	if status.WiFi6GEnable != nil {
		set("6ghz", "host", *status.WiFi6GEnable)
	}

	set("2.4ghz", "guest", status.Guest2GEnable)
	if status.Guest5GEnable != nil {
		set("5ghz", "guest", *status.Guest5GEnable)
	}
	if status.Guest6GEnable != nil {
		set("6ghz", "guest", *status.Guest6GEnable)
	}

	if status.IoT2GEnable != nil {
		set("2.4ghz", "iot", *status.IoT2GEnable)
	}
	if status.IoT5GEnable != nil {
		set("5ghz", "iot", *status.IoT5GEnable)
	}
	if status.IoT6GEnable != nil {
		set("6ghz", "iot", *status.IoT6GEnable)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
