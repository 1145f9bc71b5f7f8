package model

// RouterStatus holds the router-level facts of one successful fetch. A
// snapshot is immutable once produced; each successful scrape replaces the
// previous one wholesale.
type RouterStatus struct {
	WANIPv4  string `json:"wan_ipv4"`
	LANIPv4  string `json:"lan_ipv4"`
	ConnType string `json:"conn_type"`

	CPUUsage float64 `json:"cpu_usage"`
	MemUsage float64 `json:"mem_usage"`

	ClientsTotal      int `json:"clients_total"`
	WiFiClientsTotal  int `json:"wifi_clients_total"`
	WiredTotal        int `json:"wired_total"`
	GuestClientsTotal int `json:"guest_clients_total"`
	IoTClientsTotal   int `json:"iot_clients_total"`

	// the 2.4 GHz radio exists on every supported model, the other bands
	// only on routers that have them
	WiFi2GEnable  bool  `json:"wifi_2g_enable"`
	WiFi5GEnable  *bool `json:"wifi_5g_enable"`
	WiFi6GEnable  *bool `json:"wifi_6g_enable"`
	Guest2GEnable bool  `json:"guest_2g_enable"`
	Guest5GEnable *bool `json:"guest_5g_enable"`
	Guest6GEnable *bool `json:"guest_6g_enable"`
	IoT2GEnable   *bool `json:"iot_2g_enable"`
	IoT5GEnable   *bool `json:"iot_5g_enable"`
	IoT6GEnable   *bool `json:"iot_6g_enable"`
}

// Normalize rescales device-reported values at the parse boundary.
// Firmwares report CPU/memory usage either as 0..1 or as 0..100.
func (s *RouterStatus) Normalize() {
	s.CPUUsage = NormalizeRatio(s.CPUUsage)
	s.MemUsage = NormalizeRatio(s.MemUsage)
}

// NormalizeRatio maps a device-reported usage value onto 0..1. Values above
// 1 are percentages, negative values clamp to 0.
func NormalizeRatio(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return v / 100
	default:
		return v
	}
}
