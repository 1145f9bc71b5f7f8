package model

// ConnectionType is the network a client is attached to, as reported by the
// router.
type ConnectionType string

const (
	ConnectionWiFi2G  ConnectionType = "wifi_2g"
	ConnectionWiFi5G  ConnectionType = "wifi_5g"
	ConnectionWiFi6G  ConnectionType = "wifi_6g"
	ConnectionGuest2G ConnectionType = "guest_2g"
	ConnectionGuest5G ConnectionType = "guest_5g"
	ConnectionGuest6G ConnectionType = "guest_6g"
	ConnectionIoT2G   ConnectionType = "iot_2g"
	ConnectionIoT5G   ConnectionType = "iot_5g"
	ConnectionIoT6G   ConnectionType = "iot_6g"
	ConnectionWired   ConnectionType = "wired"
	ConnectionUnknown ConnectionType = "unknown"
)

// Label returns the metric label value for t. Anything outside the known set,
// including an absent field, collapses to "unknown".
func (t ConnectionType) Label() string {
	switch t {
	case ConnectionWiFi2G, ConnectionWiFi5G, ConnectionWiFi6G,
		ConnectionGuest2G, ConnectionGuest5G, ConnectionGuest6G,
		ConnectionIoT2G, ConnectionIoT5G, ConnectionIoT6G,
		ConnectionWired:
		return string(t)
	default:
		return string(ConnectionUnknown)
	}
}

// Device is one client known to the router, keyed by MAC across scrapes.
// Fields the router does not report decode to their zero values; the
// collector substitutes label placeholders on emission. The full device set
// is replaced on every successful scrape.
type Device struct {
	MAC             string         `json:"mac"`
	Hostname        string         `json:"hostname"`
	IP              string         `json:"ip"`
	Type            ConnectionType `json:"conn_type"`
	Active          bool           `json:"active"`
	Signal          float64        `json:"signal"`
	DownSpeed       float64        `json:"down_speed"`
	UpSpeed         float64        `json:"up_speed"`
	PacketsSent     float64        `json:"packets_sent"`
	PacketsReceived float64        `json:"packets_received"`
}
