package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionTypeLabel(t *testing.T) {
	tests := []struct {
		in   ConnectionType
		want string
	}{
		{ConnectionWiFi2G, "wifi_2g"},
		{ConnectionWiFi5G, "wifi_5g"},
		{ConnectionWiFi6G, "wifi_6g"},
		{ConnectionGuest2G, "guest_2g"},
		{ConnectionIoT5G, "iot_5g"},
		{ConnectionWired, "wired"},
		{ConnectionType(""), "unknown"},
		{ConnectionType("bluetooth"), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Label(), "label for %q", string(tt.in))
	}
}

func TestNormalizeRatio(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{45, 0.45},
		{100, 1},
		{0.45, 0.45},
		{1, 1},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeRatio(tt.in), 1e-9, "NormalizeRatio(%v)", tt.in)
	}
}

func TestRouterStatusNormalize(t *testing.T) {
	s := RouterStatus{CPUUsage: 45, MemUsage: 0.3}
	s.Normalize()
	assert.InDelta(t, 0.45, s.CPUUsage, 1e-9)
	assert.InDelta(t, 0.3, s.MemUsage, 1e-9)
}

func TestRouterStatusDecodeOptionalBands(t *testing.T) {
	var s RouterStatus
	err := json.Unmarshal([]byte(`{
		"wan_ipv4": "1.2.3.4",
		"wifi_2g_enable": true,
		"wifi_5g_enable": false
	}`), &s)
	require.NoError(t, err)

	assert.True(t, s.WiFi2GEnable)
	require.NotNil(t, s.WiFi5GEnable)
	assert.False(t, *s.WiFi5GEnable)
	assert.Nil(t, s.WiFi6GEnable, "band absent from the payload stays nil")
	assert.Nil(t, s.IoT2GEnable)
	assert.Zero(t, s.ClientsTotal)
	assert.Empty(t, s.LANIPv4)
}

func TestDeviceDecodeDefaults(t *testing.T) {
	var d Device
	err := json.Unmarshal([]byte(`{"mac": "AA:BB:CC:DD:EE:FF", "active": true}`), &d)
	require.NoError(t, err)

	assert.Equal(t, "AA:BB:CC:DD:EE:FF", d.MAC)
	assert.True(t, d.Active)
	assert.Zero(t, d.Signal)
	assert.Zero(t, d.PacketsSent)
	assert.Empty(t, d.Hostname)
	assert.Equal(t, "unknown", d.Type.Label())
}
