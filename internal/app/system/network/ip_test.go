package network

import (
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xRealIP    string
		remoteAddr string
		want       string
	}{
		{"forwarded single", "192.168.1.1", "", "10.0.0.1:12345", "192.168.1.1"},
		{"forwarded chain keeps first hop", "203.0.113.195, 70.41.3.18", "", "127.0.0.1:8080", "203.0.113.195"},
		{"forwarded trimmed", "  192.168.1.1  ", "", "10.0.0.1:12345", "192.168.1.1"},
		{"real ip", "", "192.168.1.2", "10.0.0.1:12345", "192.168.1.2"},
		{"forwarded beats real ip", "192.168.1.1", "10.0.0.2", "10.0.0.1:12345", "192.168.1.1"},
		{"remote addr port stripped", "", "", "127.0.0.1:54321", "127.0.0.1"},
		{"ipv6 remote addr", "", "", "[::1]:54321", "::1"},
		{"remote addr without port", "", "", "10.0.0.9", "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
