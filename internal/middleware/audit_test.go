package middleware

import (
	"strings"
	"testing"
)

func TestMaskSensitiveFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		leaked  []string
		visible []string
	}{
		{
			name:    "password masked",
			body:    `{"email":"a@b.com","password":"hunter22"}`,
			leaked:  []string{"hunter22"},
			visible: []string{"a@b.com"},
		},
		{
			name:   "refresh token masked",
			body:   `{"refreshToken":"abcdef0123456789"}`,
			leaked: []string{"abcdef0123456789"},
		},
		{
			name:   "new password masked",
			body:   `{"token":"reset-tok","newPassword":"s3cretpass"}`,
			leaked: []string{"s3cretpass", "reset-tok"},
		},
		{
			name:    "repeated key masks every occurrence",
			body:    `{"password":"first-pass","other":"x","password":"second-pass"}`,
			leaked:  []string{"first-pass", "second-pass"},
			visible: []string{"x"},
		},
		{
			name:   "sensitive key in nested objects",
			body:   `{"old":{"password":"old-pass"},"new":{"password":"new-pass"}}`,
			leaked: []string{"old-pass", "new-pass"},
		},
		{
			name:    "spacing after colon",
			body:    `{"password": "spaced-out"}`,
			leaked:  []string{"spaced-out"},
			visible: []string{"password"},
		},
		{
			name:    "no sensitive fields untouched",
			body:    `{"plate":"1234ABC","year":2019}`,
			visible: []string{"1234ABC", "2019"},
		},
		{
			name:    "malformed body passes through",
			body:    `not json at all`,
			visible: []string{"not json at all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked := maskSensitiveFields(tt.body)

			for _, secret := range tt.leaked {
				if strings.Contains(masked, secret) {
					t.Errorf("masked body still contains %q: %s", secret, masked)
				}
			}
			for _, keep := range tt.visible {
				if !strings.Contains(masked, keep) {
					t.Errorf("masked body lost %q: %s", keep, masked)
				}
			}
		})
	}
}

func TestRouteInfo(t *testing.T) {
	tests := []struct {
		fullPath string
		method   string
		module   string
		action   string
	}{
		{"/api/vehicles/:id", "PUT", "vehicles", "update"},
		{"/api/auth/login", "POST", "auth", "create"},
		{"/api/workshops/:id", "DELETE", "workshops", "delete"},
		{"/api/quotations/:id/accept", "POST", "quotations", "create"},
		{"", "POST", "unknown", "create"},
	}

	for _, tt := range tests {
		module, action := routeInfo(tt.fullPath, tt.method)
		if module != tt.module || action != tt.action {
			t.Errorf("routeInfo(%q, %q) = (%q, %q), expected (%q, %q)",
				tt.fullPath, tt.method, module, action, tt.module, tt.action)
		}
	}
}
