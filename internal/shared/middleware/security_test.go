package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHSTS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	HSTS(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("Strict-Transport-Security"); !strings.Contains(got, "max-age=31536000") {
		t.Errorf("expected HSTS header, got %q", got)
	}
}

func TestEnsureSecureCookie(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		want   []string
	}{
		{
			name:   "bare cookie gains all flags",
			cookie: "token=abc; Path=/",
			want:   []string{"Secure", "HttpOnly", "SameSite=None"},
		},
		{
			name:   "existing SameSite preserved",
			cookie: "token=abc; SameSite=None; Secure; HttpOnly",
			want:   []string{"SameSite=None"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ensureSecureCookie(tt.cookie)
			for _, attr := range tt.want {
				if !strings.Contains(got, attr) {
					t.Errorf("expected %q in %q", attr, got)
				}
			}
			if strings.Count(got, "SameSite") != 1 {
				t.Errorf("expected exactly one SameSite attribute in %q", got)
			}
		})
	}
}

func TestSecureCookies(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	SecureCookies(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rr.Header()["Set-Cookie"]
	if len(cookies) != 1 {
		t.Fatalf("expected 1 Set-Cookie header, got %d", len(cookies))
	}
	if !strings.Contains(cookies[0], "Secure") || !strings.Contains(cookies[0], "HttpOnly") {
		t.Errorf("expected secured cookie, got %q", cookies[0])
	}
}

func TestIsHostAllowed(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		allowedHosts []string
		want         bool
	}{
		{"empty allow-list allows anything", "anything.com", nil, true},
		{"exact match", "example.com", []string{"example.com"}, true},
		{"match ignoring port", "example.com:443", []string{"example.com"}, true},
		{"mismatch", "evil.com", []string{"example.com"}, false},
		{"case insensitive", "EXAMPLE.com", []string{"example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHostAllowed(tt.host, tt.allowedHosts); got != tt.want {
				t.Errorf("IsHostAllowed(%q, %v) = %v, want %v", tt.host, tt.allowedHosts, got, tt.want)
			}
		})
	}
}
