package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rupeeflow/internal/shared/auth"
)

func TestAuth(t *testing.T) {
	jwt := auth.NewJWT("test-secret")
	validToken, _ := jwt.Generate("user-1", "alice")
	expiredJWT := auth.NewJWT("other-secret")
	foreignToken, _ := expiredJWT.Generate("user-1", "alice")

	tests := []struct {
		name           string
		setupRequest   func(r *http.Request)
		expectedStatus int
		expectedUser   bool
	}{
		{
			name: "Valid Token in Cookie",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: validToken})
			},
			expectedStatus: http.StatusOK,
			expectedUser:   true,
		},
		{
			name: "Valid Token in Header",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+validToken)
			},
			expectedStatus: http.StatusOK,
			expectedUser:   true,
		},
		{
			name:           "No Token",
			setupRequest:   func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
			expectedUser:   false,
		},
		{
			name: "Invalid Token",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "invalid"})
			},
			expectedStatus: http.StatusUnauthorized,
			expectedUser:   false,
		},
		{
			name: "Token Signed With Different Secret",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: foreignToken})
			},
			expectedStatus: http.StatusUnauthorized,
			expectedUser:   false,
		},
		{
			name: "Malformed Authorization Header",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic abc")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedUser:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID, ok := r.Context().Value(UserIDKey).(string)
				if !ok && tt.expectedUser {
					t.Error("Expected user ID in context, got none")
				}
				if ok && !tt.expectedUser {
					t.Error("Unexpected user ID in context")
				}
				if ok && userID != "user-1" {
					t.Errorf("Expected user ID user-1, got %s", userID)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := Auth(jwt)(nextHandler)

			req := httptest.NewRequest("GET", "/", nil)
			tt.setupRequest(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusUnauthorized {
				if !strings.Contains(rr.Body.String(), `"error"`) {
					t.Errorf("expected JSON error body, got %q", rr.Body.String())
				}
			}
		})
	}
}
