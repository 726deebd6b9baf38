package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicAuth(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		user, pass string
		setAuth    bool
		cfgPass    string
		wantStatus int
	}{
		{name: "valid", user: "admin", pass: "secret", setAuth: true, cfgPass: "secret", wantStatus: http.StatusNoContent},
		{name: "wrong password", user: "admin", pass: "nope", setAuth: true, cfgPass: "secret", wantStatus: http.StatusUnauthorized},
		{name: "no header", cfgPass: "secret", wantStatus: http.StatusUnauthorized},
		{name: "empty config locks", user: "admin", pass: "", setAuth: true, cfgPass: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := BasicAuth(log, "admin", tt.cfgPass)(ok)

			req := httptest.NewRequest(http.MethodDelete, "/api/reports/1", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")
			}
		})
	}
}
