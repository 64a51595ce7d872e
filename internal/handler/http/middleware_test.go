package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userHandler "github.com/WiMProject/backend-test/internal/handler/http"
)

func TestRequestID(t *testing.T) {
	testCases := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "Generated", incoming: "", keep: false},
		{name: "Reused", incoming: "abc-123", keep: true},
		{name: "AtLimit", incoming: strings.Repeat("r", userHandler.MaxRequestIDLength), keep: true},
		{name: "Oversized", incoming: strings.Repeat("r", userHandler.MaxRequestIDLength+1), keep: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			handler := userHandler.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.GetReqID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set(userHandler.RequestIDHeader, tc.incoming)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			returned := rr.Header().Get(userHandler.RequestIDHeader)
			assert.Equal(t, seen, returned)

			if tc.keep {
				assert.Equal(t, tc.incoming, returned)
				return
			}

			_, err := uuid.FromString(returned)
			require.NoError(t, err, "expected a generated uuid, got %q", returned)
		})
	}
}
