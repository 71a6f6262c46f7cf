package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fixedIDGenerator struct {
	id  string
	err error
}

func (g fixedIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name      string
		incoming  string
		generator fixedIDGenerator
		want      string
	}{
		{name: "keeps caller id", incoming: "abc-123", generator: fixedIDGenerator{id: "generated"}, want: "abc-123"},
		{name: "generates when missing", generator: fixedIDGenerator{id: "generated"}, want: "generated"},
		{name: "replaces oversized id", incoming: strings.Repeat("x", 129), generator: fixedIDGenerator{id: "generated"}, want: "generated"},
		{name: "replaces unsafe id", incoming: "bad id\r\nX-Evil: 1", generator: fixedIDGenerator{id: "generated"}, want: "generated"},
		{name: "generator failure leaves id empty", generator: fixedIDGenerator{err: errors.New("entropy")}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = requestIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/home", nil)
			if tt.incoming != "" {
				req.Header.Set(requestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			RequestID(tt.generator, next).ServeHTTP(rec, req)

			if seen != tt.want {
				t.Fatalf("context request id=%q want=%q", seen, tt.want)
			}
			if got := rec.Header().Get(requestIDHeader); got != tt.want {
				t.Fatalf("response request id=%q want=%q", got, tt.want)
			}
		})
	}
}
