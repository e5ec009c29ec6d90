package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MiddlewareSuite struct {
	suite.Suite
	buf    *bytes.Buffer
	logger *slog.Logger
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	s.logger = slog.New(slog.NewJSONHandler(s.buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (s *MiddlewareSuite) lastLine() map[string]any {
	lines := bytes.Split(bytes.TrimSpace(s.buf.Bytes()), []byte("\n"))
	s.Require().NotEmpty(lines)
	var entry map[string]any
	s.Require().NoError(json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func fixedID(*http.Request) string { return "req-1" }

func (s *MiddlewareSuite) TestLoggingLevelFollowsStatus() {
	cases := map[int]string{
		http.StatusOK:                  "INFO",
		http.StatusNotFound:            "WARN",
		http.StatusInternalServerError: "ERROR",
	}
	for status, level := range cases {
		h := Logging(s.logger, fixedID)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("body"))
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

		entry := s.lastLine()
		s.Equal(level, entry["level"])
		s.Equal(float64(status), entry["status"])
		s.Equal(float64(4), entry["size"])
		s.Equal("req-1", entry["request_id"])
	}
}

func (s *MiddlewareSuite) TestLoggingDefaultsToOK() {
	h := Logging(s.logger, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entry := s.lastLine()
	s.Equal(float64(http.StatusOK), entry["status"])
	s.NotContains(entry, "request_id")
}

func (s *MiddlewareSuite) TestRecoveryCallsHandler() {
	var recovered any
	handler := func(w http.ResponseWriter, _ *http.Request, err any) {
		recovered = err
		w.WriteHeader(http.StatusTeapot)
	}
	h := Recovery(s.logger, handler, fixedID)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/boom", nil))

	s.Equal(http.StatusTeapot, rr.Code)
	s.Equal("boom", recovered)
	entry := s.lastLine()
	s.Equal("panic recovered", entry["msg"])
	s.Equal("req-1", entry["request_id"])
}
