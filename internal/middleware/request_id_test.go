package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"finance-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) run(incoming string) (string, string, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(TraceIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var fromEcho, fromRequest string
	handler := RequestID()(func(c echo.Context) error {
		fromEcho = GetTraceID(c)
		fromRequest = services.TraceIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	s.Require().NoError(handler(c))

	return fromEcho, fromRequest, rec
}

func (s *RequestIDTestSuite) TestGeneratesTraceID() {
	fromEcho, fromRequest, rec := s.run("")

	_, err := uuid.Parse(fromEcho)
	s.NoError(err)
	s.Equal(fromEcho, fromRequest)
	s.Equal(fromEcho, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestPropagatesIncomingTraceID() {
	fromEcho, fromRequest, rec := s.run("upstream-trace-42")

	s.Equal("upstream-trace-42", fromEcho)
	s.Equal("upstream-trace-42", fromRequest)
	s.Equal("upstream-trace-42", rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestUniquePerRequest() {
	first, _, _ := s.run("")
	second, _, _ := s.run("")

	s.NotEqual(first, second)
}

func (s *RequestIDTestSuite) TestGetTraceID_Missing() {
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	s.Empty(GetTraceID(c))

	c.Set(TraceIDContextKey, 42)
	s.Empty(GetTraceID(c))
}
