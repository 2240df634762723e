package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/overlayfmt/internal/api"
	"github.com/vytor/overlayfmt/internal/errors"
	"github.com/vytor/overlayfmt/internal/models"
	"github.com/vytor/overlayfmt/internal/services"
	"github.com/vytor/overlayfmt/internal/testutil/mocks"
)

type HandlersSuite struct {
	suite.Suite
	chapters *mocks.MockChapterService
	handler  http.Handler
}

func (s *HandlersSuite) SetupTest() {
	s.chapters = &mocks.MockChapterService{}
	srv := &api.Server{ChapterService: s.chapters, MaxPGNBytes: 4096}
	s.handler = srv.Routes()
}

func (s *HandlersSuite) TearDownTest() {
	s.chapters.AssertExpectations(s.T())
}

func (s *HandlersSuite) do(method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *HandlersSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *HandlersSuite) errorCode(rec *httptest.ResponseRecorder) string {
	body := s.decode(rec)
	errBody, ok := body["error"].(map[string]any)
	s.Require().True(ok, "expected error envelope, got %v", body)
	return errBody["code"].(string)
}

func (s *HandlersSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", nil)

	s.Assert().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal("OK", rec.Body.String())
	s.Assert().NotEmpty(rec.Header().Get("X-Request-ID"))
	s.Assert().Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func (s *HandlersSuite) TestClock_At() {
	rec := s.do(http.MethodGet, "/api/clock?at="+url.QueryEscape("2000-01-01T01:00:00Z"), nil)

	s.Assert().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal("1:00:00", s.decode(rec)["clock"])
}

func (s *HandlersSuite) TestClock_ElapsedMS() {
	rec := s.do(http.MethodGet, "/api/clock?elapsed_ms=754000", nil)

	s.Assert().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal("12:34", s.decode(rec)["clock"])
}

func (s *HandlersSuite) TestClock_BadInput() {
	for _, target := range []string{"/api/clock", "/api/clock?at=yesterday", "/api/clock?elapsed_ms=soon"} {
		rec := s.do(http.MethodGet, target, nil)

		s.Assert().Equal(http.StatusBadRequest, rec.Code, target)
		s.Assert().Equal(errors.ErrCodeBadRequest, s.errorCode(rec), target)
	}
}

func (s *HandlersSuite) TestClock_ElapsedMSOutOfRange() {
	for _, ms := range []string{"9223372036854775", "9223372036854776", "-9223372036854776"} {
		rec := s.do(http.MethodGet, "/api/clock?elapsed_ms="+ms, nil)

		s.Assert().Equal(http.StatusBadRequest, rec.Code, ms)
		s.Assert().Equal(errors.ErrCodeBadRequest, s.errorCode(rec), ms)
	}
}

func (s *HandlersSuite) TestClock_ElapsedMSAtLimit() {
	rec := s.do(http.MethodGet, "/api/clock?elapsed_ms=9223372036854", nil)

	s.Assert().Equal(http.StatusOK, rec.Code)
}

func (s *HandlersSuite) TestGameID() {
	rec := s.do(http.MethodGet, "/api/game-id?url="+url.QueryEscape("https://lichess.org/45qeL6U8/white"), nil)

	s.Assert().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal("45qeL6U8", s.decode(rec)["game_id"])
}

func (s *HandlersSuite) TestGameID_InvalidFormat() {
	rec := s.do(http.MethodGet, "/api/game-id?url="+url.QueryEscape("not a url"), nil)

	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal(errors.ErrCodeInvalidFormat, s.errorCode(rec))
}

func (s *HandlersSuite) TestChapterName() {
	tests := []struct {
		target   string
		expected string
	}{
		{"/api/chapter-name", "(No game)"},
		{"/api/chapter-name?name=", "(No game)"},
		{"/api/chapter-name?name=" + url.QueryEscape("Queen's Pawn Game"), "Queen's Pawn Game"},
		{"/api/chapter-name?name=" + url.QueryEscape("Russian Game: Stafford Gambit"), "STAFFORD GAMBIT"},
	}

	for _, tt := range tests {
		rec := s.do(http.MethodGet, tt.target, nil)

		s.Assert().Equal(http.StatusOK, rec.Code, tt.target)
		s.Assert().Equal(tt.expected, s.decode(rec)["name"], tt.target)
	}
}

func (s *HandlersSuite) TestDescribeChapter() {
	input := models.ChapterInput{URL: "https://lichess.org/45qeL6U8", PGN: "1. e4 *"}
	s.chapters.On("Describe", mock.Anything, input).Return(&models.Chapter{
		GameID: "45qeL6U8",
		Name:   "STAFFORD GAMBIT",
	}, nil).Once()

	rec := s.do(http.MethodPost, "/api/chapters", strings.NewReader(`{"url":"https://lichess.org/45qeL6U8","pgn":"1. e4 *"}`))

	s.Assert().Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Assert().Equal("45qeL6U8", body["game_id"])
	s.Assert().Equal("STAFFORD GAMBIT", body["name"])
}

func (s *HandlersSuite) TestDescribeChapter_ServiceError() {
	s.chapters.On("Describe", mock.Anything, mock.Anything).
		Return(nil, errors.NewInvalidFormatError("invalid URL format", nil)).Once()

	rec := s.do(http.MethodPost, "/api/chapters", strings.NewReader(`{"url":"nope"}`))

	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal(errors.ErrCodeInvalidFormat, s.errorCode(rec))
}

func (s *HandlersSuite) TestDescribeChapter_BadJSON() {
	rec := s.do(http.MethodPost, "/api/chapters", strings.NewReader(`{"url":`))

	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal(errors.ErrCodeBadRequest, s.errorCode(rec))
}

func (s *HandlersSuite) TestDescribeChapter_BodyTooLarge() {
	big := `{"pgn":"` + strings.Repeat("e4 ", 4096) + `"}`

	rec := s.do(http.MethodPost, "/api/chapters", strings.NewReader(big))

	s.Assert().Equal(http.StatusRequestEntityTooLarge, rec.Code)
	s.Assert().Equal(errors.ErrCodePayloadTooLarge, s.errorCode(rec))
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}

// The real service behind the router, end to end.
func TestDescribeChapter_WithRealService(t *testing.T) {
	srv := &api.Server{ChapterService: services.NewChapterService(nil)}
	body := `{"pgn":"[Site \"https://lichess.org/45qeL6U8\"]\n[Opening \"Russian Game: Stafford Gambit\"]\n\n1. e4 { [%clk 0:03:00] } 1... e5 { [%clk 0:02:57] } *","elapsed_ms":3723000}`

	req := httptest.NewRequest(http.MethodPost, "/api/chapters", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var chapter models.Chapter
	if err := json.Unmarshal(rec.Body.Bytes(), &chapter); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := models.Chapter{
		GameID:     "45qeL6U8",
		Name:       "STAFFORD GAMBIT",
		WhiteClock: "03:00",
		BlackClock: "02:57",
		Elapsed:    "1:02:03",
	}
	if chapter != want {
		t.Errorf("chapter = %+v, want %+v", chapter, want)
	}
}
