package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/vytor/overlayfmt/internal/errors"
	"github.com/vytor/overlayfmt/internal/format"
	"github.com/vytor/overlayfmt/internal/logger"
	"github.com/vytor/overlayfmt/internal/models"
)

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleClock formats either an absolute instant (?at=RFC3339) or an elapsed
// duration in milliseconds (?elapsed_ms=).
func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var clock string
	switch {
	case q.Get("at") != "":
		at, err := time.Parse(time.RFC3339Nano, q.Get("at"))
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("at must be an RFC 3339 timestamp"))
			return
		}
		clock = format.FormatTimestamp(at)
	case q.Get("elapsed_ms") != "":
		ms, err := strconv.ParseInt(q.Get("elapsed_ms"), 10, 64)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("elapsed_ms must be an integer"))
			return
		}
		if ms > format.MaxElapsedMS || ms < -format.MaxElapsedMS {
			handleError(w, r, errors.NewBadRequestError("elapsed_ms is out of range"))
			return
		}
		clock = format.FormatDuration(time.Duration(ms) * time.Millisecond)
	default:
		handleError(w, r, errors.NewBadRequestError("one of at or elapsed_ms is required"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clock": clock})
}

func (s *Server) handleGameID(w http.ResponseWriter, r *http.Request) {
	id, err := format.GetGameIDFromURL(r.URL.Query().Get("url"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"game_id": id})
}

// handleChapterName treats a missing name parameter as an absent name.
func (s *Server) handleChapterName(w http.ResponseWriter, r *http.Request) {
	var name *string
	if q := r.URL.Query(); q.Has("name") {
		v := q.Get("name")
		name = &v
	}
	formatted := format.RenameOpeningStaffordGambit(format.FormatOptionalChapterName(name))
	writeJSON(w, http.StatusOK, map[string]string{"name": formatted})
}

func (s *Server) handleDescribeChapter(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	body := http.MaxBytesReader(w, r.Body, s.maxPGNBytes())
	var input models.ChapterInput
	if err := json.NewDecoder(body).Decode(&input); err != nil {
		log.Debug("failed to decode chapter input: %v", err)
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			handleError(w, r, errors.NewPayloadTooLargeError(tooLarge.Limit))
			return
		}
		handleError(w, r, errors.NewBadRequestError("invalid chapter JSON"))
		return
	}

	chapter, err := s.ChapterService.Describe(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chapter)
}

func (s *Server) maxPGNBytes() int64 {
	if s.MaxPGNBytes > 0 {
		return s.MaxPGNBytes
	}
	return 1 << 20
}
