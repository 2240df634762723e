package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/overlayfmt/internal/errors"
	"github.com/vytor/overlayfmt/internal/format"
	"github.com/vytor/overlayfmt/internal/logger"
	"github.com/vytor/overlayfmt/internal/models"
	"github.com/vytor/overlayfmt/internal/pgn"
)

// OpeningDetector names the opening played in a PGN movetext.
type OpeningDetector func(pgnText string) (eco, name string, err error)

// ChapterService turns raw chapter data into what the overlay displays.
type ChapterService interface {
	Describe(ctx context.Context, input models.ChapterInput) (*models.Chapter, error)
}

type chapterService struct {
	detectOpening OpeningDetector
}

// NewChapterService creates a new ChapterService. A nil detector uses the ECO book.
func NewChapterService(detect OpeningDetector) ChapterService {
	if detect == nil {
		detect = pgn.DetectOpening
	}
	return &chapterService{detectOpening: detect}
}

func (s *chapterService) Describe(ctx context.Context, input models.ChapterInput) (*models.Chapter, error) {
	log := logger.FromContext(ctx).WithPrefix("chapters")

	if strings.TrimSpace(input.URL) == "" && strings.TrimSpace(input.PGN) == "" {
		return nil, errors.NewValidationError("chapter", "url or pgn is required")
	}

	if input.ElapsedMS > format.MaxElapsedMS {
		return nil, errors.NewValidationError("elapsed_ms", "out of range")
	}

	headers := pgn.ParsePGNHeaders(input.PGN)
	chapter := &models.Chapter{
		ECOCode: headers["ECO"],
		White:   headers["White"],
		Black:   headers["Black"],
	}

	if input.URL != "" {
		id, err := format.GetGameIDFromURL(input.URL)
		if err != nil {
			log.Debug("rejecting chapter url %q", input.URL)
			return nil, err
		}
		chapter.GameID = id
	} else {
		chapter.GameID = gameIDFromHeaders(headers)
		if chapter.GameID == "" {
			log.Debug("no game id in pgn headers")
		}
	}

	name := input.Name
	if name == nil {
		name = s.openingName(log, input.PGN, headers, chapter)
	}
	chapter.Name = format.RenameOpeningStaffordGambit(format.FormatOptionalChapterName(name))

	if white, black, ok := pgn.LastClocks(input.PGN); ok {
		chapter.WhiteClock = format.FormatDuration(white)
		chapter.BlackClock = format.FormatDuration(black)
	}

	if input.ElapsedMS > 0 {
		chapter.Elapsed = format.FormatDuration(time.Duration(input.ElapsedMS) * time.Millisecond)
	}

	log.Debug("described chapter: game_id=%s, name=%s", chapter.GameID, chapter.Name)
	return chapter, nil
}

// openingName prefers the Opening tag and falls back to book detection. It
// returns nil when the chapter has no opening yet, which is how lichess
// reports an aborted game.
func (s *chapterService) openingName(log *logger.Logger, pgnText string, headers map[string]string, chapter *models.Chapter) *string {
	if name, ok := headers["Opening"]; ok {
		return &name
	}
	if !hasMoves(pgnText) {
		return nil
	}

	eco, name, err := s.detectOpening(pgnText)
	if err != nil {
		log.Warn("failed to detect opening: %v", err)
		return nil
	}
	if name == "" {
		return nil
	}
	if chapter.ECOCode == "" {
		chapter.ECOCode = eco
	}
	log.Debug("detected opening %s (%s)", name, eco)
	return &name
}

func gameIDFromHeaders(headers map[string]string) string {
	for _, key := range []string{"GameURL", "Site"} {
		if v := headers[key]; v != "" {
			if id, err := format.GetGameIDFromURL(v); err == nil {
				return id
			}
		}
	}
	return ""
}

func hasMoves(pgnText string) bool {
	for _, line := range strings.Split(pgnText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "[") && line != "*" {
			return true
		}
	}
	return false
}
