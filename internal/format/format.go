// Package format holds the display helpers used by the broadcast overlay:
// clock strings, chapter names and lichess game IDs.
package format

import (
	stderrors "errors"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/vytor/overlayfmt/internal/errors"
)

// NoGame is shown in place of an empty chapter name. Lichess leaves the
// opening empty when a game is aborted.
const NoGame = "(No game)"

const staffordGambit = "Stafford Gambit"

// ErrInvalidURLFormat is wrapped by the error GetGameIDFromURL returns when
// the URL has no recognizable game segment.
var ErrInvalidURLFormat = stderrors.New("invalid URL format")

var (
	leadingZerosRe = regexp.MustCompile(`^0+:?`)
	sideSuffixRe   = regexp.MustCompile(`/(white|black)$`)
	gameURLRe      = regexp.MustCompile(`lichess\.org/([a-zA-Z0-9]{8,12})/?`)
)

// FormatTimestamp renders the UTC time of day of t as a clock string. The
// longest run of leading zeros is stripped together with one following colon,
// so 01:00:00 becomes "1:00:00" and 00:01:00 becomes "01:00".
func FormatTimestamp(t time.Time) string {
	return leadingZerosRe.ReplaceAllString(t.UTC().Format("15:04:05"), "")
}

// MaxElapsedMS is the largest millisecond count that fits in a time.Duration.
const MaxElapsedMS = math.MaxInt64 / int64(time.Millisecond)

// FormatDuration formats an elapsed duration as a clock string by measuring
// it from the Unix epoch. Negative durations are shown as zero and durations
// of a day or more wrap around.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return FormatTimestamp(time.Unix(0, 0).Add(d))
}

// FormatChapterName returns name, or NoGame when it is empty.
func FormatChapterName(name string) string {
	if name == "" {
		return NoGame
	}
	return name
}

// FormatOptionalChapterName is FormatChapterName for a name that may be absent.
func FormatOptionalChapterName(name *string) string {
	if name == nil {
		return NoGame
	}
	return FormatChapterName(*name)
}

// RenameOpeningStaffordGambit replaces any chapter mentioning the Stafford
// Gambit with its shouted form.
func RenameOpeningStaffordGambit(chapter string) string {
	if strings.Contains(chapter, staffordGambit) {
		return "STAFFORD GAMBIT"
	}
	return chapter
}

// GetGameIDFromURL extracts the 8-character lichess game ID from url. A
// trailing /white or /black is ignored and longer tokens are truncated.
func GetGameIDFromURL(url string) (string, error) {
	url = sideSuffixRe.ReplaceAllString(url, "")
	m := gameURLRe.FindStringSubmatch(url)
	if len(m) != 2 {
		return "", errors.NewInvalidFormatError("no lichess game ID in URL", ErrInvalidURLFormat)
	}
	return m[1][:8], nil
}
