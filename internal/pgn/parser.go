package pgn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

var headerRe = regexp.MustCompile(`\[(\w+)\s+"([^"]+)"\]`)

// ParsePGNHeaders extracts PGN header tags into a map
func ParsePGNHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

var clockRe = regexp.MustCompile(`\[%clk\s+(\d+):(\d{1,2}):(\d{1,2})(?:\.\d+)?\]`)

// LastClocks returns the most recent mainline %clk annotation for each side.
// Clock comments inside variations are ignored. Mainline comments are
// attributed alternately to white and black in the order they appear, which
// holds for games that start from the initial position.
func LastClocks(pgn string) (white, black time.Duration, ok bool) {
	var haveWhite, haveBlack bool
	for i, m := range clockRe.FindAllStringSubmatch(mainline(movetext(pgn)), -1) {
		d := clockDuration(m[1], m[2], m[3])
		if i%2 == 0 {
			white, haveWhite = d, true
		} else {
			black, haveBlack = d, true
		}
	}
	return white, black, haveWhite || haveBlack
}

func clockDuration(h, m, s string) time.Duration {
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

// movetext drops the tag section so header values never look like comments.
func movetext(pgn string) string {
	var sb strings.Builder
	for _, line := range strings.Split(pgn, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "[") && headerRe.MatchString(line) {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// mainline drops every ( ... ) variation, nested ones included. Parentheses
// inside { } comments or after a ; line comment are plain text.
func mainline(text string) string {
	var sb strings.Builder
	depth := 0
	inComment, inLineComment := false, false
	for _, r := range text {
		switch {
		case inLineComment:
			if r == '\n' {
				inLineComment = false
			}
		case inComment:
			if r == '}' {
				inComment = false
			}
		case r == '{':
			inComment = true
		case r == ';':
			inLineComment = true
		case r == '(':
			depth++
			continue
		case r == ')':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// DetectOpening replays the game and looks its moves up in the ECO book.
// A game with no book match returns empty strings and a nil error.
func DetectOpening(pgn string) (eco, name string, err error) {
	pgnOpt, err := chess.PGN(strings.NewReader(pgn))
	if err != nil {
		return "", "", fmt.Errorf("parse pgn: %w", err)
	}
	game := chess.NewGame(pgnOpt)

	book := opening.NewBookECO()
	found := book.Find(game.Moves())
	if found == nil {
		return "", "", nil
	}
	return found.Code(), found.Title(), nil
}
