package models

// ChapterInput is what the overlay knows about a broadcast chapter. Name is a
// pointer so an absent name can be told apart from an empty one.
type ChapterInput struct {
	URL       string  `json:"url"`
	Name      *string `json:"name,omitempty"`
	PGN       string  `json:"pgn"`
	ElapsedMS int64   `json:"elapsed_ms"`
}

// Chapter is the display-ready view of a chapter.
type Chapter struct {
	GameID     string `json:"game_id,omitempty"`
	Name       string `json:"name"`
	ECOCode    string `json:"eco_code,omitempty"`
	White      string `json:"white,omitempty"`
	Black      string `json:"black,omitempty"`
	WhiteClock string `json:"white_clock,omitempty"`
	BlackClock string `json:"black_clock,omitempty"`
	Elapsed    string `json:"elapsed,omitempty"`
}
