package api

import (
	"github.com/vytor/overlayfmt/internal/services"
)

// Server holds the dependencies shared by the HTTP handlers.
type Server struct {
	ChapterService services.ChapterService
	MaxPGNBytes    int64
}
