package model

import (
	"fmt"
	"strconv"
	"strings"
)

// releaseDateUnknown is the catalog's placeholder for an unannounced date.
const releaseDateUnknown = 99999999

// Book is a catalog record. Search results carry a subset of the fields;
// Fetch returns all of them.
type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	TitleOrig     string `json:"title_orig"`
	ReleaseDate   int    `json:"c_release_date"`
	Lang          string `json:"lang"`
	ImageFilename string `json:"image_filename"`
	Description   string `json:"description"`
}

// DisplayTitle returns the title, falling back to a placeholder.
func (b Book) DisplayTitle() string {
	if strings.TrimSpace(b.Title) == "" {
		return "Unknown Title"
	}
	return b.Title
}

// FormattedReleaseDate renders the yyyymmdd integer as yyyy-mm-dd. It returns
// an empty string when the date is absent or malformed.
func (b Book) FormattedReleaseDate() string {
	if b.ReleaseDate == releaseDateUnknown {
		return "TBA"
	}
	s := strconv.Itoa(b.ReleaseDate)
	if b.ReleaseDate <= 0 || len(s) != 8 {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", s[:4], s[4:6], s[6:8])
}
