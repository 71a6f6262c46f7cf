package usecase

import (
	"context"

	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/standing"
)

// Document names one of the three league documents.
type Document string

const (
	DocumentPlayers   Document = "players"
	DocumentCalendar  Document = "calendar"
	DocumentStandings Document = "standings"
)

// Documents lists every document a load needs.
func Documents() []Document {
	return []Document{DocumentPlayers, DocumentCalendar, DocumentStandings}
}

// DocumentSource fetches the raw bytes of one document.
type DocumentSource interface {
	Fetch(ctx context.Context, doc Document) ([]byte, error)
}

// RawDocuments holds one fetched payload per document.
type RawDocuments map[Document][]byte

// DatasetDecoder turns raw documents into typed rows.
type DatasetDecoder interface {
	DecodeDataset(ctx context.Context, raw RawDocuments) (Dataset, error)
}

// IngestReport counts the rows seen, kept and skipped for one document.
type IngestReport struct {
	Document Document
	Rows     int
	Accepted int
	Skipped  int
}

// Dataset is the typed, season-tagged content of one load.
type Dataset struct {
	Players          []player.Player
	Matches          []schedule.Match
	Standings        []standing.Row
	CalendarMarker   *int
	StandingsMarker  *int
	CalendarSeasons  []int
	StandingsSeasons []int
	Reports          []IngestReport
}
