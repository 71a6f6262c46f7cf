package document

import (
	"context"
	"fmt"

	"github.com/riskibarqy/ft5-league/internal/platform/logging"
	"github.com/riskibarqy/ft5-league/internal/usecase"
)

// DatasetDecoder decodes and types the three league documents.
type DatasetDecoder struct {
	parser *Parser
}

func NewDatasetDecoder(logger *logging.Logger) *DatasetDecoder {
	return &DatasetDecoder{parser: NewParser(logger)}
}

func (d *DatasetDecoder) DecodeDataset(_ context.Context, raw usecase.RawDocuments) (usecase.Dataset, error) {
	docs := make(map[usecase.Document]any, len(raw))
	for _, name := range usecase.Documents() {
		payload, ok := raw[name]
		if !ok {
			return usecase.Dataset{}, fmt.Errorf("document %s is missing", name)
		}
		doc, err := Decode(payload)
		if err != nil {
			return usecase.Dataset{}, fmt.Errorf("document %s: %w", name, err)
		}
		docs[name] = doc
	}

	players, playersReport := d.parser.ParsePlayers(docs[usecase.DocumentPlayers])
	calendar := d.parser.ParseCalendar(docs[usecase.DocumentCalendar])
	standings := d.parser.ParseStandings(docs[usecase.DocumentStandings])

	return usecase.Dataset{
		Players:          players,
		Matches:          calendar.Matches,
		Standings:        standings.Rows,
		CalendarMarker:   calendar.Marker,
		StandingsMarker:  standings.Marker,
		CalendarSeasons:  calendar.Seasons,
		StandingsSeasons: standings.Seasons,
		Reports: []usecase.IngestReport{
			toIngestReport(usecase.DocumentPlayers, playersReport),
			toIngestReport(usecase.DocumentCalendar, calendar.Report),
			toIngestReport(usecase.DocumentStandings, standings.Report),
		},
	}, nil
}

func toIngestReport(name usecase.Document, report Report) usecase.IngestReport {
	return usecase.IngestReport{
		Document: name,
		Rows:     report.Rows,
		Accepted: report.Accepted,
		Skipped:  report.Skipped,
	}
}
