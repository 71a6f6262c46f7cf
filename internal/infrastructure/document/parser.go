package document

import (
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/standing"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
)

const dateTag = "datetime=2006-01-02"

// Report counts what the Parser did with one document.
type Report struct {
	Document string
	Rows     int
	Accepted int
	Skipped  int
}

// Calendar is the typed content of the calendar document.
type Calendar struct {
	Marker  *int
	Seasons []int
	Matches []schedule.Match
	Report  Report
}

// Standings is the typed content of the standings document.
type Standings struct {
	Marker  *int
	Seasons []int
	Rows    []standing.Row
	Report  Report
}

type playerRecord struct {
	Key           string `validate:"required"`
	Avatar        string
	Character1    string
	Character2    string
	FightcadeID   string
	FightcadeLink string
	WhatsAppLink  string
	Availability  string
}

type matchRecord struct {
	Season    *int `validate:"required"`
	Round     *int `validate:"required"`
	StartDate string
	EndDate   string
	ID        string
	P1        string
	P2        string
	Score1    *int
	Score2    *int
	Replay    string
}

type standingRecord struct {
	Season    *int   `validate:"required"`
	PlayerKey string `validate:"required"`
	Position  int    `validate:"gte=0"`
	Points    int
	Played    int
	Won       int
	Lost      int
	MatchDiff int
	GamesWon  int
	GamesLost int
	GamesDiff int
}

// Parser turns decoded documents into typed domain rows. Rows that cannot be
// typed are skipped and counted, they never fail the document.
type Parser struct {
	validator *validator.Validate
	logger    *logging.Logger
}

func NewParser(logger *logging.Logger) *Parser {
	if logger == nil {
		logger = logging.Default()
	}
	return &Parser{
		validator: validator.New(),
		logger:    logger,
	}
}

func (p *Parser) ParsePlayers(doc any) ([]player.Player, Report) {
	rows := StripSentinel(doc)
	report := Report{Document: "players", Rows: len(rows)}
	out := make([]player.Player, 0, len(rows))

	for _, raw := range rows {
		src, ok := raw.(map[string]any)
		if !ok {
			report.Skipped++
			continue
		}
		record := playerRecord{
			Key:           getString(src, "jugador"),
			Avatar:        getString(src, "avatar"),
			Character1:    getString(src, "personaje1_img"),
			Character2:    getString(src, "personaje2_img"),
			FightcadeID:   getID(src, "fightcade_id"),
			FightcadeLink: getString(src, "fightcade_link"),
			WhatsAppLink:  getString(src, "whatsapp_link"),
			Availability:  getString(src, "disponibilidad"),
		}
		if err := p.validator.Struct(record); err != nil {
			report.Skipped++
			continue
		}
		out = append(out, player.Player(record))
	}

	report.Accepted = len(out)
	p.warnSkipped(report)
	return out, report
}

func (p *Parser) ParseCalendar(doc any) Calendar {
	rows := StripSentinel(doc)
	calendar := Calendar{
		Report:  Report{Document: "calendar", Rows: len(rows)},
		Matches: make([]schedule.Match, 0, len(rows)),
	}
	if marker, ok := ActiveSeasonMarker(doc); ok {
		calendar.Marker = &marker
	}

	for _, raw := range rows {
		src, ok := raw.(map[string]any)
		if !ok {
			calendar.Report.Skipped++
			continue
		}

		record := matchRecord{
			Season:    optionalInt(src, "temporada"),
			Round:     optionalInt(src, "jornada"),
			StartDate: p.date(getString(src, "fecha_inicio")),
			EndDate:   p.date(getString(src, "fecha_fin")),
			ID:        getID(src, "id_partido"),
			P1:        getString(src, "p1"),
			P2:        getString(src, "p2"),
			Score1:    score(src, "marcadorp1"),
			Score2:    score(src, "marcadorp2"),
			Replay:    getString(src, "replay"),
		}
		if record.Season != nil {
			calendar.Seasons = append(calendar.Seasons, *record.Season)
		}
		if err := p.validator.Struct(record); err != nil {
			calendar.Report.Skipped++
			continue
		}

		calendar.Matches = append(calendar.Matches, schedule.Match{
			ID:        record.ID,
			Season:    *record.Season,
			Round:     *record.Round,
			StartDate: record.StartDate,
			EndDate:   record.EndDate,
			P1:        record.P1,
			P2:        record.P2,
			Score1:    record.Score1,
			Score2:    record.Score2,
			Replay:    record.Replay,
		})
	}

	calendar.Report.Accepted = len(calendar.Matches)
	p.warnSkipped(calendar.Report)
	return calendar
}

func (p *Parser) ParseStandings(doc any) Standings {
	rows := StripSentinel(doc)
	standings := Standings{
		Report: Report{Document: "standings", Rows: len(rows)},
		Rows:   make([]standing.Row, 0, len(rows)),
	}
	if marker, ok := ActiveSeasonMarker(doc); ok {
		standings.Marker = &marker
	}

	for _, raw := range rows {
		src, ok := raw.(map[string]any)
		if !ok {
			standings.Report.Skipped++
			continue
		}

		record := standingRecord{
			Season:    optionalInt(src, "temporada"),
			PlayerKey: getString(src, "jugador"),
			Position:  getInt(src, "posicion"),
			Points:    getInt(src, "puntos"),
			Played:    getInt(src, "pj"),
			Won:       getInt(src, "pg"),
			Lost:      getInt(src, "pp"),
			MatchDiff: getInt(src, "dif_p"),
			GamesWon:  getInt(src, "cg"),
			GamesLost: getInt(src, "cp"),
			GamesDiff: getInt(src, "dif_c"),
		}
		if record.Season != nil {
			standings.Seasons = append(standings.Seasons, *record.Season)
		}
		if record.Position < 0 {
			record.Position = 0
		}
		if err := p.validator.Struct(record); err != nil {
			standings.Report.Skipped++
			continue
		}

		standings.Rows = append(standings.Rows, standing.Row{
			Season:    *record.Season,
			PlayerKey: record.PlayerKey,
			Position:  record.Position,
			Points:    record.Points,
			Played:    record.Played,
			Won:       record.Won,
			Lost:      record.Lost,
			MatchDiff: record.MatchDiff,
			GamesWon:  record.GamesWon,
			GamesLost: record.GamesLost,
			GamesDiff: record.GamesDiff,
		})
	}

	standings.Report.Accepted = len(standings.Rows)
	p.warnSkipped(standings.Report)
	return standings
}

// score is present whenever the raw value converts to a finite number,
// negative and fractional counts included.
func score(src map[string]any, key string) *int {
	value, ok := truncatedIntOf(src[key])
	if !ok {
		return nil
	}
	return &value
}

// date keeps a YYYY-MM-DD value and blanks anything else.
func (p *Parser) date(value string) string {
	if value == "" {
		return ""
	}
	if err := p.validator.Var(value, dateTag); err != nil {
		return ""
	}
	return value
}

func (p *Parser) warnSkipped(report Report) {
	if report.Skipped == 0 {
		return
	}
	p.logger.Warn("skipped malformed league rows",
		"document", report.Document,
		"rows", report.Rows,
		"skipped", report.Skipped,
	)
}
