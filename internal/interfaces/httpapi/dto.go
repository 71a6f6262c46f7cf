package httpapi

import (
	"time"

	"github.com/riskibarqy/ft5-league/internal/domain/headtohead"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/standing"
	"github.com/riskibarqy/ft5-league/internal/usecase"
)

type seasonsDTO struct {
	ActiveSeason int       `json:"active_season"`
	Seasons      []int     `json:"seasons"`
	LoadedAt     time.Time `json:"loaded_at"`
}

type playerRefDTO struct {
	Key    string `json:"key"`
	Known  bool   `json:"known"`
	Avatar string `json:"avatar"`
}

type profileDTO struct {
	Key           string   `json:"key"`
	Known         bool     `json:"known"`
	Avatar        string   `json:"avatar"`
	Characters    []string `json:"characters"`
	FightcadeID   string   `json:"fightcade_id,omitempty"`
	FightcadeLink string   `json:"fightcade_link,omitempty"`
	WhatsAppLink  string   `json:"whatsapp_link,omitempty"`
	Availability  string   `json:"availability,omitempty"`
}

type matchDTO struct {
	ID      string       `json:"id"`
	P1      playerRefDTO `json:"p1"`
	P2      playerRefDTO `json:"p2"`
	State   string       `json:"state"`
	Score   string       `json:"score,omitempty"`
	Replay  string       `json:"replay,omitempty"`
	Outcome string       `json:"outcome,omitempty"`
}

type roundDTO struct {
	Number     int        `json:"number"`
	StartDate  string     `json:"start_date,omitempty"`
	EndDate    string     `json:"end_date,omitempty"`
	RangeLabel string     `json:"range_label,omitempty"`
	Previous   int        `json:"previous"`
	Next       int        `json:"next"`
	Matches    []matchDTO `json:"matches"`
}

type standingDTO struct {
	Position  int          `json:"position"`
	Player    playerRefDTO `json:"player"`
	Tier      string       `json:"tier,omitempty"`
	Points    int          `json:"points"`
	Played    int          `json:"played"`
	Won       int          `json:"won"`
	Lost      int          `json:"lost"`
	MatchDiff string       `json:"match_diff"`
	GamesWon  int          `json:"games_won"`
	GamesLost int          `json:"games_lost"`
	GamesDiff string       `json:"games_diff"`
}

type homeDTO struct {
	ActiveSeason   int           `json:"active_season"`
	Season         int           `json:"season"`
	IsActive       bool          `json:"is_active"`
	Seasons        []int         `json:"seasons"`
	Today          string        `json:"today"`
	Rounds         []int         `json:"rounds"`
	RequestedRound int           `json:"requested_round"`
	RoundFound     bool          `json:"round_found"`
	Round          *roundDTO     `json:"round,omitempty"`
	Standings      []standingDTO `json:"standings"`
}

type ratioDTO struct {
	Won     int  `json:"won"`
	Lost    int  `json:"lost"`
	WinPct  int  `json:"win_pct"`
	LossPct int  `json:"loss_pct"`
	HasData bool `json:"has_data"`
}

type seasonSummaryDTO struct {
	Season   int         `json:"season"`
	Standing standingDTO `json:"standing"`
	FT5      ratioDTO    `json:"ft5"`
	Games    ratioDTO    `json:"games"`
}

type headToHeadEntryDTO struct {
	Season  int    `json:"season"`
	Round   int    `json:"round"`
	MatchID string `json:"match_id"`
	Score   string `json:"score"`
	Replay  string `json:"replay,omitempty"`
	Outcome string `json:"outcome,omitempty"`
}

type headToHeadDTO struct {
	Season    int                  `json:"season"`
	Played    int                  `json:"played"`
	Won       int                  `json:"won"`
	Lost      int                  `json:"lost"`
	GamesWon  int                  `json:"games_won"`
	GamesLost int                  `json:"games_lost"`
	Entries   []headToHeadEntryDTO `json:"entries"`
	Latest    *headToHeadEntryDTO  `json:"latest,omitempty"`
}

type nextMatchDTO struct {
	Round           int               `json:"round"`
	StartDate       string            `json:"start_date,omitempty"`
	EndDate         string            `json:"end_date,omitempty"`
	RangeLabel      string            `json:"range_label,omitempty"`
	Match           matchDTO          `json:"match"`
	Opponent        *profileDTO       `json:"opponent,omitempty"`
	OpponentSummary *seasonSummaryDTO `json:"opponent_summary,omitempty"`
	HeadToHead      []headToHeadDTO   `json:"head_to_head"`
	Totals          headToHeadDTO     `json:"totals"`
}

type scheduleEntryDTO struct {
	Round      int      `json:"round"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	RangeLabel string   `json:"range_label,omitempty"`
	Match      matchDTO `json:"match"`
}

type playerDTO struct {
	ActiveSeason int                `json:"active_season"`
	Today        string             `json:"today"`
	Profile      profileDTO         `json:"profile"`
	Summary      *seasonSummaryDTO  `json:"summary,omitempty"`
	Next         *nextMatchDTO      `json:"next,omitempty"`
	Schedule     []scheduleEntryDTO `json:"schedule"`
}

type versusDTO struct {
	ActiveSeason int             `json:"active_season"`
	Season       int             `json:"season"`
	IsActive     bool            `json:"is_active"`
	Player       playerRefDTO    `json:"player"`
	Opponent     playerRefDTO    `json:"opponent"`
	SeasonRecord headToHeadDTO   `json:"season_record"`
	AllSeasons   []headToHeadDTO `json:"all_seasons"`
	Totals       headToHeadDTO   `json:"totals"`
}

func homeToDTO(view usecase.HomeView, caps clientCapabilities) homeDTO {
	out := homeDTO{
		ActiveSeason:   view.ActiveSeason,
		Season:         view.Season,
		IsActive:       view.IsActive,
		Seasons:        nonNilInts(view.Seasons),
		Today:          view.Today.Format(schedule.DateLayout),
		Rounds:         nonNilInts(view.Rounds),
		RequestedRound: view.RequestedRound,
		RoundFound:     view.Round != nil,
		Standings:      make([]standingDTO, 0, len(view.Standings)),
	}
	if view.Round != nil {
		round := roundToDTO(*view.Round, caps)
		out.Round = &round
	}
	for _, item := range view.Standings {
		out.Standings = append(out.Standings, standingToDTO(item))
	}
	return out
}

func playerToDTO(view usecase.PlayerView, caps clientCapabilities) playerDTO {
	out := playerDTO{
		ActiveSeason: view.ActiveSeason,
		Today:        view.Today.Format(schedule.DateLayout),
		Profile:      profileToDTO(view.Profile),
		Summary:      summaryToDTO(view.Summary),
		Schedule:     make([]scheduleEntryDTO, 0, len(view.Schedule)),
	}
	for _, item := range view.Schedule {
		out.Schedule = append(out.Schedule, scheduleEntryDTO{
			Round:      item.Round,
			StartDate:  item.StartDate,
			EndDate:    item.EndDate,
			RangeLabel: item.RangeLabel,
			Match:      matchToDTO(item.Match, caps),
		})
	}

	if next := view.Next; next != nil {
		dto := &nextMatchDTO{
			Round:           next.Round,
			StartDate:       next.StartDate,
			EndDate:         next.EndDate,
			RangeLabel:      next.RangeLabel,
			Match:           matchToDTO(next.Match, caps),
			OpponentSummary: summaryToDTO(next.OpponentSummary),
			HeadToHead:      headToHeadListToDTO(next.HeadToHead, caps),
			Totals:          headToHeadToDTO(next.Totals, caps),
		}
		if next.Opponent.Key != "" {
			opponent := profileToDTO(next.Opponent)
			dto.Opponent = &opponent
		}
		out.Next = dto
	}

	return out
}

func versusToDTO(view usecase.VersusView, caps clientCapabilities) versusDTO {
	return versusDTO{
		ActiveSeason: view.ActiveSeason,
		Season:       view.Season,
		IsActive:     view.IsActive,
		Player:       playerRefToDTO(view.Player),
		Opponent:     playerRefToDTO(view.Opponent),
		SeasonRecord: headToHeadToDTO(view.SeasonRecord, caps),
		AllSeasons:   headToHeadListToDTO(view.AllSeasons, caps),
		Totals:       headToHeadToDTO(view.Totals, caps),
	}
}

func roundToDTO(view usecase.RoundView, caps clientCapabilities) roundDTO {
	out := roundDTO{
		Number:     view.Number,
		StartDate:  view.StartDate,
		EndDate:    view.EndDate,
		RangeLabel: view.RangeLabel,
		Previous:   view.Previous,
		Next:       view.Next,
		Matches:    make([]matchDTO, 0, len(view.Matches)),
	}
	for _, item := range view.Matches {
		out.Matches = append(out.Matches, matchToDTO(item, caps))
	}
	return out
}

// matchToDTO drops the replay URL for clients that must not receive replay links.
func matchToDTO(item usecase.MatchLine, caps clientCapabilities) matchDTO {
	out := matchDTO{
		ID:      item.ID,
		P1:      playerRefToDTO(item.P1),
		P2:      playerRefToDTO(item.P2),
		State:   string(item.State),
		Score:   item.Score,
		Outcome: string(item.Outcome),
	}
	if caps.ReplayLinks {
		out.Replay = item.Replay
	}
	return out
}

func playerRefToDTO(ref usecase.PlayerRef) playerRefDTO {
	return playerRefDTO{
		Key:    ref.Key,
		Known:  ref.Known,
		Avatar: ref.Avatar,
	}
}

func profileToDTO(profile usecase.Profile) profileDTO {
	characters := profile.Characters
	if characters == nil {
		characters = []string{}
	}
	return profileDTO{
		Key:           profile.Key,
		Known:         profile.Known,
		Avatar:        profile.Avatar,
		Characters:    characters,
		FightcadeID:   profile.FightcadeID,
		FightcadeLink: profile.FightcadeLink,
		WhatsAppLink:  profile.WhatsAppLink,
		Availability:  profile.Availability,
	}
}

func standingToDTO(line usecase.StandingLine) standingDTO {
	return standingDTO{
		Position:  line.Position,
		Player:    playerRefToDTO(line.Player),
		Tier:      string(line.Tier),
		Points:    line.Points,
		Played:    line.Played,
		Won:       line.Won,
		Lost:      line.Lost,
		MatchDiff: line.MatchDiff,
		GamesWon:  line.GamesWon,
		GamesLost: line.GamesLost,
		GamesDiff: line.GamesDiff,
	}
}

func summaryToDTO(summary *usecase.SeasonSummary) *seasonSummaryDTO {
	if summary == nil {
		return nil
	}
	return &seasonSummaryDTO{
		Season:   summary.Season,
		Standing: standingToDTO(summary.Line),
		FT5:      ratioToDTO(summary.FT5),
		Games:    ratioToDTO(summary.Games),
	}
}

func ratioToDTO(ratio standing.Ratio) ratioDTO {
	return ratioDTO{
		Won:     ratio.Won,
		Lost:    ratio.Lost,
		WinPct:  ratio.WinPct,
		LossPct: ratio.LossPct,
		HasData: ratio.HasData,
	}
}

func headToHeadListToDTO(records []headtohead.Record, caps clientCapabilities) []headToHeadDTO {
	out := make([]headToHeadDTO, 0, len(records))
	for _, item := range records {
		out = append(out, headToHeadToDTO(item, caps))
	}
	return out
}

func headToHeadToDTO(record headtohead.Record, caps clientCapabilities) headToHeadDTO {
	out := headToHeadDTO{
		Season:    record.Season,
		Played:    record.Played,
		Won:       record.Won,
		Lost:      record.Lost,
		GamesWon:  record.GamesWon,
		GamesLost: record.GamesLost,
		Entries:   make([]headToHeadEntryDTO, 0, len(record.Entries)),
	}
	for _, item := range record.Entries {
		out.Entries = append(out.Entries, headToHeadEntryToDTO(item, caps))
	}
	if record.Latest != nil {
		latest := headToHeadEntryToDTO(*record.Latest, caps)
		out.Latest = &latest
	}
	return out
}

func headToHeadEntryToDTO(entry headtohead.Entry, caps clientCapabilities) headToHeadEntryDTO {
	out := headToHeadEntryDTO{
		Season:  entry.Season,
		Round:   entry.Round,
		MatchID: entry.MatchID,
		Score:   entry.Score,
		Outcome: string(entry.Outcome),
	}
	if caps.ReplayLinks {
		out.Replay = entry.Replay
	}
	return out
}

func nonNilInts(values []int) []int {
	if values == nil {
		return []int{}
	}
	return values
}
