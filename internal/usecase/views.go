package usecase

import (
	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/standing"
)

// PlayerRef is the short identity shown next to a match or table row. Known is
// false for keys missing from the roster.
type PlayerRef struct {
	Key    string
	Known  bool
	Avatar string
}

// Profile is the full roster identity of a player.
type Profile struct {
	PlayerRef
	Characters    []string
	FightcadeID   string
	FightcadeLink string
	WhatsAppLink  string
	Availability  string
}

// MatchLine is one match in calendar slot order. Replay is always carried; the
// presentation layer decides whether to link it.
type MatchLine struct {
	ID      string
	P1      PlayerRef
	P2      PlayerRef
	State   schedule.State
	Score   string
	Replay  string
	Outcome schedule.Outcome
}

// RoundView is one round with its matches and wrap-around neighbours.
type RoundView struct {
	Number     int
	StartDate  string
	EndDate    string
	RangeLabel string
	Previous   int
	Next       int
	Matches    []MatchLine
}

// StandingLine is one ranked row with display-ready differentials.
type StandingLine struct {
	Position  int
	Player    PlayerRef
	Tier      standing.Tier
	Points    int
	Played    int
	Won       int
	Lost      int
	MatchDiff string
	GamesWon  int
	GamesLost int
	GamesDiff string
}

type identityResolver struct {
	players player.Directory
	images  player.ImagePaths
}

func (r identityResolver) ref(key string) PlayerRef {
	item, ok := r.players.Lookup(key)
	return PlayerRef{
		Key:    key,
		Known:  ok,
		Avatar: r.images.Avatar(item, ok),
	}
}

func (r identityResolver) profile(key string) Profile {
	item, ok := r.players.Lookup(key)
	out := Profile{
		PlayerRef: PlayerRef{
			Key:    key,
			Known:  ok,
			Avatar: r.images.Avatar(item, ok),
		},
		Characters: []string{},
	}
	if !ok {
		return out
	}

	out.Characters = r.images.CharacterIcons(item)
	out.FightcadeID = item.FightcadeID
	out.FightcadeLink = item.FightcadeLink
	out.WhatsAppLink = item.WhatsAppLink
	out.Availability = item.Availability
	return out
}

// matchLine renders a classified match. Outcome is filled from viewer's side
// when viewer takes part in the match.
func (r identityResolver) matchLine(fixture schedule.Fixture, viewer string) MatchLine {
	m := fixture.Match
	return MatchLine{
		ID:      m.ID,
		P1:      r.ref(m.P1),
		P2:      r.ref(m.P2),
		State:   fixture.State,
		Score:   m.ScoreLine(),
		Replay:  m.Replay,
		Outcome: m.OutcomeFor(viewer),
	}
}

func (r identityResolver) standingLine(row standing.Row) StandingLine {
	return StandingLine{
		Position:  row.Position,
		Player:    r.ref(row.PlayerKey),
		Tier:      standing.TierOf(row.Position),
		Points:    row.Points,
		Played:    row.Played,
		Won:       row.Won,
		Lost:      row.Lost,
		MatchDiff: standing.Signed(row.MatchDiff),
		GamesWon:  row.GamesWon,
		GamesLost: row.GamesLost,
		GamesDiff: standing.Signed(row.GamesDiff),
	}
}
