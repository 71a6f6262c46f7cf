package standing

import (
	"math"
	"sort"
	"strconv"
)

// Row is one player's line in a season table. It is computed upstream and read-only here.
// Position 0 means the row carries no rank.
type Row struct {
	Season    int
	PlayerKey string
	Position  int
	Points    int
	Played    int
	Won       int
	Lost      int
	MatchDiff int
	GamesWon  int
	GamesLost int
	GamesDiff int
}

func (r Row) Ranked() bool {
	return r.Position > 0
}

// Tier classifies a rank for badge rendering.
type Tier string

const (
	TierNone Tier = ""
	TierTop1 Tier = "top1"
	TierTop8 Tier = "top8"
)

func TierOf(position int) Tier {
	switch {
	case position == 1:
		return TierTop1
	case position >= 2 && position <= 8:
		return TierTop8
	default:
		return TierNone
	}
}

// ForSeason keeps the rows tagged with season, preserving input order.
func ForSeason(rows []Row, season int) []Row {
	out := make([]Row, 0, len(rows))
	for _, item := range rows {
		if item.Season == season {
			out = append(out, item)
		}
	}
	return out
}

// Table returns the ranked rows ordered by position.
func Table(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, item := range rows {
		if item.Ranked() {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Find returns the first row for playerKey.
func Find(rows []Row, playerKey string) (Row, bool) {
	if playerKey == "" {
		return Row{}, false
	}
	for _, item := range rows {
		if item.PlayerKey == playerKey {
			return item, true
		}
	}
	return Row{}, false
}

// Ratio is a won/lost split rendered as whole percentages.
type Ratio struct {
	Won     int
	Lost    int
	WinPct  int
	LossPct int
	HasData bool
}

func RatioOf(won, lost int) Ratio {
	total := won + lost
	if total <= 0 {
		return Ratio{Won: won, Lost: lost}
	}
	winPct := int(math.Floor(float64(won)*100/float64(total) + 0.5))
	return Ratio{
		Won:     won,
		Lost:    lost,
		WinPct:  winPct,
		LossPct: 100 - winPct,
		HasData: true,
	}
}

// Summary is the player-page digest of a standing row.
type Summary struct {
	Row   Row
	Tier  Tier
	FT5   Ratio
	Games Ratio
}

func Summarize(row Row) Summary {
	return Summary{
		Row:   row,
		Tier:  TierOf(row.Position),
		FT5:   RatioOf(row.Won, row.Lost),
		Games: RatioOf(row.GamesWon, row.GamesLost),
	}
}

// Signed renders a differential with an explicit plus sign for positive values.
func Signed(value int) string {
	if value > 0 {
		return "+" + strconv.Itoa(value)
	}
	return strconv.Itoa(value)
}
