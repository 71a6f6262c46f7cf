package player

// Player is one roster entry keyed by its league handle.
type Player struct {
	Key           string
	Avatar        string
	Character1    string
	Character2    string
	FightcadeID   string
	FightcadeLink string
	WhatsAppLink  string
	Availability  string
}

// Characters returns the non-empty character icon references in roster order.
func (p Player) Characters() []string {
	out := make([]string, 0, 2)
	for _, ref := range []string{p.Character1, p.Character2} {
		if ref != "" {
			out = append(out, ref)
		}
	}
	return out
}

// Directory maps player keys to roster entries. Keys are case-sensitive.
type Directory struct {
	byKey map[string]Player
	order []string
}

// NewDirectory indexes players by key. A repeated key replaces the earlier entry.
func NewDirectory(players []Player) Directory {
	byKey := make(map[string]Player, len(players))
	order := make([]string, 0, len(players))
	for _, item := range players {
		if item.Key == "" {
			continue
		}
		if _, exists := byKey[item.Key]; !exists {
			order = append(order, item.Key)
		}
		byKey[item.Key] = item
	}

	return Directory{byKey: byKey, order: order}
}

func (d Directory) Lookup(key string) (Player, bool) {
	if key == "" {
		return Player{}, false
	}
	item, ok := d.byKey[key]
	return item, ok
}

func (d Directory) Len() int {
	return len(d.byKey)
}

// Keys returns player keys in first-seen roster order.
func (d Directory) Keys() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}
