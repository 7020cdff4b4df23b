package sim

import (
	"fmt"
	"strings"

	"lebdeal/internal/domain"
)

var suitLetters = map[byte]int32{
	'd': domain.SuitDiamond,
	'c': domain.SuitClub,
	'h': domain.SuitHeart,
	's': domain.SuitSpade,
}

var rankTokens = map[string]int32{
	"3": 0, "4": 1, "5": 2, "6": 3, "7": 4, "8": 5, "9": 6, "10": 7,
	"j": domain.RankJack, "q": domain.RankQueen, "k": domain.RankKing,
	"a": domain.RankAce, "2": domain.RankTwo,
}

// ParseCard reads the rank+suit notation the engine renders, e.g. "3d", "10h"
// or "Ks". Case-insensitive.
func ParseCard(token string) (domain.Card, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if len(t) < 2 {
		return domain.Card{}, fmt.Errorf("bad card %q", token)
	}
	suit, ok := suitLetters[t[len(t)-1]]
	if !ok {
		return domain.Card{}, fmt.Errorf("bad suit in %q", token)
	}
	rank, ok := rankTokens[t[:len(t)-1]]
	if !ok {
		return domain.Card{}, fmt.Errorf("bad rank in %q", token)
	}
	return domain.Card{Rank: rank, Suit: suit}, nil
}

// ParseAction turns one input line into an action: "pass" (or "p"), or a
// whitespace-separated card list like "3d 3h".
func ParseAction(line string) (domain.Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 1 {
		switch strings.ToLower(fields[0]) {
		case "pass", "p":
			return domain.PassAction(), nil
		}
	}
	cards := make([]domain.Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return domain.Action{}, err
		}
		cards = append(cards, c)
	}
	return domain.PlayAction(cards...), nil
}
