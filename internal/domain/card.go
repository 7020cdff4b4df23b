package domain

import (
	"fmt"
	"sort"
)

// Card is a single playing card. Rank uses Deal ordering: 3 is the lowest
// rank (0) and 2 the highest (12), with the ace second-highest (11).
type Card struct {
	Rank int32 `json:"rank"` // 0..12 (3=0, A=11, 2=12)
	Suit int32 `json:"suit"` // 0..3 (diamond=0, club=1, heart=2, spade=3)
}

const (
	SuitDiamond int32 = 0
	SuitClub    int32 = 1
	SuitHeart   int32 = 2
	SuitSpade   int32 = 3
)

const (
	RankThree int32 = 0
	RankTen   int32 = 7
	RankJack  int32 = 8
	RankQueen int32 = 9
	RankKing  int32 = 10
	RankAce   int32 = 11
	RankTwo   int32 = 12
)

// DeckSize is the full deck card count; every match partitions exactly this
// many cards across hands and played history.
const DeckSize = 52

// HandSize is the number of cards dealt to each seat.
const HandSize = 13

// OpeningCard must be part of the first play of every match.
var OpeningCard = Card{Rank: RankThree, Suit: SuitDiamond}

var rankNames = []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}
var suitNames = []string{"d", "c", "h", "s"}

// String renders a card as rank+suit, e.g. "3d" or "Kh".
func (c Card) String() string {
	if c.Rank < 0 || c.Rank > 12 || c.Suit < 0 || c.Suit > 3 {
		return fmt.Sprintf("?(%d,%d)", c.Rank, c.Suit)
	}
	return rankNames[c.Rank] + suitNames[c.Suit]
}

// CardPower is the total order over all 52 cards: rank first, then suit.
func CardPower(c Card) int32 {
	return c.Rank*4 + c.Suit
}

// NewDeck returns the ordered 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for r := int32(0); r <= 12; r++ {
		for s := int32(0); s <= 3; s++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// SortCards orders cards by ascending power in place.
func SortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return CardPower(cards[i]) < CardPower(cards[j])
	})
}

// ContainsCard reports whether the card appears in the slice.
func ContainsCard(cards []Card, target Card) bool {
	for _, c := range cards {
		if c == target {
			return true
		}
	}
	return false
}

// RemoveCards returns hand minus the given cards. Cards not present are
// ignored; ownership is checked by the validator before removal.
func RemoveCards(hand []Card, played []Card) []Card {
	out := append([]Card{}, hand...)
	for _, pc := range played {
		for i := 0; i < len(out); i++ {
			if out[i] == pc {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}
