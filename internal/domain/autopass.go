package domain

// Unbeatable reports whether the standing combo provably cannot be beaten by
// any other seat. The decision uses only public bookkeeping: the candidate
// pool is the 52-card deck minus the played history minus the combo owner's
// remaining hand, which by the partition invariant is exactly the union of
// all opposing hands. When true, the auto-pass countdown may skip the
// remaining seats without peeking at anyone's cards.
func Unbeatable(table TableState) bool {
	if table.LastCombo == nil || table.LastSeat < 0 {
		return false
	}
	combo := *table.LastCombo
	cands := beatCandidates(table)

	switch combo.Size() {
	case 1:
		for _, c := range cands {
			if CardPower(c) > combo.Value {
				return false
			}
		}
		return true
	case 2:
		best, ok := bestSameRankValue(cands, 2)
		return !ok || best <= combo.Value
	case 3:
		best, ok := bestSameRankValue(cands, 3)
		return !ok || best <= combo.Value
	case 5:
		return fiveCardUnbeatable(combo, cands)
	}
	return false
}

func beatCandidates(table TableState) []Card {
	excluded := make(map[Card]bool, DeckSize)
	for _, c := range table.PlayedCards() {
		excluded[c] = true
	}
	for _, c := range table.Hands[table.LastSeat] {
		excluded[c] = true
	}
	var out []Card
	for _, c := range NewDeck() {
		if !excluded[c] {
			out = append(out, c)
		}
	}
	return out
}

func fiveCardUnbeatable(combo Combo, cands []Card) bool {
	tiers := []struct {
		tier int32
		best func([]Card) (int32, bool)
	}{
		{0, bestStraightValue},
		{1, bestFlushValue},
		{2, bestFullHouseValue},
		{3, bestQuadValue},
		{4, bestStraightFlushValue},
	}
	for _, t := range tiers {
		if t.tier < combo.tier() {
			continue
		}
		best, ok := t.best(cands)
		if !ok {
			continue
		}
		if t.tier > combo.tier() || best > combo.Value {
			return false
		}
	}
	return true
}

// bestSameRankValue returns the strongest comparison key of any n-of-a-kind
// formable from the candidates.
func bestSameRankValue(cands []Card, n int) (int32, bool) {
	byRank := groupByRank(cands)
	best, found := int32(-1), false
	for _, cards := range byRank {
		if len(cards) < n {
			continue
		}
		found = true
		for _, c := range cards {
			if CardPower(c) > best {
				best = CardPower(c)
			}
		}
	}
	return best, found
}

func bestStraightValue(cands []Card) (int32, bool) {
	byRank := groupByRank(cands)
	best, found := int32(-1), false
	for low := int32(0); low+4 <= 12; low++ {
		run := true
		for r := low; r <= low+4; r++ {
			if len(byRank[r]) == 0 {
				run = false
				break
			}
		}
		if !run {
			continue
		}
		found = true
		for _, c := range byRank[low+4] {
			if CardPower(c) > best {
				best = CardPower(c)
			}
		}
	}
	return best, found
}

func bestFlushValue(cands []Card) (int32, bool) {
	bySuit := groupBySuit(cands)
	best, found := int32(-1), false
	for _, cards := range bySuit {
		if len(cards) < 5 {
			continue
		}
		found = true
		for _, c := range cards {
			if CardPower(c) > best {
				best = CardPower(c)
			}
		}
	}
	return best, found
}

func bestFullHouseValue(cands []Card) (int32, bool) {
	byRank := groupByRank(cands)
	best, found := int32(-1), false
	for r, cards := range byRank {
		if len(cards) < 3 {
			continue
		}
		hasPair := false
		for other, otherCards := range byRank {
			if other != r && len(otherCards) >= 2 {
				hasPair = true
				break
			}
		}
		if !hasPair {
			continue
		}
		found = true
		for _, c := range cards {
			if CardPower(c) > best {
				best = CardPower(c)
			}
		}
	}
	return best, found
}

func bestQuadValue(cands []Card) (int32, bool) {
	byRank := groupByRank(cands)
	best, found := int32(-1), false
	for r, cards := range byRank {
		if len(cards) < 4 || len(cands) < 5 {
			continue
		}
		found = true
		if v := r*4 + SuitSpade; v > best {
			best = v
		}
	}
	return best, found
}

func bestStraightFlushValue(cands []Card) (int32, bool) {
	bySuit := groupBySuit(cands)
	best, found := int32(-1), false
	for suit, cards := range bySuit {
		present := make(map[int32]bool, len(cards))
		for _, c := range cards {
			present[c.Rank] = true
		}
		for low := int32(0); low+4 <= 12; low++ {
			run := true
			for r := low; r <= low+4; r++ {
				if !present[r] {
					run = false
					break
				}
			}
			if !run {
				continue
			}
			found = true
			if v := (low+4)*4 + suit; v > best {
				best = v
			}
		}
	}
	return best, found
}

func groupByRank(cards []Card) map[int32][]Card {
	out := make(map[int32][]Card)
	for _, c := range cards {
		out[c.Rank] = append(out[c.Rank], c)
	}
	return out
}

func groupBySuit(cards []Card) map[int32][]Card {
	out := make(map[int32][]Card)
	for _, c := range cards {
		out[c.Suit] = append(out[c.Suit], c)
	}
	return out
}
