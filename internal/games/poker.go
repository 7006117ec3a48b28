package games

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// Hold'em hand categories, weakest first. The numeric order is the
// comparison order.
const (
	pokerHighCard = iota
	pokerPair
	pokerTwoPair
	pokerThreeOfAKind
	pokerStraight
	pokerFlush
	pokerFullHouse
	pokerFourOfAKind
	pokerStraightFlush
	pokerRoyalFlush
)

var pokerHandNames = map[int]string{
	pokerHighCard:      "HIGH_CARD",
	pokerPair:          "PAIR",
	pokerTwoPair:       "TWO_PAIR",
	pokerThreeOfAKind:  "THREE_OF_A_KIND",
	pokerStraight:      "STRAIGHT",
	pokerFlush:         "FLUSH",
	pokerFullHouse:     "FULL_HOUSE",
	pokerFourOfAKind:   "FOUR_OF_A_KIND",
	pokerStraightFlush: "STRAIGHT_FLUSH",
	pokerRoyalFlush:    "ROYAL_FLUSH",
}

// Bonus multiplier per winning hand category. A win pays the ante back
// plus ante times this figure, so a high-card win only returns the ante.
var pokerWinBonus = map[int]int64{
	pokerHighCard:      0,
	pokerPair:          1,
	pokerTwoPair:       2,
	pokerThreeOfAKind:  3,
	pokerStraight:      4,
	pokerFlush:         5,
	pokerFullHouse:     8,
	pokerFourOfAKind:   20,
	pokerStraightFlush: 50,
	pokerRoyalFlush:    100,
}

// Poker round outcomes.
const (
	PokerOutcomeWin  = "WIN"
	PokerOutcomeLose = "LOSE"
	PokerOutcomePush = "PUSH"
)

// PokerResult is a settled heads-up hold'em hand against the dealer.
type PokerResult struct {
	PlayerHole  []Card          `json:"player_hole"`
	DealerHole  []Card          `json:"dealer_hole"`
	Community   []Card          `json:"community"`
	PlayerHand  string          `json:"player_hand"`
	DealerHand  string          `json:"dealer_hand"`
	Outcome     string          `json:"outcome"`
	Ante        decimal.Decimal `json:"ante"`
	Payout      decimal.Decimal `json:"payout"`
	ServerSeed  string          `json:"server_seed"`
	ClientSeed  string          `json:"client_seed"`
	Nonce       uint64          `json:"nonce"`
}

// PlayPoker deals one heads-up hold'em hand. One shuffle at the round
// nonce fixes the whole board: deck positions 0-1 are the player's hole
// cards, 2-3 the dealer's, 4-8 the community. Both sides play their
// best five of seven.
func PlayPoker(seeds Seeds, nonce uint64, ante decimal.Decimal) (PokerResult, error) {
	if ante.IsNegative() {
		return PokerResult{}, fmt.Errorf("poker: negative ante %s: %w", ante, engine.ErrInvalidArgument)
	}

	deck := NewShuffledDeck(seeds, nonce)
	playerHole := []Card{deck.Cards[0], deck.Cards[1]}
	dealerHole := []Card{deck.Cards[2], deck.Cards[3]}
	community := append([]Card{}, deck.Cards[4:9]...)

	playerScore := bestOfSeven(append(append([]Card{}, playerHole...), community...))
	dealerScore := bestOfSeven(append(append([]Card{}, dealerHole...), community...))

	result := PokerResult{
		PlayerHole: playerHole,
		DealerHole: dealerHole,
		Community:  community,
		PlayerHand: pokerHandNames[playerScore.category],
		DealerHand: pokerHandNames[dealerScore.category],
		Ante:       ante,
		ServerSeed: seeds.Server,
		ClientSeed: seeds.Client,
		Nonce:      nonce,
	}

	switch comparePokerScores(playerScore, dealerScore) {
	case 1:
		result.Outcome = PokerOutcomeWin
		bonus := decimal.NewFromInt(pokerWinBonus[playerScore.category] + 1)
		result.Payout = roundPayout(ante.Mul(bonus))
	case -1:
		result.Outcome = PokerOutcomeLose
		result.Payout = decimal.Zero
	default:
		result.Outcome = PokerOutcomePush
		result.Payout = ante
	}

	return result, nil
}

// pokerScore orders hands: category first, then the tiebreak values in
// significance order.
type pokerScore struct {
	category int
	tiebreak []int
}

func comparePokerScores(a, b pokerScore) int {
	if a.category != b.category {
		if a.category > b.category {
			return 1
		}
		return -1
	}
	for i := range a.tiebreak {
		if i >= len(b.tiebreak) {
			break
		}
		if a.tiebreak[i] != b.tiebreak[i] {
			if a.tiebreak[i] > b.tiebreak[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// bestOfSeven scores every 5-card subset of the 7 cards and keeps the
// strongest.
func bestOfSeven(cards []Card) pokerScore {
	best := pokerScore{category: -1}
	pick := make([]Card, 5)

	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == 5 {
			score := scoreFive(pick)
			if best.category == -1 || comparePokerScores(score, best) == 1 {
				best = score
			}
			return
		}
		for i := start; i <= len(cards)-(5-depth); i++ {
			pick[depth] = cards[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return best
}

// scoreFive classifies exactly five cards.
func scoreFive(hand []Card) pokerScore {
	values := make([]int, 5)
	counts := map[int]int{}
	suits := map[string]int{}
	for i, c := range hand {
		v := pokerRankValue(c.Rank)
		values[i] = v
		counts[v]++
		suits[c.Suit]++
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	flush := len(suits) == 1
	asc := append([]int{}, values...)
	sort.Ints(asc)
	straight, high := straightHigh(asc)

	if flush && straight {
		if high == 14 {
			return pokerScore{category: pokerRoyalFlush, tiebreak: []int{high}}
		}
		return pokerScore{category: pokerStraightFlush, tiebreak: []int{high}}
	}

	// Group values by multiplicity, then by value, descending.
	type group struct{ count, value int }
	groups := make([]group, 0, 5)
	for v, n := range counts {
		groups = append(groups, group{count: n, value: v})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})

	tiebreak := make([]int, 0, 5)
	for _, g := range groups {
		tiebreak = append(tiebreak, g.value)
	}

	switch {
	case groups[0].count == 4:
		return pokerScore{category: pokerFourOfAKind, tiebreak: tiebreak}
	case groups[0].count == 3 && groups[1].count == 2:
		return pokerScore{category: pokerFullHouse, tiebreak: tiebreak}
	case flush:
		return pokerScore{category: pokerFlush, tiebreak: values}
	case straight:
		return pokerScore{category: pokerStraight, tiebreak: []int{high}}
	case groups[0].count == 3:
		return pokerScore{category: pokerThreeOfAKind, tiebreak: tiebreak}
	case groups[0].count == 2 && groups[1].count == 2:
		return pokerScore{category: pokerTwoPair, tiebreak: tiebreak}
	case groups[0].count == 2:
		return pokerScore{category: pokerPair, tiebreak: tiebreak}
	default:
		return pokerScore{category: pokerHighCard, tiebreak: values}
	}
}

// PokerGame adapts the deal to the registry interface.
type PokerGame struct{}

func (g *PokerGame) Spec() GameSpec {
	return GameSpec{ID: "poker", Name: "Poker", MetricLabel: "player_category"}
}

func (g *PokerGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	result, err := PlayPoker(seeds, nonce, decimal.Zero)
	if err != nil {
		return GameResult{}, err
	}

	category := 0
	for cat, name := range pokerHandNames {
		if name == result.PlayerHand {
			category = cat
			break
		}
	}

	return GameResult{
		Metric:      float64(category),
		MetricLabel: "player_category",
		Details: map[string]any{
			"player_hole": cardsToStrings(result.PlayerHole),
			"dealer_hole": cardsToStrings(result.DealerHole),
			"community":   cardsToStrings(result.Community),
			"player_hand": result.PlayerHand,
			"dealer_hand": result.DealerHand,
			"outcome":     result.Outcome,
		},
	}, nil
}
