package games

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

const videoPokerHandSize = 5

// Video poker round statuses.
const (
	VideoPokerStateInitialDeal = "INITIAL_DEAL"
	VideoPokerStateComplete    = "COMPLETE"
)

// Jacks-or-Better hand names, strongest first.
const (
	VPHandRoyalFlush    = "ROYAL_FLUSH"
	VPHandStraightFlush = "STRAIGHT_FLUSH"
	VPHandFourOfAKind   = "FOUR_OF_A_KIND"
	VPHandFullHouse     = "FULL_HOUSE"
	VPHandFlush         = "FLUSH"
	VPHandStraight      = "STRAIGHT"
	VPHandThreeOfAKind  = "THREE_OF_A_KIND"
	VPHandTwoPair       = "TWO_PAIR"
	VPHandJacksOrBetter = "JACKS_OR_BETTER"
	VPHandNothing       = "NOTHING"
)

// Per-unit paytable for Jacks or Better.
var videoPokerPaytable = map[string]int64{
	VPHandRoyalFlush:    800,
	VPHandStraightFlush: 50,
	VPHandFourOfAKind:   25,
	VPHandFullHouse:     9,
	VPHandFlush:         6,
	VPHandStraight:      4,
	VPHandThreeOfAKind:  3,
	VPHandTwoPair:       2,
	VPHandJacksOrBetter: 1,
	VPHandNothing:       0,
}

// VideoPokerState is the serializable snapshot of a Jacks-or-Better
// round. One deck shuffle at the round nonce covers both the deal and
// the replacement draw.
type VideoPokerState struct {
	Deck       Deck            `json:"deck"`
	Hand       []Card          `json:"hand"`
	Status     string          `json:"status"`
	HandRank   string          `json:"hand_rank,omitempty"`
	Multiplier decimal.Decimal `json:"multiplier"`
	BetAmount  decimal.Decimal `json:"bet_amount"`
	Payout     decimal.Decimal `json:"payout"`
	ServerSeed string          `json:"server_seed"`
	ClientSeed string          `json:"client_seed"`
	Nonce      uint64          `json:"nonce"`
}

// DealVideoPoker shuffles a deck at the round nonce and deals the
// opening five cards.
func DealVideoPoker(seeds Seeds, nonce uint64, betAmount decimal.Decimal) (VideoPokerState, error) {
	if betAmount.IsNegative() {
		return VideoPokerState{}, fmt.Errorf("videopoker: negative bet %s: %w", betAmount, engine.ErrInvalidArgument)
	}

	deck := NewShuffledDeck(seeds, nonce)
	hand := make([]Card, videoPokerHandSize)
	for i := range hand {
		c, _ := deck.Draw()
		hand[i] = c
	}

	return VideoPokerState{
		Deck:       deck,
		Hand:       hand,
		Status:     VideoPokerStateInitialDeal,
		Multiplier: decimal.Zero,
		BetAmount:  betAmount,
		Payout:     decimal.Zero,
		ServerSeed: seeds.Server,
		ClientSeed: seeds.Client,
		Nonce:      nonce,
	}, nil
}

// DrawVideoPoker replaces every card not marked held with the next card
// off the deck cursor, then ranks and settles the final hand.
func DrawVideoPoker(state VideoPokerState, hold [videoPokerHandSize]bool) (VideoPokerState, error) {
	if state.Status != VideoPokerStateInitialDeal {
		return VideoPokerState{}, fmt.Errorf("videopoker: draw in state %s: %w", state.Status, engine.ErrIllegalTransition)
	}

	next := state
	next.Deck.Cards = append([]Card{}, state.Deck.Cards...)
	next.Hand = append([]Card{}, state.Hand...)

	for i, held := range hold {
		if held {
			continue
		}
		card, err := next.Deck.Draw()
		if err != nil {
			return VideoPokerState{}, err
		}
		next.Hand[i] = card
	}

	next.HandRank = RankVideoPokerHand(next.Hand)
	next.Multiplier = decimal.NewFromInt(videoPokerPaytable[next.HandRank])
	next.Payout = roundPayout(next.BetAmount.Mul(next.Multiplier))
	next.Status = VideoPokerStateComplete
	return next, nil
}

// RankVideoPokerHand classifies a five-card hand on the Jacks-or-Better
// ladder. A-2-3-4-5 counts as a straight with the ace low.
func RankVideoPokerHand(hand []Card) string {
	values := make([]int, len(hand))
	counts := map[int]int{}
	suits := map[string]int{}
	for i, c := range hand {
		v := pokerRankValue(c.Rank)
		values[i] = v
		counts[v]++
		suits[c.Suit]++
	}
	sort.Ints(values)

	flush := len(suits) == 1
	straight, high := straightHigh(values)

	switch {
	case flush && straight && high == 14:
		return VPHandRoyalFlush
	case flush && straight:
		return VPHandStraightFlush
	}

	pairs := 0
	trips := false
	quads := false
	highPair := false
	for v, n := range counts {
		switch n {
		case 4:
			quads = true
		case 3:
			trips = true
		case 2:
			pairs++
			if v >= 11 || v == 14 {
				highPair = true
			}
		}
	}

	switch {
	case quads:
		return VPHandFourOfAKind
	case trips && pairs == 1:
		return VPHandFullHouse
	case flush:
		return VPHandFlush
	case straight:
		return VPHandStraight
	case trips:
		return VPHandThreeOfAKind
	case pairs == 2:
		return VPHandTwoPair
	case pairs == 1 && highPair:
		return VPHandJacksOrBetter
	default:
		return VPHandNothing
	}
}

// straightHigh reports whether five sorted distinct values form a
// straight, and the straight's high card. The wheel (A-2-3-4-5) counts
// with five high.
func straightHigh(sorted []int) (bool, int) {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return false, 0
		}
	}

	if sorted[len(sorted)-1]-sorted[0] == len(sorted)-1 {
		return true, sorted[len(sorted)-1]
	}

	// Ace-low: 2, 3, 4, 5, A.
	if sorted[len(sorted)-1] == 14 {
		low := append([]int{}, sorted[:len(sorted)-1]...)
		if low[0] == 2 && low[len(low)-1]-low[0] == len(low)-1 {
			return true, 5
		}
	}

	return false, 0
}

// VideoPokerGame adapts the deal to the registry interface.
type VideoPokerGame struct{}

func (g *VideoPokerGame) Spec() GameSpec {
	return GameSpec{ID: "videopoker", Name: "Video Poker", MetricLabel: "deal_rank"}
}

func (g *VideoPokerGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	state, err := DealVideoPoker(seeds, nonce, decimal.Zero)
	if err != nil {
		return GameResult{}, err
	}

	rank := RankVideoPokerHand(state.Hand)
	return GameResult{
		Metric:      float64(videoPokerPaytable[rank]),
		MetricLabel: "deal_rank",
		Details: map[string]any{
			"hand":      cardsToStrings(state.Hand),
			"hand_rank": rank,
		},
	}, nil
}
