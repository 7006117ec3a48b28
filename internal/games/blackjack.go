package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// Blackjack round statuses.
const (
	BlackjackStatePlaying         = "PLAYING"
	BlackjackStateWin             = "WIN"
	BlackjackStateLose            = "LOSE"
	BlackjackStatePush            = "PUSH"
	BlackjackStateBust            = "BUST"
	BlackjackStateBlackjack       = "BLACKJACK"
	BlackjackStateDealerBlackjack = "DEALER_BLACKJACK"
)

const dealerStandsAt = 17

// Natural blackjack pays 3:2 on top of the stake.
var blackjackNaturalMultiplier = decimal.RequireFromString("2.5")

// BlackjackState is the serializable snapshot of a blackjack round.
// The deck is the full shuffled order plus a cursor, so the snapshot
// alone replays the rest of the round.
type BlackjackState struct {
	Deck         Deck            `json:"deck"`
	PlayerHand   []Card          `json:"player_hand"`
	DealerHand   []Card          `json:"dealer_hand"`
	PlayerValue  int             `json:"player_value"`
	DealerValue  int             `json:"dealer_value"`
	DealerUpcard Card            `json:"dealer_upcard"`
	Status       string          `json:"status"`
	BetAmount    decimal.Decimal `json:"bet_amount"`
	Payout       decimal.Decimal `json:"payout"`
	CanHit       bool            `json:"can_hit"`
	CanStand     bool            `json:"can_stand"`
	CanDouble    bool            `json:"can_double"`
	CanSplit     bool            `json:"can_split"`
	ServerSeed   string          `json:"server_seed"`
	ClientSeed   string          `json:"client_seed"`
	Nonce        uint64          `json:"nonce"`
}

// StartBlackjack shuffles the deck once at the round nonce and deals
// player, dealer, player, dealer. A natural 21 on either side resolves
// the round immediately.
func StartBlackjack(seeds Seeds, nonce uint64, betAmount decimal.Decimal) (BlackjackState, error) {
	if betAmount.IsNegative() {
		return BlackjackState{}, fmt.Errorf("blackjack: negative bet %s: %w", betAmount, engine.ErrInvalidArgument)
	}

	deck := NewShuffledDeck(seeds, nonce)

	var player, dealer []Card
	for i := 0; i < 2; i++ {
		p, _ := deck.Draw()
		d, _ := deck.Draw()
		player = append(player, p)
		dealer = append(dealer, d)
	}

	playerValue := blackjackHandValue(player)
	dealerValue := blackjackHandValue(dealer)
	playerNatural := playerValue == 21
	dealerNatural := dealerValue == 21

	state := BlackjackState{
		Deck:         deck,
		PlayerHand:   player,
		DealerHand:   dealer,
		PlayerValue:  playerValue,
		DealerValue:  dealerValue,
		DealerUpcard: dealer[0],
		BetAmount:    betAmount,
		Payout:       decimal.Zero,
		ServerSeed:   seeds.Server,
		ClientSeed:   seeds.Client,
		Nonce:        nonce,
	}

	switch {
	case playerNatural && dealerNatural:
		state.Status = BlackjackStatePush
		state.Payout = betAmount
	case playerNatural:
		state.Status = BlackjackStateBlackjack
		state.Payout = roundPayout(betAmount.Mul(blackjackNaturalMultiplier))
	case dealerNatural:
		state.Status = BlackjackStateDealerBlackjack
	default:
		state.Status = BlackjackStatePlaying
		state.CanHit = true
		state.CanStand = true
		state.CanDouble = true
		state.CanSplit = player[0].Rank == player[1].Rank
	}

	return state, nil
}

// HitBlackjack deals one card to the player and re-evaluates for bust.
func HitBlackjack(state BlackjackState) (BlackjackState, error) {
	if state.Status != BlackjackStatePlaying {
		return BlackjackState{}, fmt.Errorf("blackjack: hit in state %s: %w", state.Status, engine.ErrIllegalTransition)
	}

	next := cloneBlackjack(state)
	card, err := next.Deck.Draw()
	if err != nil {
		return BlackjackState{}, err
	}
	next.PlayerHand = append(next.PlayerHand, card)
	next.PlayerValue = blackjackHandValue(next.PlayerHand)
	next.CanDouble = false
	next.CanSplit = false

	if next.PlayerValue > 21 {
		next.Status = BlackjackStateBust
		next.Payout = decimal.Zero
		next.CanHit = false
		next.CanStand = false
	}

	return next, nil
}

// StandBlackjack ends the player's turn; the dealer draws to 17 and the
// hands are compared.
func StandBlackjack(state BlackjackState) (BlackjackState, error) {
	if state.Status != BlackjackStatePlaying {
		return BlackjackState{}, fmt.Errorf("blackjack: stand in state %s: %w", state.Status, engine.ErrIllegalTransition)
	}
	return resolveDealer(cloneBlackjack(state))
}

// DoubleBlackjack doubles the bet, deals exactly one more card to the
// player and forces resolution.
func DoubleBlackjack(state BlackjackState) (BlackjackState, error) {
	if state.Status != BlackjackStatePlaying {
		return BlackjackState{}, fmt.Errorf("blackjack: double in state %s: %w", state.Status, engine.ErrIllegalTransition)
	}
	if !state.CanDouble {
		return BlackjackState{}, fmt.Errorf("blackjack: double after hitting: %w", engine.ErrIllegalTransition)
	}

	next := cloneBlackjack(state)
	next.BetAmount = state.BetAmount.Mul(decimal.NewFromInt(2))

	card, err := next.Deck.Draw()
	if err != nil {
		return BlackjackState{}, err
	}
	next.PlayerHand = append(next.PlayerHand, card)
	next.PlayerValue = blackjackHandValue(next.PlayerHand)

	if next.PlayerValue > 21 {
		next.Status = BlackjackStateBust
		next.Payout = decimal.Zero
		next.CanHit = false
		next.CanStand = false
		next.CanDouble = false
		next.CanSplit = false
		return next, nil
	}

	return resolveDealer(next)
}

// resolveDealer runs the dealer's fixed strategy and settles the round.
func resolveDealer(state BlackjackState) (BlackjackState, error) {
	for blackjackHandValue(state.DealerHand) < dealerStandsAt {
		card, err := state.Deck.Draw()
		if err != nil {
			return BlackjackState{}, err
		}
		state.DealerHand = append(state.DealerHand, card)
	}
	state.DealerValue = blackjackHandValue(state.DealerHand)

	switch {
	case state.DealerValue > 21 || state.PlayerValue > state.DealerValue:
		state.Status = BlackjackStateWin
		state.Payout = roundPayout(state.BetAmount.Mul(decimal.NewFromInt(2)))
	case state.PlayerValue < state.DealerValue:
		state.Status = BlackjackStateLose
		state.Payout = decimal.Zero
	default:
		state.Status = BlackjackStatePush
		state.Payout = state.BetAmount
	}

	state.CanHit = false
	state.CanStand = false
	state.CanDouble = false
	state.CanSplit = false
	return state, nil
}

// cloneBlackjack deep-copies the mutable slices so transitions never
// alias the caller's snapshot.
func cloneBlackjack(state BlackjackState) BlackjackState {
	next := state
	next.Deck.Cards = append([]Card{}, state.Deck.Cards...)
	next.PlayerHand = append([]Card{}, state.PlayerHand...)
	next.DealerHand = append([]Card{}, state.DealerHand...)
	return next
}

// BlackjackGame adapts the deal to the registry interface.
type BlackjackGame struct{}

func (g *BlackjackGame) Spec() GameSpec {
	return GameSpec{ID: "blackjack", Name: "Blackjack", MetricLabel: "player_value"}
}

func (g *BlackjackGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	state, err := StartBlackjack(seeds, nonce, decimal.Zero)
	if err != nil {
		return GameResult{}, err
	}

	return GameResult{
		Metric:      float64(state.PlayerValue),
		MetricLabel: "player_value",
		Details: map[string]any{
			"player_hand": cardsToStrings(state.PlayerHand),
			"dealer_hand": cardsToStrings(state.DealerHand),
			"status":      state.Status,
		},
	}, nil
}
