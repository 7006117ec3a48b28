package games

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// BaccaratBet is the side a baccarat stake backs.
type BaccaratBet string

const (
	BaccaratBetPlayer BaccaratBet = "PLAYER"
	BaccaratBetBanker BaccaratBet = "BANKER"
	BaccaratBetTie    BaccaratBet = "TIE"
)

// Baccarat round winners.
const (
	BaccaratWinnerPlayer = "PLAYER"
	BaccaratWinnerBanker = "BANKER"
	BaccaratWinnerTie    = "TIE"
)

// Payout multipliers include the returned stake. Banker wins carry the
// standard 5% commission; a tie pushes player and banker bets.
var (
	baccaratPlayerPays = decimal.NewFromInt(2)
	baccaratBankerPays = decimal.RequireFromString("1.95")
	baccaratTiePays    = decimal.NewFromInt(9)
)

// BaccaratResult is the terminal output of a coup.
type BaccaratResult struct {
	PlayerCards []Card          `json:"player_cards"`
	BankerCards []Card          `json:"banker_cards"`
	PlayerScore int             `json:"player_score"`
	BankerScore int             `json:"banker_score"`
	Winner      string          `json:"winner"`
	BetType     BaccaratBet     `json:"bet_type"`
	BetAmount   decimal.Decimal `json:"bet_amount"`
	Payout      decimal.Decimal `json:"payout"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	Win         bool            `json:"win"`
	ServerSeed  string          `json:"server_seed"`
	ClientSeed  string          `json:"client_seed"`
	Nonce       uint64          `json:"nonce"`
}

// PlayBaccarat deals one coup and settles the stake. Cards come from an
// unlimited shoe: each draw is an independent pick of one of 52 cards at
// its own nonce, in the fixed order player, banker, player, banker, then
// tableau third cards.
func PlayBaccarat(seeds Seeds, nonce uint64, betAmount decimal.Decimal, betType BaccaratBet) (BaccaratResult, error) {
	switch betType {
	case BaccaratBetPlayer, BaccaratBetBanker, BaccaratBetTie:
	default:
		return BaccaratResult{}, fmt.Errorf("baccarat: unknown bet %q: %w", betType, engine.ErrInvalidArgument)
	}
	if betAmount.IsNegative() {
		return BaccaratResult{}, fmt.Errorf("baccarat: negative bet %s: %w", betAmount, engine.ErrInvalidArgument)
	}

	player, banker, err := baccaratDeal(seeds, nonce)
	if err != nil {
		return BaccaratResult{}, err
	}

	playerScore := baccaratScore(player)
	bankerScore := baccaratScore(banker)
	winner := BaccaratWinnerTie
	switch {
	case playerScore > bankerScore:
		winner = BaccaratWinnerPlayer
	case bankerScore > playerScore:
		winner = BaccaratWinnerBanker
	}

	payout := settleBaccarat(betType, betAmount, winner)

	return BaccaratResult{
		PlayerCards: player,
		BankerCards: banker,
		PlayerScore: playerScore,
		BankerScore: bankerScore,
		Winner:      winner,
		BetType:     betType,
		BetAmount:   betAmount,
		Payout:      payout,
		NetProfit:   payout.Sub(betAmount),
		Win:         payout.GreaterThan(betAmount),
		ServerSeed:  seeds.Server,
		ClientSeed:  seeds.Client,
		Nonce:       nonce,
	}, nil
}

// baccaratDeal runs the opening deal and the third-card tableau. The
// first four cards sit at nonce..nonce+3; tableau cards continue from
// nonce+4 in draw order, so the banker's third card lands at nonce+4 or
// nonce+5 depending on whether the player drew.
func baccaratDeal(seeds Seeds, nonce uint64) (player, banker []Card, err error) {
	for i := uint64(0); i < 4; i++ {
		card, err := baccaratCard(seeds, nonce+i)
		if err != nil {
			return nil, nil, err
		}
		if i%2 == 0 {
			player = append(player, card)
		} else {
			banker = append(banker, card)
		}
	}

	playerScore := baccaratScore(player)
	bankerScore := baccaratScore(banker)

	// A natural 8 or 9 on either side freezes both hands.
	if playerScore >= 8 || bankerScore >= 8 {
		return player, banker, nil
	}

	cardNonce := nonce + 4
	bankerDraws := bankerScore <= 5

	if playerScore <= 5 {
		third, err := baccaratCard(seeds, cardNonce)
		if err != nil {
			return nil, nil, err
		}
		cardNonce++
		player = append(player, third)
		bankerDraws = baccaratBankerDraws(bankerScore, baccaratCardValue(third.Rank))
	}

	if bankerDraws {
		third, err := baccaratCard(seeds, cardNonce)
		if err != nil {
			return nil, nil, err
		}
		banker = append(banker, third)
	}

	return player, banker, nil
}

// baccaratCard picks one of the 52 cards at the given nonce.
func baccaratCard(seeds Seeds, nonce uint64) (Card, error) {
	idx, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, 52)
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: cardRanks[idx%13], Suit: cardSuits[idx/13]}, nil
}

// baccaratCardValue is the baccarat point value: A one, 2-9 face,
// tens and faces zero.
func baccaratCardValue(rank string) int {
	switch rank {
	case "A":
		return 1
	case "10", "J", "Q", "K":
		return 0
	default:
		v, _ := strconv.Atoi(rank)
		return v
	}
}

// baccaratScore is the hand total mod 10.
func baccaratScore(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += baccaratCardValue(c.Rank)
	}
	return total % 10
}

// baccaratBankerDraws is the standard banker tableau, keyed on the
// banker's two-card score and the player's third-card value.
func baccaratBankerDraws(bankerScore, playerThird int) bool {
	switch bankerScore {
	case 0, 1, 2:
		return true
	case 3:
		return playerThird != 8
	case 4:
		return playerThird >= 2 && playerThird <= 7
	case 5:
		return playerThird >= 4 && playerThird <= 7
	case 6:
		return playerThird == 6 || playerThird == 7
	default:
		return false
	}
}

// settleBaccarat pays the stake against the realized winner: player
// 1:1, banker 0.95:1, tie 8:1, with ties pushing the side bets.
func settleBaccarat(betType BaccaratBet, betAmount decimal.Decimal, winner string) decimal.Decimal {
	switch {
	case betType == BaccaratBetPlayer && winner == BaccaratWinnerPlayer:
		return roundPayout(betAmount.Mul(baccaratPlayerPays))
	case betType == BaccaratBetBanker && winner == BaccaratWinnerBanker:
		return roundPayout(betAmount.Mul(baccaratBankerPays))
	case betType == BaccaratBetTie && winner == BaccaratWinnerTie:
		return roundPayout(betAmount.Mul(baccaratTiePays))
	case winner == BaccaratWinnerTie:
		return betAmount
	default:
		return decimal.Zero
	}
}

// BaccaratGame adapts the coup to the registry interface.
type BaccaratGame struct{}

func (g *BaccaratGame) Spec() GameSpec {
	return GameSpec{ID: "baccarat", Name: "Baccarat", MetricLabel: "player_score"}
}

func (g *BaccaratGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	player, banker, err := baccaratDeal(seeds, nonce)
	if err != nil {
		return GameResult{}, err
	}

	playerScore := baccaratScore(player)
	bankerScore := baccaratScore(banker)
	winner := BaccaratWinnerTie
	switch {
	case playerScore > bankerScore:
		winner = BaccaratWinnerPlayer
	case bankerScore > playerScore:
		winner = BaccaratWinnerBanker
	}

	return GameResult{
		Metric:      float64(playerScore),
		MetricLabel: "player_score",
		Details: map[string]any{
			"player_cards": cardsToStrings(player),
			"banker_cards": cardsToStrings(banker),
			"player_score": playerScore,
			"banker_score": bankerScore,
			"winner":       winner,
		},
	}, nil
}
