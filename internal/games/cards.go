package games

import (
	"fmt"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// Card is a playing card with rank and suit.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// String renders a card like "A♠" or "10♦".
func (c Card) String() string {
	return c.Rank + c.Suit
}

var cardSuits = []string{"♠", "♥", "♦", "♣"}

var cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// newDeckCards returns the 52-card deck in canonical order: ♠A..♠K,
// ♥A..♥K, ♦A..♦K, ♣A..♣K.
func newDeckCards() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// Deck is a pre-shuffled card sequence with a draw cursor. Drawing
// advances the cursor instead of removing elements, which keeps the
// deck trivially serializable inside multi-step state snapshots.
type Deck struct {
	Cards  []Card `json:"cards"`
	Cursor int    `json:"cursor"`
}

// NewShuffledDeck builds the standard deck and applies the provably
// fair Fisher-Yates shuffle at the given round nonce.
func NewShuffledDeck(seeds Seeds, nonce uint64) Deck {
	return Deck{Cards: engine.Shuffle(seeds.Server, seeds.Client, nonce, newDeckCards())}
}

// Draw returns the next card and advances the cursor.
func (d *Deck) Draw() (Card, error) {
	if d.Cursor >= len(d.Cards) {
		return Card{}, fmt.Errorf("deck exhausted at cursor %d: %w", d.Cursor, engine.ErrIllegalTransition)
	}
	c := d.Cards[d.Cursor]
	d.Cursor++
	return c, nil
}

// Remaining reports how many cards are left to draw.
func (d *Deck) Remaining() int {
	return len(d.Cards) - d.Cursor
}

// blackjackCardValue returns the blackjack point value: 2-10 face
// value, J/Q/K ten, A eleven (soft).
func blackjackCardValue(rank string) int {
	switch rank {
	case "A":
		return 11
	case "10", "J", "Q", "K":
		return 10
	default:
		// Ranks 2-9.
		var v int
		fmt.Sscanf(rank, "%d", &v)
		return v
	}
}

// blackjackHandValue computes the best hand value, demoting aces from
// 11 to 1 while the hand would bust.
func blackjackHandValue(cards []Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		total += blackjackCardValue(c.Rank)
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// pokerRankValue maps a rank to its high-poker value: 2..10, J=11,
// Q=12, K=13, A=14.
func pokerRankValue(rank string) int {
	switch rank {
	case "A":
		return 14
	case "K":
		return 13
	case "Q":
		return 12
	case "J":
		return 11
	default:
		var v int
		fmt.Sscanf(rank, "%d", &v)
		return v
	}
}

func cardsToStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
