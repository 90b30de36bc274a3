// Package flashcards tracks position and face while reviewing a deck.
package flashcards

import "github.com/abhisek/studybuddy/internal/studygen"

// Face is the visible side of the current card.
type Face int

const (
	Front Face = iota
	Back
)

func (f Face) String() string {
	if f == Back {
		return "Back"
	}
	return "Front"
}

// Deck is bounded navigation over an immutable card list. Changing cards
// always shows the front. An empty deck is Unavailable and ignores input.
type Deck struct {
	cards []studygen.Flashcard
	index int
	face  Face
}

// New creates a Deck showing the front of the first card.
func New(cards []studygen.Flashcard) *Deck {
	return &Deck{cards: cards}
}

// Unavailable reports whether the deck has no cards.
func (d *Deck) Unavailable() bool { return len(d.cards) == 0 }

// Flip toggles the visible face.
func (d *Deck) Flip() {
	if d.Unavailable() {
		return
	}
	if d.face == Front {
		d.face = Back
	} else {
		d.face = Front
	}
}

// Next moves to the following card. No-op on the last card.
func (d *Deck) Next() {
	if !d.HasNext() {
		return
	}
	d.index++
	d.face = Front
}

// Prev moves to the preceding card. No-op on the first card.
func (d *Deck) Prev() {
	if !d.HasPrev() {
		return
	}
	d.index--
	d.face = Front
}

// HasNext reports whether Next would move.
func (d *Deck) HasNext() bool { return d.index < len(d.cards)-1 }

// HasPrev reports whether Prev would move.
func (d *Deck) HasPrev() bool { return d.index > 0 }

// Index returns the zero-based position of the current card.
func (d *Deck) Index() int { return d.index }

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// Face returns the visible side.
func (d *Deck) Face() Face { return d.face }

// Current returns the current card. ok is false for an empty deck.
func (d *Deck) Current() (card studygen.Flashcard, ok bool) {
	if d.Unavailable() {
		return studygen.Flashcard{}, false
	}
	return d.cards[d.index], true
}

// VisibleText returns the text on the visible face of the current card.
func (d *Deck) VisibleText() string {
	card, ok := d.Current()
	if !ok {
		return ""
	}
	if d.face == Back {
		return card.Back
	}
	return card.Front
}
