// Package flashcard navigates a question set card by card.
package flashcard

import "github.com/studykit/studykit/internal/questionset"

// Navigator tracks the current card and whether its answer is showing.
// The index always stays within [0, Len()-1]; moving to another card hides
// the answer again.
type Navigator struct {
	set      *questionset.Model
	index    int
	revealed bool
}

// New starts at the first card with the answer hidden.
func New(set *questionset.Model) *Navigator {
	return &Navigator{set: set}
}

// Len returns the number of cards.
func (n *Navigator) Len() int {
	return n.set.Len()
}

// Index returns the zero-based position of the current card.
func (n *Navigator) Index() int {
	return n.index
}

// Revealed reports whether the current card's answer is visible.
func (n *Navigator) Revealed() bool {
	return n.revealed
}

// Current returns the card at the current index, or the zero Question for an
// empty deck.
func (n *Navigator) Current() questionset.Question {
	if n.set.Len() == 0 {
		return questionset.Question{}
	}
	return n.set.At(n.index)
}

// Next advances one card. At the last card it does nothing and returns false.
func (n *Navigator) Next() bool {
	if n.index >= n.set.Len()-1 {
		return false
	}
	n.index++
	n.revealed = false
	return true
}

// Previous goes back one card. At the first card it does nothing and returns
// false.
func (n *Navigator) Previous() bool {
	if n.index == 0 {
		return false
	}
	n.index--
	n.revealed = false
	return true
}

// ToggleReveal flips answer visibility and returns the new value.
func (n *Navigator) ToggleReveal() bool {
	n.revealed = !n.revealed
	return n.revealed
}
