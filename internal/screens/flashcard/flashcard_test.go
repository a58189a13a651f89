package flashcard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studykit/studykit/internal/questionset"
)

func testDeck(t *testing.T) *questionset.Model {
	t.Helper()
	set, err := questionset.New(questionset.Record{
		ID:    "deck",
		Title: "Vocab",
		Mode:  questionset.ModeFlashcard,
		Questions: []questionset.QuestionRecord{
			{ID: "c1", Text: "hola", Kind: questionset.KindShort, Answer: "hello"},
			{ID: "c2", Text: "adiós", Kind: questionset.KindMCQ, Options: []string{"goodbye", "thanks"}, Answer: "goodbye"},
		},
	})
	if err != nil {
		t.Fatalf("build set: %v", err)
	}
	return set
}

func TestFlashcardScreen_Title(t *testing.T) {
	s := New(testDeck(t))
	if s.Title() != "Flashcards · Vocab" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestFlashcardScreen_Reveal(t *testing.T) {
	s := New(testDeck(t))
	if strings.Contains(s.View(100, 30), "hello") {
		t.Fatal("answer visible before reveal")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !strings.Contains(s.View(100, 30), "Answer: hello") {
		t.Error("answer hidden after reveal")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.nav.Revealed() {
		t.Error("enter should hide the answer again")
	}
}

func TestFlashcardScreen_Navigation(t *testing.T) {
	s := New(testDeck(t))
	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})

	if s.nav.Index() != 1 {
		t.Fatalf("Index = %d, want 1", s.nav.Index())
	}
	if s.nav.Revealed() {
		t.Error("moving to a new card should hide the answer")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Card 2 of 2") || !strings.Contains(view, "A)  goodbye") {
		t.Error("expected second card with options")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.nav.Index() != 1 {
		t.Errorf("Index = %d, want to stay at last card", s.nav.Index())
	}

	s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if s.nav.Index() != 0 {
		t.Errorf("Index = %d, want 0", s.nav.Index())
	}
}

func TestFlashcardScreen_EmptyDeck(t *testing.T) {
	set, err := questionset.New(questionset.Record{ID: "empty", Title: "Empty", Mode: questionset.ModeFlashcard})
	if err != nil {
		t.Fatalf("build set: %v", err)
	}
	s := New(set)
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if !strings.Contains(s.View(80, 24), "no cards") {
		t.Error("expected empty deck message")
	}
}
