package screen

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/studykit/studykit/internal/store"
	"github.com/studykit/studykit/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackInterceptor is an optional interface for screens that handle Esc
// themselves instead of letting the app pop them.
type BackInterceptor interface {
	InterceptsBack() bool
}

// Resumer is an optional interface for screens that refresh themselves when
// they become active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Env carries the dependencies screens need to load and persist data.
type Env struct {
	Sets     store.QuestionSetRepo
	Attempts store.AttemptRepo
	Owner    string
	Log      *zap.Logger
}

// Logger returns e.Log, or a no-op logger when unset.
func (e Env) Logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}
