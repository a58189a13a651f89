package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studykit/studykit/internal/app"
	examscreen "github.com/studykit/studykit/internal/screens/exam"
	"github.com/studykit/studykit/internal/screens/flashcard"
	"github.com/studykit/studykit/internal/screens/home"
)

var examCmd = &cobra.Command{
	Use:   "exam <set-id>",
	Short: "Take a set as an exam, or as practice when it has no time limit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSet(cmd, args[0], false)
	},
}

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards <set-id>",
	Short: "Study a set card by card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSet(cmd, args[0], true)
	},
}

// runApp opens the store and launches the TUI on the home screen.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.log.Info("ui started")
	return app.Run(cmd.Context(), rt.cfg.Profile, home.New(rt.env()))
}

// runSet launches the TUI directly on one set, with home underneath.
func runSet(cmd *cobra.Command, id string, cards bool) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	env := rt.env()
	set, err := env.Sets.Get(cmd.Context(), env.Owner, id)
	if err != nil {
		rt.log.Warn("open question set", zap.String("set_id", id), zap.Error(err))
		return describeLoadError("question set", id, err)
	}

	root := home.New(env)
	if cards {
		return app.Run(cmd.Context(), rt.cfg.Profile, root, flashcard.New(set))
	}
	return app.Run(cmd.Context(), rt.cfg.Profile, root, examscreen.New(env, set))
}
