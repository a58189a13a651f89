package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studykit/studykit/internal/review"
	"github.com/studykit/studykit/internal/store"
)

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "List past attempts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runAttempts,
}

var reviewCmd = &cobra.Command{
	Use:   "review <attempt-id>",
	Short: "Print an attempt question by question with the correct answers",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

func init() {
	attemptsCmd.Flags().String("set", "", "Only attempts on this question set")
	attemptsCmd.Flags().Int("limit", 20, "Show at most this many attempts (0 = all)")
}

func runAttempts(cmd *cobra.Command, args []string) error {
	setID, _ := cmd.Flags().GetString("set")
	limit, _ := cmd.Flags().GetInt("limit")

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	attempts, err := rt.store.AttemptRepo().List(cmd.Context(), rt.cfg.Profile,
		store.ListOpts{Limit: limit, QuestionSetID: setID})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(attempts) == 0 {
		fmt.Fprintln(out, "No attempts yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSET\tSCORE\tPERCENT\tCOMPLETED")
	for _, a := range attempts {
		title := a.SetTitle
		if title == "" {
			title = a.QuestionSetID
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%d%%\t%s\n",
			a.ID, title, a.Score, a.TotalQuestions, a.Percent(), a.CompletedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func runReview(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	a, err := rt.store.AttemptRepo().Get(ctx, rt.cfg.Profile, args[0])
	if err != nil {
		return describeLoadError("attempt", args[0], err)
	}
	set, err := rt.store.QuestionSetRepo().Get(ctx, rt.cfg.Profile, a.QuestionSetID)
	if err != nil {
		return describeLoadError("question set", a.QuestionSetID, err)
	}
	res, err := review.Reconstruct(a, set)
	if err != nil {
		return err
	}
	return printReview(cmd.OutOrStdout(), res)
}

func printReview(w io.Writer, res *review.Result) error {
	a := res.Attempt
	fmt.Fprintf(w, "%s\n", res.Title)
	fmt.Fprintf(w, "Score: %d/%d (%d%%), completed %s\n\n",
		a.Score, a.TotalQuestions, a.Percent(), a.CompletedAt.Local().Format("2006-01-02 15:04"))

	for _, it := range res.Items {
		mark := "✓"
		if !it.Correct {
			mark = "✗"
		}
		answer := it.Answer
		if !it.Answered {
			answer = "(no answer)"
		}
		fmt.Fprintf(w, "%s %d. %s\n", mark, it.Number, it.Question.Text)
		fmt.Fprintf(w, "    Your answer: %s\n", answer)
		if !it.Correct {
			fmt.Fprintf(w, "    Correct answer: %s\n", it.Question.Answer)
		}
	}
	_, err := fmt.Fprintf(w, "\n%d correct, %d wrong, %d unanswered\n",
		res.Correct(), len(res.Items)-res.Correct()-res.Unanswered(), res.Unanswered())
	return err
}
