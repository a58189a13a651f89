package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/studykit/studykit/internal/questionset"
)

// renderText writes the plain layout: a title, then per question a numbered
// line, MCQ options as bullets, an optional answer line and a blank line.
func renderText(w io.Writer, title string, rows []questionset.ExportRow, includeAnswers bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n\n", title)
	for _, r := range rows {
		fmt.Fprintf(bw, "%d. %s\n", r.Number, r.Question)
		if r.Kind == questionset.KindMCQ {
			for _, opt := range r.Options {
				fmt.Fprintf(bw, "  - %s\n", opt)
			}
		}
		if includeAnswers {
			fmt.Fprintf(bw, "  Answer: %s\n", r.Answer)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
