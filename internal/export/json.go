package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/studykit/studykit/internal/questionset"
)

type jsonDocument struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Mode      questionset.Mode        `json:"mode"`
	TimeLimit *int                    `json:"time_limit,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	Questions []questionset.ExportRow `json:"questions"`
}

func renderJSON(w io.Writer, set *questionset.Model, rows []questionset.ExportRow) error {
	doc := jsonDocument{
		ID:        set.ID(),
		Title:     set.Title(),
		Mode:      set.Mode(),
		CreatedAt: set.CreatedAt(),
		Questions: rows,
	}
	if limit, ok := set.TimeLimit(); ok {
		doc.TimeLimit = &limit
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
