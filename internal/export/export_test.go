package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/studykit/studykit/internal/questionset"
)

func sampleSet(t *testing.T) *questionset.Model {
	t.Helper()
	m, err := questionset.New(questionset.Record{
		ID:    "set-1",
		Title: "Photosynthesis",
		Questions: []questionset.QuestionRecord{
			{ID: "q1", Text: "Which pigment absorbs light?", Kind: questionset.KindMCQ,
				Options: `["Chlorophyll","Keratin"]`, Answer: "Chlorophyll"},
			{ID: "q2", Text: "Gas released?", Kind: questionset.KindShort, Answer: "Oxygen"},
		},
	})
	require.NoError(t, err)
	return m
}

func TestRenderText_WithAnswers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatTXT, sampleSet(t), true))

	want := "Photosynthesis\n\n" +
		"1. Which pigment absorbs light?\n" +
		"  - Chlorophyll\n" +
		"  - Keratin\n" +
		"  Answer: Chlorophyll\n" +
		"\n" +
		"2. Gas released?\n" +
		"  Answer: Oxygen\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderText_WithoutAnswers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatTXT, sampleSet(t), false))

	assert.NotContains(t, buf.String(), "Answer:")
	assert.Contains(t, buf.String(), "  - Keratin\n")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, sampleSet(t), false))

	var doc struct {
		Title     string                  `json:"title"`
		Questions []questionset.ExportRow `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Photosynthesis", doc.Title)
	require.Len(t, doc.Questions, 2)
	assert.Equal(t, []string{"Chlorophyll", "Keratin"}, doc.Questions[0].Options)
	assert.Empty(t, doc.Questions[0].Answer)
}

func TestRenderXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatXLSX, sampleSet(t), true))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, XLSXHeader(true), rows[0])
	assert.Equal(t, []string{"1", "Which pigment absorbs light?", "MCQ", "Chlorophyll\nKeratin", "Chlorophyll"}, rows[1])
	assert.Equal(t, "Oxygen", rows[2][4])
}

func TestRender_UnsupportedAndUnknown(t *testing.T) {
	set := sampleSet(t)
	var buf bytes.Buffer

	for _, f := range []Format{FormatPDF, FormatDOCX} {
		assert.ErrorIs(t, Render(&buf, f, set, false), ErrUnsupportedFormat, "format %s", f)
	}
	assert.ErrorIs(t, Render(&buf, Format("csv"), set, false), ErrUnknownFormat)
	assert.Zero(t, buf.Len())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"txt", FormatTXT, false},
		{" XLSX ", FormatXLSX, false},
		{".json", FormatJSON, false},
		{"pdf", FormatPDF, false},
		{"rtf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownFormat, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Cells_ Part 1.txt", Filename("Cells: Part 1", FormatTXT))
	assert.Equal(t, "questions.xlsx", Filename("  ", FormatXLSX))
}
