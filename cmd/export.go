package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studykit/studykit/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <set-id>",
	Short: "Write a question set to a txt, json or xlsx document",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("format", "", "Output format: "+formatList()+" (default from config)")
	exportCmd.Flags().Bool("answers", false, "Include correct answers")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout for txt/json, a file named after the set for xlsx)")
}

func formatList() string {
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	answers, _ := cmd.Flags().GetBool("answers")
	output, _ := cmd.Flags().GetString("output")

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if formatName == "" {
		formatName = rt.cfg.Export.DefaultFormat
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return fmt.Errorf("%w (choose one of %s)", err, formatList())
	}

	set, err := rt.store.QuestionSetRepo().Get(cmd.Context(), rt.cfg.Profile, args[0])
	if err != nil {
		return describeLoadError("question set", args[0], err)
	}

	if output == "" && format == export.FormatXLSX {
		output = export.Filename(set.Title(), format)
	}
	if output == "" {
		return export.Render(cmd.OutOrStdout(), format, set, answers)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := export.Render(f, format, set, answers); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	rt.log.Info("question set exported",
		zap.String("set_id", set.ID()), zap.String("format", string(format)), zap.String("file", output))
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
	return nil
}
