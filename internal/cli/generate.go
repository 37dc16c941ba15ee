package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/vocaexam/internal/config"
	"github.com/phrazzld/vocaexam/internal/domain/extract"
	"github.com/phrazzld/vocaexam/internal/domain/layout"
	"github.com/phrazzld/vocaexam/internal/platform/datasource"
	"github.com/phrazzld/vocaexam/internal/platform/pdf"
	"github.com/phrazzld/vocaexam/internal/platform/preview"
	"github.com/phrazzld/vocaexam/internal/service"
	"github.com/phrazzld/vocaexam/internal/session"
	"github.com/spf13/cobra"
)

// Output formats of the generate command.
const (
	formatPDF      = "pdf"
	formatMarkdown = "markdown"
)

type generateFlags struct {
	day         int
	mode        string
	wordsPerDay int
	keepOrder   bool
	message     string
	format      string
	out         string
}

func newGenerateCmd(opts *options) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the review exam for a study day",
		Long: "Resolve the review days for --day, extract their words and write the exam " +
			"as a PDF (default) or print it as a markdown table.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, flags)
		},
	}

	cmd.Flags().IntVar(&flags.day, "day", 0, "Target study day (required, at least 1)")
	cmd.Flags().StringVar(&flags.mode, "mode", string(extract.ModeMarker), "Day addressing: marker or position")
	cmd.Flags().IntVar(&flags.wordsPerDay, "words-per-day", 0, "Block size in position mode: 15, 20 or 30")
	cmd.Flags().BoolVar(&flags.keepOrder, "keep-order", false, "Keep dataset order instead of shuffling")
	cmd.Flags().StringVar(&flags.message, "message", "", "Encouragement message printed after the table")
	cmd.Flags().StringVar(&flags.format, "format", formatPDF, "Output format: pdf or markdown")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "",
		"Output file; pdf defaults to day{D}_시험지.pdf, markdown defaults to stdout")
	_ = cmd.MarkFlagRequired("day")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *options, flags *generateFlags) error {
	if flags.format != formatPDF && flags.format != formatMarkdown {
		return fmt.Errorf("unknown format %q: want %s or %s", flags.format, formatPDF, formatMarkdown)
	}
	mode, err := extract.ParseMode(flags.mode)
	if err != nil {
		return err
	}

	cfg, log, err := opts.setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	opened, err := datasource.Open(ctx, cfg.Dataset, log)
	if err != nil {
		return err
	}
	defer closeQuietly(opened, log)

	// A markdown table never reaches the PDF renderer.
	if flags.format == formatMarkdown {
		cfg.PDF.AllowCoreFont = true
	}
	svc, err := newExamService(cfg, opened, log)
	if err != nil {
		return err
	}

	view, err := svc.Generate(ctx, service.GenerateRequest{
		TargetDay:   flags.day,
		Mode:        mode,
		WordsPerDay: flags.wordsPerDay,
		KeepOrder:   flags.keepOrder,
		Message:     flags.message,
	})
	if err != nil {
		return err
	}
	for _, warning := range view.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}

	if flags.format == formatMarkdown {
		return writeMarkdown(cmd.OutOrStdout(), flags.out, cfg, view)
	}

	export, err := svc.Export(ctx, view.ID, nil)
	if err != nil {
		return err
	}
	path := flags.out
	if path == "" {
		path = export.Filename
	}
	if err := os.WriteFile(path, export.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d words (%s)\n", path, export.WordCount, view.Title)
	return nil
}

// writeMarkdown prints the exam as a markdown table to path, or to stdout
// when path is empty.
func writeMarkdown(stdout io.Writer, path string, cfg *config.Config, view *service.ExamView) error {
	doc := layout.Document{
		Title: view.Title,
		Rows:  view.Rows,
	}
	if cfg.Exam.ShowDayCounts {
		doc.CountsLine = view.CountsLine
	}
	doc.Message = view.Message
	if doc.Message == "" {
		doc.Message = cfg.Exam.DefaultMessage
	}

	text := preview.Markdown(doc)
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// newExamService wires an ExamService over an opened dataset with an
// in-process session store.
func newExamService(cfg *config.Config, opened *datasource.Opened, log *slog.Logger) (service.ExamService, error) {
	pdfRenderer, err := pdf.NewRenderer(pdf.Fonts{
		Regular:   cfg.PDF.RegularFont,
		Bold:      cfg.PDF.BoldFont,
		AllowCore: cfg.PDF.AllowCoreFont,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pdf renderer (set pdf.regular_font to a Hangul TrueType font): %w", err)
	}

	return service.NewExamService(
		service.ExamServiceConfig{
			FallbackSpan:    cfg.Exam.FallbackSpan,
			MessageMaxChars: cfg.Exam.MessageMaxChars,
			DefaultMessage:  cfg.Exam.DefaultMessage,
			ShowDayCounts:   cfg.Exam.ShowDayCounts,
		},
		service.ExamServiceDeps{
			Dataset:  opened.Source,
			Sessions: session.NewMemoryStore(0, log),
			PDF:      pdfRenderer,
			Preview:  preview.NewRenderer(),
			Logger:   log,
		},
	)
}
