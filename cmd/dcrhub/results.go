package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dcrhub/internal/config"
	"dcrhub/internal/models"
	"dcrhub/internal/render"
	"dcrhub/internal/session"
	"dcrhub/internal/state"
)

// Output formats for results and cards.
const (
	formatMarkdown = "markdown"
	formatStyled   = "styled"
	formatHTML     = "html"
	formatYAML     = "yaml"
	formatJSON     = "json"
)

type filterFlags struct {
	source string
	page   string
	date   string
	course string
	query  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "results document URL or path (default sources.results_url)")
	cmd.Flags().StringVar(&f.page, "url", "", "page URL whose date, course and q parameters seed the filters (default page.url)")
	cmd.Flags().StringVar(&f.date, "date", "", "date filter, yyyy-mm-dd or dd/mm/yyyy")
	cmd.Flags().StringVar(&f.course, "course", "", "course filter, case-insensitive substring")
	cmd.Flags().StringVar(&f.query, "q", "", "free-text search")
}

func (f *filterFlags) state() models.FilterState {
	return models.FilterState{Date: f.date, Course: f.course, Query: f.query}
}

var (
	resultsFilters filterFlags
	resultsFormat  string
	resultsStyle   string
	resultsWidth   int
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print the filtered results once",
	RunE: func(cmd *cobra.Command, _ []string) error {
		src, err := sourceURL(resultsFilters.source, config.SourceResults)
		if err != nil {
			return err
		}

		frame, shareURL, err := runResults(cmd.Context(), newSession(log), src, pageURL(resultsFilters.page), resultsFilters.state())

		out := cmd.OutOrStdout()
		if werr := writeFrame(out, frame, resultsFormat, resultsStyle, resultsWidth); werr != nil {
			return werr
		}

		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Share:", shareURL)

		return nil
	},
}

func init() {
	resultsFilters.register(resultsCmd)
	resultsCmd.Flags().StringVar(&resultsFormat, "format", formatMarkdown, "output format: markdown, styled or html")
	resultsCmd.Flags().StringVar(&resultsStyle, "style", render.StyleAuto, "glamour style for --format styled (auto, dark, light, notty)")
	resultsCmd.Flags().IntVar(&resultsWidth, "width", 120, "word wrap width for --format styled")
	rootCmd.AddCommand(resultsCmd)
}

// runResults drives one load-filter-render cycle and returns the final frame
// and the shareable URL.
func runResults(ctx context.Context, sess *session.Session, src, page string, inputs models.FilterState) (*render.Capture, string, error) {
	frame := &render.Capture{}
	synchronizer := state.New(sess, src, frame, log).WithDebounce(cfg.Filter.GetDebounce())
	defer synchronizer.Close()

	if err := synchronizer.Init(ctx, page, inputs); err != nil {
		return frame, synchronizer.ShareableURL(), err
	}

	// Writes the seeded filters into the shareable URL.
	synchronizer.Flush()

	return frame, synchronizer.ShareableURL(), nil
}

func writeFrame(w io.Writer, frame *render.Capture, format, style string, width int) error {
	var r interface {
		state.Renderer
		Err() error
	}

	switch format {
	case formatHTML:
		r = render.NewHTMLRenderer(w)
	case formatMarkdown, formatStyled:
		if format == formatMarkdown {
			style = render.StylePlain
		}

		styler, err := render.NewStyler(style, width)
		if err != nil {
			return err
		}

		r = render.NewTerminalRenderer(w, styler)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}

	frame.Replay(r)

	return r.Err()
}

// exportHTML renders frame as an HTML fragment.
func exportHTML(frame *render.Capture) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeFrame(&buf, frame, formatHTML, "", 0); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
