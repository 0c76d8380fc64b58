package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dcrhub/internal/config"
	"dcrhub/internal/models"
	"dcrhub/internal/racecards"
	"dcrhub/internal/render"
)

var (
	cardsSource string
	cardsFormat string
	cardsStyle  string
	cardsWidth  int
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Print today's racecards",
	RunE: func(cmd *cobra.Command, _ []string) error {
		src, err := sourceURL(cardsSource, config.SourceCards)
		if err != nil {
			return err
		}

		sess := newSession(log)

		meetings, err := sess.LoadCardsOnce(cmd.Context(), src)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), racecards.ErrorMessage)

			return err
		}

		doc := models.CardsDocument{UpdatedAt: sess.CardsSnapshot(src).UpdatedAt, Meetings: meetings}

		return writeCards(cmd.OutOrStdout(), doc, cardsFormat, cardsStyle, cardsWidth)
	},
}

func init() {
	cardsCmd.Flags().StringVar(&cardsSource, "source", "", "racecards document URL or path (default sources.cards_url)")
	cardsCmd.Flags().StringVar(&cardsFormat, "format", formatMarkdown, "output format: markdown, styled, html, yaml or json")
	cardsCmd.Flags().StringVar(&cardsStyle, "style", render.StyleAuto, "glamour style for --format styled")
	cardsCmd.Flags().IntVar(&cardsWidth, "width", 120, "word wrap width for --format styled")
	rootCmd.AddCommand(cardsCmd)
}

func writeCards(w io.Writer, doc models.CardsDocument, format, style string, width int) error {
	status := racecards.StatusLine(len(doc.Meetings))

	switch format {
	case formatHTML:
		return render.WriteCards(w, doc.Meetings, status)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(doc)
	case formatMarkdown, formatStyled:
		if format == formatMarkdown {
			style = render.StylePlain
		}

		styler, err := render.NewStyler(style, width)
		if err != nil {
			return err
		}

		r := render.NewTerminalRenderer(w, styler)
		r.RenderCards(doc.Meetings, status)

		return r.Err()
	}

	return fmt.Errorf("%w: %q", errUnknownFormat, format)
}
