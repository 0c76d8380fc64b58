package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dcrhub/internal/config"
	"dcrhub/pkg/metadata"
)

var (
	exportFilters filterFlags
	exportOut     string
	exportForce   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered results as a signed HTML fragment",
	Long:  "Writes the filtered results as an HTML fragment stamped with the digest of the source document. The write is skipped when the existing file was built from the same document and filters.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		src, err := sourceURL(exportFilters.source, config.SourceResults)
		if err != nil {
			return err
		}

		if exportOut == "" {
			return errMissingOut
		}

		sess := newSession(log)

		frame, shareURL, err := runResults(cmd.Context(), sess, src, pageURL(exportFilters.page), exportFilters.state())
		if err != nil {
			return err
		}

		snap := sess.Snapshot(src)
		key := metadata.Digest([]byte(snap.Digest + "\n" + shareURL))

		if !exportForce && unchanged(exportOut, key) {
			log.Info("Export unchanged, skipping write", "out", exportOut)
			fmt.Fprintf(cmd.OutOrStdout(), "No changes (%s unchanged).\n", exportOut)

			return nil
		}

		body, err := exportHTML(frame)
		if err != nil {
			return err
		}

		signed := metadata.Sign(string(body), metadata.Metadata{SourceHash: key, Races: len(frame.Records())})

		if err := os.WriteFile(exportOut, []byte(signed), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}

		log.Info("Export written", "out", exportOut, "races", len(frame.Records()))
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d results.\n", exportOut, len(frame.Records()))

		return nil
	},
}

var errMissingOut = errors.New("--out is required")

func init() {
	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "write even when the source is unchanged")
	rootCmd.AddCommand(exportCmd)
}

// unchanged reports whether path holds an intact export built from key.
func unchanged(path, key string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	meta, _ := metadata.Extract(string(content))
	if meta == nil || meta.SourceHash != key {
		return false
	}

	ok, err := metadata.Verify(string(content))

	return ok && err == nil
}
