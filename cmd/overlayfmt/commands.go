package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/overlayfmt/internal/format"
	"github.com/vytor/overlayfmt/internal/models"
	"github.com/vytor/overlayfmt/internal/services"
)

func newClockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clock <timestamp|duration>",
		Short: "Format an instant or elapsed duration as a clock",
		Long: `Format an instant or an elapsed duration as an overlay clock.

RFC 3339 timestamps are formatted by their UTC time of day. Anything else is
parsed as a Go duration and measured from midnight.`,
		Example: `  overlayfmt clock 2000-01-01T12:34:56Z   # 12:34:56
  overlayfmt clock 1h2m3s                 # 1:02:03
  overlayfmt clock 45s                    # 00:45`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if at, err := time.Parse(time.RFC3339Nano, args[0]); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), format.FormatTimestamp(at))
				return nil
			}
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return fmt.Errorf("%q is neither an RFC 3339 timestamp nor a duration", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.FormatDuration(d))
			return nil
		},
	}
}

func newGameIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "game-id <url>",
		Short:   "Extract the lichess game ID from a URL",
		Example: `  overlayfmt game-id https://lichess.org/45qeL6U8/white   # 45qeL6U8`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := format.GetGameIDFromURL(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newChapterNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapter-name [name]",
		Short: "Format a chapter name for display",
		Example: `  overlayfmt chapter-name                                   # (No game)
  overlayfmt chapter-name "Russian Game: Stafford Gambit"   # STAFFORD GAMBIT`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name *string
			if len(args) == 1 {
				name = &args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.RenameOpeningStaffordGambit(format.FormatOptionalChapterName(name)))
			return nil
		},
	}
}

func newChapterCmd() *cobra.Command {
	var (
		url     string
		name    string
		elapsed time.Duration
	)

	cmd := &cobra.Command{
		Use:   "chapter <pgn-file|->",
		Short: "Describe a broadcast chapter from its PGN",
		Long: `Describe a broadcast chapter from its PGN as JSON.

The game ID comes from --url, or from the GameURL/Site tags. The chapter name
comes from --name, or from the Opening tag, or from the ECO book.`,
		Example: `  overlayfmt chapter round3.pgn
  lichess-export | overlayfmt chapter - --elapsed 1h5m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pgnText, err := readPGN(cmd, args[0])
			if err != nil {
				return err
			}

			input := models.ChapterInput{
				URL:       url,
				PGN:       pgnText,
				ElapsedMS: elapsed.Milliseconds(),
			}
			if cmd.Flags().Changed("name") {
				input.Name = &name
			}

			chapter, err := services.NewChapterService(nil).Describe(cmd.Context(), input)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(chapter)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "lichess game URL")
	cmd.Flags().StringVar(&name, "name", "", "chapter name (overrides the PGN opening)")
	cmd.Flags().DurationVar(&elapsed, "elapsed", 0, "elapsed broadcast time")

	return cmd
}

func readPGN(cmd *cobra.Command, path string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open pgn: %w", err)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pgn: %w", err)
	}
	return string(b), nil
}
