package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytbridge/ytbridge/color"
	"github.com/ytbridge/ytbridge/icon"
	"github.com/ytbridge/ytbridge/inline"
	"github.com/ytbridge/ytbridge/session"
	"github.com/ytbridge/ytbridge/style"
)

func init() {
	rootCmd.AddCommand(probeCmd)
	targetFlags(probeCmd)

	probeCmd.Flags().BoolP("json", "j", false, "Print the report as JSON")
	probeCmd.Flags().Bool("schema", false, "Print the JSON schema of the report and exit")
	probeCmd.Flags().Bool("events", false, "With --schema, print the schema of play --json events instead")
	probeCmd.Flags().Duration("timeout", 30*time.Second, "Give up after this long")

	probeCmd.ValidArgsFunction = completionVideoIDs
}

var probeCmd = &cobra.Command{
	Use:     "probe [video-id]",
	Short:   "Load a video, answer every player query and print the result",
	Args:    cobra.MaximumNArgs(1),
	Example: "  ytbridge probe M7lc1UVf-VE --json\n  ytbridge probe --schema",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			printJSON(cmd, inline.Schema(lo.Must(cmd.Flags().GetBool("events"))))
			return
		}

		target, err := readTarget(cmd, args)
		handleErr(err)

		options, err := session.FromConfig()
		handleErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, lo.Must(cmd.Flags().GetDuration("timeout")))
		defer cancel()

		s, err := session.Open(ctx, options)
		handleErr(err)
		defer func() { handleErr(s.Close()) }()

		report, err := inline.Probe(ctx, s, target)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, report)
			return
		}

		printReport(cmd, report)
	},
}

func printJSON(cmd *cobra.Command, v any) {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	handleErr(encoder.Encode(v))
}

func printReport(cmd *cobra.Command, report *inline.Report) {
	keyStyle := style.New().Foreground(color.Purple).Bold(true).Width(22).Render
	row := func(name string, value any) string {
		return keyStyle(name) + fmt.Sprint(value)
	}

	rows := []string{
		row("binding", report.Binding),
		row("state", report.State),
		row("quality", report.Quality),
		row("duration", fmt.Sprintf("%.2fs", report.Duration)),
		row("current time", fmt.Sprintf("%.2fs", report.CurrentTime)),
		row("loaded", fmt.Sprintf("%.0f%%", report.LoadedFraction*100)),
		row("playback rate", report.PlaybackRate),
		row("available rates", lo.Map(report.AvailablePlaybackRates, func(r float32, _ int) string {
			return fmt.Sprint(r)
		})),
	}

	if report.VideoURL != "" {
		rows = append(rows, row("video url", report.VideoURL))
	}
	if len(report.Playlist) > 0 {
		rows = append(rows, row("playlist", strings.Join(report.Playlist, " ")))
		rows = append(rows, row("playlist index", report.PlaylistIndex))
	}
	for _, kind := range report.Errors {
		rows = append(rows, row("error", style.Fg(color.Red)(kind)))
	}

	failed := lo.Keys(report.Failures)
	sort.Strings(failed)
	for _, name := range failed {
		rows = append(rows, row(name, style.Fg(color.Red)(report.Failures[name])))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.Purple).
		Padding(0, 1)

	cmd.Printf("%s %s\n", icon.Get(icon.Success), style.Bold(report.Target))
	cmd.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
