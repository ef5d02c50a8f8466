package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytbridge/ytbridge/color"
	"github.com/ytbridge/ytbridge/history"
	"github.com/ytbridge/ytbridge/icon"
	"github.com/ytbridge/ytbridge/style"
	"github.com/ytbridge/ytbridge/util"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Bool("clear", false, "Forget every saved position")
	historyCmd.Flags().String("remove", "", "Forget the saved position of a video")
	historyCmd.Flags().IntP("limit", "n", 0, "Show at most this many entries")

	historyCmd.MarkFlagsMutuallyExclusive("clear", "remove")
	lo.Must0(historyCmd.RegisterFlagCompletionFunc("remove", completionVideoIDs))
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved playback positions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(history.Clear())
			cmd.Printf("%s History cleared\n", icon.Get(icon.Success))
			return
		}

		if id := lo.Must(cmd.Flags().GetString("remove")); id != "" {
			handleErr(history.Remove(id))
			cmd.Printf("%s Removed %s\n", icon.Get(icon.Success), id)
			return
		}

		entries, err := history.Recent()
		handleErr(err)

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		if len(entries) == 0 {
			cmd.Printf("%s No history yet\n", icon.Get(icon.Info))
			return
		}

		for _, entry := range entries {
			mark := icon.Get(icon.Pause)
			if entry.Finished() {
				mark = style.Fg(color.Green)(icon.Get(icon.Ended))
			}
			cmd.Printf("%s %s %s\n", mark, entry, style.Faint(entry.Updated.Format("2006-01-02 15:04")))
		}

		cmd.Println(style.Faint(fmt.Sprintf("%s saved", util.Quantify(len(entries), "entry", "entries"))))
	},
}
