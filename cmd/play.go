package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytbridge/ytbridge/color"
	"github.com/ytbridge/ytbridge/icon"
	"github.com/ytbridge/ytbridge/inline"
	"github.com/ytbridge/ytbridge/session"
	"github.com/ytbridge/ytbridge/style"
	"github.com/ytbridge/ytbridge/tui"
	"github.com/ytbridge/ytbridge/util"
)

func init() {
	rootCmd.AddCommand(playCmd)
	targetFlags(playCmd)

	playCmd.Flags().BoolP("continue", "c", false, "Resume the video from its saved position")
	playCmd.Flags().Bool("cue", false, "Cue the video without starting playback")
	playCmd.Flags().BoolP("json", "j", false, "Print events as JSON lines instead of opening the monitor")
	playCmd.Flags().Bool("until-ended", false, "Exit once playback ends (without the monitor)")

	playCmd.ValidArgsFunction = completionVideoIDs
}

var playCmd = &cobra.Command{
	Use:     "play [video-id]",
	Short:   "Load a video or playlist and control it",
	Long:    "Load a video or playlist into the player and control it from an interactive monitor, or print its events when not on a terminal.",
	Args:    cobra.MaximumNArgs(1),
	Example: "  ytbridge play M7lc1UVf-VE --continue\n  ytbridge play --videos M7lc1UVf-VE,9bZkp7q19f0 --json",
	Run: func(cmd *cobra.Command, args []string) {
		target, err := readTarget(cmd, args)
		handleErr(err)

		target.Autoplay = !lo.Must(cmd.Flags().GetBool("cue"))
		resume(&target, lo.Must(cmd.Flags().GetBool("continue")))

		options, err := session.FromConfig()
		handleErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s, err := session.Open(ctx, options)
		handleErr(err)
		defer func() { handleErr(s.Close()) }()

		erase := util.PrintErasable(fmt.Sprintf("%s Loading %s...", icon.Get(icon.Progress), target.Label()))
		err = s.Load(ctx, target)
		erase()
		handleErr(err)

		asJSON := lo.Must(cmd.Flags().GetBool("json"))
		if util.IsTerminal() && !asJSON {
			result, err := tui.Run(&tui.Options{
				Title:    target.Label(),
				Remote:   s.Remote(),
				Dispatch: s.Dispatch,
				Ready:    true,
			})
			handleErr(err)
			saveProgress(result.VideoID, result.Position, result.Duration, target.PlaylistID)
			return
		}

		progress, err := inline.Watch(ctx, s, cmd.OutOrStdout(), inline.WatchOptions{
			JSON:       asJSON,
			UntilEnded: lo.Must(cmd.Flags().GetBool("until-ended")),
		})
		handleErr(err)
		saveProgress(progress.VideoID, progress.Position, progress.Duration, target.PlaylistID)

		if !asJSON {
			cmd.PrintErrf("%s stopped at %.0fs\n", style.Fg(color.Green)(icon.Get(icon.Success)), progress.Position)
		}
	},
}
