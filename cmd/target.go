package cmd

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/history"
	"github.com/ytbridge/ytbridge/key"
	"github.com/ytbridge/ytbridge/log"
	"github.com/ytbridge/ytbridge/session"
	"github.com/ytbridge/ytbridge/util"
)

// targetFlags registers the flags every command loading a player shares.
func targetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("playlist", "p", "", "Load a remote playlist by id")
	cmd.Flags().StringSlice("videos", nil, "Load a list of video ids as a playlist")
	cmd.Flags().Int("index", 0, "Playlist entry to start at")
	cmd.Flags().Float64("start", 0, "Offset in seconds into the first video")
	cmd.Flags().String("vars", "", "YAML file of player parameters")
	cmd.Flags().StringSlice("var", nil, "Player parameter as name=value, may be repeated")

	cmd.MarkFlagsMutuallyExclusive("playlist", "videos")
	lo.Must0(cmd.MarkFlagFilename("vars", "yaml", "yml"))
	lo.Must0(cmd.RegisterFlagCompletionFunc("videos", completionVideoIDs))
}

func completionVideoIDs(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ids, err := history.Suggest(toComplete)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// readTarget builds the target from arguments and flags, prompting for a video id on a terminal.
func readTarget(cmd *cobra.Command, args []string) (session.Target, error) {
	target := session.Target{
		PlaylistID: lo.Must(cmd.Flags().GetString("playlist")),
		Videos:     lo.Must(cmd.Flags().GetStringSlice("videos")),
		Index:      lo.Must(cmd.Flags().GetInt("index")),
		Start:      lo.Must(cmd.Flags().GetFloat64("start")),
	}

	if len(args) > 0 {
		target.VideoID = args[0]
	}

	if target.VideoID == "" && target.PlaylistID == "" && len(target.Videos) == 0 {
		id, err := promptVideoID()
		if err != nil {
			return target, err
		}
		target.VideoID = id
	}

	vars := document.Params{}
	if path := lo.Must(cmd.Flags().GetString("vars")); path != "" {
		loaded, err := document.LoadVars(path)
		if err != nil {
			return target, err
		}
		vars = vars.Merge(loaded)
	}

	inline, err := document.ParseVars(lo.Must(cmd.Flags().GetStringSlice("var")))
	if err != nil {
		return target, err
	}
	target.Vars = vars.Merge(inline)

	return target, target.Validate()
}

func promptVideoID() (string, error) {
	if !util.IsTerminal() {
		return "", errors.New("no video id given")
	}

	input := survey.Input{
		Message: "Video id:",
		Help:    "The 11 character id after v= in a watch url",
		Suggest: func(toComplete string) []string {
			ids, err := history.Suggest(toComplete)
			if err != nil {
				log.Warn(err)
			}
			return ids
		},
	}

	var response string
	if err := survey.AskOne(&input, &response, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return response, nil
}

// resume moves the start of a single video to its saved position.
// Without force it only does so when resuming is enabled in the config.
func resume(target *session.Target, force bool) {
	if target.VideoID == "" || target.Start > 0 || !(force || viper.GetBool(key.HistoryResume)) {
		return
	}

	at, err := history.Resume(target.VideoID)
	if err != nil {
		log.Warn(err)
		return
	}
	target.Start = at.OrElse(0)
}

func saveProgress(videoID string, position, duration float64, playlist string) {
	if videoID == "" || position <= 0 || !viper.GetBool(key.HistorySave) {
		return
	}

	err := history.Save(history.Entry{
		VideoID:  videoID,
		Playlist: playlist,
		Position: position,
		Duration: duration,
	})
	if err != nil {
		log.Warn(err)
	}
}
