package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytbridge/ytbridge/color"
	"github.com/ytbridge/ytbridge/config"
	"github.com/ytbridge/ytbridge/filesystem"
	"github.com/ytbridge/ytbridge/icon"
	"github.com/ytbridge/ytbridge/style"
)

// knownKey fails with a suggestion of the closest key when k is not a config key.
func knownKey(k string) error {
	if _, ok := config.Default[k]; ok {
		return nil
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
	return fmt.Errorf(
		"%w %s, did you mean %s?",
		config.ErrUnknownKey,
		style.Fg(color.Red)(k),
		style.Fg(color.Yellow)(closest),
	)
}

// keyArg takes the key from the first argument or the --key flag.
func keyArg(cmd *cobra.Command, args []string) string {
	k := lo.Must(cmd.Flags().GetString("key"))
	if len(args) > 0 {
		k = args[0]
	}
	if k == "" {
		handleErr(errors.New("key is required as an argument or --key flag"))
	}
	handleErr(knownKey(k))
	return k
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	keys := lo.Keys(config.Default)
	sort.Strings(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configResetCmd, configWriteCmd, configDeleteCmd)

	configInfoCmd.Flags().StringSliceP("key", "k", nil, "Keys to describe, all when omitted")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print the fields as JSON")
	lo.Must0(configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys))

	for _, c := range []*cobra.Command{configGetCmd, configSetCmd, configResetCmd} {
		c.Flags().StringP("key", "k", "", "Configuration key")
		lo.Must0(c.RegisterFlagCompletionFunc("key", completionConfigKeys))
		c.ValidArgsFunction = completionConfigKeys
	}

	configSetCmd.Flags().StringSliceP("value", "v", nil, "New value, repeat for list keys such as player.vars")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key to its default")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change player, browser, history and log settings",
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe configuration keys, their defaults and current values",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		keys := lo.Must(cmd.Flags().GetStringSlice("key"))
		for _, k := range keys {
			handleErr(knownKey(k))
		}
		if len(keys) == 0 {
			keys = lo.Keys(config.Default)
		}
		sort.Strings(keys)

		fields := lo.Map(keys, func(k string, _ int) config.Field { return config.Default[k] })

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(fields))
			return
		}

		for i := range fields {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(fields[i].Pretty())
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:     "get [key]",
	Short:   "Print the current value of a key",
	Args:    cobra.MaximumNArgs(1),
	Example: "  ytbridge config get player.host",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(viper.Get(keyArg(cmd, args)))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value...]",
	Short: "Validate and store a new value for a key",
	Long: "Validate and store a new value for a key. Values are checked before anything is written:\n" +
		"hosts must be known, the origin an absolute http(s) url, intervals positive and player vars name=value pairs.",
	Example: "  ytbridge config set player.host browser\n  ytbridge config set player.vars controls=0 rel=0",
	Run: func(cmd *cobra.Command, args []string) {
		k := keyArg(cmd, args)

		raw := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			raw = args[1:]
		}

		previous, value, err := config.Set(k, raw)
		handleErr(err)

		success("%s %v %s %v",
			style.Fg(color.Purple)(k),
			style.Faint(fmt.Sprint(previous)),
			icon.Get(icon.Play),
			style.Fg(color.Yellow)(fmt.Sprint(value)),
		)
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore a key, or every key, to its default",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			handleErr(config.Restore())
			success("reset all config values")
			return
		}

		k := keyArg(cmd, args)
		handleErr(config.Restore(k))
		success("reset %s to %s", style.Fg(color.Purple)(k), style.Fg(color.Yellow)(fmt.Sprint(config.Default[k].Value)))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current configuration to the config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := config.Path()
		if lo.Must(cmd.Flags().GetBool("force")) {
			if exists, _ := filesystem.API().Exists(path); exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		success("wrote config to %s", path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the config file, falling back to defaults",
	Aliases: []string{"remove"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(config.Path()))
		success("deleted %s", config.Path())
	},
}
