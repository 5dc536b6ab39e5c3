package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/config"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// field looks up a registered setting, suggesting the closest key when there is none.
func field(key string) (config.Field, error) {
	if f, ok := config.Default[key]; ok {
		return f, nil
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})

	return config.Field{}, fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd serves as the parent command for managing application configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change the settings stored in the config file",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Only describe these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

// configInfoCmd describes the settings with their current and default values.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings with their current and default values",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)

		if keys := lo.Must(cmd.Flags().GetStringSlice("key")); len(keys) > 0 {
			fields = fields[:0]
			for _, k := range keys {
				f, err := field(k)
				handleErr(err)
				fields = append(fields, f)
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			// MarshalJSON has a pointer receiver.
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(lo.ToSlicePtr(fields)))
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

func init() {
	configCmd.AddCommand(configSetCmd)
}

// configSetCmd stores a value in the config file.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Store a value in the config file",
	Example:           "  podfetch config set download.rate_limit 512\n  podfetch config set icons.variant nerd",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		f, err := field(args[0])
		handleErr(err)

		value, err := f.Parse(args[1:])
		handleErr(err)

		viper.Set(f.Key, value)
		handleErr(config.Persist())

		success("set %s to %s", style.Fg(color.Purple)(f.Key), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}

// configGetCmd prints the effective value of a setting.
var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the effective value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		f, err := field(args[0])
		handleErr(err)

		fmt.Println(viper.Get(f.Key))
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().BoolP("all", "a", false, "Restore every setting")
}

// configResetCmd restores settings to their defaults.
var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore settings to their default values",
	ValidArgsFunction: completionConfigKeys,
	PreRun: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) > 0) {
			handleErr(fmt.Errorf("pass either keys or --all"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			args = lo.Keys(config.Default)
		}

		fields := make([]config.Field, 0, len(args))
		for _, k := range args {
			f, err := field(k)
			handleErr(err)
			fields = append(fields, f)
		}

		for _, f := range fields {
			viper.Set(f.Key, f.Value)
		}
		handleErr(config.Persist())

		if len(fields) > 1 {
			success("reset %s", fmt.Sprintf("%d settings", len(fields)))
			return
		}
		success("reset %s to %s", style.Fg(color.Purple)(fields[0].Key), style.Fg(color.Yellow)(fmt.Sprint(fields[0].Value)))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

// configWriteCmd writes every effective setting to the config file.
var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write every effective setting to the config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := config.File()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if exists := lo.Must(filesystem.API().Exists(path)); exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		success("wrote config to %s", path)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

// configDeleteCmd removes the config file, leaving the defaults in effect.
var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Remove the config file",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(config.File()))
		success("deleted %s", config.File())
	},
}
