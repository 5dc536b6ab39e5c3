package cmd

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/podfetch/podfetch/constant"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	_ = os.Setenv(where.EnvConfigPath, "/podfetch")
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	Convey("Help is printed for the root command", t, func() {
		out, err := execute("--help")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "Usage:")
		So(out, ShouldContainSubstring, "--episodes")
		So(out, ShouldContainSubstring, "catalog")
	})

	Convey("Every subcommand is reachable", t, func() {
		for _, name := range []string{"list", "catalog", "state", "history", "scrape", "config", "clear", "where", "env", "version"} {
			_, err := execute(name, "--help")
			So(err, ShouldBeNil)
		}
	})
}

func TestNewSession(t *testing.T) {
	Convey("Without a state file", t, func() {
		So(filesystem.API().RemoveAll(where.State()), ShouldBeNil)

		_, err := newSession(rootCmd)

		Convey("The run stops with a config error naming the init command", func() {
			So(errors.Is(err, podcast.ErrConfig), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, constant.App+" state init")
		})
	})
}
