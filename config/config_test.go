package config

import (
	"testing"

	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	filesystem.SetMemMapFs()
	t.Setenv("PODFETCH_CONFIG_PATH", "/config")

	Convey("Config Setup", t, func() {
		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate every default", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}

			So(viper.GetInt(key.DiscoverWorkers), ShouldEqual, 4)
			So(viper.GetBool(key.DownloadCleanupPartial), ShouldBeTrue)
			So(viper.GetBool(key.DiscoverPreferEmbedded), ShouldBeFalse)
		})

		Convey("Should read overrides from the environment", func() {
			t.Setenv("PODFETCH_DISCOVER_WORKERS", "9")
			So(Setup(), ShouldBeNil)
			So(viper.GetInt(key.DiscoverWorkers), ShouldEqual, 9)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("download.rate_limit"), ShouldEqual, "download_rate_limit")
		})

		Convey("Field.Env should carry the application prefix", func() {
			field := Default[key.NetworkTimeout]
			So(field.Env(), ShouldEqual, "PODFETCH_NETWORK_TIMEOUT")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field.Parse converts arguments to the default's type", t, func() {
		workers := Default[key.DiscoverWorkers]
		v, err := workers.Parse([]string{"8"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 8)

		_, err = workers.Parse([]string{"eight"})
		So(err, ShouldNotBeNil)

		tag := Default[key.DownloadTag]
		v, err = tag.Parse([]string{"False"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)

		variant := Default[key.IconsVariant]
		v, err = variant.Parse([]string{"emoji", "ignored"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "emoji")

		_, err = variant.Parse(nil)
		So(err, ShouldNotBeNil)
	})

	Convey("Field.Type names the default's type", t, func() {
		for k, want := range map[string]string{
			key.NetworkTimeout: "int",
			key.LogsLevel:      "string",
			key.LogsJson:       "bool",
		} {
			field := Default[k]
			So(field.Type(), ShouldEqual, want)
		}
	})
}
