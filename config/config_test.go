package config

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/ytbridge/ytbridge/constant"
	"github.com/ytbridge/ytbridge/filesystem"
	"github.com/ytbridge/ytbridge/key"
)

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			// After setup, viper should have defaults from Default map
			for name, field := range Default {
				val := viper.Get(name)
				So(val, ShouldNotBeNil)
				_ = field // just ensuring iteration works
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.time_interval")
			So(result, ShouldEqual, "player_time_interval")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should convert values to the type of the default", func() {
			v, err := Parse(key.PlayerTimeInterval, []string{"250"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 250)

			v, err = Parse(key.HistorySave, []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			v, err = Parse(key.PlayerVars, []string{"controls=0", "rel=0"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"controls=0", "rel=0"})
		})

		Convey("Should refuse unknown keys", func() {
			_, err := Parse("player.hots", []string{"goja"})
			So(errors.Is(err, ErrUnknownKey), ShouldBeTrue)
		})

		Convey("Should refuse values of the wrong type", func() {
			_, err := Parse(key.PlayerTimeInterval, []string{"fast"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.BrowserHeadless, []string{"maybe"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should only accept known script hosts", func() {
			v, err := Parse(key.PlayerHost, []string{"browser"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "browser")

			_, err = Parse(key.PlayerHost, []string{"webkit"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should only accept absolute http origins", func() {
			_, err := Parse(key.PlayerOrigin, []string{"https://example.com"})
			So(err, ShouldBeNil)

			_, err = Parse(key.PlayerOrigin, []string{"example.com"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.PlayerOrigin, []string{"ftp://example.com"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should only accept a positive time interval", func() {
			_, err := Parse(key.PlayerTimeInterval, []string{"0"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.PlayerTimeInterval, []string{"-100"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should check colors, levels, variants and player vars", func() {
			_, err := Parse(key.PlayerBackground, []string{"#000"})
			So(err, ShouldBeNil)
			_, err = Parse(key.PlayerBackground, []string{"url(evil)"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.LogsLevel, []string{"verbose"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.IconsVariant, []string{"nerd"})
			So(err, ShouldBeNil)
			_, err = Parse(key.IconsVariant, []string{"ascii"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.PlayerVars, []string{"controls"})
			So(err, ShouldNotBeNil)
		})

		Convey("Every default should pass its own validation", func() {
			for k, field := range Default {
				if validate, ok := validators[k]; ok {
					So(validate(field.Value), ShouldBeNil)
				}
			}
		})
	})
}

func TestSet(t *testing.T) {
	Convey("Given a config on an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		So(Setup(), ShouldBeNil)

		Reset(func() {
			viper.Set(key.PlayerHost, constant.HostGoja)
		})

		Convey("Setting a valid value should store and persist it", func() {
			previous, value, err := Set(key.PlayerHost, []string{constant.HostBrowser})
			So(err, ShouldBeNil)
			So(previous, ShouldEqual, constant.HostGoja)
			So(value, ShouldEqual, constant.HostBrowser)
			So(viper.GetString(key.PlayerHost), ShouldEqual, constant.HostBrowser)

			exists, err := filesystem.API().Exists(Path())
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)

			Convey("And resetting should restore the default", func() {
				So(Restore(key.PlayerHost), ShouldBeNil)
				So(viper.GetString(key.PlayerHost), ShouldEqual, constant.HostGoja)
			})
		})

		Convey("Setting an invalid value should leave the config untouched", func() {
			_, _, err := Set(key.PlayerTimeInterval, []string{"0"})
			So(err, ShouldNotBeNil)
			So(viper.GetInt(key.PlayerTimeInterval), ShouldEqual, 500)
		})

		Convey("Resetting an unknown key should fail", func() {
			So(errors.Is(Restore("player.hots"), ErrUnknownKey), ShouldBeTrue)
		})
	})
}
