package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytbridge/ytbridge/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override variable", func() {
			custom := filepath.Join(os.TempDir(), "ytbridge-where-test")
			t.Setenv(EnvConfigPath, custom)
			So(Config(), ShouldEqual, custom)
			So(History(), ShouldEqual, filepath.Join(custom, "history.json"))
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Browser() lives under Cache()", func() {
			So(filepath.Dir(Browser()), ShouldEqual, Cache())
			So(lo.Must(filesystem.API().IsDir(Browser())), ShouldBeTrue)
		})
	})
}
