package util

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/ytbridge/ytbridge/filesystem"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "entry", "entries"), ShouldEqual, "1 entry")
		So(Quantify(2, "entry", "entries"), ShouldEqual, "2 entries")
		So(Quantify(0, "entry", "entries"), ShouldEqual, "0 entries")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("history file"), ShouldEqual, "History file")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestIgnore(t *testing.T) {
	Convey("Ignore should still run the function", t, func() {
		var called bool
		Ignore(func() error {
			called = true
			return errors.New("ignored")
		})
		So(called, ShouldBeTrue)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("Deleting a file should remove only that file", func() {
			So(afero.WriteFile(fs, "/cache/history.json", []byte("{}"), 0o644), ShouldBeNil)
			So(afero.WriteFile(fs, "/cache/other.json", []byte("{}"), 0o644), ShouldBeNil)

			So(Delete("/cache/history.json"), ShouldBeNil)

			exists, _ := afero.Exists(fs, "/cache/history.json")
			So(exists, ShouldBeFalse)
			exists, _ = afero.Exists(fs, "/cache/other.json")
			So(exists, ShouldBeTrue)
		})

		Convey("Deleting a directory should remove its contents", func() {
			So(afero.WriteFile(fs, "/browser/chromium/chrome", []byte("bin"), 0o755), ShouldBeNil)
			So(Delete("/browser"), ShouldBeNil)

			exists, _ := afero.DirExists(fs, "/browser")
			So(exists, ShouldBeFalse)
		})

		Convey("Deleting a missing path should fail", func() {
			So(Delete("/missing"), ShouldNotBeNil)
		})
	})
}
