package open

import (
	"runtime"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWatchURL(t *testing.T) {
	Convey("Given a video id", t, func() {
		Convey("Without a position the url should only carry the id", func() {
			So(WatchURL("M7lc1UVf-VE", 0), ShouldEqual, "https://www.youtube.com/watch?v=M7lc1UVf-VE")
		})

		Convey("A position should be truncated to whole seconds", func() {
			So(WatchURL("M7lc1UVf-VE", 93.8), ShouldEqual, "https://www.youtube.com/watch?t=93s&v=M7lc1UVf-VE")
		})

		Convey("Positions under a second should be dropped", func() {
			So(WatchURL("M7lc1UVf-VE", 0.4), ShouldNotContainSubstring, "t=")
		})
	})
}

func TestCommand(t *testing.T) {
	Convey("The handler command should receive the url as its last argument", t, func() {
		cmd, ok := command("https://www.youtube.com/watch?v=M7lc1UVf-VE")
		if !ok {
			SkipSo(runtime.GOOS, ShouldBeEmpty)
			return
		}
		So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://www.youtube.com/watch?v=M7lc1UVf-VE")
	})
}
