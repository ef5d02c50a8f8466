package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("A notification should be appended to the last line", func() {
			So(m.Update(Notify("loop on")()), ShouldNotBeNil)
			So(m.Current(), ShouldEqual, "loop on")
			So(m.View("a\nb"), ShouldEqual, "a\nb  \033[90mloop on\033[0m")
		})

		Convey("A stale clear should not remove a newer notification", func() {
			m.Update("first")
			stale := ClearNotificationMsg{at: m.notifiedAt}
			m.Update("second")
			m.notifiedAt = stale.at.Add(1)

			m.Update(stale)
			So(m.Current(), ShouldEqual, "second")

			m.Update(ClearNotificationMsg{at: m.notifiedAt})
			So(m.Current(), ShouldBeEmpty)
		})

		Convey("Without a notification the view should be unchanged", func() {
			So(m.View("content"), ShouldEqual, "content")
		})
	})
}
