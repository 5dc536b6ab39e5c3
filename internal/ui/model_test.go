package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		var m Model

		Convey("View passes content through when idle", func() {
			So(m.Active(), ShouldBeFalse)
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A notification is appended to the last line", func() {
			So(m.Update(Notify("opened in browser")()), ShouldNotBeNil)
			So(m.Active(), ShouldBeTrue)
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
			So(m.View("a\nb"), ShouldContainSubstring, "opened in browser")

			Convey("And cleared by its own timer", func() {
				m.Update(ClearNotificationMsg{seq: m.seq})
				So(m.Active(), ShouldBeFalse)
			})

			Convey("But not by the timer of an older one", func() {
				stale := ClearNotificationMsg{seq: m.seq}
				m.Update(Notification("copied"))
				m.Update(stale)
				So(m.Active(), ShouldBeTrue)
				So(m.View(""), ShouldContainSubstring, "copied")
			})
		})
	})
}
