package ui

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNotifier(t *testing.T) {
	Convey("Given a notifier", t, func() {
		var n Notifier

		Convey("When a notification arrives", func() {
			cmd, handled := n.Update(Notify("Recording saved")())

			Convey("Then it is shown and a clear is scheduled", func() {
				So(handled, ShouldBeTrue)
				So(cmd, ShouldNotBeNil)
				So(n.Text(), ShouldEqual, "Recording saved")
			})

			Convey("And it expires", func() {
				n.Update(clearNotificationMsg{seq: 1})

				Convey("Then it is gone", func() {
					So(n.Text(), ShouldBeEmpty)
					So(n.View("status"), ShouldEqual, "status")
				})
			})

			Convey("And a newer one replaces it before the old one expires", func() {
				n.Update(NotifyError(errors.New("HTTP 403"))())
				n.Update(clearNotificationMsg{seq: 1})

				Convey("Then the newer one stays", func() {
					So(n.Text(), ShouldContainSubstring, "HTTP 403")
				})
			})
		})

		Convey("When an unrelated message arrives", func() {
			_, handled := n.Update(struct{}{})

			Convey("Then it is not handled", func() {
				So(handled, ShouldBeFalse)
			})
		})
	})
}
