package util

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/hlsplay/hlsplay/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestUniqueFilename(t *testing.T) {
	Convey("Given a directory", t, func() {
		dir := "/recordings"
		So(filesystem.API().MkdirAll(dir, 0o755), ShouldBeNil)
		Reset(func() { _ = filesystem.API().RemoveAll(dir) })

		Convey("A free name is returned unchanged", func() {
			So(UniqueFilename(dir, "stream.ts"), ShouldEqual, "stream.ts")
		})

		Convey("Taken names get an increasing counter", func() {
			So(filesystem.API().WriteFile(filepath.Join(dir, "stream.ts"), nil, 0o644), ShouldBeNil)
			So(UniqueFilename(dir, "stream.ts"), ShouldEqual, "stream_1.ts")

			So(filesystem.API().WriteFile(filepath.Join(dir, "stream_1.ts"), nil, 0o644), ShouldBeNil)
			So(UniqueFilename(dir, "stream.ts"), ShouldEqual, "stream_2.ts")
		})
	})
}

func TestFormatTime(t *testing.T) {
	Convey("FormatTime", t, func() {
		So(FormatTime(0), ShouldEqual, "00:00:00")
		So(FormatTime(42.9), ShouldEqual, "00:00:42")
		So(FormatTime(3725), ShouldEqual, "01:02:05")
		So(FormatTime(-3), ShouldEqual, "00:00:00")
		So(FormatTime(math.NaN()), ShouldEqual, "00:00:00")
	})
}

func TestFormatSpeed(t *testing.T) {
	Convey("FormatSpeed", t, func() {
		So(FormatSpeed(0), ShouldEqual, "")
		So(FormatSpeed(-5), ShouldEqual, "")
		So(FormatSpeed(2048), ShouldEqual, "2.0 KB/s")
		So(FormatSpeed(1.5*1024*1024), ShouldEqual, "1.5 MB/s")
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "entry", "entries"), ShouldEqual, "1 entry")
		So(Quantify(2, "entry", "entries"), ShouldEqual, "2 entries")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(120, 0, 100), ShouldEqual, 100)
		So(Clamp(-4, 0, 100), ShouldEqual, 0)
		So(Clamp(55, 0, 100), ShouldEqual, 55)
		So(Clamp(2.5, 0.0, 1.0), ShouldEqual, 1.0)
	})
}

func TestStack(t *testing.T) {
	Convey("Given an empty stack", t, func() {
		var s Stack[int]

		Convey("Pop should report that it is empty", func() {
			_, ok := s.Pop()
			So(ok, ShouldBeFalse)
		})

		Convey("Items should come back in reverse order", func() {
			s.Push(1)
			s.Push(2)
			So(s.Len(), ShouldEqual, 2)

			top, ok := s.Pop()
			So(ok, ShouldBeTrue)
			So(top, ShouldEqual, 2)

			top, _ = s.Pop()
			So(top, ShouldEqual, 1)
			So(s.Len(), ShouldEqual, 0)
		})

		Convey("Clear should drop everything", func() {
			s.Push(1)
			s.Clear()
			So(s.Len(), ShouldEqual, 0)
		})
	})
}
