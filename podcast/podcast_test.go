package podcast

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSeries(t *testing.T) {
	Convey("Given a series with spaced name", t, func() {
		s := Series{Name: "In Our\tTime  Extra", URL: "https://example.com"}

		Convey("Compact should drop every whitespace rune", func() {
			So(s.Compact(), ShouldEqual, "InOurTimeExtra")
		})
	})
}

func TestDescriptorPath(t *testing.T) {
	Convey("Given a descriptor", t, func() {
		d := &Descriptor{FileName: "A-20240101-B.mp3"}

		Convey("Empty dir means the working directory", func() {
			So(d.Path(""), ShouldEqual, "A-20240101-B.mp3")
		})

		Convey("Dir is joined", func() {
			So(d.Path("out"), ShouldEqual, filepath.Join("out", "A-20240101-B.mp3"))
		})
	})
}

func TestQuality(t *testing.T) {
	Convey("Quality markers", t, func() {
		So(ParseQuality(true), ShouldEqual, High)
		So(ParseQuality(false), ShouldEqual, Standard)
		So(High.Marker(), ShouldEndWith, "/audio-nondrm-download/")
		So(Standard.Marker(), ShouldEndWith, "/audio-nondrm-download-low/")
		So(strings.HasPrefix(High.Marker(), "//open.live.bbc.co.uk/"), ShouldBeTrue)
	})
}

func TestDates(t *testing.T) {
	Convey("Date parsing", t, func() {
		d, err := Date("2024-03-05")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

		_, err = Date("05/03/2024")
		So(err, ShouldNotBeNil)

		So(Day(time.Date(2024, 3, 5, 17, 4, 0, 0, time.UTC)), ShouldEqual, d)
	})
}

func TestKind(t *testing.T) {
	Convey("Kind classifies wrapped errors", t, func() {
		So(Kind(fmt.Errorf("%w: timeout", ErrFetch)), ShouldEqual, ErrFetch)
		So(Kind(fmt.Errorf("outer: %w", fmt.Errorf("%w: x", ErrWrite))), ShouldEqual, ErrWrite)
		So(Kind(errors.New("plain")), ShouldBeNil)
	})
}
