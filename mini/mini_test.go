package mini

import (
	"strings"
	"testing"
	"time"

	"github.com/podfetch/podfetch/podcast"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOptions(t *testing.T) {
	Convey("Given two episodes with the same title", t, func() {
		day := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
		ds := []*podcast.Descriptor{
			{Series: "Sound Lab", Title: "Repeat", Published: day},
			{Series: "Sound Lab", Title: "Repeat", Published: day},
		}

		Convey("Options are still unique", func() {
			options := optionsOf(ds)
			So(options[0], ShouldNotEqual, options[1])
			So(options[0], ShouldEqual, "1. Sound Lab • Repeat (2024-01-12)")
		})

		Convey("Long options are truncated", func() {
			truncateAt = 20
			defer func() { truncateAt = 100 }()
			long := []*podcast.Descriptor{{Series: strings.Repeat("x", 50), Title: "t", Published: day}}
			So(len([]rune(optionsOf(long)[0])), ShouldEqual, 14)
		})
	})
}

func TestFlags(t *testing.T) {
	Convey("Picked indices become selection flags", t, func() {
		So(flags(3, []int{0, 2}), ShouldResemble, []bool{true, false, true})
		So(flags(2, nil), ShouldResemble, []bool{false, false})
		So(flags(2, []int{5}), ShouldResemble, []bool{false, false})
	})
}
