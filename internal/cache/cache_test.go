package cache

import (
	"testing"
	"time"

	"github.com/podfetch/podfetch/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type entry struct {
	Names []string `json:"names"`
}

func TestCache(t *testing.T) {
	Convey("Given an empty cache", t, func() {
		So(Clear(), ShouldBeNil)
		k := GenerateKey("https://example.com/a", "high", "2024-01-01")

		Convey("Keys are deterministic and part-sensitive", func() {
			So(k, ShouldEqual, GenerateKey("https://example.com/a", "high", "2024-01-01"))
			So(k, ShouldNotEqual, GenerateKey("https://example.com/a", "standard", "2024-01-01"))
			So(GenerateKey("ab", "c"), ShouldNotEqual, GenerateKey("a", "bc"))
		})

		Convey("Read misses", func() {
			var e entry
			So(Read(k, &e, time.Hour), ShouldBeFalse)
		})

		Convey("When an entry is written", func() {
			So(Write(k, entry{Names: []string{"x", "y"}}), ShouldBeNil)

			Convey("It is read back within its ttl", func() {
				var e entry
				So(Read(k, &e, time.Hour), ShouldBeTrue)
				So(e.Names, ShouldResemble, []string{"x", "y"})
			})

			Convey("A zero ttl treats it as stale", func() {
				var e entry
				So(Read(k, &e, -time.Second), ShouldBeFalse)
			})
		})
	})
}
