package history

import (
	"testing"
	"time"

	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/podcast"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a downloaded episode", t, func() {
		So(Clear(), ShouldBeNil)

		d := &podcast.Descriptor{
			Series:    "Sound Lab",
			Title:     "Echoes",
			Published: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			SourceURL: "http://example.com/a.mp3",
			FileName:  "SoundLab-20240102-Echoes.mp3",
		}

		Convey("When saving the episode", func() {
			err := Save(d, "out/"+d.FileName, 1024)
			So(err, ShouldBeNil)

			Convey("Then it should be retrievable", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(Contains(saved, d), ShouldBeTrue)
				So(saved[d.FileName].Title, ShouldEqual, "Echoes")
				So(saved[d.FileName].Size, ShouldEqual, 1024)
			})

			Convey("And saving it again keeps one record", func() {
				So(Save(d, "elsewhere/"+d.FileName, 2048), ShouldBeNil)
				records, err := Sorted()
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 1)
				So(records[0].Path, ShouldEqual, "elsewhere/"+d.FileName)
			})

			Convey("And removing it forgets it", func() {
				saved, _ := Get()
				So(Remove(saved[d.FileName]), ShouldBeNil)
				saved, _ = Get()
				So(Contains(saved, d), ShouldBeFalse)
			})
		})

		Convey("Sorted orders by series then date", func() {
			later := *d
			later.Published = d.Published.AddDate(0, 0, 7)
			later.FileName = "SoundLab-20240109-Echoes.mp3"
			other := *d
			other.Series = "Archive Hour"
			other.FileName = "ArchiveHour-20240102-Echoes.mp3"

			So(Save(&later, later.FileName, 1), ShouldBeNil)
			So(Save(d, d.FileName, 1), ShouldBeNil)
			So(Save(&other, other.FileName, 1), ShouldBeNil)

			records, err := Sorted()
			So(err, ShouldBeNil)
			So(len(records), ShouldEqual, 3)
			So(records[0].Series, ShouldEqual, "Archive Hour")
			So(records[1].FileName, ShouldEqual, d.FileName)
			So(records[2].FileName, ShouldEqual, later.FileName)
		})
	})
}
