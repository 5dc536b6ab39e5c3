package state

import (
	"errors"
	"testing"
	"time"

	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/podcast"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func write(path, content string) {
	lo.Must0(filesystem.API().WriteFile(path, []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	Convey("Given a canonical state file", t, func() {
		const content = "last_download = 2024-01-31\npath = C:\\Users\\me\\Podcasts\nhigh_quality = True\n"
		write("/cfg/configure.txt", content)

		Convey("It is parsed", func() {
			s, err := Load("/cfg/configure.txt")
			So(err, ShouldBeNil)
			So(s.LastDownload, ShouldEqual, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
			So(s.Dir, ShouldEqual, `C:\Users\me\Podcasts`)
			So(s.HighQuality, ShouldBeTrue)
			So(s.Quality(), ShouldEqual, podcast.High)
		})

		Convey("Saving it reproduces the file byte for byte", func() {
			s := lo.Must(Load("/cfg/configure.txt"))
			So(Save("/cfg/out.txt", s), ShouldBeNil)
			So(string(lo.Must(filesystem.API().ReadFile("/cfg/out.txt"))), ShouldEqual, content)
		})
	})

	Convey("Booleans accept any ParseBool literal", t, func() {
		write("/cfg/b.txt", "last_download = 2024-01-31\npath = \nhigh_quality = false\n")
		s, err := Load("/cfg/b.txt")
		So(err, ShouldBeNil)
		So(s.HighQuality, ShouldBeFalse)
		So(s.Dir, ShouldEqual, "")
	})

	Convey("Paths containing '=' survive", t, func() {
		write("/cfg/eq.txt", "last_download = 2024-01-31\npath = /srv/a=b\nhigh_quality = False\n")
		s, err := Load("/cfg/eq.txt")
		So(err, ShouldBeNil)
		So(s.Dir, ShouldEqual, "/srv/a=b")
	})

	Convey("Failures are config errors", t, func() {
		cases := map[string]string{
			"bad date":     "last_download = 31/01/2024\npath = x\nhigh_quality = True\n",
			"bad bool":     "last_download = 2024-01-31\npath = x\nhigh_quality = maybe\n",
			"missing line": "last_download = 2024-01-31\npath = x\n",
			"wrong order":  "path = x\nlast_download = 2024-01-31\nhigh_quality = True\n",
			"no separator": "last_download 2024-01-31\npath = x\nhigh_quality = True\n",
		}
		for name, content := range cases {
			Convey(name, func() {
				write("/cfg/bad.txt", content)
				_, err := Load("/cfg/bad.txt")
				So(errors.Is(err, podcast.ErrConfig), ShouldBeTrue)
			})
		}

		Convey("missing file", func() {
			_, err := Load("/cfg/none.txt")
			So(errors.Is(err, podcast.ErrConfig), ShouldBeTrue)
		})
	})
}

func TestAdvance(t *testing.T) {
	Convey("Advance moves only the watermark", t, func() {
		s := &State{LastDownload: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Dir: "out", HighQuality: true}
		next := s.Advance(time.Date(2024, 2, 3, 15, 30, 0, 0, time.UTC))

		So(next.LastDownload, ShouldEqual, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC))
		So(next.Dir, ShouldEqual, "out")
		So(next.HighQuality, ShouldBeTrue)
		So(s.LastDownload, ShouldEqual, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		So(next.String(), ShouldEqual, "last_download = 2024-02-03\npath = out\nhigh_quality = True\n")
	})
}
