package download

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/history"
	"github.com/podfetch/podfetch/network"
	"github.com/podfetch/podfetch/podcast"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

var (
	plainAudio  = bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x64}, 20000)
	taggedAudio = append([]byte("ID3\x04\x00\x00\x00\x00\x00\x00"), plainAudio[:64]...)
)

func newServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/plain.mp3":
			_, _ = w.Write(plainAudio)
		case "/tagged.mp3":
			_, _ = w.Write(taggedAudio)
		case "/truncated.mp3":
			w.Header().Set("Content-Length", "100000")
			_, _ = w.Write(plainAudio[:1000])
		default:
			http.NotFound(w, r)
		}
	}))
}

func descriptor(server *httptest.Server, name string) *podcast.Descriptor {
	return &podcast.Descriptor{
		Series:      "Sound Lab",
		Title:       strings.TrimSuffix(name, ".mp3"),
		Published:   time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		SourceURL:   server.URL + "/" + name,
		FileName:    "SoundLab-20240112-" + name,
		Description: "About " + name,
	}
}

func read(path string) []byte {
	return lo.Must(filesystem.API().ReadFile(path))
}

func TestRun(t *testing.T) {
	server := newServer()
	defer server.Close()
	fetcher := network.NewFetcher()
	ctx := context.Background()

	Convey("Given a fresh filesystem", t, func() {
		filesystem.SetMemMapFs()
		So(history.Clear(), ShouldBeNil)

		plain := descriptor(server, "plain.mp3")
		tagged := descriptor(server, "tagged.mp3")
		truncated := descriptor(server, "truncated.mp3")
		missing := descriptor(server, "missing.mp3")

		Convey("A selection of the wrong length is a config error", func() {
			_, err := Run(ctx, fetcher, []*podcast.Descriptor{plain}, []bool{true, false}, Options{})
			So(errors.Is(err, podcast.ErrConfig), ShouldBeTrue)
		})

		Convey("Only selected episodes are written", func() {
			report, err := Run(ctx, fetcher, []*podcast.Descriptor{plain, tagged}, []bool{false, true}, Options{Dir: "/out"})
			So(err, ShouldBeNil)
			So(report.Complete(), ShouldBeTrue)
			So(len(report.Completed), ShouldEqual, 1)
			So(read(filepath.Join("/out", tagged.FileName)), ShouldResemble, taggedAudio)

			exists := lo.Must(filesystem.API().Exists(filepath.Join("/out", plain.FileName)))
			So(exists, ShouldBeFalse)
		})

		Convey("Untagged streams get an ID3 tag in front", func() {
			_, err := Run(ctx, fetcher, []*podcast.Descriptor{plain, tagged}, []bool{true, true}, Options{Dir: "/out", Tag: true})
			So(err, ShouldBeNil)

			data := read(filepath.Join("/out", plain.FileName))
			So(bytes.HasPrefix(data, []byte("ID3")), ShouldBeTrue)
			So(bytes.HasSuffix(data, plainAudio), ShouldBeTrue)

			tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
			So(err, ShouldBeNil)
			So(tag.Title(), ShouldEqual, "plain")
			So(tag.Artist(), ShouldEqual, "Sound Lab")
			So(tag.Album(), ShouldEqual, "Sound Lab")
			So(tag.Year(), ShouldEqual, "2024")

			Convey("And tagged streams are left untouched", func() {
				So(read(filepath.Join("/out", tagged.FileName)), ShouldResemble, taggedAudio)
			})
		})

		Convey("Progress ends at one for every download", func() {
			finals := map[string]float64{}
			var totals []int
			_, err := Run(ctx, fetcher, []*podcast.Descriptor{plain, tagged}, []bool{true, true}, Options{
				Progress: func(done, total int, d *podcast.Descriptor, fraction float64) {
					finals[d.FileName] = fraction
					totals = append(totals, total)
				},
			})
			So(err, ShouldBeNil)
			So(finals[plain.FileName], ShouldEqual, 1)
			So(finals[tagged.FileName], ShouldEqual, 1)
			So(lo.Uniq(totals), ShouldResemble, []int{2})
		})

		Convey("A missing file stops the run with a fetch error", func() {
			report, err := Run(ctx, fetcher, []*podcast.Descriptor{missing, plain}, []bool{true, true}, Options{Dir: "/out"})
			So(errors.Is(err, podcast.ErrFetch), ShouldBeTrue)
			So(report.Failed, ShouldEqual, missing)
			So(report.Complete(), ShouldBeFalse)
			So(report.Completed, ShouldBeEmpty)
			So(lo.Must(filesystem.API().Exists(filepath.Join("/out", plain.FileName))), ShouldBeFalse)
		})

		Convey("A truncated transfer is a fetch error", func() {
			path := filepath.Join("/out", truncated.FileName)

			Convey("Its partial file is removed with cleanup", func() {
				_, err := Run(ctx, fetcher, []*podcast.Descriptor{truncated}, []bool{true}, Options{Dir: "/out", Cleanup: true})
				So(errors.Is(err, podcast.ErrFetch), ShouldBeTrue)
				So(lo.Must(filesystem.API().Exists(path)), ShouldBeFalse)
			})

			Convey("Its partial file is kept without cleanup", func() {
				_, err := Run(ctx, fetcher, []*podcast.Descriptor{truncated}, []bool{true}, Options{Dir: "/out"})
				So(errors.Is(err, podcast.ErrFetch), ShouldBeTrue)
				So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)
			})
		})

		Convey("A read-only filesystem is a write error", func() {
			filesystem.Use(afero.NewReadOnlyFs(afero.NewMemMapFs()))
			defer filesystem.SetMemMapFs()

			_, err := Run(ctx, fetcher, []*podcast.Descriptor{plain}, []bool{true}, Options{Dir: "/out"})
			So(errors.Is(err, podcast.ErrWrite), ShouldBeTrue)
		})

		Convey("Completed downloads are recorded", func() {
			_, err := Run(ctx, fetcher, []*podcast.Descriptor{plain}, []bool{true}, Options{Dir: "/out", Record: true})
			So(err, ShouldBeNil)

			saved, err := history.Get()
			So(err, ShouldBeNil)
			So(history.Contains(saved, plain), ShouldBeTrue)
			So(saved[plain.FileName].Size, ShouldEqual, len(plainAudio))
		})

		Convey("Rate limiting still delivers the whole stream", func() {
			_, err := Run(ctx, fetcher, []*podcast.Descriptor{tagged}, []bool{true}, Options{Dir: "/out", RateLimit: 1 << 20})
			So(err, ShouldBeNil)
			So(read(filepath.Join("/out", tagged.FileName)), ShouldResemble, taggedAudio)
		})
	})
}
