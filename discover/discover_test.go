package discover

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/internal/cache"
	"github.com/podfetch/podfetch/podcast"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeFetcher struct {
	pages map[string]string
	calls atomic.Int32
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (io.ReadCloser, int64, error) {
	f.calls.Add(1)
	page, ok := f.pages[url]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s: unexpected status 404 Not Found", podcast.ErrFetch, url)
	}
	return io.NopCloser(strings.NewReader(page)), int64(len(page)), nil
}

type ep struct {
	name, date, id string
}

func landing(q podcast.Quality, episodes ...ep) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, e := range episodes {
		fmt.Fprintf(&b, `<a href="https:%s%s.mp3">dl</a>`, q.Marker(), e.id)
	}
	b.WriteString(`<script type="application/ld+json">` + "\n")
	parts := lo.Map(episodes, func(e ep, _ int) string {
		return fmt.Sprintf(`{"name":%q,"datePublished":%q,"description":"about %s","contentUrl":"http://embedded/%s.mp3"}`, e.name, e.date, e.name, e.id)
	})
	b.WriteString(`{"hasPart":[` + strings.Join(parts, ",") + `]}` + "\n</script></body></html>")
	return b.String()
}

func TestRun(t *testing.T) {
	watermark := lo.Must(podcast.Date("2024-01-10"))

	subs := []podcast.Series{
		{Name: "Sound Lab", URL: "https://pages/sound-lab"},
		{Name: "Broken", URL: "https://pages/broken"},
		{Name: "Archive Hour", URL: "https://pages/archive"},
	}

	Convey("Given three subscriptions, one of them unreachable", t, func() {
		So(cache.Clear(), ShouldBeNil)

		fetcher := &fakeFetcher{pages: map[string]string{
			"https://pages/sound-lab": landing(podcast.High,
				ep{"Old", "2024-01-01", "a1"},
				ep{"Fresh", "2024-01-12", "a2"},
			),
			"https://pages/archive": landing(podcast.High,
				ep{"Vault", "2024-01-11", "b1"},
			),
		}}

		opts := Options{Watermark: watermark, Quality: podcast.High, Workers: 2}

		Convey("The failing series does not affect the others", func() {
			result := Run(context.Background(), fetcher, subs, opts)
			So(result.Err, ShouldBeNil)
			So(len(result.Series), ShouldEqual, 3)

			So(result.Series[0].Err, ShouldBeNil)
			So(errors.Is(result.Series[1].Err, podcast.ErrFetch), ShouldBeTrue)
			So(result.Series[2].Err, ShouldBeNil)

			descriptors := result.Descriptors()
			So(len(descriptors), ShouldEqual, 2)
			So(descriptors[0].FileName, ShouldEqual, "SoundLab-20240112-Fresh.mp3")
			So(descriptors[0].SourceURL, ShouldEqual, "http:"+podcast.High.Marker()+"a2.mp3")
			So(descriptors[1].FileName, ShouldEqual, "ArchiveHour-20240111-Vault.mp3")

			failed := result.Failed()
			So(len(failed), ShouldEqual, 1)
			So(failed[0].Series.Name, ShouldEqual, "Broken")
		})

		Convey("The wrong quality yields a mismatch but no error", func() {
			opts.Quality = podcast.Standard
			result := Run(context.Background(), fetcher, subs[:1], opts)
			So(result.Series[0].Err, ShouldBeNil)
			So(result.Series[0].Descriptors, ShouldBeEmpty)
			So(len(result.Mismatched()), ShouldEqual, 1)
			So(result.Series[0].Mismatch.Links, ShouldEqual, 0)
			So(result.Series[0].Mismatch.Episodes, ShouldEqual, 2)
		})

		Convey("Embedded links are used when preferred", func() {
			opts.PreferEmbedded = true
			result := Run(context.Background(), fetcher, subs[:1], opts)
			So(result.Series[0].Descriptors[0].SourceURL, ShouldEqual, "http://embedded/a2.mp3")
		})

		Convey("FailFast reports the first failure", func() {
			opts.FailFast = true
			opts.Workers = 1
			result := Run(context.Background(), fetcher, subs, opts)
			So(errors.Is(result.Err, podcast.ErrFetch), ShouldBeTrue)
			So(result.Series[0].Err, ShouldBeNil)
			So(result.Series[2].Err, ShouldNotBeNil)
		})

		Convey("OnSeries sees every series", func() {
			var seen atomic.Int32
			opts.OnSeries = func(*SeriesResult) { seen.Add(1) }
			Run(context.Background(), fetcher, subs, opts)
			So(seen.Load(), ShouldEqual, 3)
		})

		Convey("A cached series is not fetched again", func() {
			opts.CacheTTL = time.Hour
			first := Run(context.Background(), fetcher, subs[:1], opts)
			So(first.Series[0].Cached, ShouldBeFalse)
			calls := fetcher.calls.Load()

			second := Run(context.Background(), fetcher, subs[:1], opts)
			So(second.Series[0].Cached, ShouldBeTrue)
			So(fetcher.calls.Load(), ShouldEqual, calls)
			So(second.Descriptors()[0].FileName, ShouldEqual, first.Descriptors()[0].FileName)
			So(second.Descriptors()[0].Published.Equal(first.Descriptors()[0].Published), ShouldBeTrue)
		})
	})

	Convey("A page without structured data is a parse error", t, func() {
		fetcher := &fakeFetcher{pages: map[string]string{"https://pages/x": "<html></html>"}}
		result := Run(context.Background(), fetcher, []podcast.Series{{Name: "X", URL: "https://pages/x"}}, Options{})
		So(errors.Is(result.Series[0].Err, podcast.ErrParse), ShouldBeTrue)
	})

	Convey("No subscriptions", t, func() {
		result := Run(context.Background(), &fakeFetcher{}, nil, Options{})
		So(result.Series, ShouldBeEmpty)
		So(result.Descriptors(), ShouldBeEmpty)
	})
}
