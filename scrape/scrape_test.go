package scrape

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/podfetch/podfetch/podcast"
	. "github.com/smartystreets/goconvey/convey"
)

func link(q podcast.Quality, id string) string {
	return fmt.Sprintf(`<a href="https:%s%s">Download</a>`, q.Marker(), id)
}

func ldJSON(payload string) string {
	return ldJSONTag + "\n" + payload + "\n</script>"
}

func TestExtractLinks(t *testing.T) {
	Convey("Given a page with two high quality links", t, func() {
		page := "<html>" + link(podcast.High, "p0a1/vpid/p0a1.mp3") + link(podcast.Standard, "lo/x.mp3") + link(podcast.High, "p0b2/vpid/p0b2.mp3") + "</html>"

		Convey("High quality links are extracted in order", func() {
			links := ExtractLinks(page, podcast.High)
			So(links, ShouldResemble, []string{
				"http:" + podcast.High.Marker() + "p0a1/vpid/p0a1.mp3",
				"http:" + podcast.High.Marker() + "p0b2/vpid/p0b2.mp3",
			})
		})

		Convey("Standard quality links do not match the high marker", func() {
			links := ExtractLinks(page, podcast.Standard)
			So(links, ShouldResemble, []string{"http:" + podcast.Standard.Marker() + "lo/x.mp3"})
		})

		Convey("CountLinks agrees", func() {
			So(CountLinks(page, podcast.High), ShouldEqual, 2)
			So(CountLinks(page, podcast.Standard), ShouldEqual, 1)
		})
	})

	Convey("Given a page without markers", t, func() {
		links := ExtractLinks("<html></html>", podcast.High)
		So(links, ShouldNotBeNil)
		So(links, ShouldBeEmpty)
	})

	Convey("Given a marker without a closing quote", t, func() {
		links := ExtractLinks("x"+podcast.High.Marker()+"tail", podcast.High)
		So(links, ShouldResemble, []string{"http:" + podcast.High.Marker() + "tail"})
	})
}

func TestExtractEpisodes(t *testing.T) {
	Convey("Given a page with two structured data blocks", t, func() {
		first := ldJSON(`{"@type":"WebSite","hasPart":[]}`)
		second := ldJSON(`{"@type":"RadioSeries","hasPart":[` +
			`{"name":"Episode One","datePublished":"2024-01-10","description":"First"},` +
			`{"name":"Episode Two","datePublished":"2024-01-17","description":"Second","associatedMedia":{"contentUrl":"http://media.example/2.mp3"}}]}`)
		page := "<html><head>" + first + second + "</head></html>"

		Convey("The last block is used and order is preserved", func() {
			episodes, err := ExtractEpisodes(page)
			So(err, ShouldBeNil)
			So(len(episodes), ShouldEqual, 2)

			So(episodes[0].Name, ShouldEqual, "Episode One")
			So(episodes[0].Published, ShouldEqual, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
			So(episodes[0].Description, ShouldEqual, "First")
			So(episodes[0].MediaURL.IsAbsent(), ShouldBeTrue)

			So(episodes[1].Name, ShouldEqual, "Episode Two")
			So(episodes[1].MediaURL.MustGet(), ShouldEqual, "http://media.example/2.mp3")
		})
	})

	Convey("CRLF line endings are tolerated", t, func() {
		page := ldJSONTag + "\r\n" + `{"hasPart":[{"name":"A","datePublished":"2024-02-01"}]}` + "\r\n</script>"
		episodes, err := ExtractEpisodes(page)
		So(err, ShouldBeNil)
		So(len(episodes), ShouldEqual, 1)
	})

	Convey("Failures are parse errors", t, func() {
		cases := map[string]string{
			"no block":          "<html></html>",
			"no payload line":   "<html>" + ldJSONTag + `{"hasPart":[]}`,
			"invalid json":      ldJSON(`{"hasPart":[`),
			"missing hasPart":   ldJSON(`{"name":"x"}`),
			"null hasPart":      ldJSON(`{"hasPart":null}`),
			"hasPart not array": ldJSON(`{"hasPart":{"name":"x"}}`),
			"bad date":          ldJSON(`{"hasPart":[{"name":"x","datePublished":"10/01/2024"}]}`),
		}

		for name, page := range cases {
			Convey(name, func() {
				_, err := ExtractEpisodes(page)
				So(errors.Is(err, podcast.ErrParse), ShouldBeTrue)
			})
		}
	})

	Convey("The bad element index is reported", t, func() {
		_, err := ExtractEpisodes(ldJSON(`{"hasPart":[{"name":"ok","datePublished":"2024-01-01"},{"name":"bad","datePublished":"soon"}]}`))
		So(err, ShouldNotBeNil)
		So(strings.Contains(err.Error(), "hasPart[1]"), ShouldBeTrue)
	})
}

func TestDocument(t *testing.T) {
	Convey("Given a landing page", t, func() {
		page := `<html><head><title>Fallback - Sounds</title>` +
			`<meta property="og:title" content="Sound Lab">` +
			ldJSON(`{"hasPart":[]}`) + ldJSON(`{"@type":"Thing"}`) +
			`</head><body></body></html>`

		doc, err := Parse(page)
		So(err, ShouldBeNil)

		Convey("Title prefers og:title", func() {
			So(doc.Title(), ShouldEqual, "Sound Lab")
		})

		Convey("Every structured data block is listed", func() {
			blocks := doc.StructuredData()
			So(len(blocks), ShouldEqual, 2)
			So(blocks[1], ShouldEqual, `{"@type":"Thing"}`)
		})
	})

	Convey("Without og:title the title element is used", t, func() {
		doc, err := Parse(`<html><head><title> Plain </title></head></html>`)
		So(err, ShouldBeNil)
		So(doc.Title(), ShouldEqual, "Plain")
	})
}
