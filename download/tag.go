package download

import (
	"bytes"
	"io"

	"github.com/bogem/id3v2/v2"
	"github.com/podfetch/podfetch/podcast"
)

var id3Magic = []byte("ID3")

func hasTag(head []byte) bool {
	return bytes.HasPrefix(head, id3Magic)
}

// writeTag writes an ID3v2.4 tag describing d to w.
func writeTag(w io.Writer, d *podcast.Descriptor) (int64, error) {
	tag := id3v2.NewEmptyTag()
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	tag.SetTitle(d.Title)
	tag.SetArtist(d.Series)
	tag.SetAlbum(d.Series)
	tag.SetGenre("Podcast")
	if !d.Published.IsZero() {
		tag.SetYear(d.Published.Format("2006"))
	}

	if d.Description != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        d.Description,
		})
	}

	return tag.WriteTo(w)
}
