// Package inline implements the non-interactive mode: printing discoveries and selecting episodes by expression.
package inline

import (
	"encoding/json"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/podfetch/podfetch/discover"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/reconcile"
)

// Series is one subscription in the JSON output.
type Series struct {
	Name     string                `json:"name" jsonschema:"description=Display name of the series"`
	URL      string                `json:"url" jsonschema:"description=Landing page of the series"`
	Episodes []*podcast.Descriptor `json:"episodes" jsonschema:"description=Episodes published on or after the watermark"`
	Mismatch *reconcile.Mismatch   `json:"mismatch,omitempty" jsonschema:"description=Set when the page had a different number of links and episodes"`
	Error    string                `json:"error,omitempty" jsonschema:"description=Why the series could not be processed"`
}

// Output is the JSON document printed by the list command.
type Output struct {
	Watermark string    `json:"watermark" jsonschema:"description=Episodes published before this date (YYYY-MM-DD) are omitted"`
	Quality   string    `json:"quality" jsonschema:"enum=standard,enum=high"`
	Series    []*Series `json:"series"`
}

func asJson(result *discover.Result, options *Options) ([]byte, error) {
	series := make([]*Series, len(result.Series))
	for i, s := range result.Series {
		out := &Series{
			Name:     s.Series.Name,
			URL:      s.Series.URL,
			Episodes: s.Descriptors,
			Mismatch: s.Mismatch,
		}
		if out.Episodes == nil {
			out.Episodes = []*podcast.Descriptor{}
		}
		if s.Err != nil {
			out.Error = s.Err.Error()
		}
		series[i] = out
	}

	return json.MarshalIndent(&Output{
		Watermark: options.Watermark.Format(podcast.DateLayout),
		Quality:   options.Quality.String(),
		Series:    series,
	}, "", "  ")
}

func writeJson(out io.Writer, result *discover.Result, options *Options) error {
	data, err := asJson(result, options)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

// Schema returns the JSON Schema of Output.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	return json.MarshalIndent(reflector.Reflect(&Output{}), "", "  ")
}
