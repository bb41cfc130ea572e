package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"

	"github.com/matzehuels/cartesian/pkg/chartfile"
)

// Load reads the chart definition and the data of every layer. Inline
// sources in opts are used as given.
func Load(opts Options) (*chartfile.File, []chartfile.Source, error) {
	f := opts.Chart
	if opts.ChartFile != "" {
		var err error
		if f, err = chartfile.Load(opts.ChartFile); err != nil {
			return nil, nil, err
		}
	} else if opts.Sources == nil {
		if err := f.Validate(); err != nil {
			return nil, nil, err
		}
	} else if err := f.ValidateOptions(); err != nil {
		return nil, nil, err
	}

	if opts.Sources != nil {
		return f, opts.Sources, nil
	}
	sources, err := f.ReadSources()
	if err != nil {
		return nil, nil, err
	}
	return f, sources, nil
}

// HashSources returns a content hash of the layer data.
func HashSources(sources []chartfile.Source) string {
	h := sha256.New()
	var buf []byte
	for _, s := range sources {
		d := s.Data
		buf = append(buf[:0], s.Type...)
		buf = append(buf, 0)
		buf = append(buf, d.CategoryTitle...)
		buf = append(buf, 0)
		buf = append(buf, d.ValueTitle...)
		buf = strconv.AppendBool(append(buf, 0), d.IsScalar)
		for _, c := range d.Categories {
			buf = append(append(buf, 0), c.Key...)
			buf = appendFloat(append(buf, ':'), c.Value)
		}
		for _, sr := range d.Series {
			buf = append(append(buf, 1), sr.Name...)
			for i, v := range sr.Values {
				buf = appendFloat(append(buf, ','), v)
				if sr.Highlighted(i) {
					buf = append(buf, '*')
				}
				if sr.IsInvalid(i) {
					buf = append(buf, '!')
				}
			}
		}
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func appendFloat(b []byte, v float64) []byte {
	if math.IsNaN(v) {
		return append(b, "NaN"...)
	}
	return strconv.AppendFloat(b, v, 'g', -1, 64)
}

func categoryCount(sources []chartfile.Source) int {
	n := 0
	for _, s := range sources {
		n = max(n, s.Data.CategoryCount())
	}
	return n
}
