package axis

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the tick label font size in pixels.
const DefaultFontSize = 11.0

// TextProperties describes the font used for labels.
type TextProperties struct {
	FontFamily string  `json:"font_family,omitempty" toml:"font_family"`
	FontSize   float64 `json:"font_size" toml:"font_size"`
}

func (p TextProperties) size() float64 {
	if p.FontSize <= 0 {
		return DefaultFontSize
	}
	return p.FontSize
}

// TextMeasurer reports rendered text dimensions in pixels.
type TextMeasurer interface {
	Width(text string, props TextProperties) float64
	Height(props TextProperties) float64
}

// FaceMeasurer measures text with an OpenType font. Faces are cached per
// size. It is safe for concurrent use.
type FaceMeasurer struct {
	font  *opentype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFaceMeasurer parses TTF/OTF data.
func NewFaceMeasurer(ttf []byte) (*FaceMeasurer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return &FaceMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

var (
	defaultMeasurer     TextMeasurer
	defaultMeasurerOnce sync.Once
)

// DefaultMeasurer returns a measurer backed by the Go Regular font, falling
// back to the fixed 7x13 bitmap face if the font cannot be parsed.
func DefaultMeasurer() TextMeasurer {
	defaultMeasurerOnce.Do(func() {
		m, err := NewFaceMeasurer(goregular.TTF)
		if err != nil {
			defaultMeasurer = BasicMeasurer{}
			return
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}

func (m *FaceMeasurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

// Width returns the advance width of text.
func (m *FaceMeasurer) Width(text string, props TextProperties) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.face(props.size())
	if err != nil {
		return BasicMeasurer{}.Width(text, props)
	}
	return fixedToFloat(font.MeasureString(f, text))
}

// Height returns ascent plus descent.
func (m *FaceMeasurer) Height(props TextProperties) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.face(props.size())
	if err != nil {
		return BasicMeasurer{}.Height(props)
	}
	metrics := f.Metrics()
	return fixedToFloat(metrics.Ascent + metrics.Descent)
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// BasicMeasurer scales the 7x13 bitmap face to the requested size.
type BasicMeasurer struct{}

func (BasicMeasurer) Width(text string, props TextProperties) float64 {
	w := fixedToFloat(font.MeasureString(basicfont.Face7x13, text))
	return w * props.size() / float64(basicfont.Face7x13.Height)
}

func (BasicMeasurer) Height(props TextProperties) float64 { return props.size() }

// FixedMeasurer approximates text with a constant advance per rune. Widths
// are runes*AdvanceRatio*FontSize and heights LineRatio*FontSize.
type FixedMeasurer struct {
	AdvanceRatio float64
	LineRatio    float64
}

func (m FixedMeasurer) Width(text string, props TextProperties) float64 {
	return float64(utf8.RuneCountInString(text)) * m.AdvanceRatio * props.size()
}

func (m FixedMeasurer) Height(props TextProperties) float64 { return m.LineRatio * props.size() }

// WordBreak splits text on whitespace into lines no wider than maxWidth.
// A single word wider than maxWidth stays on its own line.
func WordBreak(text string, maxWidth float64, m TextMeasurer, props TextProperties) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}
	lines := []string{words[0]}
	for _, w := range words[1:] {
		cand := lines[len(lines)-1] + " " + w
		if m.Width(cand, props) <= maxWidth {
			lines[len(lines)-1] = cand
			continue
		}
		lines = append(lines, w)
	}
	return lines
}

// Truncate shortens text with a trailing ellipsis until it fits maxWidth.
func Truncate(text string, maxWidth float64, m TextMeasurer, props TextProperties) string {
	if m.Width(text, props) <= maxWidth {
		return text
	}
	const ellipsis = "…"
	r := []rune(text)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if s := string(r) + ellipsis; m.Width(s, props) <= maxWidth {
			return s
		}
	}
	return ""
}
