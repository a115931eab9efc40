package rendering

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-drift/clockface/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16
	// fontDPI makes opentype point sizes equal pixel sizes.
	fontDPI = 72
)

// FontWeight represents a numeric font weight.
type FontWeight int

const (
	FontWeightThin     FontWeight = 100
	FontWeightNormal   FontWeight = 400
	FontWeightSemibold FontWeight = 600
	FontWeightBold     FontWeight = 700
)

// Font selects a font family at a pixel size and weight.
type Font struct {
	Family string
	Size   float64
	Weight FontWeight
}

// String formats the font like a CSS font shorthand ("100 19.23px arial").
func (f Font) String() string {
	weight := f.Weight
	if weight == 0 {
		weight = FontWeightNormal
	}
	size := strconv.FormatFloat(f.Size, 'f', 2, 64)
	size = strings.TrimRight(strings.TrimRight(size, "0"), ".")
	return fmt.Sprintf("%d %spx %s", weight, size, f.Family)
}

// TextBaseline selects which line of the text the draw position refers to.
type TextBaseline int

const (
	// BaselineAlphabetic positions text on its alphabetic baseline.
	BaselineAlphabetic TextBaseline = iota
	// BaselineMiddle centers text vertically on the draw position.
	BaselineMiddle
)

// String returns a human-readable representation of the baseline.
func (b TextBaseline) String() string {
	switch b {
	case BaselineAlphabetic:
		return "alphabetic"
	case BaselineMiddle:
		return "middle"
	default:
		return fmt.Sprintf("TextBaseline(%d)", int(b))
	}
}

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color    Color
	Font     Font
	Baseline TextBaseline
}

// TextLayout is a single line of text with its measured width.
type TextLayout struct {
	Text  string
	Style TextStyle
	Width float64
}

// TextMeasurer measures the advance width of text in pixels.
type TextMeasurer interface {
	MeasureText(text string, font Font) float64
}

// MeasureFunc adapts a plain function to TextMeasurer.
type MeasureFunc func(text string, font Font) float64

// MeasureText calls f(text, font).
func (f MeasureFunc) MeasureText(text string, font Font) float64 {
	return f(text, font)
}

// LayoutText measures text with the provided measurer.
func LayoutText(text string, style TextStyle, measurer TextMeasurer) (*TextLayout, error) {
	if measurer == nil {
		return nil, stderrors.New("text measurer required")
	}
	if style.Font.Size <= 0 {
		style.Font.Size = defaultFontSize
	}
	return &TextLayout{
		Text:  text,
		Style: style,
		Width: measurer.MeasureText(text, style.Font),
	}, nil
}

type faceKey struct {
	family string
	size   float64
	bold   bool
}

// FontManager resolves font families to opentype faces. Unknown families
// fall back to the bundled Go fonts, so every family name yields a face.
type FontManager struct {
	mu       sync.Mutex
	fonts    map[string]*sfnt.Font
	regular  *sfnt.Font
	bold     *sfnt.Font
	faces    map[faceKey]font.Face
	fallback string
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with the bundled Go fonts loaded.
func NewFontManager() (*FontManager, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bundled regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bundled bold font: %w", err)
	}
	return &FontManager{
		fonts:    make(map[string]*sfnt.Font),
		regular:  regular,
		bold:     bold,
		faces:    make(map[faceKey]font.Face),
		fallback: "go",
	}, nil
}

// DefaultFontManagerErr returns a shared font manager with the bundled fonts.
// It returns both the manager and any error that occurred during initialization.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.ClockError{
				Op:   "rendering.DefaultFontManager",
				Kind: errors.KindRender,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns the shared font manager, or nil if the bundled
// fonts failed to load.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// RegisterFont registers a font family from TrueType or OpenType data.
// Family names are matched case-insensitively.
func (m *FontManager) RegisterFont(name string, data []byte) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return stderrors.New("font name required")
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[name] = f
	for key := range m.faces {
		if key.family == name {
			delete(m.faces, key)
		}
	}
	return nil
}

// Face resolves a font face for f. Faces are cached per family and size.
func (m *FontManager) Face(f Font) (font.Face, error) {
	size := f.Size
	if size <= 0 {
		size = defaultFontSize
	}
	family := strings.ToLower(strings.TrimSpace(f.Family))

	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.fonts[family]
	bold := false
	if !ok {
		family = m.fallback
		src = m.regular
		if f.Weight >= FontWeightBold {
			src = m.bold
			bold = true
		}
	}
	key := faceKey{family: family, size: size, bold: bold}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = face
	return face, nil
}

// MeasureText returns the advance width of text in pixels. It returns 0
// when no face can be built for f.
func (m *FontManager) MeasureText(text string, f Font) float64 {
	face, err := m.Face(f)
	if err != nil {
		return 0
	}
	return fixedToFloat(font.MeasureString(face, text))
}

// Metrics returns the ascent and descent of f in pixels.
func (m *FontManager) Metrics(f Font) (ascent, descent float64, err error) {
	face, err := m.Face(f)
	if err != nil {
		return 0, 0, err
	}
	metrics := face.Metrics()
	return fixedToFloat(metrics.Ascent), fixedToFloat(metrics.Descent), nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
