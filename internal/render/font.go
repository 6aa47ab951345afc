package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Face is a glyph face plus a coverage check for choosing an alphabet.
type Face struct {
	font.Face
	Name   string
	covers func(r rune) bool
}

// Covers reports whether every rune has a real glyph in the face.
func (f *Face) Covers(runes []rune) bool {
	for _, r := range runes {
		if !f.covers(r) {
			return false
		}
	}
	return true
}

// LoadFace loads a face of the given pixel size. An empty path selects the
// embedded Go Mono font; otherwise the file is parsed as TrueType.
func LoadFace(path string, sizePx float64) (*Face, error) {
	if path == "" {
		return goMonoFace(sizePx)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face := truetype.NewFace(tt, &truetype.Options{Size: sizePx, DPI: 72, Hinting: font.HintingFull})
	return &Face{
		Face:   face,
		Name:   path,
		covers: func(r rune) bool { return tt.Index(r) != 0 },
	}, nil
}

func goMonoFace(sizePx float64) (*Face, error) {
	fnt, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go mono: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: sizePx, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("go mono face: %w", err)
	}
	var buf sfnt.Buffer
	return &Face{
		Face: face,
		Name: "gomono",
		covers: func(r rune) bool {
			idx, err := fnt.GlyphIndex(&buf, r)
			return err == nil && idx != 0
		},
	}, nil
}

// BasicFace is the bitmap fallback used when no outline font can be loaded.
func BasicFace() *Face {
	face := basicfont.Face7x13
	return &Face{
		Face: face,
		Name: "basicfont",
		covers: func(r rune) bool {
			for _, rr := range face.Ranges {
				if r >= rr.Low && r < rr.High {
					return true
				}
			}
			return false
		},
	}
}
