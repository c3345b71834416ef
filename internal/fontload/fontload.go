package fontload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/otcodec"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// ScalableFont is a parsed font file with original bytes, the table codec's view
// and, if x/image is able to read the font, an SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	OT       *otcodec.Font
	SFNT     *sfnt.Font // nil if x/image rejects the font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	if f.OT, err = otcodec.Parse(fbytes); err != nil {
		return nil, err
	}
	if f.SFNT, err = sfnt.Parse(f.Binary); err != nil {
		tracer().Infof("x/image cannot read font: %v", err)
		f.SFNT = nil
	} else if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil && f.Fontname != "" {
		return f, nil
	}
	family, subfamily := otcodec.FamilyName(f.OT)
	f.Fontname = family
	if subfamily != "" {
		f.Fontname += " " + subfamily
	}
	return f, nil
}

// SaveOpenTypeFont serializes a font and writes it to a file. The file is
// written to a temporary sibling first and renamed afterwards, so a failing
// write never leaves a partial font at fontfile.
func SaveOpenTypeFont(otf *otcodec.Font, fontfile string) error {
	data, err := otf.Bytes()
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(fontfile), ".otcodec-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	tracer().Debugf("writing %d bytes to %s", len(data), fontfile)
	return os.Rename(tmp.Name(), fontfile)
}
