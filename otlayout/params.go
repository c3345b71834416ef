package otlayout

import (
	"github.com/npillmayer/otcodec/ot"
)

// FeatureParams is a feature parameter block. The set of block layouts is fixed
// by the OpenType specification and selected by the feature tag; its variants are
// SizeParams, StylisticSetParams and CharacterVariantParams.
type FeatureParams interface {
	ot.Encoder
	featureParams()
}

// SizeParams is the parameter block of feature 'size'. Sizes are in decipoints.
type SizeParams struct {
	DesignSize      uint16
	SubfamilyID     uint16
	SubfamilyNameID uint16
	RangeStart      uint16
	RangeEnd        uint16
}

func (SizeParams) featureParams() {}

func (p SizeParams) Encode(w *ot.Writer) error {
	w.U16s([]uint16{p.DesignSize, p.SubfamilyID, p.SubfamilyNameID, p.RangeStart, p.RangeEnd})
	return nil
}

// StylisticSetParams is the parameter block of features 'ss01' to 'ss20'.
type StylisticSetParams struct {
	Version  uint16
	UINameID uint16
}

func (StylisticSetParams) featureParams() {}

func (p StylisticSetParams) Encode(w *ot.Writer) error {
	w.U16(p.Version)
	w.U16(p.UINameID)
	return nil
}

// CharacterVariantParams is the parameter block of features 'cv01' to 'cv99'.
// Characters are Unicode code points, stored as 24-bit values.
type CharacterVariantParams struct {
	Format                  uint16
	FeatUILabelNameID       uint16
	FeatUITooltipTextNameID uint16
	SampleTextNameID        uint16
	NumNamedParameters      uint16
	FirstParamUILabelNameID uint16
	Characters              []rune
}

func (CharacterVariantParams) featureParams() {}

func (p CharacterVariantParams) Encode(w *ot.Writer) error {
	w.U16s([]uint16{p.Format, p.FeatUILabelNameID, p.FeatUITooltipTextNameID,
		p.SampleTextNameID, p.NumNamedParameters, p.FirstParamUILabelNameID})
	if len(p.Characters) > 0xFFFF {
		return ot.Errorf(ot.ErrWidthOverflow, "FeatureParams", "%d characters", len(p.Characters))
	}
	w.U16(uint16(len(p.Characters)))
	for _, r := range p.Characters {
		w.U24(uint32(r))
	}
	return nil
}

// featureParamsKind tells which parameter block layout a feature tag uses.
func featureParamsKind(tag ot.Tag) string {
	s := tag.String()
	switch {
	case s == "size":
		return "size"
	case len(s) == 4 && s[:2] == "ss" && isDigits(s[2:]) && s[2:] >= "01" && s[2:] <= "20":
		return "ss"
	case len(s) == 4 && s[:2] == "cv" && isDigits(s[2:]) && s[2:] != "00":
		return "cv"
	}
	return ""
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func decodeFeatureParams(tag ot.Tag, c *ot.Cursor) (FeatureParams, error) {
	switch featureParamsKind(tag) {
	case "size":
		v, err := c.U16s(5)
		if err != nil {
			return nil, err
		}
		return SizeParams{v[0], v[1], v[2], v[3], v[4]}, nil
	case "ss":
		v, err := c.U16s(2)
		if err != nil {
			return nil, err
		}
		return StylisticSetParams{Version: v[0], UINameID: v[1]}, nil
	case "cv":
		v, err := c.U16s(7)
		if err != nil {
			return nil, err
		}
		p := CharacterVariantParams{
			Format:                  v[0],
			FeatUILabelNameID:       v[1],
			FeatUITooltipTextNameID: v[2],
			SampleTextNameID:        v[3],
			NumNamedParameters:      v[4],
			FirstParamUILabelNameID: v[5],
		}
		for range int(v[6]) {
			r, err := c.U24()
			if err != nil {
				return nil, err
			}
			p.Characters = append(p.Characters, rune(r))
		}
		return p, nil
	}
	return nil, ot.Errorf(ErrUnsupportedTable, "FeatureParams", "feature %s cannot carry parameters", tag)
}
