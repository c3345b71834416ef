package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otlayout"
	"github.com/npillmayer/otcodec/ottables"
	"github.com/pterm/pterm"
)

// printOp prints the current table as a hex dump. The dump is limited to
// 256 bytes unless format "all" is given, e.g. "print::all".
func printOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkTable(); err != nil {
		return
	}
	data := intp.font.Table(intp.table)
	pterm.Printf("table %s has %d bytes\n", intp.table, len(data))
	if op.format != "all" && len(data) > 256 {
		data = data[:256]
	}
	for i := 0; i < len(data); i += 16 {
		pterm.Printf("%08x  % x\n", i, data[i:min(i+16, len(data))])
	}
	return nil, false
}

func printNameTable(name *ottables.NameTable, all bool) {
	data := [][]string{{"Platform", "Encoding", "Language", "ID", "String"}}
	for _, rec := range name.Records {
		if !all && rec.PlatformID != ottables.PlatformWindows {
			continue
		}
		data = append(data, []string{
			rec.PlatformID.String(),
			strconv.Itoa(int(rec.EncodingID)),
			fmt.Sprintf("0x%04x", rec.LanguageID),
			strconv.Itoa(int(rec.NameID)),
			rec.String,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if len(name.LangTags) > 0 {
		pterm.Printf("language tags: %v\n", name.LangTags)
	}
}

func printGasp(gasp *ottables.GaspTable) {
	pterm.Printf("gasp version %d\n", gasp.Version)
	data := [][]string{{"Max PPEM", "Behavior"}}
	for _, r := range gasp.Ranges {
		data = append(data, []string{strconv.Itoa(int(r.MaxPPEM)), r.Behavior.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printScript(tag ot.Tag, script otlayout.Script, features otlayout.FeatureList) {
	pterm.Printf("Script %s\n", tag)
	data := [][]string{{"Language", "Required", "Features"}}
	row := func(lang ot.Tag, ls otlayout.LanguageSystem) []string {
		req := "-"
		if i, ok := ls.RequiredFeature.Unwrap(); ok {
			req = formatFeatureRef(features, i)
		}
		refs := make([]string, len(ls.FeatureIndices))
		for j, i := range ls.FeatureIndices {
			refs[j] = formatFeatureRef(features, i)
		}
		return []string{lang.String(), req, strings.Join(refs, " ")}
	}
	if ls, ok := script.DefaultLanguageSystem.Unwrap(); ok {
		data = append(data, row(ot.DFLT, ls))
	}
	for _, lang := range ot.SortedTags(script.LanguageSystems) {
		data = append(data, row(lang, script.LanguageSystems[lang]))
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func formatFeatureRef(features otlayout.FeatureList, i uint16) string {
	if int(i) >= len(features) {
		return fmt.Sprintf("%d:?", i)
	}
	return fmt.Sprintf("%d:%s", i, features[i].Tag)
}

func printFeatureList(features otlayout.FeatureList) {
	pterm.Printf("FeatureList has %d entries\n", len(features))
	if len(features) == 0 {
		return
	}
	data := [][]string{{"Index", "Tag", "Lookups", "Params"}}
	for i, f := range features {
		data = append(data, []string{
			strconv.Itoa(i),
			f.Tag.String(),
			formatLookupIndices(f.LookupIndices),
			formatParams(f.Params),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printFeature(i int, f otlayout.Feature) {
	pterm.Printf("Feature %d: tag=%s lookups=%s params=%s\n",
		i, f.Tag, formatLookupIndices(f.LookupIndices), formatParams(f.Params))
}

func formatLookupIndices(indices []uint16) string {
	if len(indices) == 0 {
		return "-"
	}
	s := make([]string, len(indices))
	for i, inx := range indices {
		s[i] = strconv.Itoa(int(inx))
	}
	return strings.Join(s, ",")
}

func formatParams(params otlayout.FeatureParams) string {
	switch p := params.(type) {
	case nil:
		return "-"
	case otlayout.SizeParams:
		return fmt.Sprintf("size design=%d range=%d..%d", p.DesignSize, p.RangeStart, p.RangeEnd)
	case otlayout.StylisticSetParams:
		return fmt.Sprintf("ss name=%d", p.UINameID)
	case otlayout.CharacterVariantParams:
		return fmt.Sprintf("cv label=%d chars=%d", p.FeatUILabelNameID, len(p.Characters))
	default:
		return fmt.Sprintf("%T", params)
	}
}
