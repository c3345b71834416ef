package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/npillmayer/otcodec"
	"github.com/npillmayer/otcodec/internal/fontload"
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otlayout"
	"github.com/npillmayer/otcodec/otquery"
	"github.com/npillmayer/otcodec/ottables"
	"github.com/thatisuday/commando"
)

func runFixCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	out := strings.TrimSpace(args["output"].Value)
	if out == "" {
		fatalf("output path is required")
	}
	f := mustLoadFont(args)
	if err := fixFont(f.OT, out); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s\n", out)
}

func fixFont(otf *otcodec.Font, out string) error {
	if err := otcodec.FixNonHinted(otf); err != nil {
		return fmt.Errorf("cannot fix font: %w", err)
	}
	if err := fontload.SaveOpenTypeFont(otf, out); err != nil {
		return fmt.Errorf("cannot write font: %w", err)
	}
	return nil
}

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(args)
	tags, err := parseTags(args["tables"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Path: %s\n", f.Filepath)
	printFontInfo(os.Stdout, f.OT, tags)
}

func printFontInfo(w io.Writer, otf *otcodec.Font, tables []ot.Tag) {
	fmt.Fprintf(w, "Type: %s\n", otquery.FontType(otf))
	names := otquery.NameInfo(otf)
	for _, key := range []string{"family", "subfamily", "version"} {
		if s := names[key]; s != "" {
			fmt.Fprintf(w, "%s%s: %s\n", strings.ToUpper(key[:1]), key[1:], s)
		}
	}
	tags := otf.TableTags()
	fmt.Fprintf(w, "Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Fprintf(w, " %s", tag.String())
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Layout: %s\n", strings.Join(otquery.LayoutTables(otf), ","))
	for _, tag := range tables {
		printTable(w, otf, tag)
	}
}

// printTable prints the size of a table and, for tables with a codec, a short
// summary of its decoded content.
func printTable(w io.Writer, otf *otcodec.Font, tag ot.Tag) {
	data := otf.Table(tag)
	if data == nil {
		fmt.Fprintf(w, "table %s: missing\n", tag)
		return
	}
	fmt.Fprintf(w, "table %s: size=%d", tag, len(data))
	var summary string
	var err error
	switch tag {
	case ot.T("gasp"):
		var gasp *ottables.GaspTable
		if gasp, err = otcodec.Decode[ottables.GaspTable](otf); err == nil {
			var ranges []string
			for _, r := range gasp.Ranges {
				ranges = append(ranges, fmt.Sprintf("<=%d:%s", r.MaxPPEM, r.Behavior))
			}
			summary = fmt.Sprintf("version=%d ranges=[%s]", gasp.Version, strings.Join(ranges, " "))
		}
	case ot.T("prep"):
		summary = fmt.Sprintf("program=% x", data)
	case ot.T("maxp"):
		var maxp *ottables.MaxpTable
		if maxp, err = otcodec.Decode[ottables.MaxpTable](otf); err == nil {
			summary = fmt.Sprintf("version=%08x glyphs=%d", uint32(maxp.Version), maxp.NumGlyphs)
		}
	case ot.T("name"):
		var name *ottables.NameTable
		if name, err = otcodec.Decode[ottables.NameTable](otf); err == nil {
			summary = fmt.Sprintf("format=%d records=%d", name.Format, len(name.Records))
		}
	case ot.T("avar"):
		var avar *ottables.AvarTable
		if avar, err = otcodec.Decode[ottables.AvarTable](otf); err == nil {
			summary = fmt.Sprintf("version=%d.%d axes=%d", avar.MajorVersion, avar.MinorVersion, len(avar.Axes))
		}
	case ot.T("GSUB"), ot.T("GPOS"):
		layout, lerr := otcodec.Layout(otf, tag)
		if err = lerr; err == nil {
			summary = fmt.Sprintf("scripts=%d features=%d lookups=%d",
				len(layout.Scripts), len(layout.Features), layout.LookupCount)
		}
	}
	switch {
	case err != nil:
		fmt.Fprintf(w, " error=%q\n", err.Error())
	case summary != "":
		fmt.Fprintf(w, " %s\n", summary)
	default:
		fmt.Fprintln(w)
	}
}

func runNamesCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(args)
	if err := printNames(os.Stdout, f.OT, mustFlagBool(flags["all"], "all")); err != nil {
		fatalf("%v", err)
	}
}

func printNames(w io.Writer, otf *otcodec.Font, all bool) error {
	if !all {
		info := otquery.NameInfo(otf)
		for _, key := range slices.Sorted(maps.Keys(info)) {
			fmt.Fprintf(w, "%-22s %s\n", key+":", info[key])
		}
		return nil
	}
	name, err := otcodec.Decode[ottables.NameTable](otf)
	if err != nil {
		return err
	}
	for _, rec := range name.Records {
		fmt.Fprintf(w, "%-9s enc=%-2d lang=0x%04x id=%-3d %q\n", rec.PlatformID,
			rec.EncodingID, rec.LanguageID, rec.NameID, rec.String)
	}
	for i, lt := range name.LangTags {
		fmt.Fprintf(w, "lang-tag 0x%04x %q\n", 0x8000+i, lt)
	}
	return nil
}

func runLayoutCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(args)
	tag, err := ot.NewTag(mustFlagString(flags["table"], "table"))
	if err != nil {
		fatalf("%v", err)
	}
	var script ot.Tag
	if s := mustFlagString(flags["script"], "script"); s != "" {
		if script, err = ot.NewTag(s); err != nil {
			fatalf("%v", err)
		}
	}
	if err := printLayout(os.Stdout, f.OT, tag, script); err != nil {
		fatalf("%v", err)
	}
}

// printLayout lists the scripts and language systems of a layout table, with
// the features they activate. If script is non-zero, only this script is printed.
func printLayout(w io.Writer, otf *otcodec.Font, tag ot.Tag, script ot.Tag) error {
	layout, err := otcodec.Layout(otf, tag)
	if err != nil {
		return err
	}
	features := func(ls otlayout.LanguageSystem) string {
		var tags []string
		if req, ok := ls.RequiredFeature.Unwrap(); ok {
			tags = append(tags, "*"+featureTag(layout.Features, req))
		}
		for _, inx := range ls.FeatureIndices {
			tags = append(tags, featureTag(layout.Features, inx))
		}
		return strings.Join(tags, ",")
	}
	for stag, scr := range layout.Scripts.Range() {
		if script != 0 && stag != script {
			continue
		}
		fmt.Fprintf(w, "script %s\n", stag)
		if dflt, ok := scr.DefaultLanguageSystem.Unwrap(); ok {
			fmt.Fprintf(w, "  %s: %s\n", ot.DFLT, features(dflt))
		}
		for _, ltag := range ot.SortedTags(scr.LanguageSystems) {
			fmt.Fprintf(w, "  %s: %s\n", ltag, features(scr.LanguageSystems[ltag]))
		}
	}
	fmt.Fprintf(w, "features=%d lookups=%d\n", len(layout.Features), layout.LookupCount)
	return nil
}

func featureTag(fl otlayout.FeatureList, inx uint16) string {
	if int(inx) >= len(fl) {
		return fmt.Sprintf("#%d?", inx)
	}
	return fl[inx].Tag.String()
}
