package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/otcodec/internal/fontload"
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for OpenType table diagnostics and repair.")

	commando.
		Register("fix-non-hinted").
		SetDescription("Prepare a font without hinting instructions for smooth rendering: insert table 'gasp' if missing and replace table 'prep'.").
		SetShortDescription("fix gasp/prep of unhinted fonts").
		AddArgument("font", "input font file path", "").
		AddArgument("output", "output font file path", "").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runFixCommand)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for an OpenType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("tables...", "optional list of table tags (e.g. GSUB,gasp,name)", "").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.
		Register("names").
		SetDescription("Print the records of table 'name'.").
		SetShortDescription("name records").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("all,a", "print every record instead of the well-known names", commando.Bool, nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runNamesCommand)

	commando.
		Register("layout").
		SetDescription("Print scripts, language systems and features of a layout table.").
		SetShortDescription("GSUB/GPOS scripts and features").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("table,t", "layout table: GSUB|GPOS", commando.String, "GSUB").
		AddFlag("script,s", "restrict output to one script tag (e.g. latn)", commando.String, "-").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runLayoutCommand)

	commando.Parse(nil)
}

// setupTracing routes tracer output to the Go logger. Level is Error unless
// verbose output is requested.
func setupTracing(flags map[string]commando.FlagValue) {
	level := "Error"
	if mustFlagBool(flags["verbose"], "verbose") {
		level = "Debug"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.font.opentype": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func mustLoadFont(args map[string]commando.ArgValue) *fontload.ScalableFont {
	path := strings.TrimSpace(args["font"].Value)
	if path == "" {
		fatalf("font path is required")
	}
	f, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		fatalf("cannot load font: %v", err)
	}
	return f
}

// parseTags splits a list of table tags, separated by commas or spaces.
// Tags shorter than 4 characters are padded with spaces, e.g. "cvt" becomes
// 'cvt '.
func parseTags(raw string) ([]ot.Tag, error) {
	var tags []ot.Tag
	for _, s := range splitCSVSpace(raw) {
		tag, err := ot.NewTag(s)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	s = strings.TrimSpace(s)
	if s == "-" {
		s = ""
	}
	return s
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
