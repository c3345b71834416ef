package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "script", "scripts", "scriptlist":
		pterm.Info.Println("ScriptList / Script")
		pterm.Println(`
	ScriptList is a property of GSUB and GPOS.
	It consists of ScriptRecords, sorted by tag:
	+------------+----------------+
	| Script Tag | Link to Script |
	+------------+----------------+
	ScriptList behaves as a map.

	A Script table links to a default LangSys entry, and contains a list of LangSys records:
	+--------------------------------+
	| Link to LangSys record         |
	+--------------+-----------------+
	| Language Tag | Link to LangSys |
	+--------------+-----------------+
	Usage: table:GSUB scripts          list script tags
	       table:GSUB scripts:latn     show language systems of 'latn'
	`)
	case "lang", "langsys", "langs", "language":
		pterm.Info.Println("LangSys")
		pterm.Println(`
	LangSys is pointed to from a Script Record.
	It links a language with features to activate. It does so using an index into the feature table.
	+-----------------------------------+
	| Index of required feature or null |
	+-----------------------------------+
	| Index of feature 1                |
	+-----------------------------------+
	| Index of feature 2                |
	+-----------------------------------+
	| ...                               |
	+-----------------------------------+
	LangSys behaves as a list.
	`)
	case "feature", "features", "featurelist":
		pterm.Info.Println("FeatureList / Feature")
		pterm.Println(`
	FeatureList is a property of GSUB and GPOS. Its entries are referenced by index
	from LangSys tables; a tag may occur more than once.
	+-------------+-----------------+
	| Feature Tag | Link to Feature |
	+-------------+-----------------+
	A Feature links to optional parameters (for 'size', 'ssXX', 'cvXX') and lists
	indices into the LookupList.
	Usage: table:GPOS features         list all features
	       table:GPOS features:3       show feature #3
	`)
	case "gasp", "prep", "fix":
		pterm.Info.Println("gasp / prep")
		pterm.Println(`
	Table 'gasp' selects grid-fitting and smoothing per pixel size, table 'prep' holds
	the control value program. For fonts without hinting instructions, command 'fix'
	inserts a gasp table (if missing) switching everything on, and a prep program
	enabling dropout control. Write the result with save:<file>.
	Usage: gasp                        list gasp ranges
	       gasp:12                     show behavior at 12 ppem
	`)
	default:
		pterm.Info.Println("Commands")
		for _, op := range ops {
			pterm.Printf("\t%s\n", op.usage)
		}
	}
}
