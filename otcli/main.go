package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/otcodec"
	"github.com/npillmayer/otcodec/internal/fontload"
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

func main() {
	level := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font file to load")
	flag.Parse()
	if err := configureTracing(*level); err != nil {
		fmt.Fprintf(os.Stderr, "otcli: %v\n", err)
		os.Exit(1)
	}
	initDisplay()
	pterm.Info.Println("OpenType table inspector")
	intp := &Intp{}
	if err := intp.loadFont(*fontname); err != nil {
		pterm.Error.Println(err)
		os.Exit(4)
	}
	repl, err := readline.New("ot > ")
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	pterm.Info.Println("Type 'help' for a list of commands, quit with <ctrl>D")
	intp.REPL()
}

// configureTracing routes tracer output to the Go logger, with a trace level
// of Debug, Info or Error.
func configureTracing(level string) error {
	switch level {
	case "Debug", "Info", "Error":
	default:
		return fmt.Errorf("invalid trace level: %s", level)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.font.opentype": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("cannot configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("trace level is %s", level)
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " ot ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font  *otcodec.Font
	repl  *readline.Instance
	table ot.Tag // current table, 0 if none
	dirty bool   // font has been modified
}

func (intp *Intp) String() string {
	if intp == nil || intp.table == 0 {
		return "()"
	}
	s := fmt.Sprintf("( table=%s )", intp.table)
	if intp.dirty {
		s += " *"
	}
	return s
}

// REPL reads and executes command lines until 'quit' or end of input.
func (intp *Intp) REPL() {
	for {
		intp.repl.SetPrompt(intp.String() + " ot > ")
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if _, quit := intp.execute(cmd); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a single step of a command line, written as name[:arg[:format]].
type Op struct {
	code   int
	arg    string
	format string
}

// Command is a parsed command line. Steps are executed left to right.
type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1

// Op-codes are indices into ops.
const (
	QUIT int = iota
	HELP
	TABLES
	TABLE
	NAMES
	GASP
	SCRIPTS
	FEATURES
	PRINT
	FIX
	SAVE
)

type opDef struct {
	name  string
	fn    func(*Intp, *Op) (error, bool)
	usage string
}

var ops []opDef

func init() { // ops refers to help, which refers to ops
	ops = []opDef{
		QUIT:     {"quit", quitOp, "quit                  quit (or <ctrl>D)"},
		HELP:     {"help", helpOp, "help[:<topic>]        topics: scripts, lang, features, gasp"},
		TABLES:   {"tables", tablesOp, "tables                list tables of the font"},
		TABLE:    {"table", tableOp, "table:<tag>           select a table, e.g. table:GSUB"},
		NAMES:    {"names", namesOp, "names[:all]           name records (Windows only, unless 'all')"},
		GASP:     {"gasp", gaspOp, "gasp[:ppem]           gasp ranges"},
		SCRIPTS:  {"scripts", scriptsOp, "scripts[:<tag>]       scripts of the selected layout table"},
		FEATURES: {"features", featuresOp, "features[:<index>]    features of the selected layout table"},
		PRINT:    {"print", printOp, "print[::all]          hex dump of the selected table"},
		FIX:      {"fix", fixOp, "fix                   fix gasp/prep of unhinted fonts"},
		SAVE:     {"save", saveOp, "save:<file>           write the font"},
	}
}

func lookupOp(name string) int {
	for code, op := range ops {
		if op.name == name {
			return code
		}
	}
	return HELP
}

// parseCommand splits a line into steps, separated by spaces, e.g.
// "table:GSUB scripts:latn". Unknown steps are turned into 'help', and nothing
// after 'quit' is parsed.
func (intp *Intp) parseCommand(line string) (*Command, error) {
	cmd := &Command{}
	for i := range cmd.op {
		cmd.op[i].code = NOOP
	}
	steps := strings.Fields(line)
	if len(steps) > len(cmd.op) {
		return nil, fmt.Errorf("too many steps in command: %d", len(steps))
	}
	for i, step := range steps {
		c := strings.Split(step, ":")
		op := &cmd.op[i]
		op.code = lookupOp(strings.ToLower(c[0]))
		op.arg = getOptArg(c, 1)
		op.format = getOptArg(c, 2)
		cmd.count = i + 1
		if op.code == QUIT {
			op.arg, op.format = "", ""
			break
		}
		tracer().Debugf("%s %q %q", ops[op.code].name, op.arg, op.format)
	}
	return cmd, nil
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	for _, c := range cmd.op[:cmd.count] {
		if err, stop = ops[c.code].fn(intp, &c); err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	if intp.dirty {
		pterm.Warning.Println("font has unsaved modifications")
	}
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(path string) error {
	if path == "" {
		return errors.New("no font given, use flag -font")
	}
	f, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", path, err)
		return err
	}
	tracer().Infof("loaded font = %s", f.Fontname)
	intp.font = f.OT
	pterm.Printf("font tables: %v\n", intp.font.TableTags())
	return nil
}

// ----------------------------------------------------------------------

var ErrNoTable = errors.New("no table set")

func (intp *Intp) checkTable() error {
	if intp.table == 0 {
		return ErrNoTable
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
