package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/otcodec"
	"github.com/npillmayer/otcodec/internal/fontload"
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otlayout"
	"github.com/npillmayer/otcodec/ottables"
	"github.com/pterm/pterm"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	data := [][]string{{"Tag", "Size"}}
	for _, tag := range intp.font.TableTags() {
		data = append(data, []string{tag.String(), strconv.Itoa(len(intp.font.Table(tag)))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func tableOp(intp *Intp, op *Op) (error, bool) {
	tag, err := ot.NewTag(op.arg)
	if err != nil {
		return err, false
	}
	if !intp.font.HasTable(tag) {
		return errors.New("table not found in font"), false
	}
	intp.table = tag
	tracer().Infof("setting table: %v", tag)
	return nil, false
}

func namesOp(intp *Intp, op *Op) (error, bool) {
	name, err := otcodec.Decode[ottables.NameTable](intp.font)
	if err != nil {
		return err, false
	}
	printNameTable(name, op.arg == "all")
	return nil, false
}

func gaspOp(intp *Intp, op *Op) (error, bool) {
	gasp, err := otcodec.Decode[ottables.GaspTable](intp.font)
	if err != nil {
		return err, false
	}
	if ppem, ok := op.hasArg(); ok {
		n, err := strconv.ParseUint(ppem, 10, 16)
		if err != nil {
			return fmt.Errorf("ppem not numeric: %v", ppem), false
		}
		pterm.Printf("gasp behavior at %d ppem: %s\n", n, gasp.Behavior(uint16(n)))
		return nil, false
	}
	printGasp(gasp)
	return nil, false
}

// layout decodes the current table, which has to be GSUB or GPOS.
func (intp *Intp) layout() (otlayout.Layout, error) {
	if err := intp.checkTable(); err != nil {
		return otlayout.Layout{}, err
	}
	return otcodec.Layout(intp.font, intp.table)
}

func scriptsOp(intp *Intp, op *Op) (err error, stop bool) {
	var layout otlayout.Layout
	if layout, err = intp.layout(); err != nil {
		return
	}
	if op.noArg() {
		pterm.Printf("ScriptList keys: %v\n", ot.SortedTags(layout.Scripts))
		return
	}
	tag, err := ot.NewTag(op.arg)
	if err != nil {
		return
	}
	script, ok := layout.Scripts[tag]
	if !ok {
		return fmt.Errorf("script lookup [%s] returns null", tag), false
	}
	printScript(tag, script, layout.Features)
	return
}

func featuresOp(intp *Intp, op *Op) (err error, stop bool) {
	var layout otlayout.Layout
	if layout, err = intp.layout(); err != nil {
		return
	}
	if op.noArg() {
		printFeatureList(layout.Features)
	} else if i, err := strconv.Atoi(op.arg); err != nil {
		return fmt.Errorf("list index not numeric: %v", op.arg), false
	} else if i < 0 || i >= len(layout.Features) {
		return fmt.Errorf("feature index out of range: %d", i), false
	} else {
		printFeature(i, layout.Features[i])
	}
	return
}

func fixOp(intp *Intp, op *Op) (error, bool) {
	if err := otcodec.FixNonHinted(intp.font); err != nil {
		return err, false
	}
	intp.dirty = true
	pterm.Info.Println("inserted smooth gasp and prep tables")
	return nil, false
}

func saveOp(intp *Intp, op *Op) (error, bool) {
	path, ok := op.hasArg()
	if !ok {
		return errors.New("save needs a file name, e.g. save:out.ttf"), false
	}
	if err := fontload.SaveOpenTypeFont(intp.font, path); err != nil {
		return err, false
	}
	intp.dirty = false
	pterm.Info.Printf("font written to %s\n", path)
	return nil, false
}
