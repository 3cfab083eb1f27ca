package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/fzn-format/go-fzn/model"
	"github.com/fzn-format/go-fzn/presolve"
)

var (
	aliasedColor  = color.New(color.FgYellow)
	computedColor = color.New(color.FgGreen)
	forcedColor   = color.New(color.FgMagenta)
	defectColor   = color.New(color.FgRed)
	kindColor     = color.New(color.FgCyan)
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	setColorMode(cfg, cc.Out)
	for _, arg := range modelArgs(args) {
		m, err := readModel(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		res, err := compileModel(cfg.MainConfig, m)
		if err != nil {
			return fmt.Errorf("error compiling %s: %w", arg, err)
		}
		renderResult(cc.Out, res)
	}
	return nil
}

func setColorMode(cfg *ViewConfig, w io.Writer) {
	switch {
	case cfg.NoColor:
		color.NoColor = true
	case cfg.Color:
		color.NoColor = false
	default:
		f, ok := w.(*os.File)
		color.NoColor = !ok || !isatty.IsTerminal(f.Fd())
	}
}

func renderResult(w io.Writer, res *presolve.Result) {
	m := res.Model
	for i, v := range m.IntVars {
		renderVar(w, "int", varName(v.Name, "x", i), res.IntStates[i],
			res.Forced.Has(m.Refs().IntVar(i)), domainString(v))
	}
	for i, v := range m.BoolVars {
		renderVar(w, "bool", varName(v.Name, "b", i), res.BoolStates[i],
			res.Forced.Has(m.Refs().BoolVar(i)), boolString(v))
	}
	for i, v := range m.SetVars {
		set := ""
		if v.Dom != nil {
			set = v.Dom.String()
		}
		renderVar(w, "set", varName(v.Name, "s", i), res.SetStates[i], false, set)
	}
	for _, c := range res.Order {
		fmt.Fprintf(w, "  %s", kindColor.Sprint(c.Kind))
		fmt.Fprintf(w, "%s\n", constraintTail(c))
	}
	for _, dc := range res.Domains {
		fmt.Fprintf(w, "  %s in %s\n", dc.Var, dc.Dom)
	}
	if res.Goal.Kind != model.Satisfy {
		fmt.Fprintf(w, "%s %v\n", res.Goal.Kind, res.Goal.Objective)
	}
	for _, d := range res.Defects {
		fmt.Fprintln(w, defectColor.Sprint(d))
	}
}

func renderVar(w io.Writer, typ, name string, st presolve.VarState, forced bool, dom string) {
	label := name
	switch {
	case forced:
		label = forcedColor.Sprintf("%s (forced)", name)
	case st == presolve.Aliased:
		label = aliasedColor.Sprintf("%s (aliased)", name)
	case st == presolve.Computed:
		label = computedColor.Sprintf("%s (computed)", name)
	}
	if dom != "" {
		fmt.Fprintf(w, "var %s %s: %s\n", typ, label, dom)
		return
	}
	fmt.Fprintf(w, "var %s %s\n", typ, label)
}

func varName(name, prefix string, i int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s%d", prefix, i)
}

func domainString(v *model.IntVarSpec) string {
	if val, ok := v.Fixed(); ok {
		return fmt.Sprintf("= %d", val)
	}
	if v.Dom != nil {
		return v.Dom.String()
	}
	return ""
}

func boolString(v *model.BoolVarSpec) string {
	if val, ok := v.Fixed(); ok {
		return fmt.Sprintf("= %v", val)
	}
	return ""
}

// constraintTail renders a constraint's arguments, the kind having been
// printed separately for coloring.
func constraintTail(c *model.ConstraintSpec) string {
	s := c.String()
	if len(s) > len(string(c.Kind)) {
		return s[len(string(c.Kind)):]
	}
	return ""
}
