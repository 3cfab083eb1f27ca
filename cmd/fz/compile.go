package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/fzn-format/go-fzn/model"
	"github.com/fzn-format/go-fzn/presolve"
)

func compile(cfg *CompileConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compile.Parse(cc, args)
	if err != nil {
		cfg.Compile.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var prg *vm.Program
	if cfg.Filter != "" {
		prg, err = expr.Compile(cfg.Filter, expr.Env(filterEnv(nil)), expr.AsBool())
		if err != nil {
			return fmt.Errorf("%w: bad filter: %v", cli.ErrUsage, err)
		}
	}
	for _, arg := range modelArgs(args) {
		m, err := readModel(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		res, err := compileModel(cfg.MainConfig, m)
		if err != nil {
			return fmt.Errorf("error compiling %s: %w", arg, err)
		}
		switch {
		case prg != nil:
			if err := printFiltered(cc.Out, res, prg); err != nil {
				return err
			}
		case cfg.Quiet:
			for _, d := range res.Defects {
				fmt.Fprintln(cc.Out, d)
			}
		default:
			if err := printResult(cc.Out, res); err != nil {
				return err
			}
		}
		if res.Infeasible {
			return cli.ExitCodeErr(1)
		}
	}
	return nil
}

func compileModel(cfg *MainConfig, m *model.Model) (*presolve.Result, error) {
	var opts []presolve.Option
	if cfg.NoSat {
		opts = append(opts, presolve.WithoutSatCheck())
	}
	return presolve.Compile(m, opts...)
}

// filterEnv is the expression environment for one scheduled constraint.
func filterEnv(c *model.ConstraintSpec) map[string]any {
	env := map[string]any{
		"kind":     "",
		"index":    0,
		"defines":  false,
		"requires": 0,
	}
	if c == nil {
		return env
	}
	env["kind"] = string(c.Kind)
	env["index"] = c.Index
	env["defines"] = c.DefinedArg != nil
	env["requires"] = c.Requires.Len()
	return env
}

func printFiltered(w io.Writer, res *presolve.Result, prg *vm.Program) error {
	for _, c := range res.Order {
		keep, err := expr.Run(prg, filterEnv(c))
		if err != nil {
			return fmt.Errorf("error running filter: %w", err)
		}
		if keep.(bool) {
			fmt.Fprintln(w, c)
		}
	}
	return nil
}

type resultJSON struct {
	Model      json.RawMessage `json:"model"`
	IntStates  []string        `json:"int_states,omitempty"`
	BoolStates []string        `json:"bool_states,omitempty"`
	SetStates  []string        `json:"set_states,omitempty"`
	Order      []int           `json:"order"`
	Forced     []string        `json:"forced,omitempty"`
	Domains    []domainJSON    `json:"domains,omitempty"`
	Defects    []string        `json:"defects,omitempty"`
	Infeasible bool            `json:"infeasible"`
	Stats      presolve.Stats  `json:"stats"`
}

type domainJSON struct {
	Var string `json:"var"`
	Dom string `json:"dom"`
}

func printResult(w io.Writer, res *presolve.Result) error {
	md, err := res.Model.ToJSON()
	if err != nil {
		return err
	}
	out := resultJSON{
		Model:      md,
		IntStates:  stateStrings(res.IntStates),
		BoolStates: stateStrings(res.BoolStates),
		SetStates:  stateStrings(res.SetStates),
		Order:      make([]int, 0, len(res.Order)),
		Infeasible: res.Infeasible,
		Stats:      res.Stats,
	}
	for _, c := range res.Order {
		out.Order = append(out.Order, c.Index)
	}
	for _, v := range res.Forced.All() {
		out.Forced = append(out.Forced, v.String())
	}
	for _, dc := range res.Domains {
		out.Domains = append(out.Domains, domainJSON{Var: dc.Var.String(), Dom: dc.Dom.String()})
	}
	for _, d := range res.Defects {
		out.Defects = append(out.Defects, d.String())
	}
	d, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

func stateStrings(ss []presolve.VarState) []string {
	if len(ss) == 0 {
		return nil
	}
	res := make([]string, len(ss))
	for i, s := range ss {
		res[i] = s.String()
	}
	return res
}
