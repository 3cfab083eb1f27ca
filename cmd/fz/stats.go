package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func stats(cfg *StatsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stats.Parse(cc, args)
	if err != nil {
		cfg.Stats.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range modelArgs(args) {
		m, err := readModel(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		nVars := len(m.IntVars) + len(m.BoolVars) + len(m.SetVars)
		nCons := len(m.Constraints)
		res, err := compileModel(cfg.MainConfig, m)
		if err != nil {
			return fmt.Errorf("error compiling %s: %w", arg, err)
		}
		fmt.Fprintf(cc.Out, "%s:\n", arg)
		fmt.Fprintf(cc.Out, "  variables    %d\n", nVars)
		fmt.Fprintf(cc.Out, "  constraints  %d scheduled of %d\n", len(res.Order), nCons)
		fmt.Fprintf(cc.Out, "  rewrites     %d in %d rounds\n", res.Stats.Rewrites, res.Stats.FixRounds)
		fmt.Fprintf(cc.Out, "  nullified    %d\n", res.Stats.Nullified)
		fmt.Fprintf(cc.Out, "  aliases      %d\n", res.Stats.Aliases)
		fmt.Fprintf(cc.Out, "  regrouped    %d\n", res.Stats.Regrouped)
		fmt.Fprintf(cc.Out, "  computed     %d\n", res.Stats.ComputedN)
		fmt.Fprintf(cc.Out, "  forced       %d\n", res.Stats.ForcedN)
		if res.Infeasible {
			fmt.Fprintf(cc.Out, "  infeasible   %d defects\n", len(res.Defects))
		}
	}
	return nil
}
