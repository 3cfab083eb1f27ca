package main

import (
	"os"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Y bool `cli:"name=y aliases=yaml desc='read models as yaml'"`
	J bool `cli:"name=j aliases=json desc='read models as json'"`

	Patch string `cli:"name=patch desc='json-patch file applied to the model before compiling'"`
	NoSat bool   `cli:"name=nosat desc='skip the boolean feasibility check'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type CompileConfig struct {
	*MainConfig

	Filter string `cli:"name=filter desc='expr expression selecting constraints to print'"`
	Quiet  bool   `cli:"name=q desc='suppress the compiled model, print defects only'"`

	Compile *cli.Command
}

type ViewConfig struct {
	*MainConfig

	Color   bool `cli:"name=color desc='color the output'"`
	NoColor bool `cli:"name=nocolor desc='never color the output'"`

	View *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type StatsConfig struct {
	*MainConfig

	Stats *cli.Command
}
