package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diff prints what presolve changed in a model as a line diff of its
// wire form.
func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range modelArgs(args) {
		m, err := readModel(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		before, err := indentedJSON(m.ToJSON)
		if err != nil {
			return err
		}
		if _, err := compileModel(cfg.MainConfig, m); err != nil {
			return fmt.Errorf("error compiling %s: %w", arg, err)
		}
		after, err := indentedJSON(m.ToJSON)
		if err != nil {
			return err
		}
		if err := writeDiff(cc.Out, before, after); err != nil {
			return err
		}
	}
	return nil
}

func indentedJSON(toJSON func() ([]byte, error)) (string, error) {
	d, err := toJSON()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, d, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeDiff(w io.Writer, before, after string) error {
	diffCfg := diffpatch.New()
	from, to, lines := diffCfg.DiffLinesToChars(before, after)
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(from, to, false), lines)
	for i := range diffs {
		d := &diffs[i]
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
