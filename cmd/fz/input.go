package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"

	"github.com/fzn-format/go-fzn/model"
)

// readModel loads one model argument: a file path or "-" for stdin.
// YAML input is converted to JSON first; an optional json-patch file is
// applied before the model is built.
func readModel(cfg *MainConfig, arg string) (*model.Model, error) {
	var r io.Reader
	if arg == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if cfg.Y || (!cfg.J && isYAMLName(arg)) {
		d, err = yaml.YAMLToJSON(d)
		if err != nil {
			return nil, fmt.Errorf("error converting %s to json: %w", arg, err)
		}
	}
	if cfg.Patch != "" {
		d, err = applyPatch(cfg.Patch, d)
		if err != nil {
			return nil, err
		}
	}
	m, err := model.FromJSON(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return m, nil
}

func isYAMLName(arg string) bool {
	return strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml")
}

func applyPatch(path string, doc []byte) ([]byte, error) {
	pd, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading patch %s: %w", path, err)
	}
	ops, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch %s: %w", path, err)
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("error applying patch %s: %w", path, err)
	}
	return out, nil
}

// modelArgs defaults to stdin when no files are named.
func modelArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
