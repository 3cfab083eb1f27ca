package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Alias    bool
	Presolve bool
	Regroup  bool
	Depgraph bool
	Schedule bool
	Sat      bool
}

var d *debug

func init() {
	d = &debug{}
	d.Alias = boolEnv("FZ_DEBUG_ALIAS")
	d.Presolve = boolEnv("FZ_DEBUG_PRESOLVE")
	d.Regroup = boolEnv("FZ_DEBUG_REGROUP")
	d.Depgraph = boolEnv("FZ_DEBUG_DEPGRAPH")
	d.Schedule = boolEnv("FZ_DEBUG_SCHEDULE")
	d.Sat = boolEnv("FZ_DEBUG_SAT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Alias() bool {
	return d.Alias
}
func Presolve() bool {
	return d.Presolve
}
func Regroup() bool {
	return d.Regroup
}
func Depgraph() bool {
	return d.Depgraph
}
func Schedule() bool {
	return d.Schedule
}
func Sat() bool {
	return d.Sat
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
