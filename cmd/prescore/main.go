// Command prescore drives the PRES solver core against one of the
// built-in end-to-end systems (§8) and prints its solution on one
// line (§6.3). It is a harness for exercising pkg/pres, not a parser
// for the mCRL2 PRES concrete syntax (§14 Non-goals) — the "textual
// PRES description" it reads is a scenario name resolved against
// internal/scenarios.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pres-solve/prescore/internal/pretty"
	"github.com/pres-solve/prescore/internal/scenarios"
	"github.com/pres-solve/prescore/pkg/pres"
)

func main() {
	algo := flag.String("a", "g", "algorithm: g=gauss, n=numerical, m=numerical-directed")
	precision := flag.Int("p", 15, "significant digits for the numerical driver")
	noRemoveUnused := flag.Bool("u", false, "disable remove-unused-rewrite-rules")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: prescore [-a g|n|m] [-p N] [-u] <scenario s1..s6>")
		os.Exit(2)
	}

	scenario, ok := scenarios.ByName(flag.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "prescore: unknown scenario %q\n", flag.Arg(0))
		os.Exit(2)
	}

	opts := pres.DefaultOptions()
	opts.Precision = *precision
	opts.RemoveUnusedRewriteRules = !*noRemoveUnused

	switch strings.ToLower(*algo) {
	case "g":
		opts.Algorithm = pres.GaussElimination
	case "n":
		opts.Algorithm = pres.Numerical
	case "m":
		opts.Algorithm = pres.NumericalDirected
	default:
		fmt.Fprintf(os.Stderr, "prescore: unknown algorithm %q (want g, n, or m)\n", *algo)
		os.Exit(2)
	}

	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "prescore:", err)
		os.Exit(1)
	}

	solution, err := pres.SolvePRES(scenario.PRES, scenario.Oracle, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "prescore:", err)
		os.Exit(1)
	}

	fmt.Println(pretty.Solution(solution, *precision))
}
