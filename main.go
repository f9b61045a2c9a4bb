// Command just is the CLI entry point: flag parsing, recipe-file
// discovery, and wiring the pipeline stages together. Everything it does
// is glue; the pipeline stages it calls are what actually implement the
// language.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	sets, rest, err := extractSetFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 255
	}

	flags := pflag.NewFlagSet("just", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	listFlag := flags.Bool("list", false, "print recipe names, space-separated, alphabetical")
	showFlag := flags.String("show", "", "print recipe NAME's source")
	evalFlag := flags.Bool("evaluate", false, "print all assignments, alphabetical, as name = \"value\"")
	dryRunFlag := flags.BoolP("dry-run", "n", false, "print what would run; do not spawn recipe commands")
	quietFlag := flags.BoolP("quiet", "q", false, "suppress command echo and diagnostics")
	debugFlag := flags.Bool("debug", false, "print each assignment and interpolation with its evaluated value")
	fileFlag := flags.StringP("file", "f", "", "use the given file as the recipe file instead of discovering one")

	if err := flags.Parse(rest); err != nil {
		return 255
	}

	if *dryRunFlag && *quietFlag {
		rp := newReporter(stderr)
		rp.reportError(newErrNoSpan(errIncompatibleFlags, "--dry-run and --quiet may not be used together"), "")
		return 255
	}

	rp := newReporter(stderr)

	path := *fileFlag
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(stderr, "failed to get working directory: %s\n", err)
			return 255
		}
		found, ferr := findRecipeFile(cwd)
		if ferr != nil {
			rp.reportError(ferr, "")
			return 255
		}
		path = found
	}

	src, filename, err := loadSource(path)
	if err != nil {
		rp.reportUnlessQuiet(err, "", *quietFlag)
		return 255
	}

	f, err := parseFile(src, filename)
	if err != nil {
		rp.reportUnlessQuiet(err, src, *quietFlag)
		return 255
	}

	prog, err := resolve(f, src, filename)
	if err != nil {
		rp.reportUnlessQuiet(err, src, *quietFlag)
		return 255
	}

	positional := flags.Args()
	invocations, err := bindOverrides(prog, positional, sets)
	if err != nil {
		// UnknownOverride is a usage error; usage errors are never silenced.
		rp.reportError(err, src)
		return 255
	}

	outRp := newReporter(stdout)

	if *listFlag {
		outRp.list(prog)
		return 0
	}
	if *showFlag != "" {
		if err := outRp.show(prog, *showFlag); err != nil {
			rp.reportError(err, src)
			return 255
		}
		return 0
	}

	ev := newEvaluator(prog, *quietFlag, *debugFlag, stderr)

	if *evalFlag {
		if err := outRp.evaluate(prog, ev); err != nil {
			rp.reportError(err, src)
			return 255
		}
		return 0
	}

	if len(invocations) == 0 {
		if len(prog.recipeOrder) == 0 {
			// UnknownRecipe is a usage error; usage errors are never silenced.
			rp.reportError(newErrNoSpan(errUnknownRecipe, "no recipe specified and justfile contains no recipes"), "")
			return 255
		}
		invocations = []recipeInvocation{{name: prog.recipeOrder[0]}}
	}

	if *debugFlag {
		fmt.Fprint(stderr, debugDumpGraph(prog))
	}

	dir := fileDir(path)
	rn := newRunner(prog, ev, dir, *dryRunFlag, *quietFlag, stdout, stderr)
	if err := rn.runAll(invocations); err != nil {
		je, ok := err.(*justError)
		if !ok {
			fmt.Fprintf(stderr, "%s\n", err)
			return 255
		}
		if je.kind.category() == "usage" {
			rp.reportError(je, src)
		} else {
			rp.reportUnlessQuiet(je, src, *quietFlag)
		}
		if je.kind.category() == "runtime" && je.code != 0 {
			return clampExitCode(je.code)
		}
		return 255
	}

	return 0
}

// extractSetFlags pulls "--set NAME VALUE" triples out of the raw argument
// list before pflag ever sees it, since pflag itself only binds one token
// per flag occurrence.
func extractSetFlags(args []string) (sets []setPair, rest []string, err error) {
	for i := 0; i < len(args); i++ {
		if args[i] != "--set" {
			rest = append(rest, args[i])
			continue
		}
		if i+2 >= len(args) {
			return nil, nil, newErrNoSpan(errIncompatibleFlags, "--set requires a NAME and a VALUE")
		}
		sets = append(sets, setPair{name: args[i+1], value: args[i+2]})
		i += 2
	}
	return sets, rest, nil
}

func fileDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			if i == 0 {
				return "/"
			}
			return path[:i]
		}
	}
	return "."
}
