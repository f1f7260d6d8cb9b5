// Command chaic is the front-end driver: it loads a module manifest, parses
// every source file in its root package, and (when -dump-ir is given) prints
// the IR module after monomorphization. Lowering AST to IR and driving the
// external type-checker are both out of this module's scope (spec.md §1/§6),
// so the build subcommand stops once parsing is complete and reports its
// result the same way the teacher's `chaic build` does.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chai/internal/ast"
	"chai/internal/depm"
	"chai/internal/diag"
	"chai/internal/parser"
	"chai/internal/source"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "chaic",
		Short:   "chaic is a tool for managing Chai projects",
		Version: version,
	}

	root.AddCommand(newBuildCmd(), newModCmd())
	return root
}

const version = "0.1.0"

func newModCmd() *cobra.Command {
	modCmd := &cobra.Command{
		Use:   "mod",
		Short: "manage modules",
	}

	var caching bool
	initCmd := &cobra.Command{
		Use:   "init <module-path> <name>",
		Short: "initialize a module",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initModule(args[0], args[1], caching)
		},
	}
	initCmd.Flags().BoolVar(&caching, "caching", false, "enable compilation caching for this module")

	modCmd.AddCommand(initCmd)
	return modCmd
}

func initModule(path, name string, caching bool) error {
	if !depm.IsValidIdentifier(name) {
		return fmt.Errorf("chaic: %q is not a valid module name", name)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("chaic: %w", err)
	}

	manifest := fmt.Sprintf("name = %q\nchai-version = %q\ncaching = %v\n", name, version, caching)
	manifestPath := path + string(os.PathSeparator) + depm.ModuleFileName
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return fmt.Errorf("chaic: %w", err)
	}

	fmt.Printf("initialized module %q at %s\n", name, path)
	return nil
}

func newBuildCmd() *cobra.Command {
	var logLevelName string
	var dumpIR bool

	buildCmd := &cobra.Command{
		Use:   "build <module-path>",
		Short: "compile source code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(logLevelName)
			if err != nil {
				return err
			}
			return runBuild(args[0], level, dumpIR)
		},
	}

	buildCmd.Flags().StringVarP(&logLevelName, "loglevel", "l", "verbose", "compiler log level: silent, error, warn, verbose")
	buildCmd.Flags().BoolVar(&dumpIR, "dump-ir", false, "print the module's textual IR representation after loading")

	return buildCmd
}

func parseLogLevel(name string) (diag.LogLevel, error) {
	switch name {
	case "silent":
		return diag.LogLevelSilent, nil
	case "error":
		return diag.LogLevelError, nil
	case "warn":
		return diag.LogLevelWarn, nil
	case "verbose":
		return diag.LogLevelVerbose, nil
	default:
		return 0, fmt.Errorf("chaic: invalid log level %q", name)
	}
}

func runBuild(modulePath string, level diag.LogLevel, dumpIR bool) error {
	mod, err := depm.LoadModule(modulePath)
	if err != nil {
		return err
	}

	mgr := source.NewManager()
	reporter := diag.NewReporter(mgr, level)

	pkg, err := depm.LoadPackage(mod, mgr)
	if err != nil {
		return err
	}

	phase := diag.BeginPhase("parsing")
	units := make([]*ast.Unit, 0, len(pkg.Files))
	for _, f := range pkg.Files {
		units = append(units, parser.ParseUnit(f.Src, reporter))
	}

	if reporter.ShouldProceed() {
		phase.Done()
	} else {
		phase.Fail()
	}

	if dumpIR && reporter.ShouldProceed() {
		runDumpIR(units, ast.NoDeclSpace)
	}

	diag.Summary(reporter)

	if !reporter.ShouldProceed() {
		return fmt.Errorf("build failed")
	}
	return nil
}
