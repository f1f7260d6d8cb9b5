package diag

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"chai/internal/source"
)

// LogLevel controls how verbosely a Reporter renders diagnostics, mirroring
// the teacher's four-level scheme.
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorFG      = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnFG       = pterm.FgYellow
	infoFG       = pterm.FgLightGreen
)

// Reporter is the in-repo default implementation of the "external reporter"
// spec.md §6 says consumes the diagnostic envelope: it renders diagnostics
// to the terminal with source-line highlighting, the same shape as the
// teacher's report/logging packages.
type Reporter struct {
	mu       sync.Mutex
	logLevel LogLevel
	mgr      *source.Manager

	errorCount, warnCount int
}

// NewReporter creates a Reporter bound to the given source manager (needed
// to render the offending line of source for each diagnostic with an
// anchor).
func NewReporter(mgr *source.Manager, level LogLevel) *Reporter {
	return &Reporter{logLevel: level, mgr: mgr}
}

// Report implements Sink.
func (r *Reporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch d.Level {
	case LevelError:
		r.errorCount++
		if r.logLevel < LogLevelError {
			return
		}
	case LevelWarning:
		r.warnCount++
		if r.logLevel < LogLevelWarn {
			return
		}
	default:
		if r.logLevel < LogLevelVerbose {
			return
		}
	}

	r.display(d)
}

// ErrorCount returns the number of errors reported so far.
func (r *Reporter) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errorCount
}

// ShouldProceed reports whether no errors have been recorded, the same
// gate the teacher's report.ShouldProceed exposes to the driver.
func (r *Reporter) ShouldProceed() bool {
	return r.ErrorCount() == 0
}

func (r *Reporter) display(d Diagnostic) {
	file := r.mgr.File(d.Anchor.File)
	start := file.PositionFor(d.Anchor.Start)

	fmt.Print("\n-- ")
	switch d.Level {
	case LevelError:
		errorStyleBG.Print("Error")
	case LevelWarning:
		warnStyleBG.Print("Warning")
	default:
		pterm.NewStyle(pterm.BgBlue, pterm.FgWhite).Print("Note")
	}
	fmt.Print(" ")
	infoFG.Printf("%s:%d:%d\n", file.Path(), start.Line+1, start.Col+1)

	fmt.Println(d.Message)
	r.displaySourceLine(file, d.Anchor)
}

// displaySourceLine prints the offending source line(s) with caret
// underlining, following the same indentation-trimming algorithm as the
// teacher's report.displaySourceText / logging.displayCodeSelection.
func (r *Reporter) displaySourceLine(file *source.File, rng source.Range) {
	start := file.PositionFor(rng.Start)
	end := file.PositionFor(rng.End)

	var lines []string
	for ln := start.Line; ln <= end.Line; ln++ {
		lines = append(lines, file.LineText(file.LineStartByte(ln)))
	}

	minIndent := -1
	for _, line := range lines {
		indent := 0
		for _, c := range line {
			if c == ' ' {
				indent++
			} else {
				break
			}
		}
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}

	numWidth := len(strconv.Itoa(end.Line + 1))
	numFmt := "%-" + strconv.Itoa(numWidth) + "v | "

	for i, line := range lines {
		trimmed := line
		if minIndent <= len(line) {
			trimmed = line[minIndent:]
		}

		fmt.Printf(numFmt, start.Line+i+1)
		fmt.Println(trimmed)

		fmt.Print(strings.Repeat(" ", numWidth), " | ")

		prefix := 0
		if i == 0 {
			prefix = start.Col - minIndent
		}
		if prefix < 0 {
			prefix = 0
		}

		suffix := 0
		if i == len(lines)-1 {
			suffix = len(line) - end.Col
		}
		if suffix < 0 {
			suffix = 0
		}

		carets := len(line) - minIndent - prefix - suffix
		if carets < 1 {
			carets = 1
		}

		fmt.Print(strings.Repeat(" ", prefix))
		errorFG.Println(strings.Repeat("^", carets))
	}
	fmt.Println()
}

// DisplayFatal renders a fatal, non-diagnostic failure (spec.md §7
// "Internal invariant violations") and exits the process. It is always
// visible regardless of log level.
func DisplayFatal(err *InternalError) {
	fmt.Print("\n")
	errorStyleBG.Print(" Fatal Error ")
	errorFG.Println(" " + err.Message)
	infoFG.Println("This indicates a bug in the compiler; please file an issue.")
	os.Exit(1)
}

// BeginPhase starts a pterm spinner labelled with the given compilation
// phase name (lex/parse/lower/monomorphize/...), mirroring the teacher's
// displayBeginPhase/displayEndPhase pair.
type Phase struct {
	spinner *pterm.SpinnerPrinter
	name    string
}

func BeginPhase(name string) *Phase {
	sp, _ := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoFG)).Start(name + "...")
	return &Phase{spinner: sp, name: name}
}

func (p *Phase) Done() {
	if p.spinner != nil {
		p.spinner.Success(p.name + " done")
	}
}

func (p *Phase) Fail() {
	if p.spinner != nil {
		p.spinner.Fail(p.name + " failed")
	}
}

// Summary prints the teacher-style closing tally of errors and warnings.
func Summary(r *Reporter) {
	r.mu.Lock()
	errCount, warnCount := r.errorCount, r.warnCount
	r.mu.Unlock()

	if errCount == 0 {
		infoFG.Print("All done! ")
	} else {
		errorFG.Print("Oh no! ")
	}

	fmt.Printf("(%d error(s), %d warning(s))\n", errCount, warnCount)
}
