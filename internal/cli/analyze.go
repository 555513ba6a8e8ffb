package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stagewalk/stagewalk/pkg/pipeline"
	"github.com/stagewalk/stagewalk/pkg/report"
)

// Output formats for the analyze command.
const (
	formatText = "text"
	formatJSON = "json"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	format      string // text or json
	output      string // output file path (stdout if empty)
	noCache       bool // disable caching
	refresh       bool // bypass cached results
	failOnDeadEnd bool // non-zero exit when any dead end or loop exists
}

// analyzeCommand creates the analyze command, the main entry point:
// load a level config, explore every entry stage, print the classified
// paths.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze <config>",
		Short: "Explore a level config and classify every path",
		Long: `Analyze a level config and classify every path a player could take.

Each stage flagged begin gets an independent exploration. Every branch
terminates as one of:

  finished   the path reached an end stage
  dead-end   no outgoing transition was enabled by the unlocked skills
  looped     the path revisited a stage on its own track

Results are cached by config content, so re-running on an unchanged
file is instant. Use --refresh to force a re-exploration.

Examples:
  stagewalk analyze levels.toml
  stagewalk analyze levels.yaml --format json -o report.json
  stagewalk analyze levels.toml --fail-on-deadend   # for CI`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&opts.failOnDeadEnd, "fail-on-deadend", false, "exit non-zero if any dead end or loop is found")

	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, configPath string, opts analyzeOpts) error {
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("unknown format: %s (available: text, json)", opts.format)
	}

	ctx := cmd.Context()
	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		ConfigPath: configPath,
		Refresh:    opts.refresh,
	})
	if err != nil {
		return err
	}

	source := "explored"
	if result.CacheHit {
		source = "cached"
	}
	prog.done(fmt.Sprintf("Classified %d paths from %d entries (%s)",
		result.Report.Summary.Paths, result.Report.Summary.Entries, source))

	if err := c.writeReport(result.Report, opts); err != nil {
		return err
	}

	if opts.failOnDeadEnd && !result.Report.Summary.Clean {
		return fmt.Errorf("design has %d dead ends and %d loops",
			result.Report.Summary.DeadEnds, result.Report.Summary.Loops)
	}
	return nil
}

func (c *CLI) writeReport(rep *report.Report, opts analyzeOpts) error {
	if opts.format == formatJSON {
		if opts.output == "" {
			return rep.Write(os.Stdout)
		}
		if err := rep.WriteFile(opts.output); err != nil {
			return err
		}
		printFile(opts.output)
		return nil
	}

	renderReportText(rep)
	if opts.output != "" {
		if err := rep.WriteFile(opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}

// renderReportText prints a styled, per-entry view of the report.
func renderReportText(rep *report.Report) {
	for _, w := range rep.Warnings {
		printWarning("%s", w)
	}
	if len(rep.Warnings) > 0 {
		printNewline()
	}

	for _, entry := range rep.Entries {
		verdict := styleDeadEnd.Render("unwinnable")
		if entry.Winnable {
			verdict = styleFinished.Render("winnable")
		}
		fmt.Println(styleTitle.Render("entry "+entry.Stage) + " " + styleDim.Render("·") + " " + verdict)

		for _, p := range entry.Paths {
			icon, style := outcomeStyle(p.Outcome)
			track := strings.Join(p.Track, " "+iconArrow+" ")
			line := fmt.Sprintf("  %s %-9s %s", style.Render(icon), style.Render(p.Outcome), styleValue.Render(track))
			if len(p.Skills) > 0 {
				line += " " + styleDim.Render("["+strings.Join(p.Skills, ", ")+"]")
			}
			fmt.Println(line)
		}
		printNewline()
	}

	s := rep.Summary
	if s.Clean {
		printSuccess("%d paths: %d finished, no dead ends, no loops", s.Paths, s.Finished)
	} else {
		printError("%d paths: %d finished, %d dead ends, %d loops", s.Paths, s.Finished, s.DeadEnds, s.Loops)
	}
}
