// Command carcheck is the forward CAR model checker's command-line
// driver: it parses an AIG model, iterates its bad outputs, and
// reports SAFE/UNSAFE (with a counterexample) for each.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carverify/forwardcar/aig"
	"github.com/carverify/forwardcar/car"
	_ "github.com/carverify/forwardcar/car/visualize"
)

var (
	forward       bool
	backward      bool
	timeoutSecs   int
	interactive   bool
	rotation      bool
	propagation   bool
	endEnumerate  bool
	debug         bool
	muc           bool
	dead          bool
	partial       bool
	restart       bool
	luby          bool
	depthLimit    int
	visualization bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "carcheck <aig-file> <output-dir> [counterexample-file]",
		Short: "forward CAR safety model checker for AIG transition systems",
		Args:  cobra.RangeArgs(2, 3),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
			if forward && backward {
				return fmt.Errorf("carcheck: -f and -b are mutually exclusive")
			}
			return nil
		},
		RunE: run,
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&forward, "forward", "f", true, "run the forward CAR procedure (default)")
	flags.BoolVarP(&backward, "backward", "b", false, "run the backward CAR procedure (out of scope for this build)")
	flags.IntVar(&timeoutSecs, "timeout", 0, "wall-clock limit in seconds, 0 for no limit")
	flags.BoolVar(&interactive, "inter", false, "accepted for compatibility; has no effect in this build")
	flags.BoolVar(&rotation, "rotation", false, "reorder assumption literals using the last-successful cube")
	flags.BoolVar(&propagation, "prop", true, "push subsumed cubes to higher frames between iterations")
	flags.BoolVar(&endEnumerate, "end", false, "accepted and passed to the checker; has no effect on start-state enumeration in this build")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.BoolVar(&muc, "muc", true, "extract a minimal unsatisfiable core from each conflict")
	flags.BoolVar(&dead, "dead", false, "accepted for compatibility; has no effect in this build")
	flags.BoolVar(&partial, "partial", true, "generalize discovered states via partial-state extraction")
	flags.BoolVar(&restart, "restart", false, "accepted for compatibility; has no effect in this build")
	flags.BoolVar(&luby, "luby", false, "accepted for compatibility; has no effect in this build")
	flags.IntVar(&depthLimit, "depth", 0, "accepted for compatibility; has no effect in this build")
	flags.BoolVar(&visualization, "vis", false, "emit a GML dump of the under-sequence on exit")

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputDir := args[1]
	var traceFile string
	if len(args) == 3 {
		traceFile = args[2]
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("carcheck: %w", err)
	}
	defer f.Close()

	model, err := aig.ParseASCII(f)
	if err != nil {
		return fmt.Errorf("carcheck: malformed input: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("carcheck: %w", err)
	}

	baseSettings := car.Settings{
		Forward:     true,
		Partial:     partial,
		Rotate:      rotation,
		Propagation: propagation,
		MUC:         muc,
		End:         endEnumerate,
	}
	if timeoutSecs > 0 {
		baseSettings.TimeLimit = time.Duration(timeoutSecs) * time.Second
	}

	tracer := car.Tracer(car.DefaultTracer{})
	if debug {
		tracer = car.LogrusTracer{Log: log.StandardLogger()}
	}

	if dead {
		log.Debug("carcheck: -dead has no effect; this build does not classify outputs as dead")
	}

	// A fresh Checker per bad output, so each gets its own
	// visualization destination (settings are captured by value at
	// construction, not mutable afterward).
	for _, bad := range model.GetOutputs() {
		settings := baseSettings
		settings.Visualization = visualization
		settings.VisualizationPath = filepath.Join(outputDir, fmt.Sprintf("under-%d.gml", bad))

		checker := car.NewChecker(model, settings, tracer)
		result, err := checker.Check(bad)
		switch {
		case err != nil:
			log.WithFields(log.Fields{"output": bad, "error": err}).Error("carcheck: query did not complete")
		case result.Safe:
			log.WithFields(log.Fields{"output": bad, "invariantLevel": result.InvariantLevel}).Info("carcheck: SAFE")
		default:
			log.WithField("output", bad).Warn("carcheck: UNSAFE")
			if traceFile != "" {
				if err := os.WriteFile(traceFile, []byte(result.Counterexample.Format()), 0o644); err != nil {
					log.WithField("error", err).Error("carcheck: failed to write counterexample")
				}
			} else {
				fmt.Print(result.Counterexample.Format())
			}
		}
	}

	// Exit code 0 on any decided outcome (including per-output errors
	// logged above and timeouts), per spec §6; only a malformed input
	// or setup failure above returns a non-nil error from run.
	return nil
}
