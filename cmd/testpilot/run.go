// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"testpilot-cli/internal/argv"
	"testpilot-cli/internal/classify"
	"testpilot-cli/internal/compat"
	"testpilot-cli/internal/config"
	"testpilot-cli/internal/issue"
	"testpilot-cli/internal/launch"
	"testpilot-cli/internal/nodeenv"
	"testpilot-cli/pkg/types"
)

// verbose is the effective verbosity, resolved from --tp-verbose and
// the config file.
var verbose bool

// runnerAliases maps the runner's canonical option names to the short
// spellings its own parser accepts. Consulted only while unparsing, so
// an alias the user typed is forwarded under its canonical name.
var runnerAliases = argv.AliasTable{
	"bail":     {"b"},
	"fgrep":    {"f"},
	"grep":     {"g"},
	"invert":   {"i"},
	"reporter": {"R"},
	"require":  {"r"},
	"slow":     {"s"},
	"sort":     {"S"},
	"timeout":  {"t", "timeouts"},
	"ui":       {"u"},
	"watch":    {"w"},
}

// runLaunch is the root command: classify the raw vector, apply the
// compatibility rules, and hand off to the supervised child.
func runLaunch(cmd *cobra.Command, args []string) error {
	opts := argv.Parse(args)

	// cobra never saw the flags, so help is on us.
	if opts["help"] == true || opts["h"] == true {
		return cmd.Help()
	}

	if path, ok := opts["tp-config"].(string); ok {
		config.SetConfigFilePathOverride(path)
	}
	delete(opts, "tp-config")
	tpVerbose := opts["tp-verbose"] == true
	delete(opts, "tp-verbose")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	verbose = tpVerbose || cfg.UI.Verbose
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	env := nodeenv.NewProbe(cfg.Node.Path)
	spec, err := composeInvocation(opts, cfg, env, log.Warnf)
	if err != nil {
		return err
	}

	launcher := &launch.Launcher{
		GracePeriod: cfg.Launch.GracePeriod,
		Diagnostics: os.Stdout,
	}
	status, err := launcher.Run(spec)
	if err != nil {
		return err
	}

	if status.State() == launch.StateSignaled {
		if raiseErr := launch.Raise(status.Signal); raiseErr != nil {
			log.Debug("signal re-raise failed", "signal", status.Signal, "err", raiseErr)
		}
		// Reached only when re-raising was impossible.
		return &ExitError{Code: types.FromSignal(int(status.Signal))}
	}
	if !status.Code.IsSuccess() {
		return &ExitError{Code: status.Code}
	}
	return nil
}

// composeInvocation runs the classification pipeline on an already
// parsed option mapping and yields the child invocation. It touches
// no processes, so tests can drive it with a static environment.
func composeInvocation(opts argv.Options, cfg *config.Config, env nodeenv.Env, warnf compat.WarnFunc) (launch.Spec, error) {
	log.Debug("parsed option mapping", "options", fmt.Sprintf("%v", opts))

	node, runner := classify.Split(opts, classify.DefaultRegistry())
	log.Debug("classified option sets", "node", fmt.Sprintf("%v", node), "runner", fmt.Sprintf("%v", runner))

	compat.Apply(node, runner, env, warnf)
	log.Debug("option sets after compatibility rules", "node", fmt.Sprintf("%v", node), "runner", fmt.Sprintf("%v", runner))

	nodePath, err := resolveNode(cfg)
	if err != nil {
		return launch.Spec{}, err
	}
	entry, err := resolveEntry(cfg)
	if err != nil {
		return launch.Spec{}, err
	}

	extraNodeArgs, err := cfg.NodeArgs()
	if err != nil {
		return launch.Spec{}, err
	}

	spec := launch.Spec{
		NodePath:   nodePath,
		NodeArgs:   append(argv.UnparseJoined(node), extraNodeArgs...),
		Entry:      entry,
		RunnerArgs: argv.Unparse(runner, runnerAliases),
	}
	log.Debug("composed invocation", "argv", spec.Argv())
	return spec, nil
}

// resolveNode locates the node binary, turning a missing runtime into
// an actionable error instead of a bare exec failure.
func resolveNode(cfg *config.Config) (string, error) {
	path, err := exec.LookPath(cfg.Node.Path)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("find node binary").
			WithResource(cfg.Node.Path).
			WithSuggestion("Install node, or point node.path at an installation").
			WithSuggestion("Run 'testpilot config show' to inspect the effective config").
			Wrap(err).
			Build()
	}
	return path, nil
}

// resolveEntry verifies the runner's entry script exists before
// spawning anything.
func resolveEntry(cfg *config.Config) (string, error) {
	entry := cfg.Runner.Entry
	if _, err := os.Stat(entry); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("locate runner entry").
			WithResource(entry).
			WithSuggestion("Set runner.entry in the config file").
			WithSuggestion("Run 'testpilot config init' to create a starter config").
			Wrap(err).
			Build()
	}
	return entry, nil
}
