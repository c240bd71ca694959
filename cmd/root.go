package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MatrixWeber/git-scripts/internal/config"
	"github.com/MatrixWeber/git-scripts/internal/git"
	"github.com/MatrixWeber/git-scripts/internal/logger"
	"github.com/MatrixWeber/git-scripts/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	branchName string
	force      bool
	ignore     bool
	remote     string
	dryRun     bool
	noVerify   bool
	verbose    bool
	configErr  error
	rootCmd    = &cobra.Command{
		Use:   "gpush [commit_message] [files...]",
		Short: "gpush - create or reuse a branch, commit and push in one step",
		Long: `gpush creates (or switches to) a branch, commits your changes and pushes ` +
			`the branch to the remote.

Without files every modified tracked file is committed; untracked files are
never picked up. With files exactly those paths are staged and committed.

The commit message must reference the tracker (for example
"PLUSCONTROL/buildenv#1018 fix build") unless --ignore is given. In a
superproject with submodules, --ignore without a message builds the message
from the submodule summary of git diff.`,
		Example: `  gpush "PLUSCONTROL/123 fix parser"
  gpush -b feature/x "PLUSCONTROL/123 fix parser" src/parser.go
  gpush -f "PLUSCONTROL/123 rewrite history"
  gpush -i`,
		Version:       fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		Args:          cobra.ArbitraryArgs,
		RunE:          runPush,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetContext sets the context handed to every command.
func SetContext(ctx context.Context) {
	rootCmd.SetContext(ctx)
}

// RootCmd returns the root command, used for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $XDG_CONFIG_HOME/gpush/config.yaml)")
	rootCmd.Flags().StringVarP(&branchName, "branch_name", "b", "",
		"The name of the new branch (optional, defaults to the current branch)")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "Force push")
	rootCmd.Flags().BoolVarP(&ignore, "ignore", "i", false,
		"Do not require a commit message with a tracker reference")
	rootCmd.Flags().StringVar(&remote, "remote", "", "Remote to push to (default from config, usually origin)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the git commands that would change the repository")
	rootCmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip pre-commit and commit-msg hooks")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Show every git command that runs")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

// buildRequest maps positional arguments the way the tool always has: the
// first one is the commit message, the rest are files.
func buildRequest(args []string) workflow.Request {
	req := workflow.Request{BranchName: branchName, Force: force}
	if len(args) > 0 {
		req.CommitMessage = args[0]
		req.Files = append([]string(nil), args[1:]...)
	}
	return req
}

// validateMessage enforces the tracker reference unless ignore is set.
func validateMessage(message string, ignore bool, prefix string) error {
	if ignore {
		return nil
	}
	if message == "" {
		return newUsageError("the following arguments are required: commit_message")
	}
	if !strings.Contains(message, prefix) {
		return newUsageError(fmt.Sprintf(
			"the commit_message does not contain the tracker reference starting with %s", prefix))
	}
	return nil
}

func runPush(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return fmt.Errorf("configuration error: %w", configErr)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	req := buildRequest(args)
	if err := validateMessage(req.CommitMessage, ignore, cfg.ReferencePrefix); err != nil {
		return err
	}

	log, closer, err := logger.New(logger.Options{
		Verbose: verbose || cfg.Verbose,
		File:    cfg.LogFile,
		Console: errWriter(),
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	pushRemote := remote
	if pushRemote == "" {
		pushRemote = cfg.Remote
	}

	gitClient := git.NewClient(git.Options{
		Logger:          log,
		DryRun:          dryRun,
		Out:             errWriter(),
		SubmoduleMarker: cfg.SubmoduleMarker,
	})
	flow := workflow.NewPushFlow(gitClient, workflow.Options{
		Remote:    pushRemote,
		NoVerify:  noVerify,
		ErrWriter: errWriter(),
		Logger:    log,
	})

	result, err := flow.Run(cmd.Context(), req)
	if err != nil {
		log.Error("workflow failed", "error", err)
		return err
	}
	log.Debug("workflow finished", "branch", result.Branch, "from_submodule_diff", result.FromSubmoduleDiff)
	if dryRun {
		fmt.Fprintln(errWriter(), "Dry run mode, no changes were made")
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, rootCmd.UsageString())
}
