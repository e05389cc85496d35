package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ballotbox/cmd/ballot/form"
	"ballotbox/cmd/ballot/ui"
	"ballotbox/internal/ballot"
	"ballotbox/internal/config"
	"ballotbox/internal/logging"
	"ballotbox/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	storePath  string

	// vote flags
	voteCandidate string
	voteID        string

	// init flags
	initForce bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// errRejected marks a vote the ballot refused; the reason has already been printed.
var errRejected = errors.New("vote rejected")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ballot",
	Short: "Cast a vote for best artist",
	Long: `ballot records one vote per voter identifier in a CSV file.

Run without arguments to open the interactive voting form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if storePath != "" {
			cfg.Store.Path = storePath
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		// The form owns the terminal, so it never gets a console logger.
		var sink zapcore.WriteSyncer
		if verbose && cmd != cmd.Root() {
			sink = zapcore.Lock(os.Stderr)
		}
		if err := logging.Initialize(cfg.Logging, sink); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logging.Get(logging.CategoryBoot)
		logging.Boot("config loaded",
			zap.String("config", configPath),
			zap.String("store", cfg.Store.Path),
			zap.Bool("index", cfg.Store.Index),
		)
		return nil
	},
	RunE: runForm,
}

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Cast a vote without the interactive form",
	Long: `Validates the identifier, rejects it if it has already voted,
and otherwise appends the vote to the store.

Example:
  ballot vote --candidate "Taylor Swift" --id 42`,
	Args: cobra.NoArgs,
	RunE: runVote,
}

var checkCmd = &cobra.Command{
	Use:   "check [identifier]",
	Short: "Report whether an identifier has already voted",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List the candidates on the ballot",
	Args:  cobra.NoArgs,
	RunE:  runCandidates,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Writes the effective configuration (defaults plus any BALLOT_* overrides
and --store) to the --config path so it can be edited.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	// PersistentPostRun is skipped when RunE fails; finalizers are not.
	cobra.OnFinalize(logging.Close)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr (not used by the interactive form)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Vote file (overrides config)")

	voteCmd.Flags().StringVar(&voteCandidate, "candidate", "", "Candidate name, exactly as listed by 'ballot candidates'")
	voteCmd.Flags().StringVar(&voteID, "id", "", "Voter identifier (a positive whole number)")

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(candidatesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if errors.Is(err, errRejected) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore returns the configured store and a func that releases it.
// If the index cannot start, the plain file scan is used instead.
func openStore() (store.Store, func()) {
	csv := store.NewCSVStore(cfg.Store.Path)
	if !cfg.Store.Index {
		return csv, func() {}
	}
	idx, err := store.NewIndexedStore(csv)
	if err != nil {
		logger.Warn("index unavailable, falling back to file scan", zap.Error(err))
		return csv, func() {}
	}
	return idx, func() { _ = idx.Close() }
}

func styles() ui.Styles {
	return ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
}

// runForm opens the interactive form.
func runForm(cmd *cobra.Command, args []string) error {
	s, release := openStore()
	defer release()

	logger.Info("form started", zap.String("store", cfg.Store.Path))
	return form.Run(cmd.Context(), ballot.NewRecorder(s), styles())
}

// runVote is the non-interactive form: same recorder, same messages.
func runVote(cmd *cobra.Command, args []string) error {
	candidate := ballot.NoCandidate
	if voteCandidate != "" {
		c, ok := ballot.ParseCandidate(voteCandidate)
		if !ok {
			return fmt.Errorf("unknown candidate %q (see 'ballot candidates')", voteCandidate)
		}
		candidate = c
	}

	s, release := openStore()
	defer release()

	out, err := ballot.NewRecorder(s).SubmitVote(cmd.Context(), candidate, trimmed(voteID))
	if err != nil {
		return err
	}

	st := styles()
	n := form.Describe(out)
	switch n.Kind {
	case form.NoticeInfo:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", st.Success.Render(n.Title), n.Text)
		return nil
	case form.NoticeError:
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", st.Error.Render(n.Title), n.Text)
	default:
		fmt.Fprintln(cmd.ErrOrStderr(), st.Error.Render(n.Text))
	}
	return errRejected
}

// runCheck runs only the duplicate scan.
func runCheck(cmd *cobra.Command, args []string) error {
	s, release := openStore()
	defer release()

	id := trimmed(args[0])
	found, err := s.Contains(cmd.Context(), id)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has already voted\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has not voted\n", id)
	}
	return nil
}

func runCandidates(cmd *cobra.Command, args []string) error {
	for i, c := range ballot.Candidates {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, c)
	}
	return nil
}

// runInit saves the loaded config to configPath.
func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}
	if err := cfg.Save(configPath); err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", configPath))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	return nil
}
