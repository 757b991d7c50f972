// Package commands implements the albert command tree using Cobra.
package commands

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
	"github.com/petal-labs/albert-go/cli/config"
	"github.com/petal-labs/albert-go/cli/keystore"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ClientFactory creates a platform client from resolved connection settings.
type ClientFactory func(s ClientSettings) (*albert.Client, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newClient   ClientFactory
	newKeystore KeystoreFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer

	cfgFile    string
	profile    string
	baseURL    string
	timeout    time.Duration
	envFile    string
	jsonOutput bool
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithClientFactory injects a client factory dependency.
func WithClientFactory(factory ClientFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newClient = factory
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  config.LoadConfig,
		newClient:   defaultClientFactory,
		newKeystore: keystore.NewKeystore,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "albert",
		Short: "albert - command-line client for the Albert AI platform",
		Long: `albert talks to an Albert AI platform deployment: models, chat,
embeddings, audio transcription, document parsing, collections, documents,
search and account management.

Credentials come from ALBERT_API_BASE_URL and ALBERT_API_KEY, a profile in
~/.albert/config.yaml, or the encrypted keystore ("albert keys set").`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ~/.albert/config.yaml)")
	pf.StringVar(&a.profile, "profile", "", "config profile (default is default_profile)")
	pf.StringVar(&a.baseURL, "base-url", "", "platform base URL (overrides profile and "+albert.EnvBaseURL+")")
	pf.DurationVar(&a.timeout, "timeout", 0, "per-request timeout (e.g. 45s)")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load; missing files are ignored")
	pf.BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	pf.BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newModelsCommand())
	root.AddCommand(a.newChatCommand())
	root.AddCommand(a.newEmbedCommand())
	root.AddCommand(a.newTranscribeCommand())
	root.AddCommand(a.newParseCommand())
	root.AddCommand(a.newOCRCommand())
	root.AddCommand(a.newCollectionsCommand())
	root.AddCommand(a.newDocumentsCommand())
	root.AddCommand(a.newChunksCommand())
	root.AddCommand(a.newSearchCommand())
	root.AddCommand(a.newRerankCommand())
	root.AddCommand(a.newUsageCommand())
	root.AddCommand(a.newTokensCommand())
	root.AddCommand(a.newEndpointsCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// SetArgs overrides the arguments the root command parses.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the root command. Failures are reported on stderr and
// returned as errors carrying an exit code.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a context passed to every command.
func (a *App) ExecuteContext(ctx context.Context) error {
	err := a.root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	return a.reportError(err)
}

func (a *App) initConfig() error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return exitWithCode(ExitValidation, err)
		}
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}
	a.cfg = cfg

	return nil
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute(ctx context.Context) error {
	return defaultApp.ExecuteContext(ctx)
}
