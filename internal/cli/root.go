// Package cli wires the quiz client's commands. Interactive flows read from
// an injected reader and write to an injected writer so tests can drive
// them with buffers.
package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"quiz-client/internal/api"
	"quiz-client/internal/config"
	"quiz-client/internal/session"
	"quiz-client/internal/state"
)

const defaultHTTPTimeout = 10 * time.Second

type app struct {
	client   *api.Client
	sessions *session.Store
	session  *session.Session
	store    *state.Store
	log      *logrus.Logger
	in       *bufio.Reader
	out      io.Writer
}

// Execute runs the CLI. An interrupt cancels the context threaded through
// every command, so an in-flight call aborts instead of finishing late.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx)
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	envServer := os.Getenv("QUIZ_SERVER")
	envConfig := os.Getenv("QUIZ_CLIENT_CONFIG")
	if envConfig == "" {
		envConfig = filepath.Join(homeDir(), ".quiz-client", "config.yaml")
	}

	var (
		serverURL  string
		configPath string
		statePath  string
		timeout    time.Duration
		verbose    bool
	)

	a := &app{
		log: logrus.New(),
		in:  bufio.NewReader(in),
		out: out,
	}

	cmd := &cobra.Command{
		Use:           "quiz-client",
		Short:         "Take and author quizzes against a remote quiz service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, serverURL, configPath, statePath, timeout, verbose)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.store != nil {
				_ = a.store.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", envServer, "quiz service base URL")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&statePath, "state", "", "path to the local state database")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "HTTP timeout")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newRegisterCmd(a))
	cmd.AddCommand(newLogoutCmd(a))
	cmd.AddCommand(newWhoamiCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newCreateCmd(a))
	cmd.AddCommand(newPlayCmd(a))
	cmd.AddCommand(newResultsCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	return cmd
}

// setup resolves config in flag > config file > default order and builds
// the store, session and API client every command shares.
func (a *app) setup(cmd *cobra.Command, serverURL, configPath, statePath string, timeout time.Duration, verbose bool) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(logrus.WarnLevel)
	if verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		cfg = config.Config{}
	}
	if !verbose && cfg.Log.Level != "" {
		if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
			a.log.SetLevel(level)
		}
	}

	if serverURL == "" {
		serverURL = cfg.Server.BaseURL
	}
	if timeout <= 0 {
		timeout = config.Timeout(cfg.Server.Timeout, defaultHTTPTimeout)
	}
	if statePath == "" {
		statePath = cfg.State.Path
	}
	if statePath == "" {
		dir := filepath.Join(homeDir(), ".quiz-client")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
		statePath = filepath.Join(dir, "state.db")
	}

	store, err := state.Open(statePath)
	if err != nil {
		return err
	}
	a.store = store
	a.sessions = session.NewStore(store)

	sess, err := a.sessions.Load(cmd.Context())
	if err != nil {
		return err
	}
	a.session = sess

	a.client = api.NewClient(serverURL, &http.Client{Timeout: timeout}, sess, a.log)
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
