package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wakego/wakego/internal/config"
	"github.com/wakego/wakego/internal/method"
	"github.com/wakego/wakego/internal/mode"
	"github.com/wakego/wakego/internal/ui"
	"github.com/wakego/wakego/internal/util"
)

const appVersion = "0.1.0"

var (
	flagRunning    bool
	flagPresenting bool
	flagFor        string
	flagOnFail     string
	flagPlain      bool
	flagVerbose    int
)

var rootCmd = &cobra.Command{
	Use:     "wakego",
	Short:   "Keep the system awake for as long as wakego runs",
	Long: `wakego prevents automatic idle sleep (and optionally screen lock and
display-off) until it exits. Nothing is changed persistently; the inhibit is
revoked when the hold ends.`,
	Version: appVersion,
	RunE:    runHold,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagRunning, "keep-running", "r", false,
		"inhibit idle sleep only (keep.running)")
	rootCmd.PersistentFlags().BoolVarP(&flagPresenting, "presentation", "p", false,
		"also inhibit screensaver and display-off (keep.presenting, the default)")
	rootCmd.Flags().StringVar(&flagFor, "for", "",
		`hold duration, e.g. "2h30m" or minutes as a bare number (default: until interrupted)`)
	rootCmd.PersistentFlags().StringVar(&flagOnFail, "on-fail", "",
		"action when no method activates: error, warn or pass")
	rootCmd.Flags().BoolVar(&flagPlain, "plain", false,
		"plain log output instead of the interactive status view")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v",
		"increase verbosity")

	rootCmd.AddCommand(methodsCmd)
}

// selectedMode resolves the mode name from flags, then the config file, then
// the default.
func selectedMode(cfg *config.File) (string, error) {
	switch {
	case flagRunning && flagPresenting:
		return "", fmt.Errorf("-r and -p are mutually exclusive")
	case flagRunning:
		return method.ModeKeepRunning, nil
	case flagPresenting:
		return method.ModeKeepPresenting, nil
	case cfg.Mode != "":
		return cfg.Mode, nil
	}
	return method.ModeKeepPresenting, nil
}

// buildMode assembles the Mode from flags and the config file.
func buildMode(cfg *config.File) (*mode.Mode, error) {
	name, err := selectedMode(cfg)
	if err != nil {
		return nil, err
	}

	onFail := mode.OnFailWarn
	if cfg.OnFail != "" {
		onFail = mode.OnFail(cfg.OnFail)
	}
	if flagOnFail != "" {
		onFail = mode.OnFail(flagOnFail)
	}

	return mode.New(mode.Config{
		Name:     name,
		Methods:  cfg.Methods,
		Omit:     cfg.Omit,
		Priority: cfg.Priority,
		OnFail:   onFail,
	})
}

func runHold(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var holdFor time.Duration
	if flagFor != "" {
		holdFor, err = util.ParseDuration(flagFor)
		if err != nil {
			return err
		}
	}

	m, err := buildMode(cfg)
	if err != nil {
		return err
	}

	if err := m.Enter(); err != nil {
		return err
	}
	defer m.Exit()

	if !m.Active() {
		// on-fail warn or pass: the failure was already handled; there
		// is nothing to hold.
		return nil
	}

	winner := m.Method()
	if !flagPlain && isatty.IsTerminal(os.Stdout.Fd()) {
		return holdInteractive(m, winner.Name, holdFor)
	}
	return holdPlain(m, winner.Name, holdFor)
}

// holdInteractive shows the bubbletea status view until the user quits, a
// signal arrives, or the timed hold expires.
func holdInteractive(m *mode.Mode, methodName string, holdFor time.Duration) error {
	model := ui.New(m.Name(), methodName, m.Result().RealSuccess, holdFor)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(model, tea.WithoutSignalHandler())
	go func() {
		if sig, ok := <-sigChan; ok {
			log.Printf("wakego: received %v", sig)
			p.Quit()
		}
	}()

	_, err := p.Run()
	return err
}

// holdPlain blocks until a signal arrives or the timed hold expires.
func holdPlain(m *mode.Mode, methodName string, holdFor time.Duration) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if holdFor > 0 {
		log.Printf("wakego: %s active via %s for %s", m.Name(), methodName, holdFor)
		select {
		case sig := <-sigChan:
			log.Printf("wakego: received %v", sig)
		case <-time.After(holdFor):
			log.Printf("wakego: hold duration elapsed")
		}
		return nil
	}

	log.Printf("wakego: %s active via %s until interrupted", m.Name(), methodName)
	sig := <-sigChan
	log.Printf("wakego: received %v", sig)
	return nil
}
