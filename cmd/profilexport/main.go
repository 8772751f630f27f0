package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johanforsgren/profilexport/internal/config"
	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/headless"
	"github.com/johanforsgren/profilexport/internal/logger"
	"github.com/johanforsgren/profilexport/internal/notify"
	"github.com/johanforsgren/profilexport/internal/remote"
	"github.com/johanforsgren/profilexport/internal/storage"
	"github.com/johanforsgren/profilexport/internal/ui"
)

type options struct {
	configPath string
	server     string
	token      string
	outputDir  string
	timeout    time.Duration
	timeoutSet bool
	list       bool
	selection  string
	all        bool
	initConfig bool
	quiet      bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("profilexport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to the YAML config file")
	fs.StringVar(&opts.server, "server", "", "Profile server base URL (overrides config)")
	fs.StringVar(&opts.token, "token", "", "Bearer token for the profile server (overrides config)")
	fs.StringVar(&opts.outputDir, "out", "", "Directory to write selected_db_configs.json to (overrides config)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "Request timeout, 0 for none (overrides config)")
	fs.BoolVar(&opts.list, "list", false, "Print the saved profiles and exit")
	fs.StringVar(&opts.selection, "select", "", "Export the listed positions, e.g. 1,3,5-7, and exit")
	fs.BoolVar(&opts.all, "all", false, "Export every saved profile and exit")
	fs.BoolVar(&opts.initConfig, "init", false, "Write the effective config to -config and exit")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress notifications in -list/-select/-all mode")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "timeout" {
			opts.timeoutSet = true
		}
	})
	if opts.all && opts.selection != "" {
		return options{}, errors.New("-all and -select are mutually exclusive")
	}
	return opts, nil
}

func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if opts.server != "" {
		cfg.ServerURL = opts.server
	}
	if opts.token != "" {
		cfg.Token = opts.token
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.timeoutSet {
		cfg.Timeout = config.Duration(opts.timeout)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if opts.initConfig {
		if err := config.Save(opts.configPath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Config written to %s\n", opts.configPath)
		return nil
	}

	if err := logger.Init(cfg.LogFile); err != nil {
		fmt.Fprintf(stderr, "Warning: session log disabled: %v\n", err)
	}
	defer logger.Close()

	client, err := remote.NewClient(remote.Options{
		BaseURL: cfg.ServerURL,
		Token:   cfg.Token,
		Timeout: time.Duration(cfg.Timeout),
	})
	if err != nil {
		return err
	}

	sink, err := storage.NewFileSink(cfg.OutputDir)
	if err != nil {
		return err
	}

	logger.Log("Starting: endpoint=%s output=%s", client.Endpoint(), sink.Dir())

	if opts.list || opts.all || opts.selection != "" {
		var notifier domain.Notifier = notify.NewConsole(stderr)
		if opts.quiet {
			notifier = notify.Discard{}
		}
		runner := headless.NewRunner(client, sink, notifier, stdout)
		if opts.list {
			return runner.List(ctx)
		}

		var indices []int
		if !opts.all {
			if indices, err = headless.ParseSelection(opts.selection); err != nil {
				return err
			}
		}
		_, err = runner.Export(ctx, indices, opts.all)
		return err
	}

	model := ui.NewModel(ctx, client, sink, ui.Options{
		Endpoint:      client.Endpoint(),
		OutputDir:     sink.Dir(),
		Authenticated: cfg.Token != "",
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", remote.ExtractErrorMessage(err))
		}
		stop()
		os.Exit(1)
	}
}
