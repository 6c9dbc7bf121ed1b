package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinelist/internal/adapter"
	"github.com/mmcdole/cinelist/internal/collection"
	"github.com/mmcdole/cinelist/internal/config"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/log"
	"github.com/mmcdole/cinelist/internal/service"
	"github.com/mmcdole/cinelist/internal/store"
	"github.com/mmcdole/cinelist/internal/tui"
	"github.com/mmcdole/cinelist/internal/view"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	showVersion bool
	configPath  string
	memory      bool
	list        bool
	search      string
	sort        string
	reset       bool
	initConfig  bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.showVersion, "v", false, "print version")
	flag.BoolVar(&opts.showVersion, "version", false, "print version")
	flag.StringVar(&opts.configPath, "config", "", "path to config file")
	flag.BoolVar(&opts.memory, "memory", false, "keep movies in memory only")
	flag.BoolVar(&opts.list, "list", false, "print the movie list and exit")
	flag.StringVar(&opts.search, "search", "", "title filter for -list")
	flag.StringVar(&opts.sort, "sort", "", "sort for -list: alphabetical or year")
	flag.BoolVar(&opts.reset, "reset", false, "delete all stored movies and exit")
	flag.BoolVar(&opts.initConfig, "init-config", false, "write the default config file and exit")
	flag.Parse()

	if opts.showVersion {
		fmt.Printf("cinelist %s\n", Version)
		return
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	return config.LoadConfig()
}

func run(opts options, stdout io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.initConfig {
		if err := config.SaveConfig(cfg, opts.configPath); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "✓ Configuration saved!")
		return nil
	}

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinelist", "version", Version)

	dbPath := cfg.Storage.Path
	if opts.memory {
		dbPath = ""
	}
	blobs, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer blobs.Close()

	if opts.reset {
		if err := blobs.Delete(store.CollectionKey); err != nil {
			return fmt.Errorf("failed to reset storage: %w", err)
		}
		logger.Info("reset stored collection", "path", blobs.Path())
		fmt.Fprintln(stdout, "✓ Movie list cleared.")
		return nil
	}

	sortMode := cfg.SortMode()
	if opts.sort != "" {
		if sortMode, err = domain.ParseSortMode(opts.sort); err != nil {
			return err
		}
	}

	reporter := tui.NewChannelReporter()
	st := collection.NewStore(store.NewAdapter(blobs),
		collection.WithLogger(logger),
		collection.WithReporter(reporter),
	)
	loadErr := st.Load()

	svc := service.NewMovieService(st, view.NewDeriver(cfg.LanguageTag()), sortMode, logger)
	svc.SetSearch(opts.search)

	if opts.list || !isTerminal(os.Stdout) {
		if loadErr != nil && errors.Is(loadErr, domain.ErrCorruptPersistedData) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", loadErr)
		}
		_, err := io.WriteString(stdout, renderMovies(svc.View())+"\n")
		return err
	}

	model := tui.NewModel(svc, reporter.C())
	model.Opener = adapter.NewOpener(cfg.Viewer.Command, cfg.Viewer.Args, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down", "movies", svc.Collection().Len())
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
