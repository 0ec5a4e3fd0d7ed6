// Package app wires configuration, roster, engine, outputs, and the archive
// into complete command workflows.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"houseduty/internal/archive"
	"houseduty/internal/calendar"
	"houseduty/internal/catalog"
	"houseduty/internal/config"
	"houseduty/internal/lock"
	"houseduty/internal/logging"
	"houseduty/internal/model"
	"houseduty/internal/output"
	"houseduty/internal/roster"
	"houseduty/internal/schedule"
	"houseduty/internal/statefile"
)

// Options are the effective settings for one generation run, CLI flags
// layered over the config file.
type Options struct {
	ConfigPath string

	// Overrides; zero values defer to the config file.
	StartSunday    string
	Weeks          int
	Seed           int64
	SeedSet        bool
	MinBonusRoster int

	// DryRun generates and prints without touching state, exports, or the
	// archive.
	DryRun bool

	// Quiet silences the log stream; Verbose lowers it to debug.
	Quiet   bool
	Verbose bool

	// File overrides.
	RosterPath      string
	ConstraintsPath string
	CategoriesPath  string
	StatePath       string
	CSVPath         string
	JSONPath        string
	ArchivePath     string
}

// App carries the loaded configuration and logger shared by all commands.
type App struct {
	Config model.Config
	Opts   Options
	Logger *log.Logger
	Out    io.Writer

	logFile io.Closer
}

// New loads and validates configuration, applies option overrides, and
// returns an App ready to run commands. With a nil logger, one is built from
// the configured level and log file honoring Quiet/Verbose; Close releases
// the log file it opens.
func New(opts Options, logger *log.Logger, out io.Writer) (*App, error) {
	// The configured log file is not known until the config is loaded, so
	// load-time messages go to a plain stderr logger.
	bootstrap := logger
	if bootstrap == nil && !opts.Quiet {
		bootstrap = log.New(os.Stderr, "", log.LstdFlags)
	}

	cfg, err := config.Load(opts.ConfigPath, bootstrap)
	if err != nil {
		return nil, err
	}

	if opts.StartSunday != "" {
		cfg.Scheduling.StartSunday = opts.StartSunday
	}
	if opts.Weeks > 0 {
		cfg.Scheduling.WeeksToGenerate = opts.Weeks
	}
	if opts.SeedSet {
		cfg.Scheduling.RandomSeed = opts.Seed
	}
	if opts.MinBonusRoster > 0 {
		cfg.Scheduling.BonusMinRoster = opts.MinBonusRoster
	}
	if opts.RosterPath != "" {
		cfg.Files.Roster = opts.RosterPath
	}
	if opts.ConstraintsPath != "" {
		cfg.Files.Constraints = opts.ConstraintsPath
	}
	if opts.CategoriesPath != "" {
		cfg.Files.Categories = opts.CategoriesPath
	}
	if opts.StatePath != "" {
		cfg.Files.State = opts.StatePath
	}
	if opts.CSVPath != "" {
		cfg.Files.OutputCSV = opts.CSVPath
	}
	if opts.JSONPath != "" {
		cfg.Files.OutputJSON = opts.JSONPath
	}
	if opts.ArchivePath != "" {
		cfg.Files.Archive = opts.ArchivePath
	}

	if err := config.Validate(cfg, bootstrap); err != nil {
		return nil, err
	}

	if out == nil {
		out = os.Stdout
	}

	var logFile io.Closer
	if logger == nil {
		logger, logFile, err = logging.Open(cfg.Logging.Level, cfg.Logging.File, opts.Quiet, opts.Verbose)
		if err != nil {
			return nil, err
		}
	}
	return &App{Config: cfg, Opts: opts, Logger: logger, Out: out, logFile: logFile}, nil
}

// Close releases the log file if New opened one.
func (a *App) Close() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}

// Generate runs one full scheduling pass: load inputs, expand and assign,
// render, export, archive, and persist the evolved state. With DryRun set,
// everything after rendering is skipped.
func (a *App) Generate(ctx context.Context) error {
	cfg := a.Config

	names, err := roster.Load(cfg.Files.Roster, a.Logger)
	if err != nil {
		return err
	}

	cons, err := roster.LoadConstraints(cfg.Files.Constraints, a.Logger)
	if err != nil {
		return err
	}
	groups, err := roster.LoadGroups(cfg.Files.Categories, a.Logger)
	if err != nil {
		return err
	}

	templates := catalog.Build(cfg)
	if err := catalog.Validate(templates); err != nil {
		return fmt.Errorf("task catalog: %w", err)
	}

	taskKeys := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		taskKeys[tpl.Key] = true
	}
	if err := roster.ValidateConstraints(cons, names, taskKeys, a.Logger); err != nil {
		return err
	}
	if err := roster.ValidateGroups(groups, names); err != nil {
		return err
	}

	startSunday, err := calendar.ParseStartSunday(cfg.Scheduling.StartSunday, time.Now())
	if err != nil {
		return err
	}

	if !a.Opts.DryRun {
		if err := os.MkdirAll(filepath.Dir(cfg.Files.State), 0755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
		fl := lock.NewFileLock(lockPath(cfg.Files.State))
		if err := fl.TryLock(); err != nil {
			return err
		}
		defer fl.Unlock()
	}

	// A preview must not touch the state directory, so it also skips the
	// quarantine and backup-restore path a corrupted file would trigger.
	var state model.State
	if a.Opts.DryRun {
		state, err = statefile.LoadReadOnly(cfg.Files.State, a.Logger)
	} else {
		state, err = statefile.Load(cfg.Files.State, a.Logger)
	}
	if err != nil {
		return err
	}

	res, err := schedule.Run(schedule.Inputs{
		Config:      cfg,
		Templates:   templates,
		Names:       names,
		Constraints: cons,
		Groups:      groups,
		State:       state,
		StartSunday: startSunday,
		NumWeeks:    cfg.Scheduling.WeeksToGenerate,
		RandomSeed:  cfg.Scheduling.RandomSeed,
	}, a.Logger)
	if err != nil {
		return err
	}

	if err := output.RenderByDeck(a.Out, res.Items, cfg.Display.DeckOrder); err != nil {
		return err
	}

	if a.Opts.DryRun {
		a.Logger.Printf("INFO dry run complete items=%d state untouched", len(res.Items))
		return nil
	}

	if err := a.export(res.Items); err != nil {
		return err
	}
	if err := a.archiveRun(ctx, res, startSunday, len(names)); err != nil {
		return err
	}

	if err := statefile.Save(cfg.Files.State, res.State); err != nil {
		return err
	}
	a.Logger.Printf("INFO run complete items=%d anchor=%s state=%s",
		len(res.Items), res.State.AnchorSunday, cfg.Files.State)
	return nil
}

func (a *App) export(items []model.ScheduleItem) error {
	cfg := a.Config

	if cfg.Files.OutputCSV != "" {
		if err := writeFileWith(cfg.Files.OutputCSV, func(w io.Writer) error {
			return output.WriteCSV(w, items)
		}); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
		a.Logger.Printf("INFO wrote csv path=%s", cfg.Files.OutputCSV)
	}

	if cfg.Files.OutputJSON != "" {
		if err := writeFileWith(cfg.Files.OutputJSON, func(w io.Writer) error {
			return output.WriteJSON(w, items)
		}); err != nil {
			return fmt.Errorf("json export: %w", err)
		}
		a.Logger.Printf("INFO wrote json path=%s", cfg.Files.OutputJSON)
	}
	return nil
}

func (a *App) archiveRun(ctx context.Context, res schedule.Result, startSunday time.Time, rosterSize int) error {
	if a.Config.Files.Archive == "" {
		return nil
	}

	db, err := archive.Open(ctx, a.Config.Files.Archive)
	if err != nil {
		return err
	}
	defer db.Close()

	runID, err := archive.NewRepo(db).InsertRun(ctx, archive.RunInsert{
		StartSunday: startSunday.Format("2006-01-02"),
		Weeks:       a.Config.Scheduling.WeeksToGenerate,
		RosterSize:  rosterSize,
		Seed:        a.Config.Scheduling.RandomSeed,
		Items:       res.Items,
	})
	if err != nil {
		return err
	}
	a.Logger.Printf("INFO archived run id=%s items=%d", runID, len(res.Items))
	return nil
}

// WatchedPaths lists the files whose changes should trigger regeneration.
func (a *App) WatchedPaths() []string {
	paths := []string{
		a.Config.Files.Roster,
		a.Config.Files.Constraints,
		a.Config.Files.Categories,
	}
	if a.Opts.ConfigPath != "" {
		paths = append(paths, a.Opts.ConfigPath)
	}
	return paths
}

func lockPath(statePath string) string {
	return filepath.Join(filepath.Dir(statePath), "run.lock")
}

func writeFileWith(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
