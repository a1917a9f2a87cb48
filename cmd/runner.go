package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harmonize-music/harmonize/internal/secrets"
	"github.com/harmonize-music/harmonize/internal/services"
	"github.com/harmonize-music/harmonize/internal/shared"
	"github.com/harmonize-music/harmonize/internal/store"
	"github.com/harmonize-music/harmonize/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer

	db    *sql.DB
	store *store.Store
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// SetLogger swaps the runner's logger (used by the TUI to log to a file).
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// reloadConfig loads the config file named by the command's --config flag.
func (r *Runner) reloadConfig(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, keeping current", "path", path, "error", err)
		return
	}
	r.config = config
}

// openStore opens the shared playlist database, migrating it if needed.
// The connection is cached for the life of the process.
func (r *Runner) openStore() (*store.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	r.store = store.New(db, r.logger)
	return r.store, nil
}

// spotifyCatalog builds the Spotify adapter from configured credentials.
func (r *Runner) spotifyCatalog() (services.Catalog, error) {
	creds := r.config.Credentials.Spotify
	if creds.AccessToken == "" {
		return nil, fmt.Errorf("%w: run 'harmonize auth spotify' first", shared.ErrNotAuthenticated)
	}
	return services.NewSpotifyCatalog(services.SpotifyCredentials{
		AccessToken: creds.AccessToken,
		UserID:      creds.UserID,
	}, r.logger)
}

// appleMusicCatalog builds the Apple Music adapter from configured credentials
// and the developer-token secrets provider.
func (r *Runner) appleMusicCatalog() (services.Catalog, error) {
	creds := r.config.Credentials.AppleMusic

	var provider secrets.Provider
	if token := os.Getenv("APPLE_MUSIC_DEVELOPER_TOKEN"); token != "" {
		provider = secrets.EnvProvider{Key: "APPLE_MUSIC_DEVELOPER_TOKEN"}
	} else if creds.DeveloperTokenPath != "" {
		provider = secrets.NewFileProvider(creds.DeveloperTokenPath)
	} else {
		return nil, fmt.Errorf("%w: no Apple Music developer token configured", shared.ErrMissingCredentials)
	}

	return services.NewAppleMusicCatalog(services.AppleMusicCredentials{
		MusicUserToken: creds.MusicUserToken,
		Storefront:     creds.Storefront,
	}, provider, r.logger)
}

// catalogs builds every adapter that has usable credentials.
func (r *Runner) catalogs() []services.Catalog {
	var built []services.Catalog
	if c, err := r.spotifyCatalog(); err == nil {
		built = append(built, c)
	} else {
		r.logger.Debug("spotify catalog unavailable", "reason", err)
	}
	if c, err := r.appleMusicCatalog(); err == nil {
		built = append(built, c)
	} else {
		r.logger.Debug("apple music catalog unavailable", "reason", err)
	}
	return built
}

// exporter wires the export engine over the store and available catalogs.
func (r *Runner) exporter() (*tasks.Exporter, error) {
	st, err := r.openStore()
	if err != nil {
		return nil, err
	}
	return tasks.NewExporter(st, r.catalogs(), r.logger), nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playlistCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Close releases the database connection if one was opened.
func (r *Runner) Close() {
	if r.db != nil {
		r.db.Close()
		r.db = nil
		r.store = nil
	}
}
