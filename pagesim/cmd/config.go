package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/sarchlab/pagesim/mem/trace"
	"github.com/sarchlab/pagesim/report"
)

// Config holds the settings of one pagesim run.
type Config struct {
	ResultsDir  string
	MaxPages    int
	Record      bool
	DBName      string
	Monitor     bool
	MonitorPort int
	OpenBrowser bool
	EnvFile     string
}

// ErrInvalidConfig is wrapped by every error returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// envFlags maps the flags that can be set from the environment to their
// variables.
var envFlags = []struct {
	flag string
	env  string
}{
	{"results-dir", "PAGESIM_RESULTS_DIR"},
	{"max-pages", "PAGESIM_MAX_PAGES"},
	{"record", "PAGESIM_RECORD"},
	{"db", "PAGESIM_DB"},
	{"monitor-port", "PAGESIM_MONITOR_PORT"},
}

func registerFlags(flags *pflag.FlagSet) {
	flags.String("results-dir", report.DefaultResultDir,
		"Directory the CSV files are written into.")
	flags.Int("max-pages", trace.DefaultMaxPages,
		"Number of valid page numbers. Larger page numbers are rejected.")
	flags.Bool("record", false,
		"Record every result into a SQLite database.")
	flags.String("db", "",
		"Name of the database, without the .sqlite3 suffix. "+
			"A unique name is generated if empty.")
	flags.Bool("monitor", false,
		"Serve the progress of the experiments over HTTP.")
	flags.Int("monitor-port", 0,
		"Port of the monitoring server. A random port is used if 0.")
	flags.Bool("open-browser", false,
		"Open the monitoring page in a browser. Implies --monitor.")
	flags.String("env-file", ".env",
		"File of PAGESIM_* variables loaded before the flags are parsed.")
}

// applyEnv fills the flags that are not given on the command line from the
// environment, then from the env file. A missing env file is not an error.
func applyEnv(flags *pflag.FlagSet) error {
	envFile, err := flags.GetString("env-file")
	if err != nil {
		return err
	}

	fileVars, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", envFile, err)
	}

	for _, f := range envFlags {
		if flags.Changed(f.flag) {
			continue
		}

		value, found := os.LookupEnv(f.env)
		if !found {
			value, found = fileVars[f.env]
		}

		if !found {
			continue
		}

		if err := flags.Set(f.flag, value); err != nil {
			return fmt.Errorf("%s: %w", f.env, err)
		}
	}

	return nil
}

func configFromFlags(flags *pflag.FlagSet) (Config, error) {
	if err := applyEnv(flags); err != nil {
		return Config{}, err
	}

	var cfg Config
	var errs []error

	get := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	cfg.ResultsDir, err = flags.GetString("results-dir")
	get(err)
	cfg.MaxPages, err = flags.GetInt("max-pages")
	get(err)
	cfg.Record, err = flags.GetBool("record")
	get(err)
	cfg.DBName, err = flags.GetString("db")
	get(err)
	cfg.Monitor, err = flags.GetBool("monitor")
	get(err)
	cfg.MonitorPort, err = flags.GetInt("monitor-port")
	get(err)
	cfg.OpenBrowser, err = flags.GetBool("open-browser")
	get(err)
	cfg.EnvFile, err = flags.GetString("env-file")
	get(err)

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if cfg.OpenBrowser {
		cfg.Monitor = true
	}

	return cfg, cfg.Validate()
}

// Validate checks the ranges of the numeric settings and that a named
// database does not exist yet.
func (c Config) Validate() error {
	if c.MaxPages < 1 {
		return fmt.Errorf("%w: max pages must be at least 1, got %d",
			ErrInvalidConfig, c.MaxPages)
	}

	if c.Record && c.DBName != "" {
		if _, err := os.Stat(c.DBName + ".sqlite3"); err == nil {
			return fmt.Errorf("%w: database %s.sqlite3 already exists",
				ErrInvalidConfig, c.DBName)
		}
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		return fmt.Errorf("%w: monitor port must be between 0 and 65535, got %d",
			ErrInvalidConfig, c.MonitorPort)
	}

	return nil
}
