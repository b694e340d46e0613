// Root command for the phonebook CLI.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/mesh-intelligence/phonebook/internal/console"
	"github.com/mesh-intelligence/phonebook/internal/dbconfig"
	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/pkg/phonebook"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// rootFlags holds the values of flags that bypass viper.
type rootFlags struct {
	configDir string
	settings  string
}

// newRootCmd creates the top-level "phonebook" command with global flags
// and all subcommands registered. Running it without a subcommand starts
// the interactive menu.
func newRootCmd() *cobra.Command {
	var flags rootFlags
	v := viper.New()

	root := &cobra.Command{
		Use:   "phonebook",
		Short: "Manage contacts from the terminal",
		Long: `Phonebook is an interactive contact manager. It reads database connection
parameters from a section of an INI settings file, creates the contacts
table if needed and shows a menu to add, list, search, view, update and
delete contacts.`,
		Version:       phonebook.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, v, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config-dir", "", "configuration directory holding config.yaml (default: platform config dir)")
	pf.StringVar(&flags.settings, "settings", "", "INI settings file (default: ./"+paths.DefaultSettingsFile+")")
	pf.String(cfgKeySection, dbconfig.DefaultSection, "settings file section with the connection parameters")
	pf.Bool(cfgKeyDebug, false, "log at debug level")
	pf.String(flagLogFile, "", "write logs to this file instead of stderr")
	bindConfig(v, pf)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(v, &flags))

	return root
}

// runConsole loads configuration, attaches the store and runs the menu.
// The store is detached on every return path.
func runConsole(cmd *cobra.Command, v *viper.Viper, flags rootFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return startupError("resolve config dir", err)
	}
	if err := loadConfig(v, configDir); err != nil {
		return startupError("load config", err)
	}

	logger, closeLog, err := newLogger(v.GetBool(cfgKeyDebug), v.GetString(cfgKeyLogFile), cmd.ErrOrStderr())
	if err != nil {
		return startupError("create logger", err)
	}
	defer closeLog()

	settingsPath, err := paths.ResolveSettingsFile(flags.settings, v.GetString(cfgKeySettingsFile))
	if err != nil {
		return startupError("resolve settings file", err)
	}
	section := v.GetString(cfgKeySection)

	cfg, err := dbconfig.LoadConfig(settingsPath, section)
	if err != nil {
		logger.Error("configuration error", zap.String("file", settingsPath), zap.Error(err))
		return startupError("load settings", err)
	}
	if cfg.Driver == types.DriverSQLite {
		resolveSQLitePath(&cfg, settingsPath)
	}

	backend := phonebook.NewStore(logger)
	if err := backend.Attach(cfg); err != nil {
		return startupError("connect to database", err)
	}
	defer backend.Detach()

	logger.Debug("starting console",
		zap.String("settings", settingsPath),
		zap.String("section", section),
		zap.String("driver", cfg.Driver))

	out := cmd.OutOrStdout()
	con := console.New(backend, cmd.InOrStdin(), out,
		console.WithLogger(logger),
		console.WithCloser(backend.Detach),
		console.WithColor(isTerminal(out)),
	)
	return con.Run()
}

// resolveSQLitePath makes a relative SQLite database path relative to the
// settings file rather than the working directory.
func resolveSQLitePath(cfg *types.Config, settingsPath string) {
	db := cfg.Param("database", cfg.Param("dbname", "phonebook.db"))
	delete(cfg.Params, "dbname")
	cfg.Params["database"] = paths.RelativeTo(settingsPath, db)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
