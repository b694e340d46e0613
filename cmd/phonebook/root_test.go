package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/internal/dbconfig"
	"github.com/mesh-intelligence/phonebook/pkg/phonebook"
)

// execute runs a fresh root command with args and stdin, returning stdout,
// stderr and the error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, env := range []string{"PHONEBOOK_SECTION", "PHONEBOOK_DEBUG", "PHONEBOOK_LOG_FILE", "PHONEBOOK_SETTINGS", "PHONEBOOK_CONFIG_DIR"} {
		if _, set := os.LookupEnv(env); !set {
			t.Setenv(env, "")
		}
	}

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content to name under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sqliteSettings = `[postgresql]
driver = sqlite
database = pb.db

[other]
driver = sqlite
database = other.db
`

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "phonebook "+phonebook.Version+"\n", out)
}

func TestRunConsole(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "database.ini", sqliteSettings)

	out, _, err := execute(t, "1\njane doe\n555-1234\njane@x.com\n2\n7\n\n",
		"--config-dir", filepath.Join(dir, "cfg"), "--settings", settings)
	require.NoError(t, err)

	assert.Contains(t, out, "Welcome to ROLA Phonebook Storage Center")
	assert.Contains(t, out, "Contact added successfully.")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Connection closed.")

	_, err = os.Stat(filepath.Join(dir, "pb.db"))
	assert.NoError(t, err, "relative database path resolves next to the settings file")
}

func TestRunConsole_SectionPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		configYAML string
		env        string
		args       []string
		wantDB     string
	}{
		{name: "default section", wantDB: "pb.db"},
		{name: "config.yaml section", configYAML: "section: other\n", wantDB: "other.db"},
		{name: "env beats config.yaml", configYAML: "section: other\n", env: "postgresql", wantDB: "pb.db"},
		{name: "flag beats env", env: "postgresql", args: []string{"--section", "other"}, wantDB: "other.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			settings := writeFile(t, dir, "database.ini", sqliteSettings)
			cfgDir := filepath.Join(dir, "cfg")
			if tt.configYAML != "" {
				writeFile(t, cfgDir, "config.yaml", tt.configYAML)
			}
			if tt.env != "" {
				t.Setenv("PHONEBOOK_SECTION", tt.env)
			}

			args := append([]string{"--config-dir", cfgDir, "--settings", settings}, tt.args...)
			_, _, err := execute(t, "7\n\n", args...)
			require.NoError(t, err)

			_, err = os.Stat(filepath.Join(dir, tt.wantDB))
			assert.NoError(t, err)
		})
	}
}

func TestRunConsole_SettingsFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	fromConfig := writeFile(t, filepath.Join(dir, "config"), "database.ini", sqliteSettings)
	fromEnv := writeFile(t, filepath.Join(dir, "env"), "database.ini", sqliteSettings)
	cfgDir := filepath.Join(dir, "cfg")
	writeFile(t, cfgDir, "config.yaml", "settings_file: "+fromConfig+"\n")
	t.Setenv("PHONEBOOK_SETTINGS", fromEnv)

	_, _, err := execute(t, "7\n\n", "--config-dir", cfgDir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(filepath.Dir(fromEnv), "pb.db"))
	assert.NoError(t, err, "env settings file beats config.yaml")
	_, err = os.Stat(filepath.Join(filepath.Dir(fromConfig), "pb.db"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunConsole_StartupErrors(t *testing.T) {
	t.Run("missing section", func(t *testing.T) {
		dir := t.TempDir()
		settings := writeFile(t, dir, "database.ini", "[mysql]\nhost = x\n")

		_, _, err := execute(t, "", "--config-dir", dir, "--settings", settings)
		require.Error(t, err)
		assert.ErrorIs(t, err, dbconfig.ErrSectionNotFound)
		assert.Equal(t, exitSysError, exitCode(err))
	})

	t.Run("missing settings file", func(t *testing.T) {
		dir := t.TempDir()

		_, _, err := execute(t, "", "--config-dir", dir, "--settings", filepath.Join(dir, "none.ini"))
		require.Error(t, err)
		assert.Equal(t, exitSysError, exitCode(err))
	})

	t.Run("unknown driver", func(t *testing.T) {
		dir := t.TempDir()
		settings := writeFile(t, dir, "database.ini", "[postgresql]\ndriver = oracle\n")

		_, _, err := execute(t, "", "--config-dir", dir, "--settings", settings)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connect to database")
		assert.Equal(t, exitSysError, exitCode(err))
	})

	t.Run("bad config.yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "config.yaml", "section: [unclosed\n")

		_, _, err := execute(t, "", "--config-dir", dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load config")
	})
}

func TestRunConsole_DebugLogging(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "database.ini", sqliteSettings)

	_, stderr, err := execute(t, "7\n\n", "--config-dir", dir, "--settings", settings, "--debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "starting console")
	assert.Contains(t, stderr, "session")
}

func TestRunConsole_LogFile(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "database.ini", sqliteSettings)
	logFile := filepath.Join(dir, "phonebook.log")

	_, stderr, err := execute(t, "7\n\n",
		"--config-dir", dir, "--settings", settings, "--debug", "--log-file", logFile)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "starting console")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "cfg")
	settings := filepath.Join(dir, "database.ini")

	out, _, err := execute(t, "", "init", "--config-dir", cfgDir, "--settings", settings)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+filepath.Join(cfgDir, "config.yaml"))
	assert.Contains(t, out, "Wrote "+settings)
	assert.Contains(t, out, "Phonebook initialized successfully")

	cfg, err := dbconfig.LoadConfig(settings, dbconfig.DefaultSection)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Driver)

	_, err = os.Stat(filepath.Join(dir, "phonebook.db"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfgDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "settings_file: "+settings)
	assert.Contains(t, string(data), "section: postgresql")

	t.Run("second run leaves files alone", func(t *testing.T) {
		out, _, err := execute(t, "", "init", "--config-dir", cfgDir, "--settings", settings)
		require.NoError(t, err)
		assert.NotContains(t, out, "Wrote")
		assert.Contains(t, out, "Phonebook initialized successfully")
	})

	t.Run("config.yaml settings_file is used without the flag", func(t *testing.T) {
		out, _, err := execute(t, "7\n\n", "--config-dir", cfgDir)
		require.NoError(t, err)
		assert.Contains(t, out, "Exiting the phonebook app...")
	})
}

func TestRun_ExitCodes(t *testing.T) {
	assert.Equal(t, exitUserError, run([]string{"--no-such-flag"}))
	assert.Equal(t, exitUserError, run([]string{"unexpected-arg"}))
	assert.Equal(t, exitSuccess, run([]string{"version"}))
}
