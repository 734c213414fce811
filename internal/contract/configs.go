package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/coauthor/schema"
)

// Default values for configuration.
const (
	DefaultJournalLimit = 20
	DefaultRepoPath     = "."
)

// DefaultAliasPrecedence is the raw form of schema.DefaultAliasPrecedence.
const DefaultAliasPrecedence = "git,user,repo"

// Config holds the runtime configuration for a coauthor invocation.
// This struct is the "final, validated" config.
type Config struct {
	RepoPath string

	GitBackend      schema.GitBackend
	AliasPrecedence []schema.AliasScope

	// UserAliasFile and RepoAliasFile are the YAML alias files for the user and repo scopes.
	UserAliasFile string
	RepoAliasFile string

	JournalBackend   schema.DatabaseBackend
	JournalDBConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string

	UseColors bool
	Verbose   bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Repo             string `mapstructure:"repo"`
	GitBackend       string `mapstructure:"git-backend"`
	AliasPrecedence  string `mapstructure:"alias-precedence"`
	JournalBackend   string `mapstructure:"journal-backend"`
	JournalDBConnect string `mapstructure:"journal-db-connect"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Color            string `mapstructure:"color"`
	Verbose          bool   `mapstructure:"verbose"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.AliasPrecedence = slices.Clone(c.AliasPrecedence)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateJournalBackend(cfg, input); err != nil {
		return err
	}
	precedence, err := ParseAliasPrecedence(input.AliasPrecedence)
	if err != nil {
		return err
	}
	cfg.AliasPrecedence = precedence
	return resolveRepoPath(ctx, cfg, client, input)
}

// ProcessJournalOnly validates only the journal settings. It is used by
// commands that do not need a repository.
func ProcessJournalOnly(cfg *Config, input *ConfigRawInput) error {
	cfg.Verbose = input.Verbose
	if err := validateOutput(cfg, input); err != nil {
		return err
	}
	return validateJournalBackend(cfg, input)
}

// validateOutput processes the output mode, destination and colors.
func validateOutput(cfg *Config, input *ConfigRawInput) error {
	color := input.Color
	if color == "" {
		color = "yes"
	}
	useColors, err := ParseBoolString(color)
	if err != nil {
		return fmt.Errorf("%w: color: %w", ErrInvalidConfiguration, err)
	}
	cfg.UseColors = useColors

	mode := input.Output
	if mode == "" {
		mode = string(schema.TextOut)
	}
	cfg.Output = schema.OutputMode(strings.ToLower(mode))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("%w: invalid output '%s'. must be text, csv, json, parquet or xlsx", ErrInvalidConfiguration, input.Output)
	}
	cfg.OutputFile = input.OutputFile
	return nil
}

// validateSimpleInputs processes and validates fields that need no I/O.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Verbose = input.Verbose

	backend := input.GitBackend
	if backend == "" {
		backend = string(schema.ExecGit)
	}
	cfg.GitBackend = schema.GitBackend(strings.ToLower(backend))
	if _, ok := schema.ValidGitBackends[cfg.GitBackend]; !ok {
		return fmt.Errorf("%w: invalid git backend '%s'. must be exec or gogit", ErrInvalidConfiguration, input.GitBackend)
	}

	if err := validateOutput(cfg, input); err != nil {
		return err
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.UserAliasFile = filepath.Join(home, schema.AliasFileName)
	}
	return nil
}

// validateJournalBackend validates the journal backend configuration.
func validateJournalBackend(cfg *Config, input *ConfigRawInput) error {
	backend := input.JournalBackend
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.JournalBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.JournalBackend]; !ok {
		return fmt.Errorf("%w: invalid journal backend '%s'. must be sqlite, mysql, postgresql, none", ErrInvalidConfiguration, input.JournalBackend)
	}
	cfg.JournalDBConnect = input.JournalDBConnect
	return ValidateDatabaseConnectionString(cfg.JournalBackend, cfg.JournalDBConnect)
}

// ParseAliasPrecedence parses a comma-separated scope list, lowest precedence
// first. An empty string yields the default order.
func ParseAliasPrecedence(raw string) ([]schema.AliasScope, error) {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultAliasPrecedence
	}
	var scopes []schema.AliasScope
	for part := range strings.SplitSeq(raw, ",") {
		scope := schema.AliasScope(strings.ToLower(strings.TrimSpace(part)))
		if _, ok := schema.ValidAliasScopes[scope]; !ok {
			return nil, fmt.Errorf("%w: invalid alias scope '%s'. must be git, user or repo", ErrInvalidConfiguration, part)
		}
		if slices.Contains(scopes, scope) {
			return nil, fmt.Errorf("%w: alias scope '%s' listed more than once", ErrInvalidConfiguration, scope)
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("journal-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("journal-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// resolveRepoPath turns the user supplied path into the repository root.
func resolveRepoPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.Repo
	if searchPath == "" {
		searchPath = DefaultRepoPath
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	gitRoot, err := client.RepoRoot(ctx, filepath.Clean(absSearchPath))
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot
	cfg.RepoAliasFile = filepath.Join(gitRoot, schema.AliasFileName)
	return nil
}
