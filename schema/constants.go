package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of exported output.
	OutputMode string

	// DatabaseBackend represents the database backend for the amend journal.
	DatabaseBackend string

	// GitBackend represents the implementation used to talk to the repository.
	GitBackend string

	// AliasScope represents one backing source of the alias table.
	AliasScope string

	// Action represents a commit mutation recorded in the journal.
	Action string
)

// TrailerPrefix is the literal prefix identifying a coauthor trailer line.
const TrailerPrefix = "Co-authored-by: "

// AliasSection is the git config section holding alias entries (coauthor.<alias>).
const AliasSection = "coauthor"

// AliasFileName is the YAML alias file looked up in $HOME and the repository root.
const AliasFileName = ".git-coauthors"

// NoCoauthors is printed when a commit carries no trailers.
const NoCoauthors = "no coauthors"

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	XLSXOut    OutputMode = "xlsx"
)

// All journal backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All git backends supported.
const (
	ExecGit  GitBackend = "exec" // default
	GoGitGit GitBackend = "gogit"
)

// All alias scopes supported.
const (
	GitScope  AliasScope = "git"
	UserScope AliasScope = "user"
	RepoScope AliasScope = "repo"
)

// All journal actions.
const (
	AddAction    Action = "add"
	DeleteAction Action = "delete"
)

// DefaultAliasPrecedence lists alias scopes from lowest to highest precedence.
var DefaultAliasPrecedence = []AliasScope{GitScope, UserScope, RepoScope}

// ValidOutputModes lists all valid export modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
	XLSXOut:    {},
}

// ValidDatabaseBackends lists all valid journal backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidGitBackends lists all valid git backends.
var ValidGitBackends = map[GitBackend]struct{}{
	ExecGit:  {},
	GoGitGit: {},
}

// ValidAliasScopes lists all valid alias scopes.
var ValidAliasScopes = map[AliasScope]struct{}{
	GitScope:  {},
	UserScope: {},
	RepoScope: {},
}
