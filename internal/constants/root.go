package constants

const (
	AppName            = "habitlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitlog/habitlog.db"
	DefaultAddr        = "127.0.0.1:8080"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// BlockSize is the number of reports in one weekly evaluation window
	BlockSize = 7

	// Habit field limits
	MinFrequency     = 1
	MaxFrequency     = 7
	MaxTitleLength   = 100
	MaxPurposeLength = 150
	MaxCommentLength = 100

	// BackfillComment is attached to every report synthesized for a skipped day
	BackfillComment = "Forgot to report!"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitlog-"
	BackupFileSuffix = ".db"

	// OwnerHeader carries the authenticated owner set by the fronting proxy
	OwnerHeader = "X-Habitlog-Owner"
)

// Environment variables
const (
	EnvConfig       = "HABITLOG_CONFIG"
	EnvOwner        = "HABITLOG_OWNER"
	EnvTimezone     = "HABITLOG_TIMEZONE"
	EnvDebug        = "HABITLOG_DEBUG"
	EnvAddr         = "HABITLOG_ADDR"
	EnvDBConnection = "HABITLOG_DB_CONNECTION"
)
