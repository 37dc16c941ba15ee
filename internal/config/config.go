package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Dataset DatasetConfig `mapstructure:"dataset" validate:"required"`
	Exam    ExamConfig    `mapstructure:"exam" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Export  ExportConfig  `mapstructure:"export" validate:"required"`
	PDF     PDFConfig     `mapstructure:"pdf"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Dataset source kinds.
const (
	SourceCSV    = "csv"
	SourceSheets = "sheets"
	SourceSQL    = "sql"
)

// DatasetConfig selects where vocabulary rows are read from.
// CacheSeconds bounds how long a loaded dataset is reused; zero keeps it for
// the life of the process.
type DatasetConfig struct {
	Source       string       `mapstructure:"source" validate:"required,oneof=csv sheets sql"`
	CSVPath      string       `mapstructure:"csv_path" validate:"required_if=Source csv"`
	Sheets       SheetsConfig `mapstructure:"sheets"`
	SQL          SQLConfig    `mapstructure:"sql"`
	CacheSeconds int          `mapstructure:"cache_seconds" validate:"gte=0"`
}

// SheetsConfig configures the Google Sheets dataset source.
type SheetsConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Range           string `mapstructure:"range"`
}

// SQLConfig configures the database-backed dataset source.
type SQLConfig struct {
	Driver string `mapstructure:"driver" validate:"omitempty,oneof=postgres sqlite"`
	URL    string `mapstructure:"url"`
}

// ExamConfig holds exam generation settings.
type ExamConfig struct {
	FallbackSpan    int    `mapstructure:"fallback_span" validate:"required,gt=0"`
	MessageMaxChars int    `mapstructure:"message_max_chars" validate:"required,gt=0"`
	DefaultMessage  string `mapstructure:"default_message"`
	ShowDayCounts   bool   `mapstructure:"show_day_counts"`
}

// SessionConfig holds editing session settings.
type SessionConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes" validate:"required,gt=0"`
}

// ExportConfig throttles PDF export per client.
type ExportConfig struct {
	RatePerSecond float64 `mapstructure:"rate_per_second" validate:"gt=0"`
	Burst         int     `mapstructure:"burst" validate:"gt=0"`
}

// PDFConfig points at TrueType fonts used for Korean text. Without
// RegularFont, PDF rendering refuses to start unless AllowCoreFont opts into
// the core Helvetica font, which cannot render Hangul.
type PDFConfig struct {
	RegularFont   string `mapstructure:"regular_font"`
	BoldFont      string `mapstructure:"bold_font"`
	AllowCoreFont bool   `mapstructure:"allow_core_font"`
}
