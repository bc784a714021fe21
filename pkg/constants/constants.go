// Package constants provides shared constants used throughout retroshelf.
// This includes timeouts, file permissions, store defaults and the
// user-facing texts shared by the HTML form, the API and the CLI.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for requests to a remote store.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations.
	DefaultTimeout = 10 * time.Second

	// BoltOpenTimeout bounds how long opening a bolt file waits for its lock.
	BoltOpenTimeout = 1 * time.Second

	// SQLiteBusyTimeout is passed to SQLite as busy_timeout, in milliseconds.
	SQLiteBusyTimeout = 5000

	// ShutdownTimeout is how long the HTTP server waits for in-flight requests.
	ShutdownTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for database files and secrets (rw-------)
	SecureFilePermissions = 0600
)

// Store defaults
const (
	// DefaultCollection is the store collection holding the catalog records.
	DefaultCollection = "items"

	// DefaultStoreBackend is used when no backend is configured.
	DefaultStoreBackend = "memory"

	// DefaultBoltFile is the bolt database file name inside the data directory.
	DefaultBoltFile = "retroshelf.bolt"

	// DefaultSQLiteFile is the SQLite database file name inside the data directory.
	DefaultSQLiteFile = "retroshelf.db"

	// DefaultDataDir is the default directory for local store files.
	DefaultDataDir = "~/.retroshelf"

	// ChannelBufferSize is the default buffer size for event channels.
	ChannelBufferSize = 256
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached list responses.
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries.
	CacheCleanupInterval = 10 * time.Minute
)

// Presentation constants shared by the renderer and the CLI.
const (
	// PlaceholderCover is shown when a record has no image.
	PlaceholderCover = "https://via.placeholder.com/600x400?text=Capa+do+Jogo"

	// PlaceholderUnavailable replaces an image that failed to load.
	PlaceholderUnavailable = "https://via.placeholder.com/600x400?text=Capa+indispon%C3%ADvel"
)

// Feedback messages
const (
	MsgRequiredFields = "Preencha os campos obrigatórios (*)."
	MsgInvalidYear    = "Informe um ano numérico."
	MsgSaving         = "Salvando..."
	MsgCreated        = "Jogo adicionado com sucesso!"
	MsgUpdated        = "Jogo atualizado com sucesso!"
	MsgSaveFailed     = "Erro ao salvar: "
	MsgDeleteFailed   = "Erro ao remover: "
	MsgLoadFailed     = "Falha ao carregar itens. Verifique sua configuração do banco e a conexão."
	MsgEmpty          = "Nenhum jogo encontrado."
	MsgLoading        = "Carregando..."
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
