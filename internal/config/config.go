package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Contacts/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Contacts"
	AppID             = "com.github.tartampluch.go-contacts"
	KeyringService    = "com.github.tartampluch.go-contacts"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CLIDescription   = "Desktop address book with search, favorites and vCard import/export."
	FlagDescVersion  = "Show application version and exit."
	FlagDescDebug    = "Enable debug logging to stdout."
	FlagDescReset    = "Discard saved contacts and restore the bundled defaults."
	FormatVersionOut = "%s version %s (%s/%s)"
)

// -----------------------------------------------------------------------------
// Persisted State Keys
// -----------------------------------------------------------------------------

// The two keys below form the persisted contract of the contact store.
// Their names and value formats must not change between releases.
const (
	KeyContacts = "contacts"
	KeyDarkMode = "darkMode"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 760
	MainWindowHeight    = 560
	SettingsWindowWidth = 560
	FormDialogWidth     = 420

	// Preference Keys
	PrefCardDAVURL = "carddav_url"
	PrefUsername   = "username"
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefSourceMode = "source_mode"
	PrefLocalPath  = "local_path"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Contact List Presentation
// -----------------------------------------------------------------------------

const (
	// GroupOther labels the bucket for names not starting with A-Z.
	GroupOther = "#"

	FavoriteOn  = "★"
	FavoriteOff = "☆"

	// AvatarPaletteSize is the number of avatar colours names are spread over.
	AvatarPaletteSize = 10

	ListPlaceholder = "Contact"
	LogMsgOpenWin   = "Opening main window"
	LogMsgViewBuilt = "Contact view rebuilt"
	LogMsgFormOpen  = "Opening contact form"
	LogMsgFormError = "Contact form rejected"
	LogMsgSetOpen   = "Opening settings window"
	LogMsgSetFocus  = "Settings window already open, requesting focus"

	// AvatarSize is the side of the initials badge, in device-independent pixels.
	AvatarSize = 36
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeySearchHint     = "search_placeholder"
	TKeyBtnAdd         = "btn_add"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnImport      = "btn_import"
	TKeyBtnImportFile  = "btn_import_file"
	TKeyBtnExport      = "btn_export"
	TKeyBtnSettings    = "btn_settings"
	TKeyBtnBrowse      = "btn_browse"
	TKeyBtnDarkMode    = "btn_dark_mode"
	TKeyBtnLightMode   = "btn_light_mode"
	TKeyCountContacts  = "count_contacts" // Requires Count, plural
	TKeyEmptyTitle     = "empty_title"
	TKeyEmptyHint      = "empty_hint"
	TKeyNoMatches      = "no_matches"
	TKeyDlgAddTitle    = "dlg_add_title"
	TKeyDlgAddSubtitle = "dlg_add_subtitle"
	TKeyDlgEditTitle   = "dlg_edit_title"
	TKeyDlgDelTitle    = "dlg_delete_title"
	TKeyDlgDelMsg      = "dlg_delete_message" // Requires Name
	TKeyLblName        = "lbl_name"
	TKeyLblEmail       = "lbl_email"
	TKeyLblPhone       = "lbl_phone"
	TKeyLblFavorite    = "lbl_favorite"
	TKeyHintName       = "hint_name"
	TKeyHintEmail      = "hint_email"
	TKeyHintPhone      = "hint_phone"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblSource      = "lbl_source"
	TKeyModeCardDAV    = "mode_carddav"
	TKeyModeLocal      = "mode_local"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_carddav_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblFooter      = "lbl_footer"
	TKeyImportResult   = "import_result" // Requires Added, Skipped
	TKeyImportFailed   = "import_failed"
	TKeyExportDone     = "export_done" // Requires Count
	TKeyMenuSource     = "menu_import_source"

	// Validation Errors (UI)
	TKeyErrNameReq     = "err_name_required"
	TKeyErrEmailReq    = "err_email_required"
	TKeyErrEmailFormat = "err_email_format"
	TKeyErrPhoneReq    = "err_phone_required"
	TKeyErrPhoneFormat = "err_phone_format"
	TKeyErrPortReq     = "err_port_required"
	TKeyErrPortNum     = "err_port_number"
	TKeyErrPortRange   = "err_port_range"
)

// -----------------------------------------------------------------------------
// Contact Fields & Validation
// -----------------------------------------------------------------------------

const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"

	// Canonical validation messages. The UI translates them through
	// ValidationMessageKeys.
	MsgNameRequired  = "Name is required"
	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Invalid email format"
	MsgPhoneRequired = "Phone number is required"
	MsgPhoneInvalid  = "Phone format should be: +91 XXXXX XXXXX"

	// Go's \s is ASCII only; \v, \p{Z} and U+FEFF complete the whitespace set.
	PatternEmail = `^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`
	PatternPhone = `^\+91 [0-9]{5} [0-9]{5}$`

	// Phone normalization for imported numbers.
	PhoneCountryCode   = "91"
	PhoneNationalLen   = 10
	FormatPhoneDisplay = "+%s %s %s"
)

// ValidationMessageKeys maps canonical validation messages to translation keys.
var ValidationMessageKeys = map[string]string{
	MsgNameRequired:  TKeyErrNameReq,
	MsgEmailRequired: TKeyErrEmailReq,
	MsgEmailInvalid:  TKeyErrEmailFormat,
	MsgPhoneRequired: TKeyErrPhoneReq,
	MsgPhoneInvalid:  TKeyErrPhoneFormat,
}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"
	DefaultPort     = "18081"
	DefaultLanguage = "en"
	FallbackName    = "Unknown"
	BoolTrue        = "true"
	BoolFalse       = "false"
)

// -----------------------------------------------------------------------------
// Standards: vCard
// -----------------------------------------------------------------------------

const (
	VCardVersion     = "4.0"
	VCardFavoriteTag = "favorite"
	VCardListSep     = ","
	ExportFileName   = "contacts.vcf"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
	MinPort             = 1
	MaxPort             = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAccept          = "Accept"

	MimeTextVCard       = "text/vcard; charset=utf-8"
	AcceptVCard         = "text/vcard, text/x-vcard"
	MediaVCard          = "text/vcard"
	MediaXVCard         = "text/x-vcard"
	MediaDirectory      = "text/directory"
	MediaHTML           = "text/html"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrContactNotFound = "contact not found"
	ErrValidation      = "contact validation failed"
	ErrContactsDecode  = "persisted contacts are malformed"
	ErrContactsEncode  = "failed to serialize contacts"
	ErrDefaultsLoad    = "failed to load bundled contacts"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrExportFailed    = "contact export failed"
	ErrKeyringWrite    = "failed to save credentials to keyring"
	ErrImportFailed    = "contact import failed"
	ErrRequestBuild    = "failed to create request"
	ErrNetwork         = "network error during fetch"
	ErrHTTPStatus      = "server returned unexpected status"
	ErrNotVCard        = "response is not a vCard document"
	ErrTooLarge        = "vCard response exceeds size limit"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Contacts feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackCount = "%d contacts"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgStoreLoaded    = "Contacts loaded"
	MsgStoreDefaults  = "Using bundled contacts"
	MsgStoreSaved     = "Contacts saved"
	MsgStoreReset     = "Contacts reset to bundled defaults"
	MsgContactAdded   = "Contact added"
	MsgContactUpdated = "Contact updated"
	MsgContactDeleted = "Contact deleted"
	MsgFavToggled     = "Favorite toggled"
	MsgThemeChanged   = "Theme changed"
	MsgImportStarted  = "Import started"
	MsgImportDone     = "Import finished"
	MsgImportSkipped  = "Skipping imported contact"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgExportDone     = "Export finished"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgFeedUpdated    = "Contacts feed updated"
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchBody      = "vCards downloading"
	MsgFetchMime      = "Unexpected content type for vCard feed"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSavingSettings = "Saving preferences"

	PlaceholderURL   = "https://..."
	PlaceholderPhone = "+91 XXXXX XXXXX"
	PlaceholderEmail = "name@example.com"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyID        = "id"
	LogKeyName      = "name"
	LogKeyReason    = "reason"
	LogKeyFavorite  = "is_favorite"
	LogKeyDarkMode  = "dark_mode"
	LogKeyCount     = "count"
	LogKeyGroups    = "groups"
	LogKeyAdded     = "added"
	LogKeySkipped   = "skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyTerm      = "search_term"
	LogKeyDuration  = "duration_ms"
	LogKeyMime      = "content_type"
	LogKeyLength    = "content_length"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompStore    = "store"
	CompImporter = "importer"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
