package generator

// Options carries the user-supplied generation settings. They flow unchanged
// into the assembled context; the interpreter core never mutates them.
type Options struct {
	// ServerName is sanitized into a valid package name before use.
	ServerName string
	// Transport is the MCP transport of the generated server, stdio or sse.
	Transport string
	// BaseURL overrides the spec's first declared server URL.
	BaseURL string
	// Validate enables the structural validation pass after loading.
	Validate bool
	// Verbose enables per-file progress output.
	Verbose bool

	// APIKeyEnv names the environment variable the generated server reads its
	// API key from. APIKeyHeader and APIKeyPrefix shape the resulting header.
	APIKeyEnv    string
	APIKeyHeader string
	APIKeyPrefix string
	// ExtraHeaders are additional static headers sent with every request.
	ExtraHeaders map[string]string

	// Tags and PathFilters select operations to include. MaxOperations caps
	// the operation count; zero means unlimited.
	Tags          []string
	PathFilters   []string
	MaxOperations int

	// Force overwrites a non-empty output directory.
	Force bool
}

// DefaultOptions returns options with the documented defaults applied.
func DefaultOptions() Options {
	return Options{
		ServerName:   "mcp_server",
		Transport:    "stdio",
		Validate:     true,
		APIKeyHeader: "Authorization",
		APIKeyPrefix: "Bearer",
	}
}
