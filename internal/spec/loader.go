package spec

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/invopop/yaml"
	"go.uber.org/zap"

	"github.com/mcpswag/mcpswag/internal/config"
	"github.com/mcpswag/mcpswag/pkg/util"
)

// Loader fetches and decodes Swagger/OpenAPI documents from a local path or a
// remote URL. It performs no schema validation; see Validator for the optional
// structural pass.
type Loader struct {
	logger        *zap.Logger
	clientTimeout time.Duration
}

// NewLoader creates a new spec loader. The HTTP timeout is taken from the
// client.timeout configuration key.
func NewLoader(logger *zap.Logger) *Loader {
	timeout := time.Duration(config.GetInt("client.timeout")) * time.Second
	return &Loader{
		logger:        logger,
		clientTimeout: timeout,
	}
}

// Load fetches the spec at source and decodes it into a Document. Source is
// treated as a URL when its scheme is http or https, and as a local file path
// otherwise.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	if isURL(source) {
		return l.loadFromURL(ctx, source)
	}
	return l.loadFromFile(source)
}

func isURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func (l *Loader) loadFromURL(ctx context.Context, specURL string) (*Document, error) {
	l.logger.Info("Fetching specification", zap.String("url", specURL))

	client := util.NewHTTPClient(l.clientTimeout)
	body, contentType, err := client.Get(ctx, specURL)
	if err != nil {
		return nil, &ParseError{Source: specURL, Msg: "failed to fetch spec from URL", Err: err}
	}

	useYAML := strings.Contains(contentType, "yaml") ||
		strings.HasSuffix(specURL, ".yaml") || strings.HasSuffix(specURL, ".yml")

	return l.decode(body, specURL, useYAML)
}

func (l *Loader) loadFromFile(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &ParseError{Source: path, Msg: "failed to read spec file", Err: err}
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Source: path, Msg: "failed to read spec file", Err: err}
	}

	useYAML := strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
	return l.decode(body, path, useYAML)
}

func (l *Loader) decode(body []byte, source string, useYAML bool) (*Document, error) {
	var root map[string]interface{}
	if useYAML {
		// invopop/yaml decodes through a JSON round-trip, so the resulting
		// tree has string keys and JSON scalar types like a decoded JSON doc.
		if err := yaml.Unmarshal(body, &root); err != nil {
			return nil, &ParseError{Source: source, Msg: "invalid YAML in spec", Err: err}
		}
	} else {
		if err := json.Unmarshal(body, &root); err != nil {
			return nil, &ParseError{Source: source, Msg: "invalid JSON in spec", Err: err}
		}
	}
	if root == nil {
		return nil, &ParseError{Source: source, Msg: "spec document is not an object"}
	}

	doc := NewDocument(root, source)
	l.logger.Info("Loaded specification",
		zap.String("source", source),
		zap.String("dialect", doc.Dialect().String()),
		zap.Int("paths", len(doc.RawPaths())))

	return doc, nil
}
