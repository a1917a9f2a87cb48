// Package secrets supplies opaque credentials the engine does not own,
// currently the Apple Music developer token.
package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Provider is an opaque async lookup for the Apple Music developer token.
type Provider interface {
	DeveloperToken(ctx context.Context) (string, error)
}

// Static is a fixed in-memory token, used in tests and for short-lived tokens
// passed on the command line.
type Static string

func (s Static) DeveloperToken(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty developer token")
	}
	return string(s), nil
}

// FileProvider reads the developer token from a file on first use and caches
// it for the life of the process. A leading "~/" expands to the home directory.
type FileProvider struct {
	Path string

	once  sync.Once
	token string
	err   error
}

// NewFileProvider creates a FileProvider for the given path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

func (f *FileProvider) DeveloperToken(context.Context) (string, error) {
	f.once.Do(func() {
		path := f.Path
		if strings.HasPrefix(path, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				f.err = fmt.Errorf("failed to resolve home directory: %w", err)
				return
			}
			path = filepath.Join(home, path[2:])
		}

		data, err := os.ReadFile(path)
		if err != nil {
			f.err = fmt.Errorf("failed to read developer token: %w", err)
			return
		}
		f.token = strings.TrimSpace(string(data))
		if f.token == "" {
			f.err = fmt.Errorf("developer token file %s is empty", path)
		}
	})
	return f.token, f.err
}

// EnvProvider reads the developer token from an environment variable.
type EnvProvider struct {
	Key string
}

func (e EnvProvider) DeveloperToken(context.Context) (string, error) {
	token := strings.TrimSpace(os.Getenv(e.Key))
	if token == "" {
		return "", fmt.Errorf("environment variable %s is not set", e.Key)
	}
	return token, nil
}
