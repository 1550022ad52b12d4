package cli

import (
	"os"
	"path/filepath"
)

const (
	// DefaultBaseDir is the per-user configuration directory name.
	DefaultBaseDir = ".config"
	// DefaultConfigFile is the defaults filename inside the app directory.
	DefaultConfigFile = "config.yaml"
)

// Paths resolves an app's on-disk layout, rooted at ~/.config/<app>/:
// the defaults file and the cache directory.
type Paths struct {
	// AppName names the directory under ~/.config.
	AppName string

	// HomeDir is the user's home directory. Tests override it to keep
	// filesystem effects inside a temp dir.
	HomeDir string
}

// NewPaths resolves the layout for appName under the current user's home.
func NewPaths(appName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{AppName: appName, HomeDir: home}, nil
}

// AppDir returns ~/.config/<app>.
func (p *Paths) AppDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir, p.AppName)
}

// ConfigFile returns ~/.config/<app>/config.yaml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir(), DefaultConfigFile)
}

// CacheDir returns ~/.config/<app>/cache.
func (p *Paths) CacheDir() string {
	return filepath.Join(p.AppDir(), "cache")
}

// CachePath returns a path inside the cache directory.
func (p *Paths) CachePath(name string) string {
	return filepath.Join(p.CacheDir(), name)
}

// EnsureAppDir creates the app directory if it doesn't exist.
func (p *Paths) EnsureAppDir() error {
	return os.MkdirAll(p.AppDir(), 0o755)
}

// EnsureCacheDir creates the cache directory if it doesn't exist.
func (p *Paths) EnsureCacheDir() error {
	return os.MkdirAll(p.CacheDir(), 0o755)
}
