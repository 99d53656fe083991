package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvHome overrides the rxmvvm home directory.
	EnvHome = "RXMVVM_HOME"

	// EnvConfig overrides the config file path.
	EnvConfig = "RXMVVM_CONFIG"
)

// Paths contains standard filesystem paths for rxmvvm.
type Paths struct {
	// HomeDir is the rxmvvm home directory (~/.rxmvvm).
	HomeDir string

	// ConfigFile is the path to the config file (~/.rxmvvm/config.yaml).
	ConfigFile string

	// StateFile records the last version that ran (~/.rxmvvm/state.yaml).
	StateFile string

	// BackupsDir holds template cache snapshots (~/.rxmvvm/templates_backups).
	BackupsDir string
}

// DefaultPaths returns the default paths, honouring RXMVVM_HOME.
func DefaultPaths() (*Paths, error) {
	home := os.Getenv(EnvHome)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".rxmvvm")
	} else {
		var err error
		if home, err = ExpandPath(home); err != nil {
			return nil, err
		}
	}

	return &Paths{
		HomeDir:    home,
		ConfigFile: filepath.Join(home, "config.yaml"),
		StateFile:  filepath.Join(home, "state.yaml"),
		BackupsDir: filepath.Join(home, "templates_backups"),
	}, nil
}

// TemplatesDir returns the template cache directory for a version.
func (p *Paths) TemplatesDir(version string) string {
	return filepath.Join(p.HomeDir, "templates_"+version)
}

// EnsureHomeDir creates the home directory if it doesn't exist.
func (p *Paths) EnsureHomeDir() error {
	return os.MkdirAll(p.HomeDir, 0o755)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
