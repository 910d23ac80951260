package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mrz1836/nanogen/internal/constants"
)

// Environment is the process-wide state discovery depends on, captured once.
// Probes read only this snapshot, never os.Getenv or os.UserHomeDir directly.
type Environment struct {
	// ProjectRoot is the firmware project root; probes run here.
	ProjectRoot string

	// HomeDir is the invoking user's home directory.
	HomeDir string

	// Path is the PATH list used to find executables.
	Path string

	// PackagesRoot is the package manager cache searched by the glob probe.
	PackagesRoot string
}

// EnvironmentFromOS snapshots the current process environment.
// An empty packagesRoot means ~/.platformio/packages; a leading "~" is expanded.
func EnvironmentFromOS(projectRoot, packagesRoot string) Environment {
	home, _ := os.UserHomeDir()

	root, err := filepath.Abs(projectRoot)
	if err != nil {
		root = projectRoot
	}

	return Environment{
		ProjectRoot:  root,
		HomeDir:      home,
		Path:         os.Getenv("PATH"),
		PackagesRoot: packagesRootFor(packagesRoot, home),
	}
}

// packagesRootFor expands the configured cache root against home.
func packagesRootFor(configured, home string) string {
	switch {
	case configured == "" && home == "":
		return ""
	case configured == "":
		return filepath.Join(home, constants.PlatformIOPackagesDir)
	case configured == "~":
		return home
	case strings.HasPrefix(configured, "~/"):
		return filepath.Join(home, configured[2:])
	default:
		return configured
	}
}

// LookPath searches the snapshot's PATH for an executable regular file named name.
// Names containing a path separator are checked as-is, relative to the project root.
func (e Environment) LookPath(fs afero.Fs, name string) (string, bool) {
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(e.ProjectRoot, p)
		}
		return p, isExecutable(fs, p)
	}

	for _, dir := range filepath.SplitList(e.Path) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(fs, candidate) {
			return candidate, true
		}
	}
	return "", false
}

// isExecutable reports whether path is a regular file with any execute bit set.
func isExecutable(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

// isRegularFile reports whether path exists and is a regular file.
func isRegularFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
