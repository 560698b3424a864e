package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver finds data files relative to the places a wordtrie binary is
// usually run from: the working directory, the executable's directory and the
// config directory.
type PathResolver struct {
	executablePath string
	executableDir  string
	configDir      string
}

// NewPathResolver creates a resolver for the running executable. configDir may
// be empty.
func NewPathResolver(configDir string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// symlinked installs should resolve next to the real binary
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		configDir:      configDir,
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, configDir)
	return pr, nil
}

// candidates lists where a relative path may live, in order of preference.
func (pr *PathResolver) candidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}

	var out []string
	if cwd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(cwd, path))
	}
	out = append(out,
		filepath.Join(pr.executableDir, path),
		filepath.Join(filepath.Dir(pr.executableDir), path), // parent/data
	)
	if pr.configDir != "" {
		out = append(out, filepath.Join(pr.configDir, path))
	}
	return out
}

// Resolve returns the first existing location of path and true. If none
// exists it returns the working-directory location and false, which is where
// a new file should be written.
func (pr *PathResolver) Resolve(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	all := pr.candidates(path)
	for _, c := range all {
		if FileExists(c) {
			log.Debugf("Resolved %s to %s", path, c)
			return c, true
		}
		log.Debugf("Candidate not found: %s", c)
	}
	return all[0], false
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}

// GetRuntimeInfo returns debug information about the current runtime environment
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	return map[string]string{
		"executable_path": pr.executablePath,
		"executable_dir":  pr.executableDir,
		"current_dir":     cwd,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
}
