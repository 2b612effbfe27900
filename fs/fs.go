// Package fs provides file-based storage for check results, wordlists and
// configuration.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/vanity"
)

// jsonIndent matches the indentation of files written by earlier versions
// of the tool.
const jsonIndent = "    "

// ValidPath returns the path of the available-set file for mode.
func ValidPath(outputDir string, mode vanity.Mode) string {
	return filepath.Join(outputDir, fmt.Sprintf("valid_%s.json", mode))
}

// InvalidPath returns the path of the unavailable-map file for mode.
func InvalidPath(outputDir string, mode vanity.Mode) string {
	return filepath.Join(outputDir, fmt.Sprintf("invalid_%s.json", mode))
}

// SkipListPath returns the path of the skip list for mode.
func SkipListPath(configDir string, mode vanity.Mode) string {
	return filepath.Join(configDir, fmt.Sprintf("skiplist_%s.json", mode))
}

// ConfigPath returns the path of the configuration file.
func ConfigPath(configDir string) string {
	return filepath.Join(configDir, "config.json")
}

// readJSON decodes the file at path into v. The bool result is false if
// the file does not exist, in which case v is left untouched.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return true, vanity.Errorf(vanity.EINVALID, "malformed JSON in %s: %v", path, err)
	}
	return true, nil
}

// writeJSON writes v to path atomically. The data is written to a temporary
// file in the same directory which is then renamed over path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", jsonIndent)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
