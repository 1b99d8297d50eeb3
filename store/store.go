// ABOUTME: File-backed record store for CRM entities
// ABOUTME: One pretty-printed JSON file per record under .forkyou/<collection>/
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/harperreed/forkyou/models"
)

// RootDirName is the marker directory that holds all CRM data. It lives
// at the top of a project and is meant to be committed to git.
const RootDirName = ".forkyou"

// Collection names a category of records, each stored as its own
// directory of JSON files.
type Collection string

const (
	Contacts   Collection = "contacts"
	Companies  Collection = "companies"
	Deals      Collection = "deals"
	Activities Collection = "activities"
	Tasks      Collection = "tasks"
)

// Collections lists every collection created by Init.
var Collections = []Collection{Contacts, Companies, Deals, Activities, Tasks}

// idAlphabet avoids lookalike characters (0/O, 1/l/I) so ids survive
// being read aloud or retyped.
const idAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"

const idLength = 8

// NewID generates a short collision-resistant record id. The id doubles
// as the record's file name.
func NewID() string {
	return gonanoid.MustGenerate(idAlphabet, idLength)
}

// FindRoot walks upward from startDir looking for a directory that
// contains the root marker. Returns "" when no project root exists.
func FindRoot(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, RootDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Root resolves the data root for this invocation: the FORKYOU_ROOT
// environment variable if set, otherwise an upward search from the
// current working directory.
func Root() (string, error) {
	if env := os.Getenv("FORKYOU_ROOT"); env != "" {
		return env, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	root := FindRoot(cwd)
	if root == "" {
		return "", fmt.Errorf("not a fork-you project (no %s found); run: fu init", RootDirName)
	}
	return root, nil
}

// Init creates the root directory, one subdirectory per collection, and
// a default config file under dir. Idempotent: if the root already
// exists it is returned unchanged.
func Init(dir string) (string, error) {
	root := filepath.Join(dir, RootDirName)
	if _, err := os.Stat(root); err == nil {
		return root, nil
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", root, err)
	}
	for _, col := range Collections {
		if err := os.MkdirAll(filepath.Join(root, string(col)), 0755); err != nil {
			return "", fmt.Errorf("creating %s directory: %w", col, err)
		}
	}
	if err := WriteConfig(root, models.DefaultConfig()); err != nil {
		return "", err
	}
	return root, nil
}

// ReadAll reads and parses every record in a collection. A missing
// collection directory yields an empty result, not an error. No
// ordering is guaranteed beyond directory listing order.
func ReadAll[T any](root string, col Collection) ([]T, error) {
	dir := filepath.Join(root, string(col))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var records []T
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("parsing %s/%s: %w", col, entry.Name(), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadOne reads a single record by id. Returns (nil, nil) when the
// record does not exist.
func ReadOne[T any](root string, col Collection, id string) (*T, error) {
	data, err := os.ReadFile(recordPath(root, col, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s/%s: %w", col, id, err)
	}
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing %s/%s: %w", col, id, err)
	}
	return &rec, nil
}

// WriteRecord serializes record as pretty-printed JSON, overwriting any
// existing file with the same id. The collection directory is created
// if missing.
func WriteRecord(root string, col Collection, id string, record any) error {
	dir := filepath.Join(root, string(col))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", col, err)
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", col, id, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(recordPath(root, col, id), data, 0644); err != nil {
		return fmt.Errorf("writing %s/%s: %w", col, id, err)
	}
	return nil
}

// DeleteRecord removes a record's file. The boolean reports whether a
// file existed to remove; a missing record is not an error.
func DeleteRecord(root string, col Collection, id string) (bool, error) {
	err := os.Remove(recordPath(root, col, id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("deleting %s/%s: %w", col, id, err)
	}
	return true, nil
}

func recordPath(root string, col Collection, id string) string {
	return filepath.Join(root, string(col), id+".json")
}
