package lintconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	log "github.com/sirupsen/logrus"
)

// Config is an arbitrary key-value mapping parsed from a linter
// configuration file. Entries are replaced wholesale on reload, never merged.
type Config map[string]interface{}

// ErrParse marks a configuration file that was read successfully but did not
// parse as a JSON object after comment stripping. The cache uses it to
// distinguish a broken file (metadata still refreshed, so the file is not
// re-parsed on every request) from an unreadable one.
var ErrParse = errors.New("config parse error")

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
)

// StripComments removes /* ... */ block comments (non-greedy, may span
// multiple lines) and // line comments from a configuration file's text.
func StripComments(text string) string {
	text = blockCommentRe.ReplaceAllString(text, "")
	return lineCommentRe.ReplaceAllString(text, "")
}

// Load reads the configuration file at path, strips comments, and parses the
// remainder as a JSON object.
//
// An empty path returns an empty configuration without touching the
// filesystem. Read failures are returned as-is; parse failures are wrapped
// with [ErrParse].
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal([]byte(StripComments(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	log.Infof("Loaded linter config: %s", path)
	return cfg, nil
}
