// Package roster loads the house roster, grouping, and constraint files and
// validates them against each other.
package roster

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"
)

const maxNameLen = 100

var plainName = regexp.MustCompile(`^[a-zA-Z\s\-.']+$`)

// Load reads the roster file: one name per line, # comments and blank lines
// skipped, duplicates removed preserving first occurrence.
func Load(path string, logger *log.Logger) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing roster file %s: create it with one name per line", path)
		}
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	var names []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		if len(name) > maxNameLen {
			if logger != nil {
				logger.Printf("WARN roster name too long, truncating line=%d", lineNum)
			}
			name = name[:maxNameLen]
		}
		if logger != nil && !plainName.MatchString(name) {
			logger.Printf("WARN roster name has unusual characters line=%d name=%s", lineNum, name)
		}
		if seen[name] {
			if logger != nil {
				logger.Printf("WARN duplicate roster name removed name=%s", name)
			}
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("roster file %s is empty: add at least one name", path)
	}
	return names, nil
}

// Signature returns the stable roster fingerprint used to seed the bonus
// rotation: the sorted names joined by commas.
func Signature(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func loadJSON(path string, v any) (bool, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}
