// Package statefile persists scheduler state as JSON with atomic writes,
// backups, and quarantine of corrupted files.
package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"houseduty/internal/model"
)

// Load reads the state file at path. A missing file is not an error: the
// scheduler starts from an empty state on its first run. A file that exists
// but does not parse is quarantined; Load then tries the .bak copy before
// falling back to an empty state.
func Load(path string, logger *log.Logger) (model.State, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if logger != nil {
			logger.Printf("INFO state file missing, starting fresh path=%s", path)
		}
		return model.State{}, nil
	}
	if err != nil {
		return model.State{}, fmt.Errorf("read state file: %w", err)
	}

	var st model.State
	if err := json.Unmarshal(raw, &st); err == nil {
		return st, nil
	} else if logger != nil {
		logger.Printf("WARN state file corrupted path=%s err=%v", path, err)
	}

	if qerr := Quarantine(path, logger); qerr != nil {
		return model.State{}, fmt.Errorf("quarantine corrupted state: %w", qerr)
	}

	st, rerr := restoreFromBackup(path, logger)
	if rerr != nil {
		if logger != nil {
			logger.Printf("WARN backup restore failed, starting fresh path=%s err=%v", path, rerr)
		}
		return model.State{}, nil
	}
	return st, nil
}

// LoadReadOnly reads the state file at path without touching the disk.
// A missing file yields an empty state, and so does a corrupted one: no
// quarantine, no backup restore. Preview runs and inspection commands use
// this so they never mutate the state directory.
func LoadReadOnly(path string, logger *log.Logger) (model.State, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if logger != nil {
			logger.Printf("INFO state file missing, starting fresh path=%s", path)
		}
		return model.State{}, nil
	}
	if err != nil {
		return model.State{}, fmt.Errorf("read state file: %w", err)
	}

	var st model.State
	if err := json.Unmarshal(raw, &st); err != nil {
		if logger != nil {
			logger.Printf("WARN state file corrupted, using empty state path=%s err=%v", path, err)
		}
		return model.State{}, nil
	}
	return st, nil
}

// Save writes st to path atomically: marshal, write to a temp file in the
// same directory, re-read and validate, back up the previous file, then
// rename over it.
func Save(path string, st model.State) error {
	content, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	content = append(content, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".houseduty-tmp-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Re-read what actually landed on disk before replacing the live file.
	written, err := os.ReadFile(tmpName)
	if err != nil {
		return fmt.Errorf("read temp file for validation: %w", err)
	}
	if err := validateJSON(written); err != nil {
		return fmt.Errorf("state validation failed: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+".bak"); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// Quarantine moves a corrupted file into a quarantine/ directory next to it,
// stamped so repeated corruption never overwrites earlier evidence.
func Quarantine(path string, logger *log.Logger) error {
	quarantineDir := filepath.Join(filepath.Dir(path), "quarantine")
	if err := os.MkdirAll(quarantineDir, 0755); err != nil {
		return fmt.Errorf("create quarantine dir: %w", err)
	}

	name := fmt.Sprintf("%s.%s.corrupt", filepath.Base(path), time.Now().Format("20060102T150405"))
	dst := filepath.Join(quarantineDir, name)
	if err := os.Rename(path, dst); err != nil {
		return fmt.Errorf("move to quarantine: %w", err)
	}

	if logger != nil {
		logger.Printf("WARN quarantined corrupted file src=%s dst=%s", path, dst)
	}
	return nil
}

func restoreFromBackup(path string, logger *log.Logger) (model.State, error) {
	bakPath := path + ".bak"
	raw, err := os.ReadFile(bakPath)
	if err != nil {
		return model.State{}, fmt.Errorf("read backup: %w", err)
	}

	var st model.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return model.State{}, fmt.Errorf("backup is also corrupted: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return model.State{}, fmt.Errorf("restore from backup: %w", err)
	}
	if logger != nil {
		logger.Printf("INFO restored state from backup src=%s", bakPath)
	}
	return st, nil
}

func validateJSON(content []byte) error {
	var v any
	return json.Unmarshal(content, &v)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
