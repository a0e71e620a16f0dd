package testutil

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CallLogEntry is one recorded fake git invocation.
type CallLogEntry struct {
	Args     []string  `yaml:"args,omitempty"`
	Dir      string    `yaml:"dir,omitempty"`
	Time     time.Time `yaml:"time"`
	ExitCode int       `yaml:"exit_code"`
}

// CallLog is the YAML document a fake git appends to.
type CallLog struct {
	Entries []CallLogEntry `yaml:"entries"`
}

// AppendCallLog adds entry to the call log at path, creating the file on
// first use.
func AppendCallLog(path string, entry CallLogEntry) error {
	log, err := ReadCallLog(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log = &CallLog{}
	case err != nil:
		return err
	}
	log.Entries = append(log.Entries, entry)

	data, err := yaml.Marshal(log)
	if err != nil {
		return fmt.Errorf("encoding call log: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadCallLog loads the call log at path.
func ReadCallLog(path string) (*CallLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading call log: %w", err)
	}

	var log CallLog
	if err := yaml.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("decoding call log %s: %w", path, err)
	}
	return &log, nil
}
