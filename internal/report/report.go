// Package report persists a summary of a triage session so a researcher can
// reconstruct which scans went where after the browser tabs are closed.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/scantriage/internal/triage"
)

// Dir is where session reports are written, relative to the working
// directory.
const Dir = "triage_results"

// SessionConfig represents the configuration section of the session YAML
type SessionConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	Directory string `yaml:"directory"`
	Timestamp string `yaml:"timestamp"`
}

// Entry represents one processed image
type Entry struct {
	Image       string `yaml:"image"`
	Title       string `yaml:"title"`
	DOI         string `yaml:"doi"`
	Destination string `yaml:"destination,omitempty"`
	Outcome     string `yaml:"outcome"`
	Error       string `yaml:"error,omitempty"`
}

// Session represents the complete triage session record
type Session struct {
	Config  SessionConfig `yaml:"config"`
	Results []Entry       `yaml:"results"`
}

// Save writes the session results to a timestamped YAML file under Dir and
// returns its path.
func Save(provider, model, directory string, results []triage.Result) (string, error) {
	if err := os.MkdirAll(Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", Dir, err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	session := Session{
		Config: SessionConfig{
			Provider:  provider,
			Model:     model,
			Directory: directory,
			Timestamp: timestamp,
		},
		Results: make([]Entry, 0, len(results)),
	}

	for _, r := range results {
		entry := Entry{
			Image:       filepath.Base(r.Image),
			Title:       r.Meta.Title,
			DOI:         r.Meta.DOI,
			Destination: r.Destination,
			Outcome:     r.Outcome.String(),
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		session.Results = append(session.Results, entry)
	}

	data, err := yaml.Marshal(&session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	path := filepath.Join(Dir, fmt.Sprintf("triage_%s.yaml", timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write session report: %w", err)
	}

	return path, nil
}
