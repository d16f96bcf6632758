// ABOUTME: Integration tests for pyramid CLI.
// ABOUTME: Builds the binary and drives a full tracking workflow against a temp data dir.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	pyramidBinary := filepath.Join(projectRoot, "pyramid")

	buildCmd := exec.Command("go", "build", "-o", pyramidBinary, "./cmd/pyramid")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(pyramidBinary)

	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--data-dir", dataDir}, args...)
		cmd := exec.Command(pyramidBinary, fullArgs...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
			"NO_COLOR=1",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// First run seeds the catalog
	output, err := run("items")
	if err != nil {
		t.Fatalf("Failed to list items: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Obst und Gemüse") {
		t.Errorf("Expected seeded catalog in output, got: %s", output)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "pyramid_items.json")); err != nil {
		t.Fatalf("Expected catalog file: %v", err)
	}

	// Record portions on a fixed date
	output, err = run("portion", "add", "7", "--date", "2024-05-01")
	if err != nil {
		t.Fatalf("Failed to add portion: %v\n%s", err, output)
	}
	if !strings.Contains(output, "1/5") {
		t.Errorf("Expected '1/5' in output, got: %s", output)
	}

	output, err = run("portion", "add", "8", "3", "--date", "2024-05-01")
	if err != nil {
		t.Fatalf("Failed to add beverages: %v\n%s", err, output)
	}
	if !strings.Contains(output, "3/6") {
		t.Errorf("Expected '3/6' in output, got: %s", output)
	}

	// Decrements stop at zero
	output, err = run("portion", "add", "--date", "2024-05-01", "--", "1", "-5")
	if err != nil {
		t.Fatalf("Failed to decrement: %v\n%s", err, output)
	}
	if !strings.Contains(output, "0/1") {
		t.Errorf("Expected '0/1' in output, got: %s", output)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "2024-05-01_portions.json")); err != nil {
		t.Fatalf("Expected day file: %v", err)
	}

	// Show the day
	output, err = run("day", "show", "2024-05-01")
	if err != nil {
		t.Fatalf("Failed to show day: %v\n%s", err, output)
	}
	if !strings.Contains(output, "total 4/22") {
		t.Errorf("Expected 'total 4/22' in output, got: %s", output)
	}

	// Export, then import into a fresh data dir
	backup := filepath.Join(tmpDir, "backup.json")
	output, err = run("export", "json", "-o", backup)
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}

	dataDir = filepath.Join(tmpDir, "restored")
	output, err = run("import", backup)
	if err != nil {
		t.Fatalf("Failed to import: %v\n%s", err, output)
	}

	output, err = run("day", "list")
	if err != nil {
		t.Fatalf("Failed to list days: %v\n%s", err, output)
	}
	if !strings.Contains(output, "2024-05-01") {
		t.Errorf("Expected restored day in list, got: %s", output)
	}

	// An emptied day is pruned by cleanup
	output, err = run("portion", "reset", "7", "--date", "2024-05-01")
	if err != nil {
		t.Fatalf("Failed to reset: %v\n%s", err, output)
	}
	output, err = run("portion", "set", "8", "0", "--date", "2024-05-01")
	if err != nil {
		t.Fatalf("Failed to set: %v\n%s", err, output)
	}
	output, err = run("cleanup")
	if err != nil {
		t.Fatalf("Failed to clean up: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Removed 1 empty day(s)") {
		t.Errorf("Expected one removed day, got: %s", output)
	}
}
