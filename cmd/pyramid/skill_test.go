// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, directory creation, and file content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// skillTestCmd returns a command whose input and output are in-memory buffers.
func skillTestCmd(input string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader(input))
	return cmd, out
}

func withSkipConfirm(t *testing.T, v bool) {
	t.Helper()
	old := skillSkipConfirm
	skillSkipConfirm = v
	t.Cleanup(func() { skillSkipConfirm = old })
}

// TestWriteSkillCreatesNestedDirectory verifies the full skill path is created.
func TestWriteSkillCreatesNestedDirectory(t *testing.T) {
	withSkipConfirm(t, true)
	tmpHome := t.TempDir()
	skillDir := filepath.Join(tmpHome, ".claude", "skills", "pyramid")

	cmd, out := skillTestCmd("")
	if err := writeSkill(cmd, skillDir); err != nil {
		t.Fatalf("writeSkill failed: %v", err)
	}

	for _, dir := range []string{
		filepath.Join(tmpHome, ".claude"),
		filepath.Join(tmpHome, ".claude", "skills"),
		skillDir,
	} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Directory %s was not created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}

	if !strings.Contains(out.String(), "Installed pyramid skill") {
		t.Errorf("Expected success message, got %q", out.String())
	}
}

// TestWriteSkillContent verifies the installed file matches the embedded one.
func TestWriteSkillContent(t *testing.T) {
	withSkipConfirm(t, true)
	skillDir := filepath.Join(t.TempDir(), "pyramid")

	cmd, _ := skillTestCmd("")
	if err := writeSkill(cmd, skillDir); err != nil {
		t.Fatalf("writeSkill failed: %v", err)
	}

	written, err := os.ReadFile(filepath.Join(skillDir, "SKILL.md"))
	if err != nil {
		t.Fatalf("Failed to read written skill file: %v", err)
	}
	embedded, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}
	if !bytes.Equal(written, embedded) {
		t.Error("Installed SKILL.md differs from embedded content")
	}

	info, err := os.Stat(filepath.Join(skillDir, "SKILL.md"))
	if err != nil {
		t.Fatalf("Failed to stat skill file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}
}

// TestWriteSkillOverwritesExistingFile verifies a stale skill is replaced.
func TestWriteSkillOverwritesExistingFile(t *testing.T) {
	withSkipConfirm(t, true)
	skillDir := filepath.Join(t.TempDir(), "pyramid")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}
	if err := os.WriteFile(skillPath, []byte("# Old Skill\nstale content"), 0644); err != nil {
		t.Fatalf("Failed to write old skill file: %v", err)
	}

	cmd, out := skillTestCmd("")
	if err := writeSkill(cmd, skillDir); err != nil {
		t.Fatalf("writeSkill failed: %v", err)
	}

	data, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Failed to read skill file: %v", err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("Old content should have been replaced")
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Error("Expected overwrite notice")
	}
}

// TestWriteSkillPrompt covers the confirmation answers.
func TestWriteSkillPrompt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		installed bool
	}{
		{"yes", "y\n", true},
		{"full yes", "YES\n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withSkipConfirm(t, false)
			skillDir := filepath.Join(t.TempDir(), "pyramid")

			cmd, out := skillTestCmd(tt.input)
			if err := writeSkill(cmd, skillDir); err != nil {
				t.Fatalf("writeSkill failed: %v", err)
			}

			_, err := os.Stat(filepath.Join(skillDir, "SKILL.md"))
			if tt.installed && err != nil {
				t.Errorf("Expected skill to be installed: %v", err)
			}
			if !tt.installed {
				if err == nil {
					t.Error("Expected skill not to be installed")
				}
				if !strings.Contains(out.String(), "Installation canceled.") {
					t.Errorf("Expected cancel message, got %q", out.String())
				}
			}
		})
	}
}

// TestSkillFSReadEmbeddedContent verifies the embedded SKILL.md frontmatter.
func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}
	for _, marker := range []string{"name: pyramid", "description:", "## When to use pyramid", "## Categories"} {
		if !strings.Contains(contentStr, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

// TestSkillDocumentsEveryTool keeps SKILL.md in step with the MCP tool list.
func TestSkillDocumentsEveryTool(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	tools := []string{
		"list_items",
		"create_item",
		"list_days",
		"get_day",
		"increment_portion",
		"set_portion",
		"cleanup_empty_days",
	}
	for _, tool := range tools {
		if !strings.Contains(string(content), "mcp__pyramid__"+tool) {
			t.Errorf("Expected embedded SKILL.md to reference %q", tool)
		}
	}
}

// TestSkillSkipConfirmFlag verifies the flag exists and has correct defaults.
func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag to be defined")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand 'y', got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default value 'false', got %q", flag.DefValue)
	}
}
