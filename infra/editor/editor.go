package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $VISUAL or $EDITOR
// (fallback: "vi"). It does not run the editor itself; callers hand the
// returned *exec.Cmd to tea.ExecProcess so Bubble Tea releases the terminal.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionComment = `<!--
Palette: write your post below.

- SAVE and EXIT to publish (e.g. :wq in vi).
- An empty file cancels.
- Posts are limited to %d characters.
-->

`

// Cmd writes content below an instruction header into a temp file and
// returns the editor command for it along with the file path.
func (e *EnvEditor) Cmd(content string, limit int) (*exec.Cmd, string, error) {
	editorCmd := strings.TrimSpace(os.Getenv("VISUAL"))
	if editorCmd == "" {
		editorCmd = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if editorCmd == "" {
		editorCmd = "vi"
	}
	// $EDITOR may carry flags, e.g. "code --wait".
	parts := strings.Fields(editorCmd)

	tmpFile, err := os.CreateTemp("", "palette-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(fmt.Sprintf(instructionComment, limit) + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	args := append(parts[1:], tmpPath)
	return exec.Command(parts[0], args...), tmpPath, nil
}

// ReadContent reads the temp file, strips the instruction header, trims
// whitespace and removes the file.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if strings.HasPrefix(strings.TrimSpace(content), "<!--") {
		if idx := strings.Index(content, "-->"); idx != -1 {
			content = content[idx+3:]
		}
	}
	return strings.TrimSpace(content), nil
}
