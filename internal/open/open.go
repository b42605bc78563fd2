package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/karte/internal/index"
)

// OpenChart opens the chart's source file in $EDITOR at the line of the
// given entry (line 1 when entryID is negative or unknown).
func OpenChart(db *index.DB, chartKey string, entryID int) error {
	filePath, lineNum, err := Locate(db, chartKey, entryID)
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	return EditorCommand(editor, filePath, lineNum).Run()
}

// Locate resolves a chart entry to its source file and line.
func Locate(db *index.DB, chartKey string, entryID int) (string, int, error) {
	c, err := db.GetChartByKey(chartKey)
	if err != nil {
		return "", 0, fmt.Errorf("get chart: %w", err)
	}

	if _, err := os.Stat(c.FilePath); err != nil {
		return "", 0, fmt.Errorf("file not found: %s", c.FilePath)
	}

	lineNum := 1
	if entryID >= 0 {
		entries, err := db.GetEntries(chartKey)
		if err == nil {
			for _, e := range entries {
				if e.EntryID == entryID {
					lineNum = e.LineNumber
					break
				}
			}
		}
	}
	return c.FilePath, lineNum, nil
}

// EditorCommand builds the command that opens filePath at lineNum.
func EditorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	var cmd *exec.Cmd

	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		cmd = exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		cmd = exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		cmd = exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		cmd = exec.Command(editor, filePath)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
