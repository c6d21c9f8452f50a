package staticanalysis

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// AddedFile holds the lines a diff adds to one file. Lines[i] sits at
// LineNumbers[i] in the new version of the file.
type AddedFile struct {
	Path        string
	Lines       []string
	LineNumbers []int
}

// AddedLines extracts the added lines of every file in a unified diff.
// Deleted files are skipped.
func AddedLines(unified string) ([]AddedFile, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(unified)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	files := make([]AddedFile, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		path := strings.TrimPrefix(fd.NewName, "b/")
		if path == "" || fd.NewName == "/dev/null" {
			continue
		}

		f := AddedFile{Path: path}
		for _, h := range fd.Hunks {
			line := int(h.NewStartLine)
			for _, raw := range bytes.Split(h.Body, []byte("\n")) {
				if len(raw) == 0 {
					continue
				}
				switch raw[0] {
				case '+':
					f.Lines = append(f.Lines, string(raw[1:]))
					f.LineNumbers = append(f.LineNumbers, line)
					line++
				case ' ':
					line++
				}
			}
		}
		if len(f.Lines) > 0 {
			files = append(files, f)
		}
	}
	return files, nil
}
