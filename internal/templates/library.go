package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Library resolves the prompt template for a stage. When a directory is
// configured, a file named "<stage>.md" there overrides the builtin template
// for that stage; everything else falls back to the builtins.
type Library struct {
	Directory string
}

func NewLibrary(dir string) *Library {
	return &Library{Directory: dir}
}

// Template returns the template source for the given stage.
func (l *Library) Template(stage string) (string, error) {
	if l.Directory != "" {
		path := filepath.Join(l.Directory, stage+".md")
		data, err := os.ReadFile(path)
		if err == nil {
			if t := strings.TrimSpace(string(data)); t != "" {
				return string(data), nil
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: failed to read prompt override %s: %v", path, err)
		}
	}

	t, ok := builtin[stage]
	if !ok {
		return "", fmt.Errorf("no prompt template for stage %q", stage)
	}
	return t, nil
}

// Stages lists the stage identifiers a Library can resolve.
func (l *Library) Stages() []string {
	return []string{
		StageIntentExtraction,
		StagePlanGeneration,
		StageIterativeRefinement,
		StageSystemPromptSynthesis,
		StageCallSummary,
	}
}
