package witcli

import (
	"fmt"
	"strings"

	"github.com/schell/witffi/wit"
)

// LoadWIT loads a single [wit.Resolve] from path.
// If path == "" or "-", it reads from stdin.
// If path doesn't end in ".json", it is processed through wasm-tools.
// If forceWIT is true, it is always processed through wasm-tools,
// regardless of extension.
func LoadWIT(forceWIT bool, path string) (*wit.Resolve, error) {
	if forceWIT || !strings.HasSuffix(path, ".json") {
		return wit.LoadWITFromPath(path)
	}
	return wit.LoadJSON(path)
}

// LoadPath parses paths and returns the first path.
// If paths is empty, returns "-".
// If paths has more than one element, returns an error.
func LoadPath(paths ...string) (string, error) {
	var path string
	switch len(paths) {
	case 0:
		path = "-"
	case 1:
		path = paths[0]
	default:
		return "", fmt.Errorf("found %d path arguments, expecting 0 or 1", len(paths))
	}
	return path, nil
}
