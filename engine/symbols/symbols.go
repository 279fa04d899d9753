package symbols

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sharpbridge/sharpbridge/engine/hosting"
)

// LogFunc writes a line to the server log
type LogFunc func(format string, args ...interface{})

// Convert converts the configured debug symbol files for the managed
// runtime's diagnostics. symbolFiles is a whitespace separated list of file
// names resolved under gameModeDir. An empty list skips the step entirely,
// producing no output. Failures are logged and skipped; the step never
// aborts, so conversion can not fail the game mode load. Returns the number
// of files converted.
func Convert(rt hosting.ManagedRuntime, logf LogFunc, gameModeDir string, symbolFiles string) int {
	files := strings.Fields(symbolFiles)
	if len(files) == 0 {
		return 0
	}

	logf("Symbol file generation")
	logf("----------------------")

	successes := 0
	for _, file := range files {
		logf("Converting: %s", file)

		path := filepath.Join(gameModeDir, file)
		if file == "" || !openable(path) {
			logf("  Failed.")
			continue
		}

		if err := rt.ConvertSymbols(path); err != nil {
			logf("  Failed.")
			continue
		}

		successes++
		logf("  Converted.")
	}
	logf(" Converted %d files.", successes)
	logf("")

	return successes
}

func openable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
