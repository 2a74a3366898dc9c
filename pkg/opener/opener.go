// Package opener hands files to the platform's default handler.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Command returns the opener command line for the given GOOS.
func Command(goos, path string) []string {
	switch goos {
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", path}
	case "darwin":
		return []string{"open", path}
	default:
		return []string{"xdg-open", path}
	}
}

// Open launches the default handler for path. It returns once the handler
// process has started; the handler's own outcome is not observed.
func Open(path string) error {
	argv := Command(runtime.GOOS, path)
	if err := exec.Command(argv[0], argv[1:]...).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}
