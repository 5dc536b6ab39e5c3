// Package open hands URLs and files to the desktop's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// launchers builds the opener command per runtime.GOOS.
var launchers = map[string]func(input string) *exec.Cmd{
	"windows": func(input string) *exec.Cmd {
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input)
	},
	"darwin": func(input string) *exec.Cmd {
		return exec.Command("open", input)
	},
	"linux": func(input string) *exec.Cmd {
		return exec.Command("xdg-open", input)
	},
	"android": func(input string) *exec.Cmd {
		return exec.Command("termux-open", input)
	},
}

// Start opens input, a URL or a file path, without waiting for the handler to exit.
func Start(input string) error {
	launch, ok := launchers[runtime.GOOS]
	if !ok {
		return fmt.Errorf("opening %s is not supported on %s", input, runtime.GOOS)
	}
	return launch(input).Start()
}
