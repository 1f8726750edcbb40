// Package clipboard copies text to the system clipboard by shelling out to
// the platform's clipboard tool.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool could be found.
var ErrUnavailable = errors.New("clipboard: no clipboard tool available")

// Write copies text to the system clipboard.
func Write(text string) error {
	argv := commandFor(runtime.GOOS, hasTool)
	if argv == nil {
		return ErrUnavailable
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Available reports whether Write can work on this machine.
func Available() bool {
	return commandFor(runtime.GOOS, hasTool) != nil
}

func hasTool(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// commandFor picks the clipboard command for goos, preferring Wayland's
// wl-copy over the X11 tools on Linux.
func commandFor(goos string, has func(string) bool) []string {
	switch goos {
	case "darwin":
		if has("pbcopy") {
			return []string{"pbcopy"}
		}
	case "windows":
		return []string{"cmd", "/c", "clip"}
	default:
		switch {
		case has("wl-copy"):
			return []string{"wl-copy"}
		case has("xclip"):
			return []string{"xclip", "-selection", "clipboard"}
		case has("xsel"):
			return []string{"xsel", "--clipboard", "--input"}
		}
	}
	return nil
}
