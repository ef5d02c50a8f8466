// Package open launches watch pages with the system's default handler.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/ytbridge/ytbridge/constant"
)

// WatchURL returns the watch page of videoID, starting at the given whole second when positive.
func WatchURL(videoID string, at float64) string {
	query := url.Values{"v": {videoID}}
	if at >= 1 {
		query.Set("t", strconv.Itoa(int(at))+"s")
	}
	return constant.DefaultOrigin + "/watch?" + query.Encode()
}

// Start opens input with the default system handler without waiting for it.
func Start(input string) error {
	cmd, ok := command(input)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func command(input string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
	case constant.Darwin:
		return exec.Command("open", input), true
	case constant.Linux:
		return exec.Command("xdg-open", input), true
	case constant.Android:
		return exec.Command("termux-open", input), true
	default:
		return nil, false
	}
}
