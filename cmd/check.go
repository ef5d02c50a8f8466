package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/spf13/cobra"
	"github.com/ytbridge/ytbridge/constant"
	"github.com/ytbridge/ytbridge/icon"
	"github.com/ytbridge/ytbridge/key"
	"github.com/ytbridge/ytbridge/network"
	"github.com/ytbridge/ytbridge/session"
	"github.com/ytbridge/ytbridge/style"
)

// checkTimeout bounds each reachability probe.
const checkTimeout = 5 * time.Second

// dependency is one requirement of the configured host.
type dependency struct {
	name string
	err  error
	hint string
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured script host can run the player",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := checkDependencies(cmd.Context())

		var failed int
		for _, dep := range deps {
			if dep.err == nil {
				cmd.Printf("%s %s\n", icon.Get(icon.Success), dep.name)
				continue
			}
			failed++
			printMissingDependencyError(dep)
		}

		if failed > 0 {
			handleErr(fmt.Errorf("%d of %d checks failed", failed, len(deps)))
		}
	},
}

// checkDependencies verifies what the configured host needs. The embedded engine needs nothing;
// the browser host needs a Chromium binary and the remote player API.
func checkDependencies(ctx context.Context) []dependency {
	if ctx == nil {
		ctx = context.Background()
	}

	options, err := session.FromConfig()
	if err != nil {
		return []dependency{{name: "configuration", err: err, hint: constant.App + " config info"}}
	}

	if options.Host != session.HostBrowser {
		return []dependency{{name: "embedded engine (" + options.Host + ")"}}
	}

	deps := []dependency{browserDependency(options.Browser.Bin)}
	for _, url := range []string{options.Origin, constant.IframeAPI} {
		probe, cancel := context.WithTimeout(ctx, checkTimeout)
		deps = append(deps, dependency{
			name: "reach " + url,
			err:  network.Reachable(probe, url),
			hint: "check your network or " + key.PlayerOrigin,
		})
		cancel()
	}
	return deps
}

func browserDependency(bin string) dependency {
	if bin != "" {
		return dependency{name: "browser " + bin}
	}

	if found, ok := launcher.LookPath(); ok {
		return dependency{name: "browser " + found}
	}

	return dependency{
		name: "browser",
		err:  errors.New("no chromium found, one will be downloaded on first use"),
		hint: constant.App + " config set " + key.BrowserBin + " /path/to/chromium",
	}
}

func printMissingDependencyError(dep dependency) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s %s", icon.Get(icon.Fail), dep.name))
	body := style.New().Foreground(style.Text).Render(dep.err.Error())

	suggestion := ""
	if dep.hint != "" {
		suggestion = fmt.Sprintf("\n\nTry:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(dep.hint))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
