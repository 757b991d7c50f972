package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
)

// Build metadata, overridden with
// -ldflags "-X github.com/petal-labs/albert-go/cli/commands.Version=v1.0.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func userAgent() string {
	return "albert-cli/" + Version
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	UserAgent string `json:"user_agent"`
	Endpoints int    `json:"endpoints"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		UserAgent: userAgent(),
		Endpoints: len(albert.Endpoints()),
	}
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentVersion()
			if a.jsonOutput {
				return a.printJSON(info)
			}
			fmt.Fprintf(a.stdout, "albert %s\n", info.Version)
			fmt.Fprintf(a.stdout, "  commit:     %s (%s)\n", info.Commit, info.BuildDate)
			fmt.Fprintf(a.stdout, "  runtime:    %s %s\n", info.GoVersion, info.Platform)
			fmt.Fprintf(a.stdout, "  user agent: %s\n", info.UserAgent)
			fmt.Fprintf(a.stdout, "  endpoints:  %d\n", info.Endpoints)
			return nil
		},
	}
}
