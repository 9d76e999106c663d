package cli

import (
	"github.com/spf13/cobra"

	"github.com/nocturnelabs/adascout/internal/output"
	"github.com/nocturnelabs/adascout/internal/version"
	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

// versionCheck enables the newer-release lookup.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var versionCheck bool

// versionCmd prints build version information.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check for a newer release")
}

// VersionCheckResponse is the JSON response for version --check.
type VersionCheckResponse struct {
	version.Info
	LatestVersion  string `json:"latest_version"`
	NewerAvailable bool   `json:"newer_available"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.Get()

	if !versionCheck {
		if formatter.Format() == output.FormatJSON {
			return writeJSON(cmd.OutOrStdout(), info)
		}
		outln(cmd.OutOrStdout(), info.String())
		return nil
	}

	latest, err := version.LatestVersion(cmd.Context())
	if err != nil {
		return scouterr.Wrap(err, "checking for a newer release")
	}

	newer := version.IsNewerVersion(info.Version, latest)

	if formatter.Format() == output.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), VersionCheckResponse{
			Info:           info,
			LatestVersion:  version.NormalizeVersion(latest),
			NewerAvailable: newer,
		})
	}

	outln(cmd.OutOrStdout(), info.String())
	if newer {
		output.Warnf("A newer version is available: %s -> %s", info.Version, version.NormalizeVersion(latest))
	} else {
		output.Success("You are on the latest version")
	}
	return nil
}
