package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nocturnelabs/adascout/internal/cache"
	"github.com/nocturnelabs/adascout/internal/output"
	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// addressesFingerprint selects which account snapshot to show.
	addressesFingerprint string
)

// addressesCmd lists addresses from the most recent discovery snapshot.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "List addresses from a saved discovery snapshot",
	Long: `List the address set saved by a previous 'adascout discover' run.

Snapshots are stored per account fingerprint. With a single saved snapshot no
flags are needed; with several, pass --fingerprint to pick one.

Examples:
  adascout addresses
  adascout addresses --fingerprint 3f62a1...
  adascout addresses -o json`,
	RunE: runAddresses,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(addressesCmd)

	addressesCmd.Flags().StringVar(&addressesFingerprint, "fingerprint", "", "account fingerprint of the snapshot to list")
}

// AddressesResponse is the JSON response for the addresses command.
type AddressesResponse struct {
	Fingerprint string          `json:"fingerprint"`
	Snapshot    *cache.Snapshot `json:"snapshot"`
}

func runAddresses(cmd *cobra.Command, _ []string) error {
	store := cache.NewFileStore(cfg.GetHome())

	fingerprint := addressesFingerprint
	if fingerprint == "" {
		fingerprints, err := store.List()
		if err != nil {
			return err
		}

		switch len(fingerprints) {
		case 0:
			return scouterr.WithSuggestion(
				scouterr.ErrSnapshotNotFound,
				"run 'adascout discover' first",
			)
		case 1:
			fingerprint = fingerprints[0]
		default:
			return scouterr.WithSuggestion(
				scouterr.WithDetails(scouterr.ErrInvalidInput,
					map[string]string{"snapshots": fmt.Sprintf("%d", len(fingerprints))}),
				"multiple snapshots found, pass --fingerprint to pick one",
			)
		}
	}

	snap, err := store.Load(fingerprint)
	if err != nil {
		return err
	}

	response := AddressesResponse{
		Fingerprint: fingerprint,
		Snapshot:    snap,
	}

	if formatter.Format() == output.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), response)
	}
	outputAddressesText(cmd, response)
	return nil
}

// outputAddressesText renders a snapshot as a table.
func outputAddressesText(cmd *cobra.Command, response AddressesResponse) {
	w := cmd.OutOrStdout()
	snap := response.Snapshot

	out(w, "Account %d on %s, scanned with gap %d (updated %s)\n",
		snap.AccountIndex,
		snap.Network,
		snap.LookAhead,
		snap.UpdatedAt.Format("2006-01-02 15:04:05"),
	)
	outln(w)

	table := output.NewTable("INDEX", "BRANCH", "STAKE", "ADDRESS")
	for _, a := range snap.Addresses {
		stakeIdx := ""
		if a.StakeKeyDerivationPath != nil {
			stakeIdx = fmt.Sprintf("%d", a.StakeKeyDerivationPath.Index)
		}
		table.AddRow(
			fmt.Sprintf("%d", a.Index),
			a.Type.String(),
			stakeIdx,
			a.Address,
		)
	}
	_ = table.Render(w)
}
