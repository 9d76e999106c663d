package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nocturnelabs/adascout/internal/account"
	"github.com/nocturnelabs/adascout/internal/address"
	"github.com/nocturnelabs/adascout/internal/cache"
	"github.com/nocturnelabs/adascout/internal/chain"
	"github.com/nocturnelabs/adascout/internal/chain/indexer"
	"github.com/nocturnelabs/adascout/internal/discovery"
	"github.com/nocturnelabs/adascout/internal/output"
	"github.com/nocturnelabs/adascout/internal/wallet"
	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// discoverInput is the recovery phrase for discovery.
	discoverInput string
	// discoverPassphrase indicates whether to prompt for a BIP39 passphrase.
	discoverPassphrase bool
	// discoverGap is the payment-chain gap limit.
	discoverGap int
	// discoverAccount is the hardened account index to scan.
	discoverAccount uint32
	// discoverNoCache disables writing the result snapshot.
	discoverNoCache bool
)

// discoverCmd reconstructs an account's address set from chain history.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Recover the used addresses of an account from chain history",
	Long: `Recover the full address set of an HD account from a recovery phrase.

The scan derives addresses along the external and internal payment branches
and the stake branch, queries the configured indexer for history, and stops
each chain after the gap limit of consecutive unused indices. Each discovered
address is paired with its programmable-token variant.

The receiving address at index 0 is always included, even on a fresh account.

Examples:
  adascout discover
  adascout discover --input "abandon abandon ... about"
  adascout discover --gap 50 --account 1
  adascout discover --passphrase -o json`,
	RunE: runDiscover,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVar(&discoverInput, "input", "", "recovery phrase (or interactive prompt)")
	discoverCmd.Flags().BoolVar(&discoverPassphrase, "passphrase", false, "prompt for BIP39 passphrase")
	discoverCmd.Flags().IntVar(&discoverGap, "gap", discovery.DefaultLookAhead, "gap limit for payment-chain scanning")
	discoverCmd.Flags().Uint32Var(&discoverAccount, "account", 0, "account index to scan")
	discoverCmd.Flags().BoolVar(&discoverNoCache, "no-cache", false, "do not save a result snapshot")
}

// DiscoverResponse is the JSON response for the discover command.
type DiscoverResponse struct {
	Network      string                     `json:"network"`
	AccountIndex uint32                     `json:"account_index"`
	LookAhead    int                        `json:"look_ahead"`
	AddressCount int                        `json:"address_count"`
	Addresses    []discovery.GroupedAddress `json:"addresses"`
	DurationMs   int64                      `json:"duration_ms"`
	SnapshotPath string                     `json:"snapshot_path,omitempty"`
}

//nolint:gocognit,gocyclo // CLI command handler with validation, setup, and output - complexity is necessary
func runDiscover(cmd *cobra.Command, _ []string) error {
	gap := resolveGap(cmd)
	if gap < 0 {
		return scouterr.WithSuggestion(
			scouterr.ErrInvalidInput,
			"gap limit must not be negative",
		)
	}

	// Get the recovery phrase
	mnemonic := discoverInput
	if mnemonic == "" {
		var err error
		mnemonic, err = promptMnemonicInteractive()
		if err != nil {
			return err
		}
	}

	if err := wallet.ValidateMnemonic(mnemonic); err != nil {
		return err
	}

	// Get passphrase if requested
	var passphrase string
	if discoverPassphrase {
		var err error
		passphrase, err = promptPassphrase()
		if err != nil {
			return err
		}
	}

	seed, err := wallet.MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return err
	}
	defer wallet.ZeroBytes(seed)

	networkID := address.Testnet
	if cfg.IsMainnet() {
		networkID = address.Mainnet
	}

	acct, err := account.New(seed, discoverAccount, networkID)
	if err != nil {
		return err
	}

	provider := buildProvider()

	opts := &discovery.Options{LookAhead: gap}

	if formatter.Format() != output.FormatJSON {
		output.Info("Scanning address chains...")
	}
	logger.Debug("discover: network=%s account=%d gap=%d", networkID, discoverAccount, gap)

	start := time.Now()
	addrs, err := discovery.Discover(cmd.Context(), acct, provider, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	response := DiscoverResponse{
		Network:      networkID.String(),
		AccountIndex: discoverAccount,
		LookAhead:    gap,
		AddressCount: len(addrs),
		Addresses:    addrs,
		DurationMs:   elapsed.Milliseconds(),
	}

	// Save the snapshot unless disabled
	if !discoverNoCache {
		store := cache.NewFileStore(cfg.GetHome())
		snap := &cache.Snapshot{
			Network:      networkID,
			AccountIndex: discoverAccount,
			LookAhead:    gap,
			Addresses:    addrs,
		}
		if err := store.Save(acct.Fingerprint(), snap); err != nil {
			logger.Error("saving snapshot: %v", err)
			output.Warnf("Could not save snapshot: %v", err)
		} else {
			response.SnapshotPath = store.Path(acct.Fingerprint())
		}
	}

	if formatter.Format() == output.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), response)
	}
	outputDiscoverText(cmd, response)
	return nil
}

// resolveGap returns the effective gap limit. An explicit --gap flag wins;
// otherwise the configured discovery look-ahead applies, so the config file
// and ADASCOUT_LOOK_AHEAD reach the scan.
func resolveGap(cmd *cobra.Command) int {
	if cmd.Flags().Changed("gap") {
		return discoverGap
	}
	return cfg.Discovery.LookAhead
}

// buildProvider assembles the chain-history provider from the configuration:
// the indexer client, throttled per config, wrapped with retries if enabled.
func buildProvider() discovery.ChainHistoryProvider {
	var provider discovery.ChainHistoryProvider = indexer.NewClient(&indexer.ClientOptions{
		BaseURL:  cfg.GetIndexerURL(),
		APIKey:   cfg.GetIndexerAPIKey(),
		Throttle: chain.NewThrottle(cfg.Network.Indexer.RateLimit, cfg.Network.Indexer.Burst),
	})

	if cfg.Discovery.Retry {
		provider = chain.WithRetry(provider, chain.DefaultRetryConfig())
	}

	return provider
}

// outputDiscoverText renders discovery results as a table.
func outputDiscoverText(cmd *cobra.Command, response DiscoverResponse) {
	w := cmd.OutOrStdout()

	outln(w)
	out(w, "Discovered %d addresses on %s (account %d, gap %d) in %.1fs\n",
		response.AddressCount,
		response.Network,
		response.AccountIndex,
		response.LookAhead,
		float64(response.DurationMs)/1000.0,
	)
	outln(w)

	table := output.NewTable("INDEX", "BRANCH", "STAKE", "ADDRESS")
	for _, a := range response.Addresses {
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

	if response.SnapshotPath != "" {
		outln(w)
		output.Successf("Snapshot saved to %s", response.SnapshotPath)
	}
}
