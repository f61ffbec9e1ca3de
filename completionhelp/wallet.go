// Package completionhelp offers shell completion helpers for the CLI flags.
package completionhelp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// WalletLocations returns the directories where libindy keeps the wallets.
func WalletLocations() []string {
	defer err2.Catch(err2.Err(func(err error) {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}))

	home := try.To1(os.UserHomeDir())
	return []string{filepath.Join(home, ".indy_client/wallet")}
}

// WalletNames returns the names of the wallets found from the locations.
func WalletNames(locations []string) (names []string) {
	for _, loc := range locations {
		entries, err := os.ReadDir(loc)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				names = append(names, e.Name())
			}
		}
	}
	return names
}
