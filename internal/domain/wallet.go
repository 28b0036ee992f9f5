package domain

import (
	"fmt"
	"strings"
)

// ShortAddress abbreviates a wallet address to its first and last four
// characters. Addresses too short to abbreviate are returned unchanged.
func ShortAddress(address string) string {
	if len(address) <= ShortAddressPrefix+ShortAddressSuffix {
		return address
	}
	return address[:ShortAddressPrefix] + ShortAddressEllipse + address[len(address)-ShortAddressSuffix:]
}

// WalletStatus returns the menu status line for a wallet address.
// An empty address means disconnected.
func WalletStatus(address string) string {
	if address == "" {
		return WalletNotConnected
	}
	return fmt.Sprintf(WalletConnectedFmt, ShortAddress(address))
}

// ValidWalletAddress reports whether address looks like a base58 public key
func ValidWalletAddress(address string) bool {
	if len(address) < WalletAddressMinLen || len(address) > WalletAddressMaxLen {
		return false
	}
	for _, r := range address {
		if !strings.ContainsRune(base58Alphabet, r) {
			return false
		}
	}
	return true
}
