package chain

import "strings"

// Display names arrive from form controls; the payment provider wants the
// canonical identifiers below. Both lookups are pure and total: unknown
// networks pass through lower-cased with spaces folded, unknown assets pass
// through upper-cased, so the caller never has to special-case a miss.

var canonicalNetworks = map[string]string{
	"ethereum":          "ethereum",
	"base":              "base",
	"polygon":           "polygon",
	"arbitrum":          "arbitrum",
	"arbitrum one":      "arbitrum",
	"optimism":          "optimism",
	"avalanche":         "avalanche-c-chain",
	"avalanche c-chain": "avalanche-c-chain",
	"bnb smart chain":   "bsc",
	"solana":            "solana",
}

var canonicalAssets = map[string]string{
	"bitcoin":  "BTC",
	"ethereum": "ETH",
	"solana":   "SOL",
	"usd coin": "USDC",
	"tether":   "USDT",
	"dogecoin": "DOGE",
	"polygon":  "POL",
}

// CanonicalNetwork resolves a display network name to its API identifier.
func CanonicalNetwork(display string) string {
	key := strings.ToLower(strings.TrimSpace(display))
	if canonical, ok := canonicalNetworks[key]; ok {
		return canonical
	}
	return strings.ReplaceAll(key, " ", "-")
}

// CanonicalAsset resolves a display asset name to its ticker symbol.
func CanonicalAsset(display string) string {
	key := strings.ToLower(strings.TrimSpace(display))
	if canonical, ok := canonicalAssets[key]; ok {
		return canonical
	}
	return strings.ToUpper(strings.TrimSpace(display))
}
