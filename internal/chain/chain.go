package chain

import "strings"

// Family is the closed classification of a network selector. It is computed
// once when a submission is normalized so downstream code branches on a tag
// instead of re-matching strings.
type Family string

const (
	// FamilyEVM covers networks sharing the Ethereum addressing model.
	FamilyEVM Family = "evm"
	// FamilySolana covers Solana and its clusters.
	FamilySolana Family = "solana"
	// FamilyUnsupported marks selectors no wallet of ours can spend on.
	FamilyUnsupported Family = "unsupported"
)

// The keyword lists are enumerated, not inferred. A new network is supported
// only once its keyword is added here.
var (
	solanaKeywords = []string{"solana", "sol"}
	evmKeywords    = []string{"ethereum", "eth", "base", "polygon", "arbitrum", "optimism", "avalanche", "bsc"}
)

// Classify maps a free-form network selector onto a Family by lower-cased
// keyword containment. Solana keywords win over EVM keywords.
func Classify(network string) Family {
	n := strings.ToLower(strings.TrimSpace(network))
	if n == "" {
		return FamilyUnsupported
	}
	for _, kw := range solanaKeywords {
		if strings.Contains(n, kw) {
			return FamilySolana
		}
	}
	for _, kw := range evmKeywords {
		if strings.Contains(n, kw) {
			return FamilyEVM
		}
	}
	return FamilyUnsupported
}

func (f Family) String() string {
	return string(f)
}
