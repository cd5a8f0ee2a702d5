package chain

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		network string
		want    Family
	}{
		{"Solana", FamilySolana},
		{"solana devnet", FamilySolana},
		{"SOL", FamilySolana},
		{"Ethereum", FamilyEVM},
		{"ethereum sepolia", FamilyEVM},
		{"Base", FamilyEVM},
		{"Polygon", FamilyEVM},
		{"Arbitrum One", FamilyEVM},
		{"Optimism", FamilyEVM},
		{"Avalanche C-Chain", FamilyEVM},
		{"BSC", FamilyEVM},
		{"Bitcoin", FamilyUnsupported},
		{"tron", FamilyUnsupported},
		{"", FamilyUnsupported},
	}

	for _, tc := range cases {
		if got := Classify(tc.network); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.network, got, tc.want)
		}
	}
}

func TestCanonicalNetwork(t *testing.T) {
	cases := []struct {
		display string
		want    string
	}{
		{"Ethereum", "ethereum"},
		{"Avalanche", "avalanche-c-chain"},
		{"BNB Smart Chain", "bsc"},
		{"Solana", "solana"},
		{"Arbitrum One", "arbitrum"},
		{"Some New Chain", "some-new-chain"},
	}

	for _, tc := range cases {
		if got := CanonicalNetwork(tc.display); got != tc.want {
			t.Errorf("CanonicalNetwork(%q) = %q, want %q", tc.display, got, tc.want)
		}
	}
}

func TestCanonicalAsset(t *testing.T) {
	cases := []struct {
		display string
		want    string
	}{
		{"Bitcoin", "BTC"},
		{"USD Coin", "USDC"},
		{"Solana", "SOL"},
		{"usdc", "USDC"},
		{"XYZ", "XYZ"},
	}

	for _, tc := range cases {
		if got := CanonicalAsset(tc.display); got != tc.want {
			t.Errorf("CanonicalAsset(%q) = %q, want %q", tc.display, got, tc.want)
		}
	}
}
