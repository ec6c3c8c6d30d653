package planner

import (
	"math"

	"github.com/dylanratti/grain/internal/model"
)

const (
	// Crypto exposure is capped hard at 10% of the invest amount no
	// matter what cap the user asks for.
	cryptoCapMaxPct = 10.0

	// Of whatever crypto leaves behind, 80% goes to broad-market ETFs
	// and the rest to bonds.
	etfShareOfRemaining = 0.8
)

// Mix splits an invest amount into crypto, ETF, and bond buckets. Crypto
// and ETF round independently, so the bucket sum may drift from the invest
// amount by at most one unit; bond only absorbs the ETF rounding remainder.
func Mix(investAmount, cryptoCapPct float64) model.InvestmentMix {
	if cryptoCapPct < 0 {
		cryptoCapPct = 0
	}
	if cryptoCapPct > cryptoCapMaxPct {
		cryptoCapPct = cryptoCapMaxPct
	}

	crypto := math.Round(investAmount * cryptoCapPct / 100)
	remaining := investAmount - crypto
	if remaining < 0 {
		remaining = 0
	}

	etf := math.Round(remaining * etfShareOfRemaining)
	bond := remaining - etf
	if bond < 0 {
		bond = 0
	}

	return model.InvestmentMix{Crypto: crypto, ETF: etf, Bond: bond}
}
