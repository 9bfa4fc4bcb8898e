package marketdata

import "strings"

// FetchSymbol maps an asset's ticker to the symbol the provider understands.
//
// Heuristics, matching how tickers are entered by users:
//   - a 4-digit numeric ticker is a Taiwan exchange listing: "2330" → "2330.TW"
//   - a crypto ticker without a pair suffix is quoted in USD: "BTC" → "BTC-USD"
//   - anything else is passed through unchanged
func FetchSymbol(ticker string, isCrypto bool) string {
	if ticker == "" {
		return ""
	}
	if isFourDigit(ticker) {
		return ticker + ".TW"
	}
	if isCrypto && !strings.Contains(ticker, "-") {
		return ticker + "-USD"
	}
	return ticker
}

// IsLocalListing reports whether a provider symbol is quoted on the local
// exchange, i.e. already in the local currency with no FX conversion needed.
func IsLocalListing(symbol, localSuffix string) bool {
	return strings.HasSuffix(symbol, localSuffix) || isFourDigit(symbol)
}

func isFourDigit(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
