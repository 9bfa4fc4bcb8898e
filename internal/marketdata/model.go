package marketdata

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. This type maps directly to the provider's response format,
// containing nested structures for metadata, timestamps, and price indicators.
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency         string `json:"currency"`
				Symbol           string `json:"symbol"`
				ExchangeName     string `json:"exchangeName"`
				FullExchangeName string `json:"fullExchangeName"`
				LongName         string `json:"longName"`
				Shortname        string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// Series is a parsed daily close-price series for one symbol.
//
// Currency is the quote currency the provider reported the prices in. The
// pricing layer tags every cached point with it so that the currency policy
// can decide per point whether an FX conversion applies, instead of guessing
// after the fact.
type Series struct {
	Symbol   string
	Currency string
	Points   []Point
}

// Point is one daily closing price. The time component of Date is midnight UTC.
type Point struct {
	Date  time.Time
	Close float64
}
