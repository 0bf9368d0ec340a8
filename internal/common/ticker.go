package common

import (
	"strings"
)

// Ticker is a parsed security identifier.
type Ticker struct {
	// Code is the security code, upper-cased (e.g. "AAPL", "BHP")
	Code string
	// Exchange is the EODHD exchange code (e.g. "US", "AU", "LSE")
	Exchange string
	// Raw is the original input
	Raw string
}

// ExchangeAliases maps exchange names used in "EXCHANGE:CODE" input to EODHD exchange codes.
var ExchangeAliases = map[string]string{
	"ASX":    "AU",
	"NYSE":   "US",
	"NASDAQ": "US",
	"AMEX":   "US",
	"LSE":    "LSE",
	"TSX":    "TO",
	"XETRA":  "XETRA",
	"HKEX":   "HK",
	"EPA":    "PA",
}

// YahooSuffixes maps Yahoo Finance symbol suffixes to EODHD exchange codes, so
// symbols picked from Yahoo search suggestions resolve against EODHD.
var YahooSuffixes = map[string]string{
	"AX": "AU",
	"L":  "LSE",
	"TO": "TO",
	"V":  "V",
	"DE": "XETRA",
	"F":  "F",
	"HK": "HK",
	"PA": "PA",
	"AS": "AS",
	"SW": "SW",
	"T":  "TSE",
	"NZ": "NZ",
	"SI": "SG",
}

// ParseTicker parses a ticker in one of the forms:
//   - "AAPL" -> Code="AAPL", Exchange=defaultExchange
//   - "ASX:BHP" -> Code="BHP", Exchange="AU"
//   - "BHP.AX" -> Code="BHP", Exchange="AU" (Yahoo suffix)
//   - "BHP.AU" -> Code="BHP", Exchange="AU" (EODHD suffix)
//   - "BRK-B" -> Code="BRK-B", Exchange=defaultExchange
func ParseTicker(ticker, defaultExchange string) Ticker {
	raw := ticker
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Ticker{Raw: raw}
	}
	defaultExchange = strings.ToUpper(defaultExchange)

	if idx := strings.Index(ticker, ":"); idx > 0 {
		exchange := ticker[:idx]
		if code, ok := ExchangeAliases[exchange]; ok {
			exchange = code
		}
		return Ticker{Code: ticker[idx+1:], Exchange: exchange, Raw: raw}
	}

	if idx := strings.LastIndex(ticker, "."); idx > 0 && idx < len(ticker)-1 {
		code, suffix := ticker[:idx], ticker[idx+1:]
		if exchange, ok := YahooSuffixes[suffix]; ok {
			return Ticker{Code: code, Exchange: exchange, Raw: raw}
		}
		return Ticker{Code: code, Exchange: suffix, Raw: raw}
	}

	return Ticker{Code: ticker, Exchange: defaultExchange, Raw: raw}
}

// String returns the CODE.EXCHANGE form.
func (t Ticker) String() string {
	return t.EODHDSymbol()
}

// EODHDSymbol returns the CODE.EXCHANGE form used by the EODHD API.
func (t Ticker) EODHDSymbol() string {
	if t.Code == "" {
		return ""
	}
	if t.Exchange == "" {
		return t.Code
	}
	return t.Code + "." + t.Exchange
}

// IsZero reports whether no code was parsed.
func (t Ticker) IsZero() bool {
	return t.Code == ""
}
