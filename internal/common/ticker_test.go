package common

import (
	"testing"
)

func TestParseTicker(t *testing.T) {
	tests := []struct {
		input        string
		wantCode     string
		wantExchange string
		wantEODHD    string
	}{
		// Bare codes take the default exchange
		{"AAPL", "AAPL", "US", "AAPL.US"},
		{"aapl", "AAPL", "US", "AAPL.US"},
		{"  MSFT  ", "MSFT", "US", "MSFT.US"},
		{"BRK-B", "BRK-B", "US", "BRK-B.US"},

		// Exchange-qualified with colon
		{"ASX:BHP", "BHP", "AU", "BHP.AU"},
		{"nasdaq:msft", "MSFT", "US", "MSFT.US"},
		{"LSE:VOD", "VOD", "LSE", "VOD.LSE"},
		{"XNYS:IBM", "IBM", "XNYS", "IBM.XNYS"},

		// Yahoo suffixes
		{"BHP.AX", "BHP", "AU", "BHP.AU"},
		{"VOD.L", "VOD", "LSE", "VOD.LSE"},
		{"SAP.DE", "SAP", "XETRA", "SAP.XETRA"},
		{"7203.T", "7203", "TSE", "7203.TSE"},

		// EODHD suffixes pass through
		{"BHP.AU", "BHP", "AU", "BHP.AU"},
		{"AAPL.US", "AAPL", "US", "AAPL.US"},

		// Empty input
		{"", "", "", ""},
		{"   ", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseTicker(tt.input, "us")

			if result.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", result.Code, tt.wantCode)
			}
			if result.Exchange != tt.wantExchange {
				t.Errorf("Exchange = %q, want %q", result.Exchange, tt.wantExchange)
			}
			if result.EODHDSymbol() != tt.wantEODHD {
				t.Errorf("EODHDSymbol() = %q, want %q", result.EODHDSymbol(), tt.wantEODHD)
			}
			if result.Raw != tt.input {
				t.Errorf("Raw = %q, want %q", result.Raw, tt.input)
			}
		})
	}
}

func TestTicker_IsZero(t *testing.T) {
	if !ParseTicker("", "US").IsZero() {
		t.Error("empty input should parse to a zero ticker")
	}
	if ParseTicker("AAPL", "US").IsZero() {
		t.Error("AAPL should not be a zero ticker")
	}
}
