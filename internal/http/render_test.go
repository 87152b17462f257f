package http

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUSD(t *testing.T) {
	cases := map[string]string{
		"0":          "$0.00",
		"1234.5":     "$1,234.50",
		"10000":      "$10,000.00",
		"0.005":      "$0.01",
		"1234567.89": "$1,234,567.89",

		"92233720368547758.08":   "$92,233,720,368,547,758.08",
		"123456789012345678.905": "$123,456,789,012,345,678.91",
		"-100000000000000000":    "-$100,000,000,000,000,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, usd(decimal.RequireFromString(in)), in)
	}
}

func TestEscapeApology(t *testing.T) {
	assert.Equal(t, "Too-Many-Shares", escapeApology("Too Many Shares"))
	assert.Equal(t, "a--b__c~q~p~h~s''", escapeApology(`a-b_c?%#/"`))
	assert.Equal(t, "must-provide-username", escapeApology("must provide username"))
}

func TestTemplatesParse(t *testing.T) {
	tmpl := loadTemplates()
	for _, name := range []string{
		"apology.html", "index.html", "buy.html", "sell.html", "quote.html", "quoted.html",
		"history.html", "login.html", "register.html", "change_password.html", "changed.html", "add_cash.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
