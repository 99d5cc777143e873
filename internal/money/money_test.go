package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestYen(t *testing.T) {
	testTable := []struct {
		name   string
		amount float64
		result string
	}{
		{name: "zero", amount: 0, result: "0 円"},
		{name: "grouping", amount: 1000000, result: "1,000,000 円"},
		{name: "fraction", amount: 10000.05, result: "10,000.05 円"},
		{name: "three digits max", amount: 0.12345, result: "0.123 円"},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.result, Yen(testCase.amount))
		})
	}
}
