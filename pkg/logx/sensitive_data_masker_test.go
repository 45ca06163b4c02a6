package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"telco_churn/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Customer identifier",
			input:  []byte(`{"customerID":"7590-VHVEG","tenure":1}`),
			output: []byte(`{"customerID":"[MASKED]","tenure":1}`),
		},
		{
			name:   "Bot token in url",
			input:  []byte(`POST /bot123456:AAH-abc_def/sendMessage HTTP/1.1`),
			output: []byte(`POST /bot[MASKED]/sendMessage HTTP/1.1`),
		},
		{
			name:   "Customer features untouched",
			input:  []byte(`{"gender":"Female","Contract":"Month-to-month","MonthlyCharges":70.35}`),
			output: []byte(`{"gender":"Female","Contract":"Month-to-month","MonthlyCharges":70.35}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
