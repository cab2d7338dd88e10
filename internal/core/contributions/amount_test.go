package contributions_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "25000", want: "25000"},
		{in: " 12.34 ", want: "12.34"},
		{in: "12,5", want: "12.5"},
		{in: ".75", want: "0.75"},
		{in: "0.01", want: "0.01"},
		{in: "", wantErr: contributions.ErrAmountMissing},
		{in: "   ", wantErr: contributions.ErrAmountMissing},
		{in: "12.345", wantErr: contributions.ErrAmountPrecision},
		{in: "12.", wantErr: contributions.ErrAmountMalformed},
		{in: "1,000.50", wantErr: contributions.ErrAmountMalformed},
		{in: "+5", wantErr: contributions.ErrAmountMalformed},
		{in: "-5", wantErr: contributions.ErrAmountMalformed},
		{in: "1e3", wantErr: contributions.ErrAmountMalformed},
		{in: ".", wantErr: contributions.ErrAmountMalformed},
		{in: "9999999999999999.99", want: "9999999999999999.99"},
		{in: "0009999999999999999", want: "9999999999999999"},
		{in: "10000000000000000", wantErr: contributions.ErrAmountMalformed},
		{in: "123456789012345678.5", wantErr: contributions.ErrAmountMalformed},
		{in: "0", wantErr: contributions.ErrAmountNotPositive},
		{in: "0.00", wantErr: contributions.ErrAmountNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := contributions.ParseAmount(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestResolveAmount_TextTakesPrecedence(t *testing.T) {
	numeric := decimal.NewFromInt(99)

	got, err := contributions.ResolveAmount(domain.ContributionInput{Amount: &numeric, AmountText: "10.50"})

	require.NoError(t, err)
	assert.Equal(t, "10.5", got.String())
}

func TestResolveAmount_NumericPrecisionIsNotLimited(t *testing.T) {
	numeric := decimal.RequireFromString("10.125")

	got, err := contributions.ResolveAmount(domain.ContributionInput{Amount: &numeric})

	require.NoError(t, err)
	assert.True(t, numeric.Equal(got))
}

func TestResolveAmount_NumericIntegerDigitsAreLimited(t *testing.T) {
	fits := decimal.RequireFromString("9999999999999999.999")
	tooLarge := decimal.RequireFromString("10000000000000000")

	got, err := contributions.ResolveAmount(domain.ContributionInput{Amount: &fits})
	require.NoError(t, err)
	assert.True(t, fits.Equal(got))

	_, err = contributions.ResolveAmount(domain.ContributionInput{Amount: &tooLarge})
	assert.ErrorIs(t, err, contributions.ErrAmountMalformed)
}
