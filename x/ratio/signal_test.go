package ratio

import (
	"testing"

	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/nexustest/assert"
)

func TestComputeSignal(t *testing.T) {
	// a = 0.5·50/100² = 0.0025
	// c = 10 + sqrt(2·50) = 20
	// d = 0.5·10·sqrt(2/50) / (2·20²) = 0.00125
	// e = 0.00125·(50/50)·priceY/priceX
	curve := Curve{
		BaseRatio:     dec("0.5"),
		TotalBond:     decimal.NewUint(100),
		Bond:          decimal.NewUint(50),
		TotalWeight:   decimal.NewUint(10),
		Weight:        decimal.NewUint(0),
		Amplification: decimal.NewUint(2),
		Boosted:       decimal.NewUint(50),
	}

	cases := map[string]struct {
		curve   Curve
		priceY  decimal.Dec
		priceX  decimal.Dec
		want    Signal
		wantErr *errors.Error
	}{
		"balanced": {curve: curve, priceY: dec("3"), priceX: dec("1"), want: Zero},
		"bond is more valuable": {
			curve: curve, priceY: dec("2"), priceX: dec("1"), want: Positive,
		},
		"boost is more valuable": {
			curve: curve, priceY: dec("4"), priceX: dec("1"), want: Negative,
		},
		"nothing bonded": {
			curve:  Curve{TotalBond: decimal.NewUint(10), Boosted: decimal.NewUint(1)},
			priceY: dec("1"), priceX: dec("1"), want: Zero,
		},
		"zero price": {curve: curve, priceY: dec("1"), priceX: decimal.ZeroDec(), wantErr: errors.ErrInput},
		"bond greater than total": {
			curve:  Curve{TotalBond: decimal.NewUint(1), Bond: decimal.NewUint(2), Boosted: decimal.NewUint(1)},
			priceY: dec("1"), priceX: dec("1"), wantErr: errors.ErrState,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ComputeSignal(tc.curve, tc.priceY, tc.priceX)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
