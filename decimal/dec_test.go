package decimal

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/nexus/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDec(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    string
		wantErr *errors.Error
	}{
		"integer":              {raw: "1000", want: "1000"},
		"fraction":             {raw: "0.0999999", want: "0.0999999"},
		"trailing zeros":       {raw: "0.500", want: "0.5"},
		"smallest unit":        {raw: "0.000000000000000001", want: "0.000000000000000001"},
		"too many digits":      {raw: "0.0000000000000000001", wantErr: errors.ErrInput},
		"negative":             {raw: "-1.5", wantErr: errors.ErrUnderflow},
		"garbage":              {raw: "one", wantErr: errors.ErrInput},
		"zero":                 {raw: "0", want: "0"},
		"exponent notation ok": {raw: "5e-1", want: "0.5"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseDec(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got.String())
			}
		})
	}
}

func TestDecArithmetic(t *testing.T) {
	a := MustParseDec("0.0999999")
	b := MustParseDec("0.09")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "0.1899999", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "0.0099999", diff.String())

	_, err = b.Sub(a)
	assert.True(t, errors.ErrUnderflow.Is(err))

	prod, err := MustParseDec("1.5").Mul(MustParseDec("0.99"))
	require.NoError(t, err)
	assert.Equal(t, "1.485", prod.String())

	quo, err := MustParseDec("0.5").Quo(MustParseDec("0.99"))
	require.NoError(t, err)
	assert.Equal(t, "0.50505050505050505", quo.String())

	_, err = a.Quo(ZeroDec())
	assert.True(t, errors.ErrInput.Is(err))

	third, err := NewDecFromRatio(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "0.333333333333333333", third.String())
}

func TestDecFloorFrac(t *testing.T) {
	// 0.0999999 * 1000 = 99.9999
	earned, err := MustParseDec("0.0999999").MulUint(NewUint(1000))
	require.NoError(t, err)
	assert.Equal(t, "99.9999", earned.String())
	assert.Equal(t, NewUint(99), earned.Floor())
	assert.Equal(t, "0.9999", earned.Frac().String())

	ceil, err := earned.Ceil()
	require.NoError(t, err)
	assert.Equal(t, NewUint(100), ceil)

	whole := NewDec(90)
	assert.Equal(t, NewUint(90), whole.Floor())
	assert.True(t, whole.Frac().IsZero())
	ceil, err = whole.Ceil()
	require.NoError(t, err)
	assert.Equal(t, NewUint(90), ceil)

	back, err := earned.Floor().Dec()
	require.NoError(t, err)
	back, err = back.Add(earned.Frac())
	require.NoError(t, err)
	assert.True(t, back.Equal(earned))
}

func TestDecSqrt(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"perfect square": {in: "16", want: "4"},
		"fraction":       {in: "0.25", want: "0.5"},
		"two":            {in: "2", want: "1.414213562373095048"},
		"zero":           {in: "0", want: "0"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := MustParseDec(tc.in).Sqrt()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestDecCompare(t *testing.T) {
	a, b := MustParseDec("0.495"), MustParseDec("0.5")
	assert.True(t, a.LT(b))
	assert.True(t, b.GT(a))
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, a, MinDec(a, b))
	assert.True(t, OneDec().Equal(NewDec(1)))
}

func TestDecEncoding(t *testing.T) {
	d := MustParseDec("99.9999")

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"99.9999"`, string(raw))

	var got Dec
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, d.Equal(got))

	require.NoError(t, json.Unmarshal([]byte(`0.25`), &got))
	assert.Equal(t, "0.25", got.String())

	enc, err := d.MarshalAmino()
	require.NoError(t, err)
	assert.Equal(t, "99999900000000000000", enc)
	var fromAmino Dec
	require.NoError(t, fromAmino.UnmarshalAmino(enc))
	assert.True(t, d.Equal(fromAmino))
}
