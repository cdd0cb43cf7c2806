package decimal

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/nexus/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintArithmetic(t *testing.T) {
	a, b := NewUint(50), NewUint(30)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, NewUint(80), sum)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, NewUint(20), diff)

	_, err = b.Sub(a)
	assert.True(t, errors.ErrUnderflow.Is(err))

	prod, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, "1500", prod.String())

	max := MustParseUint("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	_, err = max.Add(NewUint(1))
	assert.True(t, errors.ErrOverflow.Is(err))
	_, err = max.Mul(NewUint(2))
	assert.True(t, errors.ErrOverflow.Is(err))
	_, err = max.Dec()
	assert.True(t, errors.ErrOverflow.Is(err))

	quo, err := NewUint(7).Quo(NewUint(2))
	require.NoError(t, err)
	assert.Equal(t, NewUint(3), quo)
	_, err = a.Quo(ZeroUint())
	assert.True(t, errors.ErrInput.Is(err))

	assert.Equal(t, b, MinUint(a, b))
	assert.True(t, a.GT(b))
	assert.True(t, b.LT(a))
}

func TestParseUint(t *testing.T) {
	_, err := ParseUint("-1")
	assert.True(t, errors.ErrUnderflow.Is(err))
	_, err = ParseUint("1.5")
	assert.True(t, errors.ErrInput.Is(err))
	_, err = ParseUint("115792089237316195423570985008687907853269984665640564039457584007913129639936")
	assert.True(t, errors.ErrOverflow.Is(err))

	n, ok := MustParseUint("1000").Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(1000), n)
}

func TestUintJSON(t *testing.T) {
	var u Uint
	require.NoError(t, json.Unmarshal([]byte(`"1000"`), &u))
	assert.Equal(t, NewUint(1000), u)
	require.NoError(t, json.Unmarshal([]byte(`42`), &u))
	assert.Equal(t, NewUint(42), u)

	raw, err := json.Marshal(NewUint(7))
	require.NoError(t, err)
	assert.Equal(t, `"7"`, string(raw))
}
