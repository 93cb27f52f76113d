package domain

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money from fraction", func(t *testing.T) {
		m, err := NewMoney(8000, 100)
		require.NoError(t, err)
		assert.Equal(t, "80.00", m.String())
	})

	t.Run("rejects zero denominator", func(t *testing.T) {
		_, err := NewMoney(1, 0)
		assert.Error(t, err)
	})
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "49.99", want: "49.99"},
		{input: "10", want: "10.00"},
		{input: " 0.5 ", want: "0.50"},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMoney(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMoney_Round2(t *testing.T) {
	tests := []struct {
		name string
		in   *big.Rat
		want string
	}{
		{name: "rounds down below half", in: big.NewRat(26664, 1000), want: "26.66"},
		{name: "rounds half away from zero", in: big.NewRat(1005, 1000), want: "1.01"},
		{name: "negative half away from zero", in: big.NewRat(-1005, 1000), want: "-1.01"},
		{name: "exact cents unchanged", in: big.NewRat(1234, 100), want: "12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMoneyFromRat(tt.in).Round2()
			assert.Equal(t, tt.want, got.String())
			assert.True(t, got.Equals(MustParseMoney(tt.want)))
		})
	}
}

func TestMoney_Percent(t *testing.T) {
	base := Cents(8000)

	assert.Equal(t, "12.00", base.Percent(big.NewRat(15, 1)).Round2().String())
	assert.Equal(t, "26.66", base.Percent(big.NewRat(3333, 100)).Round2().String())
	assert.True(t, base.Percent(new(big.Rat)).IsZero())
}

func TestMoney_FloorZeroAndMin(t *testing.T) {
	assert.True(t, Cents(-500).FloorZero().IsZero())
	assert.Equal(t, "5.00", Cents(500).FloorZero().String())
	assert.Equal(t, "15.00", Cents(4000).Min(Cents(1500)).String())
	assert.Equal(t, "10.00", Cents(1000).Min(Cents(1500)).String())
}

func TestMoney_Immutability(t *testing.T) {
	a := Cents(1000)
	b := a.Add(Cents(500))

	assert.Equal(t, "10.00", a.String())
	assert.Equal(t, "15.00", b.String())
}

func TestMoney_JSON(t *testing.T) {
	type wrapper struct {
		Amount *Money `json:"amount"`
	}

	data, err := json.Marshal(wrapper{Amount: Cents(4134)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"41.34"}`, string(data))

	var fromString wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"7.5"}`), &fromString))
	assert.Equal(t, "7.50", fromString.Amount.String())

	var fromNumber wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"amount":12.25}`), &fromNumber))
	assert.Equal(t, "12.25", fromNumber.Amount.String())
}

func TestSum(t *testing.T) {
	assert.Equal(t, "35.00", Sum(Cents(1000), nil, Cents(2500)).String())
	assert.True(t, Sum().IsZero())
}
