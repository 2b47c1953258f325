package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type color string

var (
	red  = New(color("red"))
	blue = New(color("blue"))
)

func TestToEnum(t *testing.T) {
	v, err := ToEnum[color]("red")
	require.NoError(t, err)
	require.Equal(t, red, v)

	_, err = ToEnum[color]("green")
	require.ErrorContains(t, err, "[blue red]")

	type unknown string
	_, err = ToEnum[unknown]("red")
	require.Error(t, err)
}

func TestValues(t *testing.T) {
	require.Equal(t, []color{blue, red}, Values[color]())

	type shade string
	require.Empty(t, Values[shade]())
}
