package fsm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-finance-backend/internal/domain/errs"
)

type light string

const (
	red    light = "red"
	green  light = "green"
	yellow light = "yellow"
)

var lights = Table[light]{
	red:    {green},
	green:  {yellow},
	yellow: {red},
}

func TestTable_Allows(t *testing.T) {
	assert.True(t, lights.Allows(red, green))
	assert.True(t, lights.Allows(yellow, red))
	assert.False(t, lights.Allows(red, yellow))
	assert.False(t, lights.Allows("blue", red))
}

func TestTable_Check(t *testing.T) {
	require.NoError(t, lights.Check("light", green, yellow))

	err := lights.Check("light", green, red)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrIllegalTransition))

	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "light", te.Entity)
	assert.Equal(t, "green", te.From)
	assert.Equal(t, "red", te.To)
	assert.Equal(t, `light: cannot move from "green" to "red"`, err.Error())
}
