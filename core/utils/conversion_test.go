package utils_test

import (
	"testing"

	"brother-bridge/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 600, utils.ToInt(600))
	assert.Equal(t, 600, utils.ToInt("600"))
	assert.Equal(t, 600, utils.ToInt(float64(600)))
	assert.Equal(t, 600, utils.ToInt([]byte("600")))
	assert.Equal(t, 0, utils.ToInt("not a number"))
}

func TestToUint8(t *testing.T) {
	assert.Equal(t, uint8(178), utils.ToUint8(178))
	assert.Equal(t, uint8(178), utils.ToUint8("178"))
	assert.Equal(t, uint8(255), utils.ToUint8(300))
	assert.Equal(t, uint8(0), utils.ToUint8(-5))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "QL-820NWB", utils.ToString("QL-820NWB"))
	assert.Equal(t, "62", utils.ToString([]byte("62")))
	assert.Equal(t, "270", utils.ToString(270))
}

func TestToBool(t *testing.T) {
	assert.True(t, utils.ToBool(true))
	assert.True(t, utils.ToBool(1))
	assert.True(t, utils.ToBool("true"))
	assert.True(t, utils.ToBool("True"))
	assert.True(t, utils.ToBool("1"))
	assert.False(t, utils.ToBool("0"))
	assert.False(t, utils.ToBool(nil))
}
