// AngelaMos | 2026
// gateway_test.go

package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), toMinorUnits(19.99))
	assert.Equal(t, int64(5000), toMinorUnits(50))
	assert.Equal(t, int64(10), toMinorUnits(0.1))

	// 29.99 is not exactly representable in binary; rounding keeps the
	// charge at the advertised price.
	assert.Equal(t, int64(2999), toMinorUnits(29.99))
}
