package utils

import (
	"fmt"
	"math/rand"
)

// RandomColor returns a random "#rrggbb" color code. Colors are cosmetic
// only, collisions between tags are acceptable.
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}
