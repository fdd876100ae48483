//go:build !nrend_release

// Package assert provides cheap checks for programmer errors. The checks are
// compiled away when building with the 'nrend_release' tag.
package assert

import (
	"fmt"

	"github.com/bloeys/nrend/logging"
)

func T(check bool, msg string, args ...any) {
	if !check {
		logging.ErrLog.Panicln("Assert failed:", fmt.Sprintf(msg, args...))
	}
}
