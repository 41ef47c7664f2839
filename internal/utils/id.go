package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewUserID returns an opaque id with a time suffix to aid debugging,
// e.g. user_1b4e28ba-2fa1-11d2-883f-0016d3cca427_1735689600.
func NewUserID() string {
	return fmt.Sprintf("user_%s_%d", uuid.New().String(), time.Now().Unix())
}
