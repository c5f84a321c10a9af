package services

import (
	"fmt"

	"github.com/wealthx/paydesk/internal/common"
)

// invalid returns a common.ErrValidation carrying a user-facing detail.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, fmt.Sprintf(format, args...))
}
