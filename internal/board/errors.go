package board

import (
	"errors"

	"github.com/tartampluch/go-eventboard/internal/config"
)

// Form validation and submission errors.
var (
	ErrTitleRequired   = errors.New(config.ErrTitleRequired)
	ErrMessageRequired = errors.New(config.ErrMessageRequired)
	ErrEventRequired   = errors.New(config.ErrEventRequired)
	ErrUserRequired    = errors.New(config.ErrUserRequired)
	ErrSubmitPending   = errors.New(config.ErrSubmitPending)
)
