package app

import (
	"github.com/runesight/runesight/cmd/application"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
