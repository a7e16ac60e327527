package testutil

import (
	"io"

	"github.com/dtroode/passkeeper/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
