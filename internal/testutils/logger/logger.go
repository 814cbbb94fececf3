package logger

import (
	"io"
	"log"
)

// Null is a logger discarding all messages. For tests.
func Null() *log.Logger {
	return log.New(io.Discard, "", 0)
}
