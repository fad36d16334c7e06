package node

import (
	"fmt"
	"strings"
)

const (
	errPrefix = "[error]"
	okPrefix  = "[ok]"
)

// WrapError - wrapping error with prefix '[error]'.
func WrapError(err error) string {
	return fmt.Sprintf("%s %v", errPrefix, err)
}

// WrapOK - wrapping message with prefix '[ok]'.
func WrapOK(msg string) string {
	if msg == "" {
		return okPrefix
	}

	return fmt.Sprintf("%s %s", okPrefix, msg)
}

// IsError - check the prefix '[error]' exists.
func IsError(val string) bool {
	return strings.HasPrefix(val, errPrefix)
}

// CutError - cut prefix '[error]'.
func CutError(val string) (string, bool) {
	msg, ok := strings.CutPrefix(val, errPrefix)
	return strings.TrimSpace(msg), ok
}

// CutOK - cut prefix '[ok]'.
func CutOK(val string) (string, bool) {
	msg, ok := strings.CutPrefix(val, okPrefix)
	return strings.TrimSpace(msg), ok
}
