package ctxutil

import "context"

type ctxKey int

const (
	sessionIDKey ctxKey = iota
	remoteAddrKey
)

// InjectSessionID - adds a Session ID to the context.
func InjectSessionID(parent context.Context, value string) context.Context {
	return context.WithValue(parent, sessionIDKey, value)
}

// ExtractSessionID - retrieves the Session ID from the context.
// Returns empty string if not found or invalid.
func ExtractSessionID(ctx context.Context) string {
	val, ok := ctx.Value(sessionIDKey).(string)
	if !ok {
		return ""
	}

	return val
}

// InjectRemoteAddr - adds the peer address of the connection to the context.
func InjectRemoteAddr(parent context.Context, addr string) context.Context {
	return context.WithValue(parent, remoteAddrKey, addr)
}

// ExtractRemoteAddr - retrieves the peer address from the context.
func ExtractRemoteAddr(ctx context.Context) string {
	addr, _ := ctx.Value(remoteAddrKey).(string)
	return addr
}
