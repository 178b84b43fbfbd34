package httpline

import "bytes"

// Limits carries the destination buffer capacities for the three request-line
// tokens. Each parsed token stores at most cap-1 bytes, reserving one byte the
// way the fixed C buffers reserved their terminator.
type Limits struct {
	MethodCap  int
	PathCap    int
	VersionCap int
}

// DefaultLimits matches the original server's buffer sizes.
var DefaultLimits = Limits{MethodCap: 16, PathCap: 256, VersionCap: 16}

// RequestLine is the parsed first line of a request. Missing tokens are empty
// strings; Tokens reports how many of the three were present in the input.
type RequestLine struct {
	Method    string
	Path      string
	Version   string
	Tokens    int
	Truncated bool
}

// ParseRequestLine extracts method, path, and version from the first line of
// raw. Scanning stops at the first CR or LF; anything after the first line is
// ignored. Tokens are runs of bytes separated by spaces or tabs — embedded NUL
// bytes are ordinary token bytes. Every token write is width-bounded: at most
// cap-1 bytes are kept per field, the rest is silently dropped. The function
// cannot write past any capacity for any input.
func ParseRequestLine(raw []byte, lim Limits) RequestLine {
	line := firstLine(raw)

	var rl RequestLine
	fields := [3]*string{&rl.Method, &rl.Path, &rl.Version}
	caps := [3]int{lim.MethodCap, lim.PathCap, lim.VersionCap}

	i := 0
	for f := 0; f < len(fields); f++ {
		for i < len(line) && isSep(line[i]) {
			i++
		}
		if i == len(line) {
			break
		}
		start := i
		for i < len(line) && !isSep(line[i]) {
			i++
		}
		tok, cut := clamp(line[start:i], caps[f])
		*fields[f] = tok
		rl.Tokens++
		rl.Truncated = rl.Truncated || cut
	}
	return rl
}

func firstLine(raw []byte) []byte {
	if n := bytes.IndexAny(raw, "\r\n"); n >= 0 {
		return raw[:n]
	}
	return raw
}

func isSep(b byte) bool {
	return b == ' ' || b == '\t'
}

// clamp copies at most cap-1 bytes of tok. This is the width-bounded scan the
// original parser was missing on the path token.
func clamp(tok []byte, capacity int) (string, bool) {
	max := capacity - 1
	if max < 0 {
		max = 0
	}
	if len(tok) > max {
		return string(tok[:max]), true
	}
	return string(tok), false
}
