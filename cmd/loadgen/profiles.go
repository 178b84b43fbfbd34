package main

import "strings"

// Profile describes one request shape to throw at the server.
type Profile struct {
	Name string
	// Path is framed as "GET <Path> HTTP/1.1\r\n\r\n" unless Raw is set.
	Path string
	// Raw is sent verbatim (e.g. a whitespace-free giant token).
	Raw string
	// AllowReset accepts a reset/failed response read: when the request is
	// larger than the server's receive buffer, the unread tail commonly
	// turns the close into a RST before the response arrives.
	AllowReset bool
}

// Profiles mirror the original task's attack sizes: normal traffic, the
// 400-byte overflow path, and a whitespace-free 10,000-byte token.
var Profiles = []Profile{
	{Name: "root", Path: "/"},
	{Name: "short-path", Path: "/status"},
	{Name: "long-path-400", Path: "/" + strings.Repeat("A", 400)},
	{Name: "giant-token-10k", Raw: strings.Repeat("A", 10000), AllowReset: true},
}
