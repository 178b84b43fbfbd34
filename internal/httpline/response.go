package httpline

import "fmt"

// RootBody is served for "/"; every other path gets the plain-text echo.
const RootBody = "<html><body><h1>Hello World!</h1></body></html>"

const echoPrefix = "Path: "

// BuildResponse maps a parsed path to one of the two fixed responses. An
// empty path (fewer than three tokens parsed) deterministically takes the
// echo branch with an empty suffix, which is what the original server did
// with its zeroed path buffer. Content-Length is always the exact body size.
func BuildResponse(path string) []byte {
	if path == "/" {
		return format("text/html", RootBody)
	}
	return format("text/plain", echoPrefix+path)
}

// ResponseKind labels a path for metrics: "root" or "echo".
func ResponseKind(path string) string {
	if path == "/" {
		return "root"
	}
	return "echo"
}

func format(contentType, body string) []byte {
	return []byte(fmt.Sprintf(
		"HTTP/1.1 200 OK\r\nContent-Type: %s\r\nContent-Length: %d\r\n\r\n%s",
		contentType, len(body), body))
}
