package wire

// String interning for common HTTP tokens.
//
// The Go compiler optimizes map lookups with string([]byte) keys to avoid
// allocating the temporary string, so internMethod(someBytes) is zero-alloc
// for known methods.

var methods = map[string]string{
	"GET": "GET", "HEAD": "HEAD", "POST": "POST",
	"PUT": "PUT", "DELETE": "DELETE", "CONNECT": "CONNECT",
	"OPTIONS": "OPTIONS", "TRACE": "TRACE", "PATCH": "PATCH",
}

var headerNames = map[string]string{
	"Accept":           "Accept",
	"Accept-Encoding":  "Accept-Encoding",
	"Accept-Language":  "Accept-Language",
	"Authorization":    "Authorization",
	"Cache-Control":    "Cache-Control",
	"Connection":       "Connection",
	"Content-Encoding": "Content-Encoding",
	"Content-Length":   "Content-Length",
	"Content-Type":     "Content-Type",
	"Cookie":           "Cookie",
	"Date":             "Date",
	"Host":             "Host",
	"Location":         "Location",
	"Origin":           "Origin",
	"Referer":          "Referer",
	"Server":           "Server",
	"User-Agent":       "User-Agent",
	"X-Request-Id":     "X-Request-Id",
}

// internMethod returns a canonical string for known method tokens,
// falling back to a fresh copy for unknown ones.
func internMethod(b []byte) string {
	if s, ok := methods[string(b)]; ok {
		return s
	}
	return string(b)
}

// internHeaderName returns a canonical string for common header names,
// falling back to a fresh copy for unknown ones.
func internHeaderName(b []byte) string {
	if s, ok := headerNames[string(b)]; ok {
		return s
	}
	return string(b)
}
