package message

import (
	"strconv"
	"strings"
)

// Pair is one key/value element of a Params list.
type Pair struct {
	Key   string
	Value string
}

// Params is an ordered list of key/value pairs, used for both query
// parameters and captured path segments. Duplicate keys are allowed;
// Get returns the first match.
type Params []Pair

// Get returns the first value bound to key.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Add appends a pair, preserving order.
func (p *Params) Add(key, value string) {
	*p = append(*p, Pair{Key: key, Value: value})
}

// encodeQuery renders "?k=v&k2=v2", or "" when p is empty.
func (p Params) encodeQuery() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, kv := range p {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
	}
	return b.String()
}

// ParseQuery decodes a raw query string into ordered pairs by splitting on
// "&" and then each piece on its first "=". A piece without "=" fails the
// whole parse; the caller is expected to abort its own parse in turn.
func ParseQuery(query string) (Params, error) {
	pieces := strings.Split(query, "&")
	params := make(Params, 0, len(pieces))
	for _, piece := range pieces {
		key, value, ok := strings.Cut(piece, "=")
		if !ok {
			return nil, newParseError("query pair "+strconv.Quote(piece)+" has no separator", 0)
		}
		params = append(params, Pair{Key: key, Value: value})
	}
	return params, nil
}

// URL is a decomposed request-target. Absent components are empty strings;
// an absent port is 0.
type URL struct {
	Scheme   string
	Username string
	Password string
	Host     string
	Port     uint16
	Path     string
	Query    Params
	Fragment string
}

// ParseURL decomposes a request-target string. Components are stripped left
// to right: "scheme://", "user:pass@", a trailing "#fragment", a trailing
// "?query", then everything before the first "/" is host[:port] and the
// rest, slash included, is the path.
//
// A malformed query aborts the whole parse. A non-numeric or out-of-range
// port does not: it silently becomes 0. That asymmetry is deliberate and
// matches the reference behavior.
func ParseURL(text string) (*URL, error) {
	u := &URL{}
	rest := text

	if scheme, after, ok := strings.Cut(rest, "://"); ok {
		u.Scheme = scheme
		rest = after
	}
	if userinfo, after, ok := strings.Cut(rest, "@"); ok {
		u.Username, u.Password, _ = strings.Cut(userinfo, ":")
		rest = after
	}
	if before, fragment, ok := strings.Cut(rest, "#"); ok {
		u.Fragment = fragment
		rest = before
	}
	if before, query, ok := strings.Cut(rest, "?"); ok {
		params, err := ParseQuery(query)
		if err != nil {
			return nil, err
		}
		u.Query = params
		rest = before
	}

	hostport := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		hostport, u.Path = rest[:i], rest[i:]
	}
	host, port, hasPort := strings.Cut(hostport, ":")
	u.Host = host
	if hasPort {
		if n, err := strconv.ParseUint(port, 10, 16); err == nil {
			u.Port = uint16(n)
		}
	}
	return u, nil
}

// String renders the URL as the exact structural inverse of ParseURL:
// each component appears only when present, so parser output reformats
// to the original text.
func (u *URL) String() string {
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteString("://")
	}
	if u.Username != "" {
		b.WriteString(u.Username)
		if u.Password != "" {
			b.WriteByte(':')
			b.WriteString(u.Password)
		}
		b.WriteByte('@')
	}
	b.WriteString(u.Host)
	if u.Port != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(u.Port), 10))
	}
	b.WriteString(u.Path)
	b.WriteString(u.Query.encodeQuery())
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}
