package crawldoc

import "net/url"

// DomainFilter decides whether a URL belongs to an allowed domain set.
// A URL is allowed when its authority (host[:port]) exactly equals an
// allowed domain or ends with "." followed by one. The zero value allows
// nothing.
type DomainFilter struct {
	domains map[string]struct{}
}

// NewDomainFilter creates a filter over the given domains.
func NewDomainFilter(domains ...string) *DomainFilter {
	f := &DomainFilter{domains: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		f.Add(d)
	}
	return f
}

// Add adds a domain to the allowed set.
func (f *DomainFilter) Add(domain string) {
	if domain == "" {
		return
	}
	if f.domains == nil {
		f.domains = make(map[string]struct{})
	}
	f.domains[domain] = struct{}{}
}

// AddHost adds the authority of rawURL to the allowed set.
// Malformed URLs are ignored.
func (f *DomainFilter) AddHost(rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	f.Add(u.Host)
}

// Allows reports whether rawURL's authority matches the allowed set.
// Malformed URLs never crash the caller and are simply not allowed.
func (f *DomainFilter) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Host
	if host == "" {
		return false
	}
	if _, ok := f.domains[host]; ok {
		return true
	}
	for d := range f.domains {
		if len(host) > len(d)+1 && host[len(host)-len(d)-1] == '.' && host[len(host)-len(d):] == d {
			return true
		}
	}
	return false
}

// Domains returns the allowed domains in unspecified order.
func (f *DomainFilter) Domains() []string {
	out := make([]string, 0, len(f.domains))
	for d := range f.domains {
		out = append(out, d)
	}
	return out
}
