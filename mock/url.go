package mock

import "github.com/fwojciec/surflink"

var _ surflink.URLResolver = (*URLResolver)(nil)

// URLResolver is a mock implementation of surflink.URLResolver.
type URLResolver struct {
	IsValidURLFn       func(s string) bool
	GuessContentTypeFn func(u string, strict bool) string
	JoinFn             func(base, ref string) string
	SchemeFn           func(u string) string
	HostnameFn         func(u string) string
}

func (r *URLResolver) IsValidURL(s string) bool {
	return r.IsValidURLFn(s)
}

func (r *URLResolver) GuessContentType(u string, strict bool) string {
	return r.GuessContentTypeFn(u, strict)
}

func (r *URLResolver) Join(base, ref string) string {
	return r.JoinFn(base, ref)
}

func (r *URLResolver) Scheme(u string) string {
	return r.SchemeFn(u)
}

func (r *URLResolver) Hostname(u string) string {
	return r.HostnameFn(u)
}
