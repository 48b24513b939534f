package endpoint

import (
	"net/url"
	"strings"
)

const (
	productsPath = "/api/products"
	generatePath = "/api/products/generate"
	healthPath   = "/health"
	infoPath     = "/api/info"
)

// Resolver builds absolute endpoint URLs for the remote product API.
// An empty base is valid and yields paths relative to the serving origin.
type Resolver struct{ base string }

func NewResolver(base string) Resolver {
	return Resolver{base: strings.TrimRight(strings.TrimSpace(base), "/")}
}

func (r Resolver) Base() string { return r.base }

func (r Resolver) Products() string { return r.base + productsPath }

func (r Resolver) Product(id string) string {
	return r.base + productsPath + "/" + url.PathEscape(id)
}

func (r Resolver) Generate() string { return r.base + generatePath }

func (r Resolver) Health() string { return r.base + healthPath }

func (r Resolver) Info() string { return r.base + infoPath }
