package routing

import (
	"strings"
)

// Scheme names the rule that matched a request path.
type Scheme string

const (
	SchemeRoot     Scheme = "root"
	SchemeAdmin    Scheme = "admin"
	SchemeAPI      Scheme = "api"
	SchemeAsset    Scheme = "asset"
	SchemeExplicit Scheme = "explicit"
	SchemeImplicit Scheme = "implicit"
	SchemePublic   Scheme = "public"
)

// PathResult is the outcome of PathParser.Parse.
type PathResult struct {
	Scheme Scheme
	// TenantID is the raw candidate for explicit, implicit and tenant api paths.
	TenantID string
	// Remainder is the page below the tenant segment. Explicit and implicit
	// paths fall back to the default page when nothing follows the tenant.
	Remainder string
	// Segments holds the non-empty path segments.
	Segments []string
}

type pathMatcher struct {
	scheme Scheme
	match  func(path string, segs []string) (PathResult, bool)
}

// PathParser classifies request paths with an ordered list of matchers:
// admin, root, api, asset, explicit, implicit, then public. The first match wins.
type PathParser struct {
	defaultPage string
	reserved    map[string]struct{}
	assets      map[string]struct{}
	systemAPI   map[string]struct{}
	matchers    []pathMatcher
}

// NewPathParser creates a parser. The admin, api and tenant segments are
// always reserved; asset segments are reserved too and pass through untouched.
func NewPathParser(defaultPage string, assetSegments ...string) *PathParser {
	if defaultPage == "" {
		defaultPage = DefaultPage
	}
	p := &PathParser{
		defaultPage: defaultPage,
		reserved:    map[string]struct{}{"admin": {}, "api": {}, explicitSegment: {}},
		assets:      make(map[string]struct{}, len(assetSegments)),
		systemAPI:   map[string]struct{}{"admin": {}, "debug": {}},
	}
	for _, s := range assetSegments {
		if s = strings.Trim(s, "/ "); s != "" {
			p.assets[s] = struct{}{}
			p.reserved[s] = struct{}{}
		}
	}
	p.matchers = []pathMatcher{
		{SchemeAdmin, p.matchAdmin},
		{SchemeRoot, p.matchRoot},
		{SchemeAPI, p.matchAPI},
		{SchemeAsset, p.matchAsset},
		{SchemeExplicit, p.matchExplicit},
		{SchemeImplicit, p.matchImplicit},
	}
	return p
}

const explicitSegment = "tenant"

// Parse classifies path. It never fails: anything unmatched is public.
func (p *PathParser) Parse(path string) PathResult {
	segs := splitPath(path)
	for _, m := range p.matchers {
		if res, ok := m.match(path, segs); ok {
			if res.Scheme == "" {
				res.Scheme = m.scheme
			}
			res.Segments = segs
			return res
		}
	}
	return PathResult{Scheme: SchemePublic, Segments: segs}
}

// DefaultPage returns the page used when a tenant path names no page.
func (p *PathParser) DefaultPage() string {
	return p.defaultPage
}

// Remainder joins segments into a page path, using the default page when empty.
func (p *PathParser) Remainder(segs []string) string {
	if len(segs) == 0 {
		return p.defaultPage
	}
	return strings.Join(segs, "/")
}

func (p *PathParser) matchAdmin(path string, _ []string) (PathResult, bool) {
	// Plain string prefix: /administrator is admin scope as well.
	return PathResult{}, strings.HasPrefix(path, "/admin")
}

func (p *PathParser) matchRoot(_ string, segs []string) (PathResult, bool) {
	return PathResult{}, len(segs) == 0
}

// matchAPI claims every /api/{x}/... path. System segments are reported as
// admin scope with no tenant.
func (p *PathParser) matchAPI(path string, segs []string) (PathResult, bool) {
	if len(segs) < 2 || segs[0] != "api" {
		return PathResult{}, false
	}
	if _, ok := p.systemAPI[segs[1]]; ok {
		return PathResult{Scheme: SchemeAdmin}, true
	}
	return PathResult{TenantID: segs[1], Remainder: strings.Join(segs[2:], "/")}, true
}

func (p *PathParser) matchAsset(_ string, segs []string) (PathResult, bool) {
	_, ok := p.assets[segs[0]]
	return PathResult{}, ok
}

func (p *PathParser) matchExplicit(_ string, segs []string) (PathResult, bool) {
	if len(segs) < 2 || segs[0] != explicitSegment {
		return PathResult{}, false
	}
	return PathResult{TenantID: segs[1], Remainder: p.Remainder(segs[2:])}, true
}

func (p *PathParser) matchImplicit(_ string, segs []string) (PathResult, bool) {
	if _, ok := p.reserved[segs[0]]; ok {
		return PathResult{}, false
	}
	return PathResult{TenantID: segs[0], Remainder: p.Remainder(segs[1:])}, true
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}
