package routing

// DefaultPage is served when a tenant path names no page.
const DefaultPage = "dashboard"

// Config holds routing settings loaded from the environment.
type Config struct {
	AliasPrefixes  []string `env:"ROUTING_ALIAS_PREFIXES" envSeparator:"," envDefault:"direct-access-"`
	AdminSubdomain string   `env:"ROUTING_ADMIN_SUBDOMAIN" envDefault:"admin"`
	DefaultPage    string   `env:"ROUTING_DEFAULT_PAGE" envDefault:"dashboard"`
	AssetSegments  []string `env:"ROUTING_ASSET_SEGMENTS" envSeparator:"," envDefault:"_next,static,images,favicon.ico"`
	BaseDomain     string   `env:"ROUTING_BASE_DOMAIN" envDefault:"yourapp.com"`
	DevHost        string   `env:"ROUTING_DEV_HOST" envDefault:"localhost:3000"`
}

// DefaultConfig mirrors the env defaults for callers that build a Router by hand.
func DefaultConfig() Config {
	return Config{
		AliasPrefixes:  []string{"direct-access-"},
		AdminSubdomain: "admin",
		DefaultPage:    DefaultPage,
		AssetSegments:  []string{"_next", "static", "images", "favicon.ico"},
		BaseDomain:     "yourapp.com",
		DevHost:        "localhost:3000",
	}
}
