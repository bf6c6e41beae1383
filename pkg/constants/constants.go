package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	// EnvPrefix is prepended to every environment override, e.g. REALTY_DATABASE_URI.
	EnvPrefix = "REALTY"

	ServiceName = "realty_backend"
)

// Collection names.
const (
	CollectionBlogs    = "blogs"
	CollectionProducts = "products"
	CollectionContacts = "contacts"
	CollectionProjects = "projects"
	CollectionAdmins   = "admins"
)

const (
	// AuthCookieName is the http-only cookie carrying the admin token.
	AuthCookieName = "token"

	// LocaleCookieName matches the cookie written by the website's locale switcher.
	LocaleCookieName = "NEXT_LOCALE"
)
