package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CORSOrigins lists origins allowed to call the API from a browser.
	// The dashboard SPA origin goes here; chrome-extension:// origins are
	// always accepted so the capture popup can submit jobs.
	CORSOrigins []string `env:"HTTP_CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:";"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":8080"
	}
	origins := h.CORSOrigins[:0]
	for _, o := range h.CORSOrigins {
		if o != "" {
			origins = append(origins, o)
		}
	}
	h.CORSOrigins = origins
}
