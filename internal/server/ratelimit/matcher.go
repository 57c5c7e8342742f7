package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil when no configuration applies. Paths ending in "/" match by
// prefix, so "/admin/trends/" covers "/admin/trends/{entity}".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks and API docs are never limited
	if method == "GET" && (path == "/health" || strings.HasPrefix(path, "/swagger/")) {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}

// resolve returns the effective endpoint configuration for a request,
// falling back to the global default.
func (c *Config) resolve(path, method string) *EndpointConfig {
	if ec := MatchEndpoint(path, method, c.EndpointConfigs); ec != nil {
		return ec
	}
	return &EndpointConfig{
		Limit:  c.DefaultLimit,
		Window: c.DefaultWindow,
		Burst:  c.DefaultLimit,
	}
}

// screen applies the enable flag and the allow/deny lists. ok is false when
// the caller must go on to count the request.
func (c *Config) screen(clientID string) (allowed bool, info Info, ok bool) {
	switch {
	case !c.Enabled, c.Whitelist[clientID]:
		return true, Info{Allowed: true}, true
	case c.Blacklist[clientID]:
		return false, Info{Allowed: false}, true
	}
	return false, Info{}, false
}
