// Package host runs the tool host: it validates bearer tokens issued for its
// audience and serves the get_my_profile tool, exchanging the caller token for
// a downstream profile API token on every call. The mcp-host directory holds
// the command entry point.
package host
