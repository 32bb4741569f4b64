package bridge

import "github.com/viant/mcp-obo/config"

// Options are the bridge command line flags, environment variables are read through env tags.
type Options struct {
	config.ClientFlags
}
