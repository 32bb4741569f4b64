package host

import "github.com/viant/mcp-obo/config"

// Options are the tool host command line flags
type Options struct {
	config.ServerFlags
}
