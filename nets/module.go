package nets

import "github.com/reusee/dscope"

// Module provides a proxy-aware HTTP client for fetching remote programs
type Module struct {
	dscope.Module
}
