package cellconfigs

import "github.com/reusee/dscope"

// Module provides the config loader and typed settings; it needs logs.Module in the same scope
type Module struct {
	dscope.Module
}
