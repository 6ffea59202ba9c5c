package debugs

import "github.com/reusee/dscope"

// Module provides Tap, a Starlark REPL over the final machine state; it needs logs.Module in the same scope
type Module struct {
	dscope.Module
}
