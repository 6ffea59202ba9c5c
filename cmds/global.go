package cmds

import (
	"fmt"
	"os"
)

var GlobalExecutor = NewExecutor()

func init() {
	Define("-h", Func(func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags]\n", os.Args[0])
		GlobalExecutor.PrintUsage(os.Stderr)
		os.Exit(0)
	}).Desc("print this usage").Alias("-help", "--help"))
}

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Execute runs the global executor and exits with status 2 on bad flags
func Execute(args []string) {
	if err := GlobalExecutor.Execute(args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		GlobalExecutor.PrintUsage(os.Stderr)
		os.Exit(2)
	}
}
