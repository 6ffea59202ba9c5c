package cmds

import (
	"fmt"
	"testing"
)

func TestVar(t *testing.T) {
	a := Var[int]("TestVar-int")
	b := Var[string]("TestVar-string")
	GlobalExecutor.MustExecute([]string{
		"TestVar-int", "42",
		"TestVar-string", "hello.b",
	})
	if *a != 42 {
		t.Fatal()
	}
	if *b != "hello.b" {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"TestVar-int.",
	})
	if *a != 0 {
		t.Fatal()
	}
}

func TestSwitch(t *testing.T) {
	foo := Switch("TestSwitch")
	GlobalExecutor.MustExecute([]string{
		"TestSwitch",
	})
	if *foo != true {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"!TestSwitch",
	})
	if *foo != false {
		t.Fatal()
	}
}

func TestCollect(t *testing.T) {
	list := Collect[string]("TestCollect")
	GlobalExecutor.MustExecute([]string{
		"TestCollect", "a.b",
		"TestCollect", "b.b",
	})
	if str := fmt.Sprintf("%v", *list); str != "[a.b b.b]" {
		t.Fatalf("got %s", str)
	}
}

func TestTypedVar(t *testing.T) {
	type Path string
	v := Var[Path]("TestTypedVar")
	GlobalExecutor.MustExecute([]string{
		"TestTypedVar", "prog.b",
	})
	if *v != "prog.b" {
		t.Fatal()
	}
}
