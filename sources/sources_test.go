package sources

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/celltape/configs"
	"github.com/reusee/celltape/logs"
	"github.com/reusee/celltape/modes"
	"github.com/reusee/celltape/nets"
	"github.com/reusee/dscope"
)

func TestLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello.b" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "+++.")
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.b")
	if err := os.WriteFile(path, []byte("[-]"), 0644); err != nil {
		t.Fatal(err)
	}

	dscope.New(
		modes.ForTest(t),
		new(logs.Module),
		new(nets.Module),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Fork(
		func() Stdin {
			return strings.NewReader(",.")
		},
	).Call(func(
		load Load,
	) {
		ctx := t.Context()

		src, err := load(ctx, path)
		if err != nil {
			t.Fatal(err)
		}
		if src != "[-]" {
			t.Fatalf("got %q", src)
		}

		src, err = load(ctx, "-")
		if err != nil {
			t.Fatal(err)
		}
		if src != ",." {
			t.Fatalf("got %q", src)
		}

		src, err = load(ctx, server.URL+"/hello.b")
		if err != nil {
			t.Fatal(err)
		}
		if src != "+++." {
			t.Fatalf("got %q", src)
		}

		_, err = load(ctx, server.URL+"/missing.b")
		if err == nil || !strings.Contains(err.Error(), "404") {
			t.Fatalf("got %v", err)
		}

		_, err = load(ctx, filepath.Join(dir, "missing.b"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("got %v", err)
		}
	})
}
