package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/reusee/celltape/nets"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

type Stdin io.Reader

func (Module) Stdin() Stdin {
	return os.Stdin
}

// Load reads program text from a file, an http(s) URL, or stdin when location is "-"
type Load func(ctx context.Context, location string) (string, error)

func (Module) Load(
	client nets.HTTPClient,
	stdin Stdin,
) Load {
	return func(ctx context.Context, location string) (string, error) {
		switch {

		case location == "-":
			content, err := io.ReadAll(stdin)
			if err != nil {
				return "", fmt.Errorf("read stdin: %w", err)
			}
			return string(content), nil

		case strings.HasPrefix(location, "http://"),
			strings.HasPrefix(location, "https://"):
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
			if err != nil {
				return "", err
			}
			resp, err := client.Do(req)
			if err != nil {
				return "", fmt.Errorf("fetch %s: %w", location, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return "", fmt.Errorf("fetch %s: %s", location, resp.Status)
			}
			content, err := io.ReadAll(resp.Body)
			if err != nil {
				return "", fmt.Errorf("fetch %s: %w", location, err)
			}
			return string(content), nil

		}

		content, err := os.ReadFile(location)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
}
