package web

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
)

//go:embed assets
var assets embed.FS

// script returns the renderer script, minified once per process.
var script = sync.OnceValues(func() ([]byte, error) {
	src, err := assets.ReadFile("assets/app.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read renderer script: %w", err)
	}
	return minify(src)
})

func minify(src []byte) ([]byte, error) {
	result := api.Transform(string(src), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2017,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, len(result.Errors))
		for i, m := range result.Errors {
			msgs[i] = m.Text
		}
		return nil, fmt.Errorf("failed to minify renderer script: %s", strings.Join(msgs, "; "))
	}
	return result.Code, nil
}

func indexPage() ([]byte, error) {
	return assets.ReadFile("assets/index.html")
}
