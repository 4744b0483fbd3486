package pipeline

import (
	"context"
	"io"
	"time"

	onionio "github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/observability"
)

// Load reads a point set document from the file at path.
func Load(ctx context.Context, path string) (onionio.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	doc, err := onionio.ImportJSON(path)
	hooks.OnLoadComplete(ctx, path, len(doc.Nodes), time.Since(start), err)
	return doc, err
}

// Decode reads a point set document from r. source names r in hook events.
func Decode(ctx context.Context, source string, r io.Reader) (onionio.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	doc, err := onionio.ReadJSON(r)
	hooks.OnLoadComplete(ctx, source, len(doc.Nodes), time.Since(start), err)
	return doc, err
}
