package tools_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/petasbytes/wardrobe-agent/internal/catalog"
	"github.com/petasbytes/wardrobe-agent/internal/upstream"
	"github.com/petasbytes/wardrobe-agent/internal/weather"
	"github.com/petasbytes/wardrobe-agent/tools"
)

// upstreamServer serves fixed weather and catalog responses keyed by path.
func upstreamServer(t *testing.T, weatherStatus int, weatherBody, productsBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(weatherStatus)
		_, _ = w.Write([]byte(weatherBody))
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(productsBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// liveRegistry wires the real clients against srv.
func liveRegistry(srv *httptest.Server) []tools.ToolDefinition {
	f := upstream.NewFetcher(srv.Client())
	return tools.Registry(tools.Deps{
		Weather: weather.NewClient(srv.URL, "k", f, zerolog.Nop()),
		Catalog: catalog.NewClient(srv.URL, f, 10, zerolog.Nop()),
	})
}

func mustFind(t *testing.T, defs []tools.ToolDefinition, name string) *tools.ToolDefinition {
	t.Helper()
	def, ok := tools.Find(defs, name)
	if !ok {
		t.Fatalf("tool %q not registered", name)
	}
	return def
}

type fakeWeather struct {
	rec  weather.Record
	err  error
	city string
}

func (f *fakeWeather) Lookup(_ context.Context, city string) (weather.Record, error) {
	f.city = city
	return f.rec, f.err
}

type fakeCatalog struct {
	res   catalog.Result
	err   error
	query string
	limit int
}

func (f *fakeCatalog) Search(_ context.Context, query string, limit int) (catalog.Result, error) {
	f.query, f.limit = query, limit
	if f.err != nil {
		return catalog.Result{}, f.err
	}
	r := f.res
	r.Query = query
	return r, nil
}
