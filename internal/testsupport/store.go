package testsupport

import (
	"testing"

	"aircheck/internal/catalog"
	"aircheck/internal/config"
	"aircheck/internal/logging"
)

// NewStore opens a catalog store against the test config and closes it when
// the test finishes.
func NewStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open catalog store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
