package sqlinline

import (
	"testing"

	"adstudio/internal/infra"
)

func TestCatalogQueriesCarryUniqueMarkers(t *testing.T) {
	queries := map[string]string{
		"QEnsureCatalogTable": QEnsureCatalogTable,
		"QSelectCatalogEntry": QSelectCatalogEntry,
		"QUpsertCatalogEntry": QUpsertCatalogEntry,
		"QDeleteCatalogEntry": QDeleteCatalogEntry,
	}
	seen := make(map[string]string, len(queries))
	for name, q := range queries {
		marker, body, err := infra.ExtractMarker(q)
		if err != nil {
			t.Fatalf("%s: ExtractMarker returned error: %v", name, err)
		}
		if body == "" {
			t.Fatalf("%s: empty body", name)
		}
		if other, dup := seen[marker]; dup {
			t.Fatalf("%s reuses marker %s of %s", name, marker, other)
		}
		seen[marker] = name
	}
}
