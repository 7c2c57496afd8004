package pyadapter

import "testing"

func TestParseImportsFromSource(t *testing.T) {
	src := `import os
import numpy as np
from collections import OrderedDict, defaultdict as dd

def f():
    import json
`
	imports := parseImportsFromSource(src)
	if len(imports) != 4 {
		t.Fatalf("expected 4 imports, got %d: %+v", len(imports), imports)
	}
	if imports[1].ModulePath != "numpy" || imports[1].DefaultImport != "np" {
		t.Errorf("expected aliased numpy import, got %+v", imports[1])
	}
	if imports[2].ModulePath != "collections" || len(imports[2].NamedImports) != 2 {
		t.Errorf("expected 2 named imports from collections, got %+v", imports[2])
	}
	if imports[3].ModulePath != "json" {
		t.Errorf("expected nested json import, got %+v", imports[3])
	}
}
