package lspadapter

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MergeInitializationOptions layers extra per-language server settings
// (decoded from the server's ServerConfig in internal/config) onto a base
// initializationOptions JSON document, without requiring this package to
// know any given language server's options schema as a Go struct. base and
// overrides are both JSON objects; a dotted path in overrides ("deepCompletion.enable")
// is applied to the same nested path in base.
//
// gjson/sjson are used here rather than encoding/json because the
// initializationOptions payload is server-specific and untyped: patching
// arbitrary paths into an unknown JSON shape is exactly the spot-edit job
// these two libraries are built for, the same way keystorm's config
// package reaches for them wherever settings data doesn't fit a fixed Go
// type.
func MergeInitializationOptions(base []byte, overrides map[string]any) ([]byte, error) {
	if len(base) == 0 {
		base = []byte("{}")
	}
	result := string(base)
	for path, value := range overrides {
		var err error
		result, err = sjson.Set(result, path, value)
		if err != nil {
			return nil, err
		}
	}
	return []byte(result), nil
}

// InitializationOptionPaths returns every leaf path currently set in a raw
// initializationOptions JSON document, without re-marshaling the whole
// payload. Nothing in the module calls it outside its tests.
func InitializationOptionPaths(raw []byte) []string {
	var paths []string
	gjson.ParseBytes(raw).ForEach(func(key, value gjson.Result) bool {
		collectPaths(key.String(), value, &paths)
		return true
	})
	return paths
}

func collectPaths(prefix string, value gjson.Result, out *[]string) {
	if value.IsObject() {
		value.ForEach(func(key, v gjson.Result) bool {
			collectPaths(prefix+"."+key.String(), v, out)
			return true
		})
		return
	}
	*out = append(*out, prefix)
}
