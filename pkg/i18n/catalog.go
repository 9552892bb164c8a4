package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// loadCatalogs reads every {lang}.yaml or {lang}.yml at the root of fsys.
func loadCatalogs(fsys fs.FS) (map[string]map[string]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	out := make(map[string]map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", e.Name(), err)
		}

		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, e.Name(), err)
		}

		lang := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if out[lang] == nil {
			out[lang] = make(map[string]string)
		}
		maps.Copy(out[lang], flatten(raw, ""))
	}
	return out, nil
}

func flatten(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flatten(v, fullKey))
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}
	return result
}
