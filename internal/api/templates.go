package api

import (
	"html/template"
	"io/fs"
)

// LoadTemplates parses layouts, pages and partials from fsys. Each page
// defines a template named after its path, e.g. "pages/register.html".
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		// percent renders part/total as a whole percentage.
		"percent": func(part, total int) int {
			if total == 0 {
				return 0
			}
			return part * 100 / total
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		"templates/layouts/*.html",
		"templates/pages/*.html",
		"templates/partials/*.html",
	}
	for _, p := range patterns {
		if matches, _ := fs.Glob(fsys, p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseFS(fsys, p); err != nil {
			return nil, err
		}
	}

	return t, nil
}
