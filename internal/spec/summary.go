package spec

// TagPath is one path entry under a tag, with every method the path declares
// for that tag. A path reappearing under the same tag via another method is
// recorded once with the method appended, not duplicated.
type TagPath struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// Summary is the aggregate view of a document.
type Summary struct {
	Title          string               `json:"title"`
	Version        string               `json:"version"`
	Description    string               `json:"description"`
	OpenAPIVersion string               `json:"openapi_version"`
	PathCount      int                  `json:"path_count"`
	OperationCount int                  `json:"operation_count"`
	SchemaCount    int                  `json:"schema_count"`
	Paths          []string             `json:"paths"`
	SchemaNames    []string             `json:"schemas"`
	Servers        []string             `json:"servers"`
	PathsByTag     map[string][]TagPath `json:"paths_by_tag"`
}

// Summarize derives the aggregate metadata for the document. Its operation
// count always equals the length of Operations() before any filtering.
func (d *Document) Summarize() Summary {
	info := d.Info()
	paths := d.RawPaths()

	operationCount := 0
	pathsByTag := make(map[string][]TagPath)

	for _, path := range d.PathKeys() {
		pathItem, ok := paths[path].(map[string]interface{})
		if !ok {
			continue
		}
		for _, method := range httpMethods {
			op, ok := pathItem[method].(map[string]interface{})
			if !ok {
				continue
			}
			operationCount++

			for _, tag := range normalizeTags(op) {
				entries := pathsByTag[tag]
				found := false
				for i := range entries {
					if entries[i].Path == path {
						entries[i].Methods = append(entries[i].Methods, method)
						found = true
						break
					}
				}
				if !found {
					entries = append(entries, TagPath{Path: path, Methods: []string{method}})
				}
				pathsByTag[tag] = entries
			}
		}
	}

	title := getString(info, "title")
	if title == "" {
		title = "Untitled API"
	}
	version := getString(info, "version")
	if version == "" {
		version = "1.0.0"
	}

	return Summary{
		Title:          title,
		Version:        version,
		Description:    getString(info, "description"),
		OpenAPIVersion: d.Version(),
		PathCount:      len(paths),
		OperationCount: operationCount,
		SchemaCount:    len(d.Schemas()),
		Paths:          d.PathKeys(),
		SchemaNames:    d.SchemaNames(),
		Servers:        d.Servers(),
		PathsByTag:     pathsByTag,
	}
}
