package runtime

import (
	"fmt"
	"io"
	"strconv"
)

// Upload marks a binary stream for transmission per the GraphQL multipart
// request specification. Variables reference uploads by *Upload; the same
// pointer bound at several argument paths is sent once and mapped to every
// path. Upload is a deliberate capability marker: the client never inspects
// a generic reader for "binary mode".
type Upload struct {
	File        io.Reader
	Filename    string
	ContentType string
}

// fileMap records, per distinct upload, the dotted variable paths at which
// it occurs, preserving encounter order for index assignment.
type fileMap struct {
	order []*Upload
	paths map[*Upload][]string
}

func newFileMap() *fileMap {
	return &fileMap{paths: make(map[*Upload][]string)}
}

func (f *fileMap) add(u *Upload, path string) {
	if _, ok := f.paths[u]; !ok {
		f.order = append(f.order, u)
	}
	f.paths[u] = append(f.paths[u], path)
}

func (f *fileMap) empty() bool { return len(f.order) == 0 }

// indexPaths returns the multipart "map" field: file index to the list of
// paths where that file occurs.
func (f *fileMap) indexPaths() map[string][]string {
	m := make(map[string][]string, len(f.order))
	for i, u := range f.order {
		m[strconv.Itoa(i)] = f.paths[u]
	}
	return m
}

// extractFiles walks v depth-first with a dotted path accumulator, records
// every *Upload in files and returns a copy of v with each upload replaced
// by nil. Sequences extend the path with ".<index>", mappings with ".<key>";
// uploads are not recursed into; any other value is returned unchanged.
func extractFiles(path string, v any, files *fileMap) any {
	switch x := v.(type) {
	case []any:
		nulled := make([]any, len(x))
		for i, item := range x {
			nulled[i] = extractFiles(fmt.Sprintf("%s.%d", path, i), item, files)
		}
		return nulled
	case map[string]any:
		nulled := make(map[string]any, len(x))
		for _, key := range sortedKeys(x) {
			nulled[key] = extractFiles(path+"."+key, x[key], files)
		}
		return nulled
	case *Upload:
		files.add(x, path)
		return nil
	}
	return v
}
