package store

import "sort"

// Registry is the durable set of document identifiers that have already been
// turned into ledger rows. A registered document is skipped on later runs; a
// document that failed mid-processing is never registered and will be
// retried.
type Registry struct {
	path string
	done map[string]bool
}

// OpenRegistry loads the processed-document set, starting empty if the file
// does not exist.
func OpenRegistry(path string) (*Registry, error) {
	r := &Registry{path: path, done: map[string]bool{}}
	var names []string
	if err := LoadJSON(path, &names); err != nil {
		return nil, err
	}
	for _, name := range names {
		r.done[name] = true
	}
	return r, nil
}

// Processed reports whether a document has already been ingested.
func (r *Registry) Processed(name string) bool {
	return r.done[name]
}

// MarkProcessed adds a document to the set and persists it immediately, so a
// crash between documents loses at most the document in flight.
func (r *Registry) MarkProcessed(name string) error {
	r.done[name] = true
	names := make([]string, 0, len(r.done))
	for n := range r.done {
		names = append(names, n)
	}
	sort.Strings(names)
	return SaveJSON(r.path, names)
}
