// Package meili writes building search documents to Meilisearch.
package meili

import (
	"fmt"
	"log/slog"

	meili "github.com/meilisearch/meilisearch-go"
)

// Document is the search projection of a building.
type Document struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	OsmID     int64   `json:"osmId"`
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Style     *string `json:"style"`
	Architect *string `json:"architect"`
	Levels    *int    `json:"levels"`
	YearBuilt *int    `json:"yearBuilt"`
}

var (
	filterable = []string{"kind", "style", "levels", "yearBuilt"}
	searchable = []string{"name", "address", "architect", "style"}
)

// Index is a single Meilisearch index of building documents.
type Index struct {
	client meili.ServiceManager
	uid    string
	log    *slog.Logger
}

// New creates a client for the index uid. It does not contact the server.
func New(url, apiKey, uid string, log *slog.Logger) *Index {
	return &Index{
		client: meili.New(url, meili.WithAPIKey(apiKey)),
		uid:    uid,
		log:    log.With("component", "meili", "index", uid),
	}
}

// Configure creates the index if missing and sets its attributes. Errors on
// create are logged because the index usually exists already.
func (i *Index) Configure() error {
	if _, err := i.client.CreateIndex(&meili.IndexConfig{Uid: i.uid, PrimaryKey: "id"}); err != nil {
		i.log.Debug("create index", slog.String("error", err.Error()))
	}

	index := i.client.Index(i.uid)
	attrs := make([]interface{}, len(filterable))
	for n, v := range filterable {
		attrs[n] = v
	}
	if _, err := index.UpdateFilterableAttributes(&attrs); err != nil {
		return fmt.Errorf("meili %s: filterable attributes: %w", i.uid, err)
	}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		return fmt.Errorf("meili %s: searchable attributes: %w", i.uid, err)
	}
	return nil
}

// Healthy reports whether Meilisearch answers its health endpoint.
func (i *Index) Healthy() bool {
	_, err := i.client.Health()
	return err == nil
}

// Upsert adds or replaces documents by id.
func (i *Index) Upsert(docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	if _, err := i.client.Index(i.uid).AddDocuments(docs, nil); err != nil {
		return fmt.Errorf("meili %s: add %d documents: %w", i.uid, len(docs), err)
	}
	return nil
}

// Delete removes a document by id.
func (i *Index) Delete(id string) error {
	if _, err := i.client.Index(i.uid).DeleteDocument(id, nil); err != nil {
		return fmt.Errorf("meili %s: delete %s: %w", i.uid, id, err)
	}
	return nil
}
