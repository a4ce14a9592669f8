// Package search indexes the menu snapshot in Elasticsearch for free-text lookup.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
)

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	slog.Info("connecting to elasticsearch", "url", url)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error response %s: %s", res.Status(), body)
	}

	return client, nil
}

type Index struct {
	es   *elasticsearch.Client
	name string
}

func NewIndex(es *elasticsearch.Client, name string) *Index {
	return &Index{es: es, name: name}
}

// Sync makes the index mirror products: every product is upserted by id and
// documents whose id is not in the snapshot are removed.
func (i *Index) Sync(ctx context.Context, products []domain.Product) error {
	if len(products) > 0 {
		if err := i.bulk(ctx, products); err != nil {
			return err
		}
	}
	return i.prune(ctx, products)
}

func (i *Index) bulk(ctx context.Context, products []domain.Product) error {
	body, err := bulkBody(i.name, products)
	if err != nil {
		return err
	}

	res, err := i.es.Bulk(bytes.NewReader(body),
		i.es.Bulk.WithContext(ctx),
		i.es.Bulk.WithIndex(i.name),
		i.es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index: %s", res.Status())
	}

	var r struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if r.Errors {
		return fmt.Errorf("bulk index: some documents were rejected")
	}
	return nil
}

// prune deletes the documents that are no longer part of the catalog. A
// missing index has nothing to prune.
func (i *Index) prune(ctx context.Context, keep []domain.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(pruneBody(keep)); err != nil {
		return fmt.Errorf("encode prune query: %w", err)
	}

	res, err := i.es.DeleteByQuery([]string{i.name}, &buf,
		i.es.DeleteByQuery.WithContext(ctx),
		i.es.DeleteByQuery.WithConflicts("proceed"),
		i.es.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return fmt.Errorf("prune index: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("prune index: %s", res.Status())
	}
	return nil
}

func pruneBody(keep []domain.Product) map[string]any {
	if len(keep) == 0 {
		return map[string]any{"query": map[string]any{"match_all": map[string]any{}}}
	}
	ids := make([]string, len(keep))
	for n, p := range keep {
		ids[n] = strconv.FormatInt(p.ID, 10)
	}
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must_not": map[string]any{"ids": map[string]any{"values": ids}},
			},
		},
	}
}

// Remove deletes one product document. Deleting an unknown id is not an error.
func (i *Index) Remove(ctx context.Context, id int64) error {
	res, err := i.es.Delete(i.name, strconv.FormatInt(id, 10),
		i.es.Delete.WithContext(ctx),
		i.es.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("delete product %d from index: %w", id, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("delete product %d from index: %s", id, res.Status())
	}
	return nil
}

func bulkBody(index string, products []domain.Product) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range products {
		meta := map[string]any{"index": map[string]any{"_index": index, "_id": strconv.FormatInt(p.ID, 10)}}
		if err := enc.Encode(meta); err != nil {
			return nil, fmt.Errorf("encode bulk meta: %w", err)
		}
		if err := enc.Encode(p); err != nil {
			return nil, fmt.Errorf("encode product %d: %w", p.ID, err)
		}
	}
	return buf.Bytes(), nil
}

func queryBody(query string, from, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}
}

func (i *Index) Search(ctx context.Context, query string, from, size int) (int64, []domain.Product, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(queryBody(query, from, size)); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.name),
		i.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source domain.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	prods := make([]domain.Product, len(r.Hits.Hits))
	for n, hit := range r.Hits.Hits {
		prods[n] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
