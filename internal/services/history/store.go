// Package history keeps a searchable record of computed health scores in
// Elasticsearch so trends can be charted per tenant.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bizcoach-workers/internal/common/errors"
	"bizcoach-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// IndexMapping is applied when the history index is created.
const IndexMapping = `{
	"mappings": {
		"properties": {
			"id":           {"type": "keyword"},
			"tenantId":     {"type": "keyword"},
			"overallScore": {"type": "integer"},
			"breakdown":    {"type": "object"},
			"status":       {"type": "keyword"},
			"metricsUsed":  {"type": "integer"},
			"recordedAt":   {"type": "date"}
		}
	}
}`

type Store struct {
	client *elasticsearch.Client
	index  string
}

func NewStore(client *elasticsearch.Client, index string) *Store {
	return &Store{client: client, index: index}
}

func (s *Store) Index() string {
	return s.index
}

// Save indexes snap under its ID. Refresh is requested so a following query
// in the same process instance sees it.
func (s *Store) Save(ctx context.Context, snap models.HealthSnapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return errors.NewInternalError(err)
	}

	res, err := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: snap.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "wait_for",
	}.Do(ctx, s.client)
	if err != nil {
		return errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewHistoryIndexFailedError(s.index, fmt.Errorf("%s", res.String()))
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.HealthSnapshot `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Query returns the tenant's snapshots recorded at or after since, newest
// first, at most size of them, plus the total number of matches.
func (s *Store) Query(ctx context.Context, tenantID string, since time.Time, size int) ([]models.HealthSnapshot, int64, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"tenantId": tenantID}},
					map[string]interface{}{"range": map[string]interface{}{
						"recordedAt": map[string]interface{}{"gte": since.UTC().Format(time.RFC3339)},
					}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"recordedAt": map[string]interface{}{"order": "desc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}

	res, err := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}.Do(ctx, s.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, 0, errors.NewTimeoutError("elasticsearch", err)
		}
		return nil, 0, errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, 0, errors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, 0, errors.NewHistoryQueryFailedError(s.index, fmt.Errorf("%s", res.String()))
	}

	var decoded searchResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, 0, errors.NewHistoryQueryFailedError(s.index, err)
	}

	out := make([]models.HealthSnapshot, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, decoded.Hits.Total.Value, nil
}
