package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// EventIndex mirrors events into Elasticsearch.
type EventIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewEventIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *EventIndex {
	return &EventIndex{es: es, index: index, logger: logger}
}

type eventDoc struct {
	ID            entity.ID `json:"event_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	EventDate     string    `json:"event_date"`
	CategoryName  string    `json:"category_name"`
	LocationName  string    `json:"location_name"`
	BuildingName  string    `json:"building_name"`
	OrganizerName string    `json:"organizer_name"`
	IsActive      bool      `json:"is_active"`
	IsPublic      bool      `json:"is_public"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toDoc(e *entity.Event) eventDoc {
	return eventDoc{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		EventDate:     e.EventDate.Format("2006-01-02"),
		CategoryName:  e.CategoryName,
		LocationName:  e.LocationName,
		BuildingName:  e.BuildingName,
		OrganizerName: e.OrganizerName,
		IsActive:      e.IsActive,
		IsPublic:      e.IsPublic,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (x *EventIndex) IndexEvent(ctx context.Context, e *entity.Event) error {
	b, err := json.Marshal(toDoc(e))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: e.ID.String(), Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *EventIndex) RemoveEvent(ctx context.Context, id entity.ID) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id.String()}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// buildSearchQuery matches q against the text fields and keeps only
// documents that would appear in the public listing.
func buildSearchQuery(q string, size int) map[string]any {
	return map[string]any{
		"size":    size,
		"_source": []string{"event_id"},
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     q,
						"fields":    []string{"title^3", "description", "category_name^2", "location_name", "building_name", "organizer_name"},
						"fuzziness": "AUTO",
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"is_active": true}},
					map[string]any{"term": map[string]any{"is_public": true}},
				},
			},
		},
	}
}

// SearchEvents returns matching event ids, best match first.
func (x *EventIndex) SearchEvents(ctx context.Context, q string, size int) ([]entity.ID, error) {
	b, err := json.Marshal(buildSearchQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return []entity.ID{}, nil
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID entity.ID `json:"event_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.ID, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if h.Source.ID.Valid() {
			out = append(out, h.Source.ID)
		}
	}
	return out, nil
}
