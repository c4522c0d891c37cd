package places

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olivere/elastic/v7"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/ports"
)

// placeDoc mirrors the documents of a pre-loaded places index.
type placeDoc struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Tags     []string `json:"tags"`
	Location struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
}

// ElasticPlacesProvider implements PlacesProvider against an
// Elasticsearch places index; an offline alternative to the ORS POIs
// endpoint for regions with a pre-built index.
type ElasticPlacesProvider struct {
	Client *elastic.Client
	Index  string
}

func NewElasticPlacesProvider(url, index string) (*ElasticPlacesProvider, error) {
	client, err := elastic.NewClient(elastic.SetURL(url), elastic.SetSniff(false))
	if err != nil {
		return nil, fmt.Errorf("create elastic client: %w", err)
	}
	return &ElasticPlacesProvider{Client: client, Index: index}, nil
}

func (es *ElasticPlacesProvider) FindNearby(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters float64,
	keyword string,
) ([]ports.PlaceResult, error) {
	query := elastic.NewBoolQuery().
		Filter(elastic.NewGeoDistanceQuery("location").
			Point(center.Lat, center.Lon).
			Distance(fmt.Sprintf("%.0fm", radiusMeters)))
	if keyword != "" {
		query = query.Must(elastic.NewMatchQuery("name", keyword))
	}

	searchResult, err := es.Client.Search().
		Index(es.Index).
		Query(query).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(center.Lat, center.Lon).
			Asc().
			Unit("m").
			IgnoreUnmapped(true)).
		Size(200).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("elastic nearby search: %w", err)
	}

	out := make([]ports.PlaceResult, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		var doc placeDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		if doc.ID == "" {
			doc.ID = hit.Id
		}
		out = append(out, toPlaceResult(doc))
	}

	return out, nil
}

func (es *ElasticPlacesProvider) GetDetails(ctx context.Context, id string) (ports.PlaceResult, error) {
	res, err := es.Client.Get().Index(es.Index).Id(id).Do(ctx)
	if err != nil {
		return ports.PlaceResult{}, fmt.Errorf("elastic get %q: %w", id, err)
	}

	var doc placeDoc
	if err := json.Unmarshal(res.Source, &doc); err != nil {
		return ports.PlaceResult{}, fmt.Errorf("decode place %q: %w", id, err)
	}
	if doc.ID == "" {
		doc.ID = res.Id
	}

	return toPlaceResult(doc), nil
}

func toPlaceResult(doc placeDoc) ports.PlaceResult {
	return ports.PlaceResult{
		ID:      doc.ID,
		Name:    doc.Name,
		Address: doc.Address,
		Location: domain.Coordinates{
			Lat: doc.Location.Lat,
			Lon: doc.Location.Lon,
		},
		Categories: doc.Tags,
	}
}
