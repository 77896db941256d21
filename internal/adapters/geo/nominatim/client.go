// Package nominatim implementa clinics.Geocoder sobre la API /search de
// OpenStreetMap Nominatim.
package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"petify/internal/domain/clinics"
	"petify/internal/platform/httpclient"
)

const maxLimit = 50

type Client struct {
	http *httpclient.Client
}

func New(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// place es la forma cruda de un resultado jsonv2.
type place struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]clinics.Place, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var raw []place
	if err := c.http.GetJSON(ctx, "/search", q, &raw); err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}

	out := make([]clinics.Place, 0, len(raw))
	for _, p := range raw {
		lat, err := strconv.ParseFloat(p.Lat, 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(p.Lon, 64)
		if err != nil {
			continue
		}
		out = append(out, clinics.Place{
			Name:    placeName(p),
			Address: strings.TrimSpace(p.DisplayName),
			Lat:     lat,
			Lng:     lng,
		})
	}
	return out, nil
}

// placeName usa `name`; si viene vacío, el primer segmento de display_name.
func placeName(p place) string {
	if n := strings.TrimSpace(p.Name); n != "" {
		return n
	}
	first, _, _ := strings.Cut(p.DisplayName, ",")
	return strings.TrimSpace(first)
}
