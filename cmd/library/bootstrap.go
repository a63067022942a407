package main

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"homelibrary/internal/app"
	"homelibrary/internal/models"
	"homelibrary/internal/validation"
)

//go:embed demo.json
var demoCatalogue []byte

type seedTrack struct {
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Favorite bool   `json:"favorite"`
}

type seedAlbum struct {
	Name     string      `json:"name"`
	Year     int         `json:"year"`
	Favorite bool        `json:"favorite"`
	Tracks   []seedTrack `json:"tracks"`
}

type seedArtist struct {
	Name     string      `json:"name"`
	Grammy   bool        `json:"grammy"`
	Year     int         `json:"year"`
	Favorite bool        `json:"favorite"`
	Albums   []seedAlbum `json:"albums"`
}

type seedCatalogue struct {
	Artists []seedArtist `json:"artists"`
}

type seedCounts struct {
	Artists, Albums, Tracks int
}

// readSeed returns the catalogue in path, or the embedded demo catalogue when
// path is empty, along with a name for its source.
func readSeed(path string) (seedCatalogue, string, error) {
	raw, source := demoCatalogue, "embedded"
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return seedCatalogue{}, path, fmt.Errorf("read seed file: %w", err)
		}
		raw, source = data, path
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var cat seedCatalogue
	if err := dec.Decode(&cat); err != nil {
		return seedCatalogue{}, source, fmt.Errorf("decode seed %s: %w", source, err)
	}
	return cat, source, nil
}

// bootstrapCatalogue creates every seeded entity through the catalogue
// services, so seeded data obeys the same rules as any other write.
func bootstrapCatalogue(ctx context.Context, c *app.Catalog, cat seedCatalogue) (seedCounts, error) {
	var counts seedCounts

	for _, sa := range cat.Artists {
		artist, err := c.Artists.Create(ctx, validation.Payload{
			"name":   sa.Name,
			"grammy": sa.Grammy,
			"year":   sa.Year,
		})
		if err != nil {
			return counts, fmt.Errorf("seed artist %q: %w", sa.Name, err)
		}
		counts.Artists++
		if err := favorite(ctx, c, sa.Favorite, models.KindArtist, artist.ID); err != nil {
			return counts, err
		}

		for _, sb := range sa.Albums {
			album, err := c.Albums.Create(ctx, validation.Payload{
				"name":     sb.Name,
				"year":     sb.Year,
				"artistId": artist.ID,
			})
			if err != nil {
				return counts, fmt.Errorf("seed album %q: %w", sb.Name, err)
			}
			counts.Albums++
			if err := favorite(ctx, c, sb.Favorite, models.KindAlbum, album.ID); err != nil {
				return counts, err
			}

			for _, st := range sb.Tracks {
				track, err := c.Tracks.Create(ctx, validation.Payload{
					"name":     st.Name,
					"duration": st.Duration,
					"albumId":  album.ID,
					"artistId": artist.ID,
				})
				if err != nil {
					return counts, fmt.Errorf("seed track %q: %w", st.Name, err)
				}
				counts.Tracks++
				if err := favorite(ctx, c, st.Favorite, models.KindTrack, track.ID); err != nil {
					return counts, err
				}
			}
		}
	}

	return counts, nil
}

func favorite(ctx context.Context, c *app.Catalog, want bool, kind models.Kind, id string) error {
	if !want {
		return nil
	}
	if err := c.Favorites.Add(ctx, kind, id); err != nil {
		return fmt.Errorf("seed favorite %s %s: %w", kind, id, err)
	}
	return nil
}
