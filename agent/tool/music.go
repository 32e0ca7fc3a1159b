package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/uptrace/bun"
)

const (
	ToolAlbumsByArtist = "music.albums_by_artist"
	ToolTracksByArtist = "music.tracks_by_artist"
	ToolTracksByGenre  = "music.tracks_by_genre"
	ToolCheckTrack     = "music.check_track"
)

func musicToolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolAlbumsByArtist,
			Desc: "Find albums in the catalog by artist name (partial matches allowed).",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"artist": {Type: schema.String, Desc: "Artist name", Required: true},
			}),
		},
		{
			Name: ToolTracksByArtist,
			Desc: "Find tracks in the catalog by artist name (partial matches allowed).",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"artist": {Type: schema.String, Desc: "Artist name", Required: true},
			}),
		},
		{
			Name: ToolTracksByGenre,
			Desc: "Find tracks in the catalog by genre name.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"genre": {Type: schema.String, Desc: "Genre name", Required: true},
			}),
		},
		{
			Name: ToolCheckTrack,
			Desc: "Check whether a track exists in the catalog by title.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"title": {Type: schema.String, Desc: "Track title", Required: true},
			}),
		},
	}
}

func executeMusicTool(ctx context.Context, db bun.IDB, tool string, args map[string]any) (any, error) {
	switch tool {
	case ToolAlbumsByArtist:
		artist, err := stringArg(args, "artist")
		if err != nil {
			return nil, err
		}
		return albumsByArtist(ctx, db, artist)
	case ToolTracksByArtist:
		artist, err := stringArg(args, "artist")
		if err != nil {
			return nil, err
		}
		return tracksByArtist(ctx, db, artist)
	case ToolTracksByGenre:
		genre, err := stringArg(args, "genre")
		if err != nil {
			return nil, err
		}
		return tracksByGenre(ctx, db, genre)
	case ToolCheckTrack:
		title, err := stringArg(args, "title")
		if err != nil {
			return nil, err
		}
		return checkTrack(ctx, db, title)
	default:
		return nil, fmt.Errorf("unknown music tool %q", tool)
	}
}

type albumRow struct {
	Title  string `bun:"title" json:"title"`
	Artist string `bun:"artist" json:"artist"`
}

func albumsByArtist(ctx context.Context, db bun.IDB, artist string) (any, error) {
	var rows []albumRow
	err := db.NewSelect().
		ColumnExpr("al.title AS title, ar.name AS artist").
		TableExpr("album AS al").
		Join("JOIN artist AS ar ON ar.artist_id = al.artist_id").
		Where("ar.name ILIKE ?", "%"+artist+"%").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type trackRow struct {
	Song   string `bun:"song" json:"song"`
	Artist string `bun:"artist" json:"artist,omitempty"`
	Genre  string `bun:"genre" json:"genre,omitempty"`
}

func tracksByArtist(ctx context.Context, db bun.IDB, artist string) (any, error) {
	var rows []trackRow
	err := db.NewSelect().
		ColumnExpr("t.name AS song, ar.name AS artist").
		TableExpr("track AS t").
		Join("LEFT JOIN album AS al ON al.album_id = t.album_id").
		Join("LEFT JOIN artist AS ar ON ar.artist_id = al.artist_id").
		Where("ar.name ILIKE ?", "%"+artist+"%").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func tracksByGenre(ctx context.Context, db bun.IDB, genre string) (any, error) {
	var rows []trackRow
	err := db.NewSelect().
		ColumnExpr("t.name AS song, ar.name AS artist, g.name AS genre").
		TableExpr("track AS t").
		Join("JOIN genre AS g ON g.genre_id = t.genre_id").
		Join("LEFT JOIN album AS al ON al.album_id = t.album_id").
		Join("LEFT JOIN artist AS ar ON ar.artist_id = al.artist_id").
		Where("g.name ILIKE ?", "%"+genre+"%").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return fmt.Sprintf("no tracks found for genre %q", genre), nil
	}
	return rows, nil
}

func checkTrack(ctx context.Context, db bun.IDB, title string) (any, error) {
	var rows []trackRow
	err := db.NewSelect().
		ColumnExpr("t.name AS song, ar.name AS artist").
		TableExpr("track AS t").
		Join("LEFT JOIN album AS al ON al.album_id = t.album_id").
		Join("LEFT JOIN artist AS ar ON ar.artist_id = al.artist_id").
		Where("t.name ILIKE ?", "%"+title+"%").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
