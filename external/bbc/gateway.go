package bbc

import (
	"context"

	"github.com/MrG-Man/Acca-Tracker/internal/usecase"
)

// Gateway chains the client and parser into the feed interface the
// services consume.
type Gateway struct {
	client *Client
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) FetchFixtures(ctx context.Context, league, path string) (usecase.SourceResult, error) {
	raw, err := g.client.Fetch(ctx, path)
	if err != nil {
		return usecase.SourceResult{}, err
	}

	res, err := ParseFixtures(raw, league)
	if err != nil {
		return usecase.SourceResult{}, err
	}

	return usecase.SourceResult{Matches: res.Matches, Skipped: res.Skipped}, nil
}

func (g *Gateway) FetchLiveScores(ctx context.Context, league, path string) (usecase.SourceResult, error) {
	raw, err := g.client.Fetch(ctx, path)
	if err != nil {
		return usecase.SourceResult{}, err
	}

	res, err := ParseLiveScores(raw, league)
	if err != nil {
		return usecase.SourceResult{}, err
	}

	return usecase.SourceResult{Matches: res.Matches, Skipped: res.Skipped}, nil
}
