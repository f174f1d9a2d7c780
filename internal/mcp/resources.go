package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) roster(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	players, err := h.ds.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(players)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
