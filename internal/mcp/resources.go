// ABOUTME: MCP resource implementations for the food pyramid.
// ABOUTME: Provides pyramid://catalog and pyramid://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/pyramid/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	catalogURI = "pyramid://catalog"
	todayURI   = "pyramid://today"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Food Pyramid Catalog",
		Description: "All food categories in pyramid order with recommended portions",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Portions",
		Description: "Portion counts against recommendations for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// todayEntry is one category's progress for the day.
type todayEntry struct {
	ID          int    `json:"id"`
	Label       string `json:"label"`
	Portions    int    `json:"portions"`
	Recommended int    `json:"recommended"`
	Remaining   int    `json:"remaining"`
}

// Resource handlers

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	items, err := s.repo.ListItems()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	models.SortItems(items)

	return jsonResource(catalogURI, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	date := models.Today()
	dayID := models.DateToID(date)

	portions, err := s.repo.GetPortionsForDay(dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portions: %w", err)
	}

	entries := make([]todayEntry, 0, len(portions))
	total, recommended := 0, 0
	for _, p := range portions {
		entries = append(entries, todayEntry{
			ID:          p.ID,
			Label:       p.Label,
			Portions:    p.Portions,
			Recommended: p.RecommendedPortions,
			Remaining:   max(p.RecommendedPortions-p.Portions, 0),
		})
		total += p.Portions
		recommended += p.RecommendedPortions
	}

	return jsonResource(todayURI, map[string]interface{}{
		"date":    date,
		"id":      dayID,
		"entries": entries,
		"totals": map[string]int{
			"portions":    total,
			"recommended": recommended,
		},
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
