// ABOUTME: MCP tool implementations for the food pyramid.
// ABOUTME: Catalog listing and creation, day lookup, portion changes and cleanup.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/pyramid/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_items",
		Description: "List the food pyramid categories with their recommended daily portions",
	}, s.handleListItems)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_item",
		Description: "Add a food category to the pyramid",
	}, s.handleCreateItem)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_days",
		Description: "List tracked days, most recent first",
	}, s.handleListDays)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day",
		Description: "Get portion counts per category for a day (defaults to today)",
	}, s.handleGetDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "increment_portion",
		Description: "Add (or with a negative delta, remove) portions for a category on a day; never goes below zero",
	}, s.handleIncrementPortion)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_portion",
		Description: "Set the portion count for a category on a day; negative values become zero",
	}, s.handleSetPortion)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "cleanup_empty_days",
		Description: "Delete tracked days with no recorded portions, except the dates to keep",
	}, s.handleCleanupEmptyDays)
}

// Tool input/output types

type listItemsInput struct{}

type itemsOutput struct {
	Items []models.PyramidItem `json:"items"`
}

type createItemInput struct {
	Label               string `json:"label" jsonschema:"Name of the food category"`
	RecommendedPortions int    `json:"recommended_portions" jsonschema:"Recommended portions per day"`
	Tier                int    `json:"tier" jsonschema:"Pyramid tier used for ordering (1 is the top)"`
	ItemOrder           int    `json:"item_order,omitempty" jsonschema:"Order within the tier"`
}

type createItemOutput struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type listDaysInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 30)"`
}

type daysOutput struct {
	Days  []models.Day `json:"days"`
	Total int          `json:"total"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type dayOutput struct {
	ID        int            `json:"id"`
	EntryDate string         `json:"entry_date"`
	Exists    bool           `json:"exists"`
	Portions  []portionEntry `json:"portions"`
}

// portionEntry flattens models.ItemPortion for tool output.
type portionEntry struct {
	ItemID      int    `json:"item_id"`
	Label       string `json:"label"`
	Tier        int    `json:"tier"`
	Portions    int    `json:"portions"`
	Recommended int    `json:"recommended"`
}

type incrementInput struct {
	Date   string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	ItemID int    `json:"item_id" jsonschema:"Category id from list_items"`
	Delta  int    `json:"delta" jsonschema:"Portions to add, negative to remove"`
}

type setPortionInput struct {
	Date     string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	ItemID   int    `json:"item_id" jsonschema:"Category id from list_items"`
	Portions int    `json:"portions" jsonschema:"New portion count"`
}

type portionOutput struct {
	Date     string `json:"date"`
	ItemID   int    `json:"item_id"`
	Portions int    `json:"portions"`
	Message  string `json:"message"`
}

type cleanupInput struct {
	Keep []string `json:"keep,omitempty" jsonschema:"Dates (YYYY-MM-DD) to keep even if empty; defaults to today"`
}

type cleanupOutput struct {
	Removed int    `json:"removed"`
	Message string `json:"message"`
}

// resolveDate applies the today default and checks the format.
func resolveDate(date string) (string, error) {
	if date == "" {
		return models.Today(), nil
	}
	if !models.ValidDate(date) {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return date, nil
}

// Tool handlers

func (s *Server) handleListItems(ctx context.Context, req *mcp.CallToolRequest, input listItemsInput) (*mcp.CallToolResult, itemsOutput, error) {
	items, err := s.repo.ListItems()
	if err != nil {
		return nil, itemsOutput{}, fmt.Errorf("failed to list items: %w", err)
	}
	models.SortItems(items)
	return nil, itemsOutput{Items: items}, nil
}

func (s *Server) handleCreateItem(ctx context.Context, req *mcp.CallToolRequest, input createItemInput) (*mcp.CallToolResult, createItemOutput, error) {
	if input.Label == "" {
		return nil, createItemOutput{}, fmt.Errorf("label is required")
	}

	id, err := s.repo.CreateItem(input.Label, input.RecommendedPortions, input.Tier, input.ItemOrder)
	if err != nil {
		return nil, createItemOutput{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Infow("item created", "id", id, "label", input.Label)
	return nil, createItemOutput{
		ID:      id,
		Message: fmt.Sprintf("Created %s (ID: %d)", input.Label, id),
	}, nil
}

func (s *Server) handleListDays(ctx context.Context, req *mcp.CallToolRequest, input listDaysInput) (*mcp.CallToolResult, daysOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 30
	}

	days, err := s.repo.ListDays()
	if err != nil {
		return nil, daysOutput{}, fmt.Errorf("failed to list days: %w", err)
	}

	total := len(days)
	if len(days) > input.Limit {
		days = days[:input.Limit]
	}
	return nil, daysOutput{Days: days, Total: total}, nil
}

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, dayOutput, error) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, dayOutput{}, err
	}
	dayID := models.DateToID(date)

	_, err = s.repo.GetDay(dayID)
	exists := err == nil

	portions, err := s.repo.GetPortionsForDay(dayID)
	if err != nil {
		return nil, dayOutput{}, fmt.Errorf("failed to get portions: %w", err)
	}

	entries := make([]portionEntry, 0, len(portions))
	for _, p := range portions {
		entries = append(entries, portionEntry{
			ItemID:      p.ID,
			Label:       p.Label,
			Tier:        p.Tier,
			Portions:    p.Portions,
			Recommended: p.RecommendedPortions,
		})
	}

	return nil, dayOutput{
		ID:        dayID,
		EntryDate: date,
		Exists:    exists,
		Portions:  entries,
	}, nil
}

func (s *Server) handleIncrementPortion(ctx context.Context, req *mcp.CallToolRequest, input incrementInput) (*mcp.CallToolResult, portionOutput, error) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, portionOutput{}, err
	}

	value, err := s.repo.IncrementPortion(models.DateToID(date), input.ItemID, input.Delta)
	if err != nil {
		return nil, portionOutput{}, fmt.Errorf("failed to update portions: %w", err)
	}

	return nil, portionOutput{
		Date:     date,
		ItemID:   input.ItemID,
		Portions: value,
		Message:  fmt.Sprintf("Item %d on %s: %d portions", input.ItemID, date, value),
	}, nil
}

func (s *Server) handleSetPortion(ctx context.Context, req *mcp.CallToolRequest, input setPortionInput) (*mcp.CallToolResult, portionOutput, error) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, portionOutput{}, err
	}

	value, err := s.repo.SetPortion(models.DateToID(date), input.ItemID, max(input.Portions, 0))
	if err != nil {
		return nil, portionOutput{}, fmt.Errorf("failed to set portions: %w", err)
	}

	return nil, portionOutput{
		Date:     date,
		ItemID:   input.ItemID,
		Portions: value,
		Message:  fmt.Sprintf("Item %d on %s set to %d portions", input.ItemID, date, value),
	}, nil
}

func (s *Server) handleCleanupEmptyDays(ctx context.Context, req *mcp.CallToolRequest, input cleanupInput) (*mcp.CallToolResult, cleanupOutput, error) {
	keep := input.Keep
	if len(keep) == 0 {
		keep = []string{models.Today()}
	}

	removed, err := s.repo.CleanupEmptyDays(keep)
	if err != nil {
		return nil, cleanupOutput{}, fmt.Errorf("failed to clean up: %w", err)
	}

	return nil, cleanupOutput{
		Removed: removed,
		Message: fmt.Sprintf("Removed %d empty day(s)", removed),
	}, nil
}
