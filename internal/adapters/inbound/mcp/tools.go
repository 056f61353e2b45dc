package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/stockroom/internal/application"
	"github.com/abdidvp/stockroom/internal/domain"
)

// registerTools registers all stockroom MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.InventoryService, cfg domain.ProjectConfig) {
	// 1. inventory_list
	s.AddTool(
		mcplib.NewTool("inventory_list",
			mcplib.WithDescription("Lists every product in insertion order, optionally only one product type"),
			mcplib.WithString("type", mcplib.Description("Product type: electronics, grocery or clothing")),
		),
		handleList(svc),
	)

	// 2. inventory_search
	s.AddTool(
		mcplib.NewTool("inventory_search",
			mcplib.WithDescription("Finds products whose name contains the given text (case-insensitive), optionally of one type"),
			mcplib.WithString("name", mcplib.Description("Text to look for in product names")),
			mcplib.WithString("type", mcplib.Description("Product type: electronics, grocery or clothing")),
		),
		handleSearch(svc),
	)

	// 3. inventory_get
	s.AddTool(
		mcplib.NewTool("inventory_get",
			mcplib.WithDescription("Returns one product by id"),
			mcplib.WithString("product_id", mcplib.Required(), mcplib.Description("Product id")),
		),
		handleGet(svc),
	)

	// 4. inventory_add
	s.AddTool(
		mcplib.NewTool("inventory_add",
			mcplib.WithDescription("Adds a product and saves the inventory. Variant fields: warranty_years and brand for electronics, expiry_date for grocery, size and material for clothing."),
			mcplib.WithString("type", mcplib.Required(), mcplib.Description("Product type: electronics, grocery or clothing")),
			mcplib.WithString("product_id", mcplib.Description("Product id (generated when omitted)")),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Product name")),
			mcplib.WithNumber("price", mcplib.Required(), mcplib.Description("Unit price, >= 0")),
			mcplib.WithNumber("quantity_in_stock", mcplib.Required(), mcplib.Description("Units in stock, >= 0")),
			mcplib.WithNumber("warranty_years", mcplib.Description("Electronics: warranty in years")),
			mcplib.WithString("brand", mcplib.Description("Electronics: brand")),
			mcplib.WithString("expiry_date", mcplib.Description("Grocery: expiry date, YYYY-MM-DD")),
			mcplib.WithString("size", mcplib.Description("Clothing: size")),
			mcplib.WithString("material", mcplib.Description("Clothing: material")),
		),
		handleAdd(svc),
	)

	// 5. inventory_remove
	s.AddTool(
		mcplib.NewTool("inventory_remove",
			mcplib.WithDescription("Removes a product by id and saves the inventory"),
			mcplib.WithString("product_id", mcplib.Required(), mcplib.Description("Product id")),
		),
		handleRemove(svc),
	)

	// 6. inventory_sell
	s.AddTool(
		mcplib.NewTool("inventory_sell",
			mcplib.WithDescription("Sells units of a product. Fails without changes when stock is insufficient."),
			mcplib.WithString("product_id", mcplib.Required(), mcplib.Description("Product id")),
			mcplib.WithNumber("quantity", mcplib.Required(), mcplib.Description("Units to sell, > 0")),
		),
		handleSell(svc),
	)

	// 7. inventory_restock
	s.AddTool(
		mcplib.NewTool("inventory_restock",
			mcplib.WithDescription("Adds units to a product's stock"),
			mcplib.WithString("product_id", mcplib.Required(), mcplib.Description("Product id")),
			mcplib.WithNumber("quantity", mcplib.Required(), mcplib.Description("Units to add, > 0")),
		),
		handleRestock(svc),
	)

	// 8. inventory_reprice
	s.AddTool(
		mcplib.NewTool("inventory_reprice",
			mcplib.WithDescription("Sets a product's unit price"),
			mcplib.WithString("product_id", mcplib.Required(), mcplib.Description("Product id")),
			mcplib.WithNumber("price", mcplib.Required(), mcplib.Description("New unit price, >= 0")),
		),
		handleReprice(svc),
	)

	// 9. inventory_value
	s.AddTool(
		mcplib.NewTool("inventory_value",
			mcplib.WithDescription("Returns the total inventory value (sum of price x stock)"),
		),
		handleValue(svc),
	)

	// 10. inventory_remove_expired
	s.AddTool(
		mcplib.NewTool("inventory_remove_expired",
			mcplib.WithDescription("Removes every grocery product past its expiry date and returns how many were removed"),
		),
		handleRemoveExpired(svc),
	)

	// 11. inventory_dashboard
	s.AddTool(
		mcplib.NewTool("inventory_dashboard",
			mcplib.WithDescription("Returns counts and value per product type, expired and low stock products, and the most recently added products"),
			mcplib.WithNumber("low_stock", mcplib.Description(fmt.Sprintf("Stock level at or below which a product is low (default %d)", cfg.LowStockThreshold))),
			mcplib.WithNumber("recent", mcplib.Description(fmt.Sprintf("Number of recent products (default %d)", cfg.RecentLimit))),
		),
		handleDashboard(svc, cfg),
	)
}

func handleList(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		kind := request.GetString("type", "")
		if kind == "" {
			return jsonResult(domain.EncodeAll(svc.List()))
		}
		k, err := domain.ParseKind(kind)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(domain.EncodeAll(svc.SearchByKind(k)))
	}
}

func handleSearch(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		products := svc.SearchByName(request.GetString("name", ""))
		if kind := request.GetString("type", ""); kind != "" {
			k, err := domain.ParseKind(kind)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			filtered := make([]domain.Product, 0, len(products))
			for _, p := range products {
				if p.Kind() == k {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}
		return jsonResult(domain.EncodeAll(products))
	}
}

func handleGet(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("product_id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		p, err := svc.Get(id)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(domain.Encode(p))
	}
}

// handleAdd decodes the arguments as a product record, so tool input follows
// the same field names and checks as the data file.
func handleAdd(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		record := domain.Record{}
		for k, v := range request.GetArguments() {
			record[k] = v
		}
		if id, _ := record[domain.FieldProductID].(string); id == "" {
			kind, _ := record[domain.FieldType].(string)
			record[domain.FieldProductID] = domain.NewProductID(domain.Kind(kind))
		}

		p, err := domain.Decode(record)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		added, err := svc.Add(p)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(domain.Encode(added))
	}
}

func handleRemove(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("product_id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		removed, err := svc.Remove(id)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(domain.Encode(removed))
	}
}

func handleSell(svc *application.InventoryService) server.ToolHandlerFunc {
	return quantityHandler(svc.Sell)
}

func handleRestock(svc *application.InventoryService) server.ToolHandlerFunc {
	return quantityHandler(svc.Restock)
}

func quantityHandler(apply func(id string, quantity int) (domain.Product, error)) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("product_id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		qty, err := request.RequireFloat("quantity")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if qty != math.Trunc(qty) {
			return errorResult(fmt.Sprintf("%v: quantity must be a whole number (got %v)", domain.ErrValidation, qty)), nil
		}
		if !domain.IntInRange(qty) {
			return errorResult(fmt.Sprintf("%v: quantity out of range (got %v)", domain.ErrValidation, qty)), nil
		}
		p, err := apply(id, int(qty))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(domain.Encode(p))
	}
}

func handleReprice(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("product_id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		price, err := request.RequireFloat("price")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		p, err := svc.Reprice(id, price)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(domain.Encode(p))
	}
}

func handleValue(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(map[string]float64{"total_value": svc.TotalValue()})
	}
}

func handleRemoveExpired(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		n, err := svc.RemoveExpired()
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(map[string]int{"removed": n})
	}
}

func handleDashboard(svc *application.InventoryService, cfg domain.ProjectConfig) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		lowStock := request.GetInt("low_stock", cfg.LowStockThreshold)
		recent := request.GetInt("recent", cfg.RecentLimit)
		return jsonResult(svc.Report(lowStock, recent))
	}
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
