package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/stockroom/internal/application"
	"github.com/abdidvp/stockroom/internal/domain"
)

const (
	inventoryURI       = "stockroom://inventory"
	productURIPrefix   = "stockroom://products/"
	productURITemplate = productURIPrefix + "{id}"
)

// registerResources registers all stockroom MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *application.InventoryService) {
	// 1. stockroom://inventory - every product record
	s.AddResource(
		mcplib.NewResource(
			inventoryURI,
			"Inventory",
			mcplib.WithResourceDescription("Every product in insertion order, in data file format"),
			mcplib.WithMIMEType("application/json"),
		),
		handleInventoryResource(svc),
	)

	// 2. stockroom://products/{id} - one product (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			productURITemplate,
			"Product",
			mcplib.WithTemplateDescription("A single product record by id"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleProductResource(svc),
	)
}

func handleInventoryResource(svc *application.InventoryService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonContents(inventoryURI, domain.EncodeAll(svc.List()))
	}
}

func handleProductResource(svc *application.InventoryService) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		uri := request.Params.URI
		id := strings.TrimPrefix(uri, productURIPrefix)
		if id == "" || id == uri {
			return nil, fmt.Errorf("invalid product URI %q", uri)
		}
		p, err := svc.Get(id)
		if err != nil {
			return nil, err
		}
		return jsonContents(uri, domain.Encode(p))
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
