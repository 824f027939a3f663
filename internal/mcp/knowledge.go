package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ragbase/ragbase/internal/knowledge"
)

// AddResourceInput is the input schema for the add_resource tool.
type AddResourceInput struct {
	Content string `json:"content" jsonschema:"The text content to add to the knowledge base"`
}

// FindRelevantInput is the input schema for the find_relevant_content tool.
type FindRelevantInput struct {
	Question string `json:"question" jsonschema:"The question or topic to find relevant knowledge for"`
}

func (s *Server) registerTools() error {
	addSchema, err := jsonschema.For[AddResourceInput](nil)
	if err != nil {
		return fmt.Errorf("schema for add_resource: %w", err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "add_resource",
		Description: "Add a piece of content to the knowledge base. " +
			"Use when the user shares a fact, note, or document worth remembering. " +
			"The content is chunked and embedded for later retrieval.",
		InputSchema: addSchema,
	}, s.addResource)

	findSchema, err := jsonschema.For[FindRelevantInput](nil)
	if err != nil {
		return fmt.Errorf("schema for find_relevant_content: %w", err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "find_relevant_content",
		Description: "Search the knowledge base for content relevant to a question, " +
			"using semantic similarity. Returns the most relevant stored chunks.",
		InputSchema: findSchema,
	}, s.findRelevantContent)

	return nil
}

// addResource handles the add_resource MCP tool call.
func (s *Server) addResource(ctx context.Context, _ *mcp.CallToolRequest, input AddResourceInput) (*mcp.CallToolResult, any, error) {
	result, err := s.ingestor.Ingest(ctx, input.Content)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	text := knowledge.MsgResourceCreated
	if result.EmbeddingFailed {
		text = "Resource stored, but embedding failed; it is not yet searchable."
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// findRelevantContent handles the find_relevant_content MCP tool call.
func (s *Server) findRelevantContent(ctx context.Context, _ *mcp.CallToolRequest, input FindRelevantInput) (*mcp.CallToolResult, any, error) {
	results, err := s.retriever.FindRelevant(ctx, input.Question)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	if len(results) == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "No relevant content found."}},
		}, nil, nil
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[similarity %.2f] %s", r.Similarity, strings.TrimSpace(r.Content))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: b.String()}},
	}, nil, nil
}
