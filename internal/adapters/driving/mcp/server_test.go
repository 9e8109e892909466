package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// connect starts an in-memory session between s and a test client.
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestNewServer(t *testing.T) {
	ctx := context.Background()

	t.Run("nil tool surface returns error", func(t *testing.T) {
		server, err := NewServer(ctx, &Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingToolSurface)
	})

	t.Run("scan failure returns error", func(t *testing.T) {
		tools := &mockToolSurface{err: domain.ErrConfigInvalid}
		server, err := NewServer(ctx, &Ports{Tools: tools})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, domain.ErrConfigInvalid)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		tools := &mockToolSurface{registries: []*domain.ToolRegistry{mustRegistry(echoTool("get_person"))}}
		server, err := NewServer(ctx, &Ports{Tools: tools, ContentDir: "/tmp/out/content"})
		require.NoError(t, err)
		assert.Equal(t, []string{"get_person"}, server.ToolNames())
		assert.Equal(t, 1, tools.calls)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingToolSurface)
	assert.NoError(t, (&Ports{Tools: &mockToolSurface{}}).Validate())
}

func TestServer_ListTools(t *testing.T) {
	ctx := context.Background()
	tools := &mockToolSurface{registries: []*domain.ToolRegistry{
		mustRegistry(echoTool("list_person"), echoTool("get_person")),
	}}
	server, err := NewServer(ctx, &Ports{Tools: tools})
	require.NoError(t, err)

	cs := connect(t, server)
	res, err := cs.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, res.Tools, 2)

	byName := map[string]*mcp.Tool{}
	for _, tool := range res.Tools {
		byName[tool.Name] = tool
	}
	require.Contains(t, byName, "get_person")
	assert.Equal(t, "Echo get_person", byName["get_person"].Description)

	schema, err := json.Marshal(byName["get_person"].InputSchema)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "description": "The entry title"},
			"filter": {"type": "string", "description": "Optional filter"}
		},
		"required": ["title"]
	}`, string(schema))
}

func TestServer_CallTool(t *testing.T) {
	ctx := context.Background()
	tools := &mockToolSurface{registries: []*domain.ToolRegistry{mustRegistry(echoTool("get_person"))}}
	server, err := NewServer(ctx, &Ports{Tools: tools})
	require.NoError(t, err)
	cs := connect(t, server)

	tests := []struct {
		name      string
		args      any
		want      string
		contains  string
		wantError bool
	}{
		{name: "required and optional", args: map[string]any{"title": "bob-smith", "filter": "x"}, want: "get_person:bob-smith:x"},
		{name: "optional omitted", args: map[string]any{"title": "bob-smith"}, want: "get_person:bob-smith:"},
		{name: "not found is an error result", args: map[string]any{"title": "missing"}, want: `Entry "missing" not found.`, wantError: true},
		{name: "missing required", args: map[string]any{}, contains: "Invalid arguments for get_person", wantError: true},
		{name: "wrong type", args: map[string]any{"title": 42}, contains: "Invalid arguments for get_person", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "get_person", Arguments: tt.args})
			require.NoError(t, err)
			assert.Equal(t, tt.wantError, res.IsError)
			if tt.want != "" {
				assert.Equal(t, tt.want, textOf(t, res))
			}
			if tt.contains != "" {
				assert.Contains(t, textOf(t, res), tt.contains)
			}
		})
	}

	t.Run("unknown tool", func(t *testing.T) {
		_, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "get_robot", Arguments: map[string]any{}})
		assert.Error(t, err)
	})
}

func TestDecodeArguments(t *testing.T) {
	schema, err := inputSchema(echoTool("get_person")).Resolve(nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		want    map[string]string
		wantErr bool
	}{
		{name: "object", raw: `{"title": "bob"}`, want: map[string]string{"title": "bob"}},
		{name: "extra keys kept", raw: `{"title": "bob", "other": "x"}`, want: map[string]string{"title": "bob", "other": "x"}},
		{name: "empty", raw: ``, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "array", raw: `["bob"]`, wantErr: true},
		{name: "number title", raw: `{"title": 1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeArguments(json.RawMessage(tt.raw), schema)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// Schemas without required params accept no arguments at all.
	optional, err := inputSchema(domain.Tool{
		Name:   "list_assets",
		Params: []domain.ToolParam{{Name: "filter"}},
	}).Resolve(nil)
	require.NoError(t, err)
	got, err := decodeArguments(nil, optional)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestServer_Reload(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps tools", func(t *testing.T) {
		tools := &mockToolSurface{registries: []*domain.ToolRegistry{
			mustRegistry(echoTool("get_a"), echoTool("get_b")),
			mustRegistry(echoTool("get_a"), echoTool("get_c")),
		}}
		server, err := NewServer(ctx, &Ports{Tools: tools})
		require.NoError(t, err)
		cs := connect(t, server)

		require.NoError(t, server.Reload(ctx))
		assert.Equal(t, []string{"get_a", "get_c"}, server.ToolNames())

		res, err := cs.ListTools(ctx, &mcp.ListToolsParams{})
		require.NoError(t, err)
		var names []string
		for _, tool := range res.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{"get_a", "get_c"}, names)

		call, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "get_c", Arguments: map[string]any{"title": "t"}})
		require.NoError(t, err)
		assert.Equal(t, "get_c:t:", textOf(t, call))
	})

	t.Run("keeps tools on failure", func(t *testing.T) {
		tools := &mockToolSurface{registries: []*domain.ToolRegistry{mustRegistry(echoTool("get_a"))}}
		server, err := NewServer(ctx, &Ports{Tools: tools})
		require.NoError(t, err)

		tools.err = errors.New("scan failed")
		err = server.Reload(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scan failed")
		assert.Equal(t, []string{"get_a"}, server.ToolNames())
	})
}

func TestServer_Health(t *testing.T) {
	tools := &mockToolSurface{registries: []*domain.ToolRegistry{mustRegistry(echoTool("get_a"))}}
	server, err := NewServer(context.Background(), &Ports{Tools: tools, ContentDir: "/srv/out/content"})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"status": "ok", "contentDir": "/srv/out/content"}`, string(body))
}

func TestServer_StreamableHTTP(t *testing.T) {
	ctx := context.Background()
	tools := &mockToolSurface{registries: []*domain.ToolRegistry{mustRegistry(echoTool("get_a"))}}
	server, err := NewServer(ctx, &Ports{Tools: tools})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: ts.URL + "/mcp"}, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "get_a", Arguments: map[string]any{"title": "x"}})
	require.NoError(t, err)
	assert.Equal(t, "get_a:x:", textOf(t, res))
}
