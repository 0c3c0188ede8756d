package server

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"go-object-inspector/internal/catalog"
	"go-object-inspector/internal/config"
	"go-object-inspector/internal/inspector"
	"go-object-inspector/internal/log"
)

// Handlers serves inspection requests for the objects of a catalog.
type Handlers struct {
	catalog  *catalog.Catalog
	settings config.InspectConfig
	registry *inspector.Registry
}

// NewHandlers returns handlers inspecting objects from c.
func NewHandlers(c *catalog.Catalog, settings config.InspectConfig, reg *inspector.Registry) *Handlers {
	if reg == nil {
		reg = inspector.DefaultRegistry
	}
	return &Handlers{catalog: c, settings: settings, registry: reg}
}

// inspectHandler handles requests for the 'inspect' tool.
func (h *Handlers) inspectHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("object")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recursive := request.GetBool("recursive", h.settings.Recursive)

	obj, ok := h.catalog.Get(name)
	if !ok {
		return mcp.NewToolResultError("Unknown object: " + name), nil
	}

	var report bytes.Buffer
	in := inspector.New(
		inspector.WithOutput(&report),
		inspector.WithLogger(log.Log.WithValues("object", name)),
		inspector.WithRegistry(h.registry),
		inspector.WithForceAccess(h.settings.ForceAccess),
		inspector.WithCycleDetection(h.settings.CycleDetection),
	)
	if err := in.Inspect(obj, recursive); err != nil {
		return mcp.NewToolResultError("Inspection failed: " + err.Error() + "\n\n" + report.String()), nil
	}
	return mcp.NewToolResultText(report.String()), nil
}

// listObjectsHandler handles requests for the 'list_objects' tool.
func (h *Handlers) listObjectsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultStructured(h.catalog.Names(), "list_objects"), nil
}

// RegisterTools defines all tools on the server and registers their handlers.
func (h *Handlers) RegisterTools(s *server.MCPServer) {
	// Tool 1: report on a live object.
	inspectTool := mcp.NewTool("inspect",
		mcp.WithDescription("Print a report of a live object: its type name, embedded parent type, declared interfaces, constructors, methods and fields with their current values. With 'recursive' set, field values are inspected in turn, up to three levels deep. Use 'list_objects' to see which objects are available."),
		mcp.WithString("object", mcp.Required(), mcp.Description("Name of the object to inspect, as returned by 'list_objects' (e.g. 'classA')")),
		mcp.WithBoolean("recursive", mcp.Description("Also inspect the values held by each field. Defaults to the server configuration.")),
	)
	s.AddTool(inspectTool, h.inspectHandler)

	// Tool 2: list the objects that can be inspected.
	listTool := mcp.NewTool("list_objects",
		mcp.WithDescription("List the names of the objects this server can inspect, in registration order."),
	)
	s.AddTool(listTool, h.listObjectsHandler)
}
