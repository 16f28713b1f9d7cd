package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListReleasesTool(srv, svc)
	registerGetReleaseTool(srv, svc)
	registerListEventsTool(srv, svc)
	registerEventsOnDayTool(srv, svc)
	registerCreateReleaseTool(srv, svc)
}

func registerListReleasesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_releases",
		mcp.WithDescription("List release windows in source order."),
		mcp.WithString("status",
			mcp.Description("Only return windows with this status."),
			mcp.Enum("scheduled", "active", "completed", "cancelled"),
		),
		mcp.WithString("platform",
			mcp.Description("Only return windows for this platform (case-insensitive)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		releases, err := svc.ListReleases(ctx, ListReleasesOptions{
			Status:   request.GetString("status", ""),
			Platform: request.GetString("platform", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count":    len(releases),
			"releases": releases,
		})
	})
}

func registerGetReleaseTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_release",
		mcp.WithDescription("Fetch a release window with its marketing deadlines and deliverables."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Release window identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.GetRelease(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List timeline events sorted by date."),
		mcp.WithString("from",
			mcp.Description("Earliest date to include (YYYY-MM-DD)."),
		),
		mcp.WithString("to",
			mcp.Description("Latest date to include (YYYY-MM-DD)."),
		),
		mcp.WithString("type",
			mcp.Description("Only return events of this type."),
			mcp.Enum("release", "marketing", "deliverable"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		events, err := svc.ListEvents(ctx, ListEventsOptions{
			From: request.GetString("from", ""),
			To:   request.GetString("to", ""),
			Type: request.GetString("type", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count":  len(events),
			"events": events,
		})
	})
}

func registerEventsOnDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"events_on_day",
		mcp.WithDescription("List the events that fall on one calendar day."),
		mcp.WithString("day",
			mcp.Required(),
			mcp.Description("Day to inspect (YYYY-MM-DD)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := request.RequireString("day")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		events, err := svc.EventsOnDay(ctx, day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"day":    day,
			"count":  len(events),
			"events": events,
		})
	})
}

func registerCreateReleaseTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_release",
		mcp.WithDescription("Add a release window for this session. It is not written back to the source."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Release window name."),
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("First day of the window (YYYY-MM-DD)."),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("Last day of the window (YYYY-MM-DD)."),
		),
		mcp.WithString("id",
			mcp.Description("Optional identifier; the next free number is used when omitted."),
		),
		mcp.WithString("platform",
			mcp.Description("Distribution platform."),
		),
		mcp.WithString("territory",
			mcp.Description("Territories covered."),
		),
		mcp.WithString("status",
			mcp.Description("Window status."),
			mcp.Enum("scheduled", "active", "completed", "cancelled"),
		),
		mcp.WithBoolean("exclusivity",
			mcp.Description("Whether the window is exclusive."),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CreateReleaseOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.CreateRelease(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
