package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerReleasesResource(srv, svc)
	registerReleaseTemplate(srv, svc)
	registerEventsResource(srv, svc)
}

func registerReleasesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"marquee://releases",
		"Release Windows",
		mcp.WithResourceDescription("Every release window with dates, platform and status."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		releases, err := svc.ListReleases(ctx, ListReleasesOptions{})
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"releases": releases,
			"count":    len(releases),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerReleaseTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"marquee://releases/{id}",
		"Release Details",
		mcp.WithTemplateDescription("A release window with its marketing deadlines and deliverables."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments, "id")
		if id == "" {
			return nil, fmt.Errorf("release id is required")
		}
		dto, err := svc.GetRelease(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"release": dto})
	})
}

func registerEventsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"marquee://events",
		"Timeline Events",
		mcp.WithResourceDescription("The projected timeline of release, marketing and deliverable events."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		events, err := svc.ListEvents(ctx, ListEventsOptions{})
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"events": events,
			"count":  len(events),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
