// resources.go implements MCP resource handlers for direct entry and
// collection reads.
//
// URIs follow glossd://entries/{id} and glossd://collections/{id}.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/glossd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	entryURIPrefix      = "glossd://entries/"
	collectionURIPrefix = "glossd://collections/"
)

// ErrInvalidURI indicates a malformed resource URI.
var ErrInvalidURI = errors.New("invalid URI")

// readEntry handles glossd://entries/{id} resource requests.
func (h *handlers) readEntry(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}
	id, err := parseID(req.Params.URI, entryURIPrefix)
	if err != nil {
		return nil, err
	}
	e, err := h.svc.Entry(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, e)
}

// readCollection handles glossd://collections/{id} resource requests.
func (h *handlers) readCollection(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}
	id, err := parseID(req.Params.URI, collectionURIPrefix)
	if err != nil {
		return nil, err
	}
	c, err := h.svc.Collection(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, c)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := store.MarshalJSON(v)
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

// parseID extracts the positive numeric id following prefix in uri.
func parseID(uri, prefix string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrInvalidURI, rest)
	}
	return id, nil
}
