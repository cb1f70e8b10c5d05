package mcp

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/mcp-chat/common/logger"
	"github.com/Laisky/mcp-chat/common/metrics"
	"github.com/Laisky/mcp-chat/model"
)

// Dispatcher routes a tool invocation to whichever registered
// connection currently advertises the tool.
type Dispatcher struct {
	store  *model.ConnectionStore
	client *Client
	logger glog.Logger
}

// NewDispatcher wires a dispatcher over the given connection store.
func NewDispatcher(store *model.ConnectionStore, client *Client) *Dispatcher {
	return &Dispatcher{
		store:  store,
		client: client,
		logger: logger.Logger.Named("mcp_dispatch"),
	}
}

// DispatchResult carries the outcome of a successful tool invocation.
type DispatchResult struct {
	Result     string
	ToolName   string
	Connection *model.Connection
}

// Dispatch finds the first connection, in registration order, whose
// live tool list contains toolName and invokes the tool there. Each
// dispatch re-discovers every candidate so stale registrations never
// shadow a live server. Returns ErrToolNotFound when no connection
// advertises the tool.
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, args map[string]any) (*DispatchResult, error) {
	start := time.Now()

	for _, conn := range d.store.List() {
		tools := d.client.Discover(ctx, conn.URL)
		spec, ok := findTool(tools, toolName)
		if !ok {
			continue
		}

		if err := ValidateArguments(args, spec.Parameters); err != nil {
			metrics.RecordToolDispatch(start, toolName, false)
			return nil, errors.Wrapf(err, "invalid arguments for tool %s", toolName)
		}

		d.logger.Debug("dispatching tool",
			zap.String("tool", toolName),
			zap.String("connection", conn.Name),
			zap.String("url", conn.URL))

		result, err := d.client.CallTool(ctx, conn.URL, toolName)
		if err != nil {
			metrics.RecordToolDispatch(start, toolName, false)
			return nil, err
		}

		metrics.RecordToolDispatch(start, toolName, true)
		return &DispatchResult{
			Result:     result,
			ToolName:   toolName,
			Connection: conn,
		}, nil
	}

	metrics.RecordToolDispatch(start, toolName, false)
	return nil, errors.Wrapf(ErrToolNotFound, "tool %s not available on any connection", toolName)
}

// AggregateTools concatenates the live tool lists of every registered
// connection, preserving registration order.
func (d *Dispatcher) AggregateTools(ctx context.Context) []Tool {
	var all []Tool
	for _, conn := range d.store.List() {
		all = append(all, d.client.Discover(ctx, conn.URL)...)
	}
	return all
}

func findTool(tools []Tool, name string) (Tool, bool) {
	for _, tool := range tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}
