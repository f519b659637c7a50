package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/session"
	"github.com/aretw0/cadence/pkg/sessions"
	"github.com/aretw0/cadence/pkg/wizard"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// actionStart opens a wizard session without moving it.
const actionStart = "start"

// StepResponse is the structured result of the wizard_step tool.
type StepResponse struct {
	SessionID string        `json:"session_id" jsonschema_description:"The wizard session"`
	Step      domain.Step   `json:"step" jsonschema_description:"The step under the cursor"`
	Steps     []domain.Step `json:"steps" jsonschema_description:"Every step of the wizard"`
	IsLast    bool          `json:"is_last" jsonschema_description:"Whether the cursor is on the last step"`
}

// Server exposes the sessions view and wizard sessions as MCP tools.
type Server struct {
	view      *sessions.View
	catalog   ports.StepLoader
	sessions  *session.Manager
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithHooks registers lifecycle hooks on every wizard sequence.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(view *sessions.View, catalog ports.StepLoader, manager *session.Manager, opts ...Option) *Server {
	s := &Server{
		view:      view,
		catalog:   catalog,
		sessions:  manager,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("cadence-mcp", strings.TrimSpace(cadence.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and shuts it down
// when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: recent_sessions
	s.mcpServer.AddTool(mcp.NewTool("recent_sessions",
		mcp.WithDescription("List this week's service sessions grouped by day."),
		mcp.WithBoolean("refresh", mcp.Description("Pull fresh metadata and records before answering")),
	), s.handleRecentSessions)

	// TOOL: wizard_step
	stepTool := mcp.NewTool("wizard_step",
		mcp.WithDescription("Start or move a wizard session. Moving past either end is a no-op."),
		mcp.WithString("action", mcp.Required(), mcp.Description("One of start, next, back, restart")),
		mcp.WithString("session_id", mcp.Description("Session to move (required unless action is start)")),
		mcp.WithOutputSchema[StepResponse](),
	)
	s.mcpServer.AddTool(stepTool, mcp.NewStructuredToolHandler(s.handleWizardStep))

	// TOOL: list_steps
	s.mcpServer.AddTool(mcp.NewTool("list_steps",
		mcp.WithDescription("List the wizard steps and their controls."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		defs, err := s.catalog.Steps(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("catalog failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(defs)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleRecentSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if request.GetBool("refresh", false) {
		if err := s.view.Refresh(ctx); err != nil {
			s.logger.Error("MCP recent_sessions: refresh failed", "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("refresh failed: %v", err)), nil
		}
	}
	jsonBytes, err := json.Marshal(s.view.Buckets())
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleWizardStep(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepResponse, error) {
	rawAction, _ := args["action"].(string)
	sessionID, _ := args["session_id"].(string)

	seq, err := cadence.NewSequence(ctx, s.catalog, s.hooks)
	if err != nil {
		return StepResponse{}, err
	}

	if strings.EqualFold(strings.TrimSpace(rawAction), actionStart) {
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		state, err := s.sessions.LoadOrStart(ctx, sessionID)
		if err != nil {
			return StepResponse{}, fmt.Errorf("start failed: %w", err)
		}
		seq.Seek(state.StepIndex)
		return toResponse(sessionID, seq), nil
	}

	action, err := wizard.ParseAction(rawAction)
	if err != nil {
		return StepResponse{}, err
	}
	if sessionID == "" {
		return StepResponse{}, errors.New("session_id is required")
	}
	if _, _, err := s.sessions.Step(ctx, sessionID, seq, action); err != nil {
		return StepResponse{}, fmt.Errorf("%s failed: %w", action, err)
	}
	return toResponse(sessionID, seq), nil
}

func toResponse(id string, seq *wizard.Sequence) StepResponse {
	return StepResponse{
		SessionID: id,
		Step:      seq.Current(),
		Steps:     seq.All(),
		IsLast:    seq.IsLast(),
	}
}

func (s *Server) registerResources() {
	// EXPOSE: cadence://steps
	s.mcpServer.AddResource(mcp.NewResource("cadence://steps", "Wizard Step Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		defs, err := s.catalog.Steps(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load steps: %w", err)
		}
		jsonBytes, _ := json.Marshal(defs)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "cadence://steps",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
