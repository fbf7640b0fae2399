package connections

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	ws "github.com/cbailey/wallet-ledger/pkg/websockets"
)

// ConnectionsHandler registers and deregisters WebSocket connections so the
// publisher knows who to push balance and subscription updates to.
type ConnectionsHandler struct {
	store ws.ConnectionStore
}

// NewConnectionsHandler creates a new ConnectionsHandler.
func NewConnectionsHandler(store ws.ConnectionStore) *ConnectionsHandler {
	return &ConnectionsHandler{store: store}
}

// HandleConnect records a new client connection.
func (h *ConnectionsHandler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	slog.Info("client connected", "connection_id", connectionID)

	if err := h.store.AddConnection(ctx, connectionID); err != nil {
		slog.Error("failed to register connection", "connection_id", connectionID, "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDisconnect drops a closed client connection.
func (h *ConnectionsHandler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	slog.Info("client disconnected", "connection_id", connectionID)

	if err := h.store.RemoveConnection(ctx, connectionID); err != nil {
		slog.Error("failed to deregister connection", "connection_id", connectionID, "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDefault acknowledges client-sent frames. Clients are not expected to
// send anything; whatever arrives is logged for debugging.
func (h *ConnectionsHandler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("received client message", "connection_id", request.RequestContext.ConnectionID, "body", request.Body)
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

var upgrader = websocket.Upgrader{
	// Local development only; the deployed path goes through API Gateway.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades and tracks a WebSocket connection for the local
// development server, standing in for the API Gateway $connect/$disconnect
// routes.
func (h *ConnectionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	connectionID := uuid.New().String()

	if err := h.store.AddConnection(ctx, connectionID); err != nil {
		slog.Error("failed to register local connection", "connection_id", connectionID, "error", err)
		return
	}
	defer func() {
		if err := h.store.RemoveConnection(ctx, connectionID); err != nil {
			slog.Error("failed to deregister local connection", "connection_id", connectionID, "error", err)
		}
	}()

	// Block until the client goes away; reads only serve to detect the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("unexpected close error", "connection_id", connectionID, "error", err)
			}
			return
		}
	}
}
