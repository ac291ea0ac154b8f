package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"sitechat/sitechat/controllers"
	"sitechat/sitechat/middlewares"
	"sitechat/sitechat/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const wsReadLimit = maxBodyBytes

// ChatRoutes registers the grounded chat routes behind the rate limiter.
func ChatRoutes(ctrl *controllers.ChatController, limiter *middlewares.RateLimiter, origins []string, timeout time.Duration) chi.Router {
	r := chi.NewRouter()
	r.Use(limiter.Middleware)

	// POST /api/chat-context
	r.With(middleware.Timeout(timeout)).Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.ChatContextRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		resp, err := ctrl.ChatContext(r.Context(), req)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return resp, http.StatusOK, nil
	}))

	// GET /api/chat-context/ws : first text frame is a ChatContextRequest,
	// every following frame from the server is a chunk of the answer
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, acceptOptions(origins))
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")
		conn.SetReadLimit(wsReadLimit)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var req types.ChatContextRequest
		if err := json.Unmarshal(data, &req); err != nil {
			closeWithError(ctx, conn, badRequest("Invalid JSON body"))
			return
		}

		ch, errCh := ctrl.ChatContextStream(ctx, req)
		for chunk := range ch {
			if err := conn.Write(ctx, websocket.MessageText, []byte(chunk)); err != nil {
				cancel()
				for range ch {
				}
				return
			}
		}
		if err := <-errCh; err != nil {
			closeWithError(ctx, conn, err)
			return
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}

func acceptOptions(origins []string) *websocket.AcceptOptions {
	if slices.Contains(origins, "*") {
		return &websocket.AcceptOptions{InsecureSkipVerify: true}
	}
	return &websocket.AcceptOptions{OriginPatterns: origins}
}

// closeWithError sends the error as a JSON frame, then closes with a code
// that tells client faults from server faults.
func closeWithError(ctx context.Context, conn *websocket.Conn, err error) {
	status, msg := errorStatus(err)
	payload, _ := json.Marshal(types.ErrorResponse{Error: msg})
	conn.Write(ctx, websocket.MessageText, payload)

	code := websocket.StatusInternalError
	if status < http.StatusInternalServerError {
		code = websocket.StatusPolicyViolation
	}
	conn.Close(code, http.StatusText(status))
}
