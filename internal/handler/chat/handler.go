package chat

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/quote-chat/internal/service/gateway"
	"github.com/zhouzirui/quote-chat/internal/session"
	"github.com/zhouzirui/quote-chat/pkg/utils"
)

const (
	maxRequestBody = 64 << 10

	errMessageRequired = "Message is required"
	errProcessFailed   = "Failed to process chat request"
	errBackendDown     = "backend unavailable"
)

// Forwarder relays one turn to the conversational backend.
type Forwarder interface {
	Forward(ctx context.Context, text string, token session.Token) (gateway.Reply, error)
}

// Handler 聊天代理的HTTP处理器
type Handler struct {
	gateway Forwarder
	logger  zerolog.Logger
}

// New 创建聊天处理器
func New(gw Forwarder, logger zerolog.Logger) *Handler {
	return &Handler{
		gateway: gw,
		logger:  logger,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// handleChat 转发一轮对话到后端
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, errMessageRequired)
		return
	}

	text, err := gateway.ParseTurn(body)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, errMessageRequired)
		return
	}

	reply, err := h.gateway.Forward(r.Context(), text, session.FromRequest(r))
	if err != nil {
		switch gateway.Kind(err) {
		case gateway.KindInvalidInput:
			utils.RespondError(w, http.StatusBadRequest, errMessageRequired)
		case gateway.KindUpstreamError:
			logger.Error().Err(err).Msg("error proxying chat request")
			utils.RespondErrorDetail(w, http.StatusInternalServerError, errProcessFailed, err.Error())
		default:
			logger.Error().Err(err).Msg("error proxying chat request")
			utils.RespondErrorDetail(w, http.StatusInternalServerError, errProcessFailed, errBackendDown)
		}
		return
	}

	session.Relay(w, reply.SetCookies)
	utils.RespondRaw(w, http.StatusOK, reply.Body)
}
