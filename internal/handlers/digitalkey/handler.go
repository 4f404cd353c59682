package digitalkey

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	"innkeep/internal/domains/digitalkey/model/dto"
	"innkeep/internal/domains/digitalkey/service"
	"innkeep/shared/constant"
	"innkeep/shared/validator"
	"innkeep/transport/http/response"
)

type Handler struct {
	service service.DigitalKey
	otel    otel.Otel
}

func New(service service.DigitalKey, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/digital-keys", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.IssueKey)
		routerGroup.Post("/{id}/revoke", handler.RevokeKey)
		routerGroup.Get("/validate/{token}", handler.ValidateKey)
	})
}

// IssueKey issues a digital room key for a checked-in booking.
func (handler *Handler) IssueKey(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IssueKey")
	defer scope.End()

	req := dto.IssueKeyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	key, err := handler.service.Issue(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to issue digital key")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Digital key issued successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, key)
}

// RevokeKey invalidates a digital key before its natural expiry.
func (handler *Handler) RevokeKey(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RevokeKey")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Revoke(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to revoke digital key")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Digital key revoked successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Digital key revoked successfully")
}

// ValidateKey checks whether a key token currently opens its room.
// Door hardware calls this endpoint, so it is key-token authenticated
// rather than JWT authenticated.
func (handler *Handler) ValidateKey(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ValidateKey")
	defer scope.End()

	token := chi.URLParam(r, "token")

	result, err := handler.service.Validate(ctx, token)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate digital key")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Digital key validated")

	response.WithJSON(w, http.StatusOK, result)
}
