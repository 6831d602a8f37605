package http

import (
	"log/slog"
	"net/http"

	"github.com/peoplehq/hrms-backend-go/internal/domain/activity"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
	activitysvc "github.com/peoplehq/hrms-backend-go/internal/service/activity"
)

type ActivityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type ActivityHandlerImpl struct {
	recorder *activitysvc.Recorder
}

func NewActivityHandler(recorder *activitysvc.Recorder) ActivityHandler {
	return &ActivityHandlerImpl{recorder: recorder}
}

func (h *ActivityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := activity.ActivityFilter{
		ActorID:    queryString(r, "actor_id"),
		Action:     queryString(r, "action"),
		EntityType: queryString(r, "entity_type"),
		Page:       queryIntDefault(r, "page", 1),
		Limit:      queryIntDefault(r, "limit", 50),
	}

	entries, total, err := h.recorder.List(r.Context(), filter)
	if err != nil {
		slog.Error("List activity log error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, entries, response.NewMeta(filter.Page, filter.Limit, total))
}
