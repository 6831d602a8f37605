package http

import (
	"log/slog"
	"net/http"

	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
	notificationsvc "github.com/peoplehq/hrms-backend-go/internal/service/notification"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService *notificationsvc.Service
}

func NewNotificationHandler(notificationService *notificationsvc.Service) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService}
}

func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page := queryIntDefault(r, "page", 1)
	limit := queryIntDefault(r, "limit", 20)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, total, err := h.notificationService.ListForUser(
		r.Context(), middleware.UserID(r.Context()), unreadOnly, page, limit)
	if err != nil {
		slog.Error("List notifications error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, notifications, response.NewMeta(page, limit, total))
}

func (h *NotificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.CountUnread(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int64{"unread": count})
}

func (h *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	err := h.notificationService.NotificationRepository.MarkRead(
		r.Context(), pathParam(r, "id"), middleware.UserID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

func (h *NotificationHandlerImpl) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.MarkAllRead(r.Context(), middleware.UserID(r.Context())); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}

func (h *NotificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.notificationService.NotificationRepository.Delete(
		r.Context(), pathParam(r, "id"), middleware.UserID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification deleted", nil)
}
