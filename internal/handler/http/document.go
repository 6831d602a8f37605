package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/peoplehq/hrms-backend-go/internal/domain/document"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
	documentsvc "github.com/peoplehq/hrms-backend-go/internal/service/document"
)

type DocumentHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	Link(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type DocumentHandlerImpl struct {
	documentService *documentsvc.Service
}

func NewDocumentHandler(documentService *documentsvc.Service) DocumentHandler {
	return &DocumentHandlerImpl{documentService: documentService}
}

func (h *DocumentHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(document.MaxFileSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file part", nil)
		return
	}
	defer file.Close()

	req := document.UploadDocumentRequest{
		EmployeeID: r.FormValue("employee_id"),
		Type:       r.FormValue("type"),
		Title:      r.FormValue("title"),
	}

	// Non-HR callers upload into their own profile only.
	callerID := middleware.UserID(r.Context())
	if !middleware.CallerRole(r.Context()).CanApprove() || req.EmployeeID == "" {
		req.EmployeeID = callerID
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := h.documentService.Upload(r.Context(), callerID, req, header.Filename, contentType, header.Size, file)
	if err != nil {
		slog.Error("Upload document error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded", doc)
}

func (h *DocumentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := document.DocumentFilter{
		Type:  queryString(r, "type"),
		Page:  queryIntDefault(r, "page", 1),
		Limit: queryIntDefault(r, "limit", 20),
	}

	if middleware.CallerRole(r.Context()).CanApprove() {
		filter.EmployeeID = queryString(r, "employee_id")
	} else {
		id := middleware.UserID(r.Context())
		filter.EmployeeID = &id
	}

	docs, total, err := h.documentService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List documents error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, docs, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *DocumentHandlerImpl) canAccess(r *http.Request, doc document.Document) bool {
	return middleware.CallerRole(r.Context()).CanApprove() ||
		doc.EmployeeID == middleware.UserID(r.Context())
}

func (h *DocumentHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	doc, rc, err := h.documentService.Download(r.Context(), pathParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	if !h.canAccess(r, doc) {
		response.NotFound(w, "Document not found")
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, doc.FileName))
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("Document stream error", "error", err)
	}
}

func (h *DocumentHandlerImpl) Link(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	doc, err := h.documentService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !h.canAccess(r, doc) {
		response.NotFound(w, "Document not found")
		return
	}

	url, err := h.documentService.URL(r.Context(), id)
	if err != nil {
		slog.Error("Document link error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"url": url})
}

func (h *DocumentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	doc, err := h.documentService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !h.canAccess(r, doc) {
		response.NotFound(w, "Document not found")
		return
	}

	if err := h.documentService.Remove(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		slog.Error("Delete document error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document deleted", nil)
}
