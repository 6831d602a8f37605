package document

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/peoplehq/hrms-backend-go/internal/domain/activity"
	"github.com/peoplehq/hrms-backend-go/internal/domain/document"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/storage"
	activitysvc "github.com/peoplehq/hrms-backend-go/internal/service/activity"
)

type Service struct {
	document.DocumentRepository
	storage  storage.FileStorage
	recorder *activitysvc.Recorder
}

func NewService(repo document.DocumentRepository, store storage.FileStorage, recorder *activitysvc.Recorder) *Service {
	return &Service{
		DocumentRepository: repo,
		storage:            store,
		recorder:           recorder,
	}
}

// Upload stores the file bytes and the metadata row. The storage key is
// namespaced by employee so backend listings stay navigable.
func (s *Service) Upload(ctx context.Context, actorID string, req document.UploadDocumentRequest, fileName, contentType string, size int64, file io.Reader) (document.Document, error) {
	if size > document.MaxFileSize {
		return document.Document{}, document.ErrFileTooLarge
	}

	key := fmt.Sprintf("documents/%s/%s%s", req.EmployeeID, uuid.NewString(), filepath.Ext(fileName))
	if _, err := s.storage.Upload(ctx, file, key, contentType); err != nil {
		return document.Document{}, fmt.Errorf("failed to store file: %w", err)
	}

	doc := document.Document{
		EmployeeID:  req.EmployeeID,
		Type:        document.DocumentType(req.Type),
		Title:       req.Title,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
		StorageKey:  key,
		UploadedBy:  actorID,
	}

	created, err := s.Create(ctx, doc)
	if err != nil {
		// Metadata insert failed; drop the orphaned object.
		_ = s.storage.Delete(ctx, key)
		return document.Document{}, err
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionDocumentUploaded,
		EntityType: "document",
		EntityID:   created.ID,
		Details:    map[string]any{"file_name": fileName},
	})

	return created, nil
}

// Download streams the stored bytes of a document.
func (s *Service) Download(ctx context.Context, id string) (document.Document, io.ReadCloser, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return document.Document{}, nil, err
	}

	rc, err := s.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		return document.Document{}, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return doc, rc, nil
}

// URL returns a direct (possibly presigned) link to the stored file.
func (s *Service) URL(ctx context.Context, id string) (string, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetURL(ctx, doc.StorageKey, 15*time.Minute)
}

func (s *Service) Remove(ctx context.Context, actorID, id string) error {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.DocumentRepository.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionDocumentDeleted,
		EntityType: "document",
		EntityID:   id,
	})

	return nil
}
