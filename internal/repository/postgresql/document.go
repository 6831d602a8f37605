package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/document"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

const documentColumns = `
	id, employee_id, type, title, file_name, content_type,
	size_bytes, storage_key, uploaded_by, created_at, updated_at
`

func scanDocument(row pgx.Row) (document.Document, error) {
	var d document.Document
	err := row.Scan(
		&d.ID,
		&d.EmployeeID,
		&d.Type,
		&d.Title,
		&d.FileName,
		&d.ContentType,
		&d.SizeBytes,
		&d.StorageKey,
		&d.UploadedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func (r *documentRepositoryImpl) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO documents (
			id, employee_id, type, title, file_name, content_type,
			size_bytes, storage_key, uploaded_by, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5,
			$6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		doc.EmployeeID, doc.Type, doc.Title, doc.FileName, doc.ContentType,
		doc.SizeBytes, doc.StorageKey, doc.UploadedBy,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		return document.Document{}, err
	}
	return doc, nil
}

func (r *documentRepositoryImpl) GetByID(ctx context.Context, id string) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, err
	}
	return d, nil
}

func (r *documentRepositoryImpl) List(ctx context.Context, filter document.DocumentFilter) ([]document.Document, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argPos))
		args = append(args, *filter.Type)
		argPos++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM documents ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT %s FROM documents
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, documentColumns, where, argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, d)
	}

	return docs, total, rows.Err()
}

func (r *documentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM documents WHERE id = $1`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return document.ErrDocumentNotFound
	}
	return nil
}
