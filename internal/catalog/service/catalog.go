package service

import (
	"context"

	"gymbook/internal/catalog/repository"
	"gymbook/pkg/model"
	"gymbook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// safeClassFields is the whitelist exposed by PublicClasses. Fields outside
// it never leave the service, whatever a class document happens to carry.
var safeClassFields = []string{"name", "time", "capacity", "enrolled"}

type CatalogService interface {
	PublicClasses(ctx context.Context, limit int64, orderBy string) ([]map[string]any, error)
	AllBooks(ctx context.Context) ([]map[string]any, error)
	CountBooks(ctx context.Context) (int64, error)
	CreateBook(ctx context.Context, book *model.Book) (string, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) PublicClasses(ctx context.Context, limit int64, orderBy string) ([]map[string]any, error) {
	// Ordering is only honoured on whitelisted fields.
	if !isSafeClassField(orderBy) {
		orderBy = ""
	}

	docs, err := s.repo.ListClasses(ctx, limit, orderBy)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(docs))
	for _, raw := range docs {
		safe := map[string]any{"id": docID(raw["_id"])}
		for _, k := range safeClassFields {
			if v, ok := raw[k]; ok {
				safe[k] = v
			} else {
				safe[k] = nil
			}
		}
		out = append(out, safe)
	}
	return out, nil
}

func (s *catalogService) AllBooks(ctx context.Context) ([]map[string]any, error) {
	docs, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(docs))
	for _, raw := range docs {
		item := make(map[string]any, len(raw))
		for k, v := range raw {
			if k == "_id" {
				continue
			}
			item[k] = v
		}
		item["id"] = docID(raw["_id"])
		out = append(out, item)
	}
	return out, nil
}

func (s *catalogService) CountBooks(ctx context.Context) (int64, error) {
	return s.repo.CountBooks(ctx)
}

// CreateBook stores the book with every string field already uppercased, so
// readers never observe a pre-transform document.
func (s *catalogService) CreateBook(ctx context.Context, book *model.Book) (string, error) {
	transformed := *book
	transformed.Title = Upperize(book.Title).(string)
	transformed.Author = Upperize(book.Author).(string)
	if book.Tags != nil {
		tags := sanitizer.NormalizeStringSlice(book.Tags, sanitizer.NormalizeText)
		transformed.Tags = Upperize(tags).([]string)
	}
	if book.Meta != nil {
		transformed.Meta = Upperize(book.Meta).(map[string]any)
	}
	return s.repo.CreateBook(ctx, &transformed)
}

func isSafeClassField(field string) bool {
	for _, k := range safeClassFields {
		if field == k {
			return true
		}
	}
	return false
}

// docID renders a document id for JSON output. Seed data uses string ids;
// driver inserts use ObjectIDs.
func docID(v any) any {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return v
}
