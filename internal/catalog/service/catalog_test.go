package service

import (
	"context"
	"testing"

	"gymbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type memoryCatalog struct {
	classes []bson.M
	books   []bson.M

	created     []*model.Book
	gotLimit    int64
	gotOrderBy  string
	listClasses error
}

func (m *memoryCatalog) ListClasses(_ context.Context, limit int64, orderBy string) ([]bson.M, error) {
	m.gotLimit = limit
	m.gotOrderBy = orderBy
	if m.listClasses != nil {
		return nil, m.listClasses
	}
	return m.classes, nil
}

func (m *memoryCatalog) ListBooks(_ context.Context) ([]bson.M, error) {
	return m.books, nil
}

func (m *memoryCatalog) CountBooks(_ context.Context) (int64, error) {
	return int64(len(m.books)), nil
}

func (m *memoryCatalog) CreateBook(_ context.Context, book *model.Book) (string, error) {
	m.created = append(m.created, book)
	return "book1", nil
}

func TestPublicClasses_SafeFieldWhitelist(t *testing.T) {
	repo := &memoryCatalog{
		classes: []bson.M{
			{
				"_id":        "yoga1",
				"name":       "Yoga",
				"time":       "09:00",
				"capacity":   10,
				"enrolled":   3,
				"instructor": "private note",
				"revenue":    999,
			},
		},
	}
	svc := NewCatalogService(repo)

	data, err := svc.PublicClasses(context.Background(), 0, "")
	require.NoError(t, err)
	require.Len(t, data, 1)

	assert.Equal(t, "yoga1", data[0]["id"])
	assert.Equal(t, "Yoga", data[0]["name"])
	assert.Equal(t, 3, data[0]["enrolled"])
	assert.NotContains(t, data[0], "instructor")
	assert.NotContains(t, data[0], "revenue")
}

func TestPublicClasses_MissingFieldsAreNull(t *testing.T) {
	repo := &memoryCatalog{classes: []bson.M{{"_id": "bare", "name": "Bare"}}}
	svc := NewCatalogService(repo)

	data, err := svc.PublicClasses(context.Background(), 0, "")
	require.NoError(t, err)
	require.Len(t, data, 1)

	for _, k := range []string{"time", "capacity", "enrolled"} {
		v, present := data[0][k]
		assert.True(t, present, "key %q should be present", k)
		assert.Nil(t, v, "key %q should be null", k)
	}
}

func TestPublicClasses_OrderByRestrictedToWhitelist(t *testing.T) {
	repo := &memoryCatalog{}
	svc := NewCatalogService(repo)

	_, err := svc.PublicClasses(context.Background(), 5, "time")
	require.NoError(t, err)
	assert.Equal(t, "time", repo.gotOrderBy)
	assert.Equal(t, int64(5), repo.gotLimit)

	_, err = svc.PublicClasses(context.Background(), 0, "revenue")
	require.NoError(t, err)
	assert.Equal(t, "", repo.gotOrderBy, "non-whitelisted sort field must be dropped")
}

func TestAllBooks_RenamesID(t *testing.T) {
	repo := &memoryCatalog{
		books: []bson.M{{"_id": "b1", "title": "DUNE", "stray": "kept"}},
	}
	svc := NewCatalogService(repo)

	items, err := svc.AllBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "b1", items[0]["id"])
	assert.Equal(t, "DUNE", items[0]["title"])
	assert.Equal(t, "kept", items[0]["stray"])
	assert.NotContains(t, items[0], "_id")
}

func TestCreateBook_UppercasesBeforeInsert(t *testing.T) {
	repo := &memoryCatalog{}
	svc := NewCatalogService(repo)

	original := &model.Book{
		Title:  "go in action",
		Author: "william kennedy",
		Tags:   []string{"go", "programming"},
		Meta:   map[string]any{"publisher": "manning", "year": 2015},
	}

	id, err := svc.CreateBook(context.Background(), original)
	require.NoError(t, err)
	assert.Equal(t, "book1", id)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.Equal(t, "GO IN ACTION", stored.Title)
	assert.Equal(t, "WILLIAM KENNEDY", stored.Author)
	assert.Equal(t, []string{"GO", "PROGRAMMING"}, stored.Tags)
	assert.Equal(t, "MANNING", stored.Meta["publisher"])
	assert.Equal(t, 2015, stored.Meta["year"])

	assert.Equal(t, "go in action", original.Title, "caller's book must not be mutated")
}
