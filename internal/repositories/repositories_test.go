package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rohits-web03/llamastore/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "data", "test.db"), gormlogger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "x", nil)
	assert.Error(t, err)
}

func TestMigrate_CreatesSingleSecret(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	secrets := NewSecretRepository(db)
	first, err := secrets.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2*secretKeyBytes)

	require.NoError(t, Migrate(ctx, db), "migrating again is a no-op")

	var n int64
	require.NoError(t, db.Model(&models.SecretKey{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	second, err := secrets.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSecretRepository_Missing(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Where("1 = 1").Delete(&models.SecretKey{}).Error)

	_, err := NewSecretRepository(db).Get(context.Background())
	assert.ErrorIs(t, err, ErrNoSecretKey)
}

func TestUserRepository_EmailIsCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := &models.User{Email: "Mixed@Example.COM", HashedPassword: "h"}
	require.NoError(t, repo.CreateAndPrune(ctx, u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, "mixed@example.com", u.Email)

	got, ok, err := repo.GetByEmail(ctx, "MIXED@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)

	_, ok, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateAndPrune(ctx, &models.User{Email: "a@b.c", HashedPassword: "h"}))
	assert.ErrorIs(t, repo.CreateAndPrune(ctx, &models.User{Email: "A@B.C", HashedPassword: "h"}), ErrDuplicate)
}

func TestLlamaRepository_DuplicateNameRejected(t *testing.T) {
	repo := NewLlamaRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Llama{Name: "Dolly", Age: 1, Color: models.ColorGray, Rating: 3}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Llama{Name: "Dolly", Age: 2, Color: models.ColorGray, Rating: 3}), ErrDuplicate)

	other := models.Llama{Name: "Molly", Age: 1, Color: models.ColorGray, Rating: 3}
	require.NoError(t, repo.Create(ctx, &other))
	other.Name = "Dolly"
	assert.ErrorIs(t, repo.Save(ctx, &other), ErrDuplicate)
}

func TestUserRepository_PrunesOldestBeyondCap(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	// Leave a gap in the id sequence so one insert pushes two users out.
	require.NoError(t, db.Create(&models.User{ID: 1, Email: "old1@example.com", HashedPassword: "h"}).Error)
	require.NoError(t, db.Create(&models.User{ID: 2, Email: "old2@example.com", HashedPassword: "h"}).Error)
	require.NoError(t, db.Create(&models.User{ID: 1002, Email: "recent@example.com", HashedPassword: "h"}).Error)

	u := &models.User{Email: "new@example.com", HashedPassword: "h"}
	require.NoError(t, repo.CreateAndPrune(ctx, u))
	assert.EqualValues(t, 1003, u.ID)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	var emails []string
	for _, x := range users {
		emails = append(emails, x.Email)
	}
	// 1003-1000 = 3: ids 1 and 2 are gone.
	assert.Equal(t, []string{"recent@example.com", "new@example.com"}, emails)
}

func TestLlamaRepository_CRUD(t *testing.T) {
	repo := NewLlamaRepository(newTestDB(t))
	ctx := context.Background()

	l := &models.Llama{Name: "Dolly", Age: 2, Color: models.ColorBrown, Rating: 3}
	require.NoError(t, repo.Create(ctx, l))
	require.NotZero(t, l.ID)

	byName, ok, err := repo.GetByName(ctx, "Dolly")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *l, byName)

	l.Age = 3
	l.Color = models.ColorGray
	require.NoError(t, repo.Save(ctx, l))
	byID, ok, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, byID.Age)
	assert.Equal(t, models.ColorGray, byID.Color)

	assert.Error(t, repo.Create(ctx, &models.Llama{Name: "Dolly", Age: 1, Color: models.ColorBlack, Rating: 1}),
		"names are unique in the database too")

	require.NoError(t, repo.Delete(ctx, l.ID))
	_, ok, err = repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLlamaRepository_ListInInsertionOrder(t *testing.T) {
	repo := NewLlamaRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Llama{Name: fmt.Sprintf("L%d", 5-i), Age: i, Color: models.ColorWhite, Rating: 1}))
	}
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, l := range all {
		assert.Equal(t, fmt.Sprintf("L%d", 5-i), l.Name)
	}
}

func TestPictureRepository_Upsert(t *testing.T) {
	repo := NewPictureRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, 9, "a/9.png"))
	require.NoError(t, repo.Upsert(ctx, 9, "b/9.png"))

	p, ok, err := repo.GetByLlamaID(ctx, 9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b/9.png", p.ImageFileLocation)

	require.NoError(t, repo.DeleteByLlamaID(ctx, 9))
	_, ok, err = repo.GetByLlamaID(ctx, 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeedLlamas_OnlyIntoEmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := SeedLlamas(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(DemoLlamas), n)

	n, err = SeedLlamas(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, n)

	repo := NewLlamaRepository(db)
	got, ok, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Barack O'Llama", got.Name)

	next := models.Llama{Name: "Newcomer", Age: 1, Color: models.ColorBrown, Rating: 3}
	require.NoError(t, repo.Create(ctx, &next), "ids keep counting after the seeded rows")
	assert.EqualValues(t, len(DemoLlamas)+1, next.ID)
}

func TestSyncIDSequence_NoopOnSQLite(t *testing.T) {
	assert.NoError(t, syncIDSequence(newTestDB(t), "llamas"))
}
