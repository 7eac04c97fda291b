package repositories

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newGormStoreWithMock(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)
	return NewGormStore(gdb), mock
}

// sqlLike matches statements containing each fragment, in order.
func sqlLike(fragments ...string) string {
	quoted := make([]string, len(fragments))
	for i, f := range fragments {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return "(?s)" + strings.Join(quoted, ".*")
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("first: %w", gorm.ErrRecordNotFound)), ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicate)

	other := fmt.Errorf("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestGormStore_SaveProfileUpsertsOnUser(t *testing.T) {
	s, mock := newGormStoreWithMock(t)
	owner, id := uuid.New(), uuid.New()
	stored := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(sqlLike(
		`INSERT INTO "profiles"`,
		`ON CONFLICT ("user_id") DO UPDATE SET`,
		`"executor_contact_id"="excluded"."executor_contact_id"`,
		`"wait_period_days"="excluded"."wait_period_days"`,
		`"master_scrub_enabled"="excluded"."master_scrub_enabled"`,
		`RETURNING *`,
	)).WillReturnRows(sqlmock.NewRows([]string{
		"id", "user_id", "executor_contact_id", "wait_period_days", "master_scrub_enabled", "created_at", "updated_at",
	}).AddRow(id.String(), owner.String(), nil, 21, true, stored, time.Now().UTC()))

	p := &models.Profile{UserID: owner, WaitPeriodDays: 21, MasterScrubEnabled: true}
	require.NoError(t, s.SaveProfile(context.Background(), p))

	assert.Equal(t, id, p.ID)
	assert.True(t, stored.Equal(p.CreatedAt), "created_at comes from the stored row")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SaveSocialIntentionUpsertsOnUserAndPlatform(t *testing.T) {
	s, mock := newGormStoreWithMock(t)
	owner, id := uuid.New(), uuid.New()

	mock.ExpectQuery(sqlLike(
		`INSERT INTO "social_intentions"`,
		`ON CONFLICT ("user_id","platform") DO UPDATE SET`,
		`"intention"="excluded"."intention"`,
		`"notes"="excluded"."notes"`,
		`RETURNING *`,
	)).WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "platform", "intention"}).
		AddRow(id.String(), owner.String(), "instagram", "memorialize"))

	si := &models.SocialIntention{UserID: owner, Platform: "instagram", Intention: "memorialize"}
	require.NoError(t, s.SaveSocialIntention(context.Background(), si))
	assert.Equal(t, id, si.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_UpdateAssignmentWritesIntentAndDetach(t *testing.T) {
	s, mock := newGormStoreWithMock(t)
	owner, id := uuid.New(), uuid.New()
	intent := models.IntentArchiveQuietly

	// reattach: detached_at is written as NULL, the intent is kept
	mock.ExpectExec(sqlLike(
		`UPDATE "relational_assignments" SET "intent_action"=$1,"detached_at"=$2 WHERE user_id = $3 AND`,
		`"id" = $4`,
	)).WithArgs("archive_quietly", nil, owner.String(), id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	a := &models.RelationalAssignment{ID: id, UserID: owner, IntentAction: &intent}
	require.NoError(t, s.UpdateAssignment(context.Background(), a))

	mock.ExpectExec(sqlLike(`UPDATE "relational_assignments"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.UpdateAssignment(context.Background(), a), ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_DetachCollection(t *testing.T) {
	s, mock := newGormStoreWithMock(t)
	owner, coll := uuid.New(), uuid.New()

	mock.ExpectExec(sqlLike(
		`UPDATE "digital_assets" SET "collection_id"=$1 WHERE user_id = $2 AND collection_id = $3`,
	)).WithArgs(nil, owner.String(), coll.String()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := s.DetachCollection(context.Background(), owner, coll)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_AssignmentReadsSkipDetached(t *testing.T) {
	s, mock := newGormStoreWithMock(t)
	owner := uuid.New()
	cols := []string{"id", "user_id", "asset_id", "contact_id", "intent_action", "detached_at", "created_at"}

	mock.ExpectQuery(sqlLike(
		`SELECT * FROM "relational_assignments" WHERE user_id = $1 AND detached_at IS NULL ORDER BY created_at ASC`,
	)).WillReturnRows(sqlmock.NewRows(cols).
		AddRow(uuid.NewString(), owner.String(), uuid.NewString(), uuid.NewString(), "keep_and_share", nil, time.Now()))

	rows, err := s.ListAssignments(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	mock.ExpectQuery(sqlLike(
		`SELECT * FROM "relational_assignments" WHERE user_id = $1 AND id = $2 AND detached_at IS NULL`,
		`LIMIT`,
	)).WillReturnRows(sqlmock.NewRows(cols))

	_, err = s.GetAssignment(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_UniqueViolationIsDuplicate(t *testing.T) {
	s, mock := newGormStoreWithMock(t)

	mock.ExpectQuery(sqlLike(`INSERT INTO "trusted_contacts"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := s.CreateContact(context.Background(), &models.TrustedContact{UserID: uuid.New(), Name: "Tom", Email: "tom@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentPairIsUnique(t *testing.T) {
	sch, err := schema.Parse(&models.RelationalAssignment{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	var pair *schema.Index
	for _, idx := range sch.ParseIndexes() {
		if idx.Name == "idx_assignment_pair" {
			pair = idx
		}
	}
	require.NotNil(t, pair)
	assert.Equal(t, "UNIQUE", pair.Class)

	var cols []string
	for _, f := range pair.Fields {
		cols = append(cols, f.DBName)
	}
	assert.ElementsMatch(t, []string{"user_id", "asset_id", "contact_id"}, cols)
}
