package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/logger"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// GormStore implements Store on Postgres.
type GormStore struct {
	db *gorm.DB
}

// ConnectDatabase opens the database and runs migrations.
func ConnectDatabase(dsn string, l zerolog.Logger) (*GormStore, error) {
	gormLog := gormlogger.New(logger.GormWriter{L: l}, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.TrustedContact{},
		&models.Collection{},
		&models.DigitalAsset{},
		&models.RelationalAssignment{},
		&models.Profile{},
		&models.SocialIntention{},
		&models.WaitlistEntry{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	l.Info().Msg("Successfully connected to database")
	return NewGormStore(db), nil
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// affected turns a zero-row write into ErrNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return u, translate(err)
}

func (s *GormStore) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return u, translate(err)
}

func (s *GormStore) UpdateUserPassword(ctx context.Context, id uuid.UUID, hash string) error {
	return affected(s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash))
}

func (s *GormStore) AddRole(ctx context.Context, r *models.UserRole) error {
	return translate(s.db.WithContext(ctx).Create(r).Error)
}

func (s *GormStore) ListRoles(ctx context.Context, userID uuid.UUID) ([]models.UserRole, error) {
	var rows []models.UserRole
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, translate(err)
}

func (s *GormStore) CreateContact(ctx context.Context, c *models.TrustedContact) error {
	return translate(s.db.WithContext(ctx).Create(c).Error)
}

func (s *GormStore) GetContact(ctx context.Context, userID, id uuid.UUID) (models.TrustedContact, error) {
	var c models.TrustedContact
	err := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&c).Error
	return c, translate(err)
}

func (s *GormStore) ListContacts(ctx context.Context, userID uuid.UUID) ([]models.TrustedContact, error) {
	var rows []models.TrustedContact
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	return rows, translate(err)
}

func (s *GormStore) DeleteContact(ctx context.Context, userID, id uuid.UUID) error {
	return affected(s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.TrustedContact{}))
}

func (s *GormStore) CreateAsset(ctx context.Context, a *models.DigitalAsset) error {
	return translate(s.db.WithContext(ctx).Create(a).Error)
}

func (s *GormStore) GetAsset(ctx context.Context, userID, id uuid.UUID) (models.DigitalAsset, error) {
	var a models.DigitalAsset
	err := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&a).Error
	return a, translate(err)
}

func (s *GormStore) ListAssets(ctx context.Context, userID uuid.UUID) ([]models.DigitalAsset, error) {
	var rows []models.DigitalAsset
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	return rows, translate(err)
}

func (s *GormStore) UpdateAsset(ctx context.Context, a *models.DigitalAsset) error {
	res := s.db.WithContext(ctx).Model(a).
		Where("user_id = ?", a.UserID).
		Select("name", "type", "mapping_source", "file_path", "collection_id").
		Updates(a)
	return affected(res)
}

func (s *GormStore) DeleteAsset(ctx context.Context, userID, id uuid.UUID) error {
	return affected(s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.DigitalAsset{}))
}

func (s *GormStore) DetachCollection(ctx context.Context, userID, collectionID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.DigitalAsset{}).
		Where("user_id = ? AND collection_id = ?", userID, collectionID).
		Update("collection_id", nil)
	return res.RowsAffected, translate(res.Error)
}

func (s *GormStore) CreateCollection(ctx context.Context, c *models.Collection) error {
	return translate(s.db.WithContext(ctx).Create(c).Error)
}

func (s *GormStore) GetCollection(ctx context.Context, userID, id uuid.UUID) (models.Collection, error) {
	var c models.Collection
	err := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&c).Error
	return c, translate(err)
}

func (s *GormStore) ListCollections(ctx context.Context, userID uuid.UUID) ([]models.Collection, error) {
	var rows []models.Collection
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error
	return rows, translate(err)
}

func (s *GormStore) DeleteCollection(ctx context.Context, userID, id uuid.UUID) error {
	return affected(s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.Collection{}))
}

func (s *GormStore) CreateAssignment(ctx context.Context, a *models.RelationalAssignment) error {
	return translate(s.db.WithContext(ctx).Create(a).Error)
}

func (s *GormStore) GetAssignment(ctx context.Context, userID, id uuid.UUID) (models.RelationalAssignment, error) {
	var a models.RelationalAssignment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ? AND detached_at IS NULL", userID, id).
		First(&a).Error
	return a, translate(err)
}

func (s *GormStore) FindAssignment(ctx context.Context, userID, assetID, contactID uuid.UUID) (models.RelationalAssignment, error) {
	var a models.RelationalAssignment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND asset_id = ? AND contact_id = ?", userID, assetID, contactID).
		Order("created_at ASC").
		First(&a).Error
	return a, translate(err)
}

func (s *GormStore) ListAssignments(ctx context.Context, userID uuid.UUID) ([]models.RelationalAssignment, error) {
	var rows []models.RelationalAssignment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND detached_at IS NULL", userID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, translate(err)
}

func (s *GormStore) UpdateAssignment(ctx context.Context, a *models.RelationalAssignment) error {
	res := s.db.WithContext(ctx).Model(a).
		Where("user_id = ?", a.UserID).
		Select("intent_action", "detached_at").
		Updates(a)
	return affected(res)
}

func (s *GormStore) DeleteAssignment(ctx context.Context, userID, id uuid.UUID) error {
	return affected(s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.RelationalAssignment{}))
}

func (s *GormStore) DeleteAssignmentsForAsset(ctx context.Context, userID, assetID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ? AND asset_id = ?", userID, assetID).Delete(&models.RelationalAssignment{})
	return res.RowsAffected, translate(res.Error)
}

func (s *GormStore) DeleteAssignmentsForContact(ctx context.Context, userID, contactID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ? AND contact_id = ?", userID, contactID).Delete(&models.RelationalAssignment{})
	return res.RowsAffected, translate(res.Error)
}

func (s *GormStore) GetProfile(ctx context.Context, userID uuid.UUID) (models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	return p, translate(err)
}

func (s *GormStore) SaveProfile(ctx context.Context, p *models.Profile) error {
	// RETURNING * so an update reports the stored created_at.
	err := s.db.WithContext(ctx).Clauses(clause.Returning{}, clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"executor_contact_id", "wait_period_days", "master_scrub_enabled", "updated_at"}),
	}).Create(p).Error
	return translate(err)
}

func (s *GormStore) ClearExecutor(ctx context.Context, userID, contactID uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ? AND executor_contact_id = ?", userID, contactID).
		Update("executor_contact_id", nil).Error
	return translate(err)
}

func (s *GormStore) ListSocialIntentions(ctx context.Context, userID uuid.UUID) ([]models.SocialIntention, error) {
	var rows []models.SocialIntention
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error
	return rows, translate(err)
}

func (s *GormStore) SaveSocialIntention(ctx context.Context, si *models.SocialIntention) error {
	err := s.db.WithContext(ctx).Clauses(clause.Returning{}, clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{"intention", "notes", "updated_at"}),
	}).Create(si).Error
	return translate(err)
}

func (s *GormStore) DeleteSocialIntention(ctx context.Context, userID uuid.UUID, platform models.Platform) error {
	return affected(s.db.WithContext(ctx).
		Where("user_id = ? AND platform = ?", userID, platform).
		Delete(&models.SocialIntention{}))
}

func (s *GormStore) AddWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) error {
	return translate(s.db.WithContext(ctx).Create(e).Error)
}
