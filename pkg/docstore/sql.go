package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is one row of the documents table.
type Document struct {
	Key       string    `gorm:"column:doc_key;primaryKey;size:255"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Document) TableName() string { return "documents" }

// SQL keeps documents in a relational table through gorm.
type SQL struct {
	client *db.Client
	now    func() time.Time
}

func NewSQL(client *db.Client) *SQL {
	return &SQL{client: client, now: time.Now}
}

// AutoMigrate creates the documents table through gorm. The goose migration in
// pkg/migrate is the production path.
func (s *SQL) AutoMigrate(ctx context.Context) error {
	return s.client.DB().WithContext(ctx).AutoMigrate(&Document{})
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var doc Document
	err := s.client.DB().WithContext(ctx).
		Where("doc_key = ?", key).
		Take(&doc).Error
	if db.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	doc := Document{Key: key, Value: string(value), UpdatedAt: s.now().UTC()}
	err := s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&doc).Error
	if err != nil {
		if db.IsValueTooLarge(err) {
			return fmt.Errorf("saving document %s: %w", key, ErrQuotaExceeded)
		}
		return fmt.Errorf("saving document %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Where("doc_key = ?", key).Delete(&Document{}).Error
	})
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *SQL) Close() error {
	return s.client.Close()
}
