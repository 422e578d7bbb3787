package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsigniaNotFound = errors.New("insignia not found")
	ErrInsigniaExists   = errors.New("insignia already exists")
	ErrNotOwned         = errors.New("insignia not owned")
)

type Insignia struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
	Image       string
	Criteria    string  `gorm:"not null;index:idx_insignia_criteria_quantity,priority:1"`
	Quantity    float64 `gorm:"not null;index:idx_insignia_criteria_quantity,priority:2"`
	CreatedAt   time.Time
}

// InsigniaPoints holds one ledger line per (user, criteria).
type InsigniaPoints struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Criteria  string    `gorm:"primaryKey"`
	Score     float64   `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

type UserInsignia struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	InsigniaID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Insignia   Insignia  `gorm:"foreignKey:InsigniaID"`
	Visible    bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

type InsigniaDAO struct {
	db *gorm.DB
}

func NewInsigniaDAO(db *gorm.DB) *InsigniaDAO {
	return &InsigniaDAO{
		db: db,
	}
}

func (d *InsigniaDAO) Insert(ctx context.Context, insignia Insignia) (Insignia, error) {
	if insignia.ID == uuid.Nil {
		insignia.ID = uuid.New()
	}

	result := d.db.WithContext(ctx).Create(&insignia)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Insignia{}, ErrInsigniaExists
		}

		return Insignia{}, result.Error
	}

	return insignia, nil
}

func (d *InsigniaDAO) FindAll(ctx context.Context) ([]Insignia, error) {
	var insignias []Insignia

	if err := d.db.WithContext(ctx).Order("criteria, quantity").Find(&insignias).Error; err != nil {
		return nil, err
	}

	return insignias, nil
}

func (d *InsigniaDAO) FindByID(ctx context.Context, id uuid.UUID) (Insignia, error) {
	var insignia Insignia

	result := d.db.WithContext(ctx).First(&insignia, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Insignia{}, ErrInsigniaNotFound
		}

		return Insignia{}, result.Error
	}

	return insignia, nil
}

func (d *InsigniaDAO) FindReached(ctx context.Context, criteria string, score float64) ([]Insignia, error) {
	var insignias []Insignia

	result := d.db.WithContext(ctx).Where("criteria = ? AND quantity <= ?", criteria, score).
		Order("quantity").Find(&insignias)
	if result.Error != nil {
		return nil, result.Error
	}

	return insignias, nil
}

// IncrementPoints adds delta to the (user, criteria) score in a single
// upsert statement and returns the stored total.
func (d *InsigniaDAO) IncrementPoints(ctx context.Context, userID uuid.UUID, criteria string, delta float64) (float64, error) {
	row := InsigniaPoints{
		UserID:   userID,
		Criteria: criteria,
		Score:    delta,
	}

	result := d.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "criteria"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":      gorm.Expr("insignia_points.score + ?", delta),
				"updated_at": time.Now(),
			}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "score"}}},
	).Create(&row)
	if result.Error != nil {
		return 0, result.Error
	}

	return row.Score, nil
}

func (d *InsigniaDAO) FindPoints(ctx context.Context, userID uuid.UUID) ([]InsigniaPoints, error) {
	var rows []InsigniaPoints

	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// Grant gives the insignias to the user. Already owned insignias are left
// as they are.
func (d *InsigniaDAO) Grant(ctx context.Context, userID uuid.UUID, insigniaIDs []uuid.UUID) error {
	if len(insigniaIDs) == 0 {
		return nil
	}

	rows := make([]UserInsignia, len(insigniaIDs))
	for i, id := range insigniaIDs {
		rows[i] = UserInsignia{UserID: userID, InsigniaID: id}
	}

	return d.db.WithContext(ctx).Omit("Insignia").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (d *InsigniaDAO) FindOwned(ctx context.Context, userID uuid.UUID) ([]UserInsignia, error) {
	var rows []UserInsignia

	result := d.db.WithContext(ctx).Preload("Insignia").Where("user_id = ?", userID).
		Order("created_at").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *InsigniaDAO) SetVisible(ctx context.Context, userID, insigniaID uuid.UUID, visible bool) error {
	result := d.db.WithContext(ctx).Model(&UserInsignia{}).
		Where("user_id = ? AND insignia_id = ?", userID, insigniaID).
		Update("visible", visible)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotOwned
	}

	return nil
}
