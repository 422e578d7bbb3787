package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository/dao"
)

var (
	ErrInsigniaNotFound = dao.ErrInsigniaNotFound
	ErrInsigniaExists   = dao.ErrInsigniaExists
	ErrNotOwned         = dao.ErrNotOwned
)

type InsigniaDAO interface {
	Insert(ctx context.Context, insignia dao.Insignia) (dao.Insignia, error)
	FindAll(ctx context.Context) ([]dao.Insignia, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Insignia, error)
	FindReached(ctx context.Context, criteria string, score float64) ([]dao.Insignia, error)
	IncrementPoints(ctx context.Context, userID uuid.UUID, criteria string, delta float64) (float64, error)
	FindPoints(ctx context.Context, userID uuid.UUID) ([]dao.InsigniaPoints, error)
	Grant(ctx context.Context, userID uuid.UUID, insigniaIDs []uuid.UUID) error
	FindOwned(ctx context.Context, userID uuid.UUID) ([]dao.UserInsignia, error)
	SetVisible(ctx context.Context, userID, insigniaID uuid.UUID, visible bool) error
}

type InsigniaRepository struct {
	dao InsigniaDAO
}

func NewInsigniaRepository(dao InsigniaDAO) *InsigniaRepository {
	return &InsigniaRepository{
		dao: dao,
	}
}

func (r *InsigniaRepository) Create(ctx context.Context, insignia domain.Insignia) (domain.Insignia, error) {
	created, err := r.dao.Insert(ctx, dao.Insignia{
		ID:          insignia.ID,
		Name:        insignia.Name,
		Description: insignia.Description,
		Image:       insignia.Image,
		Criteria:    string(insignia.Criteria),
		Quantity:    insignia.Quantity,
	})
	if err != nil {
		return domain.Insignia{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *InsigniaRepository) FindAll(ctx context.Context) ([]domain.Insignia, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *InsigniaRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Insignia, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Insignia{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *InsigniaRepository) FindReached(ctx context.Context, criteria domain.InsigniaCriteria, score float64) ([]domain.Insignia, error) {
	found, err := r.dao.FindReached(ctx, string(criteria), score)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindReached -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *InsigniaRepository) IncrementPoints(ctx context.Context, userID uuid.UUID, criteria domain.InsigniaCriteria, delta float64) (float64, error) {
	score, err := r.dao.IncrementPoints(ctx, userID, string(criteria), delta)
	if err != nil {
		return 0, fmt.Errorf("r.dao.IncrementPoints -> %w", err)
	}

	return score, nil
}

func (r *InsigniaRepository) FindPoints(ctx context.Context, userID uuid.UUID) (map[domain.InsigniaCriteria]float64, error) {
	rows, err := r.dao.FindPoints(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPoints -> %w", err)
	}

	points := make(map[domain.InsigniaCriteria]float64, len(rows))
	for _, row := range rows {
		points[domain.InsigniaCriteria(row.Criteria)] = row.Score
	}

	return points, nil
}

func (r *InsigniaRepository) Grant(ctx context.Context, userID uuid.UUID, insigniaIDs []uuid.UUID) error {
	if err := r.dao.Grant(ctx, userID, insigniaIDs); err != nil {
		return fmt.Errorf("r.dao.Grant -> %w", err)
	}

	return nil
}

func (r *InsigniaRepository) FindOwned(ctx context.Context, userID uuid.UUID) ([]domain.OwnedInsignia, error) {
	rows, err := r.dao.FindOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOwned -> %w", err)
	}

	owned := make([]domain.OwnedInsignia, len(rows))
	for i, row := range rows {
		owned[i] = domain.OwnedInsignia{
			Insignia:   r.daoToDomain(row.Insignia),
			Visible:    row.Visible,
			UnlockedAt: row.CreatedAt,
		}
	}

	return owned, nil
}

func (r *InsigniaRepository) SetVisible(ctx context.Context, userID, insigniaID uuid.UUID, visible bool) error {
	if err := r.dao.SetVisible(ctx, userID, insigniaID, visible); err != nil {
		return fmt.Errorf("r.dao.SetVisible -> %w", err)
	}

	return nil
}

func (r *InsigniaRepository) daosToDomain(insignias []dao.Insignia) []domain.Insignia {
	result := make([]domain.Insignia, len(insignias))
	for i, ins := range insignias {
		result[i] = r.daoToDomain(ins)
	}
	return result
}

func (r *InsigniaRepository) daoToDomain(i dao.Insignia) domain.Insignia {
	return domain.Insignia{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Image:       i.Image,
		Criteria:    domain.InsigniaCriteria(i.Criteria),
		Quantity:    i.Quantity,
		CreatedAt:   i.CreatedAt,
	}
}
