package repository

import (
	"context"

	"creature_packs/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CreatureRepository struct {
	db *pgxpool.Pool
}

func NewCreatureRepository(db *pgxpool.Pool) *CreatureRepository {
	return &CreatureRepository{db: db}
}

// InsertWithTx persists one drawn creature inside an existing transaction so
// a whole pack's rewards commit or roll back as a unit.
func (r *CreatureRepository) InsertWithTx(ctx context.Context, tx pgx.Tx, speciesID int, ownerID int64, xp int64) (*domain.OwnedCreature, error) {
	c := &domain.OwnedCreature{
		SpeciesID: speciesID,
		OwnerID:   ownerID,
		XP:        xp,
	}
	err := tx.QueryRow(ctx,
		`INSERT INTO creatures (species_id, owner_id, xp)
		 VALUES ($1, $2, $3)
		 RETURNING id, acquired_at`,
		speciesID, ownerID, xp,
	).Scan(&c.ID, &c.AcquiredAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByOwner returns a user's collection, newest first.
func (r *CreatureRepository) GetByOwner(ctx context.Context, ownerID int64) ([]domain.OwnedCreature, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, species_id, owner_id, xp, acquired_at
		 FROM creatures
		 WHERE owner_id = $1
		 ORDER BY acquired_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.OwnedCreature
	for rows.Next() {
		var c domain.OwnedCreature
		if err := rows.Scan(&c.ID, &c.SpeciesID, &c.OwnerID, &c.XP, &c.AcquiredAt); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// LockByIDsWithTx loads and row-locks the given creatures, restricted to one
// owner. Callers must compare the result count against len(ids) to detect
// creatures that are missing or owned by someone else.
func (r *CreatureRepository) LockByIDsWithTx(ctx context.Context, tx pgx.Tx, ids []int64, ownerID int64) ([]domain.OwnedCreature, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, species_id, owner_id, xp, acquired_at
		 FROM creatures
		 WHERE id = ANY($1) AND owner_id = $2
		 ORDER BY xp DESC, id ASC
		 FOR UPDATE`,
		ids, ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.OwnedCreature
	for rows.Next() {
		var c domain.OwnedCreature
		if err := rows.Scan(&c.ID, &c.SpeciesID, &c.OwnerID, &c.XP, &c.AcquiredAt); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// SetXPWithTx overwrites a creature's experience value.
func (r *CreatureRepository) SetXPWithTx(ctx context.Context, tx pgx.Tx, id int64, xp int64) error {
	_, err := tx.Exec(ctx, `UPDATE creatures SET xp = $1 WHERE id = $2`, xp, id)
	return err
}

// DeleteByIDsWithTx removes creatures consumed by a merge.
func (r *CreatureRepository) DeleteByIDsWithTx(ctx context.Context, tx pgx.Tx, ids []int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM creatures WHERE id = ANY($1)`, ids)
	return err
}
