package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/charcreator/backend/internal/domain/entity"
)

const savedCharacterColumns = "id, user_id, name, created_at"

// SavedCharacterStore is the data-access group for saved characters.
type SavedCharacterStore struct {
	q Querier
}

func NewSavedCharacterStore(q Querier) *SavedCharacterStore {
	return &SavedCharacterStore{q: q}
}

func scanSavedCharacter(row pgx.Row) (*entity.SavedCharacter, error) {
	c := &entity.SavedCharacter{}
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SavedCharacterStore) Create(ctx context.Context, userID int64, name string) (*entity.SavedCharacter, error) {
	row := s.q.QueryRow(ctx, `
		INSERT INTO saved_characters (user_id, name)
		VALUES ($1, $2)
		RETURNING `+savedCharacterColumns,
		userID, name)
	return scanSavedCharacter(row)
}

func (s *SavedCharacterStore) GetByID(ctx context.Context, id int64) (*entity.SavedCharacter, error) {
	row := s.q.QueryRow(ctx, `SELECT `+savedCharacterColumns+` FROM saved_characters WHERE id = $1`, id)
	c, err := scanSavedCharacter(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return c, nil
}

func (s *SavedCharacterStore) GetAllByUser(ctx context.Context, userID int64) ([]*entity.SavedCharacter, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+savedCharacterColumns+` FROM saved_characters
		WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chars := []*entity.SavedCharacter{}
	for rows.Next() {
		c, err := scanSavedCharacter(rows)
		if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	return chars, rows.Err()
}

func (s *SavedCharacterStore) UpdateName(ctx context.Context, id int64, name string) (*entity.SavedCharacter, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE saved_characters SET name = $2 WHERE id = $1
		RETURNING `+savedCharacterColumns, id, name)
	c, err := scanSavedCharacter(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return c, nil
}

func (s *SavedCharacterStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM saved_characters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
