package application

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/charcreator/backend/internal/domain/entity"
	"github.com/charcreator/backend/internal/infrastructure/postgres"
)

// CharacterService owns the saved-character CRUD. Every mutation and point
// read enforces that the character belongs to the calling user.
type CharacterService struct {
	Pool *pgxpool.Pool
}

func NewCharacterService(pool *pgxpool.Pool) *CharacterService {
	return &CharacterService{Pool: pool}
}

func (s *CharacterService) Create(ctx context.Context, userID int64, name string) (*entity.SavedCharacter, error) {
	var char *entity.SavedCharacter
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		char, err = sc.Functions.SavedCharacters.Create(ctx, userID, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return char, nil
}

func (s *CharacterService) List(ctx context.Context, userID int64) ([]*entity.SavedCharacter, error) {
	var chars []*entity.SavedCharacter
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		chars, err = sc.Functions.SavedCharacters.GetAllByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return chars, nil
}

func (s *CharacterService) Get(ctx context.Context, userID, id int64) (*entity.SavedCharacter, error) {
	var char *entity.SavedCharacter
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		char, err = ownedCharacter(ctx, sc, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return char, nil
}

func (s *CharacterService) Rename(ctx context.Context, userID, id int64, name string) (*entity.SavedCharacter, error) {
	var char *entity.SavedCharacter
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		if _, err := ownedCharacter(ctx, sc, userID, id); err != nil {
			return err
		}
		var err error
		char, err = sc.Functions.SavedCharacters.UpdateName(ctx, id, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return char, nil
}

func (s *CharacterService) Delete(ctx context.Context, userID, id int64) error {
	return postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		if _, err := ownedCharacter(ctx, sc, userID, id); err != nil {
			return err
		}
		return sc.Functions.SavedCharacters.Delete(ctx, id)
	})
}

// ownedCharacter loads a character and rejects callers that do not own it.
func ownedCharacter(ctx context.Context, sc *postgres.Scope, userID, id int64) (*entity.SavedCharacter, error) {
	char, err := sc.Functions.SavedCharacters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if char.UserID != userID {
		return nil, ErrForbidden
	}
	return char, nil
}
