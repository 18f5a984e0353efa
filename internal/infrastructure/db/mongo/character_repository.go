package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/characters/characters-api/internal/core/domain"
)

const charactersCollection = "characters"

type CharacterRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewCharacterRepository(db *mongo.Database) *CharacterRepository {
	return &CharacterRepository{db: db, coll: db.Collection(charactersCollection)}
}

func (r *CharacterRepository) List(ctx context.Context) ([]domain.Character, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Character, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode characters: %w", err)
	}
	return out, nil
}

func (r *CharacterRepository) Get(ctx context.Context, id int64) (*domain.Character, error) {
	var c domain.Character
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("find character: %w", err)
	}
	return &c, nil
}

func (r *CharacterRepository) Create(ctx context.Context, c domain.Character) (*domain.Character, error) {
	id, err := nextSequence(ctx, r.db, charactersCollection)
	if err != nil {
		return nil, err
	}
	c.ID = id

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return nil, fmt.Errorf("insert character: %w", err)
	}
	return &c, nil
}

func (r *CharacterRepository) Update(ctx context.Context, c domain.Character) (*domain.Character, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return nil, fmt.Errorf("update character: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCharacterNotFound
	}
	return &c, nil
}

func (r *CharacterRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}
