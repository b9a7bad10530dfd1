package repository

import (
	"context"

	"github.com/hametuha/hamelp-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type FaqRepo interface {
	CreateFaq(ctx context.Context, faq *types.FaqDocument) error
	GetFaq(ctx context.Context, id string) (*types.FaqDocument, error)
	ListPublished(ctx context.Context) ([]*types.FaqDocument, error)
	UpdateFaq(ctx context.Context, id string, faq *types.FaqDocument) error
	DeleteFaq(ctx context.Context, id string) error
}

type faqRepo struct {
	collection *mongo.Collection
}

func NewFaqRepo(collection *mongo.Collection) FaqRepo {
	return &faqRepo{
		collection: collection,
	}
}

func (r *faqRepo) CreateFaq(ctx context.Context, faq *types.FaqDocument) error {
	if faq.ID == "" {
		faq.ID = bson.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, faq)
	return err
}

func (r *faqRepo) GetFaq(ctx context.Context, id string) (*types.FaqDocument, error) {
	var faq types.FaqDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&faq)
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *faqRepo) ListPublished(ctx context.Context) ([]*types.FaqDocument, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": types.FAQ_STATUS_PUBLISH})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var faqs []*types.FaqDocument
	for cursor.Next(ctx) {
		var faq types.FaqDocument
		if err := cursor.Decode(&faq); err != nil {
			return nil, err
		}
		faqs = append(faqs, &faq)
	}
	return faqs, cursor.Err()
}

func (r *faqRepo) UpdateFaq(ctx context.Context, id string, faq *types.FaqDocument) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, faq)
	return err
}

func (r *faqRepo) DeleteFaq(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
