package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/models"
)

// MongoCartRepository implements CartRepo on the document store. The cart
// document embeds its items; the unique index on user_id plus an upsert
// closes the lazy-creation race, and positional $inc updates close the
// merge race.
type MongoCartRepository struct {
	col *mongo.Collection
}

func (r *MongoCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        uuid.NewString(),
		"user_id":    userID,
		"items":      []cartItemDoc{},
		"created_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc cartDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the upsert race against the unique user_id index; the
		// winner's cart now exists.
		err = r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *MongoCartRepository) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var doc cartDoc
	err := retryRead(ctx, func() error {
		return r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *MongoCartRepository) AddItem(ctx context.Context, cartID string, productID string, quantity int, snapshot models.ProductSnapshot) error {
	for attempt := 0; attempt < addItemAttempts; attempt++ {
		// Increment in place when the product already has a line.
		res, err := r.col.UpdateOne(ctx,
			bson.M{"_id": cartID, "items.product_id": productID},
			bson.M{"$inc": bson.M{"items.$.quantity": quantity}})
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}

		// Push a new line only while no line for the product exists; the
		// guard keeps a racing push from producing a duplicate.
		item := cartItemDoc{
			ID:        uuid.NewString(),
			ProductID: productID,
			Quantity:  quantity,
			Product:   snapshotDocFrom(snapshot),
		}
		res, err = r.col.UpdateOne(ctx,
			bson.M{"_id": cartID, "items.product_id": bson.M{"$ne": productID}},
			bson.M{"$push": bson.M{"items": item}})
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}

		// Neither filter matched: the cart is missing, or a concurrent add
		// slipped the line in between the two updates. Tell the cases apart,
		// then loop back to the increment.
		err = r.col.FindOne(ctx, bson.M{"_id": cartID}).Err()
		if err == mongo.ErrNoDocuments {
			return apperrors.NotFound("cart not found", nil)
		}
		if err != nil {
			return err
		}
	}
	return apperrors.Conflict("cart item contention", nil)
}

func (r *MongoCartRepository) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, itemID)
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"items.id": itemID},
		bson.M{"$set": bson.M{"items.$.quantity": quantity}})
	return err
}

func (r *MongoCartRepository) RemoveItem(ctx context.Context, itemID string) error {
	_, err := r.col.UpdateMany(ctx,
		bson.M{"items.id": itemID},
		bson.M{"$pull": bson.M{"items": bson.M{"id": itemID}}})
	return err
}

func (r *MongoCartRepository) Clear(ctx context.Context, cartID string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cartID},
		bson.M{"$set": bson.M{"items": []cartItemDoc{}}})
	return err
}

func (doc *cartDoc) toModel() *models.Cart {
	items := make([]models.CartItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, models.CartItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   item.Product.toModel(),
		})
	}
	return &models.Cart{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Items:     items,
		CreatedAt: doc.CreatedAt,
	}
}
