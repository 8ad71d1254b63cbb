package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/models"
)

// MongoOrderRepository implements OrderRepo on the document store. Order
// creation and cart clearing run inside one session transaction, which needs
// a replica set deployment (the storefront has always run one).
type MongoOrderRepository struct {
	db *mongo.Database
}

func (r *MongoOrderRepository) CreateWithCartClear(ctx context.Context, order *models.Order, cartID string) error {
	doc := orderDocFrom(order)

	session, err := r.db.Client().StartSession()
	if err != nil {
		return apperrors.Unavailable("store unavailable", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.db.Collection(ordersCollection).InsertOne(sc, doc); err != nil {
			return nil, err
		}
		if cartID != "" {
			_, err := r.db.Collection(cartsCollection).UpdateOne(sc,
				bson.M{"_id": cartID},
				bson.M{"$set": bson.M{"items": []cartItemDoc{}}})
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var doc orderDoc
	err := retryRead(ctx, func() error {
		return r.db.Collection(ordersCollection).FindOne(ctx, bson.M{"_id": orderID}).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	order := doc.toModel()
	return &order, nil
}

func (r *MongoOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MongoOrderRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	return r.find(ctx, bson.M{"created_at": bson.M{"$gte": start, "$lte": end}})
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, orderID string, status string) error {
	res, err := r.db.Collection(ordersCollection).UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("order not found", nil)
	}
	return nil
}

func (r *MongoOrderRepository) UpdatePayment(ctx context.Context, orderID string, received bool) error {
	res, err := r.db.Collection(ordersCollection).UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"payment_received": received}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("order not found", nil)
	}
	return nil
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var docs []orderDoc
	err := retryRead(ctx, func() error {
		cursor, findErr := r.db.Collection(ordersCollection).Find(ctx, filter, opts)
		if findErr != nil {
			return findErr
		}
		defer cursor.Close(ctx)
		docs = nil
		return cursor.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].toModel())
	}
	return orders, nil
}

func orderDocFrom(o *models.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemDoc{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Product:   snapshotDocFrom(item.Product),
		})
	}
	return orderDoc{
		ID:              o.ID,
		UserID:          o.UserID,
		User:            o.User,
		Items:           items,
		Total:           o.Total,
		Status:          o.Status,
		PaymentReceived: o.PaymentReceived,
		CreatedAt:       o.CreatedAt,
	}
}

func (doc *orderDoc) toModel() models.Order {
	items := make([]models.OrderItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, models.OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Product:   item.Product.toModel(),
		})
	}
	return models.Order{
		ID:              doc.ID,
		UserID:          doc.UserID,
		User:            doc.User,
		Items:           items,
		Total:           doc.Total,
		Status:          doc.Status,
		PaymentReceived: doc.PaymentReceived,
		CreatedAt:       doc.CreatedAt,
	}
}
