package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/models"
)

// Document layout: four collections. Carts and orders embed their line items
// instead of holding separate collections; the per-entity invariants are the
// same as the relational layout.

const (
	usersCollection    = "users"
	productsCollection = "products"
	cartsCollection    = "carts"
	ordersCollection   = "orders"
)

const (
	readRetryAttempts = 3
	readRetryBackoff  = 200 * time.Millisecond
)

type userDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Mobile    string    `bson:"mobile"`
	Address   string    `bson:"address"`
	Password  string    `bson:"password"`
	IsAdmin   bool      `bson:"is_admin"`
	CreatedAt time.Time `bson:"created_at"`
}

type productDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	ImageURL  string    `bson:"image_url"`
	MRP       float64   `bson:"mrp"`
	Price     float64   `bson:"price"`
	Details   string    `bson:"details"`
	Category  string    `bson:"category"`
	InStock   bool      `bson:"in_stock"`
	CreatedAt time.Time `bson:"created_at"`
}

type snapshotDoc struct {
	ID       string  `bson:"id"`
	Name     string  `bson:"name"`
	ImageURL string  `bson:"image_url"`
	MRP      float64 `bson:"mrp"`
	Price    float64 `bson:"price"`
	Details  string  `bson:"details"`
	Category string  `bson:"category"`
}

type cartItemDoc struct {
	ID        string      `bson:"id"`
	ProductID string      `bson:"product_id"`
	Quantity  int         `bson:"quantity"`
	Product   snapshotDoc `bson:"product"`
}

type cartDoc struct {
	ID        string        `bson:"_id"`
	UserID    string        `bson:"user_id"`
	Items     []cartItemDoc `bson:"items"`
	CreatedAt time.Time     `bson:"created_at"`
}

type orderItemDoc struct {
	ID        string      `bson:"id"`
	ProductID string      `bson:"product_id"`
	Quantity  int         `bson:"quantity"`
	Price     float64     `bson:"price"`
	Product   snapshotDoc `bson:"product"`
}

type orderDoc struct {
	ID              string              `bson:"_id"`
	UserID          string              `bson:"user_id"`
	User            models.UserSnapshot `bson:"user"`
	Items           []orderItemDoc      `bson:"items"`
	Total           float64             `bson:"total"`
	Status          string              `bson:"status"`
	PaymentReceived bool                `bson:"payment_received"`
	CreatedAt       time.Time           `bson:"created_at"`
}

// NewMongoStore assembles the four repositories on top of one database handle.
// Transactions require the deployment to be a replica set.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:    &MongoUserRepository{col: db.Collection(usersCollection)},
		Products: &MongoProductRepository{col: db.Collection(productsCollection)},
		Carts:    &MongoCartRepository{col: db.Collection(cartsCollection)},
		Orders:   &MongoOrderRepository{db: db},
	}
}

// EnsureIndexes creates the unique and query indexes the adapters rely on.
// Safe to run on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(cartsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ordersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

// retryRead runs fn up to readRetryAttempts times, backing off between
// attempts on transient connectivity failures. Only reads go through this;
// writes are never blindly retried.
func retryRead(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < readRetryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !mongo.IsNetworkError(err) && !mongo.IsTimeout(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return apperrors.Unavailable("store unavailable", err)
		case <-time.After(time.Duration(attempt+1) * readRetryBackoff):
		}
	}
	return apperrors.Unavailable("store unavailable", err)
}

// MongoUserRepository implements UserRepo on the document store.
type MongoUserRepository struct {
	col *mongo.Collection
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	doc := userDoc{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Mobile:    user.Mobile,
		Address:   user.Address,
		Password:  user.Password,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
	_, err := r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("email already registered", err)
	}
	return err
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	err := retryRead(ctx, func() error {
		return r.col.FindOne(ctx, filter).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:        doc.ID,
		Name:      doc.Name,
		Email:     doc.Email,
		Mobile:    doc.Mobile,
		Address:   doc.Address,
		Password:  doc.Password,
		IsAdmin:   doc.IsAdmin,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// MongoProductRepository implements ProductRepo on the document store.
type MongoProductRepository struct {
	col *mongo.Collection
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	_, err := r.col.InsertOne(ctx, productDocFrom(product))
	return err
}

func (r *MongoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var doc productDoc
	err := retryRead(ctx, func() error {
		return r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	})
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := doc.toModel()
	return &m, nil
}

func (r *MongoProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": pattern},
		{"details": pattern},
		{"category": pattern},
	}}
	return r.find(ctx, filter)
}

func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": product.ID},
		bson.M{"$set": bson.M{
			"name":      product.Name,
			"image_url": product.ImageURL,
			"mrp":       product.MRP,
			"price":     product.Price,
			"details":   product.Details,
			"category":  product.Category,
			"in_stock":  product.InStock,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("product not found", nil)
	}
	return nil
}

func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := retryRead(ctx, func() error {
		var countErr error
		n, countErr = r.col.CountDocuments(ctx, bson.M{})
		return countErr
	})
	return n, err
}

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	var docs []productDoc
	err := retryRead(ctx, func() error {
		cursor, findErr := r.col.Find(ctx, filter)
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
	out := make([]models.Product, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func productDocFrom(p *models.Product) productDoc {
	return productDoc{
		ID:        p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		MRP:       p.MRP,
		Price:     p.Price,
		Details:   p.Details,
		Category:  p.Category,
		InStock:   p.InStock,
		CreatedAt: p.CreatedAt,
	}
}

func (doc *productDoc) toModel() models.Product {
	return models.Product{
		ID:        doc.ID,
		Name:      doc.Name,
		ImageURL:  doc.ImageURL,
		MRP:       doc.MRP,
		Price:     doc.Price,
		Details:   doc.Details,
		Category:  doc.Category,
		InStock:   doc.InStock,
		CreatedAt: doc.CreatedAt,
	}
}

func snapshotDocFrom(s models.ProductSnapshot) snapshotDoc {
	return snapshotDoc(s)
}

func (d snapshotDoc) toModel() models.ProductSnapshot {
	return models.ProductSnapshot(d)
}
