package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chucky-1/cashflow/internal/model"
)

const (
	walletCollection      = "wallet"
	receivablesCollection = "receivables"
	payablesCollection    = "payables"
)

type walletDoc struct {
	ID           int64 `bson:"_id"`
	CurrentCash  int64 `bson:"current_cash"`
	SafetyBuffer int64 `bson:"safety_buffer"`
}

type receivableDoc struct {
	ID         string    `bson:"_id"`
	Title      string    `bson:"title"`
	Amount     int64     `bson:"amount"`
	DueDate    string    `bson:"due_date"`
	IsReceived bool      `bson:"is_received"`
	CreatedAt  time.Time `bson:"created_at"`
}

type payableDoc struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Amount    int64     `bson:"amount"`
	DueDate   string    `bson:"due_date"`
	IsPaid    bool      `bson:"is_paid"`
	CreatedAt time.Time `bson:"created_at"`
}

type Mongo struct {
	cli *mongo.Client
	db  string
}

func NewMongo(cli *mongo.Client, db string) *Mongo {
	return &Mongo{
		cli: cli,
		db:  db,
	}
}

func (m *Mongo) collection(name string) *mongo.Collection {
	return m.cli.Database(m.db).Collection(name)
}

func (m *Mongo) Migrate(ctx context.Context) error {
	for _, name := range []string{receivablesCollection, payablesCollection} {
		flag := "is_received"
		if name == payablesCollection {
			flag = "is_paid"
		}
		_, err := m.collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: flag, Value: 1}, {Key: "due_date", Value: 1}, {Key: "created_at", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("mongo couldn't CreateOne index on %s in Migrate method: %w", name, err)
		}
	}
	return nil
}

func (m *Mongo) GetWallet(ctx context.Context, id int64) (*model.Wallet, error) {
	var doc walletDoc
	err := m.collection(walletCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't FindOne in GetWallet method: %w", err)
	}
	return &model.Wallet{ID: doc.ID, CurrentCash: doc.CurrentCash, SafetyBuffer: doc.SafetyBuffer}, nil
}

func (m *Mongo) AddCash(ctx context.Context, id int64, delta int64) (*model.Wallet, error) {
	var doc walletDoc
	err := m.collection(walletCollection).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "current_cash", Value: delta}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't FindOneAndUpdate in AddCash method: %w", err)
	}
	return &model.Wallet{ID: doc.ID, CurrentCash: doc.CurrentCash, SafetyBuffer: doc.SafetyBuffer}, nil
}

func (m *Mongo) ProvisionWallet(ctx context.Context, wallet *model.Wallet) (bool, error) {
	result, err := m.collection(walletCollection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: wallet.ID}},
		bson.D{{Key: "$setOnInsert", Value: bson.D{
			{Key: "current_cash", Value: wallet.CurrentCash},
			{Key: "safety_buffer", Value: wallet.SafetyBuffer},
		}}}, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("mongo couldn't UpdateOne in ProvisionWallet method: %w", err)
	}
	return result.UpsertedCount == 1, nil
}

func (m *Mongo) CreateReceivable(ctx context.Context, r *model.Receivable) error {
	_, err := m.collection(receivablesCollection).InsertOne(ctx, receivableDoc{
		ID:         r.ID.String(),
		Title:      r.Title,
		Amount:     r.Amount,
		DueDate:    r.DueDate,
		IsReceived: r.IsReceived,
		CreatedAt:  r.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("mongo couldn't InsertOne in CreateReceivable method: %w", err)
	}
	return nil
}

func (m *Mongo) OutstandingReceivables(ctx context.Context) ([]model.Receivable, error) {
	var docs []receivableDoc
	if err := m.findOutstanding(ctx, receivablesCollection, "is_received", &docs); err != nil {
		return nil, err
	}
	result := make([]model.Receivable, 0, len(docs))
	for i := range docs {
		r, err := docs[i].model()
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// AccrueReceivable is a single findOneAndUpdate with upsert: $inc starts from zero
// when the document is created, so amount equals candidate.Amount on insert.
func (m *Mongo) AccrueReceivable(ctx context.Context, candidate *model.Receivable) (*model.Receivable, bool, error) {
	var doc receivableDoc
	err := m.collection(receivablesCollection).FindOneAndUpdate(ctx,
		bson.D{{Key: "due_date", Value: candidate.DueDate}, {Key: "is_received", Value: false}},
		bson.D{
			{Key: "$inc", Value: bson.D{{Key: "amount", Value: candidate.Amount}}},
			{Key: "$set", Value: bson.D{{Key: "title", Value: candidate.Title}}},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "_id", Value: candidate.ID.String()},
				{Key: "created_at", Value: candidate.CreatedAt},
			}},
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
			SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		return nil, false, fmt.Errorf("mongo couldn't FindOneAndUpdate in AccrueReceivable method: %w", err)
	}
	r, err := doc.model()
	if err != nil {
		return nil, false, err
	}
	return &r, r.ID == candidate.ID, nil
}

func (m *Mongo) CreatePayable(ctx context.Context, p *model.Payable) error {
	_, err := m.collection(payablesCollection).InsertOne(ctx, payableDoc{
		ID:        p.ID.String(),
		Title:     p.Title,
		Amount:    p.Amount,
		DueDate:   p.DueDate,
		IsPaid:    p.IsPaid,
		CreatedAt: p.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("mongo couldn't InsertOne in CreatePayable method: %w", err)
	}
	return nil
}

func (m *Mongo) OutstandingPayables(ctx context.Context) ([]model.Payable, error) {
	var docs []payableDoc
	if err := m.findOutstanding(ctx, payablesCollection, "is_paid", &docs); err != nil {
		return nil, err
	}
	result := make([]model.Payable, 0, len(docs))
	for i := range docs {
		id, err := uuid.Parse(docs[i].ID)
		if err != nil {
			return nil, fmt.Errorf("mongo payable has malformed id %q: %w", docs[i].ID, err)
		}
		result = append(result, model.Payable{
			ID:        id,
			Title:     docs[i].Title,
			Amount:    docs[i].Amount,
			DueDate:   docs[i].DueDate,
			IsPaid:    docs[i].IsPaid,
			CreatedAt: docs[i].CreatedAt,
		})
	}
	return result, nil
}

func (m *Mongo) findOutstanding(ctx context.Context, collection, flag string, docs any) error {
	cursor, err := m.collection(collection).Find(ctx,
		bson.D{{Key: flag, Value: false}},
		options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return fmt.Errorf("mongo couldn't Find in %s: %w", collection, err)
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logrus.Errorf("mongo couldn't close cursor over %s", collection)
		}
	}(cursor, ctx)

	if err = cursor.All(ctx, docs); err != nil {
		return fmt.Errorf("mongo couldn't decode %s: %w", collection, err)
	}
	return nil
}

func (d receivableDoc) model() (model.Receivable, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return model.Receivable{}, fmt.Errorf("mongo receivable has malformed id %q: %w", d.ID, err)
	}
	return model.Receivable{
		ID:         id,
		Title:      d.Title,
		Amount:     d.Amount,
		DueDate:    d.DueDate,
		IsReceived: d.IsReceived,
		CreatedAt:  d.CreatedAt,
	}, nil
}
