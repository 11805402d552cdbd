package database

import (
	"context"
	"fmt"

	"github.com/valeriaulyamaeva/daily-reports/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps reports in a single MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("MongoDB недоступна: %w", err)
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoStore) CreateReport(ctx context.Context, report *models.Report) error {
	report.ID = primitive.NewObjectID()
	if _, err := s.collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("ошибка при добавлении отчета: %w", err)
	}
	return nil
}

func (s *MongoStore) GetAllReports(ctx context.Context) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении отчетов: %w", err)
	}
	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("ошибка при чтении отчетов: %w", err)
	}
	return reports, nil
}

func (s *MongoStore) UpdateReportByDate(ctx context.Context, date, report, notes string) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "report", Value: report},
		{Key: "notes", Value: notes},
	}}}
	result, err := s.collection.UpdateOne(ctx, bson.D{{Key: "date", Value: date}}, update)
	if err != nil {
		return fmt.Errorf("ошибка обновления отчета: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("отчет за %s: %w", date, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) DeleteReport(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("ошибка удаления отчета: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("отчет с ID %s: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
