package audits

import (
	"context"

	"gandall-service/internal/app/contracts"
	"gandall-service/internal/app/models"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Client, dbName string) contracts.AuditRepository {
	return &AuditMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionResourceAudits),
	}
}

func (repo *AuditMongoRepository) InsertResourceAudit(ctx context.Context, audit *models.ResourceAudit) error {
	_, err := repo.Collection.InsertOne(ctx, audit)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *AuditMongoRepository) FindResourceAudits(ctx context.Context, resourceType, resourceID string, page, pageSize int) ([]models.ResourceAudit, int, error) {
	filter := bson.M{}
	if resourceType != "" {
		filter["resource_type"] = resourceType
	}
	if resourceID != "" {
		filter["resource_id"] = resourceID
	}

	total, err := repo.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "occurred_at", Value: -1}})

	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	var audits []models.ResourceAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}

	return audits, int(total), nil
}
