package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"essaycoach-be/internal/models"
)

// PostStatisticsRepository runs aggregation pipelines over submitted essays
type PostStatisticsRepository struct {
	postCollection *mongo.Collection
}

func NewPostStatisticsRepository(db *mongo.Database) *PostStatisticsRepository {
	return &PostStatisticsRepository{
		postCollection: db.Collection("posts"),
	}
}

// GetPostTypeBreakdown aggregates essay count by post type since a date
func (r *PostStatisticsRepository) GetPostTypeBreakdown(ctx context.Context, userID string, since time.Time) ([]models.PostTypeCount, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"userId":    userID,
			"createdAt": bson.M{"$gte": since},
		}},
		{"$group": bson.M{
			"_id":   "$postType",
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"count": -1}},
	}

	cursor, err := r.postCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate post types: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.PostTypeCount{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode post types: %w", err)
	}

	// Older posts were saved before post types existed
	for i := range results {
		if results[i].PostType == "" {
			results[i].PostType = models.PostTypeDiscussion
		}
	}

	return results, nil
}

// GetEssayTrend aggregates submitted essays by date since a date
func (r *PostStatisticsRepository) GetEssayTrend(ctx context.Context, userID string, since time.Time) ([]models.EssayTrendPoint, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"userId":    userID,
			"createdAt": bson.M{"$gte": since},
		}},
		{"$group": bson.M{
			"_id": bson.M{
				"$dateToString": bson.M{
					"format": "%Y-%m-%d",
					"date":   "$createdAt",
				},
			},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := r.postCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate essay trend: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.EssayTrendPoint{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode essay trend: %w", err)
	}

	return results, nil
}
