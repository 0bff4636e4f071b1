package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"essaycoach-be/internal/models"
)

// MongoRecordStore keeps working records in three collections.
type MongoRecordStore struct {
	errorStats        *mongo.Collection
	completenessStats *mongo.Collection
	styleAnalyses     *mongo.Collection

	seq seqClock
}

// seqClock hands out strictly increasing insert sequence numbers seeded
// from the wall clock. Mongo keeps timestamps at millisecond precision, so
// records appended within the same millisecond are ordered by seq.
type seqClock struct {
	last atomic.Int64
}

func (c *seqClock) next() int64 {
	for {
		prev := c.last.Load()
		n := time.Now().UnixNano()
		if n <= prev {
			n = prev + 1
		}
		if c.last.CompareAndSwap(prev, n) {
			return n
		}
	}
}

type errorStatDoc struct {
	models.ErrorStatRecord `bson:",inline"`
	Seq                    int64 `bson:"seq"`
}

type completenessStatDoc struct {
	models.CompletenessStatRecord `bson:",inline"`
	Seq                           int64 `bson:"seq"`
}

func NewMongoRecordStore(db *mongo.Database) *MongoRecordStore {
	r := &MongoRecordStore{
		errorStats:        db.Collection("error_stats"),
		completenessStats: db.Collection("completeness_stats"),
		styleAnalyses:     db.Collection("style_analyses"),
	}

	// Ensure indexes
	ctx := context.Background()
	bySection := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "sectionId", Value: 1}, {Key: "timestamp", Value: 1}, {Key: "seq", Value: 1}},
		Options: options.Index().SetName("idx_user_section_ts_seq"),
	}
	_, _ = r.errorStats.Indexes().CreateOne(ctx, bySection)
	_, _ = r.completenessStats.Indexes().CreateOne(ctx, bySection)
	_, _ = r.styleAnalyses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "sectionId", Value: 1}},
		Options: options.Index().SetName("idx_user_section").SetUnique(true),
	})

	return r
}

func sectionFilter(userID string, sectionIDs []string) bson.M {
	filter := bson.M{"userId": userID}
	if len(sectionIDs) > 0 {
		filter["sectionId"] = bson.M{"$in": sectionIDs}
	}
	return filter
}

var byTimestamp = options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "seq", Value: 1}})

func (r *MongoRecordStore) ListErrorStats(ctx context.Context, userID string, sectionIDs []string) ([]models.ErrorStatRecord, error) {
	cursor, err := r.errorStats.Find(ctx, sectionFilter(userID, sectionIDs), byTimestamp)
	if err != nil {
		return nil, fmt.Errorf("find error stats: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.ErrorStatRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode error stats: %w", err)
	}
	return records, nil
}

func (r *MongoRecordStore) ListCompletenessStats(ctx context.Context, userID string, sectionIDs []string) ([]models.CompletenessStatRecord, error) {
	cursor, err := r.completenessStats.Find(ctx, sectionFilter(userID, sectionIDs), byTimestamp)
	if err != nil {
		return nil, fmt.Errorf("find completeness stats: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.CompletenessStatRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode completeness stats: %w", err)
	}
	return records, nil
}

func (r *MongoRecordStore) GetLatestStyleAnalysis(ctx context.Context, userID, sectionID string) (*models.WritingStyleAnalysis, error) {
	var rec models.StyleAnalysisRecord
	err := r.styleAnalyses.FindOne(ctx, bson.M{"userId": userID, "sectionId": sectionID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find style analysis: %w", err)
	}
	return &rec.Analysis, nil
}

func (r *MongoRecordStore) AppendErrorStat(ctx context.Context, rec *models.ErrorStatRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if _, err := r.errorStats.InsertOne(ctx, errorStatDoc{*rec, r.seq.next()}); err != nil {
		return fmt.Errorf("insert error stat: %w", err)
	}
	return nil
}

func (r *MongoRecordStore) AppendCompletenessStat(ctx context.Context, rec *models.CompletenessStatRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if _, err := r.completenessStats.InsertOne(ctx, completenessStatDoc{*rec, r.seq.next()}); err != nil {
		return fmt.Errorf("insert completeness stat: %w", err)
	}
	return nil
}

func (r *MongoRecordStore) PutStyleAnalysis(ctx context.Context, userID, sectionID string, analysis models.WritingStyleAnalysis) error {
	filter := bson.M{"userId": userID, "sectionId": sectionID}
	rec := models.StyleAnalysisRecord{
		UserID:    userID,
		SectionID: sectionID,
		Analysis:  analysis,
		UpdatedAt: time.Now(),
	}
	_, err := r.styleAnalyses.ReplaceOne(ctx, filter, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert style analysis: %w", err)
	}
	return nil
}

func (r *MongoRecordStore) ClearSections(ctx context.Context, userID string, sectionIDs []string) error {
	filter := sectionFilter(userID, sectionIDs)
	for _, coll := range []*mongo.Collection{r.errorStats, r.completenessStats, r.styleAnalyses} {
		if _, err := coll.DeleteMany(ctx, filter); err != nil {
			return fmt.Errorf("clear %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func (r *MongoRecordStore) LastRecordedAt(ctx context.Context) (map[string]time.Time, error) {
	latest := make(map[string]time.Time)
	sources := []struct {
		coll  *mongo.Collection
		field string
	}{
		{r.errorStats, "timestamp"},
		{r.completenessStats, "timestamp"},
		{r.styleAnalyses, "updatedAt"},
	}
	for _, src := range sources {
		if err := latestByUser(ctx, src.coll, src.field, latest); err != nil {
			return nil, err
		}
	}
	return latest, nil
}

// latestByUser folds the newest value of field per userId into latest.
func latestByUser(ctx context.Context, coll *mongo.Collection, field string, latest map[string]time.Time) error {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$userId"},
			{Key: "at", Value: bson.D{{Key: "$max", Value: "$" + field}}},
		}}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		UserID string    `bson:"_id"`
		At     time.Time `bson:"at"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return fmt.Errorf("decode %s activity: %w", coll.Name(), err)
	}
	for _, row := range rows {
		keepLatest(latest, row.UserID, row.At)
	}
	return nil
}

// MongoDraftStore keeps one draft document per user.
type MongoDraftStore struct {
	collection *mongo.Collection
}

func NewMongoDraftStore(db *mongo.Database) *MongoDraftStore {
	r := &MongoDraftStore{collection: db.Collection("essay_drafts")}
	_, _ = r.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("idx_user_id").SetUnique(true),
	})
	return r
}

func (r *MongoDraftStore) ListSections(ctx context.Context, userID string) ([]models.EssaySection, error) {
	var draft models.EssayDraft
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&draft)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find draft: %w", err)
	}
	return draft.Sections, nil
}

func (r *MongoDraftStore) ReplaceSections(ctx context.Context, userID string, sections []models.EssaySection) error {
	draft := models.EssayDraft{UserID: userID, Sections: sections, UpdatedAt: time.Now()}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"userId": userID}, draft, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

func (r *MongoDraftStore) DeleteSections(ctx context.Context, userID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func (r *MongoDraftStore) LastEditedAt(ctx context.Context) (map[string]time.Time, error) {
	edited := make(map[string]time.Time)
	if err := latestByUser(ctx, r.collection, "updatedAt", edited); err != nil {
		return nil, err
	}
	return edited, nil
}
