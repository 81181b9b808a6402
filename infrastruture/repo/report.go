package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/dpersh/robot/domain"
	"github.com/dpersh/robot/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

var ErrReportNotFound = errors.New("report not found")

var _ i.ReportRepo = &ReportRepo{}

// ReportRepo handles the persistence of exploration reports.
type ReportRepo struct {
	collection *mongo.Collection
}

// NewReportRepo creates a new ReportRepo with the given MongoDB client, database name, and collection name.
func NewReportRepo(client *mongo.Client, dbName, collectionName string) *ReportRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &ReportRepo{
		collection: collection,
	}
}

// Save inserts or replaces a report.
func (r *ReportRepo) Save(ctx context.Context, report *dmn.Report) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	filter := bson.M{"_id": report.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, report, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a report by its run ID.
// Returns ErrReportNotFound if no report carries the ID.
func (r *ReportRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	var report dmn.Report
	if err := r.collection.FindOne(ctx, filter).Decode(&report); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReportNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &report, nil
}
