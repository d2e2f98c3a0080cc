package source

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Collection names used by MongoSource.
const (
	SessionsCollection = "class_sessions"
	PeriodsCollection  = "period_times"
)

const mongoTimeout = 10 * time.Second

// sessionDoc is the stored form of a session: the session fields inline
// plus the week it belongs to.
type sessionDoc struct {
	SemesterID             string `bson:"semester_id"`
	WeekID                 string `bson:"week_id"`
	timetable.ClassSession `bson:",inline"`
}

// MongoSource reads sessions from the class_sessions collection, filtered
// by {semester_id, week_id} and returned in insertion order. A week with no
// documents is empty, not missing.
type MongoSource struct {
	client   *mongo.Client
	sessions *mongo.Collection
	periods  *mongo.Collection
}

// NewMongoSource connects to uri and verifies the connection.
func NewMongoSource(ctx context.Context, uri, database string) (*MongoSource, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return NewMongoSourceFromDB(client.Database(database)), nil
}

// NewMongoSourceFromDB wraps an existing database handle.
func NewMongoSourceFromDB(db *mongo.Database) *MongoSource {
	return &MongoSource{
		client:   db.Client(),
		sessions: db.Collection(SessionsCollection),
		periods:  db.Collection(PeriodsCollection),
	}
}

// Name returns "mongo".
func (*MongoSource) Name() string { return KindMongo }

// Sessions returns the week's sessions sorted by _id.
func (m *MongoSource) Sessions(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	filter := bson.M{"semester_id": sel.SemesterID, "week_id": sel.WeekID}
	cur, err := m.sessions.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query sessions for %s", sel)
	}
	defer cur.Close(ctx)

	out := []timetable.ClassSession{}
	for cur.Next(ctx) {
		var doc sessionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode session")
		}
		out = append(out, doc.ClassSession)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "iterate sessions")
	}
	return out, nil
}

// Periods reads period_times, or returns the default table when the
// collection is empty.
func (m *MongoSource) Periods(ctx context.Context) (*timetable.PeriodTable, error) {
	cur, err := m.periods.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "period", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query periods")
	}
	var entries []timetable.PeriodTime
	if err := cur.All(ctx, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode periods")
	}
	if len(entries) == 0 {
		return timetable.DefaultPeriodTable(), nil
	}
	return timetable.NewPeriodTable(entries)
}

// Weeks returns the distinct week IDs stored for a semester.
func (m *MongoSource) Weeks(ctx context.Context, semesterID string) ([]string, error) {
	values, err := m.sessions.Distinct(ctx, "week_id", bson.M{"semester_id": semesterID})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list weeks")
	}
	if len(values) == 0 {
		return nil, errors.New(errors.ErrCodeSemesterNotFound, "semester %q not found", semesterID)
	}
	weeks := make([]string, 0, len(values))
	for _, v := range values {
		weeks = append(weeks, fmt.Sprint(v))
	}
	slices.Sort(weeks)
	return weeks, nil
}

// ReplaceWeek deletes the stored sessions of sel and inserts sessions in
// order. It returns the number of documents inserted.
func (m *MongoSource) ReplaceWeek(ctx context.Context, sel timetable.WeekSelection, sessions []timetable.ClassSession) (int, error) {
	if err := sel.Validate(); err != nil {
		return 0, err
	}
	filter := bson.M{"semester_id": sel.SemesterID, "week_id": sel.WeekID}
	if _, err := m.sessions.DeleteMany(ctx, filter); err != nil {
		return 0, errors.Wrap(errors.ErrCodeNetwork, err, "clear week %s", sel)
	}
	if len(sessions) == 0 {
		return 0, nil
	}
	docs := make([]any, len(sessions))
	for i, s := range sessions {
		docs[i] = sessionDoc{SemesterID: sel.SemesterID, WeekID: sel.WeekID, ClassSession: s}
	}
	res, err := m.sessions.InsertMany(ctx, docs)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNetwork, err, "insert week %s", sel)
	}
	return len(res.InsertedIDs), nil
}

// ReplacePeriods overwrites the stored period table.
func (m *MongoSource) ReplacePeriods(ctx context.Context, table *timetable.PeriodTable) error {
	if _, err := m.periods.DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "clear periods")
	}
	periods := table.Periods()
	docs := make([]any, len(periods))
	for i, p := range periods {
		docs[i] = p
	}
	if _, err := m.periods.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "insert periods")
	}
	return nil
}

// Close disconnects the client.
func (m *MongoSource) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

var _ Source = (*MongoSource)(nil)
