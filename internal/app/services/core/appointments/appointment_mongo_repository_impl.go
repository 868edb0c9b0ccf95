package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
	}
}

// CountByFilter counts appointments taken from one published slot.
func (r *AppointmentMongoRepository) CountByFilter(ctx context.Context, filter models.AppointmentSlotFilter) (int, error) {
	query := bson.M{
		"doctor":             filter.Doctor,
		"day":                filter.Day,
		"place":              filter.Place,
		"slotInterval.start": filter.TimeInterval.Start,
		"slotInterval.end":   filter.TimeInterval.End,
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	count, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return int(count), nil
}

func (r *AppointmentMongoRepository) Create(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AppointmentMongoRepository) FindByDoctor(ctx context.Context, doctorID, status string) ([]models.Appointment, error) {
	query := bson.M{"doctor": doctorID}
	if status != "" {
		query["status"] = status
	}
	return r.find(ctx, query, bson.D{{Key: "bookedAt", Value: 1}})
}

func (r *AppointmentMongoRepository) FindByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"user": userID}, bson.D{{Key: "bookedAt", Value: 1}})
}

func (r *AppointmentMongoRepository) FindAllByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctor": doctorID}, bson.D{{Key: "bookedAt", Value: 1}, {Key: "timeInterval.start", Value: 1}})
}

func (r *AppointmentMongoRepository) find(ctx context.Context, query bson.M, sort bson.D) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
