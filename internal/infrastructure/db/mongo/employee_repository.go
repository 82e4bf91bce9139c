package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workforcehq/employee-api/internal/core/domain"
	"github.com/workforcehq/employee-api/internal/core/ports"
)

const employeeCollection = "employees"

type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(employeeCollection)}
}

type mongoEmployee struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID     string             `bson:"employee_id"`
	FirstName      string             `bson:"first_name"`
	LastName       string             `bson:"last_name"`
	Email          string             `bson:"email"`
	Position       string             `bson:"position"`
	Salary         float64            `bson:"salary"`
	DateOfJoining  time.Time          `bson:"date_of_joining"`
	Department     string             `bson:"department"`
	ProfilePicture string             `bson:"profile_picture,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func toDoc(e *domain.Employee) mongoEmployee {
	return mongoEmployee{
		EmployeeID:     e.EmployeeID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Position:       e.Position,
		Salary:         e.Salary,
		DateOfJoining:  e.DateOfJoining,
		Department:     e.Department,
		ProfilePicture: e.ProfilePicture,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (m mongoEmployee) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:             m.ID.Hex(),
		EmployeeID:     m.EmployeeID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Position:       m.Position,
		Salary:         m.Salary,
		DateOfJoining:  m.DateOfJoining.UTC(),
		Department:     m.Department,
		ProfilePicture: m.ProfilePicture,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(e))
	if err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	created := *e
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByID treats a malformed object id the same as an unknown one.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	var me mongoEmployee
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return me.toDomain(), nil
}

// List returns all employees matching filter, newest-created first.
func (r *EmployeeRepository) List(ctx context.Context, filter ports.EmployeeFilter) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.Position != "" {
		query["position"] = filter.Position
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	employees := make([]*domain.Employee, 0)
	for cur.Next(ctx) {
		var me mongoEmployee
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		employees = append(employees, me.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(e))
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// EnsureIndexes backs the equality filters and the newest-first sort.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
