package mongodb

import (
	"context"
	"time"

	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CustomerRepository implements the repositories.CustomerRepository interface
type CustomerRepository struct {
	collection *mongo.Collection
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *mongo.Database) repositories.CustomerRepository {
	return &CustomerRepository{
		collection: db.Collection("clientes"),
	}
}

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, customer)
	if err != nil {
		return err
	}
	customer.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	var customer models.Customer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByEmail finds a customer by email
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update updates a customer
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": customer.ID}, customer)
	return err
}

// CollaboratorRepository implements the repositories.CollaboratorRepository interface
type CollaboratorRepository struct {
	collection *mongo.Collection
}

// NewCollaboratorRepository creates a new CollaboratorRepository
func NewCollaboratorRepository(db *mongo.Database) repositories.CollaboratorRepository {
	return &CollaboratorRepository{
		collection: db.Collection("colaboradores"),
	}
}

// Create creates a new collaborator
func (r *CollaboratorRepository) Create(ctx context.Context, collaborator *models.Collaborator) error {
	collaborator.CreatedAt = time.Now()
	collaborator.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, collaborator)
	if err != nil {
		return err
	}
	collaborator.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a collaborator by ID
func (r *CollaboratorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&collaborator)
	if err != nil {
		return nil, err
	}
	return &collaborator, nil
}

// FindByEmail finds a collaborator by email
func (r *CollaboratorRepository) FindByEmail(ctx context.Context, email string) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&collaborator)
	if err != nil {
		return nil, err
	}
	return &collaborator, nil
}

// FindByReferralCode finds a collaborator by referral code
func (r *CollaboratorRepository) FindByReferralCode(ctx context.Context, code string) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	err := r.collection.FindOne(ctx, bson.M{"codigoIndicacao": code}).Decode(&collaborator)
	if err != nil {
		return nil, err
	}
	return &collaborator, nil
}

// Update updates a collaborator
func (r *CollaboratorRepository) Update(ctx context.Context, collaborator *models.Collaborator) error {
	collaborator.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": collaborator.ID}, collaborator)
	return err
}

// AdminUserRepository implements the repositories.AdminUserRepository interface
type AdminUserRepository struct {
	collection *mongo.Collection
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db *mongo.Database) repositories.AdminUserRepository {
	return &AdminUserRepository{
		collection: db.Collection("admins"),
	}
}

// Create creates a new admin user
func (r *AdminUserRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		return err
	}
	admin.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds an admin user by ID
func (r *AdminUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByEmail finds an admin user by email
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
