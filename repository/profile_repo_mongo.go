package repository

import (
	"context"
	"time"

	"shanenterprises/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type MongoProfileRepo struct {
	DB *mongo.Client
}

func NewMongoProfileRepo(db *mongo.Client) *MongoProfileRepo {
	return &MongoProfileRepo{DB: db}
}

func (r *MongoProfileRepo) SaveProfile(profile *models.CompanyProfile) error {
	ctx := context.Background()
	db := r.DB.Database("shanenterprises")

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	_, err := db.Collection("company_profile").InsertOne(ctx, profile)
	return err
}

func (r *MongoProfileRepo) GetProfile() (*models.CompanyProfile, error) {
	ctx := context.Background()
	db := r.DB.Database("shanenterprises")

	var profile models.CompanyProfile
	err := db.Collection("company_profile").FindOne(ctx, struct{}{}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
