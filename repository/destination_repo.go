package repository

import "shanenterprises/models"

type DestinationRepository interface {
	SaveDestination(d *models.Destination) error
	GetDestinations(filters map[string]interface{}) ([]*models.Destination, error)
	DeleteDestinations(ids []int64) error
}

type PlaceRepository interface {
	SavePlace(p *models.Place) error
	GetPlaces(filters map[string]interface{}) ([]*models.Place, error)
	DeletePlaces(ids []int64) error
}
