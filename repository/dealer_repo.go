package repository

import "shanenterprises/models"

type DealerRepository interface {
	SaveDealer(d *models.Dealer) error
	GetDealers(filters map[string]interface{}) ([]*models.Dealer, error)
	DeleteDealers(ids []int64) error
}
