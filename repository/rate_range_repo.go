package repository

import "shanenterprises/models"

type RateRangeRepository interface {
	SaveRateRange(r *models.RateRange) error
	GetRateRanges() ([]models.RateRange, error)
	DeleteRateRanges(ids []int64) error
}
