package repository

import "shanenterprises/models"

type EntryRepository interface {
	SaveEntry(e *models.DestinationEntry) error
	GetEntries(filters map[string]interface{}, single bool) ([]*models.DestinationEntry, error)
	DeleteEntries(ids []int64) error
}
