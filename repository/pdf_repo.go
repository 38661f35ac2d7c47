package repository

import (
	"shanenterprises/models"
)

// PDFRepository provides methods to fetch data for PDF generation
type PDFRepository struct {
	BillRepo    ServiceBillRepository
	ProfileRepo ProfileRepository
}

// NewPDFRepository initializes a PDF repository
func NewPDFRepository(billRepo ServiceBillRepository, profileRepo ProfileRepository) *PDFRepository {
	return &PDFRepository{
		BillRepo:    billRepo,
		ProfileRepo: profileRepo,
	}
}

// GetBillForPDF fetches a single service bill by ID for PDF
func (r *PDFRepository) GetBillForPDF(id int64) (*models.ServiceBill, error) {
	bills, err := r.BillRepo.GetServiceBills(map[string]interface{}{"id": id}, true)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, nil
	}
	return bills[0], nil
}

// GetProfileForPDF fetches the latest company profile for the letterhead
func (r *PDFRepository) GetProfileForPDF() (*models.CompanyProfile, error) {
	return r.ProfileRepo.GetProfile()
}
