package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"shanenterprises/config"
	"shanenterprises/repository"
	"shanenterprises/utils"
)

type PDFHandler struct {
	Repo     *repository.PDFRepository
	SavePath string
}

// ServiceBillPDF generates a bill's PDF, saves it locally, uploads it
// to R2 and records the upload on the bill
func (h *PDFHandler) ServiceBillPDF(w http.ResponseWriter, r *http.Request) {
	billIDStr := r.URL.Query().Get("id")
	if billIDStr == "" {
		http.Error(w, "missing bill id", http.StatusBadRequest)
		return
	}

	billID, err := strconv.ParseInt(billIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid bill id", http.StatusBadRequest)
		return
	}

	// Ensure save directory exists
	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./pdfs"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		http.Error(w, "failed to create save directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Generate PDF bytes
	pdfBytes, err := utils.GenerateServiceBillPDF(h.Repo, billID)
	if err != nil {
		http.Error(w, "failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(pdfBytes) == 0 {
		http.Error(w, "no service bill found", http.StatusNotFound)
		return
	}

	// Save PDF to file
	filename := fmt.Sprintf("service_bill_%d_%d.pdf", billID, time.Now().Unix())
	savePath := filepath.Join(saveDir, filename)

	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		http.Error(w, "failed to save PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Upload to R2; the local copy stays behind as a fallback when the
	// upload fails
	fileURL, err := utils.UploadToR2(pdfBytes, filename)
	if err != nil {
		config.LogError("handlers", "ServiceBillPDF", "R2 upload failed", err)
		fileURL = savePath
	}

	if err := h.Repo.BillRepo.UpdatePDFInfo(billID, fileURL, time.Now().UTC()); err != nil {
		// Log the error but don't block the response
		config.LogError("handlers", "ServiceBillPDF", fmt.Sprintf("failed to update pdf info for bill %d", billID), err)
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "PDF generated successfully",
		Data: map[string]string{
			"file": filename,
			"url":  fileURL,
		},
	})
}
