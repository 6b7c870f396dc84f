package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/satya-aforv/finance-tracker-sub001/authz"
	"github.com/satya-aforv/finance-tracker-sub001/database"
	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxDocumentSize = 10 << 20 // 10 MiB per file

var allowedDocumentExts = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".xlsx": true,
	".docx": true,
	".csv":  true,
}

// documentView is a document row with a short-lived download URL.
type documentView struct {
	models.Document
	URL string `json:"url,omitempty"`
}

// GET /investments/{id}/documents
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	db := database.DB
	var documents []models.Document
	if err := db.Where("investment_id = ?", id).Order("created_at DESC").Find(&documents).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}

	views := make([]documentView, 0, len(documents))
	for _, doc := range documents {
		url, err := utils.PresignObjectURL(doc.ObjectKey, 3600)
		if err != nil {
			// A presign failure should not hide the row.
			log.Printf("presign failed for document %d: %v", doc.ID, err)
		}
		views = append(views, documentView{Document: doc, URL: url})
	}

	utils.WriteData(w, http.StatusOK, views)
}

// POST /investments/{id}/documents
//
// Multipart upload. Accepts one or more files under "documents[]" plus
// optional category and description fields applied to the whole batch.
func UploadDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManageDocuments) {
		return
	}

	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	db := database.DB
	var investment models.Investment
	if err := db.First(&investment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Investment not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["documents[]"]
	if len(files) == 0 {
		files = r.MultipartForm.File["documents"]
	}
	if len(files) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "No documents in request")
		return
	}

	category := strings.TrimSpace(r.FormValue("category"))
	description := strings.TrimSpace(r.FormValue("description"))
	adminID, _ := utils.GetAdminID(r)

	saved := make([]models.Document, 0, len(files))
	for _, header := range files {
		if header.Size > maxDocumentSize {
			utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("File %s exceeds the 10MB limit", header.Filename))
			return
		}
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedDocumentExts[ext] {
			utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("File type %s is not allowed", ext))
			return
		}

		file, err := header.Open()
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to read upload")
			return
		}

		objectKey := fmt.Sprintf("investments/%d/%s%s", id, uuid.NewString(), ext)
		err = utils.UploadObject(objectKey, file)
		file.Close()
		if err != nil {
			log.Printf("upload failed for %s: %v", header.Filename, err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to store document")
			return
		}

		doc := models.Document{
			InvestmentID: id,
			FileName:     header.Filename,
			ObjectKey:    objectKey,
			Category:     category,
			Description:  description,
			Size:         header.Size,
			ContentType:  header.Header.Get("Content-Type"),
			UploadedBy:   adminID,
		}
		saved = append(saved, doc)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&saved).Error; err != nil {
			return err
		}
		timeline := models.TimelineEntry{
			InvestmentID: id,
			Type:         models.TimelineDocumentUploaded,
			Description:  fmt.Sprintf("%d document(s) uploaded", len(saved)),
			CreatedBy:    adminID,
		}
		return tx.Create(&timeline).Error
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save documents")
		return
	}

	utils.WriteData(w, http.StatusCreated, saved)
}

// DELETE /investments/{id}/documents/{docId}
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManageDocuments) {
		return
	}

	id := pathID(r, "id")
	docID := pathID(r, "docId")
	if id == 0 || docID == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	db := database.DB
	var doc models.Document
	if err := db.Where("id = ? AND investment_id = ?", docID, id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Document not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if err := db.Delete(&doc).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	// Best-effort object cleanup; the row is gone either way.
	if err := utils.DeleteObject(doc.ObjectKey); err != nil {
		log.Printf("object delete failed for %s: %v", doc.ObjectKey, err)
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
