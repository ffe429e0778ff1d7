package documentControllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderControllers "github.com/provabook/provabook-api/controllers/order"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

// POST /documents. Multipart upload, optional order association via the
// "order_id" form field.
func UploadDocumentHandler(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, fileHeader, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		defer file.Close()

		var orderID *string
		var order *models.Order
		if id := c.PostForm("order_id"); id != "" {
			var o models.Order
			if err := db.First(&o, "id = ?", id).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			order = &o
			orderID = &o.ID
		}

		// Ensure upload directory exists
		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		// Opaque on-disk name; the original name stays in the metadata row
		ext := filepath.Ext(fileHeader.Filename)
		storedName := fmt.Sprintf("%s%s", uuid.NewString(), ext)
		savePath := filepath.Join(uploadDir, storedName)

		if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		actorID, actorName := orderControllers.Actor(db, c)
		doc := models.Document{
			OrderID:     orderID,
			FileName:    strings.ReplaceAll(fileHeader.Filename, " ", "_"),
			StoragePath: storedName,
			ContentType: fileHeader.Header.Get("Content-Type"),
			SizeBytes:   fileHeader.Size,
			Label:       c.PostForm("label"),
		}
		if actorID != "" {
			doc.UploadedByID = &actorID
		}
		if err := db.Create(&doc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document record"})
			return
		}

		if order != nil {
			models.RecordAudit(db, models.OrderAudit(order, models.AuditLog{
				Action:     models.ActionDocumentAdded,
				EntityType: "document",
				EntityID:   doc.ID,
				ActorID:    actorID,
				ActorName:  actorName,
				NewValue:   doc.FileName,
			}))
		}

		c.JSON(http.StatusCreated, doc)
	}
}

// GET /documents
func GetAllDocumentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if orderID := c.Query("order_id"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}

		var docs []models.Document
		if err := query.Find(&docs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// GET /documents/:documentID
func GetDocumentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc models.Document
		if err := db.First(&doc, "id = ?", c.Param("documentID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// DELETE /documents/:documentID. The metadata row goes first; removing the
// blob from disk is best-effort and a failure only gets logged, so the
// record never survives a storage hiccup.
func DeleteDocumentHandler(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc models.Document
		if err := db.First(&doc, "id = ?", c.Param("documentID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}

		if err := db.Delete(&doc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document record"})
			return
		}

		filePath := filepath.Join(uploadDir, doc.StoragePath)
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			log.Printf("❌ Failed to delete document blob %s: %v", filePath, err)
		}

		if doc.OrderID != nil {
			var order models.Order
			if err := db.First(&order, "id = ?", *doc.OrderID).Error; err == nil {
				actorID, actorName := orderControllers.Actor(db, c)
				models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
					Action:     models.ActionDocumentRemoved,
					EntityType: "document",
					EntityID:   doc.ID,
					ActorID:    actorID,
					ActorName:  actorName,
					OldValue:   doc.FileName,
				}))
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
	}
}
