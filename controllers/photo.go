package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"permit-management-api/config"
	"permit-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const inspectionPhotoDir = "uploads/inspections"

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadInspectionPhoto attaches a photo to an inspection. Only the assigned
// officer may upload.
func UploadInspectionPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	inspectionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inspection id"})
		return
	}

	var inspection models.Inspection
	if err := config.DB.Where("id = ?", inspectionID).First(&inspection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inspection not found"})
		return
	}
	if inspection.InspectionOfficerID == nil || *inspection.InspectionOfficerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the assigned officer can upload photos"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image format"})
		return
	}

	if err := os.MkdirAll(inspectionPhotoDir, 0o755); err != nil {
		respondServiceError(c, err)
		return
	}

	destination := filepath.Join(inspectionPhotoDir, fmt.Sprintf("%d-%s%s", inspectionID, uuid.NewString(), ext))
	if err := c.SaveUploadedFile(file, destination); err != nil {
		respondServiceError(c, err)
		return
	}

	photo := models.InspectionPhoto{
		InspectionID: inspectionID,
		FilePath:     destination,
		Caption:      ptr(c.PostForm("caption")),
		UploadedByID: userID,
		UploadedAt:   time.Now(),
	}
	if err := config.DB.Create(&photo).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// DeleteInspectionPhoto removes a photo; only its uploader or an admin may
// delete.
func DeleteInspectionPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	photoID, err := strconv.Atoi(c.Param("photoID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo id"})
		return
	}

	var photo models.InspectionPhoto
	if err := config.DB.Where("id = ?", photoID).First(&photo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	role, _ := c.Get("role")
	if photo.UploadedByID != userID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := config.DB.Delete(&photo).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	// File removal failures are non-fatal; the row is authoritative.
	_ = os.Remove(photo.FilePath)

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}
