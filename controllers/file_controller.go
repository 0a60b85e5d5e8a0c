package controllers

import (
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
	"gorm.io/gorm"
)

// targetExists verifies the attachment target entity is present
func targetExists(db *gorm.DB, target models.AttachTarget) (bool, error) {
	var err error
	switch t := target.(type) {
	case models.ToolTarget:
		err = db.First(&models.Tool{}, t.ToolID).Error
	case models.PatronTarget:
		err = db.First(&models.Patron{}, t.PatronID).Error
	case models.VolunteerTarget:
		err = db.First(&models.User{}, t.UserID).Error
	case models.DamageReportTarget:
		err = db.First(&models.DamageReport{}, t.DamageReportID).Error
	default:
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UploadFiles stores one or more uploaded files against an entity.
// Each file is written to disk first; if the database insert fails the
// just-written file is deleted so no orphans are left behind.
func UploadFiles(c *gin.Context) {
	utils.LogInfo("UploadFiles called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found in context")
		return
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.InternalServerError(c, "Invalid user type", nil)
		return
	}

	entityType := strings.ToUpper(strings.TrimSpace(c.PostForm("entity_type")))
	entityID, err := strconv.ParseUint(c.PostForm("entity_id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid entity ID: %v", err)
		utils.BadRequest(c, "Invalid entity ID", nil)
		return
	}
	label := strings.TrimSpace(c.PostForm("label"))

	target, err := models.ParseAttachTarget(entityType, uint(entityID))
	if err != nil {
		utils.LogError("Invalid entity type: %v", err)
		utils.BadRequest(c, "Invalid entity type", gin.H{"field": "entity_type"})
		return
	}

	found, err := targetExists(config.DB, target)
	if err != nil {
		utils.LogError("Failed to look up attachment target: %v", err)
		utils.InternalServerError(c, "Failed to upload files", nil)
		return
	}
	if !found {
		utils.LogError("Attachment target %s %d not found", entityType, entityID)
		utils.NotFound(c, "Attachment target not found")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.LogError("Invalid multipart form: %v", err)
		utils.BadRequest(c, "Invalid multipart form", err.Error())
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		utils.BadRequest(c, "No files provided", nil)
		return
	}
	utils.LogDebug("Uploading %d files for %s %d", len(files), entityType, entityID)

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Failed to load config: %v", err)
		utils.InternalServerError(c, "Failed to upload files", nil)
		return
	}

	var saved []gin.H
	var failed []gin.H
	for _, fileHeader := range files {
		path, err := utils.SaveUploadedFile(fileHeader, cfg.UploadDir, entityType)
		if err != nil {
			utils.LogError("Failed to save %s: %v", fileHeader.Filename, err)
			failed = append(failed, gin.H{"file_name": fileHeader.Filename, "error": err.Error()})
			continue
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		record := models.File{
			FileName:     fileHeader.Filename,
			FilePath:     path,
			FileType:     contentType,
			Label:        label,
			UploadedByID: user.ID,
		}
		target.Apply(&record)

		if err := config.DB.Create(&record).Error; err != nil {
			// Compensating cleanup: the record failed, remove the file
			utils.LogError("Failed to create file record for %s: %v", fileHeader.Filename, err)
			if rmErr := utils.DeleteFile(path); rmErr != nil {
				utils.LogError("Cleanup failed for %s: %v", path, rmErr)
			}
			failed = append(failed, gin.H{"file_name": fileHeader.Filename, "error": "Failed to store file record"})
			continue
		}

		saved = append(saved, gin.H{
			"id":        record.ID,
			"file_name": record.FileName,
			"file_type": record.FileType,
			"label":     record.Label,
		})
	}

	if len(saved) == 0 {
		utils.LogError("All %d uploads failed", len(files))
		utils.InternalServerError(c, "Failed to upload files", gin.H{"failed": failed})
		return
	}

	utils.LogInfo("Uploaded %d of %d files for %s %d", len(saved), len(files), entityType, entityID)
	utils.Created(c, "Files uploaded", gin.H{
		"files":  saved,
		"failed": failed,
	})
}

// ServeFile streams a stored file with its content type and a
// long-lived cache header
func ServeFile(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid file ID format: %v", err)
		utils.BadRequest(c, "Invalid file ID", nil)
		return
	}

	var record models.File
	if err := config.DB.First(&record, fileID).Error; err != nil {
		utils.LogError("File record %d not found: %v", fileID, err)
		utils.NotFound(c, "File not found")
		return
	}

	if _, err := os.Stat(record.FilePath); err != nil {
		utils.LogError("Stored file missing on disk: %s: %v", record.FilePath, err)
		utils.InternalServerError(c, "Failed to read file", nil)
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("Content-Type", record.FileType)
	c.File(record.FilePath)
}

// DeleteFileRecord removes a file record and its disk content (admin
// only)
func DeleteFileRecord(c *gin.Context) {
	utils.LogInfo("DeleteFileRecord called")

	var record models.File
	if err := config.DB.First(&record, c.Param("id")).Error; err != nil {
		utils.LogError("File record not found: %v", err)
		utils.NotFound(c, "File not found")
		return
	}

	if err := config.DB.Delete(&record).Error; err != nil {
		utils.LogError("Failed to delete file record %d: %v", record.ID, err)
		utils.InternalServerError(c, "Failed to delete file", nil)
		return
	}

	if err := utils.DeleteFile(record.FilePath); err != nil {
		utils.LogError("Failed to remove file %s: %v", record.FilePath, err)
	}

	utils.LogInfo("File %d deleted", record.ID)
	utils.Success(c, "File deleted successfully", nil)
}
