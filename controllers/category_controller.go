package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
	"gorm.io/gorm"
)

// CategoryRequest represents the category creation/update request
type CategoryRequest struct {
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
}

// ListCategories returns the full category tree with subtree-inclusive
// tool counts and availability
func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")

	var categories []models.Category
	if err := config.DB.Order("name asc").Find(&categories).Error; err != nil {
		utils.LogError("Failed to load categories: %v", err)
		utils.InternalServerError(c, "Failed to load categories", nil)
		return
	}

	tools, err := toolAvailabilities(config.DB)
	if err != nil {
		utils.LogError("Failed to load tool availability: %v", err)
		utils.InternalServerError(c, "Failed to load categories", nil)
		return
	}

	tree := utils.BuildCategoryTree(categories)
	tree.ApplyToolCounts(tools)

	utils.Success(c, "Categories retrieved successfully", gin.H{
		"categories": tree.Roots(),
	})
}

// CreateCategory handles category creation (admin only)
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.LogError("Empty category name")
		utils.BadRequest(c, "Category name is required", gin.H{"field": "name"})
		return
	}
	utils.LogDebug("Received category creation request - Name: %s", name)

	if req.ParentID != nil {
		var parent models.Category
		if err := config.DB.First(&parent, *req.ParentID).Error; err != nil {
			utils.LogError("Parent category %d not found: %v", *req.ParentID, err)
			utils.BadRequest(c, "Parent category not found", gin.H{"field": "parent_id"})
			return
		}
	}

	if duplicateCategoryName(config.DB, name, req.ParentID, 0) {
		utils.LogError("Category with name %s already exists under the same parent", name)
		utils.Conflict(c, duplicateCategoryMessage(req.ParentID), gin.H{"field": "name"})
		return
	}

	category := models.Category{
		Name:     name,
		ParentID: req.ParentID,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	utils.LogInfo("Category created successfully: %s", category.Name)
	utils.Created(c, "Category created successfully", gin.H{
		"category": gin.H{
			"id":        category.ID,
			"name":      category.Name,
			"parent_id": category.ParentID,
		},
	})
}

// UpdateCategory handles category rename/reparent (admin only)
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid category ID format: %v", err)
		utils.BadRequest(c, "Invalid category ID format", "Category ID must be a valid number")
		return
	}
	utils.LogDebug("Processing category ID: %d", id)

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.LogError("Empty category name")
		utils.BadRequest(c, "Category name is required", gin.H{"field": "name"})
		return
	}

	if duplicateCategoryName(config.DB, name, req.ParentID, category.ID) {
		utils.LogError("Duplicate category name found: %s", name)
		utils.Conflict(c, duplicateCategoryMessage(req.ParentID), gin.H{"field": "name"})
		return
	}

	if req.ParentID != nil {
		if *req.ParentID == category.ID {
			utils.LogError("Category %d cannot be its own parent", category.ID)
			utils.BadRequest(c, "A category cannot be its own parent", gin.H{"field": "parent_id"})
			return
		}

		var parent models.Category
		if err := config.DB.First(&parent, *req.ParentID).Error; err != nil {
			utils.LogError("Parent category %d not found: %v", *req.ParentID, err)
			utils.BadRequest(c, "Parent category not found", gin.H{"field": "parent_id"})
			return
		}

		circular, err := isDescendantOf(config.DB, *req.ParentID, category.ID)
		if err != nil {
			utils.LogError("Cycle check failed: %v", err)
			utils.InternalServerError(c, "Failed to update category", nil)
			return
		}
		if circular {
			utils.LogError("Reparenting category %d under %d would create a cycle", category.ID, *req.ParentID)
			utils.BadRequest(c, "Cannot create circular hierarchy - the selected parent is a descendant of this category", gin.H{"field": "parent_id"})
			return
		}
	}

	updates := map[string]interface{}{
		"name":      name,
		"parent_id": req.ParentID,
	}
	if err := config.DB.Model(&category).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update category: %v", err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	utils.LogInfo("Category updated successfully: %s", name)
	utils.Success(c, "Category updated successfully", gin.H{
		"category": gin.H{
			"id":        category.ID,
			"name":      name,
			"parent_id": req.ParentID,
		},
	})
}

// DeleteCategory handles category deletion (admin only). Categories
// that still hold tools or child categories cannot be deleted, so
// nothing is silently orphaned.
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	categoryID := c.Param("id")
	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}
	utils.LogDebug("Found category: %s", category.Name)

	var toolCount int64
	if err := config.DB.Model(&models.Tool{}).Where("category_id = ?", category.ID).Count(&toolCount).Error; err != nil {
		utils.LogError("Failed to count tools: %v", err)
		utils.InternalServerError(c, "Failed to check category usage", nil)
		return
	}
	if toolCount > 0 {
		utils.LogError("Cannot delete category with %d tools", toolCount)
		utils.BadRequest(c, "Cannot delete category that still has tools", gin.H{"tool_count": toolCount})
		return
	}

	var childCount int64
	if err := config.DB.Model(&models.Category{}).Where("parent_id = ?", category.ID).Count(&childCount).Error; err != nil {
		utils.LogError("Failed to count child categories: %v", err)
		utils.InternalServerError(c, "Failed to check category usage", nil)
		return
	}
	if childCount > 0 {
		utils.LogError("Cannot delete category with %d children", childCount)
		utils.BadRequest(c, "Cannot delete category that still has child categories", gin.H{"child_count": childCount})
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.LogError("Failed to delete category: %v", err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}

	utils.LogInfo("Category deleted successfully: %s", category.Name)
	utils.Success(c, "Category deleted successfully", nil)
}

// duplicateCategoryName reports whether another category with the same
// name exists under the same parent. Name uniqueness is scoped per
// parent, top-level included. excludeID skips the record being updated.
func duplicateCategoryName(db *gorm.DB, name string, parentID *uint, excludeID uint) bool {
	query := db.Model(&models.Category{}).Where("name = ?", name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		utils.LogError("Duplicate check failed: %v", err)
		return false
	}
	return count > 0
}

func duplicateCategoryMessage(parentID *uint) string {
	if parentID != nil {
		return "A category with this name already exists under the selected parent"
	}
	return "A top-level category with this name already exists"
}

// isDescendantOf walks the parent chain upward from startID and reports
// whether targetID is encountered. O(depth): the tree is kept acyclic
// at all times, so every existing chain is finite.
func isDescendantOf(db *gorm.DB, startID, targetID uint) (bool, error) {
	currentID := &startID
	for currentID != nil {
		if *currentID == targetID {
			return true, nil
		}

		var parentID *uint
		err := db.Model(&models.Category{}).
			Select("parent_id").
			Where("id = ?", *currentID).
			Scan(&parentID).Error
		if err != nil {
			return false, err
		}
		currentID = parentID
	}
	return false, nil
}
