package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolshedhq/toolshed/models"
)

func toolRouter(user models.User) *gin.Engine {
	router := authRouter(user)
	router.GET("/tools", ListTools)
	router.GET("/tools/search", SearchTools)
	router.GET("/tools/:id", GetTool)
	router.POST("/tools", CreateTool)
	router.PUT("/tools/:id", UpdateTool)
	router.DELETE("/tools/:id", DeleteTool)
	return router
}

func TestCreateTool(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := toolRouter(volunteer)

	category := createTestCategory(t, db, "Power Tools", nil)

	w := doJSON(t, r, http.MethodPost, "/tools", map[string]interface{}{
		"name":        "Circular Saw",
		"category_id": category.ID,
		"quantity":    3,
		"donor":       "Habitat ReStore",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var tool models.Tool
	require.NoError(t, db.First(&tool).Error)
	assert.Equal(t, "Circular Saw", tool.Name)
	assert.Equal(t, 3, tool.Quantity)
	assert.Equal(t, models.ConditionGood, tool.ConditionStatus)
}

func TestCreateTool_UnknownConditionDefaultsToGood(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := toolRouter(volunteer)

	category := createTestCategory(t, db, "Power Tools", nil)

	w := doJSON(t, r, http.MethodPost, "/tools", map[string]interface{}{
		"name":             "Sander",
		"category_id":      category.ID,
		"quantity":         1,
		"condition_status": "PRISTINE",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var tool models.Tool
	require.NoError(t, db.First(&tool).Error)
	assert.Equal(t, models.ConditionGood, tool.ConditionStatus)
}

func TestCreateTool_Validation(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := toolRouter(volunteer)

	w := doJSON(t, r, http.MethodPost, "/tools", map[string]interface{}{
		"name":        "",
		"category_id": 0,
		"quantity":    0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name")
	assert.Contains(t, w.Body.String(), "category_id")
	assert.Contains(t, w.Body.String(), "quantity")

	// Unknown category
	w = doJSON(t, r, http.MethodPost, "/tools", map[string]interface{}{
		"name":        "Sander",
		"category_id": 999,
		"quantity":    1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTool_RejectsUnknownCondition(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := toolRouter(volunteer)

	category := createTestCategory(t, db, "Power Tools", nil)
	tool := createTestTool(t, db, "Drill", category.ID, 1)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/tools/%d", tool.ID), map[string]interface{}{
		"name":             "Drill",
		"category_id":      category.ID,
		"quantity":         1,
		"condition_status": "BROKEN",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/tools/%d", tool.ID), map[string]interface{}{
		"name":             "Drill",
		"category_id":      category.ID,
		"quantity":         2,
		"condition_status": models.ConditionRetired,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Tool
	require.NoError(t, db.First(&updated, tool.ID).Error)
	assert.Equal(t, models.ConditionRetired, updated.ConditionStatus)
	assert.Equal(t, 2, updated.Quantity)
}

func TestGetTool_AvailableCount(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := toolRouter(volunteer)

	category := createTestCategory(t, db, "Power Tools", nil)
	tool := createTestTool(t, db, "Drill", category.ID, 3)
	patron := createTestPatron(t, db)
	createTestCheckout(t, db, tool.ID, patron.ID, volunteer.ID, time.Now().AddDate(0, 0, 7))

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/tools/%d", tool.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["available_count"])
}

func TestDeleteTool_CascadesDependents(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.org", models.RoleAdmin)
	r := toolRouter(admin)

	category := createTestCategory(t, db, "Power Tools", nil)
	tool := createTestTool(t, db, "Drill", category.ID, 1)
	patron := createTestPatron(t, db)
	createTestCheckout(t, db, tool.ID, patron.ID, admin.ID, time.Now().AddDate(0, 0, 7))
	report := models.DamageReport{ToolID: tool.ID, ReporterID: admin.ID, Description: "chipped bit", ReportedAt: time.Now()}
	require.NoError(t, db.Create(&report).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/tools/%d", tool.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Checkout{}).Where("tool_id = ?", tool.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.DamageReport{}).Where("tool_id = ?", tool.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/tools/%d", tool.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchTools(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := toolRouter(volunteer)

	category := createTestCategory(t, db, "Power Tools", nil)
	createTestTool(t, db, "Circular Saw", category.ID, 1)
	createTestTool(t, db, "Drill", category.ID, 1)

	w := doJSON(t, r, http.MethodGet, "/tools/search?search=Saw", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Circular Saw")
	assert.NotContains(t, w.Body.String(), "Drill")
}
