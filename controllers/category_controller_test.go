package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolshedhq/toolshed/models"
)

func categoryRouter(user models.User) *gin.Engine {
	router := authRouter(user)
	router.GET("/categories", ListCategories)
	router.POST("/categories", CreateCategory)
	router.PUT("/categories/:id", UpdateCategory)
	router.DELETE("/categories/:id", DeleteCategory)
	return router
}

func TestCreateCategory(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.org", models.RoleAdmin)
	r := categoryRouter(admin)

	w := doJSON(t, r, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Power Tools",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateCategory_DuplicateScopedToParent(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.org", models.RoleAdmin)
	r := categoryRouter(admin)

	hand := createTestCategory(t, db, "Hand Tools", nil)
	power := createTestCategory(t, db, "Power Tools", nil)

	// Same name under two different parents is allowed
	w := doJSON(t, r, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Saws", "parent_id": hand.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Saws", "parent_id": power.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same name under the same parent is a conflict
	w = doJSON(t, r, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Saws", "parent_id": hand.ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Duplicate top-level name is a conflict too
	w = doJSON(t, r, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Hand Tools",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateCategory_MissingParent(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.org", models.RoleAdmin)
	r := categoryRouter(admin)

	w := doJSON(t, r, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Orphan", "parent_id": 999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCategory_EmptyName(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.org", models.RoleAdmin)
	r := categoryRouter(admin)

	w := doJSON(t, r, http.MethodPost, "/categories", map[string]interface{}{
		"name": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCategory_RejectsCycle(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.org", models.RoleAdmin)
	r := categoryRouter(admin)

	// Five-level chain: a > b > c > d > e
	a := createTestCategory(t, db, "a", nil)
	b := createTestCategory(t, db, "b", &a.ID)
	c := createTestCategory(t, db, "c", &b.ID)
	d := createTestCategory(t, db, "d", &c.ID)
	e := createTestCategory(t, db, "e", &d.ID)

	// Reparenting the root under the deepest leaf would close a cycle
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", a.ID), map[string]interface{}{
		"name": "a", "parent_id": e.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A category cannot be its own parent
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", c.ID), map[string]interface{}{
		"name": "c", "parent_id": c.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing moved
	var check models.Category
	require.NoError(t, db.First(&check, a.ID).Error)
	assert.Nil(t, check.ParentID)
}

func TestUpdateCategory_ReparentToSibling(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.org", models.RoleAdmin)
	r := categoryRouter(admin)

	a := createTestCategory(t, db, "a", nil)
	b := createTestCategory(t, db, "b", &a.ID)
	c := createTestCategory(t, db, "c", &a.ID)

	// Moving a leaf under its sibling is legal
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", c.ID), map[string]interface{}{
		"name": "c", "parent_id": b.ID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var check models.Category
	require.NoError(t, db.First(&check, c.ID).Error)
	require.NotNil(t, check.ParentID)
	assert.Equal(t, b.ID, *check.ParentID)
}

func TestDeleteCategory_Guards(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.org", models.RoleAdmin)
	r := categoryRouter(admin)

	parent := createTestCategory(t, db, "parent", nil)
	child := createTestCategory(t, db, "child", &parent.ID)
	createTestTool(t, db, "Hammer", child.ID, 1)

	// Parent still has a child
	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", parent.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Child still has a tool
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", child.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Empty leaf deletes cleanly
	empty := createTestCategory(t, db, "empty", nil)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", empty.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListCategories_TreeWithCounts(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := categoryRouter(volunteer)

	x := createTestCategory(t, db, "x", nil)
	y := createTestCategory(t, db, "y", &x.ID)
	z := createTestCategory(t, db, "z", &y.ID)
	createTestTool(t, db, "One", x.ID, 1)
	createTestTool(t, db, "Two", y.ID, 1)
	createTestTool(t, db, "Three", z.ID, 1)

	w := doJSON(t, r, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	categories := data["categories"].([]interface{})
	require.Len(t, categories, 1)

	root := categories[0].(map[string]interface{})
	assert.Equal(t, "x", root["name"])
	assert.Equal(t, float64(3), root["tool_count"])

	children := root["children"].([]interface{})
	require.Len(t, children, 1)
	assert.Equal(t, float64(2), children[0].(map[string]interface{})["tool_count"])
}
