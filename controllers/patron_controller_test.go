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

func patronRouter(user models.User) *gin.Engine {
	router := authRouter(user)
	router.GET("/patrons", ListPatrons)
	router.GET("/patrons/search", SearchPatrons)
	router.GET("/patrons/:id", GetPatron)
	router.POST("/patrons", CreatePatron)
	router.PUT("/patrons/:id", UpdatePatron)
	return router
}

func patronPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":      "Jamie",
		"last_name":       "Rivera",
		"email":           "jamie@example.org",
		"mailing_street":  "12 Oak St",
		"mailing_city":    "Springfield",
		"mailing_state":   "IL",
		"mailing_zipcode": "62704",
	}
}

func TestCreatePatron(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := patronRouter(volunteer)

	w := doJSON(t, r, http.MethodPost, "/patrons", patronPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var patron models.Patron
	require.NoError(t, db.First(&patron).Error)
	assert.Equal(t, "Jamie", patron.FirstName)
	require.NotNil(t, patron.CreatedByID)
	assert.Equal(t, volunteer.ID, *patron.CreatedByID)
	assert.Equal(t, 0, patron.OverdueCount)
}

func TestCreatePatron_ValidationErrors(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := patronRouter(volunteer)

	// Neither email nor phone
	payload := patronPayload()
	payload["email"] = ""
	w := doJSON(t, r, http.MethodPost, "/patrons", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "contact")

	// Missing address fields
	payload = patronPayload()
	payload["mailing_city"] = ""
	payload["mailing_zipcode"] = "123"
	w = doJSON(t, r, http.MethodPost, "/patrons", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "mailing_city")
	assert.Contains(t, w.Body.String(), "mailing_zipcode")

	var count int64
	require.NoError(t, db.Model(&models.Patron{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdatePatron_CannotTouchOverdueCount(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := patronRouter(volunteer)

	patron := createTestPatron(t, db)
	require.NoError(t, db.Model(&patron).Update("overdue_count", 3).Error)

	payload := patronPayload()
	payload["overdue_count"] = 0
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/patrons/%d", patron.ID), payload)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Patron
	require.NoError(t, db.First(&updated, patron.ID).Error)
	assert.Equal(t, "Jamie", updated.FirstName)
	assert.Equal(t, 3, updated.OverdueCount)
}

func TestSearchPatrons(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := patronRouter(volunteer)

	createTestPatron(t, db) // Pat Smith
	other := models.Patron{
		FirstName: "Alex", LastName: "Jones",
		Email:         "alex@example.org",
		MailingStreet: "2 Elm St", MailingCity: "Springfield",
		MailingState: "IL", MailingZipcode: "62704",
	}
	require.NoError(t, db.Create(&other).Error)

	w := doJSON(t, r, http.MethodGet, "/patrons/search?last_name=Smi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pat")
	assert.NotContains(t, w.Body.String(), "Alex")

	// Empty query returns an empty set rather than everyone
	w = doJSON(t, r, http.MethodGet, "/patrons/search", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Pat")
}

func TestGetPatron_WithCheckoutHistory(t *testing.T) {
	db := setupTestDB(t)
	volunteer := createTestUser(t, db, "vol@example.org", models.RoleVolunteer)
	r := patronRouter(volunteer)

	category := createTestCategory(t, db, "Power Tools", nil)
	drill := createTestTool(t, db, "Drill", category.ID, 1)
	patron := createTestPatron(t, db)
	createTestCheckout(t, db, drill.ID, patron.ID, volunteer.ID, time.Now().AddDate(0, 0, 7))

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/patrons/%d", patron.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Drill")

	w = doJSON(t, r, http.MethodGet, "/patrons/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
