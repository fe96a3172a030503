package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripmark/internal/models"
	"tripmark/internal/recordstore"
	"tripmark/internal/storage"
	"tripmark/pkg/utils"
)

func newTestRouter(t *testing.T) (*gin.Engine, recordstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := recordstore.New(context.Background(), storage.NewMemorySlotStore(), zap.NewNop())
	require.NoError(t, err)

	rc := NewRecordController(store)
	mc := NewMarkerController(store)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "u1") })
	r.POST("/records", rc.CreateRecord)
	r.GET("/records", rc.ListRecords)
	r.DELETE("/records/:id", rc.DeleteRecord)
	r.GET("/photos", rc.ListPhotos)
	r.PATCH("/photos/:photoId/favorite", rc.UpdatePhotoFavorite)
	r.GET("/markers", mc.ListMarkers)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCreateAndListRecords(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/records", `{
		"title": "Alps Trip",
		"date": "2024-05-10",
		"location": "Grindelwald",
		"coordinate": {"lat": 46.5, "lng": 8.0},
		"memo": "glacier hike"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Travel record saved", resp.Message)

	w, resp = doJSON(t, r, http.MethodGet, "/records", "")
	require.Equal(t, http.StatusOK, w.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var records []models.TravelRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Alps Trip", records[0].Title)
	assert.Equal(t, "u1", records[0].UserID)
}

func TestCreateRecordRejectsMissingTitle(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/records", `{"date": "2024-05-10"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestDeleteRecordEndpoint(t *testing.T) {
	r, store := newTestRouter(t)

	created, err := store.AddRecord(context.Background(), "u1", recordstore.NewRecord{
		Title: "Alps Trip", Date: "2024-05-10",
	})
	require.NoError(t, err)

	w, resp := doJSON(t, r, http.MethodDelete, "/records/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Travel record deleted", resp.Message)

	records, err := store.GetRecordsByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFavoriteToggleEndpoint(t *testing.T) {
	r, store := newTestRouter(t)

	created, err := store.AddRecord(context.Background(), "u1", recordstore.NewRecord{
		Title: "Alps Trip", Date: "2024-05-10",
		Photos: []recordstore.NewPhoto{{Src: "data:image/png;base64,AAAA"}},
	})
	require.NoError(t, err)
	photoID := created.Photos[0].ID

	w, resp := doJSON(t, r, http.MethodPatch, "/photos/"+photoID+"/favorite", `{"is_favorite": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Favorite updated", resp.Message)

	photos, err := store.GetPhotosByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.True(t, photos[0].IsFavorite)
}

func TestMarkersEndpointGroupsByCoordinate(t *testing.T) {
	r, store := newTestRouter(t)
	ctx := context.Background()

	shared := &models.Coordinate{Latitude: 37.5, Longitude: 127.0}
	for _, title := range []string{"Day 1", "Day 2"} {
		_, err := store.AddRecord(ctx, "u1", recordstore.NewRecord{
			Title: title, Date: "2024-05-10", Coordinate: shared,
		})
		require.NoError(t, err)
	}
	// a record with no coordinate never reaches the map
	_, err := store.AddRecord(ctx, "u1", recordstore.NewRecord{Title: "nowhere", Date: "2024-05-11"})
	require.NoError(t, err)

	w, resp := doJSON(t, r, http.MethodGet, "/markers", "")
	require.Equal(t, http.StatusOK, w.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var markers []struct {
		Count int `json:"count"`
		Pages []struct {
			Title    string `json:"title"`
			Position string `json:"position"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(data, &markers))
	require.Len(t, markers, 1)
	assert.Equal(t, 2, markers[0].Count)
	require.Len(t, markers[0].Pages, 2)
	assert.Equal(t, "Day 1", markers[0].Pages[0].Title)
	assert.Equal(t, "1/2", markers[0].Pages[0].Position)
}
