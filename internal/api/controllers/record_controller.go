package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"tripmark/internal/models"
	"tripmark/internal/models/request_models"
	"tripmark/internal/recordstore"
	"tripmark/pkg/utils"
)

type RecordController struct {
	records recordstore.Store
}

func NewRecordController(records recordstore.Store) *RecordController {
	return &RecordController{records: records}
}

func coordFromPayload(p *request_models.CoordinatePayload) *models.Coordinate {
	if p == nil {
		return nil
	}
	return &models.Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

func (r *RecordController) CreateRecord(c *gin.Context) {
	var req request_models.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	in := recordstore.NewRecord{
		Title:        req.Title,
		Date:         req.Date,
		LocationName: req.Location,
		Coordinate:   coordFromPayload(req.Coordinate),
		Country:      req.Country,
		Memo:         req.Memo,
	}
	for _, p := range req.Photos {
		in.Photos = append(in.Photos, recordstore.NewPhoto{
			Src:         p.Src,
			Title:       p.Title,
			Date:        p.Date,
			Location:    p.Location,
			Description: p.Description,
		})
	}

	record, err := r.records.AddRecord(c.Request.Context(), c.GetString("user_id"), in)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, record, "Travel record saved")
}

// ListRecords returns the session user's records, newest visit first.
func (r *RecordController) ListRecords(c *gin.Context) {
	records, err := r.records.GetRecordsByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	utils.RespondSuccess(c, records, "Travel records fetched")
}

func (r *RecordController) GetRecord(c *gin.Context) {
	record, err := r.records.GetRecordByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if record == nil || record.UserID != c.GetString("user_id") {
		utils.HandleServiceError(c, utils.ErrRecordNotFound)
		return
	}
	utils.RespondSuccess(c, record, "Travel record fetched")
}

func (r *RecordController) UpdateRecord(c *gin.Context) {
	var req request_models.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	patch := recordstore.RecordPatch{
		Title:        req.Title,
		Date:         req.Date,
		LocationName: req.Location,
		Coordinate:   coordFromPayload(req.Coordinate),
		Country:      req.Country,
		Memo:         req.Memo,
	}
	if err := r.records.UpdateRecord(c.Request.Context(), c.Param("id"), patch); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Travel record updated")
}

func (r *RecordController) DeleteRecord(c *gin.Context) {
	if err := r.records.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Travel record deleted")
}

func (r *RecordController) AddPhoto(c *gin.Context) {
	var req request_models.PhotoPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	photo, err := r.records.AddPhotoToRecord(c.Request.Context(), c.Param("id"), recordstore.NewPhoto{
		Src:         req.Src,
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, photo, "Photo added")
}

func (r *RecordController) RemovePhoto(c *gin.Context) {
	err := r.records.RemovePhotoFromRecord(c.Request.Context(), c.Param("id"), c.Param("photoId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Photo removed")
}

func (r *RecordController) UpdatePhotoDetails(c *gin.Context) {
	var req request_models.UpdatePhotoDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := r.records.UpdatePhotoDetails(c.Request.Context(), c.Param("id"), c.Param("photoId"), recordstore.PhotoPatch{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Photo details updated")
}

func (r *RecordController) AddPhotoTag(c *gin.Context) {
	var req request_models.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := r.records.AddPhotoTag(c.Request.Context(), c.Param("id"), c.Param("photoId"), req.Tag)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Tag added")
}

func (r *RecordController) RemovePhotoTag(c *gin.Context) {
	var req request_models.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := r.records.RemovePhotoTag(c.Request.Context(), c.Param("id"), c.Param("photoId"), req.Tag)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Tag removed")
}

// ListPhotos is the gallery view: every photo across the user's
// records, in record insertion order.
func (r *RecordController) ListPhotos(c *gin.Context) {
	photos, err := r.records.GetPhotosByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, photos, "Photos fetched")
}

// DeletePhoto deletes by photo id alone; the owning record is resolved
// internally.
func (r *RecordController) DeletePhoto(c *gin.Context) {
	if err := r.records.DeletePhoto(c.Request.Context(), c.Param("photoId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Photo deleted")
}

func (r *RecordController) UpdatePhotoFavorite(c *gin.Context) {
	var req request_models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsFavorite == nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := r.records.UpdatePhotoFavorite(c.Request.Context(), c.Param("photoId"), *req.IsFavorite)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Favorite updated")
}
