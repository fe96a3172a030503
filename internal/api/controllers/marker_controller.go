package controllers

import (
	"github.com/gin-gonic/gin"

	"tripmark/internal/models/response_models"
	"tripmark/internal/projection"
	"tripmark/internal/recordstore"
	"tripmark/pkg/utils"
)

type MarkerController struct {
	records recordstore.Store
}

func NewMarkerController(records recordstore.Store) *MarkerController {
	return &MarkerController{records: records}
}

// ListMarkers projects the session user's records into map markers.
// Records at one exact coordinate collapse into a single marker whose
// pages the client steps through.
func (m *MarkerController) ListMarkers(c *gin.Context) {
	records, err := m.records.GetRecordsByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	markers := projection.Project(records)
	out := make([]response_models.MarkerResponse, 0, len(markers))
	for _, marker := range markers {
		resp := response_models.MarkerResponse{
			ID:        marker.ID,
			Latitude:  marker.Coordinate.Latitude,
			Longitude: marker.Coordinate.Longitude,
			Count:     marker.Count,
			Label:     marker.Label,
		}
		for _, page := range marker.Pager.Pages() {
			resp.Pages = append(resp.Pages, response_models.MarkerPageResponse{
				RecordID: page.RecordID,
				Title:    page.Title,
				Date:     page.Date,
				Memo:     page.Memo,
				Location: page.LocationName,
				Country:  page.Country,
				ImageURL: page.ImageURL,
				Position: page.Position,
			})
		}
		out = append(out, resp)
	}

	utils.RespondSuccess(c, out, "Markers projected")
}
