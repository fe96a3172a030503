// Package projection derives renderable map markers from the travel
// record collection. Records sharing one exact coordinate collapse into
// a single aggregate marker whose detail view pages across the members.
package projection

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripmark/internal/models"
)

// MapSurface is the external map SDK seen through the operations the
// projector needs. Rendering itself is out of scope here.
type MapSurface interface {
	AddMarker(m *Marker) error
	RemoveMarker(id string)
}

// RecordSource is the slice of the record repository the projector
// consumes. Satisfied by recordstore.Store.
type RecordSource interface {
	DeleteRecord(ctx context.Context, recordID string) error
	GetRecordsByUser(ctx context.Context, userID string) ([]models.TravelRecord, error)
	Subscribe(fn func(records []models.TravelRecord)) (cancel func())
}

type coordKey struct {
	lat, lng float64
}

// Project partitions records by exact coordinate equality and builds
// one marker per partition, in first-seen order. Exact float equality
// is intentional: two records only share a coordinate when they came
// from the same place-selection result. Records without a coordinate
// are excluded entirely rather than plotted at (0,0).
func Project(records []models.TravelRecord) []*Marker {
	var order []coordKey
	groups := make(map[coordKey][]models.TravelRecord)

	for _, r := range records {
		if r.Coordinate == nil {
			continue
		}
		key := coordKey{lat: r.Coordinate.Latitude, lng: r.Coordinate.Longitude}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	markers := make([]*Marker, 0, len(order))
	for _, key := range order {
		members := groups[key]
		m := &Marker{
			ID:         uuid.NewString(),
			Coordinate: models.Coordinate{Latitude: key.lat, Longitude: key.lng},
			Count:      len(members),
			Pager:      newDetailPager(members),
		}
		if len(members) == 1 {
			m.Label = members[0].Title
		} else {
			m.Label = strconv.Itoa(len(members))
		}
		markers = append(markers, m)
	}
	return markers
}

// Projector keeps a map surface in sync with one user's records. Each
// snapshot tears the previous marker set down completely before the new
// one goes up; no diffing, no stale markers.
type Projector struct {
	mu      sync.Mutex
	source  RecordSource
	surface MapSurface
	log     *zap.Logger

	userID  string
	markers map[string]*Marker
	cancel  func()
}

func NewProjector(source RecordSource, surface MapSurface, log *zap.Logger) *Projector {
	return &Projector{
		source:  source,
		surface: surface,
		log:     log,
		markers: make(map[string]*Marker),
	}
}

// Watch renders the user's current records and re-projects on every
// repository change until Close is called.
func (p *Projector) Watch(ctx context.Context, userID string) error {
	records, err := p.source.GetRecordsByUser(ctx, userID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.userID = userID
	p.mu.Unlock()

	p.Refresh(records)

	cancel := p.source.Subscribe(func(all []models.TravelRecord) {
		mine := make([]models.TravelRecord, 0, len(all))
		for _, r := range all {
			if r.UserID == userID {
				mine = append(mine, r)
			}
		}
		p.Refresh(mine)
	})

	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
	return nil
}

// Refresh replaces the rendered marker set with the projection of the
// given snapshot.
func (p *Projector) Refresh(records []models.TravelRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id := range p.markers {
		p.surface.RemoveMarker(id)
		delete(p.markers, id)
	}

	for _, m := range Project(records) {
		m.deleteFn = p.source.DeleteRecord
		if err := p.surface.AddMarker(m); err != nil {
			p.log.Warn("failed to place marker",
				zap.String("markerId", m.ID), zap.Error(err))
			continue
		}
		p.markers[m.ID] = m
	}
}

// Markers returns the currently rendered markers.
func (p *Projector) Markers() []*Marker {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Marker, 0, len(p.markers))
	for _, m := range p.markers {
		out = append(out, m)
	}
	return out
}

// Close stops watching and clears the surface.
func (p *Projector) Close() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	for id := range p.markers {
		p.surface.RemoveMarker(id)
		delete(p.markers, id)
	}
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
