// Package recordstore owns the canonical collection of travel records.
// The collection lives in memory and is written back to the
// travelRecords slot in full after every mutation, so memory and the
// durable medium agree at each call boundary.
package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tripmark/internal/models"
	"tripmark/internal/storage"
	"tripmark/pkg/utils"
)

// NewPhoto is the payload for attaching a photo; ids are generated here.
type NewPhoto struct {
	Src         string
	Title       string
	Date        string
	Location    string
	Description string
}

// NewRecord is a record payload without id and timestamps.
type NewRecord struct {
	Title        string
	Date         string // YYYY-MM-DD
	LocationName string
	Coordinate   *models.Coordinate
	Country      string
	Memo         string
	Photos       []NewPhoto
}

// RecordPatch merges only non-nil fields into the record.
type RecordPatch struct {
	Title        *string
	Date         *string
	LocationName *string
	Coordinate   *models.Coordinate
	Country      *string
	Memo         *string
}

// PhotoPatch merges only non-nil fields into one photo. A Tags value
// replaces the whole tag set, deduplicated in first-seen order.
type PhotoPatch struct {
	Title       *string
	Date        *string
	Location    *string
	Description *string
	Tags        *[]string
}

// Store is the record repository contract. Mutations on ids that do not
// exist are silent no-ops (logged at warn level); the policy is uniform
// across every operation here. A failed slot write rolls the in-memory
// state back and surfaces utils.ErrStorageWrite.
type Store interface {
	AddRecord(ctx context.Context, userID string, in NewRecord) (models.TravelRecord, error)
	UpdateRecord(ctx context.Context, recordID string, patch RecordPatch) error
	DeleteRecord(ctx context.Context, recordID string) error
	DeleteRecordsByUser(ctx context.Context, userID string) error

	AddPhotoToRecord(ctx context.Context, recordID string, in NewPhoto) (models.Photo, error)
	RemovePhotoFromRecord(ctx context.Context, recordID, photoID string) error
	UpdatePhotoDetails(ctx context.Context, recordID, photoID string, patch PhotoPatch) error
	AddPhotoTag(ctx context.Context, recordID, photoID, tag string) error
	RemovePhotoTag(ctx context.Context, recordID, photoID, tag string) error

	// DeletePhoto and UpdatePhotoFavorite operate by photo id alone;
	// the owning record is resolved through the reverse index.
	DeletePhoto(ctx context.Context, photoID string) error
	UpdatePhotoFavorite(ctx context.Context, photoID string, isFavorite bool) error

	GetRecordByID(ctx context.Context, recordID string) (*models.TravelRecord, error)
	GetRecordsByUser(ctx context.Context, userID string) ([]models.TravelRecord, error)
	GetPhotosByUser(ctx context.Context, userID string) ([]models.Photo, error)

	// Subscribe registers fn to run after every successful mutation
	// with a snapshot of the full collection. The returned func
	// unsubscribes.
	Subscribe(fn func(records []models.TravelRecord)) (cancel func())
}

type slotBackedStore struct {
	mu    sync.RWMutex
	slots storage.SlotStore
	log   *zap.Logger
	now   func() time.Time

	records    []models.TravelRecord
	photoOwner map[string]string // photo id -> record id

	subMu   sync.Mutex
	subs    map[int]func([]models.TravelRecord)
	nextSub int
}

// New loads the collection from the travelRecords slot. A missing slot
// means an empty collection; a corrupt one is an error, not silent data
// loss.
func New(ctx context.Context, slots storage.SlotStore, log *zap.Logger) (Store, error) {
	raw, found, err := slots.Get(ctx, storage.SlotTravelRecords)
	if err != nil {
		return nil, fmt.Errorf("load travel records: %w", err)
	}

	var records []models.TravelRecord
	if found && raw != "" {
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			return nil, fmt.Errorf("decode travel records slot: %w", err)
		}
	}

	s := &slotBackedStore{
		slots:      slots,
		log:        log,
		now:        time.Now,
		records:    records,
		photoOwner: buildPhotoIndex(records),
		subs:       make(map[int]func([]models.TravelRecord)),
	}
	return s, nil
}

func buildPhotoIndex(records []models.TravelRecord) map[string]string {
	idx := make(map[string]string)
	for _, r := range records {
		for _, p := range r.Photos {
			idx[p.ID] = r.ID
		}
	}
	return idx
}

func (s *slotBackedStore) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// commit persists the candidate collection and only then swaps it in.
// Callers must hold the write lock. On success the returned snapshot is
// non-nil and should be handed to notify after the lock is released.
func (s *slotBackedStore) commit(ctx context.Context, next []models.TravelRecord) ([]models.TravelRecord, error) {
	data, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encode travel records: %w", err)
	}
	if err := s.slots.Set(ctx, storage.SlotTravelRecords, string(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStorageWrite, err)
	}

	s.records = next
	s.photoOwner = buildPhotoIndex(next)

	snapshot := make([]models.TravelRecord, len(next))
	for i, r := range next {
		snapshot[i] = r.Clone()
	}
	return snapshot, nil
}

func (s *slotBackedStore) notify(snapshot []models.TravelRecord) {
	if snapshot == nil {
		return
	}
	s.subMu.Lock()
	fns := make([]func([]models.TravelRecord), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func (s *slotBackedStore) Subscribe(fn func(records []models.TravelRecord)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// cloneRecords copies the current collection so a candidate mutation
// never aliases live state.
func (s *slotBackedStore) cloneRecords() []models.TravelRecord {
	next := make([]models.TravelRecord, len(s.records))
	for i, r := range s.records {
		next[i] = r.Clone()
	}
	return next
}

func (s *slotBackedStore) AddRecord(ctx context.Context, userID string, in NewRecord) (models.TravelRecord, error) {
	s.mu.Lock()

	now := s.timestamp()
	record := models.TravelRecord{
		ID:           utils.NewRecordID(),
		UserID:       userID,
		Title:        in.Title,
		Date:         in.Date,
		LocationName: in.LocationName,
		Country:      in.Country,
		Memo:         in.Memo,
		Photos:       make([]models.Photo, 0, len(in.Photos)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Coordinate != nil {
		c := *in.Coordinate
		record.Coordinate = &c
	}
	for _, np := range in.Photos {
		record.Photos = append(record.Photos, newPhoto(record.ID, np))
	}

	next := append(s.cloneRecords(), record)
	snapshot, err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return models.TravelRecord{}, err
	}

	s.notify(snapshot)
	return record.Clone(), nil
}

func newPhoto(recordID string, in NewPhoto) models.Photo {
	return models.Photo{
		ID:             utils.NewPhotoID(),
		TravelRecordID: recordID,
		Src:            in.Src,
		Title:          in.Title,
		Date:           in.Date,
		Location:       in.Location,
		Description:    in.Description,
		Tags:           []string{},
	}
}

// mutateRecord runs mutate against the record with the given id on a
// candidate copy and commits. A second delete from a stale marker popup
// lands here with an id that no longer exists; that is a no-op.
func (s *slotBackedStore) mutateRecord(ctx context.Context, recordID string, op string, mutate func(r *models.TravelRecord) error) error {
	s.mu.Lock()

	next := s.cloneRecords()
	idx := -1
	for i := range next {
		if next[i].ID == recordID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		s.log.Warn("record not found, ignoring mutation",
			zap.String("op", op), zap.String("recordId", recordID))
		return nil
	}

	if err := mutate(&next[idx]); err != nil {
		s.mu.Unlock()
		return err
	}
	next[idx].UpdatedAt = s.timestamp()

	snapshot, err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

func (s *slotBackedStore) UpdateRecord(ctx context.Context, recordID string, patch RecordPatch) error {
	return s.mutateRecord(ctx, recordID, "updateRecord", func(r *models.TravelRecord) error {
		if patch.Title != nil {
			r.Title = *patch.Title
		}
		if patch.Date != nil {
			r.Date = *patch.Date
		}
		if patch.LocationName != nil {
			r.LocationName = *patch.LocationName
		}
		if patch.Coordinate != nil {
			c := *patch.Coordinate
			r.Coordinate = &c
		}
		if patch.Country != nil {
			r.Country = *patch.Country
		}
		if patch.Memo != nil {
			r.Memo = *patch.Memo
		}
		return nil
	})
}

func (s *slotBackedStore) DeleteRecord(ctx context.Context, recordID string) error {
	s.mu.Lock()

	next := s.cloneRecords()
	kept := next[:0]
	removed := false
	for _, r := range next {
		if r.ID == recordID {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		s.mu.Unlock()
		s.log.Warn("record not found, ignoring delete", zap.String("recordId", recordID))
		return nil
	}

	snapshot, err := s.commit(ctx, kept)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

func (s *slotBackedStore) DeleteRecordsByUser(ctx context.Context, userID string) error {
	s.mu.Lock()

	next := s.cloneRecords()
	kept := next[:0]
	for _, r := range next {
		if r.UserID == userID {
			continue
		}
		kept = append(kept, r)
	}

	snapshot, err := s.commit(ctx, kept)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

func (s *slotBackedStore) AddPhotoToRecord(ctx context.Context, recordID string, in NewPhoto) (models.Photo, error) {
	var created models.Photo
	err := s.mutateRecord(ctx, recordID, "addPhoto", func(r *models.TravelRecord) error {
		created = newPhoto(r.ID, in)
		r.Photos = append(r.Photos, created)
		return nil
	})
	if err != nil {
		return models.Photo{}, err
	}
	return created, nil
}

func (s *slotBackedStore) RemovePhotoFromRecord(ctx context.Context, recordID, photoID string) error {
	return s.mutateRecord(ctx, recordID, "removePhoto", func(r *models.TravelRecord) error {
		kept := r.Photos[:0]
		found := false
		for _, p := range r.Photos {
			if p.ID == photoID {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		if !found {
			s.log.Warn("photo not found, ignoring remove",
				zap.String("recordId", recordID), zap.String("photoId", photoID))
		}
		r.Photos = kept
		return nil
	})
}

func (s *slotBackedStore) UpdatePhotoDetails(ctx context.Context, recordID, photoID string, patch PhotoPatch) error {
	return s.mutateRecord(ctx, recordID, "updatePhotoDetails", func(r *models.TravelRecord) error {
		for i := range r.Photos {
			if r.Photos[i].ID != photoID {
				continue
			}
			p := &r.Photos[i]
			if patch.Title != nil {
				p.Title = *patch.Title
			}
			if patch.Date != nil {
				p.Date = *patch.Date
			}
			if patch.Location != nil {
				p.Location = *patch.Location
			}
			if patch.Description != nil {
				p.Description = *patch.Description
			}
			if patch.Tags != nil {
				p.Tags = dedupeTags(*patch.Tags)
			}
			return nil
		}
		s.log.Warn("photo not found, ignoring details update",
			zap.String("recordId", recordID), zap.String("photoId", photoID))
		return nil
	})
}

func dedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (s *slotBackedStore) AddPhotoTag(ctx context.Context, recordID, photoID, tag string) error {
	return s.mutateRecord(ctx, recordID, "addPhotoTag", func(r *models.TravelRecord) error {
		for i := range r.Photos {
			if r.Photos[i].ID != photoID {
				continue
			}
			if r.Photos[i].HasTag(tag) {
				return utils.ErrDuplicateTag
			}
			r.Photos[i].Tags = append(r.Photos[i].Tags, tag)
			return nil
		}
		s.log.Warn("photo not found, ignoring tag add",
			zap.String("recordId", recordID), zap.String("photoId", photoID))
		return nil
	})
}

func (s *slotBackedStore) RemovePhotoTag(ctx context.Context, recordID, photoID, tag string) error {
	return s.mutateRecord(ctx, recordID, "removePhotoTag", func(r *models.TravelRecord) error {
		for i := range r.Photos {
			if r.Photos[i].ID != photoID {
				continue
			}
			kept := r.Photos[i].Tags[:0]
			for _, t := range r.Photos[i].Tags {
				if t == tag {
					continue
				}
				kept = append(kept, t)
			}
			r.Photos[i].Tags = kept
			return nil
		}
		s.log.Warn("photo not found, ignoring tag remove",
			zap.String("recordId", recordID), zap.String("photoId", photoID))
		return nil
	})
}

func (s *slotBackedStore) DeletePhoto(ctx context.Context, photoID string) error {
	s.mu.Lock()
	recordID, ok := s.photoOwner[photoID]
	s.mu.Unlock()
	if !ok {
		s.log.Warn("photo not found, ignoring delete", zap.String("photoId", photoID))
		return nil
	}
	return s.RemovePhotoFromRecord(ctx, recordID, photoID)
}

func (s *slotBackedStore) UpdatePhotoFavorite(ctx context.Context, photoID string, isFavorite bool) error {
	s.mu.Lock()
	recordID, ok := s.photoOwner[photoID]
	s.mu.Unlock()
	if !ok {
		s.log.Warn("photo not found, ignoring favorite update", zap.String("photoId", photoID))
		return nil
	}
	return s.mutateRecord(ctx, recordID, "updatePhotoFavorite", func(r *models.TravelRecord) error {
		for i := range r.Photos {
			if r.Photos[i].ID == photoID {
				r.Photos[i].IsFavorite = isFavorite
				return nil
			}
		}
		return nil
	})
}

func (s *slotBackedStore) GetRecordByID(ctx context.Context, recordID string) (*models.TravelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == recordID {
			out := r.Clone()
			return &out, nil
		}
	}
	return nil, nil
}

// GetRecordsByUser returns the user's records in insertion order;
// callers sort for presentation.
func (s *slotBackedStore) GetRecordsByUser(ctx context.Context, userID string) ([]models.TravelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TravelRecord, 0)
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *slotBackedStore) GetPhotosByUser(ctx context.Context, userID string) ([]models.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Photo, 0)
	for _, r := range s.records {
		if r.UserID != userID {
			continue
		}
		for _, p := range r.Photos {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}
