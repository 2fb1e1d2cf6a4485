package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/models"
)

// In-memory adapters mirroring the gorm and mongo implementations.
// Used as test doubles and for running the API without external
// stores.

// --------------------------------------------------
// Relational side
// --------------------------------------------------

type MemoryAppointmentRepository struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Appointment
}

func NewMemoryAppointmentRepository() *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{rows: map[uint]models.Appointment{}}
}

func (r *MemoryAppointmentRepository) Create(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ap.ID = r.nextID
	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	r.rows[ap.ID] = *ap
	return nil
}

func (r *MemoryAppointmentRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.rows[id]
	if !ok {
		return httperr.ErrNotFound("appointment_not_found", "Appointment does not exist.")
	}

	for k, v := range fields {
		switch k {
		case "client_id":
			ap.ClientID = v.(uint)
		case "pet_id":
			ap.PetID = v.(uint)
		case "service_id":
			ap.ServiceID = v.(uint)
		case "vet_id":
			if v == nil {
				ap.VetID = nil
			} else {
				ap.VetID = v.(*uint)
			}
		case "date":
			ap.Date = v.(string)
		case "time":
			ap.Time = v.(string)
		case "pet_name":
			ap.PetName = v.(string)
		case "owner_name":
			ap.OwnerName = v.(string)
		case "status":
			ap.Status = v.(string)
		case "cancelled_at":
			ap.CancelledAt = v.(*time.Time)
		case "completed_at":
			ap.CompletedAt = v.(*time.Time)
		}
	}

	ap.UpdatedAt = time.Now()
	r.rows[id] = ap
	return nil
}

func (r *MemoryAppointmentRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, id)
	return nil
}

func (r *MemoryAppointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &ap, nil
}

func (r *MemoryAppointmentRepository) FindByClient(ctx context.Context, clientID uint, state domain.Status) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.rows {
		if ap.ClientID != clientID {
			continue
		}
		if state != "" && ap.Status != string(state) {
			continue
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryAppointmentRepository) FindByRange(ctx context.Context, from, to string, states []domain.Status) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.rows {
		// ISO dates compare correctly as strings
		if from != "" && ap.Date < from {
			continue
		}
		if to != "" && ap.Date > to {
			continue
		}
		if len(states) > 0 && !statusIn(ap.Status, states) {
			continue
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryAppointmentRepository) FindBySlot(ctx context.Context, date, hour string, states []domain.Status) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.rows {
		if ap.Date == date && ap.Time == hour && statusIn(ap.Status, states) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryAppointmentRepository) CountBySlot(ctx context.Context, date, hour string, states []domain.Status) (int64, error) {
	apps, err := r.FindBySlot(ctx, date, hour, states)
	if err != nil {
		return 0, err
	}
	return int64(len(apps)), nil
}

func (r *MemoryAppointmentRepository) CountByState(ctx context.Context, from, to string) (map[domain.Status]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := map[domain.Status]int64{}
	for _, ap := range r.rows {
		// ISO dates compare correctly as strings
		if from != "" && ap.Date < from {
			continue
		}
		if to != "" && ap.Date > to {
			continue
		}
		counts[domain.Status(ap.Status)]++
	}
	return counts, nil
}

func statusIn(status string, states []domain.Status) bool {
	for _, s := range states {
		if status == string(s) {
			return true
		}
	}
	return false
}

// --------------------------------------------------
// Document side
// --------------------------------------------------

type MemoryDetailStore struct {
	mu   sync.Mutex
	docs map[string]domain.ClinicalDetail
}

func NewMemoryDetailStore() *MemoryDetailStore {
	return &MemoryDetailStore{docs: map[string]domain.ClinicalDetail{}}
}

func (s *MemoryDetailStore) Create(ctx context.Context, d *domain.ClinicalDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[d.AppointmentID] = *d
	return nil
}

func (s *MemoryDetailStore) FindByAppointmentID(ctx context.Context, appointmentID string) (*domain.ClinicalDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[appointmentID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *MemoryDetailStore) Upsert(ctx context.Context, appointmentID string, patch domain.DetailPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[appointmentID]
	if !ok {
		d = domain.ClinicalDetail{AppointmentID: appointmentID}
	}

	for k, v := range patch {
		switch k {
		case "reason":
			d.Reason = v.(string)
		case "symptoms":
			d.Symptoms = v.(string)
		case "priorDiagnosis":
			d.PriorDiagnosis = v.(string)
		case "priorTreatments":
			d.PriorTreatments = v.([]string)
		case "additionalNotes":
			d.AdditionalNotes = v.(string)
		case "state":
			d.State = v.(string)
		case "attended":
			d.Attended = v.(bool)
		case "actualCompletionDate":
			t := v.(time.Time)
			d.ActualCompletionDate = &t
		default:
			// unknown fields pass through, as in the document store
			if d.Extra == nil {
				d.Extra = map[string]interface{}{}
			}
			d.Extra[k] = v
		}
	}

	s.docs[appointmentID] = d
	return nil
}

func (s *MemoryDetailStore) DeleteByAppointmentID(ctx context.Context, appointmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, appointmentID)
	return nil
}

// Compile-time checks
var (
	_ domain.Repository  = (*MemoryAppointmentRepository)(nil)
	_ domain.DetailStore = (*MemoryDetailStore)(nil)
)
