package waitlists

import (
	"context"
	"errors"
	"fmt"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLockerService struct{}

func (s *stubLockerService) TryLock(_ context.Context, _ string, _ time.Duration) (bool, string, error) {
	return true, "lock-value", nil
}

func (s *stubLockerService) Unlock(_ context.Context, _, _ string) error {
	return nil
}

type stubBedRepository struct {
	mu          sync.Mutex
	beds        map[string]*models.Bed
	occupyFails bool
}

func (s *stubBedRepository) FindByID(_ context.Context, bedID string) (*models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bed, ok := s.beds[bedID]
	if !ok {
		return nil, nil
	}
	copied := *bed
	return &copied, nil
}

func (s *stubBedRepository) ReserveAvailable(_ context.Context, kind, wardID string) (*models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, bed := range s.beds {
		if bed.Kind != kind || bed.Status != constvars.BedStatusAvailable {
			continue
		}
		if wardID != "" && bed.WardID != wardID {
			continue
		}
		bed.Status = constvars.BedStatusReserved
		copied := *bed
		return &copied, nil
	}
	return nil, nil
}

func (s *stubBedRepository) MarkOccupied(_ context.Context, bedID, occupantID string) (*models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.occupyFails {
		return nil, errors.New("occupy rejected")
	}
	bed, ok := s.beds[bedID]
	if !ok || bed.Status != constvars.BedStatusReserved {
		return nil, nil
	}
	bed.Status = constvars.BedStatusOccupied
	bed.OccupantID = occupantID
	copied := *bed
	return &copied, nil
}

func (s *stubBedRepository) Release(_ context.Context, bedID string) (*models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bed, ok := s.beds[bedID]
	if !ok {
		return nil, nil
	}
	bed.Status = constvars.BedStatusAvailable
	copied := *bed
	return &copied, nil
}

func (s *stubBedRepository) CountAvailable(_ context.Context, kind, wardID string) (int64, error) {
	return 0, nil
}

func (s *stubBedRepository) statusOf(bedID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beds[bedID].Status
}

type stubWaitlistRepository struct {
	mu       sync.Mutex
	entries  map[string]*models.WaitlistEntry
	raceLost bool
}

func (s *stubWaitlistRepository) CreateEntry(_ context.Context, entry *models.WaitlistEntry) (string, error) {
	return "", errors.New("not used")
}

func (s *stubWaitlistRepository) FindPending(_ context.Context, limit int64) ([]models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pending []models.WaitlistEntry
	for _, entry := range s.entries {
		if entry.Status == constvars.WaitlistStatusPending {
			pending = append(pending, *entry)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Priority > pending[j].Priority
	})
	if int64(len(pending)) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *stubWaitlistRepository) MarkFulfilled(_ context.Context, entryID, admissionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raceLost {
		return false, nil
	}
	entry, ok := s.entries[entryID]
	if !ok || entry.Status != constvars.WaitlistStatusPending {
		return false, nil
	}
	entry.Status = constvars.WaitlistStatusFulfilled
	entry.AdmissionID = admissionID
	return true, nil
}

func (s *stubWaitlistRepository) MarkCancelled(_ context.Context, entryID string) error {
	return nil
}

type stubAdmissionRepository struct {
	mu         sync.Mutex
	admissions map[string]*models.Admission
	nextID     int
}

func (s *stubAdmissionRepository) CreateAdmission(_ context.Context, admission *models.Admission) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("admission-%d", s.nextID)
	copied := *admission
	copied.ID = id
	s.admissions[id] = &copied
	return id, nil
}

func (s *stubAdmissionRepository) MarkOrphaned(_ context.Context, admissionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admission, ok := s.admissions[admissionID]
	if !ok {
		return errors.New("admission not found")
	}
	admission.Status = constvars.AdmissionStatusOrphaned
	return nil
}

type stubSequenceService struct {
	mu      sync.Mutex
	counter int64
}

func (s *stubSequenceService) Next(_ context.Context, kind, dateKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	return s.counter, nil
}

func (s *stubSequenceService) NextCode(ctx context.Context, kind string, at time.Time) (string, error) {
	value, err := s.Next(ctx, kind, at.Format(constvars.SequenceDateKeyLayout))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", kind, value), nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []contracts.DispositionEvent
}

func (s *stubPublisher) PublishDispositionEvent(_ context.Context, event *contracts.DispositionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

func newMonitorUnderTest(bedRepo *stubBedRepository, waitlistRepo *stubWaitlistRepository) (*Monitor, *stubAdmissionRepository, *stubPublisher) {
	admissionRepo := &stubAdmissionRepository{admissions: make(map[string]*models.Admission)}
	publisher := &stubPublisher{}
	monitor := &Monitor{
		log: zap.NewNop(),
		cfg: &config.InternalConfig{
			Disposition: config.Disposition{WaitlistMonitorBatchSize: 10},
		},
		locker:     &stubLockerService{},
		waitlists:  waitlistRepo,
		beds:       bedRepo,
		admissions: admissionRepo,
		sequences:  &stubSequenceService{},
		publisher:  publisher,
		stop:       make(chan struct{}),
	}
	return monitor, admissionRepo, publisher
}

func pendingEntry(id, kind string) *models.WaitlistEntry {
	return &models.WaitlistEntry{
		ID:            id,
		EncounterID:   "enc-" + id,
		PatientID:     "patient-" + id,
		RequestedKind: kind,
		Status:        constvars.WaitlistStatusPending,
	}
}

func TestMonitor_FulfillEntry(t *testing.T) {
	t.Run("moves a pending entry into an admission once a bed frees up", func(t *testing.T) {
		bedRepo := &stubBedRepository{beds: map[string]*models.Bed{
			"bed-1": {ID: "bed-1", BedNumber: 1, Kind: constvars.BedKindICU, Status: constvars.BedStatusAvailable},
		}}
		entry := pendingEntry("wl-1", constvars.BedKindICU)
		waitlistRepo := &stubWaitlistRepository{entries: map[string]*models.WaitlistEntry{"wl-1": entry}}

		monitor, admissionRepo, publisher := newMonitorUnderTest(bedRepo, waitlistRepo)
		monitor.fulfillEntry(context.Background(), entry)

		assert.Equal(t, constvars.WaitlistStatusFulfilled, waitlistRepo.entries["wl-1"].Status)
		assert.Equal(t, constvars.BedStatusOccupied, bedRepo.statusOf("bed-1"))
		require.Len(t, admissionRepo.admissions, 1)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, constvars.EventTopicWaitlistFulfilled, publisher.events[0].Topic)
	})

	t.Run("leaves the entry pending when no bed is available", func(t *testing.T) {
		bedRepo := &stubBedRepository{beds: map[string]*models.Bed{}}
		entry := pendingEntry("wl-1", constvars.BedKindICU)
		waitlistRepo := &stubWaitlistRepository{entries: map[string]*models.WaitlistEntry{"wl-1": entry}}

		monitor, admissionRepo, publisher := newMonitorUnderTest(bedRepo, waitlistRepo)
		monitor.fulfillEntry(context.Background(), entry)

		assert.Equal(t, constvars.WaitlistStatusPending, waitlistRepo.entries["wl-1"].Status)
		assert.Empty(t, admissionRepo.admissions)
		assert.Empty(t, publisher.events)
	})

	t.Run("returns the bed and orphans the admission when occupation fails", func(t *testing.T) {
		bedRepo := &stubBedRepository{
			beds: map[string]*models.Bed{
				"bed-1": {ID: "bed-1", BedNumber: 1, Kind: constvars.BedKindWard, Status: constvars.BedStatusAvailable},
			},
			occupyFails: true,
		}
		entry := pendingEntry("wl-1", constvars.BedKindWard)
		waitlistRepo := &stubWaitlistRepository{entries: map[string]*models.WaitlistEntry{"wl-1": entry}}

		monitor, admissionRepo, publisher := newMonitorUnderTest(bedRepo, waitlistRepo)
		monitor.fulfillEntry(context.Background(), entry)

		assert.Equal(t, constvars.WaitlistStatusPending, waitlistRepo.entries["wl-1"].Status)
		assert.Equal(t, constvars.BedStatusAvailable, bedRepo.statusOf("bed-1"))
		require.Len(t, admissionRepo.admissions, 1)
		assert.Equal(t, constvars.AdmissionStatusOrphaned, admissionRepo.admissions["admission-1"].Status)
		assert.Empty(t, publisher.events)
	})

	t.Run("returns the bed and orphans the admission after losing the fulfillment race", func(t *testing.T) {
		bedRepo := &stubBedRepository{beds: map[string]*models.Bed{
			"bed-1": {ID: "bed-1", BedNumber: 1, Kind: constvars.BedKindWard, Status: constvars.BedStatusAvailable},
		}}
		entry := pendingEntry("wl-1", constvars.BedKindWard)
		waitlistRepo := &stubWaitlistRepository{
			entries:  map[string]*models.WaitlistEntry{"wl-1": entry},
			raceLost: true,
		}

		monitor, admissionRepo, publisher := newMonitorUnderTest(bedRepo, waitlistRepo)
		monitor.fulfillEntry(context.Background(), entry)

		assert.Equal(t, constvars.BedStatusAvailable, bedRepo.statusOf("bed-1"))
		require.Len(t, admissionRepo.admissions, 1)
		assert.Equal(t, constvars.AdmissionStatusOrphaned, admissionRepo.admissions["admission-1"].Status)
		assert.Empty(t, publisher.events)
	})
}

func TestMonitor_RunOnceAdmitsMostUrgentFirst(t *testing.T) {
	// One free ICU bed, two pending entries. The critical patient carries
	// the higher priority value (triage 1 inverts to 5) and must win the
	// bed; the minor patient stays queued.
	bedRepo := &stubBedRepository{beds: map[string]*models.Bed{
		"bed-1": {ID: "bed-1", BedNumber: 1, Kind: constvars.BedKindICU, Status: constvars.BedStatusAvailable},
	}}

	critical := pendingEntry("wl-critical", constvars.BedKindICU)
	critical.Priority = 5
	minor := pendingEntry("wl-minor", constvars.BedKindICU)
	minor.Priority = 1
	waitlistRepo := &stubWaitlistRepository{entries: map[string]*models.WaitlistEntry{
		"wl-critical": critical,
		"wl-minor":    minor,
	}}

	monitor, admissionRepo, publisher := newMonitorUnderTest(bedRepo, waitlistRepo)
	monitor.runOnce(context.Background(), time.Now(), time.Minute)

	assert.Equal(t, constvars.WaitlistStatusFulfilled, waitlistRepo.entries["wl-critical"].Status)
	assert.Equal(t, constvars.WaitlistStatusPending, waitlistRepo.entries["wl-minor"].Status)
	assert.Equal(t, constvars.BedStatusOccupied, bedRepo.statusOf("bed-1"))
	assert.Equal(t, "patient-wl-critical", bedRepo.beds["bed-1"].OccupantID)
	require.Len(t, admissionRepo.admissions, 1)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "enc-wl-critical", publisher.events[0].EncounterID)
}
