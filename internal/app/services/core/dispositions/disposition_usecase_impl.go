package dispositions

import (
	"context"
	"fmt"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
	"medicore-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	dispositionUsecaseInstance contracts.DispositionUsecase
	onceDispositionUsecase     sync.Once
)

type dispositionUsecase struct {
	EncounterRepository  contracts.EncounterRepository
	BedRepository        contracts.BedRepository
	AdmissionRepository  contracts.AdmissionRepository
	WaitlistRepository   contracts.WaitlistRepository
	SurgeryRepository    contracts.SurgeryRepository
	DepartmentRepository contracts.DepartmentRepository
	SequenceService      contracts.SequenceService
	EventPublisher       contracts.EventPublisher
	Log                  *zap.Logger
}

func NewDispositionUsecase(
	encounterRepository contracts.EncounterRepository,
	bedRepository contracts.BedRepository,
	admissionRepository contracts.AdmissionRepository,
	waitlistRepository contracts.WaitlistRepository,
	surgeryRepository contracts.SurgeryRepository,
	departmentRepository contracts.DepartmentRepository,
	sequenceService contracts.SequenceService,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.DispositionUsecase {
	onceDispositionUsecase.Do(func() {
		instance := &dispositionUsecase{
			EncounterRepository:  encounterRepository,
			BedRepository:        bedRepository,
			AdmissionRepository:  admissionRepository,
			WaitlistRepository:   waitlistRepository,
			SurgeryRepository:    surgeryRepository,
			DepartmentRepository: departmentRepository,
			SequenceService:      sequenceService,
			EventPublisher:       eventPublisher,
			Log:                  logger,
		}
		dispositionUsecaseInstance = instance
	})
	return dispositionUsecaseInstance
}

// Disposition runs one orchestration: RECEIVED -> RESOLVING -> terminal.
// The encounter status CAS is the commit point of every branch; writes that
// precede it are compensated when that CAS loses, and the event is published
// only after it wins.
func (uc *dispositionUsecase) Disposition(ctx context.Context, encounterID string, request *requests.CreateDisposition) (*responses.DispositionResult, error) {
	encounter, err := uc.EncounterRepository.FindByID(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if encounter == nil {
		return nil, exceptions.ErrEncounterNotFound(nil)
	}
	if encounter.IsTerminal() {
		return nil, exceptions.ErrEncounterAlreadyTerminal(nil)
	}

	switch request.DispositionKind {
	case constvars.DispositionKindDischarge:
		return uc.discharge(ctx, encounter, request)
	case constvars.DispositionKindWardAdmit:
		return uc.admit(ctx, encounter, request, constvars.BedKindWard)
	case constvars.DispositionKindICUAdmit:
		return uc.admit(ctx, encounter, request, constvars.BedKindICU)
	case constvars.DispositionKindOTTransfer:
		return uc.transferToOT(ctx, encounter, request)
	default:
		return nil, exceptions.ErrUnknownDispositionKind(fmt.Errorf("kind %q", request.DispositionKind))
	}
}

func (uc *dispositionUsecase) discharge(ctx context.Context, encounter *models.Encounter, request *requests.CreateDisposition) (*responses.DispositionResult, error) {
	updated, err := uc.EncounterRepository.TransitionStatus(ctx,
		encounter.ID,
		[]string{constvars.EncounterStatusAwaitingDisposition},
		constvars.EncounterStatusDischarged,
		constvars.DispositionOutcomeDischarged,
		request.Notes,
	)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrEncounterAlreadyTerminal(nil)
	}

	uc.publishOutcome(ctx, &contracts.DispositionEvent{
		Topic:       constvars.EventTopicEncounterDischarged,
		EncounterID: encounter.ID,
		PatientID:   encounter.PatientID,
		Outcome:     constvars.DispositionOutcomeDischarged,
	})

	return &responses.DispositionResult{
		Outcome:     constvars.DispositionOutcomeDischarged,
		EncounterID: encounter.ID,
	}, nil
}

func (uc *dispositionUsecase) admit(ctx context.Context, encounter *models.Encounter, request *requests.CreateDisposition, bedKind string) (*responses.DispositionResult, error) {
	bed, err := uc.reserveWithRetry(ctx, bedKind, request.WardID)
	if err != nil {
		return nil, err
	}
	if bed == nil {
		return uc.waitlist(ctx, encounter, request, bedKind)
	}

	// A bed is now held in reserved status. Every failure path below must
	// release it before returning.
	admissionCode, err := uc.SequenceService.NextCode(ctx, constvars.SequenceKindAdmission, time.Now())
	if err != nil {
		uc.releaseReservedBed(ctx, bed.ID)
		return nil, err
	}

	admission := &models.Admission{
		EncounterID:  encounter.ID,
		PatientID:    encounter.PatientID,
		PhysicianID:  encounter.PhysicianID,
		BedID:        bed.ID,
		SequenceCode: admissionCode,
		Status:       constvars.AdmissionStatusActive,
		Notes:        request.Notes,
	}
	admissionID, err := uc.AdmissionRepository.CreateAdmission(ctx, admission)
	if err != nil {
		uc.releaseReservedBed(ctx, bed.ID)
		return nil, err
	}

	occupied, err := uc.BedRepository.MarkOccupied(ctx, bed.ID, encounter.PatientID)
	if err != nil || occupied == nil {
		uc.compensateAdmission(ctx, admissionID, bed.ID)
		return nil, exceptions.ErrPartialCommit(err)
	}

	updated, err := uc.EncounterRepository.TransitionStatus(ctx,
		encounter.ID,
		[]string{constvars.EncounterStatusAwaitingDisposition},
		constvars.EncounterStatusAdmitted,
		constvars.DispositionOutcomeAdmitted,
		request.Notes,
	)
	if err != nil {
		uc.compensateAdmission(ctx, admissionID, bed.ID)
		return nil, err
	}
	if updated == nil {
		// Another run reached a terminal state first; undo everything.
		uc.compensateAdmission(ctx, admissionID, bed.ID)
		return nil, exceptions.ErrEncounterAlreadyTerminal(nil)
	}

	uc.publishOutcome(ctx, &contracts.DispositionEvent{
		Topic:       constvars.EventTopicEncounterAdmitted,
		EncounterID: encounter.ID,
		PatientID:   encounter.PatientID,
		Outcome:     constvars.DispositionOutcomeAdmitted,
		AdmissionID: admissionID,
		BedID:       bed.ID,
	})

	return &responses.DispositionResult{
		Outcome:       constvars.DispositionOutcomeAdmitted,
		EncounterID:   encounter.ID,
		AdmissionID:   admissionID,
		AdmissionCode: admissionCode,
		BedID:         bed.ID,
	}, nil
}

func (uc *dispositionUsecase) waitlist(ctx context.Context, encounter *models.Encounter, request *requests.CreateDisposition, bedKind string) (*responses.DispositionResult, error) {
	entryCode, err := uc.SequenceService.NextCode(ctx, constvars.SequenceKindWaitlist, time.Now())
	if err != nil {
		return nil, err
	}

	entry := &models.WaitlistEntry{
		EncounterID:   encounter.ID,
		PatientID:     encounter.PatientID,
		RequestedKind: bedKind,
		WardID:        request.WardID,
		Priority:      derivePriority(encounter, request),
		Status:        constvars.WaitlistStatusPending,
		SequenceCode:  entryCode,
	}
	entryID, err := uc.WaitlistRepository.CreateEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	// The encounter leaves the active-disposition pool even though no bed
	// was secured; the waitlist monitor moves the patient once one frees up.
	updated, err := uc.EncounterRepository.TransitionStatus(ctx,
		encounter.ID,
		[]string{constvars.EncounterStatusAwaitingDisposition},
		constvars.EncounterStatusAdmitted,
		constvars.DispositionOutcomeWaitlisted,
		request.Notes,
	)
	if err != nil {
		uc.cancelWaitlistEntry(ctx, entryID)
		return nil, err
	}
	if updated == nil {
		uc.cancelWaitlistEntry(ctx, entryID)
		return nil, exceptions.ErrEncounterAlreadyTerminal(nil)
	}

	uc.publishOutcome(ctx, &contracts.DispositionEvent{
		Topic:           constvars.EventTopicEncounterWaitlisted,
		EncounterID:     encounter.ID,
		PatientID:       encounter.PatientID,
		Outcome:         constvars.DispositionOutcomeWaitlisted,
		WaitlistEntryID: entryID,
	})

	return &responses.DispositionResult{
		Outcome:         constvars.DispositionOutcomeWaitlisted,
		EncounterID:     encounter.ID,
		WaitlistEntryID: entryID,
	}, nil
}

func (uc *dispositionUsecase) transferToOT(ctx context.Context, encounter *models.Encounter, request *requests.CreateDisposition) (*responses.DispositionResult, error) {
	department, err := uc.resolveDepartment(ctx, request.DepartmentID)
	if err != nil {
		return nil, err
	}

	admissionCode, err := uc.SequenceService.NextCode(ctx, constvars.SequenceKindAdmission, time.Now())
	if err != nil {
		return nil, err
	}

	admission := &models.Admission{
		EncounterID:  encounter.ID,
		PatientID:    encounter.PatientID,
		PhysicianID:  encounter.PhysicianID,
		DepartmentID: department.ID,
		SequenceCode: admissionCode,
		Status:       constvars.AdmissionStatusActive,
		Notes:        request.Notes,
	}
	admissionID, err := uc.AdmissionRepository.CreateAdmission(ctx, admission)
	if err != nil {
		return nil, err
	}

	// Second write of the saga. Either both records end up visible, or the
	// admission is flagged orphaned for reconciliation; it is never left
	// behind silently.
	surgeryCode, err := uc.SequenceService.NextCode(ctx, constvars.SequenceKindSurgery, time.Now())
	if err != nil {
		uc.orphanAdmission(ctx, admissionID)
		return nil, exceptions.ErrPartialCommit(err)
	}

	surgery := &models.SurgeryRecord{
		AdmissionID:          admissionID,
		EncounterID:          encounter.ID,
		DepartmentID:         department.ID,
		ProcedureDescription: request.Notes,
		SequenceCode:         surgeryCode,
	}
	surgeryID, err := uc.SurgeryRepository.CreateSurgery(ctx, surgery)
	if err != nil {
		uc.orphanAdmission(ctx, admissionID)
		return nil, exceptions.ErrPartialCommit(err)
	}

	updated, err := uc.EncounterRepository.TransitionStatus(ctx,
		encounter.ID,
		[]string{constvars.EncounterStatusAwaitingDisposition},
		constvars.EncounterStatusTransferred,
		constvars.DispositionOutcomeSurgeryScheduled,
		request.Notes,
	)
	if err != nil {
		uc.orphanAdmission(ctx, admissionID)
		return nil, err
	}
	if updated == nil {
		uc.orphanAdmission(ctx, admissionID)
		return nil, exceptions.ErrEncounterAlreadyTerminal(nil)
	}

	uc.publishOutcome(ctx, &contracts.DispositionEvent{
		Topic:       constvars.EventTopicSurgeryScheduled,
		EncounterID: encounter.ID,
		PatientID:   encounter.PatientID,
		Outcome:     constvars.DispositionOutcomeSurgeryScheduled,
		AdmissionID: admissionID,
		SurgeryID:   surgeryID,
	})

	return &responses.DispositionResult{
		Outcome:       constvars.DispositionOutcomeSurgeryScheduled,
		EncounterID:   encounter.ID,
		AdmissionID:   admissionID,
		AdmissionCode: admissionCode,
		SurgeryID:     surgeryID,
		SurgeryCode:   surgeryCode,
	}, nil
}

// reserveWithRetry re-attempts the atomic reserve once when the store
// reports a write conflict. A clean no-match is not retried here; the
// waitlist branch handles it.
func (uc *dispositionUsecase) reserveWithRetry(ctx context.Context, bedKind, wardID string) (*models.Bed, error) {
	bed, err := uc.BedRepository.ReserveAvailable(ctx, bedKind, wardID)
	if err == nil {
		return bed, nil
	}

	uc.Log.Warn("dispositionUsecase.reserveWithRetry first attempt failed, retrying once",
		zap.String(constvars.LoggingKindKey, bedKind),
		zap.Error(err),
	)
	bed, err = uc.BedRepository.ReserveAvailable(ctx, bedKind, wardID)
	if err != nil {
		return nil, exceptions.ErrBedReservationConflict(err)
	}
	return bed, nil
}

func (uc *dispositionUsecase) resolveDepartment(ctx context.Context, departmentID string) (*models.Department, error) {
	if departmentID != "" {
		department, err := uc.DepartmentRepository.FindByID(ctx, departmentID)
		if err != nil {
			return nil, err
		}
		if department == nil {
			return nil, exceptions.ErrDepartmentNotFound(nil)
		}
		return department, nil
	}

	department, err := uc.DepartmentRepository.FindFirstActiveSurgical(ctx)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, exceptions.ErrDepartmentNotFound(nil)
	}
	return department, nil
}

// releaseReservedBed undoes a reservation that never became an admission.
// It runs on a context that survives caller cancellation: a cancelled
// request must not strand a bed in reserved status.
func (uc *dispositionUsecase) releaseReservedBed(ctx context.Context, bedID string) {
	compensationCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if _, err := uc.BedRepository.Release(compensationCtx, bedID); err != nil {
		uc.Log.Error(constvars.ErrDevCompensationReleaseFailed,
			zap.String(constvars.LoggingBedIDKey, bedID),
			zap.Error(err),
		)
	}
}

func (uc *dispositionUsecase) compensateAdmission(ctx context.Context, admissionID, bedID string) {
	uc.orphanAdmission(ctx, admissionID)
	uc.releaseReservedBed(ctx, bedID)
}

func (uc *dispositionUsecase) orphanAdmission(ctx context.Context, admissionID string) {
	compensationCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := uc.AdmissionRepository.MarkOrphaned(compensationCtx, admissionID); err != nil {
		uc.Log.Error("dispositionUsecase failed to orphan admission during compensation",
			zap.String(constvars.LoggingAdmissionIDKey, admissionID),
			zap.Error(err),
		)
	}
}

func (uc *dispositionUsecase) cancelWaitlistEntry(ctx context.Context, entryID string) {
	compensationCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := uc.WaitlistRepository.MarkCancelled(compensationCtx, entryID); err != nil {
		uc.Log.Error("dispositionUsecase failed to cancel waitlist entry during compensation",
			zap.String(constvars.LoggingWaitlistIDKey, entryID),
			zap.Error(err),
		)
	}
}

// publishOutcome is fire-and-forget: the disposition already committed, so a
// delivery failure is logged and never surfaced to the caller.
func (uc *dispositionUsecase) publishOutcome(ctx context.Context, event *contracts.DispositionEvent) {
	event.ID = uuid.NewString()
	event.OccurredAt = time.Now()

	if err := uc.EventPublisher.PublishDispositionEvent(ctx, event); err != nil {
		uc.Log.Error(constvars.ErrDevEventPublishFailed,
			zap.String(constvars.LoggingEventIDKey, event.ID),
			zap.String(constvars.LoggingTopicKey, event.Topic),
			zap.String(constvars.LoggingEncounterIDKey, event.EncounterID),
			zap.Error(err),
		)
	}
}

// derivePriority maps the triage scale, where 1 is critical and 5 is minor,
// onto the waitlist ordering, where the highest priority value is served
// first. A triage-1 patient therefore enters the queue at priority 5.
func derivePriority(encounter *models.Encounter, request *requests.CreateDisposition) int {
	triageLevel := request.TriageLevel
	if triageLevel <= 0 {
		triageLevel = encounter.TriageLevel
	}
	if triageLevel < 1 || triageLevel > 5 {
		triageLevel = 3
	}
	return 6 - triageLevel
}
