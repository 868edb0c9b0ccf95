package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/core/slot"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	rejectReasonRole        = "role_forbidden"
	rejectReasonNotFound    = "doctor_not_found"
	rejectReasonInvalidSlot = "invalid_slot"
	rejectReasonSlotFull    = "slot_full"
	rejectReasonUnavailable = "unavailable"
	rejectReasonValidation  = "validation"
)

type bookingUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	UserRepository        contracts.UserRepository
	MailerService         contracts.MailerService
	LockService           contracts.LockerService
	Metrics               contracts.BookingMetrics
	Log                   *zap.Logger
	lockTTL               time.Duration
	lockWait              time.Duration
	storeTimeout          time.Duration
	notificationTimeout   time.Duration
	emailSender           string
	location              *time.Location
	now                   func() time.Time
}

func NewBookingUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	userRepository contracts.UserRepository,
	mailerService contracts.MailerService,
	lockService contracts.LockerService,
	bookingMetrics contracts.BookingMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	uc := &bookingUsecase{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		UserRepository:        userRepository,
		MailerService:         mailerService,
		LockService:           lockService,
		Metrics:               bookingMetrics,
		Log:                   logger,
		lockTTL:               10 * time.Second,
		lockWait:              3 * time.Second,
		storeTimeout:          5 * time.Second,
		notificationTimeout:   5 * time.Second,
		location:              time.UTC,
		now:                   time.Now,
	}
	if internalConfig == nil {
		return uc
	}

	if ttl := internalConfig.Booking.SlotLockTTL(); ttl > 0 {
		uc.lockTTL = ttl
	}
	if wait := internalConfig.Booking.SlotLockWait(); wait > 0 {
		uc.lockWait = wait
	}
	if timeout := internalConfig.Booking.StoreOperationTimeout(); timeout > 0 {
		uc.storeTimeout = timeout
	}
	if timeout := internalConfig.Booking.NotificationTimeout(); timeout > 0 {
		uc.notificationTimeout = timeout
	}
	uc.emailSender = internalConfig.Mailer.EmailSender
	if location, err := time.LoadLocation(internalConfig.App.Timezone); err == nil {
		uc.location = location
	} else {
		logger.Warn("bookingUsecase unknown timezone, using UTC",
			zap.String("timezone", internalConfig.App.Timezone),
			zap.Error(err),
		)
	}
	return uc
}

func (uc *bookingUsecase) Book(ctx context.Context, request *requests.BookAppointment, principal models.Principal) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRequesterIDKey, principal.ID),
		zap.String(constvars.LoggingRequesterRoleKey, principal.Role),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	if principal.Role == constvars.RoleDoctor {
		uc.Metrics.Rejected(rejectReasonRole)
		return nil, exceptions.ErrRoleCannotBook(nil, principal.Role)
	}
	if err := utils.ValidateStruct(request); err != nil {
		uc.Metrics.Rejected(rejectReasonValidation)
		return nil, exceptions.ErrInputValidation(err)
	}

	doctor, err := uc.findDoctor(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}

	daySchedule, ok := doctor.FindDay(request.Day)
	if !ok {
		uc.Metrics.Rejected(rejectReasonInvalidSlot)
		return nil, exceptions.ErrInvalidScheduleDay(nil, doctor.ID, request.Day)
	}
	placeSlot, ok := daySchedule.FindPlace(request.Place, request.TimeInterval)
	if !ok {
		uc.Metrics.Rejected(rejectReasonInvalidSlot)
		return nil, exceptions.ErrInvalidScheduleSlot(nil, doctor.ID, request.Day, request.Place, request.TimeInterval.Start, request.TimeInterval.End)
	}

	appointment, err := uc.reserve(ctx, doctor, request.Day, placeSlot, principal)
	if err != nil {
		return nil, err
	}
	uc.Metrics.Booked()

	uc.notify(ctx, doctor, appointment)

	uc.Log.Info("bookingUsecase.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingAssignedStartKey, appointment.TimeInterval.Start),
	)
	return appointment, nil
}

// reserve runs count-then-create under the slot lock so two requests can
// never both take the last seat.
func (uc *bookingUsecase) reserve(ctx context.Context, doctor *models.Doctor, day string, placeSlot models.PlaceSlot, principal models.Principal) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	lockKey := slot.LockKey(doctor.ID, day, placeSlot)

	lockValue, err := uc.LockService.Lock(ctx, lockKey, uc.lockTTL, uc.lockWait)
	if err != nil {
		uc.Metrics.Rejected(rejectReasonUnavailable)
		uc.Log.Warn("bookingUsecase.reserve slot lock not acquired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotKey, lockKey),
			zap.Error(err),
		)
		return nil, exceptions.AsUnavailable(err)
	}
	defer func() {
		if err := uc.LockService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("bookingUsecase.reserve slot lock release failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSlotKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	existing, err := uc.AppointmentRepository.CountByFilter(storeCtx, models.AppointmentSlotFilter{
		Doctor:       doctor.ID,
		Day:          day,
		Place:        placeSlot.Place,
		TimeInterval: placeSlot.TimeInterval,
		Status:       constvars.AppointmentStatusConfirmed,
	})
	if err != nil {
		uc.Metrics.Rejected(rejectReasonUnavailable)
		uc.Log.Error("bookingUsecase.reserve error calling AppointmentRepository.CountByFilter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.AsUnavailable(err)
	}

	uc.Log.Debug("bookingUsecase.reserve slot occupancy",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotKey, slot.Describe(placeSlot)),
		zap.Int(constvars.LoggingExistingBookingsKey, existing),
		zap.Int(constvars.LoggingMaxPatientsKey, placeSlot.MaxPatients),
	)
	if existing >= placeSlot.MaxPatients {
		uc.Metrics.Rejected(rejectReasonSlotFull)
		return nil, exceptions.ErrSlotFullyBooked(nil, slot.Describe(placeSlot), existing, placeSlot.MaxPatients)
	}

	assigned, err := slot.Assign(placeSlot, existing)
	if err != nil {
		uc.Metrics.Rejected(rejectReasonInvalidSlot)
		return nil, err
	}

	bookedAt := uc.now().In(uc.location)
	appointment := &models.Appointment{
		User:         principal.ID,
		Doctor:       doctor.ID,
		Day:          day,
		Date:         utils.FormatAppointmentDate(bookedAt),
		Place:        placeSlot.Place,
		TimeInterval: assigned,
		SlotInterval: placeSlot.TimeInterval,
		BookedAt:     bookedAt,
		Status:       constvars.AppointmentStatusConfirmed,
	}

	appointmentID, err := uc.AppointmentRepository.Create(storeCtx, appointment)
	if err != nil {
		uc.Metrics.Rejected(rejectReasonUnavailable)
		uc.Log.Error("bookingUsecase.reserve error calling AppointmentRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.AsUnavailable(err)
	}
	appointment.ID = appointmentID
	return appointment, nil
}

// notify sends the confirmation email. Failures are logged and never undo the booking.
func (uc *bookingUsecase) notify(ctx context.Context, doctor *models.Doctor, appointment *models.Appointment) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if uc.MailerService == nil || uc.UserRepository == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.notificationTimeout)
	defer cancel()

	user, err := uc.UserRepository.FindByID(notifyCtx, appointment.User)
	if err != nil || user == nil || user.Email == "" {
		uc.Log.Warn("bookingUsecase.notify patient email not resolvable, skipping confirmation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, appointment.User),
			zap.Error(err),
		)
		return
	}

	payload, err := utils.BuildAppointmentConfirmationEmailPayload(uc.emailSender, user.Email, utils.AppointmentConfirmationEmail{
		PatientName:    user.Name,
		DoctorName:     doctor.Name,
		Specialization: doctor.Specialist,
		Day:            appointment.Day,
		Date:           appointment.Date,
		Time:           appointment.TimeInterval.Start + " - " + appointment.TimeInterval.End,
		Place:          appointment.Place,
	})
	if err != nil {
		uc.Log.Warn("bookingUsecase.notify error building email payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	if err := uc.MailerService.SendEmail(notifyCtx, payload); err != nil {
		uc.Log.Warn("bookingUsecase.notify confirmation email not sent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEmailKey, user.Email),
			zap.Error(err),
		)
	}
}

func (uc *bookingUsecase) ListByDoctor(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ListByDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	appointments, err := uc.AppointmentRepository.FindByDoctor(storeCtx, doctorID, constvars.AppointmentStatusConfirmed)
	if err != nil {
		return nil, exceptions.AsUnavailable(err)
	}
	return uc.withUsers(storeCtx, appointments)
}

func (uc *bookingUsecase) ListByUser(ctx context.Context, userID string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ListByUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	appointments, err := uc.AppointmentRepository.FindByUser(storeCtx, userID)
	if err != nil {
		return nil, exceptions.AsUnavailable(err)
	}
	return uc.withDoctors(storeCtx, appointments)
}

// ListForDoctorProfile lists every appointment of an existing doctor ordered
// by appointment date, then assigned start.
func (uc *bookingUsecase) ListForDoctorProfile(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ListForDoctorProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if _, err := uc.findDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	appointments, err := uc.AppointmentRepository.FindAllByDoctor(storeCtx, doctorID)
	if err != nil {
		return nil, exceptions.AsUnavailable(err)
	}
	sortByDateAndStart(appointments)
	return uc.withUsers(storeCtx, appointments)
}

func (uc *bookingUsecase) findDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	doctor, err := uc.DoctorRepository.FindByID(storeCtx, doctorID)
	if err != nil {
		uc.Metrics.Rejected(rejectReasonUnavailable)
		return nil, exceptions.AsUnavailable(err)
	}
	if doctor == nil {
		uc.Metrics.Rejected(rejectReasonNotFound)
		return nil, exceptions.ErrDoctorNotFound(nil, doctorID)
	}
	return doctor, nil
}

func (uc *bookingUsecase) withUsers(ctx context.Context, appointments []models.Appointment) ([]responses.Appointment, error) {
	ids := make([]string, 0, len(appointments))
	for _, appointment := range appointments {
		ids = append(ids, appointment.User)
	}

	users, err := uc.UserRepository.FindByIDs(ctx, unique(ids))
	if err != nil {
		return nil, exceptions.AsUnavailable(err)
	}
	byID := make(map[string]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	result := make([]responses.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		item := toResponse(appointment)
		if user, ok := byID[appointment.User]; ok {
			item.User = &responses.AppointmentUser{ID: user.ID, Name: user.Name, Email: user.Email}
		}
		result = append(result, item)
	}
	return result, nil
}

func (uc *bookingUsecase) withDoctors(ctx context.Context, appointments []models.Appointment) ([]responses.Appointment, error) {
	ids := make([]string, 0, len(appointments))
	for _, appointment := range appointments {
		ids = append(ids, appointment.Doctor)
	}

	doctors, err := uc.DoctorRepository.FindByIDs(ctx, unique(ids))
	if err != nil {
		return nil, exceptions.AsUnavailable(err)
	}
	byID := make(map[string]models.Doctor, len(doctors))
	for _, doctor := range doctors {
		byID[doctor.ID] = doctor
	}

	result := make([]responses.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		item := toResponse(appointment)
		if doctor, ok := byID[appointment.Doctor]; ok {
			item.Doctor = &responses.AppointmentDoctor{ID: doctor.ID, Name: doctor.Name, Specialist: doctor.Specialist}
		}
		result = append(result, item)
	}
	return result, nil
}

func toResponse(appointment models.Appointment) responses.Appointment {
	return responses.Appointment{
		ID:           appointment.ID,
		UserID:       appointment.User,
		DoctorID:     appointment.Doctor,
		Day:          appointment.Day,
		Date:         appointment.Date,
		Place:        appointment.Place,
		TimeInterval: appointment.TimeInterval,
		BookedAt:     appointment.BookedAt,
		Status:       appointment.Status,
	}
}

// sortByDateAndStart orders by the calendar date, not the display string.
// Unparseable dates sort last.
func sortByDateAndStart(appointments []models.Appointment) {
	parse := func(value string) (time.Time, bool) {
		parsed, err := time.Parse(constvars.AppointmentDateLayout, value)
		return parsed, err == nil
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		left, leftOK := parse(appointments[i].Date)
		right, rightOK := parse(appointments[j].Date)
		switch {
		case leftOK != rightOK:
			return leftOK
		case !left.Equal(right):
			return left.Before(right)
		default:
			return appointments[i].TimeInterval.Start < appointments[j].TimeInterval.Start
		}
	})
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok || value == "" {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
