package doctors

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/shared/cache"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	cacheNamespaceDoctor  = "doctor"
	cacheNamespaceList    = "doctor_list"
	defaultPicturePrefix  = "doctor"
	defaultPictureMaxSize = 2 << 20
	defaultStoreTimeout   = 5 * time.Second
	defaultCacheTimeout   = 500 * time.Millisecond
	defaultCacheTTLInSecs = constvars.CacheDefaultTTLInSeconds
)

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	Cache            contracts.CacheBackend
	Invalidator      contracts.CacheInvalidator
	PictureStorage   contracts.PictureStorage
	Metrics          contracts.CacheMetrics
	Log              *zap.Logger
	cacheTTL         time.Duration
	cacheTimeout     time.Duration
	storeTimeout     time.Duration
	picturePrefix    string
	pictureMaxSize   int
	now              func() time.Time
}

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	cacheBackend contracts.CacheBackend,
	invalidator contracts.CacheInvalidator,
	pictureStorage contracts.PictureStorage,
	cacheMetrics contracts.CacheMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	uc := &doctorUsecase{
		DoctorRepository: doctorRepository,
		Cache:            cacheBackend,
		Invalidator:      invalidator,
		PictureStorage:   pictureStorage,
		Metrics:          cacheMetrics,
		Log:              logger,
		cacheTTL:         time.Duration(defaultCacheTTLInSecs) * time.Second,
		cacheTimeout:     defaultCacheTimeout,
		storeTimeout:     defaultStoreTimeout,
		picturePrefix:    defaultPicturePrefix,
		pictureMaxSize:   defaultPictureMaxSize,
		now:              time.Now,
	}
	if internalConfig != nil {
		if ttl := internalConfig.Cache.TTL(); ttl > 0 {
			uc.cacheTTL = ttl
		}
		if timeout := internalConfig.Cache.OperationTimeout(); timeout > 0 {
			uc.cacheTimeout = timeout
		}
		if timeout := internalConfig.Booking.StoreOperationTimeout(); timeout > 0 {
			uc.storeTimeout = timeout
		}
		if prefix := internalConfig.Minio.DoctorPicturePath; prefix != "" {
			uc.picturePrefix = prefix
		}
		if sizeInMB := internalConfig.App.PictureMaxUploadSizeInMB; sizeInMB > 0 {
			uc.pictureMaxSize = sizeInMB << 20
		}
	}
	return uc
}

func (uc *doctorUsecase) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.GetByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var cached models.Doctor
	if uc.getCached(ctx, cache.DoctorKey(doctorID), cacheNamespaceDoctor, &cached) {
		return &cached, nil
	}

	mark := uc.Invalidator.Mark()
	doctor, err := uc.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	uc.fillCached(ctx, cache.DoctorKey(doctor.ID), doctor, mark)
	return doctor, nil
}

func (uc *doctorUsecase) GetByOwner(ctx context.Context, ownerID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.GetByOwner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, ownerID),
	)

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	mark := uc.Invalidator.Mark()
	doctor, err := uc.DoctorRepository.FindByOwner(storeCtx, ownerID)
	if err != nil {
		uc.Log.Error("doctorUsecase.GetByOwner error calling DoctorRepository.FindByOwner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.AsUnavailable(err)
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorOwnerNotFound(nil, ownerID)
	}

	uc.fillCached(ctx, cache.DoctorKey(doctor.ID), doctor, mark)
	return doctor, nil
}

func (uc *doctorUsecase) ListAll(ctx context.Context) ([]models.DoctorPartial, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ListAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var cached []models.DoctorPartial
	if uc.getCached(ctx, constvars.CacheKeyDoctorList, cacheNamespaceList, &cached) {
		return cached, nil
	}

	return uc.loadList(ctx)
}

// RefreshList drops the cached doctor list and every partial projection
// everywhere, then rebuilds them from the store. It returns the number of
// doctors cached.
func (uc *doctorUsecase) RefreshList(ctx context.Context) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.RefreshList called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	uc.Invalidator.Invalidate(ctx, append(cache.AggregateKeys(), uc.cachedPartialKeys(ctx)...)...)

	doctors, err := uc.loadList(ctx)
	if err != nil {
		return 0, err
	}
	return len(doctors), nil
}

func (uc *doctorUsecase) Create(ctx context.Context, request *requests.CreateDoctor, requesterID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRequesterIDKey, requesterID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if err := utils.ValidateSchedule(request.Schedule); err != nil {
		return nil, err
	}

	picture := request.Picture
	if len(request.PictureFile) > 0 {
		url, err := uc.uploadPicture(ctx, request.PictureFile, request.PictureFileName, requesterID)
		if err != nil {
			return nil, err
		}
		picture = url
	}

	now := uc.now()
	doctor := &models.Doctor{
		Owner:           requesterID,
		Name:            request.Name,
		ContactNumber:   request.ContactNumber,
		ExperienceYears: request.ExperienceYears,
		Specialist:      request.Specialist,
		Education:       request.Education,
		RegistrationNo:  request.RegistrationNo,
		Language:        request.Language,
		Fees:            request.Fees,
		About:           request.About,
		Picture:         picture,
		Schedule:        request.Schedule,
		Qualification:   request.Qualification,
		Gender:          request.Gender,
		Location:        request.Location,
		Achievement:     request.Achievement,
		TimeModel:       models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	if doctor.Schedule == nil {
		doctor.Schedule = []models.DaySchedule{}
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	doctorID, err := uc.DoctorRepository.Create(storeCtx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.Create error calling DoctorRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.AsUnavailable(err)
	}
	doctor.ID = doctorID

	uc.writeProjections(ctx, doctor, uc.Invalidator.Mark())
	uc.Invalidator.Invalidate(ctx, cache.AggregateKeys()...)

	uc.Log.Info("doctorUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return doctor, nil
}

func (uc *doctorUsecase) Update(ctx context.Context, doctorID string, request *requests.UpdateDoctor, requesterID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingRequesterIDKey, requesterID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	doctor, err := uc.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsOwnedBy(requesterID) {
		return nil, exceptions.ErrDoctorUpdateForbidden(nil, requesterID, doctorID)
	}

	applyDoctorPatch(doctor, request)
	if err := utils.ValidateSchedule(doctor.Schedule); err != nil {
		return nil, err
	}

	if len(request.PictureFile) > 0 {
		url, err := uc.uploadPicture(ctx, request.PictureFile, request.PictureFileName, requesterID)
		if err != nil {
			return nil, err
		}
		doctor.Picture = url
	}
	doctor.UpdatedAt = uc.now()

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	if err := uc.DoctorRepository.Save(storeCtx, doctor); err != nil {
		uc.Log.Error("doctorUsecase.Update error calling DoctorRepository.Save",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.AsUnavailable(err)
	}

	// Other instances drop every key for this doctor; this instance then
	// holds the fresh projections.
	uc.Invalidator.Invalidate(ctx, append(cache.DoctorEntryKeys(doctorID), cache.AggregateKeys()...)...)
	uc.writeProjections(ctx, doctor, uc.Invalidator.Mark())

	return doctor, nil
}

func (uc *doctorUsecase) Delete(ctx context.Context, doctorID, requesterID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingRequesterIDKey, requesterID),
	)

	doctor, err := uc.findDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	if !doctor.IsOwnedBy(requesterID) {
		return exceptions.ErrDoctorDeleteForbidden(nil, requesterID, doctorID)
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	if err := uc.DoctorRepository.DeleteByID(storeCtx, doctorID); err != nil {
		uc.Log.Error("doctorUsecase.Delete error calling DoctorRepository.DeleteByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.AsUnavailable(err)
	}

	uc.Invalidator.Invalidate(ctx, append(cache.DoctorEntryKeys(doctorID), cache.AggregateKeys()...)...)
	return nil
}

func (uc *doctorUsecase) findDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	doctor, err := uc.DoctorRepository.FindByID(storeCtx, doctorID)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("doctorUsecase.findDoctor error calling DoctorRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, exceptions.AsUnavailable(err)
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, doctorID)
	}
	return doctor, nil
}

func (uc *doctorUsecase) loadList(ctx context.Context) ([]models.DoctorPartial, error) {
	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	mark := uc.Invalidator.Mark()
	doctors, err := uc.DoctorRepository.FindAllPartial(storeCtx)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("doctorUsecase.loadList error calling DoctorRepository.FindAllPartial",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.AsUnavailable(err)
	}

	uc.fillCached(ctx, constvars.CacheKeyDoctorList, doctors, mark)
	for _, doctor := range doctors {
		uc.fillCached(ctx, cache.DoctorPartialKey(doctor.ID), doctor, mark)
	}
	return doctors, nil
}

// cachedPartialKeys lists the partial projections currently cached. A
// backend failure yields none; their ttl still bounds them.
func (uc *doctorUsecase) cachedPartialKeys(ctx context.Context) []string {
	cacheCtx, cancel := context.WithTimeout(ctx, uc.cacheTimeout)
	defer cancel()

	keys, err := uc.Cache.Keys(cacheCtx, cache.DoctorPartialPattern())
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Metrics.Error("keys")
		uc.Log.Warn("doctorUsecase cache scan failed, partial projections kept until expiry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil
	}
	return keys
}

func (uc *doctorUsecase) uploadPicture(ctx context.Context, data []byte, fileName, ownerID string) (string, error) {
	if uc.PictureStorage == nil {
		return "", exceptions.ErrServerProcess(errors.New("picture storage is not configured"))
	}
	if len(data) > uc.pictureMaxSize {
		return "", exceptions.ErrImageValidation(fmt.Errorf("picture is %d bytes, limit is %d", len(data), uc.pictureMaxSize))
	}
	return uc.PictureStorage.UploadPicture(ctx, &requests.UploadFile{
		Data:     data,
		FileName: fileName,
		Prefix:   uc.picturePrefix,
		OwnerID:  ownerID,
	})
}

func (uc *doctorUsecase) writeProjections(ctx context.Context, doctor *models.Doctor, mark uint64) {
	uc.fillCached(ctx, cache.DoctorKey(doctor.ID), doctor, mark)
	uc.fillCached(ctx, cache.DoctorPartialKey(doctor.ID), doctor.Partial(), mark)
}

// fillCached writes a value loaded after mark was taken. The write is skipped,
// or undone, when key was invalidated since mark: the value may predate it.
func (uc *doctorUsecase) fillCached(ctx context.Context, key string, value interface{}, mark uint64) {
	if uc.Invalidator.Superseded(key, mark) {
		uc.logSupersededFill(ctx, key)
		return
	}

	uc.setCached(ctx, key, value)

	if uc.Invalidator.Superseded(key, mark) {
		cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cacheTimeout)
		defer cancel()
		if _, err := uc.Cache.Delete(cacheCtx, key); err != nil {
			uc.Metrics.Error("delete")
		}
		uc.logSupersededFill(ctx, key)
	}
}

func (uc *doctorUsecase) logSupersededFill(ctx context.Context, key string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Debug("doctorUsecase cache fill dropped, key invalidated during load",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCacheKey, key),
	)
}

// getCached reports a hit only when the entry exists and decodes. Backend
// failures count as a miss.
func (uc *doctorUsecase) getCached(ctx context.Context, key, namespace string, target interface{}) bool {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cacheCtx, cancel := context.WithTimeout(ctx, uc.cacheTimeout)
	defer cancel()

	raw, found, err := uc.Cache.Get(cacheCtx, key)
	if err != nil {
		uc.Metrics.Error("get")
		uc.Log.Warn("doctorUsecase cache read failed, falling back to store",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
		return false
	}
	if !found {
		uc.Metrics.Miss(namespace)
		return false
	}
	if err := cache.Decode(raw, target); err != nil {
		uc.Metrics.Error("decode")
		uc.Log.Warn("doctorUsecase cache entry undecodable, treating as miss",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
		return false
	}

	uc.Metrics.Hit(namespace)
	uc.Log.Debug("doctorUsecase cache hit",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCacheKey, key),
	)
	return true
}

func (uc *doctorUsecase) setCached(ctx context.Context, key string, value interface{}) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	raw, err := cache.Encode(value)
	if err != nil {
		uc.Metrics.Error("encode")
		uc.Log.Warn("doctorUsecase cache encode failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
		return
	}

	cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cacheTimeout)
	defer cancel()

	if err := uc.Cache.Set(cacheCtx, key, raw, uc.cacheTTL); err != nil {
		uc.Metrics.Error("set")
		uc.Log.Warn("doctorUsecase cache write skipped",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
	}
}

func applyDoctorPatch(doctor *models.Doctor, patch *requests.UpdateDoctor) {
	setString := func(target *string, value *string) {
		if value != nil {
			*target = *value
		}
	}

	setString(&doctor.Name, patch.Name)
	setString(&doctor.ContactNumber, patch.ContactNumber)
	setString(&doctor.Specialist, patch.Specialist)
	setString(&doctor.Education, patch.Education)
	setString(&doctor.RegistrationNo, patch.RegistrationNo)
	setString(&doctor.Language, patch.Language)
	setString(&doctor.About, patch.About)
	setString(&doctor.Qualification, patch.Qualification)
	setString(&doctor.Gender, patch.Gender)
	setString(&doctor.Location, patch.Location)
	setString(&doctor.Achievement, patch.Achievement)
	setString(&doctor.Picture, patch.ExistingPictureUrl)
	setString(&doctor.Picture, patch.Picture)

	if patch.ExperienceYears != nil {
		doctor.ExperienceYears = *patch.ExperienceYears
	}
	if patch.Fees != nil {
		doctor.Fees = *patch.Fees
	}
	if patch.Schedule != nil {
		doctor.Schedule = *patch.Schedule
	}
}
