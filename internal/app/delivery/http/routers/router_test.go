package routers

import (
	"bytes"
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/shared/auth"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockDoctorUsecase struct {
	mock.Mock
}

func (m *MockDoctorUsecase) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorUsecase) GetByOwner(ctx context.Context, ownerID string) (*models.Doctor, error) {
	args := m.Called(ctx, ownerID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorUsecase) ListAll(ctx context.Context) ([]models.DoctorPartial, error) {
	args := m.Called(ctx)
	doctors, _ := args.Get(0).([]models.DoctorPartial)
	return doctors, args.Error(1)
}

func (m *MockDoctorUsecase) Create(ctx context.Context, request *requests.CreateDoctor, requesterID string) (*models.Doctor, error) {
	args := m.Called(ctx, request, requesterID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorUsecase) Update(ctx context.Context, doctorID string, request *requests.UpdateDoctor, requesterID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID, request, requesterID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorUsecase) Delete(ctx context.Context, doctorID, requesterID string) error {
	return m.Called(ctx, doctorID, requesterID).Error(0)
}

func (m *MockDoctorUsecase) RefreshList(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockBookingUsecase struct {
	mock.Mock
}

func (m *MockBookingUsecase) Book(ctx context.Context, request *requests.BookAppointment, principal models.Principal) (*models.Appointment, error) {
	args := m.Called(ctx, request, principal)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockBookingUsecase) ListByDoctor(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	args := m.Called(ctx, doctorID)
	appointments, _ := args.Get(0).([]responses.Appointment)
	return appointments, args.Error(1)
}

func (m *MockBookingUsecase) ListByUser(ctx context.Context, userID string) ([]responses.Appointment, error) {
	args := m.Called(ctx, userID)
	appointments, _ := args.Get(0).([]responses.Appointment)
	return appointments, args.Error(1)
}

func (m *MockBookingUsecase) ListForDoctorProfile(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	args := m.Called(ctx, doctorID)
	appointments, _ := args.Get(0).([]responses.Appointment)
	return appointments, args.Error(1)
}

type testServer struct {
	router   *chi.Mux
	resolver *auth.JWTPrincipalResolver
	doctors  *MockDoctorUsecase
	bookings *MockBookingUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	accessLog := logrus.New()
	accessLog.SetOutput(io.Discard)

	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:                 "v1",
			EndpointPrefix:          "api",
			Timezone:                "UTC",
			AllowedOrigins:          []string{"*"},
			MaxRequests:             1000,
			RequestTimeoutInSeconds: 5,
		},
	}

	resolver := auth.NewJWTPrincipalResolver("router-secret", time.Hour, logger)
	mw := middlewares.NewMiddlewares(logger, accessLog, internalConfig, resolver, nil, nil)

	doctors := new(MockDoctorUsecase)
	bookings := new(MockBookingUsecase)
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})

	router := chi.NewRouter()
	SetupRoutes(router, internalConfig, mw, metricsHandler,
		controllers.NewDoctorController(logger, doctors, bookings, internalConfig),
		controllers.NewAppointmentController(logger, bookings, internalConfig),
	)
	return &testServer{router: router, resolver: resolver, doctors: doctors, bookings: bookings}
}

func (s *testServer) do(t *testing.T, req *http.Request, principal *models.Principal) *httptest.ResponseRecorder {
	t.Helper()
	if principal != nil {
		token, err := s.resolver.CreateToken(*principal)
		require.NoError(t, err)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

var (
	patient = &models.Principal{ID: "user-1", Role: constvars.RoleUser}
	doctor  = &models.Principal{ID: "owner-1", Role: constvars.RoleDoctor}
)

func TestDoctorRoutes_Public(t *testing.T) {
	s := newTestServer(t)
	s.doctors.On("ListAll", mock.Anything).Return([]models.DoctorPartial{{ID: "d1", Name: "Dr. A", Fees: 100}}, nil)
	s.doctors.On("GetByID", mock.Anything, "d1").Return(&models.Doctor{ID: "d1", Name: "Dr. A"}, nil)
	s.doctors.On("GetByID", mock.Anything, "missing").Return(nil, exceptions.ErrDoctorNotFound(nil, "missing"))

	t.Run("list all", func(t *testing.T) {
		rr := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/all", nil), nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Success bool                   `json:"success"`
			Data    []models.DoctorPartial `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Success)
		require.Len(t, body.Data, 1)
		assert.Equal(t, 100.0, body.Data[0].Fees)
	})

	t.Run("get by id", func(t *testing.T) {
		rr := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/d1", nil), nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("not found", func(t *testing.T) {
		rr := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/missing", nil), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDoctorRoutes_Guarded(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		method    string
		path      string
		principal *models.Principal
		want      int
	}{
		{"create without token", http.MethodPost, "/api/v1/doctors", nil, http.StatusUnauthorized},
		{"create as patient", http.MethodPost, "/api/v1/doctors", patient, http.StatusForbidden},
		{"update as patient", http.MethodPut, "/api/v1/doctors/d1", patient, http.StatusForbidden},
		{"delete without token", http.MethodDelete, "/api/v1/doctors/d1", nil, http.StatusUnauthorized},
		{"by-user as patient", http.MethodGet, "/api/v1/doctors/by-user/owner-1", patient, http.StatusForbidden},
		{"profile appointments without token", http.MethodGet, "/api/v1/doctors/d1/appointments", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString("{}")), tt.principal)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
	s.doctors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	s.doctors.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDoctorRoutes_CreateJSON(t *testing.T) {
	s := newTestServer(t)
	s.doctors.On("Create", mock.Anything, mock.MatchedBy(func(r *requests.CreateDoctor) bool {
		return r.Name == "Dr. A" && len(r.Schedule) == 1 && r.Schedule[0].Places[0].MaxPatients == 4
	}), doctor.ID).Return(&models.Doctor{ID: "d1", Owner: doctor.ID, Name: "Dr. A"}, nil)

	body := `{"name":"Dr. A","specialist":"Cardiology","fees":100,"schedule":[{"day":"Monday","places":[{"place":"Clinic","timeInterval":{"start":"10:00","end":"12:00"},"maxPatients":4}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", bytes.NewBufferString(body))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	rr := s.do(t, req, doctor)
	assert.Equal(t, http.StatusCreated, rr.Code)
	s.doctors.AssertExpectations(t)
}

func TestDoctorRoutes_UpdateMultipart(t *testing.T) {
	s := newTestServer(t)
	s.doctors.On("Update", mock.Anything, "d1", mock.MatchedBy(func(r *requests.UpdateDoctor) bool {
		return r.Fees != nil && *r.Fees == 150 &&
			r.Schedule != nil && len(*r.Schedule) == 1 &&
			string(r.PictureFile) == "png-bytes" && r.PictureFileName == "me.png"
	}), doctor.ID).Return(&models.Doctor{ID: "d1", Fees: 150}, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("fees", "150"))
	require.NoError(t, writer.WriteField("schedule", `[{"day":"Monday","places":[{"place":"Clinic","timeInterval":{"start":"10:00","end":"12:00"},"maxPatients":4}]}]`))
	part, err := writer.CreateFormFile("picture", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/doctors/d1", &buf)
	req.Header.Set(constvars.HeaderContentType, writer.FormDataContentType())

	rr := s.do(t, req, doctor)
	assert.Equal(t, http.StatusOK, rr.Code)
	s.doctors.AssertExpectations(t)
}

func TestDoctorRoutes_DeleteForbiddenForNonOwner(t *testing.T) {
	s := newTestServer(t)
	s.doctors.On("Delete", mock.Anything, "d1", doctor.ID).Return(exceptions.ErrDoctorDeleteForbidden(nil, doctor.ID, "d1"))

	rr := s.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/doctors/d1", nil), doctor)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAppointmentRoutes_Book(t *testing.T) {
	bookBody := `{"doctorId":"d1","day":"Monday","place":"Clinic","timeInterval":{"start":"10:00","end":"12:00"}}`

	t.Run("booked", func(t *testing.T) {
		s := newTestServer(t)
		s.bookings.On("Book", mock.Anything, mock.AnythingOfType("*requests.BookAppointment"), *patient).
			Return(&models.Appointment{ID: "a1", TimeInterval: models.TimeInterval{Start: "10:00", End: "10:30"}}, nil)

		rr := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/book", bytes.NewBufferString(bookBody)), patient)
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"start":"10:00"`)
	})

	t.Run("slot full", func(t *testing.T) {
		s := newTestServer(t)
		s.bookings.On("Book", mock.Anything, mock.Anything, *patient).
			Return(nil, exceptions.ErrSlotFullyBooked(nil, "d1:Monday:Clinic:10:00-12:00", 4, 4))

		rr := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/book", bytes.NewBufferString(bookBody)), patient)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.ErrClientSlotFullyBooked)
	})

	t.Run("store unavailable", func(t *testing.T) {
		s := newTestServer(t)
		s.bookings.On("Book", mock.Anything, mock.Anything, *patient).
			Return(nil, exceptions.AsUnavailable(context.DeadlineExceeded))

		rr := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/book", bytes.NewBufferString(bookBody)), patient)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "1", rr.Header().Get(constvars.HeaderRetryAfter))
	})

	t.Run("doctors are turned away", func(t *testing.T) {
		s := newTestServer(t)
		rr := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/book", bytes.NewBufferString(bookBody)), doctor)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		s.bookings.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t)
		rr := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/book", bytes.NewBufferString("{")), patient)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAppointmentRoutes_Lists(t *testing.T) {
	s := newTestServer(t)
	s.bookings.On("ListByDoctor", mock.Anything, "d1").Return([]responses.Appointment{{ID: "a1"}}, nil)
	s.bookings.On("ListByUser", mock.Anything, "user-9").Return([]responses.Appointment{{ID: "a2"}}, nil)
	s.bookings.On("ListByUser", mock.Anything, patient.ID).Return([]responses.Appointment{{ID: "a3"}}, nil)
	s.bookings.On("ListForDoctorProfile", mock.Anything, "d1").Return([]responses.Appointment{{ID: "a4"}}, nil)

	tests := []struct {
		name      string
		path      string
		principal *models.Principal
		wantID    string
	}{
		{"by doctor", "/api/v1/appointments/doctor/d1", patient, "a1"},
		{"by user id", "/api/v1/appointments/user/user-9", doctor, "a2"},
		{"own appointments", "/api/v1/appointments/user", patient, "a3"},
		{"doctor profile", "/api/v1/doctors/d1/appointments", doctor, "a4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, httptest.NewRequest(http.MethodGet, tt.path, nil), tt.principal)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `"_id":"`+tt.wantID+`"`)
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "# metrics")
}
