package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopline/models"
	"shopline/services/appointment"

	"github.com/gin-gonic/gin"
)

type fakeAppointmentService struct {
	queueAppointment func(ctx context.Context, req appointment.QueueAppointmentRequest) error
	getAppointment   func(ctx context.Context, id string) (*models.BookingView, error)
	update           func(ctx context.Context, id string, req appointment.UpdateAppointmentRequest) (*models.Booking, error)
}

func (f *fakeAppointmentService) QueueAppointment(ctx context.Context, req appointment.QueueAppointmentRequest) error {
	return f.queueAppointment(ctx, req)
}

func (f *fakeAppointmentService) ListAppointments(ctx context.Context) ([]models.BookingView, error) {
	return nil, nil
}

func (f *fakeAppointmentService) GetAppointment(ctx context.Context, id string) (*models.BookingView, error) {
	return f.getAppointment(ctx, id)
}

func (f *fakeAppointmentService) UpdateAppointment(ctx context.Context, id string, req appointment.UpdateAppointmentRequest) (*models.Booking, error) {
	return f.update(ctx, id, req)
}

func (f *fakeAppointmentService) CancelAppointment(ctx context.Context, id string) error {
	return nil
}

func newAppointmentRouter(svc appointment.AppointmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAppointmentHandler(svc)
	r := gin.New()
	r.POST("/appointments", h.CreateAppointment)
	r.GET("/appointments/:id", h.GetAppointmentByID)
	r.PUT("/appointments/:id", h.UpdateAppointment)
	return r
}

func TestCreateAppointmentQueued(t *testing.T) {
	var got appointment.QueueAppointmentRequest
	svc := &fakeAppointmentService{
		queueAppointment: func(ctx context.Context, req appointment.QueueAppointmentRequest) error {
			got = req
			return nil
		},
	}
	r := newAppointmentRouter(svc)

	body := `{"userId":"user-1","shopId":"shop-1","date":"2026-09-01","time":"10:00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Appointment queued successfully") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if got.UserID != "user-1" || got.Time != "10:00" {
		t.Errorf("service received wrong request: %+v", got)
	}
}

func TestCreateAppointmentValidationError(t *testing.T) {
	svc := &fakeAppointmentService{
		queueAppointment: func(ctx context.Context, req appointment.QueueAppointmentRequest) error {
			return appointment.NewValidationError("No availability found for the given date and time")
		},
	}
	r := newAppointmentRouter(svc)

	body := `{"userId":"user-1","shopId":"shop-1","date":"2026-09-01","time":"10:00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	svc := &fakeAppointmentService{
		getAppointment: func(ctx context.Context, id string) (*models.BookingView, error) {
			return nil, appointment.NewNotFoundError("Appointment not found")
		},
	}
	r := newAppointmentRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/appointments/missing", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateAppointmentConflict(t *testing.T) {
	svc := &fakeAppointmentService{
		update: func(ctx context.Context, id string, req appointment.UpdateAppointmentRequest) (*models.Booking, error) {
			return nil, appointment.NewConflictError("Time slot already booked")
		},
	}
	r := newAppointmentRouter(svc)

	body := `{"shopId":"shop-1","date":"2026-09-02","hour":12}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/appointments/booking-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}
