package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
	"github.com/mathieustrosberg/restaurant-app/internal/store"
	"github.com/mathieustrosberg/restaurant-app/pkg/email"
)

// syncQueue runs jobs inline so tests can observe their outcome.
type syncQueue struct {
	names []string
	errs  []error
}

func (q *syncQueue) Enqueue(name string, run func() error) {
	q.names = append(q.names, name)
	q.errs = append(q.errs, run())
}

type mockReservationStore struct {
	upsertFn func(name, email, phone string) (*model.Customer, error)
	createFn func(r *model.Reservation) error
	listFn   func() ([]model.Reservation, error)
	updateFn func(id uint, status model.ReservationStatus) (*model.Reservation, error)
	deleteFn func(id uint) error
}

func (m *mockReservationStore) UpsertCustomer(name, email, phone string) (*model.Customer, error) {
	return m.upsertFn(name, email, phone)
}
func (m *mockReservationStore) Create(r *model.Reservation) error { return m.createFn(r) }
func (m *mockReservationStore) ListWithCustomers() ([]model.Reservation, error) {
	return m.listFn()
}
func (m *mockReservationStore) UpdateStatus(id uint, status model.ReservationStatus) (*model.Reservation, error) {
	return m.updateFn(id, status)
}
func (m *mockReservationStore) Delete(id uint) error { return m.deleteFn(id) }

type mockReservationMailer struct {
	confirmed []string
	canceled  []string
	fail      bool
}

func (m *mockReservationMailer) SendReservationConfirmedEmail(to string, data email.ReservationEmailData) error {
	m.confirmed = append(m.confirmed, to)
	if m.fail {
		return errors.New("resend is down")
	}
	return nil
}

func (m *mockReservationMailer) SendReservationCanceledEmail(to string, data email.ReservationEmailData) error {
	m.canceled = append(m.canceled, to)
	if m.fail {
		return errors.New("resend is down")
	}
	return nil
}

func newReservationApp(ctl *ReservationController) *fiber.App {
	app := fiber.New()
	app.Post("/api/reservations", ctl.Create)
	app.Get("/api/reservations", ctl.List)
	app.Put("/api/reservations/:id", ctl.UpdateStatus)
	app.Delete("/api/reservations/:id", ctl.Delete)
	return app
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func validReservationBody() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Jean Dupont",
		"email":   "Jean@Example.com",
		"phone":   "0601020304",
		"date":    "2026-09-12",
		"time":    "19:30",
		"service": "dinner",
		"people":  4,
	}
}

func TestCreateReservation(t *testing.T) {
	var created *model.Reservation
	var upsertedEmail string

	st := &mockReservationStore{
		upsertFn: func(name, email, phone string) (*model.Customer, error) {
			upsertedEmail = email
			return &model.Customer{ID: 11, Name: name, Email: email, Phone: phone}, nil
		},
		createFn: func(r *model.Reservation) error {
			r.ID = 42
			created = r
			return nil
		},
	}
	ctl := NewReservationController(st, &mockReservationMailer{}, &syncQueue{})
	app := newReservationApp(ctl)

	resp, err := app.Test(jsonRequest("POST", "/api/reservations", validReservationBody()), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	if created == nil {
		t.Fatal("reservation never reached the store")
	}
	if created.Status != model.ReservationPending {
		t.Errorf("status = %s, want PENDING", created.Status)
	}
	if created.CustomerID != 11 {
		t.Errorf("customer id = %d, want 11", created.CustomerID)
	}
	if upsertedEmail != "jean@example.com" {
		t.Errorf("upserted email = %q, want lowercased", upsertedEmail)
	}
}

func TestCreateReservationMissingFields(t *testing.T) {
	for _, field := range []string{"name", "email", "phone", "date", "time", "service", "people"} {
		t.Run(field, func(t *testing.T) {
			createCalled := false
			st := &mockReservationStore{
				upsertFn: func(name, email, phone string) (*model.Customer, error) {
					return &model.Customer{ID: 1}, nil
				},
				createFn: func(r *model.Reservation) error {
					createCalled = true
					return nil
				},
			}
			ctl := NewReservationController(st, &mockReservationMailer{}, &syncQueue{})
			app := newReservationApp(ctl)

			body := validReservationBody()
			delete(body, field)

			resp, err := app.Test(jsonRequest("POST", "/api/reservations", body), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if createCalled {
				t.Error("partial record reached the store")
			}
		})
	}
}

func TestCreateReservationSlotConflict(t *testing.T) {
	st := &mockReservationStore{
		upsertFn: func(name, email, phone string) (*model.Customer, error) {
			return &model.Customer{ID: 1}, nil
		},
		createFn: func(r *model.Reservation) error {
			return store.ErrConflict
		},
	}
	ctl := NewReservationController(st, &mockReservationMailer{}, &syncQueue{})
	app := newReservationApp(ctl)

	resp, err := app.Test(jsonRequest("POST", "/api/reservations", validReservationBody()), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}

func TestCreateReservationRejectsSlotFromOtherService(t *testing.T) {
	ctl := NewReservationController(&mockReservationStore{}, &mockReservationMailer{}, &syncQueue{})
	app := newReservationApp(ctl)

	body := validReservationBody()
	body["service"] = "lunch"
	body["time"] = "19:30" // dinner slot

	resp, err := app.Test(jsonRequest("POST", "/api/reservations", body), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func confirmableReservation() *model.Reservation {
	return &model.Reservation{
		ID:         42,
		CustomerID: 11,
		Date:       "2026-09-12",
		Time:       "19:30",
		Service:    model.ServiceDinner,
		People:     4,
		Status:     model.ReservationConfirmed,
		Customer:   model.Customer{ID: 11, Name: "Jean Dupont", Email: "jean@example.com", Phone: "0601020304"},
	}
}

func TestUpdateStatusSendsConfirmationEmail(t *testing.T) {
	st := &mockReservationStore{
		updateFn: func(id uint, status model.ReservationStatus) (*model.Reservation, error) {
			r := confirmableReservation()
			r.Status = status
			return r, nil
		},
	}
	mailer := &mockReservationMailer{}
	queue := &syncQueue{}
	ctl := NewReservationController(st, mailer, queue)
	app := newReservationApp(ctl)

	resp, err := app.Test(jsonRequest("PUT", "/api/reservations/42", map[string]string{"status": "CONFIRMED"}), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(mailer.confirmed) != 1 || mailer.confirmed[0] != "jean@example.com" {
		t.Errorf("confirmed emails = %v", mailer.confirmed)
	}

	var flat FlattenedReservation
	if err := json.NewDecoder(resp.Body).Decode(&flat); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if flat.Name != "Jean Dupont" || flat.Email != "jean@example.com" {
		t.Errorf("flattened record missing customer fields: %+v", flat)
	}
}

func TestUpdateStatusPersistsWhenEmailFails(t *testing.T) {
	var stored model.ReservationStatus
	st := &mockReservationStore{
		updateFn: func(id uint, status model.ReservationStatus) (*model.Reservation, error) {
			stored = status
			r := confirmableReservation()
			r.Status = status
			return r, nil
		},
	}
	mailer := &mockReservationMailer{fail: true}
	queue := &syncQueue{}
	ctl := NewReservationController(st, mailer, queue)
	app := newReservationApp(ctl)

	resp, err := app.Test(jsonRequest("PUT", "/api/reservations/42", map[string]string{"status": "CANCELED"}), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when email fails", resp.StatusCode)
	}
	if stored != model.ReservationCanceled {
		t.Errorf("stored status = %s, want CANCELED", stored)
	}
	if len(queue.errs) != 1 || queue.errs[0] == nil {
		t.Error("expected the email job to have run and failed")
	}
}

func TestUpdateStatusToPendingSendsNoEmail(t *testing.T) {
	st := &mockReservationStore{
		updateFn: func(id uint, status model.ReservationStatus) (*model.Reservation, error) {
			r := confirmableReservation()
			r.Status = status
			return r, nil
		},
	}
	mailer := &mockReservationMailer{}
	queue := &syncQueue{}
	ctl := NewReservationController(st, mailer, queue)
	app := newReservationApp(ctl)

	resp, err := app.Test(jsonRequest("PUT", "/api/reservations/42", map[string]string{"status": "PENDING"}), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(queue.names) != 0 {
		t.Errorf("unexpected email jobs: %v", queue.names)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	st := &mockReservationStore{
		updateFn: func(id uint, status model.ReservationStatus) (*model.Reservation, error) {
			return nil, store.ErrNotFound
		},
	}
	ctl := NewReservationController(st, &mockReservationMailer{}, &syncQueue{})
	app := newReservationApp(ctl)

	resp, err := app.Test(jsonRequest("PUT", "/api/reservations/42", map[string]string{"status": "ARRIVED"}), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid enum status = %d, want 400", resp.StatusCode)
	}

	resp, err = app.Test(jsonRequest("PUT", "/api/reservations/42", map[string]string{"status": "CONFIRMED"}), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing reservation status = %d, want 404", resp.StatusCode)
	}
}

func TestDeleteReservation(t *testing.T) {
	st := &mockReservationStore{
		deleteFn: func(id uint) error {
			if id == 42 {
				return nil
			}
			return store.ErrNotFound
		},
	}
	ctl := NewReservationController(st, &mockReservationMailer{}, &syncQueue{})
	app := newReservationApp(ctl)

	resp, err := app.Test(jsonRequest("DELETE", "/api/reservations/42", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	resp, err = app.Test(jsonRequest("DELETE", "/api/reservations/999", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestListReservationsFlattened(t *testing.T) {
	st := &mockReservationStore{
		listFn: func() ([]model.Reservation, error) {
			return []model.Reservation{*confirmableReservation()}, nil
		},
	}
	ctl := NewReservationController(st, &mockReservationMailer{}, &syncQueue{})
	app := newReservationApp(ctl)

	resp, err := app.Test(jsonRequest("GET", "/api/reservations", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var flat []FlattenedReservation
	if err := json.Unmarshal(body, &flat); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if len(flat) != 1 {
		t.Fatalf("len = %d, want 1", len(flat))
	}
	if flat[0].Phone != "0601020304" || flat[0].Time != "19:30" {
		t.Errorf("flattened record = %+v", flat[0])
	}
}
