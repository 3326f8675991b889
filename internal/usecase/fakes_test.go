package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
)

// In-memory repository fakes shared by the usecase tests. They implement
// just enough of each contract to drive the business rules; persistence
// details stay out of scope here.

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type recordingAudit struct {
	actions []string
	actors  []*uuid.UUID
}

func (a *recordingAudit) Record(_ context.Context, userID *uuid.UUID, action string, _ map[string]interface{}) {
	a.actions = append(a.actions, action)
	a.actors = append(a.actors, userID)
}

// ── patients ──

type fakePatientRepo struct {
	patients map[int64]*entity.Patient
}

func (f *fakePatientRepo) FindAll(context.Context, map[string]any, repository.Pagination) ([]entity.Patient, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

func (f *fakePatientRepo) FindByID(_ context.Context, id int64) (*entity.Patient, error) {
	return f.patients[id], nil
}

func (f *fakePatientRepo) Create(_ context.Context, patient *entity.Patient) error {
	patient.ID = int64(len(f.patients) + 1)
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) Update(_ context.Context, id int64, _ map[string]any) (*entity.Patient, error) {
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, dataaccess.ErrNotFound
}

func (f *fakePatientRepo) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.patients[id]
	delete(f.patients, id)
	return ok, nil
}

func (f *fakePatientRepo) Search(context.Context, string, []string) ([]entity.Patient, error) {
	return nil, nil
}

// ── doctors ──

type fakeDoctorRepo struct {
	doctors map[int64]*entity.Doctor
}

func (f *fakeDoctorRepo) FindAll(context.Context, map[string]any, repository.Pagination) ([]entity.Doctor, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

func (f *fakeDoctorRepo) FindByID(_ context.Context, id int64) (*entity.Doctor, error) {
	return f.doctors[id], nil
}

func (f *fakeDoctorRepo) Create(_ context.Context, doctor *entity.Doctor) error {
	doctor.ID = int64(len(f.doctors) + 1)
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) Update(_ context.Context, id int64, _ map[string]any) (*entity.Doctor, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, dataaccess.ErrNotFound
}

func (f *fakeDoctorRepo) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.doctors[id]
	delete(f.doctors, id)
	return ok, nil
}

func (f *fakeDoctorRepo) Search(context.Context, string, []string) ([]entity.Doctor, error) {
	return nil, nil
}

// ── appointments ──

type fakeAppointmentRepo struct {
	appointments map[int64]*entity.Appointment
}

func (f *fakeAppointmentRepo) FindAll(context.Context, map[string]any, repository.Pagination) ([]entity.Appointment, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, id int64) (*entity.Appointment, error) {
	return f.appointments[id], nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	appointment.ID = int64(len(f.appointments) + 1)
	f.appointments[appointment.ID] = appointment
	return nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, id int64, values map[string]any) (*entity.Appointment, error) {
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, dataaccess.ErrNotFound
	}
	if v, ok := values["status"].(string); ok {
		appointment.Status = entity.AppointmentStatus(v)
	}
	return appointment, nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.appointments[id]
	delete(f.appointments, id)
	return ok, nil
}

func (f *fakeAppointmentRepo) FindByDoctor(context.Context, int64, repository.Pagination) ([]entity.Appointment, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

func (f *fakeAppointmentRepo) FindByPatient(context.Context, int64, repository.Pagination) ([]entity.Appointment, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

// ── referrals ──

type fakeReferralRepo struct {
	lastCreate repository.CreateReferralParams
	lastStatus entity.ReferralStatus
	updateErr  error
	details    map[int64]*entity.ReferralDetail
}

func (f *fakeReferralRepo) Create(_ context.Context, params repository.CreateReferralParams) (*entity.Referral, error) {
	f.lastCreate = params
	return &entity.Referral{
		ID:                1,
		PatientID:         params.PatientID,
		ReferringDoctorID: params.ReferringDoctorID,
		ReceivingDoctorID: params.ReceivingDoctorID,
		Reason:            params.Reason,
		Observations:      params.Observations,
		Status:            entity.ReferralStatusPending,
		ClinicTag:         params.ClinicTag,
	}, nil
}

func (f *fakeReferralRepo) UpdateStatus(_ context.Context, id int64, status entity.ReferralStatus, observations string) (*entity.Referral, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.lastStatus = status
	return &entity.Referral{ID: id, Status: status, Observations: observations}, nil
}

func (f *fakeReferralRepo) FindByID(_ context.Context, id int64) (*entity.ReferralDetail, error) {
	return f.details[id], nil
}

func (f *fakeReferralRepo) ListByDoctor(context.Context, int64, entity.ReferralDoctorRole) ([]entity.ReferralDetail, error) {
	return nil, nil
}

func (f *fakeReferralRepo) ListByPatient(context.Context, int64) ([]entity.ReferralDetail, error) {
	return nil, nil
}

func (f *fakeReferralRepo) Delete(context.Context, int64) (bool, error) {
	return false, dataaccess.ErrUnsupportedOperation
}

// ── services ──

type fakeServiceRepo struct {
	services map[int64]*entity.Service
}

func (f *fakeServiceRepo) FindAll(context.Context, map[string]any, repository.Pagination) ([]entity.Service, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id int64) (*entity.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceRepo) Create(_ context.Context, service *entity.Service) error {
	service.ID = int64(len(f.services) + 1)
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) Update(_ context.Context, id int64, _ map[string]any) (*entity.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, dataaccess.ErrNotFound
}

func (f *fakeServiceRepo) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.services[id]
	delete(f.services, id)
	return ok, nil
}

func (f *fakeServiceRepo) Search(context.Context, string, []string) ([]entity.Service, error) {
	return nil, nil
}

// ── invoices ──

type fakeInvoiceRepo struct {
	invoices map[int64]*entity.Invoice
}

func (f *fakeInvoiceRepo) FindAll(context.Context, map[string]any, repository.Pagination) ([]entity.Invoice, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

func (f *fakeInvoiceRepo) FindByID(_ context.Context, id int64) (*entity.Invoice, error) {
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	invoice.ID = int64(len(f.invoices) + 1)
	f.invoices[invoice.ID] = invoice
	return nil
}

// UpdateStatus mirrors the real repository contract: the lifecycle guard
// sits in the update itself, not in the caller.
func (f *fakeInvoiceRepo) UpdateStatus(_ context.Context, id int64, status entity.InvoiceStatus) (*entity.Invoice, error) {
	invoice, ok := f.invoices[id]
	if !ok {
		return nil, dataaccess.ErrNotFound
	}
	if !invoice.Status.CanTransitionTo(status) {
		return nil, entity.ErrInvoiceTransition
	}
	invoice.Status = status
	return invoice, nil
}

func (f *fakeInvoiceRepo) FindByPatient(context.Context, int64, repository.Pagination) ([]entity.Invoice, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

// ── document templates ──

type fakeTemplateRepo struct {
	templates map[int64]*entity.DocumentTemplate
}

func (f *fakeTemplateRepo) FindAll(context.Context, map[string]any, repository.Pagination) ([]entity.DocumentTemplate, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

func (f *fakeTemplateRepo) FindByID(_ context.Context, id int64) (*entity.DocumentTemplate, error) {
	return f.templates[id], nil
}

func (f *fakeTemplateRepo) Create(_ context.Context, template *entity.DocumentTemplate) error {
	template.ID = int64(len(f.templates) + 1)
	f.templates[template.ID] = template
	return nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, id int64, values map[string]any) (*entity.DocumentTemplate, error) {
	tpl, ok := f.templates[id]
	if !ok {
		return nil, dataaccess.ErrNotFound
	}
	if v, ok := values["name"].(string); ok {
		tpl.Name = v
	}
	if v, ok := values["body"].(string); ok {
		tpl.Body = v
	}
	return tpl, nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.templates[id]
	delete(f.templates, id)
	return ok, nil
}

// ── consultations ──

type fakeConsultationRepo struct {
	consultations map[int64]*entity.Consultation
}

func (f *fakeConsultationRepo) FindAll(context.Context, map[string]any, repository.Pagination) ([]entity.Consultation, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}

func (f *fakeConsultationRepo) FindByID(_ context.Context, id int64) (*entity.Consultation, error) {
	return f.consultations[id], nil
}

func (f *fakeConsultationRepo) Create(_ context.Context, consultation *entity.Consultation) error {
	consultation.ID = int64(len(f.consultations) + 1)
	f.consultations[consultation.ID] = consultation
	return nil
}

func (f *fakeConsultationRepo) Update(_ context.Context, id int64, _ map[string]any) (*entity.Consultation, error) {
	if c, ok := f.consultations[id]; ok {
		return c, nil
	}
	return nil, dataaccess.ErrNotFound
}

func (f *fakeConsultationRepo) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.consultations[id]
	delete(f.consultations, id)
	return ok, nil
}

func (f *fakeConsultationRepo) FindByPatient(context.Context, int64, repository.Pagination) ([]entity.Consultation, repository.Meta, error) {
	return nil, repository.Meta{}, nil
}
