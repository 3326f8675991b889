package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"go-clinic-backend/internal/dataaccess"
	domainRepo "go-clinic-backend/internal/domain/repository"
	"go-clinic-backend/internal/infrastructure/database"
)

// Repositories bundles every repository built for the active backend.
// Exactly one of the two connections is non-nil, matching the backend
// resolved at startup; the choice never changes for the process lifetime.
type Repositories struct {
	Adapter dataaccess.Adapter

	User             domainRepo.UserRepository
	Patient          domainRepo.PatientRepository
	Doctor           domainRepo.DoctorRepository
	Appointment      domainRepo.AppointmentRepository
	Consultation     domainRepo.ConsultationRepository
	Referral         domainRepo.ReferralRepository
	Service          domainRepo.ServiceRepository
	Invoice          domainRepo.InvoiceRepository
	DocumentTemplate domainRepo.DocumentTemplateRepository
	Broadcast        domainRepo.BroadcastRepository
	AuditLog         domainRepo.AuditLogRepository
}

// NewRepositories wires the repository set for the given backend. User,
// Patient and Referral have per-backend implementations; the rest share a
// single implementation built on the query adapter.
func NewRepositories(backend database.Backend, pool *pgxpool.Pool, db *gorm.DB) (*Repositories, error) {
	repos := &Repositories{}

	switch backend {
	case database.BackendPgx:
		if pool == nil {
			return nil, fmt.Errorf("backend %s selected without a connection pool", backend)
		}
		repos.Adapter = dataaccess.NewPgxAdapter(pool)
		repos.User = NewUserRepositoryPgx(pool)
		repos.Patient = NewPatientRepositoryPgx(pool)
		repos.Referral = NewReferralRepositoryPgx(pool)
	case database.BackendGorm:
		if db == nil {
			return nil, fmt.Errorf("backend %s selected without a database handle", backend)
		}
		repos.Adapter = dataaccess.NewGormAdapter(db)
		repos.User = NewUserRepositoryGorm(db)
		repos.Patient = NewPatientRepositoryGorm(db)
		repos.Referral = NewReferralRepositoryGorm(db)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}

	repos.Doctor = NewDoctorRepository(repos.Adapter)
	repos.Appointment = NewAppointmentRepository(repos.Adapter)
	repos.Consultation = NewConsultationRepository(repos.Adapter)
	repos.Service = NewServiceRepository(repos.Adapter)
	repos.Invoice = NewInvoiceRepository(repos.Adapter)
	repos.DocumentTemplate = NewDocumentTemplateRepository(repos.Adapter)
	repos.Broadcast = NewBroadcastRepository(repos.Adapter)
	repos.AuditLog = NewAuditLogRepository(repos.Adapter)

	return repos, nil
}
