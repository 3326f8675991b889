package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

const patientColumns = `id, first_name, last_name, document_id, email, phone,
	birth_date, gender, address, clinic_tag, created_at, updated_at`

type patientRepositoryPgx struct {
	pool *pgxpool.Pool
}

// NewPatientRepositoryPgx is the relational-driver sibling of the patient
// repository.
func NewPatientRepositoryPgx(pool *pgxpool.Pool) domainRepo.PatientRepository {
	return &patientRepositoryPgx{pool: pool}
}

func (r *patientRepositoryPgx) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.Patient, domainRepo.Meta, error) {
	p = p.Normalize()

	where, args, next, err := dataaccess.WhereClause("patients", filters, 1)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM patients" + where
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, domainRepo.Meta{}, fmt.Errorf("count patients: %w", dataaccess.TranslatePgxError(err))
	}

	query := fmt.Sprintf(
		"SELECT %s FROM patients%s ORDER BY id LIMIT $%d OFFSET $%d",
		patientColumns, where, next, next+1,
	)
	args = append(args, p.Limit, p.Offset())

	patients, err := r.queryPatients(ctx, query, args...)
	if err != nil {
		return nil, domainRepo.Meta{}, fmt.Errorf("find patients: %w", err)
	}
	return patients, domainRepo.NewMeta(p, total), nil
}

func (r *patientRepositoryPgx) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	query := fmt.Sprintf("SELECT %s FROM patients WHERE id = $1", patientColumns)
	patients, err := r.queryPatients(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("find patient %d: %w", id, err)
	}
	if len(patients) == 0 {
		return nil, nil
	}
	return &patients[0], nil
}

func (r *patientRepositoryPgx) Create(ctx context.Context, patient *entity.Patient) error {
	query := fmt.Sprintf(`
		INSERT INTO patients
			(first_name, last_name, document_id, email, phone, birth_date, gender, address, clinic_tag)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, patientColumns)

	row := r.pool.QueryRow(ctx, query,
		patient.FirstName, patient.LastName, patient.DocumentID, patient.Email,
		patient.Phone, patient.BirthDate, patient.Gender, patient.Address, patient.ClinicTag,
	)
	if err := scanPatient(row, patient); err != nil {
		return fmt.Errorf("create patient: %w", dataaccess.TranslatePgxError(err))
	}
	return nil
}

func (r *patientRepositoryPgx) Update(ctx context.Context, id int64, values map[string]any) (*entity.Patient, error) {
	if err := dataaccess.CheckColumns("patients", columnNames(values)...); err != nil {
		return nil, err
	}
	sets, args := setClause(values)
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE patients SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		sets, len(args), patientColumns,
	)
	var patient entity.Patient
	if err := scanPatient(r.pool.QueryRow(ctx, query, args...), &patient); err != nil {
		return nil, fmt.Errorf("update patient %d: %w", id, dataaccess.TranslatePgxError(err))
	}
	return &patient, nil
}

func (r *patientRepositoryPgx) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM patients WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete patient %d: %w", id, dataaccess.TranslatePgxError(err))
	}
	return tag.RowsAffected() > 0, nil
}

func (r *patientRepositoryPgx) Search(ctx context.Context, query string, fields []string) ([]entity.Patient, error) {
	if err := dataaccess.CheckColumns("patients", fields...); err != nil {
		return nil, err
	}
	conds := make([]string, len(fields))
	for i, f := range fields {
		conds[i] = fmt.Sprintf("%s ILIKE $1", f)
	}
	sql := fmt.Sprintf("SELECT %s FROM patients WHERE %s ORDER BY id",
		patientColumns, joinOr(conds))
	patients, err := r.queryPatients(ctx, sql, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepositoryPgx) queryPatients(ctx context.Context, sql string, args ...any) ([]entity.Patient, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataaccess.TranslatePgxError(err)
	}
	defer rows.Close()

	var out []entity.Patient
	for rows.Next() {
		var p entity.Patient
		if err := scanPatient(rows, &p); err != nil {
			return nil, dataaccess.TranslatePgxError(err)
		}
		out = append(out, p)
	}
	return out, dataaccess.TranslatePgxError(rows.Err())
}

func scanPatient(row pgx.Row, p *entity.Patient) error {
	return row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.DocumentID, &p.Email, &p.Phone,
		&p.BirthDate, &p.Gender, &p.Address, &p.ClinicTag, &p.CreatedAt, &p.UpdatedAt,
	)
}
