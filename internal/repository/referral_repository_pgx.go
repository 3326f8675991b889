package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

// referralDetailColumns joins the patient's and both doctors' names into
// every read, newest first. Read operations always return denormalized rows.
const referralDetailSelect = `
	SELECT r.id, r.patient_id, r.referring_doctor_id, r.receiving_doctor_id,
	       r.reason, r.observations, r.status, r.clinic_tag, r.created_at, r.responded_at,
	       p.first_name || ' ' || p.last_name AS patient_name,
	       rd.first_name || ' ' || rd.last_name AS referring_doctor_name,
	       vd.first_name || ' ' || vd.last_name AS receiving_doctor_name
	FROM referrals r
	JOIN patients p ON p.id = r.patient_id
	JOIN doctors rd ON rd.id = r.referring_doctor_id
	JOIN doctors vd ON vd.id = r.receiving_doctor_id`

type referralRepositoryPgx struct {
	pool *pgxpool.Pool
}

// NewReferralRepositoryPgx is the relational-driver sibling of the referral
// repository. Creation and transition go through the stored functions, so
// the legality guard and the write are one atomic server-side unit.
func NewReferralRepositoryPgx(pool *pgxpool.Pool) domainRepo.ReferralRepository {
	return &referralRepositoryPgx{pool: pool}
}

func (r *referralRepositoryPgx) Create(ctx context.Context, params domainRepo.CreateReferralParams) (*entity.Referral, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT * FROM sp_create_referral($1, $2, $3, $4, $5, $6)",
		params.PatientID, params.ReferringDoctorID, params.ReceivingDoctorID,
		params.Reason, params.Observations, params.ClinicTag,
	)
	var ref entity.Referral
	if err := scanReferral(row, &ref); err != nil {
		return nil, fmt.Errorf("create referral: %w", dataaccess.TranslatePgxError(err))
	}
	return &ref, nil
}

func (r *referralRepositoryPgx) UpdateStatus(ctx context.Context, id int64, status entity.ReferralStatus, observations string) (*entity.Referral, error) {
	if !entity.ValidReferralStatus(status) {
		return nil, fmt.Errorf("referral status %q: %w", status, dataaccess.ErrMalformedQuery)
	}

	var obs any
	if observations != "" {
		obs = observations
	}
	row := r.pool.QueryRow(ctx,
		"SELECT * FROM sp_update_referral_status($1, $2, $3)",
		id, string(status), obs,
	)
	var ref entity.Referral
	if err := scanReferral(row, &ref); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("referral %d: %w", id, dataaccess.ErrNotFound)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "P0001" {
			return nil, fmt.Errorf("referral %d to %s: %w", id, status, entity.ErrReferralTransition)
		}
		return nil, fmt.Errorf("transition referral %d: %w", id, dataaccess.TranslatePgxError(err))
	}
	return &ref, nil
}

func (r *referralRepositoryPgx) FindByID(ctx context.Context, id int64) (*entity.ReferralDetail, error) {
	details, err := r.queryDetails(ctx, referralDetailSelect+" WHERE r.id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("find referral %d: %w", id, err)
	}
	if len(details) == 0 {
		return nil, nil
	}
	return &details[0], nil
}

func (r *referralRepositoryPgx) ListByDoctor(ctx context.Context, doctorID int64, role entity.ReferralDoctorRole) ([]entity.ReferralDetail, error) {
	column := "r.referring_doctor_id"
	if role == entity.ReferralRoleReceived {
		column = "r.receiving_doctor_id"
	}
	query := fmt.Sprintf("%s WHERE %s = $1 ORDER BY r.created_at DESC", referralDetailSelect, column)
	details, err := r.queryDetails(ctx, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list referrals for doctor %d: %w", doctorID, err)
	}
	return details, nil
}

func (r *referralRepositoryPgx) ListByPatient(ctx context.Context, patientID int64) ([]entity.ReferralDetail, error) {
	query := referralDetailSelect + " WHERE r.patient_id = $1 ORDER BY r.created_at DESC"
	details, err := r.queryDetails(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("list referrals for patient %d: %w", patientID, err)
	}
	return details, nil
}

// Delete is not part of the referral lifecycle; fail fast instead of
// silently pretending otherwise.
func (r *referralRepositoryPgx) Delete(ctx context.Context, id int64) (bool, error) {
	return false, fmt.Errorf("delete referral: %w", dataaccess.ErrUnsupportedOperation)
}

func (r *referralRepositoryPgx) queryDetails(ctx context.Context, sql string, args ...any) ([]entity.ReferralDetail, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataaccess.TranslatePgxError(err)
	}
	defer rows.Close()

	var out []entity.ReferralDetail
	for rows.Next() {
		var d entity.ReferralDetail
		err := rows.Scan(
			&d.ID, &d.PatientID, &d.ReferringDoctorID, &d.ReceivingDoctorID,
			&d.Reason, &d.Observations, &d.Status, &d.ClinicTag, &d.CreatedAt, &d.RespondedAt,
			&d.PatientName, &d.ReferringDoctorName, &d.ReceivingDoctorName,
		)
		if err != nil {
			return nil, dataaccess.TranslatePgxError(err)
		}
		out = append(out, d)
	}
	return out, dataaccess.TranslatePgxError(rows.Err())
}

func scanReferral(row pgx.Row, ref *entity.Referral) error {
	return row.Scan(
		&ref.ID, &ref.PatientID, &ref.ReferringDoctorID, &ref.ReceivingDoctorID,
		&ref.Reason, &ref.Observations, &ref.Status, &ref.ClinicTag,
		&ref.CreatedAt, &ref.RespondedAt,
	)
}
