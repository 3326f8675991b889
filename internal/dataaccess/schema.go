package dataaccess

import "fmt"

// schema is the closed enumeration of tables and columns the adapter will
// touch. Identifiers coming from callers are checked against it before any
// SQL or builder chain is assembled; anything outside fails with
// ErrMalformedQuery instead of being interpolated.
var schema = map[string]map[string]struct{}{
	"users": cols("id", "role_id", "doctor_id", "email", "password", "full_name", "is_active", "created_at", "updated_at"),
	"roles": cols("id", "role_name", "description"),
	"patients": cols("id", "first_name", "last_name", "document_id", "email", "phone",
		"birth_date", "gender", "address", "clinic_tag", "created_at", "updated_at"),
	"doctors": cols("id", "first_name", "last_name", "specialty", "email", "phone",
		"license_number", "clinic_tag", "created_at", "updated_at"),
	"appointments": cols("id", "patient_id", "doctor_id", "scheduled_at", "status",
		"reason", "notes", "created_at", "updated_at"),
	"consultations": cols("id", "appointment_id", "patient_id", "doctor_id",
		"diagnosis", "treatment", "notes", "created_at", "updated_at"),
	"referrals": cols("id", "patient_id", "referring_doctor_id", "receiving_doctor_id",
		"reason", "observations", "status", "clinic_tag", "created_at", "responded_at"),
	"services": cols("id", "name", "description", "price_cents", "clinic_tag",
		"is_active", "created_at", "updated_at"),
	"invoices": cols("id", "patient_id", "status", "total_cents", "clinic_tag",
		"issued_at", "created_at", "updated_at"),
	"invoice_items": cols("id", "invoice_id", "service_id", "quantity", "unit_price_cents"),
	"document_templates": cols("id", "name", "description", "body", "created_at", "updated_at"),
	"broadcasts": cols("id", "title", "body", "audience", "sent_by", "created_at"),
	"audit_logs": cols("id", "user_id", "action", "metadata", "created_at"),
}

func cols(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// checkTable validates a table name against the registry.
func checkTable(table string) error {
	if _, ok := schema[table]; !ok {
		return fmt.Errorf("unknown table %q: %w", table, ErrMalformedQuery)
	}
	return nil
}

// checkColumns validates column names against the registry for one table.
func checkColumns(table string, columns ...string) error {
	known, ok := schema[table]
	if !ok {
		return fmt.Errorf("unknown table %q: %w", table, ErrMalformedQuery)
	}
	for _, c := range columns {
		if _, ok := known[c]; !ok {
			return fmt.Errorf("unknown column %q on %q: %w", c, table, ErrMalformedQuery)
		}
	}
	return nil
}
