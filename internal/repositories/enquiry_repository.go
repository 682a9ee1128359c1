package repositories

import (
	"context"

	"mango-backend/internal/models"
)

type EnquiryRepository struct {
	DB DBTX
}

func NewEnquiryRepository(db DBTX) *EnquiryRepository {
	return &EnquiryRepository{DB: db}
}

const enquiryColumns = `
	e.id, e.customer_id, COALESCE(c.name, '') as customer_name,
	COALESCE(e.name, '') as name, COALESCE(e.phone, '') as phone,
	e.required_date, COALESCE(e.type, '') as type, e.package_size_id,
	e.quantity, e.status, COALESCE(e.notes, '') as notes, e.created_at, e.updated_at`

func (r *EnquiryRepository) Create(ctx context.Context, e *models.Enquiry) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO enquiries(customer_id, name, phone, required_date, type, package_size_id, quantity, status, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		e.CustomerID, e.Name, e.Phone, e.RequiredDate, e.Type, e.PackageSizeID, e.Quantity, e.Status, e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EnquiryRepository) Get(ctx context.Context, id int) (*models.Enquiry, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT `+enquiryColumns+`
		FROM enquiries e
		LEFT JOIN customers c ON c.id = e.customer_id
		WHERE e.id=$1`, id)

	var e models.Enquiry
	err := row.Scan(&e.ID, &e.CustomerID, &e.CustomerName, &e.Name, &e.Phone,
		&e.RequiredDate, &e.Type, &e.PackageSizeID, &e.Quantity, &e.Status,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

// List returns enquiries newest first, optionally filtered by status.
func (r *EnquiryRepository) List(ctx context.Context, status string) ([]*models.Enquiry, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+enquiryColumns+`
		FROM enquiries e
		LEFT JOIN customers c ON c.id = e.customer_id
		WHERE ($1 = '' OR e.status = $1)
		ORDER BY e.required_date ASC, e.id DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enquiries []*models.Enquiry
	for rows.Next() {
		var e models.Enquiry
		err := rows.Scan(&e.ID, &e.CustomerID, &e.CustomerName, &e.Name, &e.Phone,
			&e.RequiredDate, &e.Type, &e.PackageSizeID, &e.Quantity, &e.Status,
			&e.Notes, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, &e)
	}
	return enquiries, nil
}

func (r *EnquiryRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM enquiries WHERE status=$1`, status).Scan(&count)
	return count, err
}

func (r *EnquiryRepository) Update(ctx context.Context, e *models.Enquiry) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE enquiries SET customer_id=$1, name=$2, phone=$3, required_date=$4, type=$5,
            package_size_id=$6, quantity=$7, status=$8, notes=$9, updated_at=CURRENT_TIMESTAMP
         WHERE id=$10`,
		e.CustomerID, e.Name, e.Phone, e.RequiredDate, e.Type,
		e.PackageSizeID, e.Quantity, e.Status, e.Notes, e.ID)
	return err
}

func (r *EnquiryRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM enquiries WHERE id=$1`, id)
	return err
}
