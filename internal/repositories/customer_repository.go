package repositories

import (
	"context"

	"mango-backend/internal/models"
)

type CustomerRepository struct {
	DB DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	c.Type = models.NormalizeCustomerType(c.Type)
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(name, phone, address, type)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		c.Name, c.Phone, c.Address, c.Type,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(phone, '') as phone, COALESCE(address, '') as address, type, created_at, updated_at
         FROM customers WHERE id=$1`, id)

	var customer models.Customer
	err := row.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Address,
		&customer.Type, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	customer.Type = models.NormalizeCustomerType(customer.Type)
	return &customer, nil
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(phone, '') as phone, COALESCE(address, '') as address, type, created_at, updated_at
         FROM customers WHERE phone=$1`, phone)

	var customer models.Customer
	err := row.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Address,
		&customer.Type, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	customer.Type = models.NormalizeCustomerType(customer.Type)
	return &customer, nil
}

// List returns all customers sorted by name, case-insensitive.
func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(phone, '') as phone, COALESCE(address, '') as address, type, created_at, updated_at
         FROM customers ORDER BY LOWER(name) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Address,
			&customer.Type, &customer.CreatedAt, &customer.UpdatedAt)
		if err != nil {
			return nil, err
		}
		customer.Type = models.NormalizeCustomerType(customer.Type)
		customers = append(customers, &customer)
	}
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	c.Type = models.NormalizeCustomerType(c.Type)
	_, err := r.DB.Exec(ctx,
		`UPDATE customers SET name=$1, phone=$2, address=$3, type=$4, updated_at=CURRENT_TIMESTAMP
         WHERE id=$5`,
		c.Name, c.Phone, c.Address, c.Type, c.ID)
	return err
}

func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	return err
}
