package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Myseie/ShopInventory/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, description, price, category, image_path) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Price, p.Category, p.ImagePath).Scan(&p.ID)
	return p, err
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT id, name, description, price, category, image_path FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImagePath)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetByName(name string) (models.Product, error) {
	query := `SELECT id, name, description, price, category, image_path FROM products WHERE name = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImagePath)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Update replaces all mutable fields. Zero rows affected means the record
// disappeared between the caller's read and this write.
func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, description = $2, price = $3, category = $4, image_path = $5 WHERE id = $6`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Price, p.Category, p.ImagePath, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrConcurrentUpdate
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	conditions, args := filterConditions(pf.Search)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	row := r.db.QueryRowContext(ctx, countQuery, args...)
	if err := row.Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := `SELECT id, name, description, price, category, image_path FROM products WHERE 1=1`
	query += conditions
	query += " ORDER BY id"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, PageSize, (pf.page()-1)*PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImagePath); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, totalCount, rows.Err()
}

func filterConditions(search string) (string, []any) {
	if search == "" {
		return "", []any{}
	}
	return " AND (name ILIKE $1 OR category ILIKE $1)", []any{"%" + search + "%"}
}
