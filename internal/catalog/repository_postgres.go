package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Shops
// --------------------------------------------------

func (r *PostgresRepository) CreateShop(ctx context.Context, shop *Shop) error {
	shop.ID = uuid.New().String()

	return r.db.QueryRow(ctx, `
		INSERT INTO shops (id, owner_id, name, city, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`,
		shop.ID,
		shop.OwnerID,
		shop.Name,
		shop.City,
		shop.Description,
		shop.Status,
	).Scan(&shop.CreatedAt)
}

const shopColumns = `id, owner_id, name, city, description, status, approved_at, created_at`

func scanShop(row pgx.Row) (*Shop, error) {
	var s Shop
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Name,
		&s.City,
		&s.Description,
		&s.Status,
		&s.ApprovedAt,
		&s.CreatedAt,
	)
	return &s, err
}

func (r *PostgresRepository) GetShop(ctx context.Context, shopID string) (*Shop, error) {
	if _, err := uuid.Parse(shopID); err != nil {
		return nil, ErrShopNotFound
	}

	shop, err := scanShop(r.db.QueryRow(ctx,
		`SELECT `+shopColumns+` FROM shops WHERE id = $1`, shopID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	return shop, nil
}

func (r *PostgresRepository) ListShopsByOwner(ctx context.Context, ownerID string) ([]*Shop, error) {
	return r.queryShops(ctx, `
		SELECT `+shopColumns+`
		FROM shops
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
}

func (r *PostgresRepository) ListShopsByStatus(ctx context.Context, status string) ([]*Shop, error) {
	return r.queryShops(ctx, `
		SELECT `+shopColumns+`
		FROM shops
		WHERE status = $1
		ORDER BY created_at DESC
	`, status)
}

func (r *PostgresRepository) queryShops(ctx context.Context, query string, args ...any) ([]*Shop, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []*Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

func (r *PostgresRepository) ApproveShop(
	ctx context.Context,
	shopID string,
	adminID string,
	at time.Time,
) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE shops
		SET status = 'APPROVED',
		    approved_at = $2,
		    approved_by = $3
		WHERE id = $1
	`, shopID, at, adminID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrShopNotFound
	}

	if _, err := tx.Exec(ctx, `
		UPDATE products
		SET status = 'APPROVED'
		WHERE shop_id = $1
	`, shopID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func (r *PostgresRepository) CreateProduct(ctx context.Context, product *Product) error {
	product.ID = uuid.New().String()
	if product.Images == nil {
		product.Images = []string{}
	}

	err := r.db.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO products (
				id, shop_id, name, category, size, description, price_per_day, images, status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING shop_id, created_at
		)
		SELECT s.owner_id, s.city, i.created_at
		FROM inserted i
		JOIN shops s ON s.id = i.shop_id
	`,
		product.ID,
		product.ShopID,
		product.Name,
		product.Category,
		product.Size,
		product.Description,
		product.PricePerDay,
		product.Images,
		product.Status,
	).Scan(&product.OwnerID, &product.City, &product.CreatedAt)

	return err
}

const productSelect = `
	SELECT
		p.id,
		p.shop_id,
		s.owner_id,
		s.city,
		p.name,
		p.category,
		p.size,
		p.description,
		p.price_per_day::float8,
		p.images,
		p.status,
		p.created_at
	FROM products p
	JOIN shops s ON s.id = p.shop_id
`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.ShopID,
		&p.OwnerID,
		&p.City,
		&p.Name,
		&p.Category,
		&p.Size,
		&p.Description,
		&p.PricePerDay,
		&p.Images,
		&p.Status,
		&p.CreatedAt,
	)
	return &p, err
}

func (r *PostgresRepository) GetProduct(ctx context.Context, productID string) (*Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, ErrProductNotFound
	}

	p, err := scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) ListProducts(
	ctx context.Context,
	f ProductFilter,
) ([]*Product, int, error) {

	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Category != "" {
		add("p.category = $%d", f.Category)
	}
	if f.City != "" {
		add("s.city = $%d", f.City)
	}
	if f.ShopID != "" {
		add("p.shop_id = $%d", f.ShopID)
	}
	if f.Status != "" {
		add("p.status = $%d", f.Status)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM products p
		JOIN shops s ON s.id = p.shop_id`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := productSelect + where + " ORDER BY p.created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *PostgresRepository) AddProductImages(ctx context.Context, productID string, urls []string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET images = images || $2::text[]
		WHERE id = $1
	`, productID, urls)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// --------------------------------------------------
// Approved prices for a (city, category) market
// Used by price insights (READ-ONLY)
// --------------------------------------------------
func (r *PostgresRepository) ApprovedPrices(
	ctx context.Context,
	city string,
	category string,
) ([]float64, error) {

	rows, err := r.db.Query(ctx, `
		SELECT p.price_per_day::float8
		FROM products p
		JOIN shops s ON s.id = p.shop_id
		WHERE p.status = 'APPROVED'
		  AND s.city = $1
		  AND p.category = $2
	`, city, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		prices = append(prices, v)
	}
	return prices, rows.Err()
}

func (r *PostgresRepository) ApprovedMarkets(ctx context.Context) ([]Market, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT s.city, p.category
		FROM products p
		JOIN shops s ON s.id = p.shop_id
		WHERE p.status = 'APPROVED'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Market
	for rows.Next() {
		var m Market
		if err := rows.Scan(&m.City, &m.Category); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
