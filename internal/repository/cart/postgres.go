package cart

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront-api/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetOrCreate(ctx context.Context, sessionToken string) (*domain.Cart, error) {
	const insertQuery = `
INSERT INTO carts (session_token)
VALUES ($1)
ON CONFLICT (session_token) DO UPDATE SET session_token = EXCLUDED.session_token
RETURNING id::text, session_token, created_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, insertQuery, sessionToken).Scan(
		&cart.ID,
		&cart.SessionToken,
		&cart.CreatedAt,
	); err != nil {
		return nil, err
	}

	const itemsQuery = `
SELECT product_id, name, unit_price_cents, quantity, image_url, image_alt, sku, added_at
FROM cart_items
WHERE cart_id = $1
ORDER BY added_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ProductID,
			&item.Name,
			&item.UnitPriceCents,
			&item.Quantity,
			&item.ImageURL,
			&item.ImageAlt,
			&item.SKU,
			&item.AddedAt,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) AddItem(ctx context.Context, cartID string, item domain.CartItem) error {
	// A single upsert keeps the one-row-per-product invariant atomic even
	// when two adds of the same new product race: the loser merges instead
	// of tripping the unique index.
	_, err := r.pool.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, name, unit_price_cents, quantity, image_url, image_alt, sku)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`, cartID, item.ProductID, item.Name, item.UnitPriceCents, item.Quantity, item.ImageURL, item.ImageAlt, item.SKU)
	return err
}

func (r *postgresRepo) SetQuantity(ctx context.Context, cartID string, productID int64, quantity int) error {
	if quantity < 1 {
		return r.RemoveItem(ctx, cartID, productID)
	}

	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE cart_id = $2 AND product_id = $3
`, quantity, cartID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID string, productID int64) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID)
	return err
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1
`, cartID)
	return err
}

func (r *postgresRepo) ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1
`, cartID); err != nil {
		return err
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, name, unit_price_cents, quantity, image_url, image_alt, sku)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`, cartID, item.ProductID, item.Name, item.UnitPriceCents, item.Quantity, item.ImageURL, item.ImageAlt, item.SKU); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
