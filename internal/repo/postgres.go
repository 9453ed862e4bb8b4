package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
	"github.com/SergeyBogomolovv/order-ledger/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	return r.getOrder(ctx, orderID, false)
}

// GetOrderForUpdate reads the order and holds its row lock until the
// surrounding transaction ends. Outside of trm.Manager.Do the lock is
// released immediately.
func (r *postgresRepo) GetOrderForUpdate(ctx context.Context, orderID string) (entities.Order, error) {
	return r.getOrder(ctx, orderID, true)
}

func (r *postgresRepo) getOrder(ctx context.Context, orderID string, forUpdate bool) (entities.Order, error) {
	query, args := r.orderQuery(orderID, forUpdate).MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", MapError(err))
	}

	items, err := r.orderItems(ctx, []string{orderID})
	if err != nil {
		return entities.Order{}, err
	}

	return OrderToEntity(order, items[orderID]), nil
}

func (r *postgresRepo) orderQuery(orderID string, forUpdate bool) sq.SelectBuilder {
	q := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

func (r *postgresRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(count)).
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", MapError(err))
	}
	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	items, err := r.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToEntity(order, items[order.ID]))
	}
	return result, nil
}

func (r *postgresRepo) orderItems(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	query, args := r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("order_id", "position").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", MapError(err))
	}

	result := make(map[string][]Item, len(orderIDs))
	for _, it := range items {
		result[it.OrderID] = append(result[it.OrderID], it)
	}
	return result, nil
}

// CreateOrder stores a new order with its line items. Existing orders are
// left untouched.
func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID, o.Number, o.CustomerID, o.VendorID, o.TotalAmount, string(o.Status),
			string(o.PaymentStatus), nullTime(o.FulfilledAt), o.CreatedAt, o.UpdatedAt, o.Version,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", MapError(err))
	}

	if len(o.Items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns(itemColumns...).
		Suffix("ON CONFLICT (order_id, position) DO NOTHING")
	for i, it := range o.Items {
		q = q.Values(o.ID, i, it.OfferingID, it.Name, it.UnitPrice, it.Quantity)
	}

	query, args = q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save items: %w", MapError(err))
	}
	return nil
}

// UpdateOrderStatus writes the mutable order fields if the stored version
// still equals expectedVersion, and bumps the version.
func (r *postgresRepo) UpdateOrderStatus(ctx context.Context, o entities.Order, expectedVersion int64) error {
	query, args := r.updateStatusQuery(o, expectedVersion).MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", MapError(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order: %w", MapError(err))
	}
	if n > 0 {
		return nil
	}

	query, args = r.orderExistsQuery(o.ID).MustSql()
	var exists int
	err = r.getContext(ctx, &exists, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check order: %w", MapError(err))
	}
	return fmt.Errorf("%w: order %s changed since read", entities.ErrStoreConflict, o.ID)
}

func (r *postgresRepo) updateStatusQuery(o entities.Order, expectedVersion int64) sq.UpdateBuilder {
	return r.qb.Update("orders").
		Set("status", string(o.Status)).
		Set("payment_status", string(o.PaymentStatus)).
		Set("fulfilled_at", nullTime(o.FulfilledAt)).
		Set("updated_at", o.UpdatedAt).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": o.ID, "version": expectedVersion})
}

func (r *postgresRepo) orderExistsQuery(orderID string) sq.SelectBuilder {
	return r.qb.Select("1").From("orders").Where(sq.Eq{"id": orderID})
}

func (r *postgresRepo) UpsertVendorEarning(ctx context.Context, e entities.VendorEarning) (bool, error) {
	query, args := r.upsertVendorEarningQuery(e).MustSql()

	var inserted bool
	if err := r.getContext(ctx, &inserted, query, args...); err != nil {
		return false, fmt.Errorf("failed to upsert vendor earning: %w", MapError(err))
	}
	return inserted, nil
}

// RETURNING (xmax = 0) is true only for freshly inserted rows.
func (r *postgresRepo) upsertVendorEarningQuery(e entities.VendorEarning) sq.InsertBuilder {
	return r.qb.Insert("vendor_earnings").
		Columns(vendorEarningColumns...).
		Values(
			e.OrderID, e.OrderNumber, e.VendorID, e.Amount, pq.StringArray(e.ItemNames),
			e.CompletedAt, e.EarningMonth, e.EarningYear,
		).
		Suffix(`ON CONFLICT (order_id) DO UPDATE SET
			order_number = EXCLUDED.order_number,
			vendor_id = EXCLUDED.vendor_id,
			amount = EXCLUDED.amount,
			item_names = EXCLUDED.item_names,
			completed_at = EXCLUDED.completed_at,
			earning_month = EXCLUDED.earning_month,
			earning_year = EXCLUDED.earning_year,
			updated_at = now()
		RETURNING (xmax = 0) AS inserted`)
}

func (r *postgresRepo) UpsertPlatformEarning(ctx context.Context, e entities.PlatformEarning) (bool, error) {
	query, args := r.upsertPlatformEarningQuery(e).MustSql()

	var inserted bool
	if err := r.getContext(ctx, &inserted, query, args...); err != nil {
		return false, fmt.Errorf("failed to upsert platform earning: %w", MapError(err))
	}
	return inserted, nil
}

func (r *postgresRepo) upsertPlatformEarningQuery(e entities.PlatformEarning) sq.InsertBuilder {
	return r.qb.Insert("platform_earnings").
		Columns("order_id", "order_number", "vendor_id", "commission_amount", "recognized_at").
		Values(e.OrderID, e.OrderNumber, e.VendorID, e.CommissionAmount, e.RecognizedAt).
		Suffix(`ON CONFLICT (order_id) DO UPDATE SET
			order_number = EXCLUDED.order_number,
			vendor_id = EXCLUDED.vendor_id,
			commission_amount = EXCLUDED.commission_amount,
			recognized_at = EXCLUDED.recognized_at,
			updated_at = now()
		RETURNING (xmax = 0) AS inserted`)
}

func (r *postgresRepo) DeleteVendorEarning(ctx context.Context, orderID string) (bool, error) {
	return r.deleteByOrder(ctx, "vendor_earnings", orderID)
}

func (r *postgresRepo) DeletePlatformEarning(ctx context.Context, orderID string) (bool, error) {
	return r.deleteByOrder(ctx, "platform_earnings", orderID)
}

func (r *postgresRepo) deleteByOrder(ctx context.Context, table, orderID string) (bool, error) {
	query, args := r.qb.Delete(table).Where(sq.Eq{"order_id": orderID}).MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, MapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, MapError(err))
	}
	return n > 0, nil
}

func (r *postgresRepo) VendorEarnings(ctx context.Context, vendorID string, period entities.Period) ([]entities.VendorEarning, error) {
	q := r.qb.Select(vendorEarningColumns...).
		From("vendor_earnings").
		Where(sq.Eq{"vendor_id": vendorID}).
		OrderBy("completed_at DESC")
	query, args := wherePeriod(q, "completed_at", period).MustSql()

	var rows []VendorEarning
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select vendor earnings: %w", MapError(err))
	}

	result := make([]entities.VendorEarning, 0, len(rows))
	for _, row := range rows {
		result = append(result, VendorEarningToEntity(row))
	}
	return result, nil
}

func (r *postgresRepo) PlatformEarningsTotal(ctx context.Context, period entities.Period) (entities.EarningsTotal, error) {
	q := r.qb.Select("COALESCE(SUM(commission_amount), 0)::BIGINT AS total", "COUNT(*) AS count").
		From("platform_earnings")
	query, args := wherePeriod(q, "recognized_at", period).MustSql()

	var total Total
	if err := r.getContext(ctx, &total, query, args...); err != nil {
		return entities.EarningsTotal{}, fmt.Errorf("failed to sum platform earnings: %w", MapError(err))
	}
	return entities.EarningsTotal{Total: total.Total, Count: total.Count}, nil
}

// PlatformMonthlyTotals groups commission by UTC calendar month, starting
// from the month containing from. Months without earnings are omitted.
func (r *postgresRepo) PlatformMonthlyTotals(ctx context.Context, from time.Time) ([]entities.MonthlyTotal, error) {
	query, args := r.qb.Select(
		"date_trunc('month', recognized_at AT TIME ZONE 'UTC') AS month",
		"SUM(commission_amount)::BIGINT AS total",
		"COUNT(*) AS count",
	).
		From("platform_earnings").
		Where(sq.GtOrEq{"recognized_at": entities.MonthStart(from)}).
		GroupBy("1").
		OrderBy("1").
		MustSql()

	var rows []MonthlyTotal
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to group platform earnings: %w", MapError(err))
	}

	result := make([]entities.MonthlyTotal, 0, len(rows))
	for _, row := range rows {
		result = append(result, entities.MonthlyTotal{
			Month:         entities.MonthStart(row.Month),
			EarningsTotal: entities.EarningsTotal{Total: row.Total, Count: row.Count},
		})
	}
	return result, nil
}

func (r *postgresRepo) Inconsistencies(ctx context.Context) (entities.AuditReport, error) {
	var report entities.AuditReport

	checks := r.auditQueries()
	dests := []*int{&report.MissingEarnings, &report.OrphanedEarnings, &report.SplitMismatches}
	for i, c := range checks {
		query, args := c.q.MustSql()
		if err := r.getContext(ctx, dests[i], query, args...); err != nil {
			return entities.AuditReport{}, fmt.Errorf("failed to count %s: %w", c.name, MapError(err))
		}
	}

	return report, nil
}

type auditQuery struct {
	name string
	q    sq.SelectBuilder
}

// auditQueries count, in AuditReport field order, fulfilled orders lacking
// an earning, earnings of unfulfilled or missing orders, and splits that do
// not add up to the order total.
func (r *postgresRepo) auditQueries() []auditQuery {
	missing := r.qb.Select("COUNT(*)").
		From("orders o").
		LeftJoin("vendor_earnings v ON v.order_id = o.id").
		LeftJoin("platform_earnings p ON p.order_id = o.id").
		Where(sq.Eq{"o.status": string(entities.StatusFulfilled)}).
		Where(sq.Or{sq.Eq{"v.order_id": nil}, sq.Eq{"p.order_id": nil}})

	orphaned := r.qb.Select("COUNT(*)").
		From("(SELECT order_id FROM vendor_earnings UNION SELECT order_id FROM platform_earnings) e").
		LeftJoin("orders o ON o.id = e.order_id").
		Where(sq.Or{sq.Eq{"o.id": nil}, sq.NotEq{"o.status": string(entities.StatusFulfilled)}})

	mismatched := r.qb.Select("COUNT(*)").
		From("orders o").
		Join("vendor_earnings v ON v.order_id = o.id").
		Join("platform_earnings p ON p.order_id = o.id").
		Where("v.amount + p.commission_amount <> o.total_amount")

	return []auditQuery{
		{"missing earnings", missing},
		{"orphaned earnings", orphaned},
		{"split mismatches", mismatched},
	}
}

func wherePeriod(q sq.SelectBuilder, column string, p entities.Period) sq.SelectBuilder {
	if !p.From.IsZero() {
		q = q.Where(sq.GtOrEq{column: p.From})
	}
	if !p.To.IsZero() {
		q = q.Where(sq.Lt{column: p.To})
	}
	return q
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
