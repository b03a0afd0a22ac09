package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripwise/backend/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
// Single-row operations are scoped by (id, user_id); per-trip listings are
// additionally scoped by trip_id. The parent trip's ownership is verified by
// the service layer before any of these run.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense by its UUID, scoped to the given user.
	// Returns domain.ErrNotFound if no expense with that ID exists for that user.
	GetByID(ctx context.Context, userID, expenseID uuid.UUID) (domain.Expense, error)

	// ListByUser returns all of the user's expenses across trips, newest date
	// first, with TripDestination populated from the parent trip.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error)

	// ListByTrip returns the user's expenses for one trip, newest date first.
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error)

	// Update applies the non-nil fields of upd to the expense, scoped to the
	// given user, and returns the post-update record.
	// Returns domain.ErrNotFound if no expense with that ID exists for that user.
	Update(ctx context.Context, userID, expenseID uuid.UUID, upd domain.ExpenseUpdate) (domain.Expense, error)

	// Delete removes an expense by ID, scoped to the given user.
	// Returns domain.ErrNotFound if no expense with that ID exists for that user.
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, user_id, trip_id, description, amount, category, date, created_at, updated_at`

func (r *pgExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (user_id, trip_id, description, amount, category, date)
		VALUES (@user_id, @trip_id, @description, @amount, @category, @date)
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"user_id":     expense.UserID,
		"trip_id":     expense.TripID,
		"description": expense.Description,
		"amount":      expense.Amount,
		"category":    expense.Category,
		"date":        expense.Date,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, userID, expenseID uuid.UUID) (domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": expenseID, "user_id": userID})
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser joins the parent trip so each row carries the trip's destination,
// mirroring what the cross-trip expense listing shows in the UI.
func (r *pgExpenseRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT e.id, e.user_id, e.trip_id, e.description, e.amount, e.category,
		       e.date, e.created_at, e.updated_at, t.destination
		FROM expenses e
		JOIN trips t ON t.id = e.trip_id
		WHERE e.user_id = @user_id
		ORDER BY e.date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var (
			e      domain.Expense
			id     pgtype.UUID
			uid    pgtype.UUID
			tripID pgtype.UUID
		)
		err := rows.Scan(&id, &uid, &tripID, &e.Description, &e.Amount, &e.Category,
			&e.Date, &e.CreatedAt, &e.UpdatedAt, &e.TripDestination)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByUser: scan: %w", err)
		}
		e.ID = uuid.UUID(id.Bytes)
		e.UserID = uuid.UUID(uid.Bytes)
		e.TripID = uuid.UUID(tripID.Bytes)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByUser: rows: %w", err)
	}

	return expenses, nil
}

func (r *pgExpenseRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id AND user_id = @user_id
		ORDER BY date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: rows: %w", err)
	}

	return expenses, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, userID, expenseID uuid.UUID, upd domain.ExpenseUpdate) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET description = COALESCE(@description, description),
		    amount      = COALESCE(@amount, amount),
		    category    = COALESCE(@category, category),
		    date        = COALESCE(@date, date),
		    updated_at  = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"id":          expenseID,
		"user_id":     userID,
		"description": upd.Description,
		"amount":      upd.Amount,
		"category":    upd.Category,
		"date":        upd.Date,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": expenseID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanExpense maps a single database row into a domain.Expense.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e      domain.Expense
		id     pgtype.UUID
		userID pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &userID, &tripID, &e.Description, &e.Amount, &e.Category,
		&e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.UserID = uuid.UUID(userID.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)

	return e, nil
}
